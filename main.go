package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/Nydauron/scvl2html/parsers"
	"github.com/Nydauron/scvl2html/render"
	"github.com/Nydauron/scvl2html/schedule"
	"github.com/Nydauron/scvl2html/writers"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	inputFlag     = "input"
	outputFlag    = "output"
	startColFlag  = "start-col"
	quoteCharFlag = "quote-char"
	debugFlag     = "debug"
	formatFlag    = "format"
	sentinelsFlag = "sentinels"
	stdoutCLIName = "-"
	defaultOutput = "index.html"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

var (
	errInputAccess = errors.New("cannot read input")
	errOutput      = errors.New("cannot write output")
)

type options struct {
	inputLocation  string
	outputLocation string
	startCol       int
	quoteChar      string
	debug          bool
	format         string
	sentinelsPath  string
}

func cliHandle(opts options, outputWriter io.Writer, stdout io.Writer, logger zerolog.Logger) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	quote, err := parseQuoteChar(opts.quoteChar)
	if err != nil {
		return err
	}

	parseOpts := schedule.DefaultOptions()
	parseOpts.StartCol = opts.startCol
	parseOpts.CheckConflicts = opts.debug
	parseOpts.Logger = &logger
	if opts.sentinelsPath != "" {
		parseOpts.Sentinels, err = loadSentinels(opts.sentinelsPath)
		if err != nil {
			return err
		}
	}

	f, err := os.Open(opts.inputLocation)
	if err != nil {
		return fmt.Errorf("%w: %w", errInputAccess, err)
	}
	defer f.Close()
	logger.Info().Str("path", opts.inputLocation).Msg("File detected")

	sked, conflicts, err := schedule.Parse(parsers.NewCSVReader(f, quote), parseOpts)
	if err != nil {
		return fmt.Errorf("parsing %s failed: %w", opts.inputLocation, err)
	}
	for _, c := range conflicts {
		fmt.Fprintf(stdout, "CONFLICT: %s\n", c)
	}

	// Render fully before touching the output so a failure never leaves a
	// half written page behind
	var buf bytes.Buffer
	if err := render.Write(&buf, sked, format); err != nil {
		return fmt.Errorf("%w: %w", errOutput, err)
	}
	if _, err := buf.WriteTo(outputWriter); err != nil {
		return fmt.Errorf("%w: %w", errOutput, err)
	}
	logger.Info().Int("weeks", len(sked.Weeks)).Int("conflicts", len(conflicts)).Msg("Schedule written")
	return nil
}

func loadSentinels(path string) (schedule.Sentinels, error) {
	f, err := os.Open(path)
	if err != nil {
		return schedule.Sentinels{}, fmt.Errorf("%w: %w", errInputAccess, err)
	}
	defer f.Close()
	s, err := schedule.LoadSentinels(f)
	if err != nil {
		return schedule.Sentinels{}, fmt.Errorf("sentinel file %s: %w", path, err)
	}
	return s, nil
}

func parseQuoteChar(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("quote character must be exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == parsers.DELIMITER || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("quote character %q clashes with the CSV layout", r)
	}
	return r, nil
}

// Debug output goes to stdout next to the conflict report; regular progress
// goes to stderr.
func newLogger(debug bool, stdout, stderr io.Writer) zerolog.Logger {
	if debug {
		return zerolog.New(zerolog.ConsoleWriter{Out: stdout, NoColor: true}).
			Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

func exitCode(err error) int {
	var formatErr *schedule.FormatError
	var parseErr *parsers.ParseError
	switch {
	case errors.Is(err, errInputAccess):
		return 2
	case errors.Is(err, errOutput):
		return 3
	case errors.As(err, &formatErr), errors.As(err, &parseErr):
		return 4
	default:
		return 1
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	opts := options{}
	return &cli.App{
		Name:      "scvl2html",
		Usage:     "A tool to turn the league schedule spreadsheet (CSV export) into a filterable HTML page",
		UsageText: "scvl2html [options] <schedule.csv>",
		Version:   semanticVersion,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        inputFlag,
				Aliases:     []string{"i"},
				Usage:       "Path to the CSV export of the schedule (may also be given as the only argument)",
				Destination: &opts.inputLocation,
			},
			&cli.StringFlag{
				Name:        outputFlag,
				Aliases:     []string{"o"},
				Usage:       "The location to write the result. Can be a file path or \"-\" (for stdout).",
				Value:       defaultOutput,
				Destination: &opts.outputLocation,
			},
			&cli.StringFlag{
				Name:        formatFlag,
				Aliases:     []string{"f"},
				Usage:       "Output format: html or yaml (dump of the parsed schedule)",
				Value:       string(render.FormatHTML),
				Destination: &opts.format,
			},
			&cli.IntFlag{
				Name:        startColFlag,
				Usage:       "Number of blank columns the export has before the time column",
				Destination: &opts.startCol,
			},
			&cli.StringFlag{
				Name:        quoteCharFlag,
				Usage:       "Quote character used in the CSV export",
				Value:       string(parsers.DEFAULT_QUOTE_CHAR),
				Destination: &opts.quoteChar,
			},
			&cli.StringFlag{
				Name:        sentinelsFlag,
				Usage:       "YAML file overriding the cell texts rows are recognized by",
				Destination: &opts.sentinelsPath,
			},
			&cli.BoolFlag{
				Name:        debugFlag,
				Aliases:     []string{"d"},
				Usage:       "Trace every row on stdout and report teams booked twice in a time slot",
				Destination: &opts.debug,
			},
		},
		Action: func(cCtx *cli.Context) error {
			if opts.inputLocation == "" {
				opts.inputLocation = cCtx.Args().First()
			}
			if opts.inputLocation == "" {
				return fmt.Errorf("input not set")
			}
			if opts.outputLocation == "" {
				return fmt.Errorf("output not set")
			}
			logger := newLogger(opts.debug, stdout, stderr)

			var outputWriter io.WriteCloser = writers.NopWriteCloser(stdout)
			if opts.outputLocation != stdoutCLIName {
				outputWriter = writers.NewLazyFile(opts.outputLocation, 0644)
			}
			err := cliHandle(opts, outputWriter, stdout, logger)
			if closeErr := outputWriter.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("%w: %w", errOutput, closeErr)
			}
			return err
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("Conversion failed")
		os.Exit(exitCode(err))
	}
}
