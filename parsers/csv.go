package parsers

import (
	"bufio"
	"io"
	"strings"
)

// CSVReader reads comma-separated records whose quote character is chosen by
// the caller. Sheets exported for the league use '|' so that commas and double
// quotes inside team notes survive untouched.
type CSVReader struct {
	buf   *bufio.Reader
	quote rune
	line  int
}

func NewCSVReader(r io.Reader, quote rune) *CSVReader {
	return &CSVReader{buf: bufio.NewReader(r), quote: quote, line: 1}
}

// Line returns the 1-based line the next record starts on.
func (c *CSVReader) Line() int {
	return c.line
}

// Read returns the next record. Once the input is exhausted it returns
// nil, io.EOF.
func (c *CSVReader) Read() ([]string, error) {
	startLine := c.line
	cells := []string{}
	var cell strings.Builder
	inQuote := false
	readAny := false
	for {
		r, _, err := c.buf.ReadRune()
		if err == io.EOF {
			if inQuote {
				return nil, &ParseError{Line: startLine, Err: ErrUnterminatedQuote}
			}
			if !readAny {
				return nil, io.EOF
			}
			return append(cells, cell.String()), nil
		}
		if err != nil {
			return nil, err
		}
		readAny = true

		if inQuote {
			if r != c.quote {
				if r == '\n' {
					c.line++
				}
				cell.WriteRune(r)
				continue
			}
			// A doubled quote inside a quoted cell is a literal quote
			next, _, err := c.buf.ReadRune()
			if err == nil && next == c.quote {
				cell.WriteRune(c.quote)
				continue
			}
			if err == nil {
				c.buf.UnreadRune()
			}
			inQuote = false
			continue
		}

		switch r {
		case c.quote:
			if cell.Len() == 0 {
				inQuote = true
			} else {
				cell.WriteRune(r)
			}
		case DELIMITER:
			cells = append(cells, cell.String())
			cell.Reset()
		case '\r':
		case '\n':
			c.line++
			return append(cells, cell.String()), nil
		default:
			cell.WriteRune(r)
		}
	}
}

// ReadAll buffers every record of r. Schedules are a few thousand cells at
// most so holding the whole grid is fine.
func ReadAll(r io.Reader, quote rune) (*Grid, error) {
	reader := NewCSVReader(r, quote)
	grid := Grid{Rows: [][]string{}}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return &grid, nil
		}
		if err != nil {
			return nil, err
		}
		grid.Rows = append(grid.Rows, row)
	}
}
