package schedule

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Sentinels are the cell texts the sheet layout is recognized by.
type Sentinels struct {
	// Column B prefix of the season title row
	SeasonTitlePrefix string `yaml:"season_title_prefix"`
	// Column B prefix of the court header row
	CourtPrefix string `yaml:"court_prefix"`
	// Column B prefix of the row marking a week as not scheduled yet
	SchedulePendingPrefix string `yaml:"schedule_pending_prefix"`
	// Substrings of game cells that are not matches
	SkillsClinic string `yaml:"skills_clinic"`
	OpenPlay     string `yaml:"open_play"`
	// Week title row cell sitting just left of the bye column
	ByeMarker string `yaml:"bye_marker"`
	// Separator between the two teams of a match
	MatchSeparator string `yaml:"match_separator"`
	// Width of the label ("REF: ") in front of the referee team
	RefLabelWidth int `yaml:"ref_label_width"`
}

func DefaultSentinels() Sentinels {
	return Sentinels{
		SeasonTitlePrefix:     "SCVL",
		CourtPrefix:           "Court",
		SchedulePendingPrefix: "SCHEDULE",
		SkillsClinic:          "SKILLS CLINIC",
		OpenPlay:              "OPEN PLAY",
		ByeMarker:             "BYE",
		MatchSeparator:        " v ",
		RefLabelWidth:         5,
	}
}

func (s Sentinels) validate() error {
	fields := map[string]string{
		"season_title_prefix":     s.SeasonTitlePrefix,
		"court_prefix":            s.CourtPrefix,
		"schedule_pending_prefix": s.SchedulePendingPrefix,
		"skills_clinic":           s.SkillsClinic,
		"open_play":               s.OpenPlay,
		"bye_marker":              s.ByeMarker,
		"match_separator":         s.MatchSeparator,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("sentinel %s must not be empty", name)
		}
	}
	if s.RefLabelWidth < 0 {
		return fmt.Errorf("sentinel ref_label_width must not be negative, got %d", s.RefLabelWidth)
	}
	return nil
}

// LoadSentinels reads YAML overrides on top of DefaultSentinels. Keys that
// are not sentinels are rejected so typos do not go unnoticed.
func LoadSentinels(r io.Reader) (Sentinels, error) {
	s := DefaultSentinels()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Sentinels{}, fmt.Errorf("decoding sentinels: %w", err)
	}
	if err := s.validate(); err != nil {
		return Sentinels{}, err
	}
	return s, nil
}

// Options configures a single Parse call.
type Options struct {
	// StartCol shifts every column offset, for exports with blank leading
	// columns.
	StartCol  int
	Sentinels Sentinels
	// CheckConflicts reports teams booked more than once in a time slot.
	CheckConflicts bool
	// Logger receives a debug event per row. Nil discards everything.
	Logger *zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Sentinels: DefaultSentinels(),
	}
}
