package schedule

const DEFAULT_TITLE = "Unknown Season"

type GameKind int

const (
	GameMatch GameKind = iota
	GameSkillsClinic
	GameOpenPlay
)

func (k GameKind) String() string {
	switch k {
	case GameSkillsClinic:
		return "skills_clinic"
	case GameOpenPlay:
		return "open_play"
	default:
		return "match"
	}
}

func (k GameKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// GameInfo is what happens on one court during one time slot. Team1, Team2
// and RefTeam are only set for matches; Title only for clinics and open play.
type GameInfo struct {
	Court   string   `yaml:"court"`
	Kind    GameKind `yaml:"kind"`
	Team1   string   `yaml:"team_1,omitempty"`
	Team2   string   `yaml:"team_2,omitempty"`
	RefTeam string   `yaml:"ref_team,omitempty"`
	Title   string   `yaml:"title,omitempty"`
}

// Teams returns the teams involved in a match, referee last. Clinics and
// open play involve no teams.
func (g GameInfo) Teams() []string {
	if g.Kind != GameMatch {
		return nil
	}
	teams := []string{g.Team1, g.Team2}
	if g.RefTeam != "" {
		teams = append(teams, g.RefTeam)
	}
	return teams
}

type TimeSlotSchedule struct {
	Time string `yaml:"time"`
	// One entry per court, in court order
	Games []GameInfo `yaml:"games"`
}

func (t TimeSlotSchedule) Game(court string) (GameInfo, bool) {
	for _, g := range t.Games {
		if g.Court == court {
			return g, true
		}
	}
	return GameInfo{}, false
}

type WeekSchedule struct {
	Title     string             `yaml:"title"`
	TBA       bool               `yaml:"tba"`
	TimeSlots []TimeSlotSchedule `yaml:"time_slots"`
	ByeTeams  []string           `yaml:"bye_teams"`
}

func (w WeekSchedule) TimeSlotTitles() []string {
	titles := make([]string, len(w.TimeSlots))
	for i, ts := range w.TimeSlots {
		titles[i] = ts.Time
	}
	return titles
}

func (w WeekSchedule) TimeSlot(time string) (TimeSlotSchedule, bool) {
	for _, ts := range w.TimeSlots {
		if ts.Time == time {
			return ts, true
		}
	}
	return TimeSlotSchedule{}, false
}

// NoPlayWeek is a week without per-court games (holiday, playoffs). It is
// shown right after PrevWeek; an empty PrevWeek places it before the first
// week.
type NoPlayWeek struct {
	Title    string `yaml:"title"`
	PrevWeek string `yaml:"prev_week"`
}

// Schedule is the parsed season. Values returned by Parse share no memory
// with the parser and are not modified afterwards.
type Schedule struct {
	Title       string         `yaml:"title"`
	TeamCounts  TeamCounts     `yaml:"team_counts"`
	Courts      []string       `yaml:"courts"`
	Weeks       []WeekSchedule `yaml:"weeks"`
	NoPlayWeeks []NoPlayWeek   `yaml:"no_play_weeks"`
	// ByeColumn is the 0-based cell index holding bye teams, -1 if the sheet
	// never declared one.
	ByeColumn int `yaml:"bye_column"`
}

func (s *Schedule) WeekTitles() []string {
	titles := make([]string, len(s.Weeks))
	for i, w := range s.Weeks {
		titles[i] = w.Title
	}
	return titles
}

func (s *Schedule) Week(title string) (WeekSchedule, bool) {
	for _, w := range s.Weeks {
		if w.Title == title {
			return w, true
		}
	}
	return WeekSchedule{}, false
}

// NoPlayWeeksAfter returns the no-play weeks anchored to week, in sheet order.
func (s *Schedule) NoPlayWeeksAfter(week string) []NoPlayWeek {
	var weeks []NoPlayWeek
	for _, npw := range s.NoPlayWeeks {
		if npw.PrevWeek == week {
			weeks = append(weeks, npw)
		}
	}
	return weeks
}
