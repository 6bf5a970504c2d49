package schedule

import (
	"strconv"
	"strings"
)

// Division is the skill tier a team plays in. It is encoded in the team name
// itself, e.g. "COM12" is team 12 of the COM division.
type Division int

const (
	DivisionUnknown Division = iota
	DivisionRec
	DivisionInt
	DivisionCom
	DivisionPow
	DivisionPowPlus
)

// Divisions lists every known division from lowest to highest tier.
var Divisions = []Division{DivisionRec, DivisionInt, DivisionCom, DivisionPow, DivisionPowPlus}

// divisionPrefixes is the only place team name prefixes are defined. Order
// matters: prefixes are tried first to last.
var divisionPrefixes = []struct {
	division Division
	prefix   string
}{
	{DivisionRec, "REC"},
	{DivisionInt, "INT"},
	{DivisionCom, "COM"},
	{DivisionPow, "POW"},
	{DivisionPowPlus, "P+"},
}

func (d Division) String() string {
	switch d {
	case DivisionRec:
		return "REC"
	case DivisionInt:
		return "INT"
	case DivisionCom:
		return "COM"
	case DivisionPow:
		return "POW"
	case DivisionPowPlus:
		return "POW+"
	default:
		return "UNKNOWN"
	}
}

// Prefix is what team names in this division start with.
func (d Division) Prefix() string {
	for _, p := range divisionPrefixes {
		if p.division == d {
			return p.prefix
		}
	}
	return ""
}

// ClassName is the CSS class used to color teams of this division.
func (d Division) ClassName() string {
	switch d {
	case DivisionRec:
		return "rec"
	case DivisionInt:
		return "int"
	case DivisionCom:
		return "com"
	case DivisionPow:
		return "pow"
	case DivisionPowPlus:
		return "pow_plus"
	default:
		return ""
	}
}

// Below returns the next lower division, or DivisionUnknown for REC.
func (d Division) Below() Division {
	if d <= DivisionRec || d > DivisionPowPlus {
		return DivisionUnknown
	}
	return d - 1
}

// TeamName builds the name of team n of this division.
func (d Division) TeamName(n int) string {
	return d.Prefix() + strconv.Itoa(n)
}

// Classify returns the division a team name belongs to without looking at
// its number.
func Classify(team string) Division {
	d, _ := splitTeam(team)
	return d
}

func splitTeam(team string) (Division, string) {
	for _, p := range divisionPrefixes {
		if rest, ok := strings.CutPrefix(team, p.prefix); ok {
			return p.division, rest
		}
	}
	return DivisionUnknown, team
}

// teamNumber returns the division and number of a team name. Names outside
// every division yield DivisionUnknown and no error.
func teamNumber(team string) (Division, int, error) {
	d, rest := splitTeam(team)
	if d == DivisionUnknown {
		return d, 0, nil
	}
	// ParseUint rejects signs, so "POW+1" is not read as POW team 1
	n, err := strconv.ParseUint(rest, 10, 16)
	if err != nil || n == 0 {
		return d, 0, ErrBadTeamNumber
	}
	return d, int(n), nil
}

// TeamCounts holds the highest team number seen per division.
type TeamCounts struct {
	Rec     int `yaml:"rec"`
	Int     int `yaml:"int"`
	Com     int `yaml:"com"`
	Pow     int `yaml:"pow"`
	PowPlus int `yaml:"pow_plus"`
}

func (c TeamCounts) Of(d Division) int {
	switch d {
	case DivisionRec:
		return c.Rec
	case DivisionInt:
		return c.Int
	case DivisionCom:
		return c.Com
	case DivisionPow:
		return c.Pow
	case DivisionPowPlus:
		return c.PowPlus
	default:
		return 0
	}
}

// Teams lists every team name implied by the count of d, in order.
func (c TeamCounts) Teams(d Division) []string {
	teams := make([]string, 0, c.Of(d))
	for i := 1; i <= c.Of(d); i++ {
		teams = append(teams, d.TeamName(i))
	}
	return teams
}

func (c *TeamCounts) observe(d Division, n int) {
	var count *int
	switch d {
	case DivisionRec:
		count = &c.Rec
	case DivisionInt:
		count = &c.Int
	case DivisionCom:
		count = &c.Com
	case DivisionPow:
		count = &c.Pow
	case DivisionPowPlus:
		count = &c.PowPlus
	default:
		return
	}
	*count = max(*count, n)
}

// Observe records team in the counts. Names outside every division are
// ignored; names inside one must end in a positive integer.
func (c *TeamCounts) Observe(team string) error {
	d, n, err := teamNumber(team)
	if err != nil {
		return err
	}
	c.observe(d, n)
	return nil
}
