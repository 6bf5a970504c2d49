package schedule

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// RowKind is what a sheet row means, decided from its first two columns.
type RowKind int

const (
	RowUnclassified RowKind = iota
	RowSpacer
	RowWeekTitle
	RowSeasonTitle
	RowCourtHeader
	RowScheduleTBA
	RowNoPlayWeek
	RowTimeSlot
)

func (k RowKind) String() string {
	switch k {
	case RowUnclassified:
		return "unclassified"
	case RowSpacer:
		return "spacer"
	case RowWeekTitle:
		return "week title"
	case RowSeasonTitle:
		return "season title"
	case RowCourtHeader:
		return "court header"
	case RowScheduleTBA:
		return "schedule TBA"
	case RowNoPlayWeek:
		return "no-play week"
	case RowTimeSlot:
		return "time slot"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// headerRules classify rows whose time column is empty, by the cell right
// after it. The first match wins; rows matching none are no-play weeks.
var headerRules = []struct {
	kind  RowKind
	match func(cell string, s Sentinels) bool
}{
	{RowWeekTitle, func(cell string, _ Sentinels) bool { return cell == "" }},
	{RowSeasonTitle, func(cell string, s Sentinels) bool { return strings.HasPrefix(cell, s.SeasonTitlePrefix) }},
	{RowCourtHeader, func(cell string, s Sentinels) bool { return strings.HasPrefix(cell, s.CourtPrefix) }},
	{RowScheduleTBA, func(cell string, s Sentinels) bool { return strings.HasPrefix(cell, s.SchedulePendingPrefix) }},
}

// RowSource yields sheet rows until io.EOF. *parsers.CSVReader,
// *parsers.Grid and *csv.Reader all satisfy it.
type RowSource interface {
	Read() ([]string, error)
}

type parser struct {
	opts Options
	log  zerolog.Logger
	b    *builder

	// The most recent week title row; every row that attaches data to a
	// week uses it.
	currentWeek string
	hasWeek     bool

	conflicts []Conflict
	handlers  map[RowKind]func(row []string) error
}

// Parse reads every row of src and rebuilds the schedule they lay out. The
// first row that breaks the layout aborts the parse with a *FormatError.
// Conflicts are only collected when opts.CheckConflicts is set.
func Parse(src RowSource, opts Options) (*Schedule, []Conflict, error) {
	if opts.StartCol < 0 {
		return nil, nil, fmt.Errorf("start column must not be negative, got %d", opts.StartCol)
	}
	if opts.Sentinels == (Sentinels{}) {
		opts.Sentinels = DefaultSentinels()
	}
	if err := opts.Sentinels.validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid sentinels: %w", err)
	}

	p := newParser(opts)
	for rowNum := 1; ; rowNum++ {
		row, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", rowNum, err)
		}
		if err := p.parseRow(rowNum, row); err != nil {
			return nil, nil, err
		}
	}

	s := p.b.freeze()
	p.logSummary(s)
	return s, p.conflicts, nil
}

func newParser(opts Options) *parser {
	p := &parser{opts: opts, log: zerolog.Nop(), b: newBuilder()}
	if opts.Logger != nil {
		p.log = *opts.Logger
	}
	p.handlers = map[RowKind]func([]string) error{
		RowSpacer:      func([]string) error { return nil },
		RowWeekTitle:   p.handleWeekTitle,
		RowSeasonTitle: p.handleSeasonTitle,
		RowCourtHeader: p.handleCourtHeader,
		RowScheduleTBA: p.handleScheduleTBA,
		RowNoPlayWeek:  p.handleNoPlayWeek,
		RowTimeSlot:    p.handleTimeSlot,
	}
	return p
}

func (p *parser) parseRow(rowNum int, raw []string) error {
	row := make([]string, len(raw))
	for i, cell := range raw {
		row[i] = strings.TrimSpace(cell)
	}

	kind, err := p.classify(row)
	if err == nil {
		p.log.Debug().Int("row", rowNum).Stringer("kind", kind).Strs("cells", row).Msg("row")
		err = p.handlers[kind](row)
	}
	if err == nil {
		return nil
	}
	if formatErr, ok := err.(*FormatError); ok {
		formatErr.Row = rowNum
		formatErr.Kind = kind
	}
	return err
}

func (p *parser) classify(row []string) (RowKind, error) {
	if !slices.ContainsFunc(row, func(cell string) bool { return cell != "" }) {
		return RowSpacer, nil
	}
	start := p.opts.StartCol
	if len(row) < start+2 {
		return RowUnclassified, &FormatError{Col: len(row), Err: ErrRowTooShort, Detail: fmt.Sprintf("need at least %d cells, got %d", start+2, len(row))}
	}
	if row[start] != "" {
		return RowTimeSlot, nil
	}
	for _, rule := range headerRules {
		if rule.match(row[start+1], p.opts.Sentinels) {
			return rule.kind, nil
		}
	}
	return RowNoPlayWeek, nil
}

func (p *parser) week() (*weekBuilder, error) {
	if !p.hasWeek {
		return nil, &FormatError{Col: p.opts.StartCol, Err: ErrNoCurrentWeek}
	}
	return p.b.weeks[p.currentWeek], nil
}

func (p *parser) handleWeekTitle(row []string) error {
	titleCol := p.opts.StartCol + 2
	if len(row) <= titleCol {
		return &FormatError{Col: len(row), Err: ErrRowTooShort, Detail: "week title cell is missing"}
	}
	p.currentWeek = row[titleCol]
	p.hasWeek = true
	p.b.openWeek(p.currentWeek)

	if p.b.byeColumn < 0 {
		if idx := slices.Index(row, p.opts.Sentinels.ByeMarker); idx >= 0 {
			p.b.byeColumn = idx + 1
			p.log.Debug().Int("column", p.b.byeColumn).Msg("found bye column")
		}
	}
	return nil
}

func (p *parser) handleSeasonTitle(row []string) error {
	title := row[p.opts.StartCol+1]
	if p.b.titleFound {
		p.log.Warn().Str("old", p.b.title).Str("new", title).Msg("season title given twice, keeping the later one")
	}
	p.b.title = title
	p.b.titleFound = true
	return nil
}

func (p *parser) handleCourtHeader(row []string) error {
	courts := []string{}
	for _, cell := range row {
		if cell != "" {
			courts = append(courts, cell)
		}
	}
	if p.b.courts != nil && !slices.Equal(p.b.courts, courts) {
		p.log.Warn().Strs("old", p.b.courts).Strs("new", courts).Msg("court header changed")
	}
	p.b.courts = courts
	return nil
}

func (p *parser) handleScheduleTBA([]string) error {
	week, err := p.week()
	if err != nil {
		return err
	}
	week.tba = true
	return nil
}

func (p *parser) handleNoPlayWeek(row []string) error {
	p.b.noPlay = append(p.b.noPlay, NoPlayWeek{Title: row[p.opts.StartCol+1], PrevWeek: p.currentWeek})
	return nil
}

func (p *parser) handleTimeSlot(row []string) error {
	start := p.opts.StartCol
	week, err := p.week()
	if err != nil {
		return err
	}

	courts := p.b.courts
	if need := start + 2 + 3*len(courts); len(row) < need {
		return &FormatError{
			Col:    len(row),
			Err:    ErrRowTooShort,
			Detail: fmt.Sprintf("%d courts need %d cells, got %d", len(courts), need, len(row)),
		}
	}

	slot := TimeSlotSchedule{Time: row[start], Games: make([]GameInfo, 0, len(courts))}
	for i, court := range courts {
		game, err := decodeGame(row, i, start, p.opts.Sentinels)
		if err != nil {
			return err
		}
		game.Court = court
		for j, team := range game.Teams() {
			if err := p.b.counts.Observe(team); err != nil {
				col := gameColumn(i, start)
				if j == 2 {
					col++
				}
				return &FormatError{Col: col, Err: err, Detail: fmt.Sprintf("%q", team)}
			}
		}
		slot.Games = append(slot.Games, game)
	}
	week.putSlot(slot)

	if p.opts.CheckConflicts {
		for _, c := range findConflicts(p.currentWeek, slot) {
			p.log.Warn().Str("week", c.Week).Str("time", c.TimeSlot).Str("team", c.Team).Strs("courts", c.Courts).Msg("team booked more than once")
			p.conflicts = append(p.conflicts, c)
		}
	}

	byeCol := p.b.byeColumn
	if byeCol < 0 {
		return &FormatError{Col: start, Err: ErrByeColumnUnknown}
	}
	if byeCol >= len(row) {
		return &FormatError{Col: len(row), Err: ErrRowTooShort, Detail: fmt.Sprintf("bye column %s is missing", ColumnName(byeCol))}
	}
	week.byes = append(week.byes, strings.Fields(row[byeCol])...)
	return nil
}

// gameColumn is the first cell of a court's three-cell group: the game cell,
// followed by the referee cell and an unused spacing cell.
func gameColumn(court, startCol int) int {
	return startCol + 2 + 3*court
}

// decodeGame reads the game of one court from a time slot row. The row must
// already be known to be wide enough; the court name is left for the caller.
func decodeGame(row []string, court, startCol int, s Sentinels) (GameInfo, error) {
	col := gameColumn(court, startCol)
	primary, secondary := row[col], row[col+1]

	switch {
	case strings.Contains(primary, s.SkillsClinic):
		return GameInfo{Kind: GameSkillsClinic, Title: activityTitle(primary, secondary)}, nil
	case strings.Contains(primary, s.OpenPlay):
		return GameInfo{Kind: GameOpenPlay, Title: activityTitle(primary, secondary)}, nil
	}

	teams := strings.Split(primary, s.MatchSeparator)
	if len(teams) != 2 {
		return GameInfo{}, &FormatError{Col: col, Err: ErrMissingSeparator, Detail: fmt.Sprintf("%q", primary)}
	}
	game := GameInfo{Kind: GameMatch, Team1: cleanTeam(teams[0]), Team2: cleanTeam(teams[1])}
	if game.Team1 == "" || game.Team2 == "" {
		return GameInfo{}, &FormatError{Col: col, Err: ErrMissingSeparator, Detail: fmt.Sprintf("%q has an empty side", primary)}
	}
	if len(secondary) > s.RefLabelWidth {
		game.RefTeam = cleanTeam(secondary[s.RefLabelWidth:])
	}
	return game, nil
}

func activityTitle(primary, secondary string) string {
	if secondary == "" {
		return primary
	}
	return fmt.Sprintf("%s (%s)", primary, secondary)
}

// cleanTeam drops the '*' decoration the sheet puts on some team names.
func cleanTeam(name string) string {
	return strings.Trim(name, "* ")
}

func (p *parser) logSummary(s *Schedule) {
	if p.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	p.log.Debug().
		Str("title", s.Title).
		Strs("courts", s.Courts).
		Strs("weeks", s.WeekTitles()).
		Int("bye_column", s.ByeColumn).
		Int("rec", s.TeamCounts.Rec).
		Int("int", s.TeamCounts.Int).
		Int("com", s.TeamCounts.Com).
		Int("pow", s.TeamCounts.Pow).
		Int("pow_plus", s.TeamCounts.PowPlus).
		Msg("parsed schedule")
	for _, npw := range s.NoPlayWeeks {
		p.log.Debug().Str("title", npw.Title).Str("after", npw.PrevWeek).Msg("no-play week")
	}
	for _, w := range s.Weeks {
		p.log.Debug().Str("week", w.Title).Bool("tba", w.TBA).Strs("time_slots", w.TimeSlotTitles()).Strs("byes", w.ByeTeams).Msg("week")
	}
}
