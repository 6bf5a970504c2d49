package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Nydauron/scvl2html/schedule"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed assets/style.css
var styleSheet string

//go:embed assets/filter.js
var filterScript string

const SHOW_ALL_VALUE = "SHOWALL"
const BYE_WEEK_LABEL = "Bye Week"
const TBA_LABEL = "Schedule TBA"

// Every court takes five cells in a time slot row: team1, "v", team2, the
// referee label and the referee. The filter script relies on this.
const cellsPerCourt = 5

// HTML writes the whole schedule page.
func HTML(w io.Writer, s *schedule.Schedule) error {
	return html.Render(w, Document(s))
}

// Document builds the schedule page as a node tree.
func Document(s *schedule.Schedule) *html.Node {
	head := appendAll(element(atom.Head),
		element(atom.Meta, attr("charset", "utf-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")),
		withText(element(atom.Title), s.Title),
		withText(element(atom.Style), styleSheet),
	)
	body := appendAll(element(atom.Body),
		withText(element(atom.H1), s.Title),
		filters(s.TeamCounts),
		scheduleTable(s),
		withText(element(atom.Script), teamCountsScript(s.TeamCounts)),
		withText(element(atom.Script), filterScript),
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(appendAll(element(atom.Html, attr("lang", "en")), head, body))
	return doc
}

func teamCountsScript(counts schedule.TeamCounts) string {
	byPrefix := map[string]int{}
	for _, d := range schedule.Divisions {
		byPrefix[d.Prefix()] = counts.Of(d)
	}
	// A map of ints always marshals
	encoded, _ := json.Marshal(byPrefix)
	return fmt.Sprintf("const TEAM_COUNTS = %s;", encoded)
}

func filters(counts schedule.TeamCounts) *html.Node {
	first := element(atom.Select, attr("id", "firstTeamSelect"), attr("onchange", "handleFirstTeamSelectChange()"))
	first.AppendChild(withText(element(atom.Option, attr("value", SHOW_ALL_VALUE), attr("selected", "")), "Show all teams"))
	for _, d := range schedule.Divisions {
		teams := counts.Teams(d)
		if len(teams) == 0 {
			continue
		}
		group := element(atom.Optgroup, attr("label", d.String()))
		for _, team := range teams {
			group.AppendChild(withText(element(atom.Option, attr("value", team), attr("class", d.ClassName())), team))
		}
		first.AppendChild(group)
	}

	second := element(atom.Select, attr("id", "secondTeamSelect"), attr("disabled", ""), attr("onchange", "handleOptionalFiltersChange()"))
	optional := appendAll(element(atom.Div, attr("id", "optional_filters_div")),
		withText(element(atom.Label, attr("for", "secondTeamSelect")), "Also show:"),
		second,
		checkbox("showOpenPlay", "Open play"),
		checkbox("showSkillsClinic", "Skills clinics"),
	)

	return appendAll(element(atom.Div, attr("id", "filters")),
		withText(element(atom.Label, attr("for", "firstTeamSelect")), "Team:"),
		first,
		optional,
	)
}

func checkbox(id, label string) *html.Node {
	input := element(atom.Input,
		attr("type", "checkbox"),
		attr("id", id),
		attr("disabled", ""),
		attr("onchange", "handleOptionalFiltersChange()"),
	)
	return withText(appendAll(element(atom.Label), input), " "+label)
}

func scheduleTable(s *schedule.Schedule) *html.Node {
	width := 1 + cellsPerCourt*len(s.Courts)
	tbody := element(atom.Tbody)

	for _, npw := range s.NoPlayWeeksAfter("") {
		appendAll(tbody, bannerRow("week", npw.Title, width), spacerRow(width))
	}
	for i, week := range s.Weeks {
		if i > 0 {
			tbody.AppendChild(spacerRow(width))
		}
		appendAll(tbody, weekRows(week, s.Courts, width)...)
		for _, npw := range s.NoPlayWeeksAfter(week.Title) {
			appendAll(tbody, spacerRow(width), bannerRow("week", npw.Title, width))
		}
	}
	return appendAll(element(atom.Table, attr("id", "myTable")), tbody)
}

func weekRows(week schedule.WeekSchedule, courts []string, width int) []*html.Node {
	rows := []*html.Node{bannerRow("week", week.Title, width)}
	if week.TBA {
		rows = append(rows, bannerRow("week", TBA_LABEL, width))
	}
	if len(week.TimeSlots) > 0 {
		header := element(atom.Tr, attr("class", "header"))
		header.AppendChild(withText(element(atom.Th), "Time"))
		for _, court := range courts {
			header.AppendChild(withText(element(atom.Th, attr("colspan", strconv.Itoa(cellsPerCourt))), court))
		}
		rows = append(rows, header)
	}
	for _, slot := range week.TimeSlots {
		tr := element(atom.Tr)
		tr.AppendChild(withText(element(atom.Td, attr("class", "time")), slot.Time))
		for _, game := range slot.Games {
			appendAll(tr, gameCells(game)...)
		}
		rows = append(rows, tr)
	}
	if len(week.ByeTeams) > 0 {
		tr := element(atom.Tr)
		tr.AppendChild(withText(element(atom.Td, attr("class", "time")), BYE_WEEK_LABEL))
		for _, team := range week.ByeTeams {
			tr.AppendChild(teamCell("bye", team))
		}
		rows = append(rows, tr)
	}
	return rows
}

func gameCells(game schedule.GameInfo) []*html.Node {
	switch game.Kind {
	case schedule.GameSkillsClinic, schedule.GameOpenPlay:
		td := element(atom.Td, attr("class", game.Kind.String()), attr("colspan", strconv.Itoa(cellsPerCourt)))
		return []*html.Node{withText(td, game.Title)}
	}
	return []*html.Node{
		teamCell("team1", game.Team1),
		withText(element(atom.Td, attr("class", "vs")), "v"),
		teamCell("team2", game.Team2),
		withText(element(atom.Td, attr("class", "ref_label")), "REF:"),
		teamCell("team_ref", game.RefTeam),
	}
}

// teamCell tags the cell with its role for the filter script and with the
// team's division for coloring.
func teamCell(role, team string) *html.Node {
	class := role
	if divisionClass := schedule.Classify(team).ClassName(); divisionClass != "" {
		class += " " + divisionClass
	}
	return withText(element(atom.Td, attr("class", class)), team)
}

func bannerRow(class, text string, width int) *html.Node {
	td := withText(element(atom.Td, attr("colspan", strconv.Itoa(width))), text)
	return appendAll(element(atom.Tr, attr("class", class)), td)
}

func spacerRow(width int) *html.Node {
	return appendAll(element(atom.Tr, attr("class", "spacer")), element(atom.Td, attr("colspan", strconv.Itoa(width))))
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, child := range children {
		parent.AppendChild(child)
	}
	return parent
}
