package schedule

import (
	"fmt"
	"strings"
)

// Conflict is a team that plays or referees more than once in the same time
// slot. Courts has one entry per booking, so a team refereeing its own game
// lists that court twice.
type Conflict struct {
	Week     string
	TimeSlot string
	Team     string
	Courts   []string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s %s: %s is booked %d times (%s)", c.Week, c.TimeSlot, c.Team, len(c.Courts), strings.Join(c.Courts, ", "))
}

// findConflicts checks one time slot on its own; bookings never carry over
// into the next slot.
func findConflicts(week string, slot TimeSlotSchedule) []Conflict {
	courtsByTeam := map[string][]string{}
	order := []string{}
	for _, game := range slot.Games {
		for _, team := range game.Teams() {
			if _, seen := courtsByTeam[team]; !seen {
				order = append(order, team)
			}
			courtsByTeam[team] = append(courtsByTeam[team], game.Court)
		}
	}

	var conflicts []Conflict
	for _, team := range order {
		if courts := courtsByTeam[team]; len(courts) > 1 {
			conflicts = append(conflicts, Conflict{Week: week, TimeSlot: slot.Time, Team: team, Courts: courts})
		}
	}
	return conflicts
}
