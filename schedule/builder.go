package schedule

import "slices"

// builder accumulates the schedule while rows are parsed. Nothing outside the
// parser sees it; freeze hands out an independent Schedule.
type builder struct {
	title      string
	counts     TeamCounts
	courts     []string
	weekOrder  []string
	weeks      map[string]*weekBuilder
	noPlay     []NoPlayWeek
	byeColumn  int
	titleFound bool
}

type weekBuilder struct {
	tba       bool
	slotOrder []string
	slots     map[string]TimeSlotSchedule
	byes      []string
}

func newBuilder() *builder {
	return &builder{
		title:     DEFAULT_TITLE,
		weeks:     map[string]*weekBuilder{},
		byeColumn: -1,
	}
}

// openWeek registers a week or returns it when the title was seen before,
// keeping week titles unique.
func (b *builder) openWeek(title string) *weekBuilder {
	if w, ok := b.weeks[title]; ok {
		return w
	}
	w := &weekBuilder{slots: map[string]TimeSlotSchedule{}}
	b.weeks[title] = w
	b.weekOrder = append(b.weekOrder, title)
	return w
}

// putSlot stores a time slot. A repeated time label replaces the earlier slot
// but keeps its position.
func (w *weekBuilder) putSlot(slot TimeSlotSchedule) {
	if _, ok := w.slots[slot.Time]; !ok {
		w.slotOrder = append(w.slotOrder, slot.Time)
	}
	w.slots[slot.Time] = slot
}

func (b *builder) freeze() *Schedule {
	s := &Schedule{
		Title:       b.title,
		TeamCounts:  b.counts,
		Courts:      slices.Clone(b.courts),
		Weeks:       make([]WeekSchedule, 0, len(b.weekOrder)),
		NoPlayWeeks: slices.Clone(b.noPlay),
		ByeColumn:   b.byeColumn,
	}
	if s.Courts == nil {
		s.Courts = []string{}
	}
	if s.NoPlayWeeks == nil {
		s.NoPlayWeeks = []NoPlayWeek{}
	}
	for _, title := range b.weekOrder {
		w := b.weeks[title]
		week := WeekSchedule{
			Title:     title,
			TBA:       w.tba,
			TimeSlots: make([]TimeSlotSchedule, 0, len(w.slotOrder)),
			ByeTeams:  append([]string{}, w.byes...),
		}
		for _, time := range w.slotOrder {
			slot := w.slots[time]
			week.TimeSlots = append(week.TimeSlots, TimeSlotSchedule{
				Time:  slot.Time,
				Games: slices.Clone(slot.Games),
			})
		}
		s.Weeks = append(s.Weeks, week)
	}
	return s
}
