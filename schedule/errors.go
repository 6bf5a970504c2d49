package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrRowTooShort      = errors.New("row has fewer cells than the schedule layout needs")
	ErrMissingSeparator = errors.New("game cell does not hold exactly two teams")
	ErrBadTeamNumber    = errors.New("team name does not end in a positive number")
	ErrByeColumnUnknown = errors.New("bye column is not known yet (no week title row with a BYE marker)")
	ErrNoCurrentWeek    = errors.New("row belongs to a week but no week title row came before it")
)

// FormatError pinpoints the cell of the sheet that broke the layout rules.
type FormatError struct {
	// Row is the 1-based record number in the sheet.
	Row int
	// Col is the 0-based cell index inside the row.
	Col    int
	Kind   RowKind
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("row %d, column %s (%s row): %v", e.Row, ColumnName(e.Col), e.Kind, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ColumnName converts a 0-based cell index into spreadsheet letters
// (0 -> "A", 26 -> "AA") so errors can be looked up in the sheet directly.
func ColumnName(col int) string {
	if col < 0 {
		return "?"
	}
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}
