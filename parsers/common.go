package parsers

import (
	"errors"
	"fmt"
	"io"
)

const DELIMITER = ','
const DEFAULT_QUOTE_CHAR = '|'

var ErrUnterminatedQuote = errors.New("quoted cell was never closed")

// Grid is a table of raw cells exactly as they were exported from the
// spreadsheet. Rows may have differing lengths.
type Grid struct {
	Rows [][]string
}

// Read hands out the grid one row at a time so a Grid can be used anywhere a
// *CSVReader can.
func (g *Grid) Read() ([]string, error) {
	if len(g.Rows) == 0 {
		return nil, io.EOF
	}
	row := g.Rows[0]
	g.Rows = g.Rows[1:]
	return row, nil
}

// ParseError reports a problem in the delimited text itself, before any
// schedule layout is interpreted.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
