package record

import (
	"fmt"
	"strconv"
)

// Column identifies one of the four record columns.
type Column int

const (
	// ColumnUnknown is any selector outside the schema.
	ColumnUnknown Column = iota - 1
	ColumnID
	ColumnTextA
	ColumnNumber
	ColumnTextB
)

// Columns lists the schema columns in declaration order.
var Columns = []Column{ColumnID, ColumnTextA, ColumnNumber, ColumnTextB}

var columnAliases = map[string]Column{
	"column0": ColumnID,
	"column1": ColumnTextA,
	"column2": ColumnNumber,
	"column3": ColumnTextB,
	"id":      ColumnID,
	"text_a":  ColumnTextA,
	"number":  ColumnNumber,
	"text_b":  ColumnTextB,
}

// ParseColumn maps an external column name to a Column.
// Unknown names yield ColumnUnknown; this is not an error.
func ParseColumn(name string) Column {
	if c, ok := columnAliases[name]; ok {
		return c
	}
	return ColumnUnknown
}

// Valid reports whether c is one of the four schema columns.
func (c Column) Valid() bool {
	return c >= ColumnID && c <= ColumnTextB
}

// IsText reports whether c is a partial-substring indexed column.
func (c Column) IsText() bool {
	return c == ColumnTextA || c == ColumnTextB
}

// String returns the canonical column name (column0..column3).
func (c Column) String() string {
	if !c.Valid() {
		return "unknown(" + strconv.Itoa(int(c)) + ")"
	}
	return fmt.Sprintf("column%d", int(c))
}
