package record

import (
	"fmt"
	"slices"
	"strconv"
)

// Record is one row of the four-column schema.
// Records are values: collections store copies and never mutate them in place.
type Record struct {
	ID     uint32 `json:"id" yaml:"id"`
	TextA  string `json:"text_a" yaml:"text_a"`
	Number int64  `json:"number" yaml:"number"`
	TextB  string `json:"text_b" yaml:"text_b"`
}

// Text returns the value of a text column.
// It returns "" and false for non-text columns.
func (r Record) Text(col Column) (string, bool) {
	switch col {
	case ColumnTextA:
		return r.TextA, true
	case ColumnTextB:
		return r.TextB, true
	default:
		return "", false
	}
}

// Value returns the string encoding of a column value, the same encoding
// Filter accepts for that column.
func (r Record) Value(col Column) string {
	switch col {
	case ColumnID:
		return strconv.FormatUint(uint64(r.ID), 10)
	case ColumnTextA:
		return r.TextA
	case ColumnNumber:
		return strconv.FormatInt(r.Number, 10)
	case ColumnTextB:
		return r.TextB
	default:
		return ""
	}
}

func (r Record) String() string {
	return fmt.Sprintf("{%d, %q, %d, %q}", r.ID, r.TextA, r.Number, r.TextB)
}

// ToMap converts the record into the generic form accepted by MarshalCanonical.
func (r Record) ToMap() map[string]any {
	return map[string]any{
		"id":     int64(r.ID),
		"text_a": r.TextA,
		"number": r.Number,
		"text_b": r.TextB,
	}
}

// SortByID sorts records by ascending ID in place.
func SortByID(recs []Record) {
	slices.SortFunc(recs, func(a, b Record) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}

// IDs returns the IDs of recs in ascending order.
func IDs(recs []Record) []uint32 {
	ids := make([]uint32, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	slices.Sort(ids)
	return ids
}
