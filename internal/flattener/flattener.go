// Package flattener turns nested records into single-level rows.
package flattener

import (
	"github.com/GitRowin/orderedmapjson"
	"github.com/mcncl/jsoncsv/internal/models"
)

// Separator joins a parent path and a child key. Keys that already contain it
// are not escaped, so "a_b" and {"a": {"b": ...}} land in the same column.
const Separator = "_"

// Cell is one field of a flattened row: either a scalar JSON value or text
// produced while flattening (arrays). Conversion to text happens in Text.
type Cell struct {
	scalar models.Value
	text   string
	isText bool
}

// ScalarCell wraps a null, bool, number or string.
func ScalarCell(v models.Value) Cell {
	return Cell{scalar: v}
}

// TextCell wraps text that is already final.
func TextCell(s string) Cell {
	return Cell{text: s, isText: true}
}

// Scalar returns the wrapped value for scalar cells.
func (c Cell) Scalar() (models.Value, bool) {
	if c.isText {
		return nil, false
	}
	return c.scalar, true
}

// Text returns the text written to CSV for this cell.
func (c Cell) Text() string {
	if c.isText {
		return c.text
	}
	return models.Text(c.scalar)
}

// Row maps column paths to cells in first-insertion order.
type Row = orderedmapjson.OrderedMap[Cell]

// NewRow creates an empty Row.
func NewRow() *Row {
	return orderedmapjson.NewOrderedMap[Cell]()
}

// Flatten flattens one record. Nested objects contribute prefixed columns,
// arrays become a single text column and scalars are kept as they are.
func Flatten(record *models.Object) *Row {
	row := NewRow()
	if !record.IsNil() {
		flattenInto(row, record, "")
	}
	return row
}

// FlattenAll flattens records in order.
func FlattenAll(records []*models.Object) []*Row {
	rows := make([]*Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Flatten(record))
	}
	return rows
}

func flattenInto(row *Row, obj *models.Object, prefix string) {
	for key, value := range obj.AllFromFront() {
		column := key
		if prefix != "" {
			column = prefix + Separator + key
		}

		switch v := value.(type) {
		case *models.Object:
			if !v.IsNil() {
				flattenInto(row, v, column)
			}
		case models.Array:
			row.Set(column, TextCell(models.Text(v)))
		case models.Null, models.Bool, models.Number, models.String:
			row.Set(column, ScalarCell(v))
		default:
			row.Set(column, ScalarCell(models.Null{}))
		}
	}
}
