// Package table implements the in-memory columnar table the metrics pipeline
// operates on: an ordered set of named columns, one cell per donor row, with
// explicit per-cell validity so that missing values survive typed conversion.
package table

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the runtime type of a Cell.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
	KindBool
)

// Cell is a single typed value. Valid reports whether the value is present;
// an invalid cell renders as the empty string on export.
type Cell struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Date  time.Time
	Bool  bool
	Valid bool
}

func String(s string) Cell  { return Cell{Kind: KindString, Str: s, Valid: true} }
func Int(n int64) Cell      { return Cell{Kind: KindInt, Int: n, Valid: true} }
func Float(f float64) Cell  { return Cell{Kind: KindFloat, Float: f, Valid: true} }
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Date: t, Valid: true} }
func Bool(b bool) Cell      { return Cell{Kind: KindBool, Bool: b, Valid: true} }

// Missing returns an absent cell of the given kind.
func Missing(k Kind) Cell { return Cell{Kind: k} }

// Format renders the cell for the output artifact. Missing cells render as
// the empty string; dates use ISO form; booleans export as 1/0.
func (c Cell) Format() string {
	if !c.Valid {
		return ""
	}
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'f', -1, 64)
	case KindDate:
		return c.Date.Format("2006-01-02")
	case KindBool:
		if c.Bool {
			return "1"
		}
		return "0"
	default:
		return c.Str
	}
}

// Table is a mapping from column name to a column of per-row cells. Column
// order is preserved: original input columns first, derived columns in the
// order they were added.
type Table struct {
	names []string
	cols  map[string][]Cell
	rows  int
}

// New creates an empty table expecting the given number of rows.
func New(rows int) *Table {
	return &Table{cols: make(map[string][]Cell), rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the cells of the named column, or nil if absent.
func (t *Table) Column(name string) []Cell { return t.cols[name] }

// Cell returns the cell at the given column and row. Absent columns yield a
// missing string cell so row-local arithmetic can degrade gracefully.
func (t *Table) Cell(name string, row int) Cell {
	col, ok := t.cols[name]
	if !ok || row < 0 || row >= len(col) {
		return Missing(KindString)
	}
	return col[row]
}

// SetColumn installs or replaces a column. New columns are appended to the
// column order; the cell count must match the table's row count.
func (t *Table) SetColumn(name string, cells []Cell) error {
	if len(cells) != t.rows {
		return fmt.Errorf("table: column %s has %d cells, table has %d rows", name, len(cells), t.rows)
	}
	if _, ok := t.cols[name]; !ok {
		t.names = append(t.names, name)
	}
	t.cols[name] = cells
	return nil
}
