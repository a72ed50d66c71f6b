// Package dataset holds the in-memory passenger table and its CSV loader.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a named column is not in the table.
	ErrColumnNotFound = errors.New("column not found")
	// ErrWrongKind is returned when an operation needs a numeric column and
	// gets a categorical one, or the reverse.
	ErrWrongKind = errors.New("wrong column kind")
	// ErrEmpty is returned when a CSV has no header row.
	ErrEmpty = errors.New("empty dataset")
)

// Kind is the inferred type of a column.
type Kind int

const (
	// Categorical columns keep their raw string cells.
	Categorical Kind = iota
	// Numeric columns have every non-missing cell parseable as float64.
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "float64"
	case Categorical:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is one named column. Exactly one of Nums or Strs is populated,
// depending on Kind. Valid[i] is false when row i is missing.
type Column struct {
	Name  string
	Kind  Kind
	Nums  []float64
	Strs  []string
	Valid []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Valid) }

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// Cell returns the string form of row i, or "" when missing.
func (c *Column) Cell(i int) string {
	if !c.Valid[i] {
		return ""
	}
	if c.Kind == Numeric {
		return strconv.FormatFloat(c.Nums[i], 'g', -1, 64)
	}
	return c.Strs[i]
}

func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, Valid: append([]bool(nil), c.Valid...)}
	if c.Nums != nil {
		out.Nums = append([]float64(nil), c.Nums...)
	}
	if c.Strs != nil {
		out.Strs = append([]string(nil), c.Strs...)
	}
	return out
}

// Table is a column-oriented dataset. It is mutated in place by the
// cleaning stage and treated as read-only afterwards.
type Table struct {
	columns []*Column
	rows    int
}

// NewTable builds a table from columns of equal length.
func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{}
	for i, c := range cols {
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), t.rows)
		}
		if _, err := t.Column(c.Name); err == nil {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.columns) }

// Shape returns (rows, cols).
func (t *Table) Shape() (int, int) { return t.rows, len(t.columns) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the underlying columns in table order.
func (t *Table) Columns() []*Column { return t.columns }

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// NumericColumn looks a column up by name and checks that it is numeric.
func (t *Table) NumericColumn(name string) (*Column, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("%w: %q is %s", ErrWrongKind, name, c.Kind)
	}
	return c, nil
}

// DropColumn removes the named column.
func (t *Table) DropColumn(name string) error {
	for i, c := range t.columns {
		if c.Name == name {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// MissingCount returns the number of missing cells in the named column.
func (t *Table) MissingCount(name string) (int, error) {
	c, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	return c.MissingCount(), nil
}

// MissingCounts returns per-column missing counts in table order.
func (t *Table) MissingCounts() []MissingStat {
	out := make([]MissingStat, len(t.columns))
	for i, c := range t.columns {
		out[i] = MissingStat{Column: c.Name, Missing: c.MissingCount(), Rows: t.rows}
	}
	return out
}

// MissingStat is the missing-value tally of a single column.
type MissingStat struct {
	Column  string
	Missing int
	Rows    int
}

// Fraction returns Missing/Rows, or 0 for an empty table.
func (m MissingStat) Fraction() float64 {
	if m.Rows == 0 {
		return 0
	}
	return float64(m.Missing) / float64(m.Rows)
}

// NumericValues returns the valid cells of a numeric column.
func (t *Table) NumericValues(name string) ([]float64, error) {
	c, err := t.NumericColumn(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(c.Nums))
	for i, v := range c.Nums {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// RowKey returns a canonical string for row i across every column, used to
// detect exact duplicates. Missing cells compare equal to each other.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for j, c := range t.columns {
		if j > 0 {
			b.WriteByte('\x1f')
		}
		if !c.Valid[i] {
			b.WriteString("\x00")
			continue
		}
		b.WriteString(c.Cell(i))
	}
	return b.String()
}

// Filter keeps only the rows where keep[i] is true.
func (t *Table) Filter(keep []bool) error {
	if len(keep) != t.rows {
		return fmt.Errorf("filter mask has %d entries, want %d", len(keep), t.rows)
	}
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	for _, c := range t.columns {
		valid := make([]bool, 0, n)
		var nums []float64
		var strs []string
		if c.Nums != nil {
			nums = make([]float64, 0, n)
		}
		if c.Strs != nil {
			strs = make([]string, 0, n)
		}
		for i, k := range keep {
			if !k {
				continue
			}
			valid = append(valid, c.Valid[i])
			if nums != nil {
				nums = append(nums, c.Nums[i])
			}
			if strs != nil {
				strs = append(strs, c.Strs[i])
			}
		}
		c.Valid, c.Nums, c.Strs = valid, nums, strs
	}
	t.rows = n
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{rows: t.rows, columns: make([]*Column, len(t.columns))}
	for i, c := range t.columns {
		out.columns[i] = c.clone()
	}
	return out
}

// CompleteCases returns the named numeric columns restricted to rows where
// every one of them is valid.
func (t *Table) CompleteCases(names ...string) ([][]float64, error) {
	cols := make([]*Column, len(names))
	for j, name := range names {
		c, err := t.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}
	out := make([][]float64, len(names))
	for i := 0; i < t.rows; i++ {
		complete := true
		for _, c := range cols {
			if !c.Valid[i] {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for j, c := range cols {
			out[j] = append(out[j], c.Nums[i])
		}
	}
	return out, nil
}
