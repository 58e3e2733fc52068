package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Row is an ordered mapping from column name to cell value. Rows from the
// same dataset are not guaranteed to share a shape.
type Row struct {
	keys []string
	vals map[string]Value
}

// NewRow returns an empty row.
func NewRow() Row { return Row{vals: map[string]Value{}} }

// RowFromMap builds a row from decoded values. Keys are ordered by name
// because Go maps carry no order.
func RowFromMap(m map[string]any) Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := NewRow()
	for _, k := range keys {
		r.Set(k, ValueOf(m[k]))
	}
	return r
}

// RowOf builds a row from alternating name, value arguments, e.g.
// RowOf("cat", "A", "val", 10). Values go through ValueOf.
func RowOf(pairs ...any) Row {
	if len(pairs)%2 != 0 {
		panic("dataset.RowOf: odd number of arguments")
	}
	r := NewRow()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("dataset.RowOf: key %v is not a string", pairs[i]))
		}
		r.Set(name, ValueOf(pairs[i+1]))
	}
	return r
}

// Set stores v under name, keeping the first insertion position of name.
func (r *Row) Set(name string, v Value) {
	if r.vals == nil {
		r.vals = map[string]Value{}
	}
	if _, ok := r.vals[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = v
}

// Get returns the value under name, or Missing when the key is absent.
func (r Row) Get(name string) Value {
	if r.vals == nil {
		return Missing()
	}
	return r.vals[name]
}

func (r Row) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Keys returns the row's keys in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

// MarshalJSON writes the row as an object in key order.
func (r Row) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := String(k).MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := r.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// Dataset is an ordered sequence of rows plus the declared column list.
// Analysis code treats it as read-only.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
	// Warnings collected while loading (e.g. truncated by MaxRows).
	Warnings []string
}

// New builds a dataset. Column names are made unique by keeping the first
// occurrence of each name.
func New(columns []string, rows []Row) *Dataset {
	seen := make(map[string]struct{}, len(columns))
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// Len returns the number of rows; a nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Values reads the column's raw values in row order. Nothing is cached.
func (d *Dataset) Values(name string) []Value {
	if d == nil {
		return nil
	}
	out := make([]Value, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Get(name)
	}
	return out
}
