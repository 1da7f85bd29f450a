package ntuple

import (
	"fmt"
	"reflect"
)

// MemColumn is a named column of an in-memory ntuple.
type MemColumn struct {
	name string
	data reflect.Value
}

// Col creates a column from a slice holding one element per entry.
// Elements may be scalars, fixed-size arrays or slices.
func Col(name string, data interface{}) MemColumn {
	return MemColumn{name: name, data: reflect.ValueOf(data)}
}

// Mem is an ntuple held in memory, column by column.
type Mem struct {
	file string
	name string
	n    int64
	cols []Column
	data map[string]reflect.Value
}

// NewMem creates an in-memory ntuple. All columns must hold the same
// number of entries.
func NewMem(name string, cols ...MemColumn) (*Mem, error) {
	m := &Mem{
		file: "memory",
		name: name,
		n:    -1,
		data: make(map[string]reflect.Value, len(cols)),
	}

	for _, col := range cols {
		if col.data.Kind() != reflect.Slice {
			return nil, fmt.Errorf("ntuple: column %q is not a slice (%v)", col.name, col.data.Kind())
		}
		if _, dup := m.data[col.name]; dup {
			return nil, fmt.Errorf("ntuple: duplicate column %q", col.name)
		}
		n := int64(col.data.Len())
		if m.n >= 0 && n != m.n {
			return nil, fmt.Errorf("ntuple: column %q has %d entries, want %d", col.name, n, m.n)
		}
		m.n = n
		m.data[col.name] = col.data
		m.cols = append(m.cols, describe(col.name, col.data))
	}
	if m.n < 0 {
		m.n = 0
	}

	return m, nil
}

func describe(name string, data reflect.Value) Column {
	col := Column{Name: name, Len: 1}
	switch elem := data.Type().Elem(); elem.Kind() {
	case reflect.Array:
		col.Len = elem.Len()
	case reflect.Slice:
		col.Variable = true
		col.Len = 0
		for i := 0; i < data.Len(); i++ {
			if n := data.Index(i).Len(); n > col.Len {
				col.Len = n
			}
		}
	}
	return col
}

// SetFile sets the file name reported by File.
func (m *Mem) SetFile(fname string) { m.file = fname }

func (m *Mem) File() string      { return m.file }
func (m *Mem) Name() string      { return m.name }
func (m *Mem) Entries() int64    { return m.n }
func (m *Mem) Columns() []Column { return m.cols }

// Read loads entry i into vars.
func (m *Mem) Read(i int64, vars []Var) error {
	if i < 0 || i >= m.n {
		return fmt.Errorf("ntuple: entry %d out of range [0, %d)", i, m.n)
	}
	for _, v := range vars {
		data, ok := m.data[v.Name]
		if !ok {
			return fmt.Errorf("ntuple: no column %q in %q", v.Name, m.name)
		}
		if err := assignVar(v, data.Index(int(i))); err != nil {
			return err
		}
	}
	return nil
}
