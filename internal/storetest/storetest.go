// Package storetest provides an in-memory store.Group for validator tests.
// Test code builds a container layout with the setter methods and hands the
// root group to a validator under test.
package storetest

import (
	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/store"
)

// Group is an in-memory container region.
type Group struct {
	order   []string
	entries map[string]*entry
}

type entry struct {
	group *Group
	value *value
}

type value struct {
	dt      store.DataType
	shape   []int // nil for scalars
	strings []string
	ints    []int64
	floats  []float64
}

// NewGroup returns an empty root group.
func NewGroup() *Group {
	return &Group{entries: map[string]*entry{}}
}

// Group returns the named child group, creating it if needed.
func (g *Group) Group(name string) *Group {
	if e, ok := g.entries[name]; ok && e.group != nil {
		return e.group
	}
	child := NewGroup()
	g.put(name, &entry{group: child})
	return child
}

// SetString stores a scalar string dataset.
func (g *Group) SetString(name, v string) {
	g.put(name, &entry{value: &value{dt: store.String, strings: []string{v}}})
}

// SetInt stores a scalar integer dataset.
func (g *Group) SetInt(name string, v int64) {
	g.put(name, &entry{value: &value{dt: store.Integer, ints: []int64{v}}})
}

// SetFloat stores a scalar float dataset.
func (g *Group) SetFloat(name string, v float64) {
	g.put(name, &entry{value: &value{dt: store.Float, floats: []float64{v}}})
}

// SetStringVector stores a one-dimensional string dataset.
func (g *Group) SetStringVector(name string, vs ...string) {
	g.put(name, &entry{value: &value{dt: store.String, shape: []int{len(vs)}, strings: vs}})
}

// SetIntVector stores a one-dimensional integer dataset.
func (g *Group) SetIntVector(name string, vs ...int64) {
	g.put(name, &entry{value: &value{dt: store.Integer, shape: []int{len(vs)}, ints: vs}})
}

// SetFloatVector stores a one-dimensional float dataset.
func (g *Group) SetFloatVector(name string, vs ...float64) {
	g.put(name, &entry{value: &value{dt: store.Float, shape: []int{len(vs)}, floats: vs}})
}

// SetFloatMatrix stores a zero-filled two-dimensional row-major float dataset.
func (g *Group) SetFloatMatrix(name string, rows, cols int) {
	g.put(name, &entry{value: &value{
		dt:     store.Float,
		shape:  []int{rows, cols},
		floats: make([]float64, rows*cols),
	}})
}

// Remove deletes the named child entry if present.
func (g *Group) Remove(name string) {
	if _, ok := g.entries[name]; !ok {
		return
	}
	delete(g.entries, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

func (g *Group) put(name string, e *entry) {
	if _, ok := g.entries[name]; !ok {
		g.order = append(g.order, name)
	}
	g.entries[name] = e
}

// OpenGroup implements store.Group.
func (g *Group) OpenGroup(name string) (store.Group, error) {
	e, ok := g.entries[name]
	if !ok {
		return nil, errors.New(errors.MissingEntry, "'%s' not found", name)
	}
	if e.group == nil {
		return nil, errors.New(errors.TypeMismatch, "'%s' is a dataset, not a group", name)
	}
	return e.group, nil
}

// OpenScalar implements store.Group.
func (g *Group) OpenScalar(name string, dt store.DataType) (store.Value, error) {
	v, err := g.dataset(name, dt)
	if err != nil {
		return nil, err
	}
	if v.shape != nil {
		return nil, errors.New(errors.TypeMismatch, "'%s' is not a scalar", name)
	}
	return v, nil
}

// OpenArray implements store.Group.
func (g *Group) OpenArray(name string, dt store.DataType, shape []int) (store.Value, error) {
	v, err := g.dataset(name, dt)
	if err != nil {
		return nil, err
	}
	if v.shape == nil {
		return nil, errors.New(errors.TypeMismatch, "'%s' is not an array", name)
	}
	if shape != nil && !shapeEqual(v.shape, shape) {
		return nil, errors.New(errors.ShapeMismatch, "'%s' has shape %v, want %v", name, v.shape, shape)
	}
	return v, nil
}

func (g *Group) dataset(name string, dt store.DataType) (*value, error) {
	e, ok := g.entries[name]
	if !ok {
		return nil, errors.New(errors.MissingEntry, "'%s' not found", name)
	}
	if e.value == nil {
		return nil, errors.New(errors.TypeMismatch, "'%s' is a group, not a dataset", name)
	}
	if e.value.dt != dt {
		return nil, errors.New(errors.TypeMismatch, "'%s' is not of type %s", name, dt)
	}
	return e.value, nil
}

// Children implements store.Group.
func (g *Group) Children() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Exists implements store.Group.
func (g *Group) Exists(name string) bool {
	_, ok := g.entries[name]
	return ok
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Shape implements store.Value.
func (v *value) Shape() []int { return v.shape }

// Strings implements store.Value.
func (v *value) Strings() []string { return v.strings }

// Ints implements store.Value.
func (v *value) Ints() []int64 { return v.ints }

// Floats implements store.Value.
func (v *value) Floats() []float64 { return v.floats }
