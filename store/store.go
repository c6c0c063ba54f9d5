// Package store defines the contract between the validators and the
// hierarchical storage backing an analysis-state container. The container
// itself (an HDF5 file or equivalent) is opened and owned by the caller;
// validators only traverse an already-opened Group.
package store

// DataType identifies the primitive type of a stored value.
type DataType int

const (
	// Integer covers all stored integer widths.
	Integer DataType = iota
	// Float covers all stored floating-point widths.
	Float
	// String covers fixed and variable length strings.
	String
)

// String returns the lower-case name of the data type.
func (t DataType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Group is an opened region of the container.
//
// Implementations report failures using the kinds of package errors:
// MissingEntry when no child has the requested name, TypeMismatch when the
// child exists with a different kind or primitive type, and ShapeMismatch
// when an array's dimensions disagree with the requested shape.
type Group interface {
	// OpenGroup opens the named child group.
	OpenGroup(name string) (Group, error)

	// OpenScalar opens the named child as a scalar of the given type.
	// An array stored under the name is a TypeMismatch.
	OpenScalar(name string, dt DataType) (Value, error)

	// OpenArray opens the named child as an array of the given type.
	// A nil shape accepts any dimensionality; otherwise the stored shape
	// must match exactly. A scalar stored under the name is a TypeMismatch.
	OpenArray(name string, dt DataType, shape []int) (Value, error)

	// Children lists the names of child entries in stored order.
	Children() []string

	// Exists reports whether a child entry with the given name is present.
	Exists(name string) bool
}

// Value is an opened scalar or array dataset. Accessors for types other
// than the one the value was opened with return nil.
type Value interface {
	// Shape returns the dimension sizes, empty for scalars.
	Shape() []int

	// Strings returns the stored strings in row-major order.
	// A scalar yields a single element.
	Strings() []string

	// Ints returns the stored integers in row-major order.
	Ints() []int64

	// Floats returns the stored floats in row-major order.
	Floats() []float64
}
