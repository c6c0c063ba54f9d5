package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a schema validation failure.
type Kind string

const (
	// MissingEntry indicates a required group or dataset is absent.
	MissingEntry Kind = "missing-entry"
	// TypeMismatch indicates an entry exists with the wrong kind or primitive type.
	TypeMismatch Kind = "type-mismatch"
	// ShapeMismatch indicates an array dataset has unexpected dimensions.
	ShapeMismatch Kind = "shape-mismatch"
	// RangeViolation indicates an index or value outside its declared bounds.
	RangeViolation Kind = "range-violation"
	// UniquenessViolation indicates a duplicate where distinct values are required.
	UniquenessViolation Kind = "uniqueness-violation"
	// CrossFieldInconsistency indicates two fields that must agree do not.
	CrossFieldInconsistency Kind = "cross-field-inconsistency"
	// UnknownEnumValue indicates an unrecognized format or method string.
	UnknownEnumValue Kind = "unknown-enum-value"
)

// Validation describes a single schema violation together with the chain of
// scopes leading from the container root to the failing entry.
//
// Context is ordered innermost first: Context[0] names the scope closest to
// the fault, and each Wrap appends the next enclosing scope.
//
//nolint:errname // public API name uses the validation domain term.
type Validation struct {
	Kind    Kind
	Message string
	Context []string
}

// Error renders the breadcrumb from the outermost scope down to the failing
// entry, one frame per scope, followed by the kinded message.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	for i := len(v.Context) - 1; i >= 0; i-- {
		b.WriteString(v.Context[i])
		b.WriteString(": ")
	}
	if v.Kind != "" {
		fmt.Fprintf(&b, "[%s] ", v.Kind)
	}
	b.WriteString(v.Message)
	return b.String()
}

// New builds a Validation with a kind and a formatted message.
func New(kind Kind, format string, args ...any) *Validation {
	return &Validation{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns err extended with one more context frame describing the
// enclosing scope. The original error is not modified. Errors that are not
// Validation values are adopted message-for-message so no fault is lost.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}

	v, ok := AsValidation(err)
	if !ok {
		v = &Validation{Message: err.Error()}
	}

	wrapped := &Validation{
		Kind:    v.Kind,
		Message: v.Message,
		Context: make([]string, 0, len(v.Context)+1),
	}
	wrapped.Context = append(wrapped.Context, v.Context...)
	wrapped.Context = append(wrapped.Context, context)
	return wrapped
}

// Is reports whether err is a Validation of the given kind.
func Is(err error, kind Kind) bool {
	v, ok := AsValidation(err)
	return ok && v.Kind == kind
}

// AsValidation extracts the Validation from an error returned by a validator.
func AsValidation(err error) (*Validation, bool) {
	if err == nil {
		return nil, false
	}
	var v *Validation
	if errors.As(err, &v) && v != nil {
		return v, true
	}
	return nil, false
}
