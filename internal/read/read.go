// Package read provides typed loads over the storage-accessor contract.
package read

import (
	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/store"
)

// String loads a scalar string dataset.
func String(g store.Group, name string) (string, error) {
	v, err := g.OpenScalar(name, store.String)
	if err != nil {
		return "", err
	}
	return v.Strings()[0], nil
}

// IntScalar loads a scalar integer dataset.
func IntScalar(g store.Group, name string) (int64, error) {
	v, err := g.OpenScalar(name, store.Integer)
	if err != nil {
		return 0, err
	}
	return v.Ints()[0], nil
}

// IntVector loads a one-dimensional integer dataset of any length.
func IntVector(g store.Group, name string) ([]int64, error) {
	v, err := g.OpenArray(name, store.Integer, nil)
	if err != nil {
		return nil, err
	}
	if len(v.Shape()) != 1 {
		return nil, errors.New(errors.ShapeMismatch, "'%s' is not one-dimensional", name)
	}
	return v.Ints(), nil
}

// StringVector loads a one-dimensional string dataset of any length.
func StringVector(g store.Group, name string) ([]string, error) {
	v, err := g.OpenArray(name, store.String, nil)
	if err != nil {
		return nil, err
	}
	if len(v.Shape()) != 1 {
		return nil, errors.New(errors.ShapeMismatch, "'%s' is not one-dimensional", name)
	}
	return v.Strings(), nil
}

// FloatVector checks that a one-dimensional float dataset of the given
// length is present. The payload is not interpreted.
func FloatVector(g store.Group, name string, length int) error {
	_, err := g.OpenArray(name, store.Float, []int{length})
	return err
}

// FloatMatrix checks that a two-dimensional row-major float dataset with
// the given shape is present. The payload is not interpreted.
func FloatMatrix(g store.Group, name string, rows, cols int) error {
	_, err := g.OpenArray(name, store.Float, []int{rows, cols})
	return err
}
