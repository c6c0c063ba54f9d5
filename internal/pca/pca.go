// Package pca validates the dimensionality-reduction stage.
package pca

import (
	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/internal/read"
	"github.com/jquell/scval/internal/version"
	"github.com/jquell/scval/store"
)

// Validate checks the pca stage of the opened container and returns the
// observed number of principal components. The observed count is read from
// the stored results and may be less than the requested num_pcs.
func Validate(root store.Group, numCells int, ver version.Number) (int, error) {
	stage, err := root.OpenGroup("pca")
	if err != nil {
		return 0, errors.Wrap(err, "pca")
	}

	requested, method, err := validateParameters(stage, ver)
	if err != nil {
		return 0, errors.Wrap(errors.Wrap(err, "parameters"), "pca")
	}

	observed, err := validateResults(stage, requested, method, numCells, ver)
	if err != nil {
		return 0, errors.Wrap(errors.Wrap(err, "results"), "pca")
	}
	return observed, nil
}

func validateParameters(stage store.Group, ver version.Number) (int, string, error) {
	p, err := stage.OpenGroup("parameters")
	if err != nil {
		return 0, "", err
	}

	numHVGs, err := read.IntScalar(p, "num_hvgs")
	if err != nil {
		return 0, "", err
	}
	if numHVGs <= 0 {
		return 0, "", errors.New(errors.RangeViolation, "number of HVGs must be positive in 'num_hvgs'")
	}

	numPCs, err := read.IntScalar(p, "num_pcs")
	if err != nil {
		return 0, "", err
	}
	if numPCs <= 0 {
		return 0, "", errors.New(errors.RangeViolation, "number of PCs must be positive in 'num_pcs'")
	}

	rules := version.RulesFor(ver)
	var method string
	if rules.BlockMethod {
		method, err = read.String(p, "block_method")
		if err != nil {
			return 0, "", err
		}
		if err := checkBlockMethod(method, rules.BlockMethods); err != nil {
			return 0, "", err
		}
	}
	return int(numPCs), method, nil
}

func checkBlockMethod(method string, allowed []string) error {
	for _, o := range allowed {
		if o == method {
			return nil
		}
	}
	return errors.New(errors.UnknownEnumValue, "unrecognized value '%s' for the 'block_method'", method)
}

func validateResults(stage store.Group, requested int, method string, numCells int, ver version.Number) (int, error) {
	r, err := stage.OpenGroup("results")
	if err != nil {
		return 0, err
	}

	observed, err := checkPCAContents(r, requested, numCells)
	if err != nil {
		return 0, err
	}

	if version.RulesFor(ver).CorrectedOnMNN && method == "mnn" {
		if err := read.FloatMatrix(r, "corrected", numCells, observed); err != nil {
			return 0, err
		}
	}
	return observed, nil
}

// checkPCAContents validates var_exp and pcs, deriving the observed PC
// count from the stored var_exp length rather than the requested maximum.
func checkPCAContents(r store.Group, maxPCs, numCells int) (int, error) {
	v, err := r.OpenArray("var_exp", store.Float, nil)
	if err != nil {
		return 0, err
	}
	if len(v.Shape()) != 1 {
		return 0, errors.New(errors.ShapeMismatch, "'var_exp' dataset does not have the expected dimensions")
	}

	observed := v.Shape()[0]
	if observed > maxPCs {
		return 0, errors.New(errors.RangeViolation, "length of 'var_exp' dataset exceeds the requested number of PCs")
	}

	if err := read.FloatMatrix(r, "pcs", numCells, observed); err != nil {
		return 0, err
	}
	return observed, nil
}
