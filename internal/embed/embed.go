// Package embed validates the embedding-combination stage.
package embed

import (
	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/internal/model"
	"github.com/jquell/scval/internal/read"
	"github.com/jquell/scval/internal/version"
	"github.com/jquell/scval/store"
)

// Validate checks the combine_embeddings stage of the opened container.
// totalDims is the total number of dimensions across all modality
// embeddings. The stage only exists once the format gained multi-modality
// support; for older versions Validate is a no-op.
func Validate(root store.Group, details model.Details, totalDims int, ver version.Number) error {
	if !version.RulesFor(ver).PerModality {
		return nil
	}

	stage, err := root.OpenGroup("combine_embeddings")
	if err != nil {
		return errors.Wrap(err, "combine_embeddings")
	}

	if err := validateParameters(stage, details); err != nil {
		return errors.Wrap(errors.Wrap(err, "parameters"), "combine_embeddings")
	}
	if err := validateResults(stage, details, totalDims); err != nil {
		return errors.Wrap(errors.Wrap(err, "results"), "combine_embeddings")
	}
	return nil
}

func validateParameters(stage store.Group, details model.Details) error {
	p, err := stage.OpenGroup("parameters")
	if err != nil {
		return err
	}

	if _, err := p.OpenScalar("approximate", store.Integer); err != nil {
		return err
	}

	// An empty weights group implies unit weight per modality. A non-empty
	// group must cover every declared modality; partial population is an
	// error.
	w, err := p.OpenGroup("weights")
	if err != nil {
		return err
	}
	if len(w.Children()) > 0 {
		for _, m := range details.Modalities {
			if _, err := w.OpenScalar(m, store.Float); err != nil {
				return errors.Wrap(err, "weights")
			}
		}
	}
	return nil
}

func validateResults(stage store.Group, details model.Details, totalDims int) error {
	r, err := stage.OpenGroup("results")
	if err != nil {
		return err
	}

	// With a single modality there is nothing to combine and 'combined'
	// is not applicable; its absence is not checked at all.
	if len(details.Modalities) <= 1 {
		return nil
	}

	return read.FloatMatrix(r, "combined", details.NumCells, totalDims)
}
