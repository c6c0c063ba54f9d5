// Package scval validates persisted analysis-state containers produced by a
// single-cell analysis pipeline. Each pipeline stage stores its parameters
// and results in a named region of the container; scval checks that every
// region conforms to the layout of the declared format version, including
// cross-field consistency rules, without interpreting numeric payloads.
//
// The container itself is opened by the caller and traversed through the
// store.Group contract. One entry point exists per stage; the ingestion
// validator derives the Details record the later stages consume. Any
// violation aborts with a single error chaining the scopes from the
// container root to the failing entry.
package scval

import (
	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/internal/embed"
	"github.com/jquell/scval/internal/inputs"
	"github.com/jquell/scval/internal/model"
	"github.com/jquell/scval/internal/pca"
	"github.com/jquell/scval/internal/selections"
	"github.com/jquell/scval/internal/version"
	"github.com/jquell/scval/store"
)

// Details summarizes the ingested dataset: the declared modalities, one
// feature count per modality, the cell count and the sample count. It is
// produced by ValidateInputs and consumed read-only by later stages.
type Details = model.Details

// Version encodes a major/minor/patch triple into the integer form stored
// alongside the container (major*1e6 + minor*1e3 + patch).
func Version(major, minor, patch int) int {
	return int(version.New(major, minor, patch))
}

// ValidateInputs checks the ingestion stage ("inputs") of the opened
// container and returns the dataset Details. embedded indicates whether the
// referenced data files are byte ranges within the container rather than
// externally identified resources.
func ValidateInputs(root store.Group, embedded bool, ver int) (Details, error) {
	if root == nil {
		return Details{}, errors.New(errors.MissingEntry, "no container opened")
	}
	return inputs.Validate(root, embedded, version.Number(ver))
}

// ValidatePCA checks the dimensionality-reduction stage ("pca") and returns
// the observed number of principal components, which may be less than the
// number requested in the stage parameters.
func ValidatePCA(root store.Group, numCells, ver int) (int, error) {
	if root == nil {
		return 0, errors.New(errors.MissingEntry, "no container opened")
	}
	return pca.Validate(root, numCells, version.Number(ver))
}

// ValidateCombineEmbeddings checks the embedding-combination stage
// ("combine_embeddings"). totalDims is the total number of dimensions
// across all modality embeddings. The stage does not exist before
// multi-modality support and is skipped for older versions.
func ValidateCombineEmbeddings(root store.Group, details Details, totalDims, ver int) error {
	if root == nil {
		return errors.New(errors.MissingEntry, "no container opened")
	}
	return embed.Validate(root, details, totalDims, version.Number(ver))
}

// ValidateCustomSelections checks the ad-hoc selection stage
// ("custom_selections"): the selected cell indices and the per-selection
// marker statistics.
func ValidateCustomSelections(root store.Group, details Details, ver int) error {
	if root == nil {
		return errors.New(errors.MissingEntry, "no container opened")
	}
	return selections.Validate(root, details, version.Number(ver))
}
