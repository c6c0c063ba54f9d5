// Package selections validates the ad-hoc selection stage: user-named sets
// of cell indices and the marker statistics computed for each of them.
package selections

import (
	"fmt"

	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/internal/model"
	"github.com/jquell/scval/internal/read"
	"github.com/jquell/scval/internal/version"
	"github.com/jquell/scval/store"
)

// Validate checks the custom_selections stage of the opened container.
func Validate(root store.Group, details model.Details, ver version.Number) error {
	stage, err := root.OpenGroup("custom_selections")
	if err != nil {
		return errors.Wrap(err, "custom_selections")
	}

	names, err := validateParameters(stage, details.NumCells)
	if err != nil {
		return errors.Wrap(errors.Wrap(err, "parameters"), "custom_selections")
	}

	if err := validateResults(stage, names, details, ver); err != nil {
		return errors.Wrap(errors.Wrap(err, "results"), "custom_selections")
	}
	return nil
}

// validateParameters collects the selection names in stored order and checks
// every selected index against the cell count.
func validateParameters(stage store.Group, numCells int) ([]string, error) {
	p, err := stage.OpenGroup("parameters")
	if err != nil {
		return nil, err
	}
	s, err := p.OpenGroup("selections")
	if err != nil {
		return nil, err
	}

	names := s.Children()
	for _, name := range names {
		frame := fmt.Sprintf("selection '%s'", name)

		indices, err := read.IntVector(s, name)
		if err != nil {
			return nil, errors.Wrap(err, frame)
		}
		for _, idx := range indices {
			if idx < 0 || idx >= int64(numCells) {
				return nil, errors.Wrap(errors.New(errors.RangeViolation, "indices out of range"), frame)
			}
		}
	}
	return names, nil
}

func validateResults(stage store.Group, names []string, details model.Details, ver version.Number) error {
	r, err := stage.OpenGroup("results")
	if err != nil {
		return err
	}

	if version.RulesFor(ver).PerModality {
		return validatePerSelection(r, names, details)
	}
	return validateFlatMarkers(r, names, details.NumFeatures[0])
}

// validatePerSelection checks the multi-modality layout: one group per
// selection, each holding one statistics group per modality.
func validatePerSelection(r store.Group, names []string, details model.Details) error {
	ps, err := r.OpenGroup("per_selection")
	if err != nil {
		return err
	}
	if len(ps.Children()) != len(names) {
		return errors.New(errors.CrossFieldInconsistency, "number of groups in 'per_selection' is not consistent with the expected number of selections")
	}

	for _, name := range names {
		frame := fmt.Sprintf("selection '%s'", name)

		sg, err := ps.OpenGroup(name)
		if err != nil {
			return errors.Wrap(err, frame)
		}
		for i, m := range details.Modalities {
			mg, err := sg.OpenGroup(m)
			if err != nil {
				return errors.Wrap(errors.Wrap(err, fmt.Sprintf("modality '%s'", m)), frame)
			}
			if err := checkMarkerStatistics(mg, details.NumFeatures[i]); err != nil {
				return errors.Wrap(errors.Wrap(err, fmt.Sprintf("modality '%s'", m)), frame)
			}
		}
	}
	return nil
}

// validateFlatMarkers checks the pre-multimodality layout: one flat
// statistics group per selection, sized to the single modality.
func validateFlatMarkers(r store.Group, names []string, numFeatures int) error {
	mk, err := r.OpenGroup("markers")
	if err != nil {
		return err
	}
	if len(mk.Children()) != len(names) {
		return errors.New(errors.CrossFieldInconsistency, "number of groups in 'markers' is not consistent with the expected number of selections")
	}

	for _, name := range names {
		frame := fmt.Sprintf("selection '%s'", name)

		sg, err := mk.OpenGroup(name)
		if err != nil {
			return errors.Wrap(err, frame)
		}
		if err := checkMarkerStatistics(sg, numFeatures); err != nil {
			return errors.Wrap(err, frame)
		}
	}
	return nil
}

// checkMarkerStatistics requires the fixed statistic set, each a float
// vector sized to the feature count.
func checkMarkerStatistics(g store.Group, numFeatures int) error {
	for _, stat := range model.MarkerStatistics {
		if err := read.FloatVector(g, stat, numFeatures); err != nil {
			return err
		}
	}
	return nil
}
