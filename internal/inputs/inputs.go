// Package inputs validates the ingestion stage of an analysis-state
// container and derives the dataset Details consumed by every later stage.
package inputs

import (
	"fmt"
	"strconv"

	"github.com/jquell/scval/errors"
	"github.com/jquell/scval/internal/model"
	"github.com/jquell/scval/internal/read"
	"github.com/jquell/scval/internal/version"
	"github.com/jquell/scval/store"
)

// paramInfo carries parameter-phase findings into the results phase.
type paramInfo struct {
	numMatrices int
	multiMatrix bool
	multiSample bool
}

// span is the byte range of one embedded file.
type span struct {
	offset int64
	size   int64
}

// Validate checks the inputs stage of the opened container and returns the
// dataset Details. embedded indicates whether the referenced files are byte
// ranges within the container rather than external identifiers.
func Validate(root store.Group, embedded bool, ver version.Number) (model.Details, error) {
	stage, err := root.OpenGroup("inputs")
	if err != nil {
		return model.Details{}, errors.Wrap(err, "inputs")
	}

	info, err := validateParameters(stage, embedded, ver)
	if err != nil {
		return model.Details{}, errors.Wrap(errors.Wrap(err, "parameters"), "inputs")
	}

	details, err := validateResults(stage, info, ver)
	if err != nil {
		return model.Details{}, errors.Wrap(errors.Wrap(err, "results"), "inputs")
	}
	return details, nil
}

func validateParameters(stage store.Group, embedded bool, ver version.Number) (paramInfo, error) {
	p, err := stage.OpenGroup("parameters")
	if err != nil {
		return paramInfo{}, err
	}
	rules := version.RulesFor(ver)

	formats, multi, err := readFormats(p, rules)
	if err != nil {
		return paramInfo{}, err
	}
	info := paramInfo{numMatrices: len(formats), multiMatrix: multi}

	files, err := p.OpenGroup("files")
	if err != nil {
		return info, err
	}
	nfiles := len(files.Children())

	runs, err := fileRuns(p, formats, multi, nfiles)
	if err != nil {
		return info, err
	}

	// One run of files per declared matrix, addressed by their global
	// position within 'files'.
	var spans []span
	sofar := 0
	for r := range runs {
		types := make([]string, 0, runs[r])
		for s := 0; s < runs[r]; s++ {
			name := strconv.Itoa(sofar)
			sofar++

			typ, sp, err := validateFile(files, name, embedded)
			if err != nil {
				return info, errors.Wrap(err, "file "+name)
			}
			types = append(types, typ)
			if embedded {
				spans = append(spans, sp)
			}
		}
		if err := checkRunTypes(formats[r], types); err != nil {
			return info, err
		}
	}

	if embedded {
		if err := checkContiguous(spans); err != nil {
			return info, err
		}
	}

	if !multi && p.Exists("sample_factor") {
		if _, err := read.String(p, "sample_factor"); err != nil {
			return info, err
		}
		info.multiSample = true
	} else {
		info.multiSample = multi
	}
	return info, nil
}

// readFormats loads the declared matrix formats. A scalar format describes a
// single matrix; an array is only permitted once the schema gained
// multi-matrix support.
func readFormats(p store.Group, rules version.Rules) ([]string, bool, error) {
	if !rules.MultiMatrixFormat {
		s, err := read.String(p, "format")
		if err != nil {
			if errors.Is(err, errors.TypeMismatch) {
				if _, arrErr := p.OpenArray("format", store.String, nil); arrErr == nil {
					return nil, false, errors.New(errors.TypeMismatch, "'format' must be a scalar string before version 1.1")
				}
			}
			return nil, false, err
		}
		return []string{s}, false, nil
	}

	if v, err := p.OpenArray("format", store.String, nil); err == nil {
		if len(v.Shape()) != 1 {
			return nil, false, errors.New(errors.ShapeMismatch, "'format' is not one-dimensional")
		}
		return v.Strings(), true, nil
	} else if !errors.Is(err, errors.TypeMismatch) {
		return nil, false, err
	}

	s, err := read.String(p, "format")
	if err != nil {
		return nil, false, err
	}
	return []string{s}, false, nil
}

// fileRuns partitions the file entries into one run per matrix. Multi-matrix
// inputs declare the partition through sample_groups; single-matrix inputs
// own every file.
func fileRuns(p store.Group, formats []string, multi bool, nfiles int) ([]int, error) {
	if !multi {
		return []int{nfiles}, nil
	}

	groups, err := read.IntVector(p, "sample_groups")
	if err != nil {
		return nil, err
	}
	if len(groups) != len(formats) {
		return nil, errors.New(errors.CrossFieldInconsistency, "'sample_groups' and 'format' should have the same length")
	}

	total := 0
	runs := make([]int, len(groups))
	for i, g := range groups {
		runs[i] = int(g)
		total += int(g)
	}
	if total != nfiles {
		return nil, errors.New(errors.CrossFieldInconsistency, "sum of 'sample_groups' is not equal to the length of 'files'")
	}

	names, err := read.StringVector(p, "sample_names")
	if err != nil {
		return nil, err
	}
	if len(names) != len(formats) {
		return nil, errors.New(errors.CrossFieldInconsistency, "'sample_names' and 'format' should have the same length")
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return nil, errors.New(errors.UniquenessViolation, "duplicated sample name '%s' in 'sample_names'", n)
		}
		seen[n] = struct{}{}
	}
	return runs, nil
}

func validateFile(files store.Group, name string, embedded bool) (string, span, error) {
	fg, err := files.OpenGroup(name)
	if err != nil {
		return "", span{}, err
	}

	if _, err := read.String(fg, "name"); err != nil {
		return "", span{}, err
	}
	typ, err := read.String(fg, "type")
	if err != nil {
		return "", span{}, err
	}

	if !embedded {
		if _, err := read.String(fg, "id"); err != nil {
			return "", span{}, err
		}
		return typ, span{}, nil
	}

	offset, err := read.IntScalar(fg, "offset")
	if err != nil {
		return "", span{}, err
	}
	size, err := read.IntScalar(fg, "size")
	if err != nil {
		return "", span{}, err
	}
	if offset < 0 || size < 0 {
		return "", span{}, errors.New(errors.RangeViolation, "'offset' and 'size' must be non-negative")
	}
	return typ, span{offset: offset, size: size}, nil
}

// checkRunTypes validates the set of file types within one run against its
// declared format. Formats other than the known three are opaque custom
// resources and carry no type constraint.
func checkRunTypes(format string, types []string) error {
	switch format {
	case "MatrixMarket":
		counts := map[string]int{}
		for _, t := range types {
			switch t {
			case "mtx", "genes", "annotations":
				counts[t]++
			default:
				return errors.New(errors.UnknownEnumValue, "unknown file type '%s' when format is 'MatrixMarket'", t)
			}
		}
		if counts["mtx"] != 1 {
			return errors.New(errors.CrossFieldInconsistency, "expected exactly one 'mtx' file when format is 'MatrixMarket'")
		}
		if counts["genes"] > 1 {
			return errors.New(errors.CrossFieldInconsistency, "expected no more than one 'genes' file when format is 'MatrixMarket'")
		}
		if counts["annotations"] > 1 {
			return errors.New(errors.CrossFieldInconsistency, "expected no more than one 'annotations' file when format is 'MatrixMarket'")
		}
	case "10X", "H5AD":
		if len(types) != 1 || types[0] != "h5" {
			return errors.New(errors.CrossFieldInconsistency, "expected exactly one 'h5' file when format is '%s'", format)
		}
	}
	return nil
}

// checkContiguous requires the byte ranges, taken in file order, to
// partition the embedded payload contiguously from offset zero.
func checkContiguous(spans []span) error {
	var next int64
	for _, sp := range spans {
		if sp.offset != next {
			return errors.New(errors.CrossFieldInconsistency, "offsets and sizes of 'files' are not sorted and contiguous")
		}
		next += sp.size
	}
	return nil
}

func validateResults(stage store.Group, info paramInfo, ver version.Number) (model.Details, error) {
	r, err := stage.OpenGroup("results")
	if err != nil {
		return model.Details{}, err
	}
	rules := version.RulesFor(ver)

	var details model.Details
	if rules.PerModality {
		numCells, err := read.IntScalar(r, "num_cells")
		if err != nil {
			return details, err
		}
		details.NumCells = int(numCells)

		fg, err := r.OpenGroup("num_features")
		if err != nil {
			return details, err
		}
		mods := fg.Children()
		if len(mods) == 0 {
			return details, errors.New(errors.RangeViolation, "number of modalities should be positive")
		}
		for _, m := range mods {
			n, err := read.IntScalar(fg, m)
			if err != nil {
				return details, errors.Wrap(err, fmt.Sprintf("modality '%s'", m))
			}
			details.Modalities = append(details.Modalities, m)
			details.NumFeatures = append(details.NumFeatures, int(n))
		}
	} else {
		dims, err := read.IntVector(r, "dimensions")
		if err != nil {
			return details, err
		}
		if len(dims) != 2 {
			return details, errors.New(errors.ShapeMismatch, "'dimensions' should be a dataset of length 2")
		}
		if dims[0] < 0 || dims[1] < 0 {
			return details, errors.New(errors.RangeViolation, "'dimensions' should contain non-negative integers")
		}
		details.Modalities = []string{"RNA"}
		details.NumFeatures = []int{int(dims[0])}
		details.NumCells = int(dims[1])
	}

	details.NumSamples = 1
	if r.Exists("num_samples") {
		n, err := read.IntScalar(r, "num_samples")
		if err != nil {
			return details, err
		}
		details.NumSamples = int(n)
	}
	if info.multiMatrix {
		if details.NumSamples != info.numMatrices {
			return details, errors.New(errors.CrossFieldInconsistency, "'num_samples' should be equal to the number of matrices")
		}
	} else if !info.multiSample && details.NumSamples != 1 {
		return details, errors.New(errors.CrossFieldInconsistency, "'num_samples' should be 1 for single matrix inputs without 'sample_factor'")
	}
	if details.NumSamples < 1 {
		return details, errors.New(errors.RangeViolation, "'num_samples' must be positive")
	}

	if err := validateRowIdentities(r, info, rules, details); err != nil {
		return details, err
	}
	return details, nil
}

// validateRowIdentities checks the row-identity bookkeeping under the
// representation active for this version range.
func validateRowIdentities(r store.Group, info paramInfo, rules version.Rules, details model.Details) error {
	switch rules.RowIdentity {
	case version.RowIdentityPerModality:
		ig, err := r.OpenGroup("identities")
		if err != nil {
			return err
		}
		for i, m := range details.Modalities {
			frame := fmt.Sprintf("modality '%s'", m)
			ids, err := read.IntVector(ig, m)
			if err != nil {
				return errors.Wrap(err, frame)
			}
			if len(ids) != details.NumFeatures[i] {
				return errors.Wrap(errors.New(errors.CrossFieldInconsistency, "'identities' should have length equal to the number of features"), frame)
			}
			if err := checkDistinct(ids, "'identities'"); err != nil {
				return errors.Wrap(err, frame)
			}
		}
		return nil

	case version.RowIdentityFlat:
		ids, err := read.IntVector(r, "identities")
		if err != nil {
			return err
		}
		if len(ids) != details.NumFeatures[0] {
			return errors.New(errors.CrossFieldInconsistency, "'identities' should have length equal to the number of genes")
		}
		return checkDistinct(ids, "'identities'")

	default:
		if info.multiMatrix {
			ids, err := read.IntVector(r, "indices")
			if err != nil {
				return err
			}
			if len(ids) != details.NumFeatures[0] {
				return errors.New(errors.CrossFieldInconsistency, "'indices' should have length equal to the number of genes")
			}
			return checkDistinct(ids, "'indices'")
		}

		perms, err := read.IntVector(r, "permutation")
		if err != nil {
			return err
		}
		if len(perms) != details.NumFeatures[0] {
			return errors.New(errors.CrossFieldInconsistency, "'permutation' should have length equal to the number of genes")
		}
		return checkPermutation(perms)
	}
}

// checkDistinct requires pairwise-distinct non-negative values. Values may
// index into a larger original feature space, so no upper bound applies.
func checkDistinct(vals []int64, what string) error {
	seen := make(map[int64]struct{}, len(vals))
	for _, v := range vals {
		if v < 0 {
			return errors.New(errors.RangeViolation, "%s contains negative values", what)
		}
		if _, ok := seen[v]; ok {
			return errors.New(errors.UniquenessViolation, "%s contains duplicate values", what)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// checkPermutation requires the values to form a bijection on [0, len):
// every value in range and none repeated. Together with the length check
// against the feature count, any missing index necessarily shows up as a
// duplicate.
func checkPermutation(perms []int64) error {
	used := make([]bool, len(perms))
	for _, p := range perms {
		if p < 0 || p >= int64(len(perms)) {
			return errors.New(errors.RangeViolation, "'permutation' contains out-of-range values")
		}
		if used[p] {
			return errors.New(errors.UniquenessViolation, "duplicated index in 'permutation'")
		}
		used[p] = true
	}
	return nil
}
