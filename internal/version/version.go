// Package version encodes analysis-state format versions and the schema
// rules active within each version range.
package version

import "fmt"

// Number is an integer-encoded format version: major*1e6 + minor*1e3 + patch.
// Numbers are totally ordered, and every schema decision is a half-open
// range comparison so patch releases never change behavior.
type Number int

// New encodes a major/minor/patch triple.
func New(major, minor, patch int) Number {
	return Number(major*1_000_000 + minor*1_000 + patch)
}

// Major returns the major component.
func (n Number) Major() int { return int(n) / 1_000_000 }

// Minor returns the minor component.
func (n Number) Minor() int { return int(n) / 1_000 % 1_000 }

// Patch returns the patch component.
func (n Number) Patch() int { return int(n) % 1_000 }

// String renders the dotted form, e.g. "2.1.0".
func (n Number) String() string {
	return fmt.Sprintf("%d.%d.%d", n.Major(), n.Minor(), n.Patch())
}

// Schema boundaries at which the container layout changed.
const (
	// MultiMatrix introduced multi-matrix inputs (array-valued format,
	// sample_groups/sample_names) and the PCA block_method field.
	MultiMatrix Number = 1_001_000
	// FlatIdentities replaced permutation/indices with a single
	// identities array.
	FlatIdentities Number = 1_002_000
	// MultiModality introduced per-modality num_features and identities
	// groups and the combined-embeddings stage.
	MultiModality Number = 2_000_000
)

// RowIdentityRule names the active row-identity representation.
type RowIdentityRule int

const (
	// RowIdentityLegacy uses a permutation array for single-matrix inputs
	// and an indices array for multi-matrix inputs.
	RowIdentityLegacy RowIdentityRule = iota
	// RowIdentityFlat uses a single identities array.
	RowIdentityFlat
	// RowIdentityPerModality uses one identities array per modality.
	RowIdentityPerModality
)

// Rules captures the schema behaviors active for one version range.
type Rules struct {
	// MultiMatrixFormat permits an array-valued inputs format.
	MultiMatrixFormat bool
	// BlockMethod requires the PCA block_method parameter.
	BlockMethod bool
	// BlockMethods is the accepted block_method vocabulary.
	BlockMethods []string
	// CorrectedOnMNN requires the corrected PCA matrix when
	// block_method is "mnn".
	CorrectedOnMNN bool
	// PerModality switches num_features and identities to per-modality
	// groups and enables the combined-embeddings stage.
	PerModality bool
	// RowIdentity selects the row-identity representation.
	RowIdentity RowIdentityRule
}

// The table maps ascending half-open ranges [lo, next lo) to rule variants.
// Versions below the first boundary use the oldest variant.
var ranges = []struct {
	lo    Number
	rules Rules
}{
	{
		lo: 0,
		rules: Rules{
			RowIdentity: RowIdentityLegacy,
		},
	},
	{
		lo: MultiMatrix,
		rules: Rules{
			MultiMatrixFormat: true,
			BlockMethod:       true,
			BlockMethods:      []string{"none", "regress", "mnn"},
			CorrectedOnMNN:    true,
			RowIdentity:       RowIdentityLegacy,
		},
	},
	{
		lo: FlatIdentities,
		rules: Rules{
			MultiMatrixFormat: true,
			BlockMethod:       true,
			BlockMethods:      []string{"none", "regress", "mnn"},
			CorrectedOnMNN:    true,
			RowIdentity:       RowIdentityFlat,
		},
	},
	{
		lo: MultiModality,
		rules: Rules{
			MultiMatrixFormat: true,
			BlockMethod:       true,
			BlockMethods:      []string{"none", "regress", "weight"},
			PerModality:       true,
			RowIdentity:       RowIdentityPerModality,
		},
	},
}

// RulesFor resolves the rule variant whose range contains n.
func RulesFor(n Number) Rules {
	active := ranges[0].rules
	for _, r := range ranges[1:] {
		if n < r.lo {
			break
		}
		active = r.rules
	}
	return active
}
