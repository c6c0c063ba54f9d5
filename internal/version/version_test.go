package version

import "testing"

func TestNumberEncoding(t *testing.T) {
	tests := []struct {
		name  string
		n     Number
		major int
		minor int
		patch int
		str   string
	}{
		{name: "v1.0.0", n: New(1, 0, 0), major: 1, minor: 0, patch: 0, str: "1.0.0"},
		{name: "v1.1.0", n: New(1, 1, 0), major: 1, minor: 1, patch: 0, str: "1.1.0"},
		{name: "v2.1.3", n: New(2, 1, 3), major: 2, minor: 1, patch: 3, str: "2.1.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.n.Major() != tt.major || tt.n.Minor() != tt.minor || tt.n.Patch() != tt.patch {
				t.Fatalf("components = %d.%d.%d, want %s", tt.n.Major(), tt.n.Minor(), tt.n.Patch(), tt.str)
			}
			if got := tt.n.String(); got != tt.str {
				t.Fatalf("String() = %q, want %q", got, tt.str)
			}
		})
	}

	if New(1, 1, 0) != MultiMatrix {
		t.Fatalf("New(1,1,0) should encode the multi-matrix boundary")
	}
	if New(2, 0, 0) != MultiModality {
		t.Fatalf("New(2,0,0) should encode the multi-modality boundary")
	}
}

func TestRulesForRanges(t *testing.T) {
	tests := []struct {
		name        string
		n           Number
		multiMatrix bool
		blockMethod bool
		perModality bool
		identity    RowIdentityRule
	}{
		{name: "below first boundary", n: New(1, 0, 0), identity: RowIdentityLegacy},
		{name: "patch within 1.0", n: New(1, 0, 999), identity: RowIdentityLegacy},
		{name: "at 1.1", n: MultiMatrix, multiMatrix: true, blockMethod: true, identity: RowIdentityLegacy},
		{name: "patch within 1.1", n: New(1, 1, 5), multiMatrix: true, blockMethod: true, identity: RowIdentityLegacy},
		{name: "at 1.2", n: FlatIdentities, multiMatrix: true, blockMethod: true, identity: RowIdentityFlat},
		{name: "at 2.0", n: MultiModality, multiMatrix: true, blockMethod: true, perModality: true, identity: RowIdentityPerModality},
		{name: "beyond 2.0", n: New(2, 1, 0), multiMatrix: true, blockMethod: true, perModality: true, identity: RowIdentityPerModality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RulesFor(tt.n)
			if r.MultiMatrixFormat != tt.multiMatrix {
				t.Fatalf("MultiMatrixFormat = %v, want %v", r.MultiMatrixFormat, tt.multiMatrix)
			}
			if r.BlockMethod != tt.blockMethod {
				t.Fatalf("BlockMethod = %v, want %v", r.BlockMethod, tt.blockMethod)
			}
			if r.PerModality != tt.perModality {
				t.Fatalf("PerModality = %v, want %v", r.PerModality, tt.perModality)
			}
			if r.RowIdentity != tt.identity {
				t.Fatalf("RowIdentity = %v, want %v", r.RowIdentity, tt.identity)
			}
		})
	}
}

func TestBlockMethodVocabularySwitchesAtTwoPointZero(t *testing.T) {
	pre := RulesFor(New(1, 2, 0)).BlockMethods
	post := RulesFor(New(2, 0, 0)).BlockMethods

	contains := func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	}

	if !contains(pre, "mnn") || contains(pre, "weight") {
		t.Fatalf("pre-2.0 vocabulary = %v", pre)
	}
	if contains(post, "mnn") || !contains(post, "weight") {
		t.Fatalf("post-2.0 vocabulary = %v", post)
	}
}

func TestCorrectedRequirementIsBounded(t *testing.T) {
	if RulesFor(New(1, 0, 0)).CorrectedOnMNN {
		t.Fatalf("corrected must not be required before 1.1")
	}
	if !RulesFor(New(1, 1, 0)).CorrectedOnMNN || !RulesFor(New(1, 2, 7)).CorrectedOnMNN {
		t.Fatalf("corrected must be required in [1.1, 2.0)")
	}
	if RulesFor(New(2, 0, 0)).CorrectedOnMNN {
		t.Fatalf("corrected must not be required from 2.0")
	}
}
