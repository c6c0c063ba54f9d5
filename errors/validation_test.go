package errors

import (
	"fmt"
	"testing"
)

func TestValidationErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		v    Validation
	}{
		{
			name: "message only",
			v:    Validation{Kind: MissingEntry, Message: "'format' not found"},
			want: "[missing-entry] 'format' not found",
		},
		{
			name: "single context",
			v: Validation{
				Kind:    TypeMismatch,
				Message: "'name' is not a string scalar",
				Context: []string{"file 3"},
			},
			want: "file 3: [type-mismatch] 'name' is not a string scalar",
		},
		{
			name: "contexts render outermost first",
			v: Validation{
				Kind:    RangeViolation,
				Message: "index 12 out of range",
				Context: []string{"selection 'clusterA'", "parameters", "custom_selections"},
			},
			want: "custom_selections: parameters: selection 'clusterA': [range-violation] index 12 out of range",
		},
		{
			name: "no kind",
			v:    Validation{Message: "read failed"},
			want: "read failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPrefixesExactlyOneFrame(t *testing.T) {
	inner := New(CrossFieldInconsistency, "sum of 'sample_groups' is not equal to the number of files")

	wrapped := Wrap(inner, "parameters")
	if got, want := wrapped.Error(), "parameters: "+inner.Error(); got != want {
		t.Fatalf("Wrap() = %q, want %q", got, want)
	}

	outer := Wrap(wrapped, "inputs")
	if got, want := outer.Error(), "inputs: "+wrapped.Error(); got != want {
		t.Fatalf("double Wrap() = %q, want %q", got, want)
	}

	v, ok := AsValidation(outer)
	if !ok {
		t.Fatalf("expected Validation from wrapped error")
	}
	if len(v.Context) != 2 || v.Context[0] != "parameters" || v.Context[1] != "inputs" {
		t.Fatalf("unexpected context stack: %v", v.Context)
	}
}

func TestWrapDoesNotMutateInner(t *testing.T) {
	inner := New(MissingEntry, "'pcs' not found")
	_ = Wrap(inner, "results")
	if len(inner.Context) != 0 {
		t.Fatalf("Wrap mutated the inner error: %v", inner.Context)
	}
}

func TestWrapAdoptsForeignErrors(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("backing store closed"), "inputs")
	v, ok := AsValidation(wrapped)
	if !ok {
		t.Fatalf("expected Validation")
	}
	if v.Kind != "" || v.Message != "backing store closed" {
		t.Fatalf("unexpected adoption: kind=%q message=%q", v.Kind, v.Message)
	}
	if got := wrapped.Error(); got != "inputs: backing store closed" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "inputs") != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
}

func TestIs(t *testing.T) {
	err := Wrap(New(UniquenessViolation, "duplicate sample name 'a'"), "parameters")
	if !Is(err, UniquenessViolation) {
		t.Fatalf("expected uniqueness kind to survive wrapping")
	}
	if Is(err, MissingEntry) {
		t.Fatalf("kind should not match missing-entry")
	}
	if Is(nil, MissingEntry) {
		t.Fatalf("nil error should not match any kind")
	}
}
