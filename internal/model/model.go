// Package model holds the records shared between stage validators.
package model

// Details summarizes the ingested dataset. It is produced once by the
// ingestion validator and consumed read-only by every later stage.
type Details struct {
	// Modalities lists the distinct modality names in stored order.
	Modalities []string
	// NumFeatures holds one feature count per modality, in the same order.
	NumFeatures []int
	// NumCells is the number of cells in the loaded dataset.
	NumCells int
	// NumSamples is the number of samples represented by the dataset.
	NumSamples int
}

// MarkerStatistics is the fixed ordered set of per-feature statistics
// required wherever marker results are reported.
var MarkerStatistics = []string{"means", "detected", "lfc", "delta_detected", "cohen", "auc"}
