package matching

import (
	"errors"
	"fmt"
	"math"
)

var ErrDimensionMismatch = errors.New("vector dimension mismatch")

type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %d != %d", ErrDimensionMismatch.Error(), e.Left, e.Right)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// CosineSimilarity returns dot(a,b) / (|a| * |b|).
//
// The result is 0 when either vector has zero magnitude, and never NaN or
// Inf. Vectors of different length fail with *DimensionMismatchError.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Left: len(a), Right: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, nil
	}
	return sim, nil
}
