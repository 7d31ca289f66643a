package testutil

import (
	"math"
	"testing"
)

// AssertClose fails when got is not within tol of want.
func AssertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// AssertOrdered fails when the slice is not non-decreasing.
func AssertOrdered(t *testing.T, name string, values []float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Errorf("%s not ordered at %d: %v < %v", name, i, values[i], values[i-1])
		}
	}
}
