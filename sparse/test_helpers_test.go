// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernel and accessor tests.

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsecalc/sparse"
)

// MustNew ALLOCATES an r×c *Sparse or fails the test.
func MustNew(t *testing.T, r, c int) *sparse.Sparse {
	t.Helper()
	m, err := sparse.New(r, c)
	if err != nil {
		t.Fatalf("New(%d,%d): %v", r, c, err)
	}

	return m
}

// FromEntries builds an r×c matrix and Sets every triple in order.
func FromEntries(t *testing.T, r, c int, entries ...sparse.Entry) *sparse.Sparse {
	t.Helper()
	m := MustNew(t, r, c)
	for _, e := range entries {
		m.Set(e.Row, e.Col, e.Value)
	}

	return m
}

// Identity returns an n×n identity matrix.
func Identity(t *testing.T, n int) *sparse.Sparse {
	t.Helper()
	m := MustNew(t, n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	return m
}

// RandomSparse fills roughly density*r*c cells with small integers in [-5,5]
// using a fixed seed. Small integers keep sums exact so properties can be
// checked with Equal.
func RandomSparse(t *testing.T, r, c int, density float64, seed int64) *sparse.Sparse {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustNew(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if rng.Float64() < density {
				m.Set(i, j, float64(rng.Intn(11)-5))
			}
		}
	}

	return m
}

// e is shorthand for an Entry literal.
func e(row, col int, v float64) sparse.Entry {
	return sparse.Entry{Row: row, Col: col, Value: v}
}
