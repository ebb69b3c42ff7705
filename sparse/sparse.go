// SPDX-License-Identifier: MIT

// Package sparse - dictionary-of-keys storage & accessors.
//
// Purpose:
//   - Store only nonzero entries in a map keyed by Coord.
//   - Keep the public surface total: Get/Set never fail and never panic.
//   - Provide deterministic row-major iteration for kernels and serializers.
//
// Invariant:
//   - No stored entry has a value of exactly 0.0 (Set deletes on zero).
//
// Complexity quicksheet:
//   - New: O(1); Get/Set: O(1) average; Entries: O(nnz log nnz); Clone: O(nnz).

package sparse

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Coord is a 0-based (row, col) position. Used as the map key.
type Coord struct {
	Row int
	Col int
}

// Entry is a stored nonzero (row, col, value) triple.
type Entry struct {
	Row   int
	Col   int
	Value float64
}

// Sparse is a rows×cols matrix holding only its nonzero entries.
//   - rows, cols are fixed at construction.
//   - data maps coordinates to nonzero values.
type Sparse struct {
	rows, cols int
	data       map[Coord]float64
}

var _ fmt.Stringer = (*Sparse)(nil)

// New creates an empty rows×cols matrix.
// Zero-sized shapes (0×N, N×0) are legal; negative ones return ErrBadShape.
// Complexity: O(1).
func New(rows, cols int) (*Sparse, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return newSparse(rows, cols, 0), nil
}

// newSparse is the internal constructor for shapes already known to be valid.
// hint pre-sizes the map.
func newSparse(rows, cols, hint int) *Sparse {
	return &Sparse{rows: rows, cols: cols, data: make(map[Coord]float64, hint)}
}

// Rows returns the declared number of rows.
func (m *Sparse) Rows() int { return m.rows }

// Cols returns the declared number of columns.
func (m *Sparse) Cols() int { return m.cols }

// NNZ returns the number of stored (nonzero) entries.
func (m *Sparse) NNZ() int { return len(m.data) }

// Get returns the value at (row, col), or 0 when nothing is stored there.
// Coordinates are not bounds-checked.
// Complexity: O(1) average.
func (m *Sparse) Get(row, col int) float64 {
	return m.data[Coord{Row: row, Col: col}]
}

// Set stores v at (row, col). A value of exactly 0 removes any existing entry
// instead, keeping the no-stored-zero invariant.
// Coordinates are not bounds-checked.
// Complexity: O(1) average.
func (m *Sparse) Set(row, col int, v float64) {
	k := Coord{Row: row, Col: col}
	if v == 0 {
		delete(m.data, k)
		return
	}
	m.data[k] = v
}

// InBounds reports whether (row, col) lies inside the declared shape.
func (m *Sparse) InBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// Entries returns every stored entry in row-major order (row asc, col asc).
// The returned slice is a fresh copy; mutating it does not affect m.
//
// Determinism:
//   - Map iteration order is random in Go; sorting makes kernels that walk
//     Entries sum in a reproducible order.
//
// Complexity:
//   - Time O(nnz log nnz), Space O(nnz).
func (m *Sparse) Entries() []Entry {
	out := make([]Entry, 0, len(m.data))
	for k, v := range m.data {
		out = append(out, Entry{Row: k.Row, Col: k.Col, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})

	return out
}

// Clone returns a deep copy with the same shape and entries.
// Complexity: O(nnz).
func (m *Sparse) Clone() *Sparse {
	out := newSparse(m.rows, m.cols, len(m.data))
	for k, v := range m.data {
		out.data[k] = v
	}

	return out
}

// Negate returns a new matrix with every stored value negated.
// Complexity: O(nnz).
func (m *Sparse) Negate() *Sparse {
	out := newSparse(m.rows, m.cols, len(m.data))
	for k, v := range m.data {
		out.data[k] = -v
	}

	return out
}

// ToDense materializes the in-bounds entries as a rows×cols slice of rows.
// Entries outside the declared shape are skipped.
// Complexity: O(rows*cols + nnz).
func (m *Sparse) ToDense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
	}
	for k, v := range m.data {
		if m.InBounds(k.Row, k.Col) {
			out[k.Row][k.Col] = v
		}
	}

	return out
}

// String implements fmt.Stringer for debugging: shape header plus row-major entries.
func (m *Sparse) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sparse(%dx%d, nnz=%d)", m.rows, m.cols, len(m.data))
	for _, e := range m.Entries() {
		fmt.Fprintf(&sb, "\n  (%d, %d) = %g", e.Row, e.Col, e.Value)
	}

	return sb.String()
}

// Equal reports whether a and b have the same shape and exactly the same
// stored entries. Two nil matrices are equal.
func Equal(a, b *Sparse) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.rows != b.rows || a.cols != b.cols || len(a.data) != len(b.data) {
		return false
	}
	for k, av := range a.data {
		bv, ok := b.data[k]
		if !ok || av != bv {
			return false
		}
	}

	return true
}

// AllClose reports whether a and b have the same shape and agree entrywise
// within |a-b| ≤ atol, treating absent entries as 0.
// Negative atol is normalized to |atol|; a non-finite atol yields ErrNaNInf.
//
// Complexity: O(nnz(a) + nnz(b)).
func AllClose(a, b *Sparse, atol float64) (bool, error) {
	if math.IsNaN(atol) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	if atol < 0 {
		atol = -atol
	}
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	// Walk a's entries, then b's entries not present in a.
	for k, av := range a.data {
		if math.Abs(av-b.data[k]) > atol {
			return false, nil
		}
	}
	for k, bv := range b.data {
		if _, seen := a.data[k]; seen {
			continue
		}
		if math.Abs(bv) > atol {
			return false, nil
		}
	}

	return true, nil
}
