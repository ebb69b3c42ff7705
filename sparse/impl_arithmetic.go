// SPDX-License-Identifier: MIT
// Package sparse provides the arithmetic kernels over Sparse operands:
// element-wise addition, subtraction and matrix multiplication.
// All functions perform fail-fast validation and return wrapped sentinels on
// nil operands or dimension mismatches.
//
// Notes:
//   - Kernels never mutate their inputs; every result is freshly allocated.
//   - Walk order is row-major (Entries) so float summation is reproducible.

package sparse

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opMul      = "Mul"
	opAllClose = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation and accumulation.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: copy every entry of a into the result.
//   - Stage 3: walk b row-major, add sign*v into the accumulator; an exact
//     zero sum removes the coordinate.
//
// Behavior highlights:
//   - All of a is accumulated first, then each entry of b is applied, so the
//     floating-point order is fixed.
//   - No epsilon: only an exact 0 sum is dropped.
//
// Complexity:
//   - Time O(nnz(a) + nnz(b) log nnz(b)), Space O(nnz(a) + nnz(b)).
func addSub(a, b *Sparse, sign float64, opTag string) (*Sparse, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res := newSparse(a.rows, a.cols, len(a.data)+len(b.data))
	for k, v := range a.data {
		res.data[k] = v
	}

	var sum float64
	for _, e := range b.Entries() {
		k := Coord{Row: e.Row, Col: e.Col}
		sum = res.data[k] + sign*e.Value
		if sum == 0 {
			delete(res.data, k)
			continue
		}
		res.data[k] = sum
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Notes:
//   - Result has A's dimensions. Coordinates whose sum is exactly 0 are absent.
func Add(a, b *Sparse) (*Sparse, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B, i.e. A + (-B).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b *Sparse) (*Sparse, error) { return addSub(a, b, -1, opSub) }

// Mul performs the sparse product C = A × B.
//
// Implementation:
//   - Stage 1: validate operands and inner dimension (A.Cols == B.Rows).
//   - Stage 2: index B's entries by row (row-major, so each bucket is col-sorted).
//   - Stage 3: for every entry (i,k,a) of A in row-major order and every
//     (k,j,b) in B's bucket k, accumulate a*b into (i,j).
//   - Stage 4: store each accumulated sum once, only if |sum| > eps.
//
// Behavior highlights:
//   - Partial sums are never dropped early; the zero decision is taken once per
//     coordinate after all pairs are accumulated.
//   - Index matching is exact integer equality; eps applies to values only.
//
// Inputs:
//   - a: left matrix (r × n); b: right matrix (n × c).
//   - opts: WithEpsilon overrides DefaultEpsilon.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(nnz(A) · avg bucket size + sort), Space O(nnz(B) + nnz(C)).
func Mul(a, b *Sparse, opts ...Option) (*Sparse, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	o := gatherOptions(opts...)

	byRow := make(map[int][]Entry, b.rows)
	for _, e := range b.Entries() {
		byRow[e.Row] = append(byRow[e.Row], e)
	}

	acc := make(map[Coord]float64)
	for _, ae := range a.Entries() {
		for _, be := range byRow[ae.Col] {
			acc[Coord{Row: ae.Row, Col: be.Col}] += ae.Value * be.Value
		}
	}

	res := newSparse(a.rows, b.cols, len(acc))
	for k, v := range acc {
		if math.Abs(v) > o.eps {
			res.data[k] = v
		}
	}

	return res, nil
}
