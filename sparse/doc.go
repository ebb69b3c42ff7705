// SPDX-License-Identifier: MIT

// Package sparse offers a dictionary-of-keys sparse matrix and the three
// binary operations the calculator needs: Add, Sub and Mul.
//
// The package provides:
//
//   - Sparse, a rows×cols matrix that stores only nonzero float64 entries,
//     keyed by Coord. Get never fails; Set with 0 removes the entry.
//   - Add / Sub over equally shaped operands and Mul over conformable ones,
//     each returning a freshly allocated result and never mutating inputs.
//   - Deterministic iteration (Entries is row-major) so that floating-point
//     summation order and serialized output are reproducible.
//
// Coordinates are not checked against the declared shape: a matrix may hold
// entries outside [0,rows)×[0,cols). Use InBounds or the strict parse option
// of package sparseio when that matters.
//
// See the examples in this package for usage patterns.
package sparse
