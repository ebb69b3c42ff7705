// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All operations return these sentinels (optionally wrapped with an operation
// tag) and tests check them via errors.Is. No operation panics on
// user-triggered error conditions; panics are reserved for invalid option
// values (programmer error).

package sparse

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<0 or cols<0).
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a coordinate outside [0,rows)×[0,cols).
	// Only returned by callers that opt into bounds validation.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Sparse was passed as an operand.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")
)
