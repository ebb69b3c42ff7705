// SPDX-License-Identifier: MIT

// Package calc selects and applies one of the calculator's binary operations
// and drives the read → compute → write pipeline.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/sparsecalc/sparse"
)

// ErrInvalidOperation is returned for an unrecognized operator symbol.
var ErrInvalidOperation = errors.New("calc: invalid operation")

// Op is a binary matrix operation, identified by its symbol.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
)

// Ops lists the supported operations in prompt order.
var Ops = []Op{OpAdd, OpSub, OpMul}

// aliases maps accepted spellings (lower-cased) to operations.
var aliases = map[string]Op{
	"+":        OpAdd,
	"add":      OpAdd,
	"-":        OpSub,
	"sub":      OpSub,
	"subtract": OpSub,
	"*":        OpMul,
	"mul":      OpMul,
	"multiply": OpMul,
}

// ParseOp resolves a symbol (+, -, *) or word alias (add, sub, mul, ...).
// Surrounding whitespace and letter case are ignored.
func ParseOp(s string) (Op, error) {
	if op, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}

	return "", fmt.Errorf("%q: %w", s, ErrInvalidOperation)
}

// Name returns the operation's word form, used in logs.
func (op Op) Name() string {
	switch op {
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMul:
		return "multiplication"
	default:
		return "unknown"
	}
}

// Apply computes a <op> b.
// Add/Sub require equal shapes and Mul requires a.Cols == b.Rows; otherwise
// the error matches sparse.ErrDimensionMismatch. opts only affect Mul.
func (op Op) Apply(a, b *sparse.Sparse, opts ...sparse.Option) (*sparse.Sparse, error) {
	switch op {
	case OpAdd:
		return sparse.Add(a, b)
	case OpSub:
		return sparse.Sub(a, b)
	case OpMul:
		return sparse.Mul(a, b, opts...)
	default:
		return nil, fmt.Errorf("%q: %w", string(op), ErrInvalidOperation)
	}
}
