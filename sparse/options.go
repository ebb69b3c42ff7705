// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for the arithmetic kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package sparse

import "math"

// DefaultEpsilon is the tolerance Mul uses to decide that an accumulated
// product sum is zero and must not be stored.
const DefaultEpsilon = 1e-10

const panicEpsilonInvalid = "sparse: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps float64 // >= 0; DefaultEpsilon
}

// WithEpsilon sets the zero tolerance used by Mul when storing results.
// An entry is kept only if |sum| > eps; eps == 0 keeps every nonzero sum.
//
// Panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// NewOptions resolves opts on top of the defaults.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon reports the resolved zero tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// gatherOptions applies opts in order; nil setters are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
