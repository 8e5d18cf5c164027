// SPDX-License-Identifier: MIT

// Package vector provides interval vectors (boxes) and the point-vector
// helpers used by contractors, bisectors and the search engine.
//
// A Vector is a plain []interval.Interval. It is empty as soon as one of its
// components is empty; operations that produce an empty component mark the
// whole box empty with SetEmpty so that emptiness is never partial.
//
// Dimension mismatches between operands are programmer errors and panic with
// an error wrapping ErrDimensionMismatch. DotExact offers an exact
// (correctly bounded) dot product computed with math/big, the oracle used to
// validate rounded accumulations.
package vector
