// SPDX-License-Identifier: MIT

// Package certify proves that a box holds a solution of a square system of
// equations.
//
// A Certifier inflates the box, applies a Newton-type prover once and
// requires the image to lie strictly inside the inflation: by Brouwer's
// fixed-point theorem the image then holds a unique solution. A funnel
// contractor brings the witness back inside the original box; parts that
// still protrude are cut off one sliver at a time, each sliver being
// contracted until proven empty.
//
// Certification failure is not an error: Certify returns NotProved and the
// box stays undetermined.
package certify
