// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the Dense numeric policy.
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation in Dense.Set.
const DefaultValidateNaNInf = true

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf lets Set store NaN and ±Inf. Interval midpoints are
// always finite, so only callers feeding raw data need this.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

func gatherOptions(user ...Option) Options {
	o := Options{validateNaNInf: DefaultValidateNaNInf}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
