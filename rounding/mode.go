// SPDX-License-Identifier: MIT

package rounding

// Mode selects the direction used by a Control.
type Mode int

const (
	// Near rounds to nearest, ties to even (IEEE 754 default).
	Near Mode = iota

	// Down rounds toward -Inf.
	Down

	// Up rounds toward +Inf.
	Up
)

// String returns a human-readable name of the mode.
func (m Mode) String() string {
	switch m {
	case Near:
		return "near"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Control is a rounding-mode capability.
//
// The zero value is ready to use and rounds to nearest. A Control is NOT
// safe for concurrent use; give every goroutine its own instance.
//
// Typical use brackets a block of point arithmetic:
//
//	var rc rounding.Control
//	restore := rc.Scoped(rounding.Up)
//	defer restore()
//	rhs := rc.Add(rc.Mul(a, b), c) // upper bound of a*b+c
type Control struct {
	mode Mode
}

// Init establishes the baseline state (round to nearest).
func (c *Control) Init() { c.mode = Near }

// Down switches to rounding toward -Inf.
func (c *Control) Down() { c.mode = Down }

// Up switches to rounding toward +Inf.
func (c *Control) Up() { c.mode = Up }

// Near switches to rounding to nearest.
func (c *Control) Near() { c.mode = Near }

// Mode reports the current rounding mode.
func (c *Control) Mode() Mode { return c.mode }

// Scoped switches to m and returns a function restoring the previous mode.
// Pair it with defer so the mode is restored on every exit path.
func (c *Control) Scoped(m Mode) (restore func()) {
	prev := c.mode
	c.mode = m

	return func() { c.mode = prev }
}

// Add returns a+b rounded in the current mode.
func (c *Control) Add(a, b float64) float64 {
	switch c.mode {
	case Down:
		return AddDown(a, b)
	case Up:
		return AddUp(a, b)
	default:
		return a + b
	}
}

// Sub returns a-b rounded in the current mode.
func (c *Control) Sub(a, b float64) float64 {
	switch c.mode {
	case Down:
		return SubDown(a, b)
	case Up:
		return SubUp(a, b)
	default:
		return a - b
	}
}

// Mul returns a*b rounded in the current mode.
func (c *Control) Mul(a, b float64) float64 {
	switch c.mode {
	case Down:
		return MulDown(a, b)
	case Up:
		return MulUp(a, b)
	default:
		return a * b
	}
}

// Div returns a/b rounded in the current mode.
func (c *Control) Div(a, b float64) float64 {
	switch c.mode {
	case Down:
		return DivDown(a, b)
	case Up:
		return DivUp(a, b)
	default:
		return a / b
	}
}

// Sqrt returns sqrt(a) rounded in the current mode.
func (c *Control) Sqrt(a float64) float64 {
	switch c.mode {
	case Down:
		return SqrtDown(a)
	case Up:
		return SqrtUp(a)
	default:
		return sqrt(a)
	}
}
