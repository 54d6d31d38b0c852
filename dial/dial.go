package dial

import "math"

// Offset rotates the raw pointer angle so that the zero position of the dial
// is at the lower left.
const Offset = 135.0

// Dial is a rotary control producing a value in [from, to].
//
// Create instances with [New].
type Dial struct {
	onChange func()
	label    string
	from     float64
	to       float64
	angle    float64
	value    float64
}

// Option configures a [Dial].
type Option func(*Dial)

// WithValue positions the dial so that its value is v. Values outside the
// range are clamped to it.
func WithValue(v float64) Option {
	return func(d *Dial) {
		d.angle = AngleFor(v, d.from, d.to)
		d.value = ValueAt(d.angle, d.from, d.to)
	}
}

// New creates a [Dial] labelled label over [from, to]. The onChange callback
// may be nil; it is invoked after every drag.
func New(label string, from, to float64, onChange func(), opts ...Option) *Dial {
	d := &Dial{
		onChange: onChange,
		label:    label,
		from:     from,
		to:       to,
		value:    from,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Drag updates the dial from a pointer position (x, y) relative to the dial
// centre, with y growing downwards, then notifies the change callback.
func (d *Dial) Drag(x, y float64) {
	d.angle = AngleAt(x, y)
	d.value = ValueAt(d.angle, d.from, d.to)

	if d.onChange != nil {
		d.onChange()
	}
}

// Value returns the current value.
func (d *Dial) Value() float64 { return d.value }

// Angle returns the current angle in degrees, in [0, 360).
func (d *Dial) Angle() float64 { return d.angle }

// Label returns the dial label.
func (d *Dial) Label() string { return d.label }

// Range returns the configured value range.
func (d *Dial) Range() (float64, float64) { return d.from, d.to }

// AngleAt returns the dial angle for a pointer at (x, y) relative to the
// centre, normalized to [0, 360).
func AngleAt(x, y float64) float64 {
	angle := math.Atan2(-y, x)*180/math.Pi + Offset
	if angle < 0 {
		angle += 360
	}

	// Adding 360 to a tiny negative angle rounds up.
	if angle >= 360 {
		angle = 0
	}

	return angle
}

// ValueAt maps an angle in [0, 360) linearly onto [from, to].
func ValueAt(angle, from, to float64) float64 {
	return from + (angle/360)*(to-from)
}

// AngleFor is the inverse of [ValueAt]. The result is clamped to [0, 360).
func AngleFor(v, from, to float64) float64 {
	if to == from {
		return 0
	}

	angle := (v - from) / (to - from) * 360

	switch {
	case angle < 0:
		return 0
	case angle >= 360:
		return math.Nextafter(360, 0)
	}

	return angle
}
