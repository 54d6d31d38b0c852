// Package dial implements a rotary control that maps a pointer-drag angle to a
// scalar in a fixed range.
//
// A [Dial] is mutated only by [Dial.Drag]. Each drag recomputes the angle from
// the pointer position relative to the dial centre, derives the value by
// linear interpolation over a full turn, and invokes the change callback:
//
//	red := dial.New("Red", 0, 2, onChange, dial.WithValue(1))
//	red.Drag(x, y) // local coordinates, y pointing down
//	m := red.Value()
//
// The zero angle sits at the lower left of the dial; values grow
// counter-clockwise and wrap back to the start of the range after a full
// turn.
//
// [Render] draws a dial as a grid of terminal cells and is a pure function of
// the angle.
package dial
