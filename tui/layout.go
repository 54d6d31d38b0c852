package tui

import (
	"math"

	"go.jacobcolvin.com/tintplay/player"
)

// Control area geometry, in terminal cells.
const (
	dialCols       = 9
	dialRows       = 5
	dialSpacing    = 22
	sliderCounterW = 16
	// Buttons, slider, dials, status line.
	controlRows = 1 + 1 + dialRows + 1
)

type button struct {
	event player.Event
	text  string
	x0    int
	x1    int
}

func (m *Model) videoRows() int { return max(m.height-controlRows, 1) }
func (m *Model) buttonRow() int { return m.videoRows() }
func (m *Model) sliderRow() int { return m.videoRows() + 1 }
func (m *Model) dialTop() int   { return m.videoRows() + 2 }

// buttons lays out the transport buttons left to right.
func (m *Model) buttons() []button {
	items := []struct {
		event player.Event
		label string
	}{
		{player.TogglePlay{}, string(m.player.Label())},
		{player.ChangeSource{}, "Load Video"},
		{player.ShowHelp{}, "Help"},
	}

	out := make([]button, 0, len(items))
	x := 0

	for _, it := range items {
		text := "[ " + it.label + " ]"
		out = append(out, button{event: it.event, text: text, x0: x, x1: x + len(text)})
		x += len(text) + 1
	}

	return out
}

func (m *Model) buttonAt(x int) (button, bool) {
	for _, b := range m.buttons() {
		if x >= b.x0 && x < b.x1 {
			return b, true
		}
	}

	return button{}, false
}

// sliderBar returns the first column and width of the slider track.
func (m *Model) sliderBar() (int, int) {
	return 1, max(m.width-sliderCounterW-2, 2)
}

// sliderCell maps a frame index to a column offset on the track.
func (m *Model) sliderCell(pos int) int {
	_, w := m.sliderBar()

	s := m.player.Slider()
	if s.Max <= 0 {
		return 0
	}

	return min(pos*(w-1)/s.Max, w-1)
}

// sliderPosAt maps a screen column to a frame index.
func (m *Model) sliderPosAt(x int) int {
	x0, w := m.sliderBar()
	s := m.player.Slider()

	off := min(max(x-x0, 0), w-1)

	return int(math.Round(float64(off) * float64(s.Max) / float64(w-1)))
}

func (m *Model) onSlider(x, y int) bool {
	x0, w := m.sliderBar()

	return y == m.sliderRow() && x >= x0 && x < x0+w
}

// dialAt returns the channel whose dial box contains (x, y).
func (m *Model) dialAt(x, y int) (player.Channel, bool) {
	top := m.dialTop()
	if y < top || y >= top+dialRows {
		return 0, false
	}

	c := x / dialSpacing
	if c > int(player.Blue) || x-c*dialSpacing >= dialCols {
		return 0, false
	}

	return player.Channel(c), true
}

// dialLocal converts a screen position to coordinates relative to the centre
// of dial c. Rows are doubled because cells are twice as tall as wide.
func (m *Model) dialLocal(c player.Channel, x, y int) (float64, float64) {
	cx := int(c)*dialSpacing + (dialCols-1)/2
	cy := m.dialTop() + (dialRows-1)/2

	return float64(x - cx), float64(y-cy) * 2
}
