package player

import (
	"image"
	"log/slog"
	"time"

	"go.jacobcolvin.com/tintplay/colorfx"
	"go.jacobcolvin.com/tintplay/dial"
	"go.jacobcolvin.com/tintplay/video"
)

// DefaultDelay is the fixed pause between rendered frames, roughly 30 frames
// per second. It does not account for decode time.
const DefaultDelay = time.Second / 30

// Surface displays rendered frames.
type Surface interface {
	Render(img *image.RGBA, anchor image.Point)
}

// Label is the text of the play/pause control.
type Label string

// Play/pause control labels.
const (
	LabelPlay  Label = "Play"
	LabelPause Label = "Pause"
)

// Channel selects one of the color dials.
type Channel int

// Color channels, in [colorfx.Multiplier] order.
const (
	Red Channel = iota
	Green
	Blue
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	}

	return "Unknown"
}

// State holds the playback flags.
type State struct {
	SourceOpen bool
	Running    bool
	Paused     bool
	Seeking    bool
}

// CanRead reports whether the render loop may read a frame.
func (s State) CanRead() bool {
	return s.Running && !s.Paused && !s.Seeking
}

// Slider mirrors the source position. Max is the last frame index.
type Slider struct {
	Position int
	Max      int
}

// Player coordinates a video source, a render surface, and the color dials.
//
// Create instances with [New].
type Player struct {
	opener  video.Opener
	surface Surface
	src     video.Source
	log     *slog.Logger
	dials   [3]*dial.Dial
	filters []Filter
	label   Label
	slider  Slider
	mult    colorfx.Multiplier
	delay   time.Duration
	gen     uint64
	frames  int
	state   State
	dialLo  float64
	dialHi  float64
}

// Option configures a [Player].
type Option func(*Player)

// WithDelay sets the delay between frames. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithLogger sets the logger. The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		p.log = l
	}
}

// WithDialRange sets the value range shared by the three color dials. The
// default is [0, 2].
func WithDialRange(from, to float64) Option {
	return func(p *Player) {
		p.dialLo, p.dialHi = from, to
	}
}

// WithFilters sets the file prompt filters. See [FiltersFor].
func WithFilters(filters ...Filter) Option {
	return func(p *Player) {
		p.filters = filters
	}
}

// New creates a [Player] that opens sources with opener and renders to
// surface. No source is open initially and every dial starts at the neutral
// multiplier 1.
func New(opener video.Opener, surface Surface, opts ...Option) *Player {
	p := &Player{
		opener:  opener,
		surface: surface,
		log:     slog.Default(),
		filters: DefaultFilters(),
		label:   LabelPlay,
		delay:   DefaultDelay,
		mult:    colorfx.Identity,
		dialLo:  0,
		dialHi:  2,
	}
	for _, opt := range opts {
		opt(p)
	}

	for c := range p.dials {
		p.dials[c] = dial.New(Channel(c).String(), p.dialLo, p.dialHi, p.updateMultiplier, dial.WithValue(1))
	}

	p.updateMultiplier()

	return p
}

// updateMultiplier recomputes the channel multiplier from the dials. The next
// rendered frame uses it.
func (p *Player) updateMultiplier() {
	for c, d := range p.dials {
		if d == nil {
			return
		}

		p.mult[c] = d.Value()
	}
}

// State returns the playback flags.
func (p *Player) State() State { return p.state }

// Slider returns the slider position and range.
func (p *Player) Slider() Slider { return p.slider }

// Label returns the current play/pause label.
func (p *Player) Label() Label { return p.label }

// Multiplier returns the current channel multiplier.
func (p *Player) Multiplier() colorfx.Multiplier { return p.mult }

// Dial returns the dial for channel c.
func (p *Player) Dial(c Channel) *dial.Dial { return p.dials[c] }

// Delay returns the delay between frames.
func (p *Player) Delay() time.Duration { return p.delay }

// FramesShown returns how many frames have been rendered since the last load.
func (p *Player) FramesShown() int { return p.frames }

// Close releases the open source, if any.
func (p *Player) Close() error {
	return p.release()
}

func (p *Player) release() error {
	if p.src == nil {
		return nil
	}

	err := p.src.Close()

	p.src = nil
	p.state.SourceOpen = false

	return err
}
