package player

import (
	"context"
	"time"
)

// Event is an input to [Player.Handle].
type Event interface {
	event()
}

// Load opens Path, releasing any open source first, and starts playback.
type Load struct {
	Path string
}

// ChangeSource asks for a new file. The result carries a [Prompt].
type ChangeSource struct{}

// FileChosen delivers the answer to a [Prompt]. An empty path means the prompt
// was cancelled.
type FileChosen struct {
	Path string
}

// TogglePlay flips between playing and paused.
type TogglePlay struct{}

// SliderPress starts a seek: frame reads stop until [SliderRelease].
type SliderPress struct{}

// SliderDrag moves the slider without seeking.
type SliderDrag struct {
	Position int
}

// SliderRelease seeks to the slider position and resumes playback.
type SliderRelease struct{}

// Tick runs one iteration of the render loop. Gen must be the generation from
// the [Schedule] that requested it; ticks from an earlier loop are ignored.
type Tick struct {
	Gen uint64
}

// DialDrag turns the dial for Channel to the pointer at (X, Y), relative to
// the dial centre with Y pointing down.
type DialDrag struct {
	Channel Channel
	X, Y    float64
}

// ShowHelp requests the help dialog.
type ShowHelp struct{}

func (Load) event()          {}
func (ChangeSource) event()  {}
func (FileChosen) event()    {}
func (TogglePlay) event()    {}
func (SliderPress) event()   {}
func (SliderDrag) event()    {}
func (SliderRelease) event() {}
func (Tick) event()          {}
func (DialDrag) event()      {}
func (ShowHelp) event()      {}

// Schedule asks the caller to deliver Tick{Gen: Gen} after Delay.
type Schedule struct {
	Gen   uint64
	Delay time.Duration
}

// Prompt asks the caller to choose a file and answer with [FileChosen].
type Prompt struct {
	Title   string
	Filters []Filter
}

// Info asks the caller to show a modal message.
type Info struct {
	Title string
	Body  string
}

// Result tells the caller what to do after an event. All fields are optional.
type Result struct {
	Next   *Schedule
	Prompt *Prompt
	Info   *Info
	// Err is set when a source could not be opened or seeked. The player
	// remains usable.
	Err error
}

// Handle applies ev and returns the follow-up work.
func (p *Player) Handle(ctx context.Context, ev Event) Result {
	switch ev := ev.(type) {
	case Load:
		return p.load(ctx, ev.Path)

	case ChangeSource:
		return Result{Prompt: &Prompt{Title: PromptTitle, Filters: p.filters}}

	case FileChosen:
		if ev.Path == "" {
			p.log.Debug("file prompt cancelled")

			return Result{}
		}

		return p.load(ctx, ev.Path)

	case TogglePlay:
		return p.togglePlay()

	case SliderPress:
		p.state.Paused = true
		p.state.Seeking = true

	case SliderDrag:
		p.slider.Position = min(max(ev.Position, 0), p.slider.Max)

	case SliderRelease:
		return p.releaseSlider()

	case Tick:
		return p.tick(ev.Gen)

	case DialDrag:
		if ev.Channel < Red || ev.Channel > Blue {
			return Result{}
		}

		p.dials[ev.Channel].Drag(ev.X, ev.Y)

	case ShowHelp:
		return Result{Info: &Info{Title: HelpTitle, Body: HelpText}}
	}

	return Result{}
}
