package player_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tintplay/colorfx"
	"go.jacobcolvin.com/tintplay/player"
	"go.jacobcolvin.com/tintplay/video"
)

var errBroken = errors.New("broken file")

// fakeSource yields 1x1 RGB frames whose red byte is the frame index and whose
// green and blue bytes are 100.
type fakeSource struct {
	seeks   []int
	n       int
	next    int
	reads   int
	closes  int
	failAt  int
	seekErr error
}

func newFakeSource(n int) *fakeSource {
	return &fakeSource{n: n, failAt: -1}
}

func (s *fakeSource) ReadFrame() (colorfx.Frame, error) {
	s.reads++

	if s.closes > 0 {
		return colorfx.Frame{}, video.ErrClosed
	}

	if s.next == s.failAt {
		return colorfx.Frame{}, errBroken
	}

	if s.next >= s.n {
		return colorfx.Frame{}, io.EOF
	}

	f := colorfx.Frame{Order: colorfx.RGB, Width: 1, Height: 1, Pix: []byte{byte(s.next), 100, 100}}
	s.next++

	return f, nil
}

func (s *fakeSource) Position() int   { return s.next - 1 }
func (s *fakeSource) FrameCount() int { return s.n }

func (s *fakeSource) Seek(frame int) error {
	s.seeks = append(s.seeks, frame)
	if s.seekErr != nil {
		return s.seekErr
	}

	s.next = frame

	return nil
}

func (s *fakeSource) Close() error {
	s.closes++

	return nil
}

type fakeOpener struct {
	sources map[string]*fakeSource
	opened  []string
}

func (o *fakeOpener) Open(_ context.Context, path string) (video.Source, error) {
	o.opened = append(o.opened, path)

	src, ok := o.sources[path]
	if !ok {
		return nil, video.ErrOpen
	}

	return src, nil
}

type fakeSurface struct {
	frames  []*image.RGBA
	anchors []image.Point
}

func (s *fakeSurface) Render(img *image.RGBA, anchor image.Point) {
	s.frames = append(s.frames, img)
	s.anchors = append(s.anchors, anchor)
}

func (s *fakeSurface) last() color.RGBA {
	return s.frames[len(s.frames)-1].RGBAAt(0, 0)
}

func newPlayer(t *testing.T, sources map[string]*fakeSource, opts ...player.Option) (*player.Player, *fakeOpener, *fakeSurface) {
	t.Helper()

	opener := &fakeOpener{sources: sources}
	surface := &fakeSurface{}
	opts = append([]player.Option{player.WithLogger(slog.New(slog.DiscardHandler))}, opts...)

	return player.New(opener, surface, opts...), opener, surface
}

// drain delivers scheduled ticks until the loop stops and returns how many
// ticks were delivered.
func drain(ctx context.Context, p *player.Player, res player.Result) int {
	n := 0
	for res.Next != nil {
		res = p.Handle(ctx, player.Tick{Gen: res.Next.Gen})
		n++
	}

	return n
}

func TestPlayToCompletion(t *testing.T) {
	t.Parallel()

	src := newFakeSource(10)
	p, _, surface := newPlayer(t, map[string]*fakeSource{"clip.mp4": src})

	res := p.Handle(t.Context(), player.Load{Path: "clip.mp4"})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Next)
	assert.Equal(t, player.DefaultDelay, res.Next.Delay)
	assert.Equal(t, player.LabelPause, p.Label())
	assert.Equal(t, 9, p.Slider().Max)

	drain(t.Context(), p, res)

	assert.Len(t, surface.frames, 10)
	assert.Equal(t, 10, p.FramesShown())
	assert.Equal(t, 9, p.Slider().Position)
	assert.Equal(t, player.LabelPlay, p.Label())
	assert.False(t, p.State().Running)
	assert.False(t, p.State().SourceOpen)
	assert.Equal(t, 1, src.closes)

	for _, a := range surface.anchors {
		assert.Equal(t, image.Point{}, a)
	}

	// Nothing more is read until a new source is loaded.
	reads := src.reads
	assert.Nil(t, p.Handle(t.Context(), player.TogglePlay{}).Next)
	assert.Nil(t, p.Handle(t.Context(), player.Tick{Gen: res.Next.Gen}).Next)
	assert.Equal(t, reads, src.reads)
	assert.Equal(t, player.LabelPlay, p.Label())
}

func TestLoadReleasesPriorSourceOnce(t *testing.T) {
	t.Parallel()

	a, b, c := newFakeSource(5), newFakeSource(5), newFakeSource(5)
	p, opener, _ := newPlayer(t, map[string]*fakeSource{"a": a, "b": b, "c": c})

	p.Handle(t.Context(), player.Load{Path: "a"})
	assert.Equal(t, 0, a.closes)

	p.Handle(t.Context(), player.Load{Path: "b"})
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, 0, b.closes)

	p.Handle(t.Context(), player.FileChosen{Path: "c"})
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, 1, b.closes)
	assert.Equal(t, 0, c.closes)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, c.closes)
	assert.Equal(t, []string{"a", "b", "c"}, opener.opened)
}

func TestLoadAfterEndOfStreamDoesNotDoubleRelease(t *testing.T) {
	t.Parallel()

	a, b := newFakeSource(2), newFakeSource(2)
	p, _, _ := newPlayer(t, map[string]*fakeSource{"a": a, "b": b})

	drain(t.Context(), p, p.Handle(t.Context(), player.Load{Path: "a"}))
	require.Equal(t, 1, a.closes)

	res := p.Handle(t.Context(), player.Load{Path: "b"})
	require.NotNil(t, res.Next)
	assert.Equal(t, 1, a.closes)
	assert.True(t, p.State().Running)
}

func TestLoadFailure(t *testing.T) {
	t.Parallel()

	a := newFakeSource(5)
	p, _, surface := newPlayer(t, map[string]*fakeSource{"a": a})

	p.Handle(t.Context(), player.Load{Path: "a"})
	p.Handle(t.Context(), player.SliderPress{})
	p.Handle(t.Context(), player.SliderDrag{Position: 3})

	res := p.Handle(t.Context(), player.Load{Path: "missing.mp4"})
	require.ErrorIs(t, res.Err, video.ErrOpen)
	assert.Nil(t, res.Next)
	assert.Equal(t, 1, a.closes)
	assert.False(t, p.State().Running)
	assert.False(t, p.State().SourceOpen)
	assert.Equal(t, player.LabelPlay, p.Label())
	assert.Len(t, surface.frames, 1)
	assert.Equal(t, player.Slider{}, p.Slider())
	assert.Equal(t, player.State{}, p.State())

	// The player stays usable.
	assert.Equal(t, player.Result{}, p.Handle(t.Context(), player.TogglePlay{}))
}

func TestTogglePlay(t *testing.T) {
	t.Parallel()

	t.Run("no source is a no-op", func(t *testing.T) {
		t.Parallel()

		p, _, _ := newPlayer(t, nil)

		res := p.Handle(t.Context(), player.TogglePlay{})
		assert.Equal(t, player.Result{}, res)
		assert.False(t, p.State().Paused)
		assert.Equal(t, player.LabelPlay, p.Label())
	})

	t.Run("pause and resume", func(t *testing.T) {
		t.Parallel()

		src := newFakeSource(10)
		p, _, surface := newPlayer(t, map[string]*fakeSource{"a": src})

		first := p.Handle(t.Context(), player.Load{Path: "a"})
		require.NotNil(t, first.Next)

		res := p.Handle(t.Context(), player.TogglePlay{})
		assert.Nil(t, res.Next)
		assert.True(t, p.State().Paused)
		assert.Equal(t, player.LabelPlay, p.Label())

		// The tick scheduled before pausing reads nothing.
		assert.Nil(t, p.Handle(t.Context(), player.Tick{Gen: first.Next.Gen}).Next)
		assert.Len(t, surface.frames, 1)

		res = p.Handle(t.Context(), player.TogglePlay{})
		require.NotNil(t, res.Next)
		assert.False(t, p.State().Paused)
		assert.Equal(t, player.LabelPause, p.Label())
		assert.Len(t, surface.frames, 2)
	})

	t.Run("resume before pending tick does not double the loop", func(t *testing.T) {
		t.Parallel()

		src := newFakeSource(10)
		p, _, surface := newPlayer(t, map[string]*fakeSource{"a": src})

		first := p.Handle(t.Context(), player.Load{Path: "a"})
		p.Handle(t.Context(), player.TogglePlay{})
		second := p.Handle(t.Context(), player.TogglePlay{})
		require.NotNil(t, second.Next)
		assert.NotEqual(t, first.Next.Gen, second.Next.Gen)

		stale := p.Handle(t.Context(), player.Tick{Gen: first.Next.Gen})
		assert.Nil(t, stale.Next)
		assert.Len(t, surface.frames, 2)

		assert.NotNil(t, p.Handle(t.Context(), player.Tick{Gen: second.Next.Gen}).Next)
		assert.Len(t, surface.frames, 3)
	})
}

func TestSliderSeek(t *testing.T) {
	t.Parallel()

	src := newFakeSource(10)
	p, _, surface := newPlayer(t, map[string]*fakeSource{"a": src})

	res := p.Handle(t.Context(), player.Load{Path: "a"})
	res = p.Handle(t.Context(), player.Tick{Gen: res.Next.Gen})
	require.NotNil(t, res.Next)
	require.False(t, p.State().Paused)

	p.Handle(t.Context(), player.SliderPress{})
	assert.True(t, p.State().Paused)
	assert.True(t, p.State().Seeking)

	reads := src.reads
	assert.Nil(t, p.Handle(t.Context(), player.Tick{Gen: res.Next.Gen}).Next)
	assert.Equal(t, reads, src.reads)

	// Toggling while seeking does not read either.
	p.Handle(t.Context(), player.TogglePlay{})
	assert.Equal(t, reads, src.reads)

	p.Handle(t.Context(), player.SliderDrag{Position: 42})
	assert.Equal(t, 9, p.Slider().Position)
	p.Handle(t.Context(), player.SliderDrag{Position: -1})
	assert.Equal(t, 0, p.Slider().Position)
	p.Handle(t.Context(), player.SliderDrag{Position: 6})

	res = p.Handle(t.Context(), player.SliderRelease{})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Next)
	assert.Equal(t, []int{6}, src.seeks)
	assert.False(t, p.State().Seeking)
	assert.False(t, p.State().Paused)
	assert.Equal(t, player.LabelPause, p.Label())

	// Playback resumes at exactly the frame on the slider.
	assert.Equal(t, uint8(6), surface.last().R)
	assert.Equal(t, 6, p.Slider().Position)

	p.Handle(t.Context(), player.Tick{Gen: res.Next.Gen})
	assert.Equal(t, uint8(7), surface.last().R)
	assert.Equal(t, 7, p.Slider().Position)
}

func TestSliderWithoutSource(t *testing.T) {
	t.Parallel()

	p, _, surface := newPlayer(t, nil)

	p.Handle(t.Context(), player.SliderPress{})
	res := p.Handle(t.Context(), player.SliderRelease{})

	assert.Nil(t, res.Next)
	require.NoError(t, res.Err)
	assert.False(t, p.State().Paused)
	assert.False(t, p.State().Seeking)
	assert.Empty(t, surface.frames)
}

func TestSliderSeekError(t *testing.T) {
	t.Parallel()

	src := newFakeSource(10)
	src.seekErr = errBroken
	p, _, _ := newPlayer(t, map[string]*fakeSource{"a": src})

	p.Handle(t.Context(), player.Load{Path: "a"})
	p.Handle(t.Context(), player.SliderPress{})

	res := p.Handle(t.Context(), player.SliderRelease{})
	require.ErrorIs(t, res.Err, errBroken)
	assert.False(t, p.State().Seeking)
}

func TestDecodeErrorStopsPlayback(t *testing.T) {
	t.Parallel()

	src := newFakeSource(10)
	src.failAt = 3
	p, _, surface := newPlayer(t, map[string]*fakeSource{"a": src})

	drain(t.Context(), p, p.Handle(t.Context(), player.Load{Path: "a"}))

	assert.Len(t, surface.frames, 3)
	assert.False(t, p.State().Running)
	assert.Equal(t, player.LabelPlay, p.Label())
	assert.Equal(t, 1, src.closes)
}

func TestColorMultiplier(t *testing.T) {
	t.Parallel()

	gray := &graySource{n: 1}
	surface := &fakeSurface{}
	opener := video.OpenerFunc(func(context.Context, string) (video.Source, error) { return gray, nil })
	p := player.New(opener, surface,
		player.WithLogger(slog.New(slog.DiscardHandler)),
		player.WithDialRange(0, 4),
	)

	assert.Equal(t, colorfx.Identity, p.Multiplier())

	// Up and to the right is 180 degrees: half of [0, 4].
	p.Handle(t.Context(), player.DialDrag{Channel: player.Red, X: 10, Y: -10})
	assert.InDelta(t, 2.0, p.Multiplier()[0], 1e-9)
	assert.InDelta(t, 1.0, p.Multiplier()[1], 1e-9)
	assert.InDelta(t, 1.0, p.Multiplier()[2], 1e-9)
	assert.InDelta(t, 2.0, p.Dial(player.Red).Value(), 1e-9)

	p.Handle(t.Context(), player.Load{Path: "gray"})
	assert.Equal(t, color.RGBA{200, 100, 100, 255}, surface.last())
}

func TestMultiplierAppliesFromNextFrame(t *testing.T) {
	t.Parallel()

	gray := &graySource{n: 3}
	surface := &fakeSurface{}
	opener := video.OpenerFunc(func(context.Context, string) (video.Source, error) { return gray, nil })
	p := player.New(opener, surface, player.WithLogger(slog.New(slog.DiscardHandler)))

	res := p.Handle(t.Context(), player.Load{Path: "gray"})
	assert.Equal(t, color.RGBA{100, 100, 100, 255}, surface.last())

	// Dragging the blue dial to straight down (45 degrees) gives 0.25.
	p.Handle(t.Context(), player.DialDrag{Channel: player.Blue, X: 0, Y: 10})
	assert.Len(t, surface.frames, 1)

	p.Handle(t.Context(), player.Tick{Gen: res.Next.Gen})
	assert.Equal(t, color.RGBA{100, 100, 25, 255}, surface.last())
}

func TestDialDragUnknownChannel(t *testing.T) {
	t.Parallel()

	p, _, _ := newPlayer(t, nil)

	res := p.Handle(t.Context(), player.DialDrag{Channel: player.Channel(7), X: 1})
	assert.Equal(t, player.Result{}, res)
	assert.Equal(t, colorfx.Identity, p.Multiplier())
	assert.Equal(t, "Unknown", player.Channel(7).String())
}

func TestDialogs(t *testing.T) {
	t.Parallel()

	p, opener, _ := newPlayer(t, nil)

	res := p.Handle(t.Context(), player.ShowHelp{})
	require.NotNil(t, res.Info)
	assert.Equal(t, "Help", res.Info.Title)
	assert.Contains(t, res.Info.Body, "Have fun exploring!")

	res = p.Handle(t.Context(), player.ChangeSource{})
	require.NotNil(t, res.Prompt)
	assert.Equal(t, player.PromptTitle, res.Prompt.Title)
	assert.Equal(t, player.DefaultFilters(), res.Prompt.Filters)

	res = p.Handle(t.Context(), player.FileChosen{})
	assert.Equal(t, player.Result{}, res)
	assert.Empty(t, opener.opened)
}

func TestWithDelay(t *testing.T) {
	t.Parallel()

	src := newFakeSource(2)
	p, _, _ := newPlayer(t, map[string]*fakeSource{"a": src}, player.WithDelay(10*time.Millisecond), player.WithDelay(0))

	res := p.Handle(t.Context(), player.Load{Path: "a"})
	require.NotNil(t, res.Next)
	assert.Equal(t, 10*time.Millisecond, res.Next.Delay)
	assert.Equal(t, 10*time.Millisecond, p.Delay())
}

type graySource struct {
	n    int
	next int
}

func (s *graySource) ReadFrame() (colorfx.Frame, error) {
	if s.next >= s.n {
		return colorfx.Frame{}, io.EOF
	}

	s.next++

	return colorfx.Frame{Order: colorfx.BGR, Width: 1, Height: 1, Pix: []byte{100, 100, 100}}, nil
}

func (s *graySource) Position() int   { return s.next - 1 }
func (s *graySource) FrameCount() int { return s.n }
func (s *graySource) Close() error    { return nil }

func (s *graySource) Seek(frame int) error {
	s.next = frame

	return nil
}
