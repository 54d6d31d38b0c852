package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"go.jacobcolvin.com/tintplay/colorfx"
)

func (p *Player) load(ctx context.Context, path string) Result {
	err := p.release()
	if err != nil {
		p.log.Warn("releasing previous source", slog.Any("error", err))
	}

	p.state.Running = false

	src, err := p.opener.Open(ctx, path)
	if err != nil {
		p.label = LabelPlay
		p.slider = Slider{}
		p.state = State{}
		p.log.Error("cannot open video", slog.String("path", path), slog.Any("error", err))

		return Result{Err: fmt.Errorf("load %s: %w", path, err)}
	}

	p.src = src
	p.frames = 0
	p.slider = Slider{Max: max(src.FrameCount()-1, 0)}
	p.state = State{SourceOpen: true, Running: true}
	p.label = LabelPause

	p.log.Info("opened video",
		slog.String("path", path),
		slog.Int("frames", src.FrameCount()),
	)

	return p.enter()
}

func (p *Player) togglePlay() Result {
	if p.src == nil {
		return Result{}
	}

	p.state.Paused = !p.state.Paused

	if p.state.Paused {
		p.label = LabelPlay

		return Result{}
	}

	p.label = LabelPause

	return p.enter()
}

func (p *Player) releaseSlider() Result {
	var res Result

	if p.src != nil {
		p.log.Debug("seeking", slog.Int("frame", p.slider.Position))

		err := p.src.Seek(p.slider.Position)
		if err != nil {
			p.log.Warn("seek failed", slog.Int("frame", p.slider.Position), slog.Any("error", err))
			res.Err = fmt.Errorf("seek to frame %d: %w", p.slider.Position, err)
		}
	}

	p.state.Seeking = false
	p.state.Paused = false

	if p.state.Running {
		p.label = LabelPause
	}

	next := p.enter()
	next.Err = res.Err

	return next
}

// enter starts a new render loop. Any tick still scheduled for the previous
// loop becomes stale.
func (p *Player) enter() Result {
	p.gen++

	return p.tick(p.gen)
}

func (p *Player) tick(gen uint64) Result {
	if gen != p.gen {
		p.log.Debug("dropping stale tick", slog.Uint64("gen", gen))

		return Result{}
	}

	if !p.state.CanRead() || p.src == nil {
		return Result{}
	}

	frame, err := p.src.ReadFrame()
	if err != nil {
		p.finish(err)

		return Result{}
	}

	img, err := colorfx.Apply(frame, p.mult)
	if err != nil {
		p.finish(err)

		return Result{}
	}

	p.surface.Render(img, image.Point{})
	p.frames++
	p.slider.Position = max(p.src.Position(), 0)
	// Sources without a frame count grow the slider as they play.
	p.slider.Max = max(p.slider.Max, p.slider.Position)

	return Result{Next: &Schedule{Gen: gen, Delay: p.delay}}
}

// finish ends playback after the last frame or a decode failure.
func (p *Player) finish(cause error) {
	if errors.Is(cause, io.EOF) {
		p.log.Info("end of video", slog.Int("frames", p.frames))
	} else {
		p.log.Warn("playback stopped", slog.Any("error", cause))
	}

	p.state.Running = false
	p.label = LabelPlay

	err := p.release()
	if err != nil {
		p.log.Warn("releasing source", slog.Any("error", err))
	}
}
