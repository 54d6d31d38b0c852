package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.jacobcolvin.com/tintplay/colorfx"
	"go.jacobcolvin.com/tintplay/player"
	"go.jacobcolvin.com/tintplay/video"
)

// Sentinel errors returned while loading configuration.
var (
	ErrRead    = errors.New("read config")
	ErrInvalid = errors.New("invalid config")
)

// Settings are the user-tunable player settings.
type Settings struct {
	FrameDelay   string   `json:"frame_delay,omitempty"   jsonschema:"delay between frames as a Go duration, e.g. 33ms"          yaml:"frame_delay,omitempty"`
	FFmpeg       string   `json:"ffmpeg,omitempty"        jsonschema:"ffmpeg executable name or path"                            yaml:"ffmpeg,omitempty"`
	FFprobe      string   `json:"ffprobe,omitempty"       jsonschema:"ffprobe executable name or path"                           yaml:"ffprobe,omitempty"`
	PixelFormat  string   `json:"pixel_format,omitempty"  jsonschema:"pixel format requested from ffmpeg"                        yaml:"pixel_format,omitempty"`
	Extensions   []string `json:"extensions,omitempty"    jsonschema:"file extensions offered by the open prompt"                yaml:"extensions,omitempty"`
	DialMin      float64  `json:"dial_min,omitempty"      jsonschema:"color multiplier at the start of each dial"                yaml:"dial_min,omitempty"`
	DialMax      float64  `json:"dial_max,omitempty"      jsonschema:"color multiplier after a full turn of each dial"           yaml:"dial_max,omitempty"`
	CanvasWidth  int      `json:"canvas_width,omitempty"  jsonschema:"width in pixels that decoded frames are scaled and padded"  yaml:"canvas_width,omitempty"`
	CanvasHeight int      `json:"canvas_height,omitempty" jsonschema:"height in pixels that decoded frames are scaled and padded" yaml:"canvas_height,omitempty"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		FrameDelay:   "33ms",
		FFmpeg:       "ffmpeg",
		FFprobe:      "ffprobe",
		PixelFormat:  string(colorfx.RGB),
		Extensions:   []string{".mp4", ".avi", ".mkv", ".mov", ".webm"},
		DialMin:      0,
		DialMax:      2,
		CanvasWidth:  640,
		CanvasHeight: 480,
	}
}

// Delay parses [Settings.FrameDelay].
func (s Settings) Delay() (time.Duration, error) {
	d, err := time.ParseDuration(s.FrameDelay)
	if err != nil {
		return 0, fmt.Errorf("%w: frame_delay: %w", ErrInvalid, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: frame_delay must be positive, got %s", ErrInvalid, s.FrameDelay)
	}

	return d, nil
}

// Validate checks relationships that the schema cannot express.
func (s Settings) Validate() error {
	var errs []error

	_, err := s.Delay()
	if err != nil {
		errs = append(errs, err)
	}

	_, err = colorfx.ParseOrder(s.PixelFormat)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: pixel_format: %w", ErrInvalid, err))
	}

	if s.DialMax <= s.DialMin {
		errs = append(errs, fmt.Errorf("%w: dial_max (%g) must be greater than dial_min (%g)",
			ErrInvalid, s.DialMax, s.DialMin))
	}

	if s.DialMin < 0 {
		errs = append(errs, fmt.Errorf("%w: dial_min must not be negative", ErrInvalid))
	}

	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, s.CanvasWidth, s.CanvasHeight))
	}

	if strings.TrimSpace(s.FFmpeg) == "" || strings.TrimSpace(s.FFprobe) == "" {
		errs = append(errs, fmt.Errorf("%w: ffmpeg and ffprobe must be set", ErrInvalid))
	}

	return errors.Join(errs...)
}

// NewFFmpeg creates the ffmpeg decoder described by s.
func (s Settings) NewFFmpeg() (*video.FFmpeg, error) {
	order, err := colorfx.ParseOrder(s.PixelFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return &video.FFmpeg{
		Binary:      s.FFmpeg,
		ProbeBinary: s.FFprobe,
		Width:       s.CanvasWidth,
		Height:      s.CanvasHeight,
		Order:       order,
	}, nil
}

// PlayerOptions returns the [player.Option]s described by s.
func (s Settings) PlayerOptions() ([]player.Option, error) {
	d, err := s.Delay()
	if err != nil {
		return nil, err
	}

	return []player.Option{
		player.WithDelay(d),
		player.WithDialRange(s.DialMin, s.DialMax),
		player.WithFilters(player.FiltersFor(s.Extensions)...),
	}, nil
}
