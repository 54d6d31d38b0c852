package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/tintplay/colorfx"
)

// Flags holds CLI flag names for player configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Config       string
	FrameDelay   string
	DialMin      string
	DialMax      string
	CanvasWidth  string
	CanvasHeight string
	FFmpeg       string
	FFprobe      string
	PixelFormat  string
	Extensions   string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds the settings file path and flag overrides.
//
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags], and call [Config.Load] after parsing.
type Config struct {
	flagSet *pflag.FlagSet
	Flags   Flags
	// Path is the optional YAML settings file.
	Path      string
	overrides Settings
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Config:       "config",
		FrameDelay:   "frame-delay",
		DialMin:      "dial-min",
		DialMax:      "dial-max",
		CanvasWidth:  "canvas-width",
		CanvasHeight: "canvas-height",
		FFmpeg:       "ffmpeg",
		FFprobe:      "ffprobe",
		PixelFormat:  "pixel-format",
		Extensions:   "extensions",
	}

	return f.NewConfig()
}

// RegisterFlags adds configuration flags to the given [*pflag.FlagSet]. Flags
// that are set on the command line override the settings file.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	def := Default()
	c.flagSet = flags

	flags.StringVar(&c.Path, c.Flags.Config, "",
		"YAML settings file")
	flags.StringVar(&c.overrides.FrameDelay, c.Flags.FrameDelay, def.FrameDelay,
		"fixed delay between frames")
	flags.Float64Var(&c.overrides.DialMin, c.Flags.DialMin, def.DialMin,
		"color multiplier at the start of each dial")
	flags.Float64Var(&c.overrides.DialMax, c.Flags.DialMax, def.DialMax,
		"color multiplier after a full turn of each dial")
	flags.IntVar(&c.overrides.CanvasWidth, c.Flags.CanvasWidth, def.CanvasWidth,
		"decoded frame width in pixels")
	flags.IntVar(&c.overrides.CanvasHeight, c.Flags.CanvasHeight, def.CanvasHeight,
		"decoded frame height in pixels")
	flags.StringVar(&c.overrides.FFmpeg, c.Flags.FFmpeg, def.FFmpeg,
		"ffmpeg executable")
	flags.StringVar(&c.overrides.FFprobe, c.Flags.FFprobe, def.FFprobe,
		"ffprobe executable")
	flags.StringVar(&c.overrides.PixelFormat, c.Flags.PixelFormat, def.PixelFormat,
		fmt.Sprintf("pixel format requested from ffmpeg, one of: %s", colorfx.Orders()))
	flags.StringSliceVar(&c.overrides.Extensions, c.Flags.Extensions, def.Extensions,
		"file extensions offered by the open prompt")
}

// RegisterCompletions registers shell completions for configuration flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.MarkFlagFilename(c.Flags.Config, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Config, err)
	}

	orders := make([]string, 0, len(colorfx.Orders()))
	for _, o := range colorfx.Orders() {
		orders = append(orders, string(o))
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.PixelFormat,
		cobra.FixedCompletions(orders, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.PixelFormat, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.FrameDelay, c.Flags.DialMin, c.Flags.DialMax,
		c.Flags.CanvasWidth, c.Flags.CanvasHeight, c.Flags.Extensions,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Load resolves the effective [Settings]: defaults, then the settings file
// if [Config.Path] is set, then any flags set on the command line.
func (c *Config) Load() (Settings, error) {
	s := Default()

	if c.Path != "" {
		var err error

		s, err = ReadFile(c.Path)
		if err != nil {
			return Settings{}, err
		}
	}

	c.applyFlags(&s)

	err := s.Validate()
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}

func (c *Config) applyFlags(s *Settings) {
	if c.flagSet == nil {
		return
	}

	set := func(name string, apply func()) {
		if c.flagSet.Changed(name) {
			apply()
		}
	}

	set(c.Flags.FrameDelay, func() { s.FrameDelay = c.overrides.FrameDelay })
	set(c.Flags.DialMin, func() { s.DialMin = c.overrides.DialMin })
	set(c.Flags.DialMax, func() { s.DialMax = c.overrides.DialMax })
	set(c.Flags.CanvasWidth, func() { s.CanvasWidth = c.overrides.CanvasWidth })
	set(c.Flags.CanvasHeight, func() { s.CanvasHeight = c.overrides.CanvasHeight })
	set(c.Flags.FFmpeg, func() { s.FFmpeg = c.overrides.FFmpeg })
	set(c.Flags.FFprobe, func() { s.FFprobe = c.overrides.FFprobe })
	set(c.Flags.PixelFormat, func() { s.PixelFormat = c.overrides.PixelFormat })
	set(c.Flags.Extensions, func() { s.Extensions = c.overrides.Extensions })
}

// ReadFile reads a YAML settings file on top of [Default]. The document is
// checked against [Schema] first. A file with no content yields the defaults.
func ReadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Settings path from CLI flag is expected.
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return Parse(data)
}

// Parse decodes a YAML settings document on top of [Default].
func Parse(data []byte) (Settings, error) {
	s := Default()

	if isBlank(data) {
		return s, nil
	}

	err := validateDocument(data)
	if err != nil {
		return Settings{}, err
	}

	err = yaml.UnmarshalWithOptions(data, &s, yaml.Strict())
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	for i, ext := range s.Extensions {
		s.Extensions[i] = strings.TrimSpace(ext)
	}

	return s, nil
}
