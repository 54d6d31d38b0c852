// Command tintplay plays a video in the terminal and lets you tint it live
// with one dial per color channel.
//
// # Usage
//
//	tintplay [flags] [video_file|frame_directory]
//	tintplay version
//	tintplay config schema
//	tintplay config validate <file>
//
// Videos are decoded with ffmpeg; a directory of PNG or JPEG frames plays
// without it. Settings are read from --config and overridden by flags.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/tintplay/config"
	"go.jacobcolvin.com/tintplay/log"
	"go.jacobcolvin.com/tintplay/player"
	"go.jacobcolvin.com/tintplay/profile"
	"go.jacobcolvin.com/tintplay/tui"
	"go.jacobcolvin.com/tintplay/version"
	"go.jacobcolvin.com/tintplay/video"
)

// ErrNoTerminal is returned when the player is started without a terminal.
var ErrNoTerminal = errors.New("tintplay needs an interactive terminal")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	prof := profile.NewConfig()
	profiler := prof.NewProfiler()

	root := newRootCmd(prof, profiler, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	err = errors.Join(err, profiler.Stop())

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

func newRootCmd(prof *profile.Config, profiler *profile.Profiler, stderr io.Writer) *cobra.Command {
	logCfg := log.NewConfig()
	cfg := config.NewConfig()

	root := &cobra.Command{
		Use:   "tintplay [flags] [video_file|frame_directory]",
		Short: "Play a video in the terminal with live color dials",
		Long: `tintplay plays a video with ANSI half-block characters and scales each
color channel by the value of its dial. Drag the dials with the mouse, use the
slider to seek, and press ? for help.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Start()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var initial string
			if len(args) == 1 {
				initial = args[0]
			}

			return play(cmd.Context(), logCfg, cfg, initial)
		},
	}

	prof.RegisterFlags(root.PersistentFlags())
	logCfg.RegisterFlags(root.Flags())
	cfg.RegisterFlags(root.Flags())

	registerCompletions(root, stderr,
		prof.RegisterCompletions,
		logCfg.RegisterCompletions,
		cfg.RegisterCompletions,
	)

	root.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return nil, cobra.ShellCompDirectiveDefault
	}

	root.AddCommand(newVersionCmd(), newConfigCmd())

	return root
}

// registerCompletions applies each register function to cmd. Failures only
// degrade shell completion, so they are reported to stderr.
func registerCompletions(cmd *cobra.Command, stderr io.Writer, fns ...func(*cobra.Command) error) {
	for _, register := range fns {
		err := register(cmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}
}

func play(ctx context.Context, logCfg *log.Config, cfg *config.Config, initial string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	settings, err := cfg.Load()
	if err != nil {
		return err
	}

	ff, err := settings.NewFFmpeg()
	if err != nil {
		return err
	}

	opts, err := settings.PlayerOptions()
	if err != nil {
		return err
	}

	pub := log.NewPublisher()
	defer pub.Close() //nolint:errcheck // Close never fails.

	logFile, closeLog, err := logCfg.OpenFile()
	if err != nil {
		return err
	}

	defer closeLog() //nolint:errcheck // Best effort on exit.

	var out io.Writer = pub
	if logFile != nil {
		out = io.MultiWriter(pub, logFile)
	}

	handler, err := logCfg.NewHandler(out)
	if err != nil {
		return fmt.Errorf("creating log handler: %w", err)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	canvas := tui.NewCanvas()
	p := player.New(video.NewOpener(ff), canvas, append(opts, player.WithLogger(logger))...)

	cwd, err := os.Getwd()
	if err != nil {
		logger.Debug("cannot determine working directory", slog.Any("error", err))
	} else {
		cwd += string(os.PathSeparator)
	}

	model := tui.New(ctx, p, canvas,
		tui.WithInitialPath(initial),
		tui.WithLogs(pub),
		tui.WithStartDir(cwd),
	)

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()

	return errors.Join(err, p.Close())
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())

			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration files",
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.Schema()
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), schema)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.ReadFile(args[0])
			if err != nil {
				return err
			}

			err = settings.Validate()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])

			return err
		},
	}

	cmd.AddCommand(schemaCmd, validateCmd)

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)

	return err
}
