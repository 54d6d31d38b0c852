// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports three output formats: [FormatJSON], [FormatLogfmt], and
// [FormatText], the last rendered by [charm.land/log/v2]. Severity levels are
// [LevelError], [LevelWarn], [LevelInfo], and [LevelDebug]. Use [NewHandler]
// to create a handler directly, or use [Config] with CLI flag integration via
// [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a handler
// at startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// A terminal UI cannot write logs to the terminal it is drawing on. Send them
// to a [Publisher] instead, optionally combined with the configured log file,
// and show entries inside the UI:
//
//	pub := log.NewPublisher()
//	file, closeFile, err := cfg.OpenFile()
//	handler, err := cfg.NewHandler(io.MultiWriter(pub, file))
//
//	status := pub.Latest()
//	sub := pub.Subscribe()
//	for line := range sub.C() {
//	    // Show line in the UI.
//	}
//
// Lines arrive without ANSI styling, one per non-blank line written.
package log
