package profile

import (
	"fmt"
	"runtime/pprof"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPUProfile           string
	Trace                string
	Snapshots            string
	BlockProfileRate     string
	MutexProfileFraction string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:     f,
		Snapshots: map[string]string{},
	}
}

// Config holds profiling configuration. A zero-value Config has everything
// disabled.
//
// Create instances with [NewConfig].
type Config struct {
	// Snapshots maps pprof profile names to output paths.
	Snapshots map[string]string

	Flags Flags

	// CPUProfile and Trace are output paths; empty disables them.
	CPUProfile string
	Trace      string

	BlockProfileRate     int
	MutexProfileFraction int
}

// NewConfig creates a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:           "cpu-profile",
		Trace:                "trace",
		Snapshots:            "profile",
		BlockProfileRate:     "block-profile-rate",
		MutexProfileFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// SnapshotNames returns the names accepted by the snapshot flag.
func SnapshotNames() []string {
	names := make([]string, 0, 6)
	for _, p := range pprof.Profiles() {
		names = append(names, p.Name())
	}

	slices.Sort(names)

	return names
}

// RegisterFlags adds profiling flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.Trace, c.Flags.Trace, "", "write execution trace to file")
	flags.StringToStringVar(&c.Snapshots, c.Flags.Snapshots, nil,
		"write a snapshot profile at exit, as name=path (one of: "+strings.Join(SnapshotNames(), ", ")+")")
	flags.IntVar(&c.BlockProfileRate, c.Flags.BlockProfileRate, 1,
		"block profile rate in nanoseconds, used when a block snapshot is requested")
	flags.IntVar(&c.MutexProfileFraction, c.Flags.MutexProfileFraction, 1,
		"mutex profile fraction, used when a mutex snapshot is requested")
}

// RegisterCompletions registers shell completions for profiling flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	snapshotComp := func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if strings.Contains(toComplete, "=") {
			return nil, cobra.ShellCompDirectiveDefault
		}

		names := SnapshotNames()
		for i, n := range names {
			names[i] = n + "="
		}

		return names, cobra.ShellCompDirectiveNoSpace
	}

	for name, fn := range map[string]cobra.CompletionFunc{
		c.Flags.Snapshots:            snapshotComp,
		c.Flags.BlockProfileRate:     noFileComp,
		c.Flags.MutexProfileFraction: noFileComp,
	} {
		err := cmd.RegisterFlagCompletionFunc(name, fn)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// NewProfiler creates a new [Profiler] using this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{
		cfg: c,
	}
}
