// Package profile records runtime profiles and execution traces for the
// lifetime of a command.
//
// A CPU profile and an execution trace cover the whole run. Snapshot profiles
// such as heap or goroutine are written when profiling stops, so they show
// the state at exit. Block and mutex sampling is enabled only when the
// matching snapshot is requested.
//
//	cfg := profile.NewConfig()
//	p := cfg.NewProfiler()
//
//	rootCmd := &cobra.Command{
//		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//			return p.Start()
//		},
//	}
//
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.Execute()
//	err = errors.Join(err, p.Stop())
//
// Users then pass flags like --cpu-profile=cpu.prof or --profile heap=heap.prof.
package profile
