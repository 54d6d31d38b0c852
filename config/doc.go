// Package config loads player settings from defaults, an optional YAML file,
// and command-line flags, in increasing order of precedence.
//
// The YAML file is validated against a JSON Schema generated from [Settings]
// before it is decoded, so unknown keys and wrongly typed values are reported
// with their location. [Schema] returns that schema for editors and for the
// "config schema" command.
//
//	cfg := config.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//	cfg.RegisterCompletions(rootCmd)
//
//	settings, err := cfg.Load()
//	ff, err := settings.NewFFmpeg()
//	opts, err := settings.PlayerOptions()
package config
