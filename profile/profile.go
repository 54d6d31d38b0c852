package profile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"slices"
)

// ErrUnknownProfile is returned by [Profiler.Start] for a snapshot name that
// pprof does not know.
var ErrUnknownProfile = errors.New("unknown profile")

// Profiler controls one profiling session.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cfg       *Config
	cpuFile   *os.File
	traceFile *os.File
	started   bool
}

// Start checks the snapshot names, sets sampling rates, and begins CPU
// profiling and tracing when enabled. On error nothing is left running.
func (p *Profiler) Start() error {
	for _, name := range slices.Sorted(maps.Keys(p.cfg.Snapshots)) {
		if pprof.Lookup(name) == nil {
			return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
		}
	}

	if _, ok := p.cfg.Snapshots["block"]; ok {
		runtime.SetBlockProfileRate(p.cfg.BlockProfileRate)
	}

	if _, ok := p.cfg.Snapshots["mutex"]; ok {
		runtime.SetMutexProfileFraction(p.cfg.MutexProfileFraction)
	}

	if p.cfg.CPUProfile != "" {
		f, err := os.Create(p.cfg.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Join(fmt.Errorf("starting CPU profile: %w", err), f.Close())
		}

		p.cpuFile = f
	}

	if p.cfg.Trace != "" {
		f, err := os.Create(p.cfg.Trace) //nolint:gosec // Trace path from CLI flag is expected.
		if err != nil {
			return errors.Join(fmt.Errorf("creating trace: %w", err), p.stopCPU())
		}

		err = trace.Start(f)
		if err != nil {
			return errors.Join(fmt.Errorf("starting trace: %w", err), f.Close(), p.stopCPU())
		}

		p.traceFile = f
	}

	p.started = true

	return nil
}

// Stop ends tracing and CPU profiling and writes the snapshot profiles. It
// does nothing if [Profiler.Start] did not succeed. Every output is attempted
// even when an earlier one fails.
func (p *Profiler) Stop() error {
	if !p.started {
		return nil
	}

	p.started = false

	var errs []error

	if p.traceFile != nil {
		trace.Stop()

		err := p.traceFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("closing trace: %w", err))
		}

		p.traceFile = nil
	}

	errs = append(errs, p.stopCPU())

	for _, name := range slices.Sorted(maps.Keys(p.cfg.Snapshots)) {
		errs = append(errs, writeSnapshot(name, p.cfg.Snapshots[name]))
	}

	return errors.Join(errs...)
}

func (p *Profiler) stopCPU() error {
	if p.cpuFile == nil {
		return nil
	}

	pprof.StopCPUProfile()

	err := p.cpuFile.Close()
	p.cpuFile = nil

	if err != nil {
		return fmt.Errorf("closing CPU profile: %w", err)
	}

	return nil
}

func writeSnapshot(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
