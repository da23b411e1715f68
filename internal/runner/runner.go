// Package runner orchestrates a single run of a ROM.
package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Frontend runs a session until the user quits, the context is cancelled
// or the program faults.
type Frontend interface {
	Run(ctx context.Context, s *session.Session) error
}

// Runner loads a ROM, sets up the interpreter and hands it to a frontend.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	output   io.Writer
}

// New creates a new runner, disassembly listings are written to output.
func New(logger *log.Logger, output io.Writer) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		output:   output,
	}
}

// Execute runs the ROM given in the options with the frontend. With the
// disassembly option set the ROM is listed instead and the frontend is not used.
func (r *Runner) Execute(ctx context.Context, opts options.Program, frontend Frontend) error {
	rom, err := r.loader.LoadROM(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	if opts.Disasm {
		if err := disasm.Write(r.output, rom, vm.ProgramStart); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	machine, err := r.createInterpreter(opts, rom)
	if err != nil {
		return err
	}

	s, err := session.New(r.logger, machine, clock.Config{CPURate: opts.Rate})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	runErr := frontend.Run(ctx, s)
	if runErr != nil {
		runErr = fmt.Errorf("running frontend: %w", runErr)
	}

	if opts.Save != "" {
		if err := r.saveState(opts.Save, machine); err != nil {
			if runErr != nil {
				r.logger.Error("Saving state failed", log.Err(err))
				return runErr
			}
			return err
		}
	}
	return runErr
}

// createInterpreter creates the interpreter for the detected quirk profile,
// loads the ROM and restores the save state if one is given.
func (r *Runner) createInterpreter(opts options.Program, rom []byte) (*vm.Interpreter, error) {
	profile := r.detector.Detect(opts)
	quirks, err := config.Quirks(profile, opts.QuirkFlags)
	if err != nil {
		return nil, fmt.Errorf("resolving quirks: %w", err)
	}

	app.PrintInfo(r.logger, opts, profile, quirks, len(rom))

	cfg := vm.Config{
		Quirks:     quirks,
		Permissive: opts.Permissive,
	}
	if opts.Seed != 0 {
		cfg.Rand = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	machine := vm.New(r.logger, cfg)

	if err := machine.Load(rom); err != nil {
		return nil, fmt.Errorf("loading rom into memory: %w", err)
	}
	if opts.Trace {
		machine.SetTracer(r.trace)
	}

	if opts.Load != "" {
		data, err := r.loader.LoadState(opts.Load)
		if err != nil {
			return nil, fmt.Errorf("loading state: %w", err)
		}
		if err := machine.Restore(data); err != nil {
			return nil, fmt.Errorf("restoring state: %w", err)
		}
		r.logger.Info("Save state restored", log.String("file", opts.Load))
	}

	return machine, nil
}

func (r *Runner) saveState(path string, machine *vm.Interpreter) error {
	data, err := machine.Snapshot()
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := r.loader.SaveState(path, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	r.logger.Info("Save state written", log.String("file", path))
	return nil
}

func (r *Runner) trace(pc, opcode uint16) {
	r.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("instruction", disasm.Format(opcode)))
}
