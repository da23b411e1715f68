// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

var (
	validFrontends = []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}
	validProfiles  = []string{options.ProfileCHIP8, options.ProfileCOSMAC, options.ProfileSuperChip}
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readQuirkFlags(flags, &opts.QuirkFlags)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(validFrontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	opts.Profile = strings.ToLower(opts.Profile)
	if opts.Profile != "" && !slices.Contains(validProfiles, opts.Profile) {
		return fmt.Errorf("unsupported quirk profile: %s. Valid options: %s",
			opts.Profile, strings.Join(validProfiles, ", "))
	}

	switch {
	case opts.Rate <= 0:
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Rate)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid window scale %d, must be positive", opts.Scale)
	case opts.Frames <= 0:
		return fmt.Errorf("invalid frame count %d, must be positive", opts.Frames)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "f", options.FrontendWindow, "frontend to run the ROM in (window/terminal/headless)")
	flags.StringVar(&opts.Profile, "p", "", "quirk profile (chip8/cosmac/schip) - if not auto-detected from file extension")
	flags.IntVar(&opts.Rate, "rate", options.DefaultRate, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor of the 64x32 display")
	flags.IntVar(&opts.Frames, "frames", options.DefaultFrames, "number of 60 Hz frames to run in headless mode")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, time based if 0")
	flags.StringVar(&opts.Load, "load", "", "name of a save state file to restore after loading the ROM")
	flags.StringVar(&opts.Save, "save", "", "name of a save state file to write when the run ends")
	flags.BoolVar(&opts.Permissive, "permissive", false, "treat invalid opcodes as no-ops instead of halting")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Mute, "mute", false, "disable audio output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readQuirkFlags(flags *flag.FlagSet, opts *options.QuirkFlags) {
	flags.BoolVar(&opts.ShiftUsesVY, "shift-vy", false, "8XY6/8XYE shift VY into VX")
	flags.BoolVar(&opts.DrawWraps, "wrap", false, "sprites wrap around the display edges instead of being clipped")
	flags.BoolVar(&opts.IncrementIndex, "index-increment", false, "FX55/FX65 advance I by X+1")
	flags.BoolVar(&opts.ResetFlagOnLogic, "vf-reset", false, "8XY1/8XY2/8XY3 reset VF")
	flags.BoolVar(&opts.JumpUsesVX, "jump-vx", false, "BXNN jumps to XNN + VX")
}
