// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Quirks returns the quirks of the named profile with the enabled overrides applied.
func Quirks(profile string, overrides options.QuirkFlags) (vm.Quirks, error) {
	var quirks vm.Quirks
	switch profile {
	case options.ProfileCHIP8, "":
	case options.ProfileCOSMAC:
		quirks = vm.COSMACQuirks()
	case options.ProfileSuperChip:
		quirks = vm.SuperChipQuirks()
	default:
		return vm.Quirks{}, fmt.Errorf("unsupported quirk profile '%s'", profile)
	}

	quirks.ShiftUsesVY = quirks.ShiftUsesVY || overrides.ShiftUsesVY
	quirks.DrawWraps = quirks.DrawWraps || overrides.DrawWraps
	quirks.IncrementIndex = quirks.IncrementIndex || overrides.IncrementIndex
	quirks.ResetFlagOnLogic = quirks.ResetFlagOnLogic || overrides.ResetFlagOnLogic
	quirks.JumpUsesVX = quirks.JumpUsesVX || overrides.JumpUsesVX
	return quirks, nil
}
