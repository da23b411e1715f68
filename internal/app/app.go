// Package app provides the main application helpers for the interpreter.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", VersionString(version, commit)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// VersionString returns the version with the abbreviated commit appended.
func VersionString(version, commit string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// PrintInfo prints the information about the ROM and the selected behavior.
func PrintInfo(logger *log.Logger, opts options.Program, profile string, quirks vm.Quirks, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.String("frontend", opts.Frontend),
		log.String("profile", profile),
		log.Int("rate", opts.Rate),
	)
	logger.Debug("Quirks",
		log.String("enabled", QuirkNames(quirks)),
	)
}

// QuirkNames returns a comma separated list of the enabled quirks.
func QuirkNames(quirks vm.Quirks) string {
	var names []string
	for _, quirk := range []struct {
		name    string
		enabled bool
	}{
		{"shift-vy", quirks.ShiftUsesVY},
		{"wrap", quirks.DrawWraps},
		{"index-increment", quirks.IncrementIndex},
		{"vf-reset", quirks.ResetFlagOnLogic},
		{"jump-vx", quirks.JumpUsesVX},
	} {
		if quirk.enabled {
			names = append(names, quirk.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
