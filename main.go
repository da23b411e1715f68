// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	appctx "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := appctx.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	frontend, closer := createFrontend(logger, opts)
	err = runner.New(logger, os.Stdout).Execute(ctx, opts, frontend)
	closer()

	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running ROM failed", log.Err(err))
		os.Exit(1)
	}
}

// createFrontend returns the frontend selected in the options and a function
// that releases its resources.
func createFrontend(logger *log.Logger, opts options.Program) (runner.Frontend, func()) {
	if opts.Frontend == options.FrontendHeadless || opts.Disasm {
		return headless.New(logger, os.Stdout, opts.Frames), func() {}
	}

	beeper := audio.Open(logger, opts.Mute)
	closer := func() {
		if err := beeper.Close(); err != nil {
			logger.Warn("Closing audio failed", log.Err(err))
		}
	}

	if opts.Frontend == options.FrontendTerminal {
		return terminal.New(logger, beeper), closer
	}
	return window.New(logger, beeper, opts.Scale, "retrochip8 - "+opts.Input), closer
}
