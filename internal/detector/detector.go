// Package detector handles quirk profile detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles quirk profile detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new profile detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the quirk profile from options or the input file.
// An explicitly specified profile takes precedence over the file extension.
func (d *Detector) Detect(opts options.Program) string {
	profile := strings.ToLower(opts.Profile)
	if profile == "" {
		profile = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected quirk profile",
			log.String("profile", profile),
			log.String("file", opts.Input))
	}
	return profile
}

// detectFromFile determines the profile based on the file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8":
		return options.ProfileSuperChip
	case ".c8", ".cos":
		return options.ProfileCOSMAC
	default:
		// .ch8, .rom and unknown extensions
		return options.ProfileCHIP8
	}
}
