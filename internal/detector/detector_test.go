package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name        string
		profileOpt  string
		inputFile   string
		wantProfile string
	}{
		{
			name:        "explicit cosmac profile option",
			profileOpt:  "cosmac",
			inputFile:   "game.ch8",
			wantProfile: options.ProfileCOSMAC,
		},
		{
			name:        "explicit profile option is lowercased",
			profileOpt:  "SCHIP",
			inputFile:   "game.ch8",
			wantProfile: options.ProfileSuperChip,
		},
		{
			name:        "detect from .ch8 extension",
			inputFile:   "game.ch8",
			wantProfile: options.ProfileCHIP8,
		},
		{
			name:        "detect from .sc8 extension",
			inputFile:   "game.sc8",
			wantProfile: options.ProfileSuperChip,
		},
		{
			name:        "unknown extension defaults to chip8",
			inputFile:   "game.bin",
			wantProfile: options.ProfileCHIP8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{Profile: tt.profileOpt},
			}

			got := d.Detect(opts)
			assert.Equal(t, tt.wantProfile, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name        string
		filename    string
		wantProfile string
	}{
		{
			name:        ".ch8 extension",
			filename:    "pong.ch8",
			wantProfile: options.ProfileCHIP8,
		},
		{
			name:        ".SC8 extension (uppercase)",
			filename:    "BLINKY.SC8",
			wantProfile: options.ProfileSuperChip,
		},
		{
			name:        ".c8 extension",
			filename:    "maze.c8",
			wantProfile: options.ProfileCOSMAC,
		},
		{
			name:        ".cos extension",
			filename:    "tetris.cos",
			wantProfile: options.ProfileCOSMAC,
		},
		{
			name:        "no extension",
			filename:    "game",
			wantProfile: options.ProfileCHIP8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.detectFromFile(tt.filename)
			assert.Equal(t, tt.wantProfile, got)
		})
	}
}
