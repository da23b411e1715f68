package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestQuirks(t *testing.T) {
	tests := []struct {
		name      string
		profile   string
		overrides options.QuirkFlags
		want      vm.Quirks
	}{
		{
			name:    "default profile",
			profile: "",
			want:    vm.Quirks{},
		},
		{
			name:    "chip8 profile",
			profile: options.ProfileCHIP8,
			want:    vm.Quirks{},
		},
		{
			name:    "cosmac profile",
			profile: options.ProfileCOSMAC,
			want:    vm.COSMACQuirks(),
		},
		{
			name:    "schip profile",
			profile: options.ProfileSuperChip,
			want:    vm.SuperChipQuirks(),
		},
		{
			name:      "overrides on default profile",
			profile:   options.ProfileCHIP8,
			overrides: options.QuirkFlags{DrawWraps: true, JumpUsesVX: true},
			want:      vm.Quirks{DrawWraps: true, JumpUsesVX: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quirks(tt.profile, tt.overrides)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuirksOverrideKeepsProfile(t *testing.T) {
	got, err := Quirks(options.ProfileCOSMAC, options.QuirkFlags{DrawWraps: true})
	assert.NoError(t, err)
	assert.True(t, got.DrawWraps)
	assert.Equal(t, vm.COSMACQuirks().ShiftUsesVY, got.ShiftUsesVY)
}

func TestQuirksUnknownProfile(t *testing.T) {
	_, err := Quirks("xochip", options.QuirkFlags{})
	assert.ErrorContains(t, err, "unsupported quirk profile 'xochip'")
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
