package app

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestVersionString(t *testing.T) {
	assert.Equal(t, "dev", VersionString("dev", ""))
	assert.Equal(t, "v1.2.0 (abc1234)", VersionString("v1.2.0", "abc1234def5678"))
	assert.Equal(t, "v1.2.0 (abc)", VersionString("v1.2.0", "abc"))
}

func TestQuirkNames(t *testing.T) {
	assert.Equal(t, "none", QuirkNames(vm.Quirks{}))
	assert.Equal(t, "shift-vy, index-increment, vf-reset", QuirkNames(vm.COSMACQuirks()))
	assert.Equal(t, "wrap, jump-vx", QuirkNames(vm.Quirks{DrawWraps: true, JumpUsesVX: true}))
}
