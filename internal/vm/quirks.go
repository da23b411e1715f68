package vm

// Quirks selects behaviors that differ between historical CHIP-8 interpreters.
// The zero value matches the CHIP-48 behavior that most ROM archives expect.
type Quirks struct {
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting VX in place.
	ShiftUsesVY bool `json:"shift_uses_vy"`
	// DrawWraps wraps sprite pixels crossing the display edge instead of clipping them.
	DrawWraps bool `json:"draw_wraps"`
	// IncrementIndex advances I by X+1 after FX55 and FX65.
	IncrementIndex bool `json:"increment_index"`
	// ResetFlagOnLogic clears VF after 8XY1, 8XY2 and 8XY3.
	ResetFlagOnLogic bool `json:"reset_flag_on_logic"`
	// JumpUsesVX makes BXNN jump to XNN + VX instead of NNN + V0.
	JumpUsesVX bool `json:"jump_uses_vx"`
}

// COSMACQuirks returns the behavior of the original COSMAC VIP interpreter.
func COSMACQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:      true,
		IncrementIndex:   true,
		ResetFlagOnLogic: true,
	}
}

// SuperChipQuirks returns the behavior of the SUPER-CHIP interpreter for
// programs written for it that only use the base instruction set.
func SuperChipQuirks() Quirks {
	return Quirks{
		JumpUsesVX: true,
	}
}
