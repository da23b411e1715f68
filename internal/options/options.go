// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Quirk profile names.
const (
	ProfileCHIP8     = "chip8"
	ProfileCOSMAC    = "cosmac"
	ProfileSuperChip = "schip"
)

// Defaults of the behavior options.
const (
	DefaultRate   = 700
	DefaultScale  = 10
	DefaultFrames = 600
)

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file
	Load  string // save state to restore after loading the ROM
	Save  string // save state to write when the run ends
}

// Flags contains behavior options.
type Flags struct {
	Frontend   string
	Profile    string // quirk profile, empty for detection from the file extension
	Rate       int    // instructions per second
	Scale      int
	Frames     int // headless frame count
	Seed       uint64
	Permissive bool // invalid opcodes are no-ops
	Disasm     bool
	Trace      bool
	Mute       bool
	Debug      bool
	Quiet      bool
}

// QuirkFlags enables single quirks on top of the selected profile.
type QuirkFlags struct {
	ShiftUsesVY      bool
	DrawWraps        bool
	IncrementIndex   bool
	ResetFlagOnLogic bool
	JumpUsesVX       bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	QuirkFlags
}
