package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// program converts instruction words into ROM bytes.
func program(words ...uint16) []byte {
	rom := make([]byte, 0, len(words)*2)
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return rom
}

func newTestInterpreter(t *testing.T, cfg Config, words ...uint16) *Interpreter {
	t.Helper()
	in := New(log.NewTestLogger(t), cfg)
	assert.NoError(t, in.Load(program(words...)))
	return in
}

// run executes the given number of steps and fails the test on any error.
func run(t *testing.T, in *Interpreter, steps int) Event {
	t.Helper()
	var event Event
	for range steps {
		var err error
		event, err = in.Step()
		assert.NoError(t, err)
	}
	return event
}
