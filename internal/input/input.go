// Package input maps host keys to the CHIP-8 keypad and synchronizes key state
// between host input goroutines and the emulation loop.
package input

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Layout maps the keypad index to the host key on a QWERTY keyboard:
//
//	1 2 3 C     1 2 3 4
//	4 5 6 D  =  Q W E R
//	7 8 9 E     A S D F
//	A 0 B F     Z X C V
var Layout = [vm.KeyCount]rune{
	0x0: 'x',
	0x1: '1',
	0x2: '2',
	0x3: '3',
	0x4: 'q',
	0x5: 'w',
	0x6: 'e',
	0x7: 'a',
	0x8: 's',
	0x9: 'd',
	0xA: 'z',
	0xB: 'c',
	0xC: '4',
	0xD: 'r',
	0xE: 'f',
	0xF: 'v',
}

// KeyForRune returns the keypad index for a host key, upper case letters are accepted.
func KeyForRune(r rune) (int, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for key, mapped := range Layout {
		if mapped == r {
			return key, true
		}
	}
	return 0, false
}

// Latch holds the keypad state written by host input code. It is safe for
// concurrent use, the emulation loop takes a snapshot before each frame.
type Latch struct {
	mu      sync.Mutex
	pressed [vm.KeyCount]bool
	taps    [vm.KeyCount]int
}

// Set sets the pressed state of a key, invalid keys are ignored.
func (l *Latch) Set(key int, pressed bool) {
	if key < 0 || key >= vm.KeyCount {
		return
	}
	l.mu.Lock()
	l.pressed[key] = pressed
	if !pressed {
		l.taps[key] = 0
	}
	l.mu.Unlock()
}

// Tap presses a key for the given number of snapshots. It is used by hosts
// that only report key presses but no releases.
func (l *Latch) Tap(key, frames int) {
	if key < 0 || key >= vm.KeyCount || frames <= 0 {
		return
	}
	l.mu.Lock()
	l.taps[key] = max(l.taps[key], frames)
	l.mu.Unlock()
}

// Snapshot returns the current key state and counts down the tapped keys.
func (l *Latch) Snapshot() [vm.KeyCount]bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var keys [vm.KeyCount]bool
	for i := range keys {
		keys[i] = l.pressed[i] || l.taps[i] > 0
		if l.taps[i] > 0 {
			l.taps[i]--
		}
	}
	return keys
}
