package input

import (
	"sync"
	"testing"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r     rune
		key   int
		valid bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'v', 0xF, true},
		{'f', 0xE, true},
		{'p', 0, false},
		{'0', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := KeyForRune(tt.r)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLayoutIsUnique(t *testing.T) {
	seen := map[rune]bool{}
	for _, r := range Layout {
		assert.False(t, seen[r])
		seen[r] = true
	}
	assert.Equal(t, vm.KeyCount, len(seen))
}

func TestLatchSet(t *testing.T) {
	var l Latch
	l.Set(0x5, true)
	l.Set(-1, true)
	l.Set(vm.KeyCount, true)

	keys := l.Snapshot()
	assert.True(t, keys[0x5])
	keys = l.Snapshot()
	assert.True(t, keys[0x5])

	l.Set(0x5, false)
	keys = l.Snapshot()
	assert.False(t, keys[0x5])
}

func TestLatchTap(t *testing.T) {
	var l Latch
	l.Tap(0xA, 2)
	l.Tap(0xB, 0)

	assert.True(t, l.Snapshot()[0xA])
	assert.True(t, l.Snapshot()[0xA])
	assert.False(t, l.Snapshot()[0xA])
	assert.False(t, l.Snapshot()[0xB])

	l.Tap(0xA, 3)
	l.Set(0xA, false)
	assert.False(t, l.Snapshot()[0xA])
}

func TestLatchConcurrent(t *testing.T) {
	var l Latch
	var wg sync.WaitGroup
	for key := range vm.KeyCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				l.Tap(key, 1)
				l.Set(key, true)
			}
		}()
	}
	wg.Wait()

	keys := l.Snapshot()
	for key := range vm.KeyCount {
		assert.True(t, keys[key])
	}
}
