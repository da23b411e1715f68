package vm

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys. It is written by the host
// and read by the interpreter.
type Keypad struct {
	pressed [KeyCount]bool
}

// Pressed returns whether the key with the given index is pressed.
func (k *Keypad) Pressed(key byte) bool {
	return k.pressed[key&0x0F]
}

func (k *Keypad) set(key int, pressed bool) {
	k.pressed[key] = pressed
}

// keyWait tracks the keys that were already held when a key wait started,
// a held key only qualifies for the wait after it has been released.
type keyWait struct {
	register byte
	held     [KeyCount]bool
}

func newKeyWait(register byte, keys *Keypad) keyWait {
	return keyWait{
		register: register,
		held:     keys.pressed,
	}
}

// poll returns the lowest newly pressed key and consumes the press.
func (w *keyWait) poll(keys *Keypad) (byte, bool) {
	for i, pressed := range keys.pressed {
		if !pressed {
			w.held[i] = false
			continue
		}
		if !w.held[i] {
			w.held[i] = true
			return byte(i), true
		}
	}
	return 0, false
}
