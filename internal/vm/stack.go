package vm

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// Stack is the call stack holding subroutine return addresses.
type Stack struct {
	entries [StackDepth]uint16
	depth   int
}

// Depth returns the number of return addresses on the stack.
func (s *Stack) Depth() int {
	return s.depth
}

// push adds a return address, a full stack returns ErrStackOverflow.
func (s *Stack) push(address uint16) error {
	if s.depth == StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.depth] = address
	s.depth++
	return nil
}

// pop removes the most recent return address, an empty stack returns ErrStackUnderflow.
func (s *Stack) pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	return s.entries[s.depth], nil
}

func (s *Stack) reset() {
	*s = Stack{}
}
