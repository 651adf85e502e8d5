package chip8

import "errors"

// StackSize is the maximum call depth.
const StackSize = 16

var (
	// ErrStackOverflow is returned when pushing onto a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when popping an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack holds subroutine return addresses.
type Stack struct {
	data [StackSize]uint16
	sp   int // number of entries in use
}

// Push adds addr to the top of the stack.
func (s *Stack) Push(addr uint16) error {
	if s.sp == StackSize {
		return ErrStackOverflow
	}
	s.data[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.data[s.sp], nil
}

// Len reports how many addresses are on the stack.
func (s *Stack) Len() int {
	return s.sp
}
