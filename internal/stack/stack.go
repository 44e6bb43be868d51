// Package stack implements the fixed capacity circular byte stack used for
// the data and return stacks of the machine.
//
// The stack never reports overflow or underflow. Pushing past the last slot
// continues at slot 0 and popping below slot 0 continues at the last slot,
// silently aliasing older values.
package stack

// Size is the number of slots of a stack.
const Size = 16

// Stack is a circular buffer of Size bytes with a wrapping top index.
// The zero value is an empty stack with all slots zero and the top at slot 0.
type Stack struct {
	slots [Size]byte
	top   int
}

// Wrap moves index by delta inside a ring of the given size.
// Both directions wrap: Wrap(size-1, 1, size) is 0 and Wrap(0, -1, size) is size-1.
func Wrap(index, delta, size int) int {
	return ((index+delta)%size + size) % size
}

// Push advances the top index and writes b into the new top slot.
func (s *Stack) Push(b byte) {
	s.top = Wrap(s.top, 1, Size)
	s.slots[s.top] = b
}

// Pop reads the top slot and retreats the top index.
func (s *Stack) Pop() byte {
	b := s.slots[s.top]
	s.top = Wrap(s.top, -1, Size)
	return b
}

// Peek returns the top slot without moving the top index.
func (s *Stack) Peek() byte {
	return s.slots[s.top]
}

// Replace overwrites the top slot in place.
func (s *Stack) Replace(b byte) {
	s.slots[s.top] = b
}

// Top returns the current top index.
func (s *Stack) Top() int {
	return s.top
}

// Slots returns a copy of all slots.
func (s *Stack) Slots() [Size]byte {
	return s.slots
}
