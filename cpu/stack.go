package cpu

// Stack is a view of the stack region of memory, addressed by REG_SP.
// Push and pop are not checked for balance; the stack pointer wraps
// at 8 bits like any other register.
type Stack struct {
	Memory   *Memory
	Register *Register
}

// Pointer returns the current stack pointer.
func (s Stack) Pointer() byte {
	return s.Register[REG_SP]
}

func (s Stack) Push(value byte) {
	s.Register[REG_SP]--
	s.Memory[s.Register[REG_SP]] = value
}

func (s Stack) Pop() (value byte) {
	value = s.Peek()
	s.Register[REG_SP]++
	return
}

func (s Stack) Peek() (value byte) {
	return s.Memory[s.Register[REG_SP]]
}

// Depth returns the number of bytes pushed below STACK_TOP.
// It is negative after more pops than pushes.
func (s Stack) Depth() int {
	return STACK_TOP - int(s.Register[REG_SP])
}

func (s Stack) Empty() bool {
	return s.Depth() <= 0
}
