package cpu

const (
	MEMORY_SIZE = 256  // Bytes of memory, code and data share it.
	REG_COUNT   = 8    // Number of registers.
	REG_SP      = 7    // Register holding the stack pointer.
	STACK_TOP   = 0xf4 // Initial stack pointer; the stack grows downward.
)

// Memory is the byte addressable main memory.
type Memory [MEMORY_SIZE]byte

// Valid returns true if the address lies inside the memory.
func (mem *Memory) Valid(addr int) bool {
	return addr >= 0 && addr < len(mem)
}

// Read returns the byte at an address.
func (mem *Memory) Read(addr int) (value byte, ok bool) {
	if !mem.Valid(addr) {
		return
	}
	return mem[addr], true
}

// Write stores a byte at an address.
func (mem *Memory) Write(addr int, value byte) (ok bool) {
	if !mem.Valid(addr) {
		return
	}
	mem[addr] = value
	return true
}

// Peek returns the byte at an address, or zero outside of memory.
func (mem *Memory) Peek(addr int) (value byte) {
	value, _ = mem.Read(addr)
	return
}

// Register is the register file. Register REG_SP is the stack pointer.
type Register [REG_COUNT]byte

// Reset clears all registers and sets the stack pointer to STACK_TOP.
func (reg *Register) Reset() {
	clear(reg[:])
	reg[REG_SP] = STACK_TOP
}
