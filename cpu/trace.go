package cpu

import (
	"fmt"
	"strings"
)

// Trace returns a single line describing the CPU state: the PC, the three
// bytes of memory starting at the PC, and every register.
// Bytes beyond the end of memory are shown as 00.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.Memory.Peek(cpu.Pc),
		cpu.Memory.Peek(cpu.Pc+1),
		cpu.Memory.Peek(cpu.Pc+2),
	)

	for _, val := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", val)
	}

	return sb.String()
}

// Disassemble returns the assembly text of the instruction at addr, and
// its size in bytes. Operands missing past the end of mem are shown as ??.
func Disassemble(mem []byte, addr int) (text string, size int) {
	if addr < 0 || addr >= len(mem) {
		return "??", 1
	}

	op := Opcode(mem[addr])
	size = op.Size()

	operand := func(n int) string {
		at := addr + 1 + n
		if at >= len(mem) {
			return "??"
		}
		return fmt.Sprintf("%d", mem[at])
	}
	register := func(n int) string {
		at := addr + 1 + n
		if at >= len(mem) {
			return "??"
		}
		return fmt.Sprintf("R%d", mem[at])
	}

	if !op.Known() {
		text = fmt.Sprintf(".db 0b%08b", byte(op))
		size = 1
		return
	}

	switch {
	case op == OP_LDI:
		text = fmt.Sprintf("%v %v,%v", op, register(0), operand(1))
	case op.Operands() == 2:
		text = fmt.Sprintf("%v %v,%v", op, register(0), register(1))
	case op.Operands() == 1:
		text = fmt.Sprintf("%v %v", op, register(0))
	default:
		text = op.String()
	}

	return
}
