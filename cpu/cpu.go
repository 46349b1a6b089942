package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

// UnknownPolicy selects what the CPU does with an opcode outside of the
// instruction set.
type UnknownPolicy int

const (
	UNKNOWN_FAULT = UnknownPolicy(0) // fault
	UNKNOWN_STALL = UnknownPolicy(1) // stall
	UNKNOWN_SKIP  = UnknownPolicy(2) // skip
)

var unknownPolicyName = map[UnknownPolicy]string{
	UNKNOWN_FAULT: "fault",
	UNKNOWN_STALL: "stall",
	UNKNOWN_SKIP:  "skip",
}

// ParseUnknownPolicy returns the policy for a name.
func ParseUnknownPolicy(name string) (policy UnknownPolicy, ok bool) {
	for policy, policy_name := range unknownPolicyName {
		if policy_name == name {
			return policy, true
		}
	}
	return
}

func (up UnknownPolicy) String() string {
	name, ok := unknownPolicyName[up]
	if !ok {
		return fmt.Sprintf("UnknownPolicy(%d)", int(up))
	}
	return name
}

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"REG_COUNT":   fmt.Sprintf("%d", REG_COUNT),
	"REG_SP":      fmt.Sprintf("%d", REG_SP),
	"STACK_TOP":   fmt.Sprintf("0x%x", STACK_TOP),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool          // Set to enable verbose logging.
	Unknown UnknownPolicy // Handling of opcodes outside the instruction set.
	Console Channel       // Destination of PRN and PRA, discarded if nil.

	Pc       int      // Address of the next instruction.
	Memory   Memory   // Main memory.
	Register Register // Register bank.
	Flag     Flag     // Result of the most recent CMP.
	Running  bool     // Cleared by HLT.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU, reset and ready to run from address 0.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory and the registers.
// - Sets the stack pointer to STACK_TOP.
// - Clears the flags and the tick counter.
// - Sets the PC to 0 and marks the CPU running.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	cpu.Register.Reset()
	cpu.Flag = FLAG_NONE
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.Running = true
}

// Load copies a memory image to address 0.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > len(cpu.Memory) {
		err = ErrProgramSize
		return
	}

	copy(cpu.Memory[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// Stack returns a view of the stack in memory.
func (cpu *Cpu) Stack() Stack {
	return Stack{Memory: &cpu.Memory, Register: &cpu.Register}
}

// Run ticks the CPU until it halts or faults.
// If limit is positive, at most limit instructions are executed before
// ErrStepLimit is returned.
func (cpu *Cpu) Run(limit int) (err error) {
	for steps := 0; cpu.Running; steps++ {
		if limit > 0 && steps >= limit {
			err = ErrStepLimit
			return
		}
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	value, ok := cpu.Memory.Read(cpu.Pc)
	if !ok {
		err = ErrAddress{Pc: cpu.Pc, Address: cpu.Pc}
		return
	}

	err = cpu.Execute(Opcode(value))
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// register returns the register named by an operand byte.
func (cpu *Cpu) register(pc int, index byte) (reg *byte, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrRegister{Pc: pc, Index: index}
		return
	}

	reg = &cpu.Register[index]
	return
}

// taken returns true if a jump instruction transfers control.
func (cpu *Cpu) taken(op Opcode) bool {
	fl := cpu.Flag
	switch op {
	case OP_JMP:
		return true
	case OP_JEQ:
		return fl.Equal()
	case OP_JNE:
		return !fl.Equal()
	case OP_JGT:
		return fl.Greater()
	case OP_JLT:
		return fl.Less()
	case OP_JLE:
		return fl.Less() || fl.Equal()
	case OP_JGE:
		return fl.Greater() || fl.Equal()
	}
	return false
}

// Execute executes the instruction at the PC, whose opcode is op.
// The operands are read from the bytes following the PC. On success
// the PC is set to the next instruction; on a fault the CPU state is
// unchanged.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	pc := cpu.Pc

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: pc, Opcode: op}, err)
		}
	}()

	if cpu.Verbose {
		text, _ := Disassemble(cpu.Memory[:], pc)
		log.Printf("cpu: %02x: %v", pc, text)
	}

	if !op.Known() {
		switch cpu.Unknown {
		case UNKNOWN_STALL:
			// PC stays put; only a step limit ends this.
		case UNKNOWN_SKIP:
			cpu.Pc = pc + op.Size()
		default:
			err = ErrOpcodeUnknown
		}
		return
	}

	var operand [2]byte
	for n := range op.Operands() {
		addr := pc + 1 + n
		value, ok := cpu.Memory.Read(addr)
		if !ok {
			err = ErrAddress{Pc: pc, Address: addr}
			return
		}
		operand[n] = value
	}

	next_pc := pc + op.Size()
	stack := cpu.Stack()

	var ra, rb *byte
	if op.Operands() > 0 {
		ra, err = cpu.register(pc, operand[0])
		if err != nil {
			return
		}
	}

	switch op {
	case OP_NOP:
		// pass
	case OP_HLT:
		cpu.Running = false
		next_pc = pc
	case OP_LDI:
		*ra = operand[1]
	case OP_LD:
		rb, err = cpu.register(pc, operand[1])
		if err != nil {
			return
		}
		*ra = cpu.Memory[*rb]
	case OP_ST:
		rb, err = cpu.register(pc, operand[1])
		if err != nil {
			return
		}
		cpu.Memory[*ra] = *rb
	case OP_PRN:
		if cpu.Console != nil {
			err = cpu.Console.Number(*ra)
		}
	case OP_PRA:
		if cpu.Console != nil {
			err = cpu.Console.Char(*ra)
		}
	case OP_PUSH:
		stack.Push(*ra)
	case OP_POP:
		*ra = stack.Pop()
	case OP_CALL:
		target := int(*ra)
		stack.Push(byte(next_pc))
		next_pc = target
	case OP_RET:
		next_pc = int(stack.Pop())
	case OP_JMP, OP_JEQ, OP_JNE, OP_JGT, OP_JLT, OP_JLE, OP_JGE:
		if cpu.taken(op) {
			next_pc = int(*ra)
		}
	default:
		alu, ok := op.Alu()
		if !ok {
			err = ErrOpcodeUnknown
			return
		}
		var b byte
		if !alu.Unary() {
			rb, err = cpu.register(pc, operand[1])
			if err != nil {
				return
			}
			b = *rb
		}
		var output byte
		var flag Flag
		output, flag, err = Alu(alu, *ra, b)
		if err != nil {
			return
		}
		if alu.Writes() {
			*ra = output
		} else {
			cpu.Flag = flag
		}
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %02X\n", "pc", cpu.Pc)
	fmt.Fprintf(&sb, "% 5s: %v (%03b)\n", "fl", cpu.Flag, cpu.Flag.Bits())
	for n, val := range cpu.Register {
		fmt.Fprintf(&sb, "% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}
	stack := cpu.Stack()
	if stack.Empty() {
		fmt.Fprintf(&sb, "% 5s: --\n", "stack")
	} else {
		fmt.Fprintf(&sb, "% 5s: %02X\n", "stack", stack.Peek())
	}

	return sb.String()
}
