package cpu

// AluOp is an ALU operation type.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_MOD = AluOp(4)  // mod
	ALU_OP_CMP = AluOp(5)  // cmp
	ALU_OP_AND = AluOp(6)  // and
	ALU_OP_OR  = AluOp(7)  // or
	ALU_OP_XOR = AluOp(8)  // xor
	ALU_OP_NOT = AluOp(9)  // not
	ALU_OP_SHL = AluOp(10) // shl
	ALU_OP_SHR = AluOp(11) // shr
	ALU_OP_INC = AluOp(12) // inc
	ALU_OP_DEC = AluOp(13) // dec
)

// Unary returns true if the operation only uses its first input.
func (op AluOp) Unary() bool {
	switch op {
	case ALU_OP_NOT, ALU_OP_INC, ALU_OP_DEC:
		return true
	}
	return false
}

// Writes returns true if the operation stores a result to its first register.
func (op AluOp) Writes() bool {
	return op != ALU_OP_CMP
}

// Alu performs the requested ALU action on two register values.
// All arithmetic wraps at 8 bits. Shifts are logical; a shift by 8 or more
// yields 0. CMP produces only a flag.
func Alu(op AluOp, a, b byte) (output byte, flag Flag, err error) {
	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_SUB:
		output = a - b
	case ALU_OP_MUL:
		output = a * b
	case ALU_OP_DIV:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		output = a / b
	case ALU_OP_MOD:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		output = a % b
	case ALU_OP_CMP:
		switch {
		case a > b:
			flag = FLAG_GREATER
		case a < b:
			flag = FLAG_LESS
		default:
			flag = FLAG_EQUAL
		}
	case ALU_OP_AND:
		output = a & b
	case ALU_OP_OR:
		output = a | b
	case ALU_OP_XOR:
		output = a ^ b
	case ALU_OP_NOT:
		output = ^a
	case ALU_OP_SHL:
		// Go shifts of a byte by >= 8 already yield 0.
		output = a << b
	case ALU_OP_SHR:
		output = a >> b
	case ALU_OP_INC:
		output = a + 1
	case ALU_OP_DEC:
		output = a - 1
	default:
		err = ErrOpcodeUnknown
	}

	return
}
