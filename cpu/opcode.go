package cpu

import (
	"fmt"
	"strings"
)

// Opcode is an instruction byte.
//
// The encoding is AABCDDDD, where AA is the number of operand bytes that
// follow the opcode, B is set for ALU instructions, C is set for
// instructions that assign the PC themselves, and DDDD identifies the
// instruction.
type Opcode byte

const (
	OP_NOP  = Opcode(0b00000000) // NOP
	OP_HLT  = Opcode(0b00000001) // HLT
	OP_RET  = Opcode(0b00010001) // RET
	OP_PUSH = Opcode(0b01000101) // PUSH
	OP_POP  = Opcode(0b01000110) // POP
	OP_PRN  = Opcode(0b01000111) // PRN
	OP_PRA  = Opcode(0b01001000) // PRA
	OP_CALL = Opcode(0b01010000) // CALL
	OP_JMP  = Opcode(0b01010100) // JMP
	OP_JEQ  = Opcode(0b01010101) // JEQ
	OP_JNE  = Opcode(0b01010110) // JNE
	OP_JGT  = Opcode(0b01010111) // JGT
	OP_JLT  = Opcode(0b01011000) // JLT
	OP_JLE  = Opcode(0b01011001) // JLE
	OP_JGE  = Opcode(0b01011010) // JGE
	OP_INC  = Opcode(0b01100101) // INC
	OP_DEC  = Opcode(0b01100110) // DEC
	OP_NOT  = Opcode(0b01101001) // NOT
	OP_LDI  = Opcode(0b10000010) // LDI
	OP_LD   = Opcode(0b10000011) // LD
	OP_ST   = Opcode(0b10000100) // ST
	OP_ADD  = Opcode(0b10100000) // ADD
	OP_SUB  = Opcode(0b10100001) // SUB
	OP_MUL  = Opcode(0b10100010) // MUL
	OP_DIV  = Opcode(0b10100011) // DIV
	OP_MOD  = Opcode(0b10100100) // MOD
	OP_CMP  = Opcode(0b10100111) // CMP
	OP_AND  = Opcode(0b10101000) // AND
	OP_OR   = Opcode(0b10101010) // OR
	OP_XOR  = Opcode(0b10101011) // XOR
	OP_SHL  = Opcode(0b10101100) // SHL
	OP_SHR  = Opcode(0b10101101) // SHR
)

var opcodeName = map[Opcode]string{
	OP_NOP:  "NOP",
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_PRA:  "PRA",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_JGT:  "JGT",
	OP_JLT:  "JLT",
	OP_JLE:  "JLE",
	OP_JGE:  "JGE",
	OP_INC:  "INC",
	OP_DEC:  "DEC",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_ADD:  "ADD",
	OP_SUB:  "SUB",
	OP_MUL:  "MUL",
	OP_DIV:  "DIV",
	OP_MOD:  "MOD",
	OP_CMP:  "CMP",
	OP_AND:  "AND",
	OP_OR:   "OR",
	OP_XOR:  "XOR",
	OP_SHL:  "SHL",
	OP_SHR:  "SHR",
}

var opcodeByName = func() map[string]Opcode {
	names := make(map[string]Opcode, len(opcodeName))
	for op, name := range opcodeName {
		names[name] = op
	}
	return names
}()

// opcodeAlu maps ALU class opcodes to their ALU operation.
var opcodeAlu = map[Opcode]AluOp{
	OP_ADD: ALU_OP_ADD,
	OP_SUB: ALU_OP_SUB,
	OP_MUL: ALU_OP_MUL,
	OP_DIV: ALU_OP_DIV,
	OP_MOD: ALU_OP_MOD,
	OP_CMP: ALU_OP_CMP,
	OP_AND: ALU_OP_AND,
	OP_OR:  ALU_OP_OR,
	OP_XOR: ALU_OP_XOR,
	OP_NOT: ALU_OP_NOT,
	OP_SHL: ALU_OP_SHL,
	OP_SHR: ALU_OP_SHR,
	OP_INC: ALU_OP_INC,
	OP_DEC: ALU_OP_DEC,
}

// ParseOpcode returns the opcode for a mnemonic, ignoring case.
func ParseOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = opcodeByName[strings.ToUpper(mnemonic)]
	return
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Size returns the length of the instruction in bytes.
func (op Opcode) Size() int {
	return op.Operands() + 1
}

// IsAlu returns true if the opcode is executed by the ALU.
func (op Opcode) IsAlu() bool {
	return (op & 0b00100000) != 0
}

// SetsPc returns true if the instruction assigns the PC itself.
func (op Opcode) SetsPc() bool {
	return (op & 0b00010000) != 0
}

// Known returns true if the opcode is part of the instruction set.
func (op Opcode) Known() bool {
	_, ok := opcodeName[op]
	return ok
}

// Alu returns the ALU operation for an ALU class opcode.
func (op Opcode) Alu() (alu AluOp, ok bool) {
	alu, ok = opcodeAlu[op]
	return
}

func (op Opcode) String() string {
	name, ok := opcodeName[op]
	if !ok {
		return fmt.Sprintf("op(0b%08b)", byte(op))
	}
	return name
}
