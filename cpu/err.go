package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrStepLimit      = errors.New(f("step limit reached"))
	ErrOpcodeUnknown  = errors.New(f("opcode unknown"))
	ErrDivisionByZero = errors.New(f("division by zero"))

	// Loader errors
	ErrParseBinary = errors.New(f("not an 8-bit binary literal"))
	ErrProgramSize = errors.New(f("program exceeds memory"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrDataMissing     = errors.New(f(".db without values"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("operand count"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrOpcode locates a fault at the instruction that raised it.
type ErrOpcode struct {
	Pc     int
	Opcode Opcode
}

func (eo ErrOpcode) Error() string {
	return f("pc 0x%02x opcode 0b%08b %v", eo.Pc, byte(eo.Opcode), eo.Opcode.String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is a memory access outside of the memory bounds.
type ErrAddress struct {
	Pc      int
	Address int
}

func (ea ErrAddress) Error() string {
	return f("pc 0x%02x address 0x%x out of bounds", ea.Pc, ea.Address)
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrRegister is an operand naming a register outside of the register file.
type ErrRegister struct {
	Pc    int
	Index byte
}

func (er ErrRegister) Error() string {
	return f("pc 0x%02x register %d invalid", er.Pc, er.Index)
}

func (er ErrRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrRegister)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
