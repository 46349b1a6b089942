// Package cpu implements the processor, loader and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), 256 bytes of memory shared by
// code and data, eight 8-bit registers (r0-r7, with r7 as the stack pointer),
// an ALU, and a flags register recording the result of the last comparison.
// The stack lives in memory and grows downward from STACK_TOP.
//
// Programs are loaded from the binary-text image format (one byte per line,
// written as an 8-bit binary literal), or assembled from LS-8 mnemonics by the
// Assembler, which supports labels, equates, data bytes, and compile-time
// expression evaluation.
package cpu
