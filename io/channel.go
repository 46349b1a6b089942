// Package io provides the observation channels for the LS-8 emulator.
// The PRN and PRA instructions emit through a Channel; the Console writes
// to an io.Writer, and the Capture records emitted values in memory.
package io

// Channel defines the interface for output from the LS-8 CPU.
type Channel interface {
	// Number emits a value as a decimal integer.
	Number(value byte) error
	// Char emits a value as a single character.
	Char(value byte) error
}
