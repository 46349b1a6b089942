// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs LS-8 programs: a CPU with a loaded program, an
// output console, an optional trace, and a step ceiling.
package emulator

import (
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

const (
	STEP_LIMIT = 0 // Default step ceiling, zero is unlimited.
)

var _emulator_defines = map[string]string{
	"PROGRAM_START": "0",
}

// Emulator state. CPU + program + output.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Console   io.Console  // Console output channel, stdout by default.
	Trace     goio.Writer // If set, receives a trace line before every tick.
	StepLimit int         // If positive, Run stops after this many ticks.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Program:   &cpu.Program{},
		StepLimit: STEP_LIMIT,
	}

	emu.Console.Output = os.Stdout
	emu.Cpu.Console = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Image())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d bytes loaded", emu.Program.Size())
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// Code returns the text of the current instruction.
func (emu *Emulator) Code() string {
	text, _ := cpu.Disassemble(emu.Cpu.Memory[:], emu.Cpu.Pc)
	return text
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		done = true
		return
	}

	addr := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		}
	}()

	if emu.Trace != nil {
		_, err = fmt.Fprintln(emu.Trace, emu.Cpu.Trace())
		if err != nil {
			return
		}
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running

	return
}

// Run ticks the emulator until the program halts, faults, or reaches
// the step limit.
func (emu *Emulator) Run() (err error) {
	for steps := 0; ; steps++ {
		if emu.StepLimit > 0 && steps >= emu.StepLimit {
			err = &ErrRuntime{Addr: emu.Cpu.Pc, LineNo: emu.LineNo(), Err: cpu.ErrStepLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// Dump writes the machine state in a readable form.
func (emu *Emulator) Dump(w goio.Writer) (err error) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(false)

	state := struct {
		Pc       string
		Flag     string
		Running  bool
		Ticks    int
		Register []string
		Stack    []string
	}{
		Pc:      fmt.Sprintf("0x%02x", emu.Cpu.Pc),
		Flag:    emu.Cpu.Flag.String(),
		Running: emu.Cpu.Running,
		Ticks:   emu.Cpu.Ticks,
	}

	for n, value := range emu.Cpu.Register {
		state.Register = append(state.Register, fmt.Sprintf("r%d=0x%02x", n, value))
	}

	stack := emu.Cpu.Stack()
	for n := range max(stack.Depth(), 0) {
		addr := int(stack.Pointer()) + n
		state.Stack = append(state.Stack, fmt.Sprintf("0x%02x: 0x%02x", addr, emu.Cpu.Memory.Peek(addr)))
	}

	_, err = printer.Println(state)

	return
}
