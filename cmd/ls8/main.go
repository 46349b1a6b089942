// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/internal"
)

func main() {
	var assemble bool
	var save bool
	var trace bool
	var verbose bool
	var dump bool
	var defines bool
	var limit int
	var unknown string

	flag.BoolVar(&assemble, "a", false, "Input is assembly source, not a binary image")
	flag.BoolVar(&save, "s", false, "Write the binary image to stdout, do not execute")
	flag.BoolVar(&trace, "t", false, "Trace every instruction to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump the machine state on exit")
	flag.BoolVar(&defines, "defines", false, "List the assembler predefines and exit")
	flag.IntVar(&limit, "n", emulator.STEP_LIMIT, "Maximum instructions to execute, 0 is unlimited")
	flag.StringVar(&unknown, "u", cpu.UNKNOWN_FAULT.String(), "Unknown opcode policy: fault, stall, or skip")

	flag.Parse()

	if !defines && flag.NArg() != 1 {
		log.Fatalf("usage: %v [flags] program", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.StepLimit = limit

	if defines {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			fmt.Printf("%v %v\n", key, value)
		}
		return
	}

	policy, ok := cpu.ParseUnknownPolicy(unknown)
	if !ok {
		log.Fatalf("%v: unknown opcode policy '%v'", os.Args[0], unknown)
	}

	source := flag.Arg(0)
	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	var prog *cpu.Program
	if assemble {
		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
	} else {
		ld := &cpu.Loader{Verbose: verbose}
		prog, err = ld.Load(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if save {
		_, err = prog.WriteTo(os.Stdout)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
		return
	}

	emu.Program = prog
	emu.Cpu.Unknown = policy
	if trace {
		emu.Trace = os.Stderr
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	err = emu.Run()

	if dump {
		emu.Dump(os.Stderr)
	}

	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
}
