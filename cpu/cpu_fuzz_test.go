package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func FuzzCpu(f *testing.F) {
	for op := range 256 {
		f.Add(byte(op), byte(0), byte(1), byte(0x12), byte(0x34), uint8(0))
	}
	f.Add(byte(OP_DIV), byte(0), byte(1), byte(7), byte(0), uint8(2))
	f.Add(byte(OP_LDI), byte(9), byte(1), byte(0), byte(0), uint8(0))

	f.Fuzz(func(t *testing.T, opcode byte, a byte, b byte, va byte, vb byte, policy uint8) {
		assert := assert.New(t)

		op := Opcode(opcode)
		out := &io.Capture{}

		cpu := NewCpu()
		cpu.Console = out
		cpu.Unknown = UnknownPolicy(policy % 3)
		cpu.Pc = 0x10
		cpu.Memory[0x10] = opcode
		cpu.Memory[0x11] = a
		cpu.Memory[0x12] = b
		if a < REG_SP {
			cpu.Register[a] = va
		}
		if b < REG_SP && b != a {
			cpu.Register[b] = vb
		}

		before := *cpu
		err := cpu.Tick()

		if err != nil {
			assert.ErrorIs(err, ErrOpcode{})
			assert.Equal(before.Pc, cpu.Pc)
			assert.Equal(before.Register, cpu.Register)
			assert.Equal(before.Memory, cpu.Memory)
			assert.Equal(before.Flag, cpu.Flag)
			assert.Equal(0, cpu.Ticks)
			assert.True(cpu.Running)

			switch {
			case !op.Known():
				assert.ErrorIs(err, ErrOpcodeUnknown)
				assert.Equal(UNKNOWN_FAULT, cpu.Unknown)
			case errors.Is(err, ErrDivisionByZero):
				assert.True(op == OP_DIV || op == OP_MOD)
			default:
				assert.ErrorIs(err, ErrRegister{})
			}
			return
		}

		assert.Equal(1, cpu.Ticks)

		if !op.Known() {
			switch cpu.Unknown {
			case UNKNOWN_STALL:
				assert.Equal(before.Pc, cpu.Pc)
			case UNKNOWN_SKIP:
				assert.Equal(before.Pc+op.Size(), cpu.Pc)
			default:
				t.Fatalf("unknown opcode %v executed", op)
			}
			assert.Equal(before.Register, cpu.Register)
			return
		}

		switch {
		case op == OP_HLT:
			assert.False(cpu.Running)
			assert.Equal(before.Pc, cpu.Pc)
		case op.SetsPc():
			assert.True(cpu.Pc >= 0 && cpu.Pc < MEMORY_SIZE)
		default:
			assert.Equal(before.Pc+op.Size(), cpu.Pc)
		}

		alu, ok := op.Alu()
		if ok {
			var rb byte
			if !alu.Unary() {
				rb = before.Register[b]
			}
			output, flag, err := Alu(alu, before.Register[a], rb)
			assert.NoError(err)
			if alu.Writes() {
				assert.Equal(output, cpu.Register[a])
				assert.Equal(before.Flag, cpu.Flag)
			} else {
				assert.Equal(flag, cpu.Flag)
				assert.Equal(before.Register, cpu.Register)
			}
		}

		if op == OP_PRN {
			assert.Equal([]byte{cpu.Register[a]}, out.Numbers)
		}
	})
}
