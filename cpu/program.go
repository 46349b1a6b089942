package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
)

// Statement is a line of source with its address and generated bytes.
type Statement struct {
	LineNo int      // Source line number, starting at 1.
	Addr   int      // Address of the first byte.
	Words  []string // Source words, if assembled.
	Text   string   // Source text echoed in listings.
	Bytes  []byte   // Generated bytes.
}

// Program is a memory image along with the source that produced it.
type Program struct {
	Statements []Statement
}

// Debug locates the statement covering an address.
type Debug struct {
	*Statement
	Index int // Byte index within the statement.
}

// Debug returns the statement that generated the byte at addr.
// The Statement is nil if no statement covers addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     addr - st.Addr,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes the program occupies from address 0.
func (prog *Program) Size() (size int) {
	for _, st := range prog.Statements {
		size = max(size, st.Addr+len(st.Bytes))
	}
	return
}

// Image returns the memory image of the program, starting at address 0.
func (prog *Program) Image() (image []byte) {
	image = make([]byte, prog.Size())
	for addr, value := range prog.Codes() {
		image[addr] = value
	}

	return
}

// Codes iterates over every generated byte with its address.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(addr int, value byte) bool) {
		for _, st := range prog.Statements {
			for n, value := range st.Bytes {
				if !yield(st.Addr+n, value) {
					return
				}
			}
		}
	}
}

// WriteTo writes the program in the binary-text image format accepted by
// Load, one byte per line, with the source text as a comment.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)

	var count int
	for _, st := range prog.Statements {
		for index, value := range st.Bytes {
			if index == 0 && len(st.Text) != 0 {
				count, err = fmt.Fprintf(bw, "%08b # %v\n", value, st.Text)
			} else {
				count, err = fmt.Fprintf(bw, "%08b\n", value)
			}
			n += int64(count)
			if err != nil {
				return
			}
		}
	}

	err = bw.Flush()
	return
}
