package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// Loader reads programs in the binary-text image format.
//
// Each significant line holds one byte, written as a binary literal in
// its first whitespace delimited word. Blank lines and lines starting
// with '#' are skipped, and anything after a '#' is a comment. Bytes are
// stored at consecutive addresses starting at 0.
type Loader struct {
	Verbose bool // If set, logs every loaded byte.
}

// Load reads a program image with a default Loader.
func Load(input io.Reader) (prog *Program, err error) {
	ld := &Loader{}
	return ld.Load(input)
}

// Load reads a program image.
func (ld *Loader) Load(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	addr := 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		line = strings.TrimSpace(text)
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		code, comment, _ := strings.Cut(line, "#")
		words := strings.Fields(code)

		var value uint64
		value, err = strconv.ParseUint(words[0], 2, 8)
		if err != nil {
			err = ErrParseBinary
			return
		}

		if addr >= MEMORY_SIZE {
			err = ErrProgramSize
			return
		}

		if ld.Verbose {
			log.Printf("loader: %02x: %08b", addr, value)
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo: lineno,
			Addr:   addr,
			Text:   strings.TrimSpace(comment),
			Bytes:  []byte{byte(value)},
		})
		addr++
	}

	err = scanner.Err()
	return
}
