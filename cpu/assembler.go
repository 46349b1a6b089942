// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// registerMap is a map of register names to register indexes.
var registerMap = map[string]byte{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": REG_SP,
}

// Assembler is a two pass assembler for LS-8 mnemonics.
//
// The first pass assigns addresses to labels and sizes every statement;
// the second pass encodes operands, so labels may be used before they
// are defined.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitWords splits a line into words at spaces and commas, stopping at
// a ';' comment. Character quotes and $(...) expressions are kept whole.
func splitWords(line string) (words []string) {
	var word strings.Builder
	depth := 0
	quoted := false

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted:
			word.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				word.WriteByte(line[i])
			} else if c == '\'' {
				quoted = false
			}
		case c == '\'':
			quoted = true
			word.WriteByte(c)
		case c == '(':
			depth++
			word.WriteByte(c)
		case c == ')':
			if depth > 0 {
				depth--
			}
			word.WriteByte(c)
		case depth > 0:
			word.WriteByte(c)
		case c == ';':
			flush()
			return
		case c == ' ' || c == '\t' || c == ',':
			flush()
		default:
			word.WriteByte(c)
		}
	}
	flush()

	return
}

// charValue decodes a quoted character such as 'a' or '\n'.
func charValue(word string) (value int64, ok bool) {
	if len(word) < 3 || word[0] != '\'' || word[len(word)-1] != '\'' {
		return
	}

	str := word[1 : len(word)-1]
	if str[0] == '\\' {
		switch str[1:] {
		case "\\":
			value = '\\'
		case "'":
			value = '\''
		case "n":
			value = '\n'
		case "r":
			value = '\r'
		case "t":
			value = '\t'
		case "0":
			value = 0
		case "e":
			value = '\033'
		default:
			return
		}
		return value, true
	}

	if len(str) != 1 {
		return
	}

	return int64(str[0]), true
}

// isIdentifier returns true for words that can only be a name.
func isIdentifier(word string) bool {
	c := word[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// resolve replaces a word by its equate, following chained equates.
func (asm *Assembler) resolve(word string) string {
	for range 16 {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}
	return word
}

// valueOf returns the 8-bit value of an operand word.
// Negative values down to -128 are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	word = asm.resolve(word)

	var v64 int64
	switch {
	case strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")"):
		v64, err = asm.parenEval(word[2 : len(word)-1])
		if err != nil {
			return
		}
	case word[0] == '\'':
		var ok bool
		v64, ok = charValue(word)
		if !ok {
			err = ErrParseNumber(word)
			return
		}
	default:
		addr, ok := asm.Label[word]
		if ok {
			v64 = int64(addr)
			break
		}
		if isIdentifier(word) {
			err = ErrLabelMissing(word)
			return
		}
		v64, err = strconv.ParseInt(word, 0, 16)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrParseNumber(word)
		return
	}

	value = byte(v64)
	return
}

// registerOf returns the register index named by an operand word.
func (asm *Assembler) registerOf(word string) (index byte, err error) {
	index, ok := registerMap[strings.ToLower(asm.resolve(word))]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(asm.resolve(str), 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// sizeOf returns the number of bytes a statement occupies.
func (asm *Assembler) sizeOf(words []string) (size int, err error) {
	if strings.EqualFold(words[0], ".db") {
		if len(words) < 2 {
			err = ErrDataMissing
			return
		}
		size = len(words) - 1
		return
	}

	op, ok := ParseOpcode(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if len(words)-1 != op.Operands() {
		err = ErrOperandCount
		return
	}

	size = op.Size()
	return
}

// encode generates the bytes of a sized statement.
func (asm *Assembler) encode(words []string) (code []byte, err error) {
	if strings.EqualFold(words[0], ".db") {
		for _, word := range words[1:] {
			var value byte
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			code = append(code, value)
		}
		return
	}

	op, _ := ParseOpcode(words[0])
	code = append(code, byte(op))

	for n, word := range words[1:] {
		var value byte
		if op == OP_LDI && n == 1 {
			value, err = asm.valueOf(word)
		} else {
			value, err = asm.registerOf(word)
		}
		if err != nil {
			return
		}
		code = append(code, value)
	}

	return
}

// statementText formats the words of a statement for listings.
func statementText(words []string) string {
	if len(words) == 1 {
		return words[0]
	}
	return words[0] + " " + strings.Join(words[1:], ",")
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Statements = nil
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	lines := []string{}
	addr := 0

	// First pass: labels, equates, and statement sizes.
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		lines = append(lines, text)
		line = strings.TrimSpace(text)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		words := splitWords(line)

		for len(words) > 0 && strings.HasSuffix(words[0], ":") {
			label := words[0][:len(words[0])-1]
			if _, ok := asm.Label[label]; ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = addr
			words = words[1:]
		}

		if len(words) == 0 {
			continue
		}

		// .equ CONST VALUE
		if strings.EqualFold(words[0], ".equ") {
			if len(words) != 3 {
				err = ErrEquateSyntax
				return
			}
			if _, ok := asm.Equate[words[1]]; ok {
				err = ErrEquateDuplicate
				return
			}
			asm.Equate[words[1]] = words[2]
			continue
		}

		var size int
		size, err = asm.sizeOf(words)
		if err != nil {
			return
		}

		asm.Statements = append(asm.Statements, Statement{
			LineNo: lineno,
			Addr:   addr,
			Words:  words,
			Text:   statementText(words),
		})
		addr += size
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if addr > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	// Second pass: encode.
	for n := range asm.Statements {
		st := &asm.Statements[n]
		lineno = st.LineNo
		line = strings.TrimSpace(lines[lineno-1])
		asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

		st.Bytes, err = asm.encode(st.Words)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("%02x: %v % x\n", st.Addr, st.Text, st.Bytes)
		}
	}

	prog = &Program{Statements: asm.Statements}

	return
}
