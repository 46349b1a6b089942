package io

import (
	"strconv"
	"strings"
)

// Capture records CPU output in memory.
type Capture struct {
	Numbers []byte          // Values emitted by Number, in order.
	Text    strings.Builder // Everything emitted, formatted as a Console would.
}

var _ Channel = (*Capture)(nil)

// Reset discards all captured output.
func (cc *Capture) Reset() {
	cc.Numbers = nil
	cc.Text.Reset()
}

func (cc *Capture) Number(value byte) (err error) {
	cc.Numbers = append(cc.Numbers, value)
	cc.Text.WriteString(strconv.Itoa(int(value)))
	cc.Text.WriteByte('\n')
	return
}

func (cc *Capture) Char(value byte) (err error) {
	cc.Text.WriteByte(value)
	return
}

// String returns the captured output.
func (cc *Capture) String() string {
	return cc.Text.String()
}
