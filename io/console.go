package io

import (
	"fmt"
	"io"
)

// Console writes CPU output to an io.Writer, one decimal number per line
// for Number, and the raw byte for Char.
type Console struct {
	Output io.Writer
}

var _ Channel = (*Console)(nil)

// Number writes the decimal value followed by a newline.
func (cc *Console) Number(value byte) (err error) {
	if cc.Output == nil {
		err = ErrChannelInvalid
		return
	}

	_, err = fmt.Fprintf(cc.Output, "%d\n", value)
	return
}

// Char writes the value as a single byte.
func (cc *Console) Char(value byte) (err error) {
	if cc.Output == nil {
		err = ErrChannelInvalid
		return
	}

	_, err = cc.Output.Write([]byte{value})
	return
}
