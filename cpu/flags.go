package cpu

// Flag is the outcome of the most recent comparison.
// Being a single value, at most one of less, greater, or equal holds.
type Flag int

const (
	FLAG_NONE    = Flag(0) // -
	FLAG_LESS    = Flag(1) // L
	FLAG_GREATER = Flag(2) // G
	FLAG_EQUAL   = Flag(3) // E
)

// Less is set when the first comparand was smaller.
func (fl Flag) Less() bool {
	return fl == FLAG_LESS
}

// Greater is set when the first comparand was larger.
func (fl Flag) Greater() bool {
	return fl == FLAG_GREATER
}

// Equal is set when the comparands matched.
func (fl Flag) Equal() bool {
	return fl == FLAG_EQUAL
}

// Bits returns the flags in the LS-8 register layout 00000LGE.
func (fl Flag) Bits() (bits byte) {
	switch fl {
	case FLAG_LESS:
		bits = 0b100
	case FLAG_GREATER:
		bits = 0b010
	case FLAG_EQUAL:
		bits = 0b001
	}
	return
}

func (fl Flag) String() string {
	switch fl {
	case FLAG_LESS:
		return "L"
	case FLAG_GREATER:
		return "G"
	case FLAG_EQUAL:
		return "E"
	}
	return "-"
}
