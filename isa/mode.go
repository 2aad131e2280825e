package isa

import (
	"strings"
)

// Mode is an operand addressing mode. The value is the tag encoded
// into the opcode word.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_IMMEDIATE = Mode(0) // immediate
	MODE_DIRECT    = Mode(1) // direct
	MODE_RELATIVE  = Mode(2) // relative
	MODE_REGISTER  = Mode(3) // register
)

// ModeSet is a set of addressing modes.
type ModeSet uint8

// Modes builds a ModeSet.
func Modes(modes ...Mode) (set ModeSet) {
	for _, mode := range modes {
		set |= 1 << mode
	}
	return
}

// Has returns true if the mode is in the set.
func (set ModeSet) Has(mode Mode) bool {
	return set&(1<<mode) != 0
}

// Empty returns true if no mode is in the set.
func (set ModeSet) Empty() bool {
	return set == 0
}

func (set ModeSet) String() string {
	var names []string
	for mode := MODE_IMMEDIATE; mode <= MODE_REGISTER; mode++ {
		if set.Has(mode) {
			names = append(names, mode.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Registers r0 through r7.
const REGISTER_COUNT = 8
