package isa

import (
	"fmt"
)

// Width is the configured machine word width.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	WIDTH_24 = Width(24) // 24-bit
	WIDTH_32 = Width(32) // 32-bit
)

// TEXT_BASE is the address of the first instruction word.
const TEXT_BASE = 100

// Word is an encoded machine word, right aligned.
type Word uint32

// Control is a set of the low control bits of an operand word.
type Control uint8

const (
	CONTROL_ABSOLUTE    = Control(1 << 0) // A
	CONTROL_RELOCATABLE = Control(1 << 1) // R
	CONTROL_EXTERNAL    = Control(1 << 2) // E
	CONTROL_MORE        = Control(1 << 3) // M
)

// field is a bit field within a word.
type field struct {
	shift uint
	width uint
}

func (f field) put(value uint32) Word {
	mask := uint32(1)<<f.width - 1
	return Word((value & mask) << f.shift)
}

func (f field) get(word Word) uint32 {
	mask := uint32(1)<<f.width - 1
	return (uint32(word) >> f.shift) & mask
}

// Layout is the field layout of one word width.
type Layout struct {
	Width     Width
	HexDigits int

	opcode  field
	srcMode field
	srcReg  field
	dstMode field
	dstReg  field
	funct   field
	value   field

	// Bit positions of the control bits. A negative position means the
	// bit does not exist in this width.
	absolute    int
	relocatable int
	external    int
	more        int
}

var layouts = map[Width]*Layout{
	WIDTH_24: {
		Width:     WIDTH_24,
		HexDigits: 6,
		opcode:    field{18, 6},
		srcMode:   field{16, 2},
		srcReg:    field{13, 3},
		dstMode:   field{11, 2},
		dstReg:    field{8, 3},
		funct:     field{3, 5},
		value:     field{3, 21},

		absolute:    2,
		relocatable: 1,
		external:    0,
		more:        -1,
	},
	WIDTH_32: {
		Width:     WIDTH_32,
		HexDigits: 8,
		opcode:    field{26, 6},
		srcMode:   field{24, 2},
		srcReg:    field{21, 3},
		dstMode:   field{19, 2},
		dstReg:    field{16, 3},
		funct:     field{11, 5},
		value:     field{4, 28},

		absolute:    3,
		relocatable: 2,
		external:    1,
		more:        0,
	},
}

// LayoutOf returns the layout for a width.
func LayoutOf(width Width) *Layout {
	layout, ok := layouts[width]
	if !ok {
		panic(fmt.Sprintf("isa: no layout for %v", width))
	}
	return layout
}

// Mask is the mask of all bits in a word.
func (l *Layout) Mask() Word {
	return Word(uint64(1)<<uint(l.Width) - 1)
}

// HasMore returns true if the layout has a More-words-follow bit.
func (l *Layout) HasMore() bool {
	return l.more >= 0
}

// Control encodes a set of control bits.
func (l *Layout) Control(ctl Control) (word Word) {
	bits := [...]struct {
		flag Control
		pos  int
	}{
		{CONTROL_ABSOLUTE, l.absolute},
		{CONTROL_RELOCATABLE, l.relocatable},
		{CONTROL_EXTERNAL, l.external},
		{CONTROL_MORE, l.more},
	}
	for _, bit := range bits {
		if ctl&bit.flag != 0 && bit.pos >= 0 {
			word |= 1 << bit.pos
		}
	}
	return
}

// ControlOf decodes the control bits of a word.
func (l *Layout) ControlOf(word Word) (ctl Control) {
	for _, flag := range []Control{CONTROL_ABSOLUTE, CONTROL_RELOCATABLE, CONTROL_EXTERNAL, CONTROL_MORE} {
		if bit := l.Control(flag); bit != 0 && word&bit != 0 {
			ctl |= flag
		}
	}
	return
}

// Slot is one operand field of an opcode word.
type Slot struct {
	Used     bool // Operand present in this slot.
	Mode     Mode // Addressing mode tag.
	Register int  // Register number, if Mode is MODE_REGISTER.
}

// CodeWord encodes the first word of an instruction. The Absolute bit is always set.
func (l *Layout) CodeWord(cmd *Command, src, dst Slot) (word Word) {
	word |= l.opcode.put(uint32(cmd.Opcode))
	word |= l.funct.put(uint32(cmd.Funct))
	if src.Used {
		word |= l.srcMode.put(uint32(src.Mode))
		if src.Mode == MODE_REGISTER {
			word |= l.srcReg.put(uint32(src.Register))
		}
	}
	if dst.Used {
		word |= l.dstMode.put(uint32(dst.Mode))
		if dst.Mode == MODE_REGISTER {
			word |= l.dstReg.put(uint32(dst.Register))
		}
	}
	word |= l.Control(CONTROL_ABSOLUTE)
	return
}

// ValueRange returns the inclusive range of a signed operand value.
func (l *Layout) ValueRange() (min, max int64) {
	max = int64(1)<<(l.value.width-1) - 1
	min = -max - 1
	return
}

// AddressMax is the largest address an operand word can carry.
func (l *Layout) AddressMax() int64 {
	return int64(1)<<l.value.width - 1
}

// ValueWord encodes an extra operand word. The value is two's complement
// truncated to the value field, the caller range checks.
func (l *Layout) ValueWord(value int64, ctl Control) Word {
	return l.value.put(uint32(value)) | l.Control(ctl)
}

// DataRange returns the inclusive range of a data word value.
func (l *Layout) DataRange() (min, max int64) {
	max = int64(1)<<(uint(l.Width)-1) - 1
	min = -max - 1
	return
}

// DataWord encodes a data segment word, two's complement over the full width.
func (l *Layout) DataWord(value int64) Word {
	return Word(uint32(value)) & l.Mask()
}

// Decode splits an opcode word into its fields.
func (l *Layout) Decode(word Word) (opcode, funct uint8, src, dst Slot) {
	opcode = uint8(l.opcode.get(word))
	funct = uint8(l.funct.get(word))
	src = Slot{Mode: Mode(l.srcMode.get(word)), Register: int(l.srcReg.get(word))}
	dst = Slot{Mode: Mode(l.dstMode.get(word)), Register: int(l.dstReg.get(word))}
	return
}

// Value extracts the sign extended value field of an operand word.
func (l *Layout) Value(word Word) int64 {
	raw := int64(l.value.get(word))
	if raw&(1<<(l.value.width-1)) != 0 {
		raw -= 1 << l.value.width
	}
	return raw
}

// Hex formats a word as 0x followed by the layout's hex digits.
func (l *Layout) Hex(word Word) string {
	return fmt.Sprintf("0x%0*X", l.HexDigits, uint32(word&l.Mask()))
}
