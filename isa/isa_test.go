package isa

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCommand(t *testing.T) {
	assert := assert.New(t)

	names := []string{}
	for cmd := range Commands() {
		names = append(names, cmd.Name)
	}
	assert.Equal(16, len(names))
	assert.True(slices.IsSorted(names))

	for _, name := range names {
		cmd, ok := FindCommand(name)
		assert.True(ok, name)
		assert.Equal(name, cmd.Name)
	}

	// Whole-name match only.
	for _, name := range []string{"", "mo", "movx", "stop2", "sto", "MOV", " mov"} {
		_, ok := FindCommand(name)
		assert.False(ok, name)
	}

	cmd, ok := FindCommand("sub")
	assert.True(ok)
	assert.Equal(uint8(2), cmd.Opcode)
	assert.Equal(uint8(2), cmd.Funct)
	assert.Equal(2, cmd.Operands)
	assert.Equal(cmd.Src, cmd.Slot(0))
	assert.Equal(cmd.Dst, cmd.Slot(1))

	cmd, _ = FindCommand("jmp")
	assert.Equal(cmd.Dst, cmd.Slot(0))
	assert.True(cmd.Dst.Has(MODE_RELATIVE))
	assert.False(cmd.Dst.Has(MODE_IMMEDIATE))
}

func TestCommandModes(t *testing.T) {
	assert := assert.New(t)

	for cmd := range Commands() {
		// Immediate is never a legal destination, except for compares and prints.
		if cmd.Name != "cmp" && cmd.Name != "prn" {
			assert.False(cmd.Dst.Has(MODE_IMMEDIATE), cmd.Name)
		}
		switch cmd.Operands {
		case 0:
			assert.True(cmd.Src.Empty(), cmd.Name)
			assert.True(cmd.Dst.Empty(), cmd.Name)
		case 1:
			assert.True(cmd.Src.Empty(), cmd.Name)
			assert.False(cmd.Dst.Empty(), cmd.Name)
		case 2:
			assert.False(cmd.Src.Empty(), cmd.Name)
			assert.False(cmd.Dst.Empty(), cmd.Name)
		}
	}
}

func TestModeSet(t *testing.T) {
	assert := assert.New(t)

	set := Modes(MODE_DIRECT, MODE_REGISTER)
	assert.True(set.Has(MODE_DIRECT))
	assert.False(set.Has(MODE_RELATIVE))
	assert.Equal("{direct,register}", set.String())
	assert.Equal("{}", ModeSet(0).String())
	assert.Equal("Mode(7)", Mode(7).String())
}

func TestRegisterReserved(t *testing.T) {
	assert := assert.New(t)

	for n := range REGISTER_COUNT {
		reg, ok := Register("r" + string(rune('0'+n)))
		assert.True(ok)
		assert.Equal(n, reg)
	}
	for _, name := range []string{"r8", "r", "r10", "R1", "x1"} {
		_, ok := Register(name)
		assert.False(ok, name)
	}

	for _, name := range []string{"mov", "r3", "mcro", "mcroend", "data", "string", "entry", "extern"} {
		assert.True(Reserved(name), name)
	}
	for _, name := range []string{"LOOP", "movx", "r9", "datum"} {
		assert.False(Reserved(name), name)
	}
}

func TestCodeWord(t *testing.T) {
	assert := assert.New(t)

	mov, _ := FindCommand("mov")
	add, _ := FindCommand("add")
	stop, _ := FindCommand("stop")
	jmp, _ := FindCommand("jmp")

	l24 := LayoutOf(WIDTH_24)
	l32 := LayoutOf(WIDTH_32)

	reg3 := Slot{Used: true, Mode: MODE_REGISTER, Register: 3}
	direct := Slot{Used: true, Mode: MODE_DIRECT}

	assert.Equal(Word(0x036804), l24.CodeWord(mov, reg3, direct))
	assert.Equal(Word(0x03680008), l32.CodeWord(mov, reg3, direct))

	assert.Equal(Word(0x0B3A0C), l24.CodeWord(add,
		Slot{Used: true, Mode: MODE_REGISTER, Register: 1},
		Slot{Used: true, Mode: MODE_REGISTER, Register: 2}))

	assert.Equal(Word(0x3C0004), l24.CodeWord(stop, Slot{}, Slot{}))
	assert.Equal(Word(0x3C000008), l32.CodeWord(stop, Slot{}, Slot{}))

	// jmp &X: relative tag in the destination, funct 1
	word := l24.CodeWord(jmp, Slot{}, Slot{Used: true, Mode: MODE_RELATIVE})
	opcode, funct, _, dst := l24.Decode(word)
	assert.Equal(uint8(9), opcode)
	assert.Equal(uint8(1), funct)
	assert.Equal(MODE_RELATIVE, dst.Mode)
	assert.Equal(CONTROL_ABSOLUTE, l24.ControlOf(word))
}

func TestValueWord(t *testing.T) {
	assert := assert.New(t)

	l24 := LayoutOf(WIDTH_24)
	l32 := LayoutOf(WIDTH_32)

	assert.Equal(Word(0x0003C2), l24.ValueWord(120, CONTROL_RELOCATABLE))
	assert.Equal(Word(0x000784), l32.ValueWord(120, CONTROL_RELOCATABLE))
	assert.Equal(Word(0x000785), l32.ValueWord(120, CONTROL_RELOCATABLE|CONTROL_MORE))
	// No More-words-follow bit in 24-bit mode.
	assert.Equal(Word(0x0003C2), l24.ValueWord(120, CONTROL_RELOCATABLE|CONTROL_MORE))
	assert.False(l24.HasMore())
	assert.True(l32.HasMore())

	neg := l24.ValueWord(-1, CONTROL_ABSOLUTE)
	assert.Equal(Word(0xFFFFFC), neg)
	assert.Equal(int64(-1), l24.Value(neg))
	assert.Equal(CONTROL_ABSOLUTE, l24.ControlOf(neg))

	ext := l32.ValueWord(0, CONTROL_EXTERNAL)
	assert.Equal(Word(0x2), ext)
	assert.Equal(CONTROL_EXTERNAL, l32.ControlOf(ext))

	min, max := l24.ValueRange()
	assert.Equal(int64(-1<<20), min)
	assert.Equal(int64(1<<20-1), max)
	min, max = l32.ValueRange()
	assert.Equal(int64(-1<<27), min)
	assert.Equal(int64(1<<27-1), max)
	assert.Equal(int64(1<<21-1), l24.AddressMax())
}

func TestDataWordHex(t *testing.T) {
	assert := assert.New(t)

	l24 := LayoutOf(WIDTH_24)
	l32 := LayoutOf(WIDTH_32)

	assert.Equal(Word(0xFFFFFD), l24.DataWord(-3))
	assert.Equal(Word(0xFFFFFFFD), l32.DataWord(-3))
	assert.Equal("0xFFFFFD", l24.Hex(l24.DataWord(-3)))
	assert.Equal("0x00000061", l32.Hex(l32.DataWord('a')))
	assert.Equal("0x000061", l24.Hex(l24.DataWord('a')))

	min, max := l24.DataRange()
	assert.Equal(int64(-1<<23), min)
	assert.Equal(int64(1<<23-1), max)

	assert.Equal("24-bit", WIDTH_24.String())
	assert.True(strings.HasPrefix(Width(8).String(), "Width("))
	assert.Panics(func() { LayoutOf(Width(8)) })
}
