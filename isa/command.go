package isa

import (
	"iter"
	"slices"
	"strings"
)

// Command is a static catalog entry for one mnemonic.
type Command struct {
	Name     string  // Mnemonic.
	Opcode   uint8   // Opcode field value.
	Funct    uint8   // Function field value, distinguishes commands sharing an opcode.
	Operands int     // Required operand count, 0 to 2.
	Src      ModeSet // Legal source modes, empty unless Operands == 2.
	Dst      ModeSet // Legal destination modes, empty if Operands == 0.
}

// Slot returns the legal mode set for operand n of a command,
// counting from the first operand written in the source.
func (cmd *Command) Slot(n int) ModeSet {
	if cmd.Operands == 2 && n == 0 {
		return cmd.Src
	}
	return cmd.Dst
}

var (
	immDirReg = Modes(MODE_IMMEDIATE, MODE_DIRECT, MODE_REGISTER)
	dirReg    = Modes(MODE_DIRECT, MODE_REGISTER)
	dirRel    = Modes(MODE_DIRECT, MODE_RELATIVE)
	dir       = Modes(MODE_DIRECT)
)

// commands is sorted by name.
var commands = [...]Command{
	{Name: "add", Opcode: 2, Funct: 1, Operands: 2, Src: immDirReg, Dst: dirReg},
	{Name: "bne", Opcode: 9, Funct: 2, Operands: 1, Dst: dirRel},
	{Name: "clr", Opcode: 5, Funct: 1, Operands: 1, Dst: dirReg},
	{Name: "cmp", Opcode: 1, Funct: 0, Operands: 2, Src: immDirReg, Dst: immDirReg},
	{Name: "dec", Opcode: 5, Funct: 4, Operands: 1, Dst: dirReg},
	{Name: "inc", Opcode: 5, Funct: 3, Operands: 1, Dst: dirReg},
	{Name: "jmp", Opcode: 9, Funct: 1, Operands: 1, Dst: dirRel},
	{Name: "jsr", Opcode: 9, Funct: 3, Operands: 1, Dst: dirRel},
	{Name: "lea", Opcode: 4, Funct: 0, Operands: 2, Src: dir, Dst: dirReg},
	{Name: "mov", Opcode: 0, Funct: 0, Operands: 2, Src: immDirReg, Dst: dirReg},
	{Name: "not", Opcode: 5, Funct: 2, Operands: 1, Dst: dirReg},
	{Name: "prn", Opcode: 13, Funct: 0, Operands: 1, Dst: immDirReg},
	{Name: "red", Opcode: 12, Funct: 0, Operands: 1, Dst: dirReg},
	{Name: "rts", Opcode: 14, Funct: 0, Operands: 0},
	{Name: "stop", Opcode: 15, Funct: 0, Operands: 0},
	{Name: "sub", Opcode: 2, Funct: 2, Operands: 2, Src: immDirReg, Dst: dirReg},
}

// FindCommand looks up a mnemonic. Only an exact, whole-name match is found.
func FindCommand(name string) (cmd *Command, ok bool) {
	n, ok := slices.BinarySearchFunc(commands[:], name, func(c Command, name string) int {
		return strings.Compare(c.Name, name)
	})
	if !ok {
		return
	}
	cmd = &commands[n]
	return
}

// Commands iterates over the catalog in name order.
func Commands() iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		for n := range commands {
			if !yield(&commands[n]) {
				return
			}
		}
	}
}

// Directive names.
const (
	DIRECTIVE_DATA   = ".data"
	DIRECTIVE_STRING = ".string"
	DIRECTIVE_ENTRY  = ".entry"
	DIRECTIVE_EXTERN = ".extern"
)

// Macro keywords.
const (
	MACRO_START = "mcro"
	MACRO_END   = "mcroend"
)

// Register returns the register number for names r0 through r7.
func Register(name string) (reg int, ok bool) {
	if len(name) != 2 || name[0] != 'r' || name[1] < '0' || name[1] > '7' {
		return
	}
	return int(name[1] - '0'), true
}

// Reserved returns true if name is a mnemonic, register, directive or
// macro keyword, and so cannot name a label or macro.
func Reserved(name string) bool {
	if _, ok := FindCommand(name); ok {
		return true
	}
	if _, ok := Register(name); ok {
		return true
	}
	switch name {
	case MACRO_START, MACRO_END,
		DIRECTIVE_DATA[1:], DIRECTIVE_STRING[1:], DIRECTIVE_ENTRY[1:], DIRECTIVE_EXTERN[1:]:
		return true
	}
	return false
}
