// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package macro

import (
	"iter"
	"slices"
	"unicode"

	"github.com/ezrec/snasm/isa"
)

// MAX_NAME is the longest macro name.
const MAX_NAME = 31

// Macro represents a macro definition in the assembly language.
type Macro struct {
	Name   string   // Name of the macro.
	LineNo int      // Line number of the macro definition.
	Lines  []string // Lines of macro text to expand, verbatim.
}

// Table maps macro names to their definitions, for one source file.
type Table struct {
	macros map[string]*Macro
	order  []string
}

// NewTable creates an empty macro table.
func NewTable() *Table {
	return &Table{macros: make(map[string]*Macro)}
}

// validName checks macro name syntax.
func validName(name string) error {
	if len(name) == 0 || len(name) > MAX_NAME {
		return ErrMacroName
	}
	for n, r := range name {
		switch {
		case r > unicode.MaxASCII:
			return ErrMacroName
		case n == 0 && !unicode.IsLetter(r):
			return ErrMacroName
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_':
			return ErrMacroName
		}
	}
	if isa.Reserved(name) {
		return ErrMacroReserved
	}
	return nil
}

// Add adds a macro, rejecting invalid and duplicate names.
func (tab *Table) Add(macro *Macro) (err error) {
	err = validName(macro.Name)
	if err != nil {
		return
	}
	if _, ok := tab.macros[macro.Name]; ok {
		err = ErrMacroDuplicate
		return
	}
	tab.macros[macro.Name] = macro
	tab.order = append(tab.order, macro.Name)
	return
}

// Find looks up a macro by exact name.
func (tab *Table) Find(name string) (macro *Macro, ok bool) {
	macro, ok = tab.macros[name]
	return
}

// Len returns the number of macros.
func (tab *Table) Len() int {
	return len(tab.order)
}

// All iterates the macros in declaration order.
func (tab *Table) All() iter.Seq[*Macro] {
	return func(yield func(*Macro) bool) {
		for _, name := range slices.Clone(tab.order) {
			if !yield(tab.macros[name]) {
				return
			}
		}
	}
}
