package symbol

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"text/tabwriter"
	"unicode"

	"github.com/ezrec/snasm/isa"
)

const (
	MAX_NAME        = 31  // Longest label name.
	MAX_EXTERN_USES = 128 // Most external reference sites recorded per label.
)

// Kind is the segment a label addresses.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_CODE = Kind(0) // CODE
	KIND_DATA = Kind(1) // DATA
)

// Label is one symbol of a run.
type Label struct {
	Name       string
	Address    int   // Word address. DATA labels are data-segment relative until relocated.
	Kind       Kind  // Segment of the definition.
	Entry      bool  // Exposed to other units.
	Extern     bool  // Placeholder for a definition in another unit.
	ExternUsed bool  // Referenced by an encoded operand.
	Uses       []int // Addresses of the operand words referencing an extern.
}

// Index is the stable position of a label in its Table.
type Index int

// Table owns every label of a run. Labels are referred to by name or
// Index, never by pointer, so growth never invalidates a reference.
type Table struct {
	labels  []Label
	indexes map[string]Index
}

// NewTable creates an empty label table.
func NewTable() *Table {
	return &Table{
		labels:  make([]Label, 0, 64),
		indexes: make(map[string]Index),
	}
}

// ValidName checks label name syntax: a letter, then letters or digits.
func ValidName(name string) error {
	switch {
	case len(name) == 0:
		return ErrNameEmpty
	case len(name) > MAX_NAME:
		return ErrNameLength
	}
	for n, r := range name {
		if r > unicode.MaxASCII {
			return ErrNameSyntax
		}
		if n == 0 && !unicode.IsLetter(r) {
			return ErrNameSyntax
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return ErrNameSyntax
		}
	}
	if isa.Reserved(name) {
		return ErrNameReserved
	}
	return nil
}

// Len returns the number of labels.
func (tab *Table) Len() int {
	return len(tab.labels)
}

// IndexOf finds the index of a label by exact name.
func (tab *Table) IndexOf(name string) (index Index, ok bool) {
	index, ok = tab.indexes[name]
	return
}

// Find returns a copy of the label with exactly this name.
func (tab *Table) Find(name string) (label Label, ok bool) {
	index, ok := tab.indexes[name]
	if !ok {
		return
	}
	label = tab.Get(index)
	return
}

// Get returns a copy of the label at index.
func (tab *Table) Get(index Index) Label {
	label := tab.labels[index]
	label.Uses = slices.Clone(label.Uses)
	return label
}

func (tab *Table) add(label Label) Index {
	index := Index(len(tab.labels))
	tab.labels = append(tab.labels, label)
	tab.indexes[label.Name] = index
	return index
}

// Define records a local definition. An extern placeholder of the same
// name is promoted to the local definition.
func (tab *Table) Define(name string, kind Kind, address int) (index Index, err error) {
	index, ok := tab.indexes[name]
	if !ok {
		index = tab.add(Label{Name: name, Kind: kind, Address: address})
		return
	}

	label := &tab.labels[index]
	if !label.Extern {
		err = &ErrLabel{Name: name, Err: ErrLabelDuplicate}
		return
	}

	label.Extern = false
	label.ExternUsed = false
	label.Uses = nil
	label.Kind = kind
	label.Address = address
	return
}

// DeclareExtern creates or confirms an extern placeholder.
func (tab *Table) DeclareExtern(name string) (index Index, err error) {
	index, ok := tab.indexes[name]
	if !ok {
		index = tab.add(Label{Name: name, Kind: KIND_CODE, Extern: true})
		return
	}

	if !tab.labels[index].Extern {
		err = &ErrLabel{Name: name, Err: ErrExternDefined}
	}
	return
}

// Local returns true if name has a local definition.
func (tab *Table) Local(name string) bool {
	index, ok := tab.indexes[name]
	return ok && !tab.labels[index].Extern
}

// MarkEntry sets the entry flag of a locally defined label. It returns
// false if there is no local definition yet.
func (tab *Table) MarkEntry(name string) bool {
	index, ok := tab.indexes[name]
	if !ok || tab.labels[index].Extern {
		return false
	}
	tab.labels[index].Entry = true
	return true
}

// MarkExternUse records an operand word at address referencing an
// extern label. Running out of room for sites is reported with
// ErrUsesOverflow, but the label is still marked used.
func (tab *Table) MarkExternUse(name string, address int) (err error) {
	index, ok := tab.indexes[name]
	if !ok {
		err = ErrLabelMissing(name)
		return
	}

	label := &tab.labels[index]
	label.ExternUsed = true
	if len(label.Uses) >= MAX_EXTERN_USES {
		err = &ErrLabel{Name: name, Err: ErrUsesOverflow}
		return
	}
	label.Uses = append(label.Uses, address)
	return
}

// Relocate shifts every local DATA label by offset, placing the data
// segment after the text segment.
func (tab *Table) Relocate(offset int) {
	for n := range tab.labels {
		label := &tab.labels[n]
		if label.Kind == KIND_DATA && !label.Extern {
			label.Address += offset
		}
	}
}

// All iterates over copies of the labels in definition order.
func (tab *Table) All() iter.Seq2[Index, Label] {
	return func(yield func(Index, Label) bool) {
		for n := range tab.labels {
			if !yield(Index(n), tab.Get(Index(n))) {
				return
			}
		}
	}
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Display writes the label table, one row per label.
func (tab *Table) Display(w io.Writer) (err error) {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', tabwriter.Debug)
	fmt.Fprintf(tw, "Label\tAddr\tEntry\tExtern\tExtern Used\tType\t\n")
	for _, label := range tab.All() {
		fmt.Fprintf(tw, "%v\t%07d\t%d\t%d\t%d\t%v\t\n",
			label.Name,
			label.Address,
			flag(label.Entry),
			flag(label.Extern),
			flag(label.ExternUsed),
			label.Kind)
	}
	return tw.Flush()
}
