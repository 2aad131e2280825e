package assembler

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/symbol"
)

// Reference is a label name at an address, one line of the entries or
// externals listing.
type Reference struct {
	Name    string
	Address int
}

// Object is the assembled output of a run.
type Object struct {
	Layout    *isa.Layout
	Labels    *symbol.Table // Final label table.
	Code      []isa.Word    // Instruction words, from isa.TEXT_BASE.
	Data      []isa.Word    // Data words, following the instruction words.
	Entries   []Reference   // Entry labels, in .entry order.
	Externals []Reference   // Extern reference sites, in address order.
}

// NewObject creates an empty object.
func NewObject(layout *isa.Layout, labels *symbol.Table) *Object {
	return &Object{Layout: layout, Labels: labels}
}

// addEntry adds an entry, once per name.
func (obj *Object) addEntry(name string, address int) {
	if slices.ContainsFunc(obj.Entries, func(ref Reference) bool { return ref.Name == name }) {
		return
	}
	obj.Entries = append(obj.Entries, Reference{Name: name, Address: address})
}

// Words iterates over every word of the object by address.
func (obj *Object) Words() iter.Seq2[int, isa.Word] {
	return internal.IterSeq2Offset(isa.TEXT_BASE,
		internal.IterSeq2Concat(slices.All(obj.Code), slices.All(obj.Data)))
}

// WriteObject writes the object listing: a header of the instruction and
// data word counts, then one line per word.
func (obj *Object) WriteObject(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d | %d\n", len(obj.Code), len(obj.Data))
	for address, word := range obj.Words() {
		fmt.Fprintf(bw, "%07d : %v\n", address, obj.Layout.Hex(word))
	}
	return bw.Flush()
}

func writeReferences(w io.Writer, refs []Reference) (err error) {
	bw := bufio.NewWriter(w)
	for _, ref := range refs {
		fmt.Fprintf(bw, "%v: %07d\n", ref.Name, ref.Address)
	}
	return bw.Flush()
}

// WriteEntries writes the entries listing.
func (obj *Object) WriteEntries(w io.Writer) error {
	return writeReferences(w, obj.Entries)
}

// WriteExternals writes the externals listing.
func (obj *Object) WriteExternals(w io.Writer) error {
	return writeReferences(w, obj.Externals)
}
