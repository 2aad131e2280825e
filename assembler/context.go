package assembler

import (
	"slices"

	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/symbol"
)

// pendingEntry is an .entry seen before its label was defined.
type pendingEntry struct {
	Name   string
	File   string
	LineNo int
	Line   string
}

// Context carries the counters and the label table of one run through
// both passes.
type Context struct {
	Config Config
	Layout *isa.Layout
	Labels *symbol.Table
	Level  internal.Level

	IC  int // Instruction counter.
	DC  int // Data counter, relative to the data segment.
	ICF int // Final instruction counter, set by Finish.
	DCF int // Final data counter, set by Finish.

	pending []pendingEntry
	final   bool
	cursor  int // Address of the next word written by pass 2.
}

// NewContext creates the context for a run.
func NewContext(config Config) *Context {
	return &Context{
		Config: config,
		Layout: isa.LayoutOf(config.Width()),
		Labels: symbol.NewTable(),
		IC:     isa.TEXT_BASE,
		cursor: isa.TEXT_BASE,
	}
}

// addPending records an unresolved .entry, once per name.
func (ctx *Context) addPending(entry pendingEntry) {
	if slices.ContainsFunc(ctx.pending, func(p pendingEntry) bool { return p.Name == entry.Name }) {
		return
	}
	ctx.pending = append(ctx.pending, entry)
}

// resolvePending marks every pending entry that now has a local definition.
func (ctx *Context) resolvePending() {
	ctx.pending = slices.DeleteFunc(ctx.pending, func(p pendingEntry) bool {
		return ctx.Labels.MarkEntry(p.Name)
	})
}

// Pending returns the names of .entry labels not yet defined.
func (ctx *Context) Pending() (names []string) {
	for _, p := range ctx.pending {
		names = append(names, p.Name)
	}
	return
}

// Finish fixes the final counters once every file has completed pass 1,
// and places the data segment after the text segment. The returned error,
// if any, is an *ErrValidation.
func (ctx *Context) Finish() (err error) {
	if ctx.final {
		return
	}
	ctx.final = true

	ctx.ICF = ctx.IC
	ctx.DCF = ctx.DC
	ctx.Labels.Relocate(ctx.ICF)
	ctx.Level.Logf(internal.LevelVerbose, "ICF %d, DCF %d", ctx.ICF, ctx.DCF)

	var validation ErrValidation

	ctx.resolvePending()
	for _, p := range ctx.pending {
		reason := ErrEntryUnresolved
		if label, ok := ctx.Labels.Find(p.Name); ok && label.Extern {
			reason = ErrEntryExtern
		}
		validation.add(&ErrSyntax{
			File:   p.File,
			LineNo: p.LineNo,
			Line:   p.Line,
			Err:    &symbol.ErrLabel{Name: p.Name, Err: reason},
		})
	}
	ctx.pending = nil

	for _, label := range ctx.Labels.All() {
		if label.Entry && label.Extern {
			validation.add(&symbol.ErrLabel{Name: label.Name, Err: ErrEntryExtern})
		}
	}

	return validation.orNil()
}

// Complete checks the label table once every file has completed pass 2.
// The returned error, if any, is an *ErrValidation.
func (ctx *Context) Complete() (err error) {
	var validation ErrValidation

	for _, label := range ctx.Labels.All() {
		if label.Extern && !label.ExternUsed {
			validation.add(&symbol.ErrLabel{Name: label.Name, Err: ErrExternUnused})
		}
	}

	if ctx.cursor != ctx.ICF {
		ctx.Level.Warnf("pass 2 ended at %d, pass 1 at %d", ctx.cursor, ctx.ICF)
	}

	return validation.orNil()
}
