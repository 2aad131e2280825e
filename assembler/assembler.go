package assembler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/macro"
)

// dump formats debug values without terminal colors.
var dump = func() *pp.PrettyPrinter {
	printer := pp.New()
	printer.SetColoringEnabled(false)
	return printer
}()

// Source file extensions.
var sourceExt = []string{".as", ".snasm"}

// SourceStem returns the file name of a source path without its
// extension, which must be one of the source file extensions.
func SourceStem(path string) (stem string, err error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	for _, known := range sourceExt {
		if ext == known && len(base) > len(ext) {
			stem = strings.TrimSuffix(base, ext)
			return
		}
	}
	err = fmt.Errorf("%v: %w", path, ErrSourceExtension)
	return
}

// Unit is one macro-expanded source file.
type Unit struct {
	Name     string // Source file name, for diagnostics.
	Expanded []byte // Source with macros expanded.
}

// Assembler runs the preprocessor and both passes over a set of source files.
type Assembler struct {
	Config  Config
	Level   internal.Level // Logging level.
	Symbols io.Writer      // Label table display, if Config.ShowSymbols.

	predefine map[string]string
}

// Predefine defines a new equate for $(...) expressions, or redefines an existing one.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Preprocess expands the macros of one source file.
func (asm *Assembler) Preprocess(name string, input io.Reader) (unit *Unit, err error) {
	pre := &macro.Preprocessor{Level: asm.Level}
	pre.Predefine("WORD_BITS", strconv.Itoa(int(asm.Config.Width())))
	for equ, value := range asm.predefine {
		pre.Predefine(equ, value)
	}

	var expanded bytes.Buffer
	table, err := pre.Process(input, &expanded)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
		return
	}
	asm.Level.Logf(internal.LevelVerbose, "%v: %d macros", name, table.Len())

	unit = &Unit{Name: name, Expanded: expanded.Bytes()}
	return
}

// Assemble runs pass 1 over every unit, then pass 2. Errors in pass 1
// stop the run with a nil object. Otherwise the object is returned even
// when err holds pass 2 line errors or an *ErrValidation.
func (asm *Assembler) Assemble(units []*Unit) (obj *Object, err error) {
	ctx := NewContext(asm.Config)
	ctx.Level = asm.Level

	var errs []error
	for _, unit := range units {
		asm.Level.Logf(internal.LevelVerbose, "%v: pass 1", unit.Name)
		err = ctx.FirstPass(unit.Name, bytes.NewReader(unit.Expanded))
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err = errors.Join(errs...)
		return
	}

	var validation ErrValidation
	merge := func(err error) {
		var v *ErrValidation
		if errors.As(err, &v) {
			validation.Errs = append(validation.Errs, v.Errs...)
		}
	}

	merge(ctx.Finish())

	if asm.Level.Enabled(internal.LevelDebug) {
		for _, label := range ctx.Labels.All() {
			asm.Level.Logf(internal.LevelDebug, "%v", dump.Sprint(label))
		}
	}

	if asm.Config.ShowSymbols && asm.Symbols != nil {
		err = ctx.Labels.Display(asm.Symbols)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrOutputWrite, err)
			return
		}
	}

	obj = NewObject(ctx.Layout, ctx.Labels)
	for _, unit := range units {
		asm.Level.Logf(internal.LevelVerbose, "%v: pass 2", unit.Name)
		err = ctx.SecondPass(unit.Name, bytes.NewReader(unit.Expanded), obj)
		if err != nil {
			errs = append(errs, err)
		}
	}

	merge(ctx.Complete())

	err = errors.Join(append(errs, validation.orNil())...)
	return
}

// create writes one output file.
func create(fsys CreateFS, name string, write func(io.Writer) error) (err error) {
	file, err := fsys.Create(name)
	if err != nil {
		err = fmt.Errorf("%v: %w: %w", name, ErrOutputWrite, err)
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil && cerr != nil {
			err = fmt.Errorf("%v: %w: %w", name, ErrOutputWrite, cerr)
		}
	}()

	err = write(file)
	if err != nil {
		err = fmt.Errorf("%v: %w: %w", name, ErrOutputWrite, err)
	}
	return
}

// WriteExpanded writes the expansion of a source as '<stem>.am'.
func (asm *Assembler) WriteExpanded(fsys CreateFS, stem string, unit *Unit) (err error) {
	return create(fsys, stem+".am", func(w io.Writer) (err error) {
		_, err = w.Write(unit.Expanded)
		return
	})
}

// Write writes the object listing, and the entries and externals
// listings when enabled and not empty. Files are named from the
// base name of Config.OutputFile.
func (asm *Assembler) Write(fsys CreateFS, obj *Object) (err error) {
	base := filepath.Base(asm.Config.Output())

	err = create(fsys, base+".ob", obj.WriteObject)
	if err != nil {
		return
	}

	if asm.Config.GenEntries && len(obj.Entries) > 0 {
		err = create(fsys, base+".ent", obj.WriteEntries)
		if err != nil {
			return
		}
	}

	if asm.Config.GenExternals && len(obj.Externals) > 0 {
		err = create(fsys, base+".ext", obj.WriteExternals)
		if err != nil {
			return
		}
	}

	return
}
