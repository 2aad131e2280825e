package assembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/symbol"
)

// FirstPass scans one macro-expanded file, defining labels and advancing
// the counters. Line errors skip the line and are returned together once
// the whole file is scanned. Input errors stop the scan.
func (ctx *Context) FirstPass(file string, input io.Reader) (err error) {
	sc := bufio.NewScanner(input)

	var errs []error
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()

		lineErr := ctx.firstLine(file, lineno, line)
		if lineErr != nil {
			errs = append(errs, &ErrSyntax{File: file, LineNo: lineno, Line: line, Err: lineErr})
		}
	}

	if err = sc.Err(); err != nil {
		err = fmt.Errorf("%v: %w: %w", file, ErrSourceRead, err)
		return
	}

	ctx.resolvePending()
	for _, p := range ctx.pending {
		if p.File == file {
			ctx.Level.Warnf("%v:%d .entry %v not defined in this file", file, p.LineNo, p.Name)
		}
	}

	err = errors.Join(errs...)
	return
}

// firstLine sizes one statement.
func (ctx *Context) firstLine(file string, lineno int, line string) (err error) {
	stmt, err := ParseStatement(line)
	if err != nil {
		return
	}

	if ctx.Level.Enabled(internal.LevelDebug) {
		ctx.Level.Logf(internal.LevelDebug, "%v:%d IC %d DC %d %v", file, lineno, ctx.IC, ctx.DC, dump.Sprint(stmt))
	}

	switch stmt.Kind {
	case STATEMENT_EMPTY:
		if len(stmt.Label) > 0 {
			_, err = ctx.Labels.Define(stmt.Label, symbol.KIND_CODE, ctx.IC)
		}

	case STATEMENT_ENTRY, STATEMENT_EXTERN:
		if len(stmt.Label) > 0 {
			ctx.Level.Warnf("%v:%d label %v on %v ignored", file, lineno, stmt.Label, stmt.Kind)
		}

		var name string
		name, err = stmt.Symbol()
		if err != nil {
			return
		}

		if stmt.Kind == STATEMENT_EXTERN {
			_, err = ctx.Labels.DeclareExtern(name)
			return
		}

		if !ctx.Labels.MarkEntry(name) {
			ctx.addPending(pendingEntry{Name: name, File: file, LineNo: lineno, Line: line})
		}

	case STATEMENT_DATA, STATEMENT_STRING:
		var values []int64
		values, err = stmt.Data()
		if err != nil {
			return
		}

		min, max := ctx.Layout.DataRange()
		for _, value := range values {
			if value < min || value > max {
				err = fmt.Errorf("%w: %v", ErrDataRange, value)
				return
			}
		}

		if len(stmt.Label) > 0 {
			_, err = ctx.Labels.Define(stmt.Label, symbol.KIND_DATA, ctx.DC)
			if err != nil {
				return
			}
		}
		ctx.DC += len(values)

	case STATEMENT_COMMAND:
		var words int
		_, words, err = ValidateCommand(stmt.Args, stmt.Command)
		if err != nil {
			return
		}

		if len(stmt.Label) > 0 {
			_, err = ctx.Labels.Define(stmt.Label, symbol.KIND_CODE, ctx.IC)
			if err != nil {
				return
			}
		}
		ctx.IC += words
	}

	return
}
