// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package macro

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"TEXT_BASE": strconv.Itoa(isa.TEXT_BASE),
}

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// Preprocessor expands the macros of one source file at a time.
type Preprocessor struct {
	Level internal.Level // Logging level.

	predefine map[string]string
}

// Predefine defines a new equate for $(...) expressions, or redefines an existing one.
func (pp *Preprocessor) Predefine(equ string, value string) {
	if pp.predefine == nil {
		pp.predefine = map[string]string{equ: value}
	} else {
		pp.predefine[equ] = value
	}
}

// StripComment removes a ';' comment, ignoring ';' inside a string literal.
func StripComment(line string) string {
	quoted := false
	for n, r := range line {
		switch r {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return line[:n]
			}
		}
	}
	return line
}

// splitLabel splits an optional 'name:' prefix from a line.
func splitLabel(line string) (label string, rest string) {
	trimmed := strings.TrimSpace(line)
	first, _, _ := strings.Cut(trimmed, " ")
	first, _, _ = strings.Cut(first, "\t")
	colon := strings.IndexByte(first, ':')
	if colon < 0 || strings.ContainsRune(first[:colon], '"') {
		return "", trimmed
	}
	return trimmed[:colon+1], trimmed[colon+1:]
}

// lineScanner counts lines as they are scanned.
type lineScanner struct {
	*bufio.Scanner
	lineno int
}

func (sc *lineScanner) Scan() bool {
	ok := sc.Scanner.Scan()
	if ok {
		sc.lineno++
	}
	return ok
}

func (sc *lineScanner) syntax(err error) error {
	return &ErrSyntax{LineNo: sc.lineno, Line: sc.Text(), Err: err}
}

// nextMacro scans forward to the next declaration and reads its body.
// When the input has no further declarations it returns ErrNoMoreMacros.
func (pp *Preprocessor) nextMacro(sc *lineScanner) (macro *Macro, err error) {
	for sc.Scan() {
		words := strings.Fields(StripComment(sc.Text()))
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case isa.MACRO_END:
			err = sc.syntax(ErrMacroLonelyEnd)
			return
		case isa.MACRO_START:
		default:
			continue
		}

		if len(words) != 2 {
			err = sc.syntax(ErrMacroSyntax)
			return
		}

		macro = &Macro{Name: words[1], LineNo: sc.lineno}
		start := sc.lineno
		for sc.Scan() {
			body := strings.Fields(StripComment(sc.Text()))
			if len(body) > 0 && body[0] == isa.MACRO_START {
				err = sc.syntax(ErrMacroNesting)
				return
			}
			if len(body) > 0 && body[0] == isa.MACRO_END {
				if len(body) != 1 {
					err = sc.syntax(ErrMacroSyntax)
				}
				return
			}
			macro.Lines = append(macro.Lines, sc.Text())
		}
		if err = sc.Err(); err != nil {
			err = fmt.Errorf("%w: %w", ErrMacroInputRead, err)
			return
		}
		// The rest of the file belongs to the open declaration.
		pp.Level.Warnf("line %d: %v %v: %v", start, words[0], words[1], ErrMacroLonely)
		macro = nil
		err = ErrNoMoreMacros
		return
	}

	if err = sc.Err(); err != nil {
		err = fmt.Errorf("%w: %w", ErrMacroInputRead, err)
		return
	}

	err = ErrNoMoreMacros
	return
}

// Collect builds the macro table of a source.
func (pp *Preprocessor) Collect(input io.Reader) (table *Table, err error) {
	sc := &lineScanner{Scanner: bufio.NewScanner(input)}
	table = NewTable()

	for {
		var macro *Macro
		macro, err = pp.nextMacro(sc)
		if errors.Is(err, ErrNoMoreMacros) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		err = table.Add(macro)
		if err != nil {
			err = &ErrSyntax{LineNo: macro.LineNo, Line: isa.MACRO_START + " " + macro.Name, Err: err}
			return
		}
		pp.Level.Logf(internal.LevelDebug, "macro %v: %d lines", macro.Name, len(macro.Lines))
	}
}

// evaluate does $(...) evaluations.
func (pp *Preprocessor) evaluate(line string, lineno int) (out string, err error) {
	if !strings.Contains(line, "$(") {
		out = line
		return
	}

	equate := maps.Clone(sysEquate)
	maps.Copy(equate, pp.predefine)
	equate["LINENO"] = strconv.Itoa(lineno)

	replace := func(str string) string {
		value, _err := parenEval(str[2:len(str)-1], equate)
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	}

	// Text inside a string literal is never evaluated.
	spans := strings.SplitAfter(line, "\"")
	quoted := false
	for n, span := range spans {
		if !quoted {
			spans[n] = exprRegexp.ReplaceAllStringFunc(span, replace)
		}
		if strings.HasSuffix(span, "\"") {
			quoted = !quoted
		}
	}
	out = strings.Join(spans, "")
	return
}

// parenEval evaluates one $(...) body.
func parenEval(expr string, equate map[string]string) (value int64, err error) {
	thread := starlark.Thread{Name: "snasm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range equate {
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// Expand writes the source with declarations removed and invocations
// replaced by macro bodies. Expansion is not recursive.
func (pp *Preprocessor) Expand(input io.Reader, output io.Writer, table *Table) (err error) {
	sc := &lineScanner{Scanner: bufio.NewScanner(input)}
	w := bufio.NewWriter(output)

	emit := func(line string, lineno int) (err error) {
		line, err = pp.evaluate(line, lineno)
		if err != nil {
			return
		}
		_, err = w.WriteString(line + "\n")
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrMacroOutputFail, err)
		}
		return
	}

	declaring := false
	for sc.Scan() {
		text := sc.Text()
		words := strings.Fields(StripComment(text))

		if declaring {
			if len(words) > 0 && words[0] == isa.MACRO_END {
				declaring = false
			}
			continue
		}
		if len(words) > 0 && words[0] == isa.MACRO_START {
			declaring = true
			continue
		}

		label, rest := splitLabel(StripComment(text))
		call := strings.Fields(rest)
		if len(call) > 0 {
			if macro, ok := table.Find(call[0]); ok {
				if len(call) > 1 {
					return sc.syntax(ErrMacroArgs)
				}
				pp.Level.Logf(internal.LevelDebug, "line %d: expand %v", sc.lineno, macro.Name)
				for n, body := range macro.Lines {
					if n == 0 && len(label) > 0 {
						body = label + " " + strings.TrimSpace(body)
					}
					err = emit(body, macro.LineNo+1+n)
					if err != nil {
						err = &ErrMacro{Macro: macro.Name, Line: macro.LineNo + 1 + n, Err: err}
						return sc.syntax(err)
					}
				}
				if len(macro.Lines) == 0 && len(label) > 0 {
					err = emit(label, sc.lineno)
					if err != nil {
						return sc.syntax(err)
					}
				}
				continue
			}
		}

		err = emit(text, sc.lineno)
		if err != nil {
			return sc.syntax(err)
		}
	}

	if err = sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMacroInputRead, err)
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrMacroOutputFail, err)
	}

	return
}

// Process collects the macros of a source, then writes its expansion.
func (pp *Preprocessor) Process(input io.Reader, output io.Writer) (table *Table, err error) {
	source, err := io.ReadAll(input)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrMacroInputRead, err)
		return
	}

	table, err = pp.Collect(bytes.NewReader(source))
	if err != nil {
		return
	}
	pp.Level.Logf(internal.LevelVerbose, "collected %d macros", table.Len())

	err = pp.Expand(bytes.NewReader(source), output, table)
	return
}
