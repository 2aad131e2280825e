package macro

import (
	"errors"

	"github.com/ezrec/snasm/translate"
)

var f = translate.From

var (
	// ErrNoMoreMacros ends a declaration scan. It is not a failure: the
	// table for the file is complete.
	ErrNoMoreMacros = errors.New(f("no more macros"))

	ErrMacroSyntax     = errors.New(f("mcro syntax"))
	ErrMacroName       = errors.New(f("mcro name must be a letter followed by letters, digits or '_'"))
	ErrMacroReserved   = errors.New(f("mcro name is a reserved word"))
	ErrMacroDuplicate  = errors.New(f("mcro duplicated"))
	ErrMacroNesting    = errors.New(f("mcro in mcro prohibited"))
	ErrMacroLonely     = errors.New(f("mcro without mcroend"))
	ErrMacroLonelyEnd  = errors.New(f("mcroend without mcro"))
	ErrMacroArgs       = errors.New(f("mcro invocation takes no arguments"))
	ErrMacroInputRead  = errors.New(f("source unreadable"))
	ErrMacroOutputFail = errors.New(f("expansion unwritable"))
)

// ErrParseExpression is a $(...) expression that does not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates a preprocessing error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro locates an error inside a macro body.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
