package assembler

import (
	"errors"
	"strings"

	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/translate"
)

var f = translate.From

var (
	// Statement errors
	ErrCommandUnknown   = errors.New(f("command unknown"))
	ErrDirectiveUnknown = errors.New(f("directive unknown"))
	ErrDirectiveSyntax  = errors.New(f("directive takes exactly one label name"))

	// Operand errors
	ErrOperandCount    = errors.New(f("operand count"))
	ErrOperandEmpty    = errors.New(f("operand missing"))
	ErrOperandSyntax   = errors.New(f("operand syntax"))
	ErrOperandMode     = errors.New(f("addressing mode not allowed"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrImmediateSyntax = errors.New(f("immediate malformed"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrRelativeRange   = errors.New(f("relative distance out of range"))
	ErrAddressRange    = errors.New(f("address out of range"))

	// Data errors
	ErrDataSyntax   = errors.New(f(".data syntax"))
	ErrDataRange    = errors.New(f(".data value out of range"))
	ErrStringSyntax = errors.New(f(".string syntax"))

	// Run errors
	ErrPassOrder       = errors.New(f("pass 2 before pass 1 finished"))
	ErrEntryUnresolved = errors.New(f(".entry of an undefined label"))
	ErrEntryExtern     = errors.New(f(".entry of an external label"))
	ErrExternUnused    = errors.New(f(".extern never referenced"))

	// Driver errors
	ErrSourceExtension = errors.New(f("source file must end in .as or .snasm"))
	ErrSourceRead      = errors.New(f("source unreadable"))
	ErrOutputWrite     = errors.New(f("output unwritable"))
)

// ErrSyntax locates a line-local error.
type ErrSyntax struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("%v:%d '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrOperand annotates an error with the operand text it concerns.
type ErrOperand struct {
	Operand string
	Err     error
}

func (err *ErrOperand) Error() string {
	return f("operand '%v' %v", err.Operand, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

// ErrMode reports an addressing mode a command slot does not allow.
type ErrMode struct {
	Command string
	Operand string
	Mode    isa.Mode
	Legal   isa.ModeSet
}

func (err *ErrMode) Error() string {
	return f("%v operand '%v' %v: %v not in %v", err.Command, err.Operand, ErrOperandMode, err.Mode, err.Legal)
}

func (err *ErrMode) Unwrap() error {
	return ErrOperandMode
}

// ErrValidation holds the whole-run diagnostics found after pass 1 and
// pass 2. Output already produced is still valid when it is returned.
type ErrValidation struct {
	Errs []error
}

func (err *ErrValidation) Error() string {
	msgs := make([]string, len(err.Errs))
	for n, e := range err.Errs {
		msgs[n] = e.Error()
	}
	return f("validation: %v", strings.Join(msgs, "; "))
}

func (err *ErrValidation) Unwrap() []error {
	return err.Errs
}

// add appends a diagnostic.
func (err *ErrValidation) add(e error) {
	err.Errs = append(err.Errs, e)
}

// orNil returns nil if there are no diagnostics.
func (err *ErrValidation) orNil() error {
	if err == nil || len(err.Errs) == 0 {
		return nil
	}
	return err
}
