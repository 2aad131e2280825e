package symbol

import (
	"errors"

	"github.com/ezrec/snasm/translate"
)

var f = translate.From

var (
	ErrNameEmpty      = errors.New(f("label name empty"))
	ErrNameLength     = errors.New(f("label name too long"))
	ErrNameSyntax     = errors.New(f("label name must be a letter followed by letters or digits"))
	ErrNameReserved   = errors.New(f("label name is a reserved word"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrExternDefined  = errors.New(f(".extern of a locally defined label"))
	ErrUsesOverflow   = errors.New(f("too many external references"))
)

// ErrLabelMissing is a reference to an undefined label.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabel annotates an error with the label it concerns.
type ErrLabel struct {
	Name string
	Err  error
}

func (err *ErrLabel) Error() string {
	return f("label %v: %v", err.Name, err.Err)
}

func (err *ErrLabel) Unwrap() error {
	return err.Err
}
