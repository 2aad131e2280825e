package assembler

import (
	"strconv"
	"strings"

	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/symbol"
)

// Operand is one parsed instruction operand: Immediate, Direct,
// Relative or Register.
type Operand interface {
	Mode() isa.Mode
	String() string
}

// Immediate is a '#' literal.
type Immediate struct {
	Value int64
}

// Direct is a label whose address is the operand.
type Direct struct {
	Label string
}

// Relative is a '&' label whose distance from the operand word is the operand.
type Relative struct {
	Label string
}

// Register is one of r0 through r7.
type Register struct {
	Number int
}

func (op Immediate) Mode() isa.Mode { return isa.MODE_IMMEDIATE }
func (op Direct) Mode() isa.Mode    { return isa.MODE_DIRECT }
func (op Relative) Mode() isa.Mode  { return isa.MODE_RELATIVE }
func (op Register) Mode() isa.Mode  { return isa.MODE_REGISTER }

func (op Immediate) String() string { return "#" + strconv.FormatInt(op.Value, 10) }
func (op Direct) String() string    { return op.Label }
func (op Relative) String() string  { return "&" + op.Label }
func (op Register) String() string  { return "r" + strconv.Itoa(op.Number) }

// looksLikeRegister is true for 'r' followed only by digits.
func looksLikeRegister(text string) bool {
	if len(text) < 2 || text[0] != 'r' {
		return false
	}
	for _, r := range text[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// labelRef validates a label reference.
func labelRef(text string) (name string, err error) {
	err = symbol.ValidName(text)
	if err != nil {
		err = &symbol.ErrLabel{Name: text, Err: err}
		return
	}
	name = text
	return
}

// ParseOperand classifies a single operand by its leading character.
func ParseOperand(text string) (op Operand, err error) {
	defer func() {
		if err != nil {
			err = &ErrOperand{Operand: text, Err: err}
		}
	}()

	switch {
	case len(text) == 0:
		err = ErrOperandEmpty
	case strings.ContainsAny(text, " \t"):
		err = ErrOperandSyntax
	case text[0] == '#':
		value, ok := parseSigned(text[1:])
		if !ok {
			err = ErrImmediateSyntax
			return
		}
		op = Immediate{Value: value}
	case text[0] == '&':
		var name string
		name, err = labelRef(text[1:])
		if err != nil {
			return
		}
		op = Relative{Label: name}
	case looksLikeRegister(text):
		reg, ok := isa.Register(text)
		if !ok {
			err = ErrRegisterInvalid
			return
		}
		op = Register{Number: reg}
	default:
		var name string
		name, err = labelRef(text)
		if err != nil {
			return
		}
		op = Direct{Label: name}
	}

	return
}

// ClassifyOperands splits up to two comma separated operands and
// classifies each. The number of operands found must equal expected.
// The result depends only on the arguments.
func ClassifyOperands(text string, expected int) (operands []Operand, err error) {
	text = strings.TrimSpace(text)

	var items []string
	if len(text) > 0 {
		items = strings.Split(text, ",")
	}
	if len(items) > 2 || len(items) != expected {
		err = ErrOperandCount
		return
	}

	for _, item := range items {
		var op Operand
		op, err = ParseOperand(strings.TrimSpace(item))
		if err != nil {
			operands = nil
			return
		}
		operands = append(operands, op)
	}

	return
}

// Modes returns the addressing mode tag of each operand, in source order.
func Modes(operands []Operand) (modes []isa.Mode) {
	for _, op := range operands {
		modes = append(modes, op.Mode())
	}
	return
}

// WordCount is the number of words an instruction occupies: the opcode
// word, plus one word for each operand that is not a register.
func WordCount(operands []Operand) (words int) {
	words = 1
	for _, op := range operands {
		if op.Mode() != isa.MODE_REGISTER {
			words++
		}
	}
	return
}

// ValidateCommand classifies the operands of a command, checks them
// against the legal modes of each slot, and returns the word count.
func ValidateCommand(args string, cmd *isa.Command) (operands []Operand, words int, err error) {
	operands, err = ClassifyOperands(args, cmd.Operands)
	if err != nil {
		return
	}

	for n, op := range operands {
		legal := cmd.Slot(n)
		if !legal.Has(op.Mode()) {
			err = &ErrMode{Command: cmd.Name, Operand: op.String(), Mode: op.Mode(), Legal: legal}
			operands = nil
			return
		}
	}

	words = WordCount(operands)
	return
}
