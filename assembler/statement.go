package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/macro"
	"github.com/ezrec/snasm/symbol"
)

// StatementKind classifies a source line.
type StatementKind int

//go:generate go tool stringer -linecomment -type=StatementKind
const (
	STATEMENT_EMPTY   = StatementKind(0) // empty
	STATEMENT_DATA    = StatementKind(1) // .data
	STATEMENT_STRING  = StatementKind(2) // .string
	STATEMENT_ENTRY   = StatementKind(3) // .entry
	STATEMENT_EXTERN  = StatementKind(4) // .extern
	STATEMENT_COMMAND = StatementKind(5) // command
)

// Statement is one parsed source line.
type Statement struct {
	Label   string        // Label defined by the line, if any.
	Kind    StatementKind // Directive or command.
	Command *isa.Command  // Catalog entry, for STATEMENT_COMMAND.
	Args    string        // Trimmed text after the directive or mnemonic.
}

// labelPrefix splits a 'name:' prefix from comment-free, trimmed text.
// A colon after whitespace or a quote does not end a label.
func labelPrefix(text string) (label string, rest string, ok bool) {
	colon := strings.IndexByte(text, ':')
	if colon < 0 || strings.ContainsAny(text[:colon], " \t\"") {
		rest = text
		return
	}
	return text[:colon], strings.TrimSpace(text[colon+1:]), true
}

// firstWord splits text at its first run of whitespace.
func firstWord(text string) (word string, rest string) {
	n := strings.IndexAny(text, " \t")
	if n < 0 {
		return text, ""
	}
	return text[:n], strings.TrimSpace(text[n:])
}

// DefineLabel parses the optional label prefix of a line. An empty name
// with no error means the line has no label. The kind is DATA when the
// label is followed by .data or .string, and CODE otherwise.
func DefineLabel(line string) (name string, kind symbol.Kind, err error) {
	text := strings.TrimSpace(macro.StripComment(line))
	label, rest, ok := labelPrefix(text)
	if !ok {
		return
	}

	err = symbol.ValidName(label)
	if err != nil {
		err = &symbol.ErrLabel{Name: label, Err: err}
		return
	}

	name = label
	kind = symbol.KIND_CODE
	switch word, _ := firstWord(rest); word {
	case isa.DIRECTIVE_DATA, isa.DIRECTIVE_STRING:
		kind = symbol.KIND_DATA
	}
	return
}

// ParseStatement parses one line of expanded source.
func ParseStatement(line string) (stmt Statement, err error) {
	text := strings.TrimSpace(macro.StripComment(line))

	stmt.Label, _, err = DefineLabel(text)
	if err != nil {
		return
	}
	_, text, _ = labelPrefix(text)

	if len(text) == 0 {
		stmt.Kind = STATEMENT_EMPTY
		return
	}

	word, args := firstWord(text)
	stmt.Args = args

	switch word {
	case isa.DIRECTIVE_DATA:
		stmt.Kind = STATEMENT_DATA
	case isa.DIRECTIVE_STRING:
		stmt.Kind = STATEMENT_STRING
	case isa.DIRECTIVE_ENTRY:
		stmt.Kind = STATEMENT_ENTRY
	case isa.DIRECTIVE_EXTERN:
		stmt.Kind = STATEMENT_EXTERN
	default:
		if strings.HasPrefix(word, ".") {
			err = fmt.Errorf("%w: %v", ErrDirectiveUnknown, word)
			return
		}
		cmd, ok := isa.FindCommand(word)
		if !ok {
			err = fmt.Errorf("%w: %v", ErrCommandUnknown, word)
			return
		}
		stmt.Kind = STATEMENT_COMMAND
		stmt.Command = cmd
	}

	return
}

// Symbol returns the label name argument of .entry and .extern.
func (stmt *Statement) Symbol() (name string, err error) {
	if len(stmt.Args) == 0 || strings.ContainsAny(stmt.Args, " \t,") {
		err = ErrDirectiveSyntax
		return
	}
	name = stmt.Args
	err = symbol.ValidName(name)
	if err != nil {
		err = &symbol.ErrLabel{Name: name, Err: err}
	}
	return
}

// Data returns the values of a .data or .string statement.
func (stmt *Statement) Data() (values []int64, err error) {
	switch stmt.Kind {
	case STATEMENT_DATA:
		values, err = ParseData(stmt.Args)
	case STATEMENT_STRING:
		values, err = ParseString(stmt.Args)
	}
	return
}

// parseSigned parses an optionally signed decimal integer.
func parseSigned(text string) (value int64, ok bool) {
	digits := text
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return
		}
	}
	value, err := strconv.ParseInt(text, 10, 64)
	return value, err == nil
}

// ParseData parses the comma separated signed decimals of a .data directive.
func ParseData(args string) (values []int64, err error) {
	for _, item := range strings.Split(args, ",") {
		value, ok := parseSigned(strings.TrimSpace(item))
		if !ok {
			err = fmt.Errorf("%w: '%v'", ErrDataSyntax, strings.TrimSpace(item))
			return
		}
		values = append(values, value)
	}
	return
}

// ParseString parses the quoted text of a .string directive into one
// value per character followed by a zero terminator.
func ParseString(args string) (values []int64, err error) {
	if len(args) < 2 || args[0] != '"' || args[len(args)-1] != '"' {
		err = ErrStringSyntax
		return
	}
	text := args[1 : len(args)-1]
	values = make([]int64, 0, len(text)+1)
	for n := 0; n < len(text); n++ {
		c := text[n]
		if c < ' ' || c > '~' {
			err = ErrStringSyntax
			return
		}
		values = append(values, int64(c))
	}
	values = append(values, 0)
	return
}
