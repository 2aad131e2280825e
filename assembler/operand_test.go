package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/symbol"
)

func TestClassifyOperands(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		text     string
		expected int
		operands []Operand
	}{
		{"", 0, nil},
		{"   ", 0, nil},
		{"#-5, r3", 2, []Operand{Immediate{Value: -5}, Register{Number: 3}}},
		{"#+7", 1, []Operand{Immediate{Value: 7}}},
		{"&LOOP", 1, []Operand{Relative{Label: "LOOP"}}},
		{"LOOP2 ,r0", 2, []Operand{Direct{Label: "LOOP2"}, Register{Number: 0}}},
		{"rx", 1, []Operand{Direct{Label: "rx"}}},
		{"r7", 1, []Operand{Register{Number: 7}}},
	}

	for _, test := range tests {
		operands, err := ClassifyOperands(test.text, test.expected)
		if assert.NoError(err, test.text) {
			assert.Equal(test.operands, operands, test.text)
		}

		// Same arguments, same result.
		again, err := ClassifyOperands(test.text, test.expected)
		assert.NoError(err)
		assert.Equal(operands, again, test.text)
	}

	errs := []struct {
		text     string
		expected int
		err      error
	}{
		{"r8", 1, ErrRegisterInvalid},
		{"r10", 1, ErrRegisterInvalid},
		{"#", 1, ErrImmediateSyntax},
		{"#1.5", 1, ErrImmediateSyntax},
		{"#x", 1, ErrImmediateSyntax},
		{"r1, r2, r3", 2, ErrOperandCount},
		{"r1, r2, r3", 3, ErrOperandCount},
		{"r1", 2, ErrOperandCount},
		{"", 1, ErrOperandCount},
		{"r1,", 2, ErrOperandEmpty},
		{"a b", 1, ErrOperandSyntax},
		{"mov", 1, symbol.ErrNameReserved},
		{"&", 1, symbol.ErrNameEmpty},
		{"&9", 1, symbol.ErrNameSyntax},
	}

	for _, test := range errs {
		operands, err := ClassifyOperands(test.text, test.expected)
		assert.ErrorIs(err, test.err, test.text)
		assert.Nil(operands, test.text)
	}
}

func TestModes(t *testing.T) {
	assert := assert.New(t)

	operands, err := ClassifyOperands("#1, &X", 2)
	assert.NoError(err)
	assert.Equal([]isa.Mode{isa.MODE_IMMEDIATE, isa.MODE_RELATIVE}, Modes(operands))
	assert.Equal("#1", operands[0].String())
	assert.Equal("&X", operands[1].String())
	assert.Nil(Modes(nil))
}

func TestValidateCommand(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		line  string
		words int
	}{
		{"stop", 1},
		{"rts", 1},
		{"add r1, r2", 1},
		{"mov r3, X", 2},
		{"mov X, r3", 2},
		{"mov X, Y", 3},
		{"cmp #1, #2", 3},
		{"lea STR, r1", 2},
		{"prn #-1", 2},
		{"prn r1", 1},
		{"jmp &X", 2},
		{"bne X", 2},
		{"clr r4", 1},
	}

	for _, test := range tests {
		stmt, err := ParseStatement(test.line)
		if !assert.NoError(err, test.line) {
			continue
		}
		operands, words, err := ValidateCommand(stmt.Args, stmt.Command)
		assert.NoError(err, test.line)
		assert.Equal(test.words, words, test.line)
		assert.Equal(test.words, WordCount(operands), test.line)
	}

	modeErrs := []string{
		"mov #1, #2",
		"lea #1, r1",
		"lea r1, r2",
		"jmp r1",
		"jsr #3",
		"clr &X",
		"add r1, &X",
		"prn &X",
	}
	for _, line := range modeErrs {
		stmt, err := ParseStatement(line)
		if !assert.NoError(err, line) {
			continue
		}
		operands, words, err := ValidateCommand(stmt.Args, stmt.Command)
		assert.ErrorIs(err, ErrOperandMode, line)
		assert.Nil(operands, line)
		assert.Equal(0, words, line)
	}

	cmd, _ := isa.FindCommand("lea")
	_, _, err := ValidateCommand("#1, r1", cmd)
	var em *ErrMode
	if assert.ErrorAs(err, &em) {
		assert.Equal("lea", em.Command)
		assert.Equal("#1", em.Operand)
		assert.Equal(isa.MODE_IMMEDIATE, em.Mode)
		assert.Equal(isa.Modes(isa.MODE_DIRECT), em.Legal)
	}

	cmd, _ = isa.FindCommand("stop")
	_, _, err = ValidateCommand("r1", cmd)
	assert.ErrorIs(err, ErrOperandCount)
}
