package assembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ezrec/snasm/internal"
	"github.com/ezrec/snasm/isa"
	"github.com/ezrec/snasm/symbol"
)

// SecondPass encodes one macro-expanded file into obj. The file's data
// words are appended to obj once its instructions are encoded. A line
// error still emits every word of the line, so later addresses match
// pass 1.
func (ctx *Context) SecondPass(file string, input io.Reader, obj *Object) (err error) {
	if !ctx.final {
		err = ErrPassOrder
		return
	}

	sc := bufio.NewScanner(input)

	var data []isa.Word
	var errs []error
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()

		lineErr := ctx.secondLine(line, obj, &data)
		if lineErr != nil {
			errs = append(errs, &ErrSyntax{File: file, LineNo: lineno, Line: line, Err: lineErr})
		}
	}

	if err = sc.Err(); err != nil {
		err = fmt.Errorf("%v: %w: %w", file, ErrSourceRead, err)
		return
	}

	ctx.Level.Logf(internal.LevelVerbose, "%v: %d data words", file, len(data))
	obj.Data = append(obj.Data, data...)

	err = errors.Join(errs...)
	return
}

// secondLine encodes one statement.
func (ctx *Context) secondLine(line string, obj *Object, data *[]isa.Word) (err error) {
	stmt, err := ParseStatement(line)
	if err != nil {
		return
	}

	switch stmt.Kind {
	case STATEMENT_ENTRY:
		if !ctx.Config.GenEntries {
			return
		}
		var name string
		name, err = stmt.Symbol()
		if err != nil {
			return
		}
		// Undefined entries were reported by Finish.
		if label, ok := ctx.Labels.Find(name); ok && !label.Extern {
			obj.addEntry(label.Name, label.Address)
		}

	case STATEMENT_DATA, STATEMENT_STRING:
		var values []int64
		values, err = stmt.Data()
		if err != nil {
			return
		}
		for _, value := range values {
			*data = append(*data, ctx.Layout.DataWord(value))
		}

	case STATEMENT_COMMAND:
		var operands []Operand
		operands, _, err = ValidateCommand(stmt.Args, stmt.Command)
		if err != nil {
			return
		}
		err = ctx.encode(stmt.Command, operands, obj)
	}

	return
}

// emit writes a word at the cursor.
func (ctx *Context) emit(obj *Object, word isa.Word) {
	obj.Code = append(obj.Code, word)
	ctx.cursor++
}

// encode writes the opcode word of an instruction, then one extra word
// per non-register operand, source first.
func (ctx *Context) encode(cmd *isa.Command, operands []Operand, obj *Object) (err error) {
	// A single operand is the destination.
	var slots [2]isa.Slot
	first := len(slots) - len(operands)
	var extra []Operand
	for n, op := range operands {
		slot := isa.Slot{Used: true, Mode: op.Mode()}
		if reg, ok := op.(Register); ok {
			slot.Register = reg.Number
		} else {
			extra = append(extra, op)
		}
		slots[first+n] = slot
	}

	ctx.emit(obj, ctx.Layout.CodeWord(cmd, slots[0], slots[1]))

	var errs []error
	for n, op := range extra {
		var ctl isa.Control
		if n < len(extra)-1 {
			ctl |= isa.CONTROL_MORE
		}
		word, opErr := ctx.operandWord(op, ctl, obj)
		if opErr != nil {
			errs = append(errs, &ErrOperand{Operand: op.String(), Err: opErr})
			word = 0
		}
		ctx.emit(obj, word)
	}

	err = errors.Join(errs...)
	return
}

// operandWord encodes the extra word of an operand at the cursor.
func (ctx *Context) operandWord(op Operand, ctl isa.Control, obj *Object) (word isa.Word, err error) {
	layout := ctx.Layout
	address := ctx.cursor
	min, max := layout.ValueRange()

	var name string
	switch op := op.(type) {
	case Immediate:
		if op.Value < min || op.Value > max {
			err = ErrImmediateRange
			return
		}
		word = layout.ValueWord(op.Value, ctl|isa.CONTROL_ABSOLUTE)
		return
	case Direct:
		name = op.Label
	case Relative:
		name = op.Label
	}

	label, ok := ctx.Labels.Find(name)
	if !ok {
		err = symbol.ErrLabelMissing(name)
		return
	}

	if label.Extern {
		ctx.useExtern(label.Name, address, obj)
	}

	switch op.(type) {
	case Direct:
		if label.Extern {
			word = layout.ValueWord(0, ctl|isa.CONTROL_EXTERNAL)
			return
		}
		if int64(label.Address) > layout.AddressMax() {
			err = ErrAddressRange
			return
		}
		word = layout.ValueWord(int64(label.Address), ctl|isa.CONTROL_RELOCATABLE)
	case Relative:
		distance := int64(label.Address + 1 - address)
		if distance < min || distance > max {
			err = ErrRelativeRange
			return
		}
		word = layout.ValueWord(distance, ctl|isa.CONTROL_ABSOLUTE)
	}

	return
}

// useExtern records a reference to an extern label at address.
func (ctx *Context) useExtern(name string, address int, obj *Object) {
	err := ctx.Labels.MarkExternUse(name, address)
	if err != nil {
		// The label is still marked used.
		ctx.Level.Warnf("%v", err)
	}
	if ctx.Config.GenExternals {
		obj.Externals = append(obj.Externals, Reference{Name: name, Address: address})
	}
}
