// This file is part of asm10 - https://github.com/asm10vm/assembler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/asm10vm/assembler/macro"
	"github.com/asm10vm/assembler/word"
)

const maxLineLen = 80

// FatalError signals a resource or capacity failure that abandons the
// current file outright; distinct from the non-fatal diagnostics
// accumulated in Err, which leave the scan running.
type FatalError struct {
	msg string
}

func (e *FatalError) Error() string { return e.msg }

// Context owns everything one file's translation accumulates across both
// passes: the symbol table, the two images, the pending-reference list and
// the error accumulator. It is scoped to a single basename and discarded
// when that file finishes, successfully or not.
type Context struct {
	file               string
	macros             *macro.Table
	capacity           int
	warnRedundantEntry bool

	sym     *symbolTable
	data    []word.Word
	ins     []word.Word
	pending []Pending
	errs    Err
	fatal   *FatalError
}

func newContext(basename string, macros *macro.Table, cfg Config) *Context {
	return &Context{
		file:               basename,
		macros:             macros,
		capacity:           cfg.Capacity,
		warnRedundantEntry: cfg.WarnRedundantEntry,
		sym:                newSymbolTable(),
	}
}

// DataImage returns the words accumulated in the data image.
func (c *Context) DataImage() []word.Word { return c.data }

// InstructionImage returns the words accumulated in the instruction image.
func (c *Context) InstructionImage() []word.Word { return c.ins }

// Symbols returns every symbol declared in the file, in declaration order.
func (c *Context) Symbols() []*Symbol { return c.sym.all() }

// reserve reports whether n more words fit under the combined capacity,
// recording a fatal error and returning false if not.
func (c *Context) reserve(n int, line int) bool {
	if c.fatal != nil {
		return false
	}
	if len(c.data)+len(c.ins)+n > c.capacity {
		c.fatal = &FatalError{msg: fmt.Sprintf("File %s, line %d: There are no free cells in memory", c.file, line)}
		return false
	}
	return true
}

// FirstPass reads "<basename>.am", populating ctx's symbol table, images
// and pending list. It returns a *FatalError on a resource or capacity
// failure; ordinary content errors are accumulated in ctx.errs instead and
// do not stop the scan.
func FirstPass(ctx *Context) error {
	in, err := os.Open(ctx.file + ".am")
	if err != nil {
		return &FatalError{msg: errors.Wrap(err, "open intermediate failed").Error()}
	}
	defer in.Close()

	r := bufio.NewReader(in)
	lineNum := 0
	for {
		raw, rerr := r.ReadString('\n')
		if len(raw) == 0 && rerr != nil {
			break
		}
		lineNum++

		trimmed := strings.TrimRight(raw, "\n")
		if len(trimmed) > maxLineLen {
			ctx.errs.add(ctx.file, lineNum, "line exceeds 80 characters")
			if rerr != nil {
				break
			}
			continue
		}

		ctx.scanLine(trimmed, lineNum)
		if ctx.fatal != nil {
			return ctx.fatal
		}

		if rerr != nil {
			break
		}
	}

	for _, s := range ctx.sym.all() {
		if s.Kind == KindUnknown {
			ctx.errs.add(ctx.file, s.Address,
				"A label was declared internal and was not defined in this file")
		}
	}

	return nil
}

// scanLine classifies and dispatches a single logical line of the
// intermediate file. Per spec.md §4.2, a line beginning with ';' is a
// comment and is checked before leading whitespace is trimmed: an indented
// semicolon is not a valid comment marker.
func (c *Context) scanLine(trimmed string, line int) {
	if trimmed == "" {
		return
	}
	if trimmed[0] == ';' {
		return
	}

	lt := strings.TrimLeft(trimmed, " \t")
	if lt == "" {
		return
	}
	if lt[0] == ';' {
		c.errs.add(c.file, line, "A comment line begin with a semicolon, not a blank character")
		return
	}

	label, body := splitLabel(lt)
	labelOK := true
	if label != "" {
		labelOK = c.validateLabelDecl(label, line)
	}
	if body == "" {
		if label != "" {
			c.errs.add(c.file, line, "label with no content")
		}
		return
	}

	firstTok, _ := splitFirstField(body)
	if strings.Contains(firstTok, ":") {
		c.errs.add(c.file, line, "misplaced ':'")
		return
	}

	declLabel := ""
	if labelOK {
		declLabel = label
	}

	if body[0] == '.' {
		c.handleDirective(body, declLabel, line)
	} else {
		c.handleInstruction(body, declLabel, line)
	}
}

// splitLabel separates a leading "name:" token from the rest of the line.
func splitLabel(lt string) (label, body string) {
	if idx := strings.IndexAny(lt, " \t"); idx >= 0 {
		firstTok := lt[:idx]
		if strings.HasSuffix(firstTok, ":") {
			return strings.TrimSuffix(firstTok, ":"), strings.TrimLeft(lt[idx:], " \t")
		}
		return "", lt
	}
	if strings.HasSuffix(lt, ":") {
		return strings.TrimSuffix(lt, ":"), ""
	}
	return "", lt
}

func (c *Context) validateLabelDecl(name string, line int) bool {
	if !validLabelName(name) {
		c.errs.add(c.file, line, "illegal label name: "+name)
		return false
	}
	if word.IsRegisterName(name) {
		c.errs.add(c.file, line, "label name conflicts with a register name: "+name)
		return false
	}
	if word.IsReserved(name) {
		c.errs.add(c.file, line, "label name is a reserved word: "+name)
		return false
	}
	if c.macros.Has(name) {
		c.errs.add(c.file, line, "label name conflicts with a macro name: "+name)
		return false
	}
	if existing, ok := c.sym.lookup(name); ok && existing.Kind != KindUnknown {
		c.errs.add(c.file, line, "label already defined: "+name)
		return false
	}
	return true
}

func splitDirective(body string) (name, rest string) {
	i := 1
	for i < len(body) && isAlpha(body[i]) {
		i++
	}
	return body[1:i], strings.TrimLeft(body[i:], " \t")
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (c *Context) handleDirective(body, label string, line int) {
	name, rest := splitDirective(body)
	switch name {
	case "data":
		c.handleData(rest, label, line)
	case "string":
		c.handleString(rest, label, line)
	case "mat":
		c.handleMat(rest, label, line)
	case "entry":
		c.handleEntry(rest, line)
	case "extern":
		c.handleExtern(rest, line)
	default:
		c.errs.add(c.file, line, "unknown directive: ."+name)
	}
}

func (c *Context) handleData(rest, label string, line int) {
	parts, err := splitCommaList(rest)
	if err != nil {
		c.errs.add(c.file, line, err.Error())
		return
	}
	if len(parts) == 0 {
		c.errs.add(c.file, line, ".data requires at least one value")
		return
	}
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			c.errs.add(c.file, line, "invalid integer in .data: "+p)
			return
		}
		if n < -512 || n > 511 {
			c.errs.add(c.file, line, "value out of range for .data (-512..511): "+p)
			return
		}
		values = append(values, n)
	}
	if label != "" {
		c.sym.defineLabel(label, KindData, len(c.data))
	}
	for _, v := range values {
		if !c.reserve(1, line) {
			return
		}
		c.data = append(c.data, word.Data(v))
	}
}

func (c *Context) handleString(rest, label string, line int) {
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		c.errs.add(c.file, line, ".string: missing opening or closing quote")
		return
	}
	content := rest[1 : len(rest)-1]
	for _, r := range content {
		if r < 32 || r > 126 {
			c.errs.add(c.file, line, ".string: character out of printable ASCII range")
			return
		}
	}
	if label != "" {
		c.sym.defineLabel(label, KindData, len(c.data))
	}
	for _, r := range content {
		if !c.reserve(1, line) {
			return
		}
		c.data = append(c.data, word.Data(int(r)))
	}
	if !c.reserve(1, line) {
		return
	}
	c.data = append(c.data, word.Data(0))
}

func (c *Context) handleMat(rest, label string, line int) {
	dimsTok, valuesStr := splitFirstField(strings.TrimSpace(rest))
	rows, cols, ok := parseMatDims(dimsTok)
	if !ok {
		c.errs.add(c.file, line, ".mat: malformed dimensions")
		return
	}
	cells := rows * cols
	if cells <= 0 {
		c.errs.add(c.file, line, ".mat: rows*cols must be positive")
		return
	}

	var values []int
	if valuesStr != "" {
		parts, err := splitCommaList(valuesStr)
		if err != nil {
			c.errs.add(c.file, line, err.Error())
			return
		}
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				c.errs.add(c.file, line, "invalid integer in .mat: "+p)
				return
			}
			if n < -512 || n > 511 {
				c.errs.add(c.file, line, "value out of range for .mat (-512..511): "+p)
				return
			}
			values = append(values, n)
		}
	}
	if len(values) > cells {
		c.errs.add(c.file, line, ".mat: more values than cells")
		return
	}

	if label != "" {
		c.sym.defineLabel(label, KindData, len(c.data))
	}
	for i := 0; i < cells; i++ {
		v := 0
		if i < len(values) {
			v = values[i]
		}
		if !c.reserve(1, line) {
			return
		}
		c.data = append(c.data, word.Data(v))
	}
}

func (c *Context) handleEntry(rest string, line int) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		c.errs.add(c.file, line, ".entry requires exactly one label name")
		return
	}
	name := fields[0]
	if !validLabelName(name) {
		c.errs.add(c.file, line, "illegal label name in .entry: "+name)
		return
	}
	redundant, err := c.sym.declareEntry(name, line)
	if err != nil {
		c.errs.add(c.file, line, err.Error())
		return
	}
	if redundant && c.warnRedundantEntry {
		c.errs.add(c.file, line, "label "+name+" was already declared entry")
	}
}

func (c *Context) handleExtern(rest string, line int) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		c.errs.add(c.file, line, ".extern requires exactly one label name")
		return
	}
	name := fields[0]
	if !validLabelName(name) {
		c.errs.add(c.file, line, "illegal label name in .extern: "+name)
		return
	}
	if err := c.sym.declareExtern(name); err != nil {
		c.errs.add(c.file, line, err.Error())
	}
}

func (c *Context) handleInstruction(body, label string, line int) {
	mnemonic, operandStr := splitFirstField(body)
	op, ok := word.Lookup(mnemonic)
	if !ok {
		c.errs.add(c.file, line, "undefined opcode: "+mnemonic)
		return
	}
	if label != "" {
		c.sym.defineLabel(label, KindInstruction, len(c.ins))
	}

	var srcTok, dstTok string
	switch op.Arity() {
	case word.Arity0:
		if strings.TrimSpace(operandStr) != "" {
			c.errs.add(c.file, line, "extraneous operand for "+mnemonic)
			return
		}
	case word.Arity1:
		parts, err := splitCommaList(operandStr)
		if err != nil {
			c.errs.add(c.file, line, err.Error())
			return
		}
		if len(parts) != 1 {
			c.errs.add(c.file, line, mnemonic+" requires exactly one operand")
			return
		}
		dstTok = parts[0]
	case word.Arity2:
		parts, err := splitCommaList(operandStr)
		if err != nil {
			c.errs.add(c.file, line, err.Error())
			return
		}
		if len(parts) != 2 {
			c.errs.add(c.file, line, mnemonic+" requires exactly two operands")
			return
		}
		srcTok, dstTok = parts[0], parts[1]
	}

	var src, dst operand
	srcOK, dstOK := true, true
	if srcTok != "" {
		src, srcOK = c.parseOperand(srcTok, line)
	}
	if dstTok != "" {
		dst, dstOK = c.parseOperand(dstTok, line)
	}
	if !srcOK || !dstOK {
		return
	}

	if op.Arity() == word.Arity2 && !word.Allows(op.SrcModes(), src.mode) {
		c.errs.add(c.file, line, mnemonic+": illegal addressing mode for source operand")
		return
	}
	if op.Arity() != word.Arity0 && !word.Allows(op.DstModes(), dst.mode) {
		c.errs.add(c.file, line, mnemonic+": illegal addressing mode for destination operand")
		return
	}

	titleIdx := len(c.ins)
	if !c.reserve(1, line) {
		return
	}
	c.ins = append(c.ins, word.Word(0))

	srcMode, dstMode := word.Mode(0), word.Mode(0)
	if op.Arity() == word.Arity2 {
		srcMode = src.mode
	}
	if op.Arity() != word.Arity0 {
		dstMode = dst.mode
	}

	switch {
	case op.Arity() == word.Arity2 && src.mode == word.Register && dst.mode == word.Register:
		if !c.reserve(1, line) {
			return
		}
		c.ins = append(c.ins, word.Registers(src.reg, dst.reg))
	default:
		if op.Arity() == word.Arity2 {
			c.encodeOperand(src, true, line)
			if c.fatal != nil {
				return
			}
		}
		if op.Arity() != word.Arity0 {
			c.encodeOperand(dst, false, line)
			if c.fatal != nil {
				return
			}
		}
	}

	c.ins[titleIdx] = word.Title(op, srcMode, dstMode)
}

// encodeOperand appends the word(s) for a single operand that is not part
// of a fused register pair. isSrc only decides which half of a lone
// register word the index lands in.
func (c *Context) encodeOperand(o operand, isSrc bool, line int) {
	switch o.mode {
	case word.Immediate:
		if !c.reserve(1, line) {
			return
		}
		c.ins = append(c.ins, word.ImmediateWord(o.imm))
	case word.Register:
		if !c.reserve(1, line) {
			return
		}
		if isSrc {
			c.ins = append(c.ins, word.Registers(o.reg, -1))
		} else {
			c.ins = append(c.ins, word.Registers(-1, o.reg))
		}
	case word.Direct:
		if !c.reserve(1, line) {
			return
		}
		offset := len(c.ins)
		c.ins = append(c.ins, word.Word(0))
		c.pending = append(c.pending, Pending{Label: o.label, Offset: offset, Line: line})
	case word.Matrix:
		if !c.reserve(2, line) {
			return
		}
		offset := len(c.ins)
		c.ins = append(c.ins, word.Word(0))
		c.pending = append(c.pending, Pending{Label: o.label, Offset: offset, Line: line})
		c.ins = append(c.ins, word.MatrixIndex(o.row, o.col))
	}
}

func (c *Context) parseOperand(tok string, line int) (operand, bool) {
	switch {
	case strings.HasPrefix(tok, "#"):
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			c.errs.add(c.file, line, "invalid immediate operand: "+tok)
			return operand{}, false
		}
		if n < -128 || n > 127 {
			c.errs.add(c.file, line, "immediate operand out of range (-128..127): "+tok)
			return operand{}, false
		}
		return operand{mode: word.Immediate, imm: int8(n)}, true
	case word.IsRegisterName(tok):
		return operand{mode: word.Register, reg: int(tok[1] - '0')}, true
	case strings.ContainsRune(tok, '['):
		name, row, col, ok := parseMatrixToken(tok)
		if !ok {
			c.errs.add(c.file, line, "malformed matrix operand: "+tok)
			return operand{}, false
		}
		return operand{mode: word.Matrix, label: name, row: row, col: col}, true
	default:
		if !validLabelName(tok) {
			c.errs.add(c.file, line, "malformed operand: "+tok)
			return operand{}, false
		}
		return operand{mode: word.Direct, label: tok}, true
	}
}
