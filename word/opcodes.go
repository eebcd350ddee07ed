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

package word

// Opcode identifies one of the 16 machine instructions.
type Opcode int

const (
	Mov Opcode = iota
	Cmp
	Add
	Sub
	Lea
	Clr
	Not
	Inc
	Dec
	Jmp
	Bne
	Jsr
	Red
	Prn
	Rts
	Stop
)

var opcodeNames = [...]string{
	"mov", "cmp", "add", "sub", "lea",
	"clr", "not", "inc", "dec", "jmp", "bne", "jsr", "red", "prn",
	"rts", "stop",
}

var opcodeIndex = make(map[string]Opcode, len(opcodeNames))

func init() {
	for i, n := range opcodeNames {
		opcodeIndex[n] = Opcode(i)
	}
}

// String returns the mnemonic for op.
func (op Opcode) String() string {
	if int(op) < 0 || int(op) >= len(opcodeNames) {
		return "?"
	}
	return opcodeNames[op]
}

// Lookup returns the opcode named by s and whether it exists.
func Lookup(s string) (Opcode, bool) {
	op, ok := opcodeIndex[s]
	return op, ok
}

// Mode identifies one of the four addressing modes. Its integer value is
// also the 2-bit field stored in a title word.
type Mode int

const (
	Immediate Mode = iota
	Direct
	Matrix
	Register
)

// Arity is the number of operands an opcode takes.
type Arity int

const (
	Arity0 Arity = iota
	Arity1
	Arity2
)

type opcodeInfo struct {
	arity    Arity
	srcModes []Mode // allowed modes for the source operand (Arity2 only)
	dstModes []Mode // allowed modes for the destination operand
}

var opcodeTable = map[Opcode]opcodeInfo{
	Mov: {Arity2, []Mode{Immediate, Direct, Matrix, Register}, []Mode{Direct, Matrix, Register}},
	Add: {Arity2, []Mode{Immediate, Direct, Matrix, Register}, []Mode{Direct, Matrix, Register}},
	Sub: {Arity2, []Mode{Immediate, Direct, Matrix, Register}, []Mode{Direct, Matrix, Register}},
	Cmp: {Arity2, []Mode{Immediate, Direct, Matrix, Register}, []Mode{Immediate, Direct, Matrix, Register}},
	Lea: {Arity2, []Mode{Direct, Matrix}, []Mode{Direct, Matrix, Register}},

	Clr: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Not: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Inc: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Dec: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Jmp: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Bne: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Jsr: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Red: {Arity1, nil, []Mode{Direct, Matrix, Register}},
	Prn: {Arity1, nil, []Mode{Immediate, Direct, Matrix, Register}},

	Rts:  {Arity0, nil, nil},
	Stop: {Arity0, nil, nil},
}

// Arity returns the number of operands op expects.
func (op Opcode) Arity() Arity {
	return opcodeTable[op].arity
}

// SrcModes returns the addressing modes legal for op's source operand.
func (op Opcode) SrcModes() []Mode {
	return opcodeTable[op].srcModes
}

// DstModes returns the addressing modes legal for op's destination operand.
func (op Opcode) DstModes() []Mode {
	return opcodeTable[op].dstModes
}

// Allows reports whether mode is a legal addressing mode for the given
// operand list.
func Allows(modes []Mode, m Mode) bool {
	for _, x := range modes {
		if x == m {
			return true
		}
	}
	return false
}

// DirectiveNames lists the bare (dot-less) directive names; used by the
// macro expander's reserved-word check.
var DirectiveNames = [...]string{"data", "string", "mat", "extern", "entry"}

// IsReserved reports whether s names an opcode, a macro keyword or a
// directive (without its leading dot) — the set of words that may never be
// used as a macro or label name.
func IsReserved(s string) bool {
	if _, ok := opcodeIndex[s]; ok {
		return true
	}
	if s == "mcro" || s == "mcroend" {
		return true
	}
	for _, d := range DirectiveNames {
		if s == d {
			return true
		}
	}
	return false
}

// IsRegisterName reports whether s is one of r0..r7.
func IsRegisterName(s string) bool {
	if len(s) != 2 || s[0] != 'r' {
		return false
	}
	return s[1] >= '0' && s[1] <= '7'
}
