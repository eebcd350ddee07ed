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
	"strconv"
	"strings"
	"unicode"

	"github.com/asm10vm/assembler/word"
)

const maxLabelLen = 30

// validLabelName checks the syntactic shape only (length, first character,
// remaining characters); reserved-word, register-name, macro-name and
// duplicate checks are the caller's responsibility since they need access
// to the Context.
func validLabelName(name string) bool {
	if len(name) < 1 || len(name) > maxLabelLen {
		return false
	}
	r := []rune(name)
	if !unicode.IsLetter(r[0]) {
		return false
	}
	for _, c := range r[1:] {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// operand is a parsed instruction operand, classified by addressing mode.
type operand struct {
	mode  word.Mode
	reg   int    // Register mode: register index 0..7
	imm   int8   // Immediate mode: the signed value
	label string // Direct and Matrix modes: the label name
	row   int    // Matrix mode: row register index
	col   int    // Matrix mode: column register index
}

// splitCommaList splits s on commas, enforcing exactly one comma between
// entries: no leading comma, no trailing comma, no empty (consecutive
// comma) entries, and no entry holding more than one whitespace-separated
// token (a missing comma between two operands). An empty s yields a nil
// list with no error.
func splitCommaList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, ",") {
		return nil, errString("There is a comma before parameters")
	}
	if strings.HasSuffix(s, ",") {
		return nil, errString("There is a comma after all parameters")
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t == "" {
			return nil, errString("There is more than one comma between parameters")
		}
		if len(strings.Fields(t)) > 1 {
			return nil, errString("Missing comma between parameters")
		}
		out = append(out, t)
	}
	return out, nil
}

// parseMatrixToken splits "name[rX][rY]" into its name and two register
// indices. ok is false for anything that doesn't match that exact shape.
func parseMatrixToken(tok string) (name string, row, col int, ok bool) {
	i := strings.IndexByte(tok, '[')
	if i <= 0 {
		return "", 0, 0, false
	}
	name = tok[:i]
	rest := tok[i:]
	j := strings.IndexByte(rest, ']')
	if j < 0 || j == 1 {
		return "", 0, 0, false
	}
	reg1 := rest[1:j]
	rest2 := rest[j+1:]
	if len(rest2) < 3 || rest2[0] != '[' || rest2[len(rest2)-1] != ']' {
		return "", 0, 0, false
	}
	reg2 := rest2[1 : len(rest2)-1]
	if !word.IsRegisterName(reg1) || !word.IsRegisterName(reg2) {
		return "", 0, 0, false
	}
	return name, int(reg1[1] - '0'), int(reg2[1] - '0'), true
}

// parseMatDims splits "[rows][cols]" into its two dimensions.
func parseMatDims(tok string) (rows, cols int, ok bool) {
	if len(tok) < 5 || tok[0] != '[' {
		return 0, 0, false
	}
	j := strings.IndexByte(tok, ']')
	if j < 0 {
		return 0, 0, false
	}
	rest := tok[j+1:]
	if len(rest) < 3 || rest[0] != '[' || rest[len(rest)-1] != ']' {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(tok[1:j])
	c, err2 := strconv.Atoi(rest[1 : len(rest)-1])
	if err1 != nil || err2 != nil || r < 0 || c < 0 {
		return 0, 0, false
	}
	return r, c, true
}

// splitFirstField splits s at its first run of whitespace, returning the
// leading token and the (left-trimmed) remainder.
func splitFirstField(s string) (head, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
