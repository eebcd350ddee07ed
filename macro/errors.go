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

package macro

import (
	"fmt"
	"strings"
)

// Kind distinguishes the four validation failures spec.md §4.1 calls out
// separately for a macro declaration, plus the structural violations that
// can occur anywhere in a source file.
type Kind int

const (
	ErrSyntax Kind = iota
	ErrReserved
	ErrIllegalName
	ErrDuplicate
	ErrNested
	ErrEmptyBody
	ErrUnclosed
	ErrLineTooLong
)

func (k Kind) String() string {
	switch k {
	case ErrSyntax:
		return "invalid macro declaration syntax"
	case ErrReserved:
		return "reserved word used as macro name"
	case ErrIllegalName:
		return "illegal macro name"
	case ErrDuplicate:
		return "duplicate macro definition"
	case ErrNested:
		return "nested macros are not supported"
	case ErrEmptyBody:
		return "empty macro is not allowed"
	case ErrUnclosed:
		return "macro not closed before end of file"
	case ErrLineTooLong:
		return "line too long"
	default:
		return "macro error"
	}
}

type diag struct {
	line int
	kind Kind
	msg  string
}

// Err accumulates every diagnostic found while expanding one source file.
// The expander never stops scanning on the first error: it keeps collecting
// entries here so the caller sees every violation from a single run.
type Err []diag

func (e Err) Error() string {
	lines := make([]string, 0, len(e))
	for _, d := range e {
		if d.msg != "" {
			lines = append(lines, fmt.Sprintf("line %d: %s", d.line, d.msg))
		} else {
			lines = append(lines, fmt.Sprintf("line %d: %s", d.line, d.kind))
		}
	}
	return strings.Join(lines, "\n")
}

func (e *Err) add(line int, kind Kind, msg string) {
	*e = append(*e, diag{line: line, kind: kind, msg: msg})
}
