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
	"fmt"
	"strings"
)

type diag struct {
	file string
	line int
	msg  string
}

// Err accumulates every non-fatal diagnostic produced while translating one
// ".am" file. Both passes keep scanning after recording a diagnostic here so
// a single run surfaces as many problems as possible (spec.md §7).
type Err []diag

func (e Err) Error() string {
	lines := make([]string, 0, len(e))
	for _, d := range e {
		lines = append(lines, fmt.Sprintf("File %s, line %d: %s", d.file, d.line, d.msg))
	}
	return strings.Join(lines, "\n")
}

func (e *Err) add(file string, line int, msg string) {
	*e = append(*e, diag{file: file, line: line, msg: msg})
}
