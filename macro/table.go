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

// maxNameLen is the longest legal macro name, per spec.md §4.1.
const maxNameLen = 30

// Table maps macro names to their captured bodies for a single source file.
type Table struct {
	order  []string
	bodies map[string][]string
}

func newTable() *Table {
	return &Table{bodies: make(map[string][]string)}
}

// Has reports whether name was defined as a macro.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.bodies[name]
	return ok
}

// Lines returns the captured body for name, in source order.
func (t *Table) Lines(name string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	l, ok := t.bodies[name]
	return l, ok
}

func (t *Table) define(name string, lines []string) {
	t.bodies[name] = lines
	t.order = append(t.order, name)
}

// Names returns macro names in definition order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
