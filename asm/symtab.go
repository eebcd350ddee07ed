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

// Kind classifies what a Symbol names.
type Kind int

const (
	KindUnknown Kind = iota
	KindData
	KindInstruction
)

// Linkage classifies how a Symbol is exposed outside its file.
type Linkage int

const (
	LinkageRegular Linkage = iota
	LinkageEntry
	LinkageExternal
)

// Symbol is one entry of the Symbol Table (spec.md §3).
type Symbol struct {
	Name string
	// Address is the symbol's offset within its section while Kind is
	// Data or Instruction. While Kind is Unknown it instead holds the
	// source line of the .entry declaration that created the
	// placeholder, for diagnostic fidelity.
	Address int
	Kind    Kind
	Linkage Linkage
}

// symbolTable owns every Symbol declared in one file, in declaration order.
type symbolTable struct {
	order  []string
	byName map[string]*Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{byName: make(map[string]*Symbol)}
}

func (t *symbolTable) lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

func (t *symbolTable) insert(s *Symbol) {
	t.byName[s.Name] = s
	t.order = append(t.order, s.Name)
}

// all returns every Symbol in declaration order.
func (t *symbolTable) all() []*Symbol {
	out := make([]*Symbol, len(t.order))
	for i, n := range t.order {
		out[i] = t.byName[n]
	}
	return out
}

// defineLabel records a label appearing before an instruction or data
// directive. If name was already present as an unknown-kind entry
// placeholder (created by a forward .entry), it is finalized in place;
// otherwise a new regular-linkage symbol is inserted. The caller is
// responsible for having already rejected true duplicates.
func (t *symbolTable) defineLabel(name string, kind Kind, addr int) {
	if existing, ok := t.byName[name]; ok && existing.Kind == KindUnknown {
		existing.Kind = kind
		existing.Address = addr
		return
	}
	t.insert(&Symbol{Name: name, Address: addr, Kind: kind, Linkage: LinkageRegular})
}

// declareEntry processes a ".entry name" directive. sourceLine is stashed
// in the placeholder's Address field when name is not yet defined.
// redundant reports whether name was already linked as entry by an earlier
// ".entry" on the same name; callers may use this to warn, but the
// reference implementation accepts it silently.
func (t *symbolTable) declareEntry(name string, sourceLine int) (redundant bool, err error) {
	if existing, ok := t.byName[name]; ok {
		switch {
		case existing.Linkage == LinkageExternal:
			return false, errString("a label declared external cannot also be declared entry")
		case existing.Kind == KindUnknown:
			// Already pending from an earlier .entry on the same name.
			return true, nil
		case existing.Linkage == LinkageEntry:
			return true, nil
		default:
			existing.Linkage = LinkageEntry
			return false, nil
		}
	}
	t.insert(&Symbol{Name: name, Address: sourceLine, Kind: KindUnknown, Linkage: LinkageEntry})
	return false, nil
}

// declareExtern processes a ".extern name" directive.
func (t *symbolTable) declareExtern(name string) error {
	if _, ok := t.byName[name]; ok {
		return errString("a label already defined cannot be declared external")
	}
	t.insert(&Symbol{Name: name, Address: 0, Kind: KindInstruction, Linkage: LinkageExternal})
	return nil
}

type errString string

func (e errString) Error() string { return string(e) }
