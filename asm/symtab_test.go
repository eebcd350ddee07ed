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

import "testing"

func TestDeclareEntryThenDefine(t *testing.T) {
	tbl := newSymbolTable()
	if _, err := tbl.declareEntry("K", 3); err != nil {
		t.Fatalf("declareEntry: %v", err)
	}
	sym, ok := tbl.lookup("K")
	if !ok || sym.Kind != KindUnknown || sym.Address != 3 {
		t.Fatalf("unexpected placeholder: %+v ok=%v", sym, ok)
	}

	tbl.defineLabel("K", KindInstruction, 7)
	sym, ok = tbl.lookup("K")
	if !ok || sym.Kind != KindInstruction || sym.Address != 7 || sym.Linkage != LinkageEntry {
		t.Fatalf("placeholder not finalized correctly: %+v ok=%v", sym, ok)
	}
}

func TestDeclareEntryOnExternalIsRejected(t *testing.T) {
	tbl := newSymbolTable()
	if err := tbl.declareExtern("X"); err != nil {
		t.Fatalf("declareExtern: %v", err)
	}
	if _, err := tbl.declareEntry("X", 1); err == nil {
		t.Fatal("expected an error declaring an external symbol as entry")
	}
}

func TestDeclareEntryTwiceIsRedundantNotAnError(t *testing.T) {
	tbl := newSymbolTable()
	tbl.defineLabel("K", KindInstruction, 7)
	if redundant, err := tbl.declareEntry("K", 1); err != nil || redundant {
		t.Fatalf("first declareEntry: redundant=%v err=%v", redundant, err)
	}
	redundant, err := tbl.declareEntry("K", 2)
	if err != nil {
		t.Fatalf("second declareEntry: %v", err)
	}
	if !redundant {
		t.Fatal("expected the second .entry on the same label to be reported redundant")
	}
}

func TestDeclareExternTwiceIsRejected(t *testing.T) {
	tbl := newSymbolTable()
	if err := tbl.declareExtern("X"); err != nil {
		t.Fatalf("declareExtern: %v", err)
	}
	if err := tbl.declareExtern("X"); err == nil {
		t.Fatal("expected an error re-declaring an external symbol")
	}
}

func TestSymbolOrderPreserved(t *testing.T) {
	tbl := newSymbolTable()
	tbl.defineLabel("B", KindData, 0)
	tbl.defineLabel("A", KindData, 1)
	all := tbl.all()
	if len(all) != 2 || all[0].Name != "B" || all[1].Name != "A" {
		t.Fatalf("unexpected order: %+v", all)
	}
}
