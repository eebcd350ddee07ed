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

package word_test

import (
	"testing"

	"github.com/asm10vm/assembler/word"
)

func TestBase4RoundTrip(t *testing.T) {
	cases := []word.Word{0, 1, 60, 212, word.Mask}
	for _, w := range cases {
		s := word.EncodeWord(w)
		if len(s) != 5 {
			t.Errorf("EncodeWord(%d) = %q, want length 5", w, s)
		}
		got, ok := word.DecodeBase4(s)
		if !ok {
			t.Fatalf("DecodeBase4(%q) failed to parse", s)
		}
		if got != int(w) {
			t.Errorf("round trip %d -> %q -> %d", w, s, got)
		}
	}
}

func TestEncodeAddr(t *testing.T) {
	if got := word.EncodeAddr(100); got != "bcba" {
		t.Errorf("EncodeAddr(100) = %q, want %q", got, "bcba")
	}
	if got := word.EncodeAddr(0); got != "aaaa" {
		t.Errorf("EncodeAddr(0) = %q, want %q", got, "aaaa")
	}
}

func TestRegistersSharedWord(t *testing.T) {
	// Scenario A from the spec: "mov r3, r5" packs both registers in one word.
	title := word.Title(word.Mov, word.Register, word.Register)
	if title != 60 {
		t.Errorf("title word = %d, want 60", title)
	}
	reg := word.Registers(3, 5)
	if reg != 212 {
		t.Errorf("register word = %d, want 212", reg)
	}
}

func TestWithValueExternal(t *testing.T) {
	w := word.WithValue(0, 0, word.AREExternal)
	if w != word.Word(word.AREExternal) {
		t.Errorf("external patch = %d, want %d", w, word.AREExternal)
	}
}

func TestOpcodeLookup(t *testing.T) {
	op, ok := word.Lookup("jsr")
	if !ok || op != word.Jsr {
		t.Errorf("Lookup(jsr) = %v, %v", op, ok)
	}
	if _, ok := word.Lookup("nope"); ok {
		t.Errorf("Lookup(nope) should fail")
	}
}

func TestIsReserved(t *testing.T) {
	for _, s := range []string{"mov", "stop", "mcro", "mcroend", "data", "entry"} {
		if !word.IsReserved(s) {
			t.Errorf("IsReserved(%q) = false, want true", s)
		}
	}
	if word.IsReserved("foo") {
		t.Errorf("IsReserved(foo) = true, want false")
	}
}
