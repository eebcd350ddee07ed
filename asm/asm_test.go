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

package asm_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asm10vm/assembler/asm"
	"github.com/asm10vm/assembler/word"
)

func writeAM(t *testing.T, dir, body string) string {
	t.Helper()
	base := filepath.Join(dir, "t")
	if err := os.WriteFile(base+".as", []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return base
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(b)
}

// Scenario A — registers share a word.
func TestRegistersShareAWord(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, "mov r3, r5\nstop\n")

	if _, err := asm.Assemble(base, asm.DefaultConfig()); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	ob := readFile(t, base+".ob")
	lines := strings.Split(strings.TrimRight(ob, "\n"), "\n")
	// header + (mov title, mov reg word, stop title) = 4 lines
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines in .ob, got %d: %q", len(lines), ob)
	}

	titleWord := strings.Split(lines[1], "\t")[1]
	if v, ok := word.DecodeBase4(titleWord); !ok || v != 60 {
		t.Errorf("mov title word = %v (ok=%v), want 60", v, ok)
	}
	regWord := strings.Split(lines[2], "\t")[1]
	if v, ok := word.DecodeBase4(regWord); !ok || v != 212 {
		t.Errorf("register word = %v (ok=%v), want 212", v, ok)
	}
}

// Scenario B — external reference.
func TestExternalReference(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, ".extern X\njmp X\nstop\n")

	if _, err := asm.Assemble(base, asm.DefaultConfig()); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	ext := readFile(t, base+".ext")
	if !strings.HasPrefix(ext, "X ") {
		t.Fatalf(".ext = %q, want prefix %q", ext, "X ")
	}
}

// Scenario C — matrix directive.
func TestMatrixDirective(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, "M: .mat [2][3] 1, 2, 3\nstop\n")

	ctx, err := asm.Assemble(base, asm.DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := len(ctx.DataImage()); got != 6 {
		t.Fatalf("data image length = %d, want 6", got)
	}
}

// Scenario D — undefined entry.
func TestUndefinedEntry(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, ".entry K\nstop\n")

	_, err := asm.Assemble(base, asm.DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for an undefined .entry target")
	}
	if _, ok := err.(*asm.FatalError); ok {
		t.Fatalf("expected a non-fatal error, got fatal: %v", err)
	}
	if _, statErr := os.Stat(base + ".ob"); statErr == nil {
		t.Error(".ob should have been removed")
	}
}

// Scenario F — memory capacity.
func TestMemoryCapacity(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	for i := 0; i < 157; i++ {
		b.WriteString(".data 1\n")
	}
	base := writeAM(t, dir, b.String())

	_, err := asm.Assemble(base, asm.DefaultConfig())
	if err == nil {
		t.Fatal("expected a fatal capacity error")
	}
	if _, ok := err.(*asm.FatalError); !ok {
		t.Fatalf("expected *asm.FatalError, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(base + ".ob"); statErr == nil {
		t.Error(".ob should not exist after a capacity failure")
	}
}

func TestDataLabelOffsets(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, "A: .data 1\nB: .data 2, 3\nstop\n")

	ctx, err := asm.Assemble(base, asm.DefaultConfig())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := []struct {
		name string
		addr int
	}{{"A", 0}, {"B", 1}}
	syms := ctx.Symbols()
	if len(syms) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(syms), len(want))
	}
	for i, w := range want {
		if syms[i].Name != w.name || syms[i].Address != w.addr || syms[i].Kind != asm.KindData {
			t.Errorf("symbol %d = %+v, want %s at data offset %d", i, *syms[i], w.name, w.addr)
		}
	}
}

// Redundant .entry is accepted silently by default, matching the reference.
func TestRedundantEntryAcceptedByDefault(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, "K: stop\n.entry K\n.entry K\n")

	if _, err := asm.Assemble(base, asm.DefaultConfig()); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
}

// Redundant .entry is reported when Config.WarnRedundantEntry is set.
func TestRedundantEntryWarnsWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	base := writeAM(t, dir, "K: stop\n.entry K\n.entry K\n")

	cfg := asm.DefaultConfig()
	cfg.WarnRedundantEntry = true
	_, err := asm.Assemble(base, cfg)
	if err == nil {
		t.Fatal("expected a redundant-.entry diagnostic")
	}
	if _, ok := err.(*asm.FatalError); ok {
		t.Fatalf("expected a non-fatal error, got fatal: %v", err)
	}
	if !strings.Contains(err.Error(), "already declared entry") {
		t.Fatalf("error = %q, want mention of already-declared entry", err.Error())
	}
}
