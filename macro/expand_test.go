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

package macro_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asm10vm/assembler/macro"
)

func writeSource(t *testing.T, dir, body string) string {
	t.Helper()
	base := filepath.Join(dir, "test")
	if err := os.WriteFile(base+".as", []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return base
}

func TestExpandInlinesBody(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "mcro M1\n\tadd r1, r2\nmcroend\nM1\nstop\n")

	tbl, err := macro.Expand(base)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !tbl.Has("M1") {
		t.Fatalf("expected macro M1 to be defined")
	}

	got, err := os.ReadFile(base + ".am")
	if err != nil {
		t.Fatal(err)
	}
	want := "\tadd r1, r2\nstop\n"
	if string(got) != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestExpandRejectsNestedMacro(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "mcro M1\nmcro M2\nstop\nmcroend\nmcroend\n")

	_, err := macro.Expand(base)
	if err == nil {
		t.Fatal("expected error for nested macro")
	}
	if _, statErr := os.Stat(base + ".am"); statErr == nil {
		t.Error(".am should have been removed on failure")
	}
}

func TestExpandRejectsReservedName(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "mcro mov\nstop\nmcroend\n")

	_, err := macro.Expand(base)
	if err == nil {
		t.Fatal("expected error for reserved macro name")
	}
}

func TestExpandRejectsEmptyBody(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "mcro M1\nmcroend\n")

	_, err := macro.Expand(base)
	if err == nil {
		t.Fatal("expected error for empty macro body")
	}
}

func TestExpandRejectsUnclosedMacro(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "mcro M1\nadd r1, r2\n")

	_, err := macro.Expand(base)
	if err == nil {
		t.Fatal("expected error for unclosed macro")
	}
}

func TestExpandRejectsDuplicateName(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "mcro M1\nstop\nmcroend\nmcro M1\nrts\nmcroend\n")

	_, err := macro.Expand(base)
	if err == nil {
		t.Fatal("expected error for duplicate macro name")
	}
}

func TestExpandCopiesCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	base := writeSource(t, dir, "; a comment\n\nstop\n")

	_, err := macro.Expand(base)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got, _ := os.ReadFile(base + ".am")
	want := "; a comment\n\nstop\n"
	if string(got) != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}
