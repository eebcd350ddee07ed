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

// Package asm implements the two-pass translator that turns an expanded
// intermediate source file into a relocatable object file.
//
// Pass 1 reads "<basename>.am" line by line, classifying each as blank,
// comment, directive or instruction, with an optional leading label. It
// builds the symbol table, the data and instruction images, and a list of
// pending references for label uses whose address is not yet known.
//
// Pass 2 resolves every pending reference against the symbol table,
// patches the instruction image with the resolved value and ARE attribute,
// and writes "<basename>.ob" plus the optional "<basename>.ent" and
// "<basename>.ext" cross-reference files.
//
// Directives:
//
//	.data <int>, <int>, ...   appends signed values (-512..511) to the data image
//	.string "..."             appends one word per printable ASCII character, zero-terminated
//	.mat [rows][cols] <int>, ...  appends rows*cols words, zero-filled if short
//	.entry <name>             marks a symbol for the ".ent" cross-reference file
//	.extern <name>            declares a symbol defined in another file
//
// Instructions take 0, 1 or 2 operands depending on opcode, addressed in
// immediate ("#n"), register ("r0".."r7"), matrix ("name[rX][rY]") or
// direct (bare label) mode, subject to a fixed per-opcode table of legal
// modes per operand position.
//
// Both passes accumulate non-fatal diagnostics and keep scanning so a
// single run reports as many problems as possible; a capacity or I/O
// failure aborts the current file immediately and is reported as a
// *FatalError.
package asm
