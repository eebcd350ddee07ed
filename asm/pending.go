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

// Pending is a record of a label use whose value was not yet known when
// Pass 1 encoded it; Pass 2 resolves it against the Symbol Table and
// patches the instruction image in place (spec.md §3).
type Pending struct {
	Label  string
	Offset int // index into the instruction image
	Line   int // source line, for diagnostics
}
