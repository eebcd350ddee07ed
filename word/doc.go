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

// Package word provides the 10-bit Word type shared by the assembler's two
// passes: bit layout constants, the ARE attribute, opcode and addressing mode
// tables, and the base-4 codec used by the object file format.
//
// Bit layout:
//
//	title word:      opcode[9:6] | src_mode[5:4] | dst_mode[3:2] | ARE[1:0]
//	immediate/direct: value[9:2] | ARE[1:0]
//	register word:   src_reg[9:6] | dst_reg[5:2] | ARE[1:0]
//	matrix index:    row_reg[9:6] | col_reg[5:2] | ARE[1:0]
//
// Origin is 100: the absolute address of offset o in the instruction segment
// is 100+o, and of offset o in the data segment is 100+IC+o.
package word
