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

package word

// quadDigits is the base-4 alphabet: a=0, b=1, c=2, d=3.
const quadDigits = "abcd"

// EncodeWord formats the low 10 bits of v as 5 base-4 digits.
func EncodeWord(v Word) string {
	return encodeBase4(int(v)&Mask, 5)
}

// EncodeAddr formats an absolute address as 4 base-4 digits.
func EncodeAddr(v int) string {
	if v < 0 {
		v = 0
	}
	return encodeBase4(v, 4)
}

func encodeBase4(v, digits int) string {
	buf := make([]byte, digits)
	for i := digits - 1; i >= 0; i-- {
		buf[i] = quadDigits[v%4]
		v /= 4
	}
	return string(buf)
}

// DecodeBase4 parses a base-4 string in the a/b/c/d alphabet back to its
// integer value. It is the inverse of EncodeWord/EncodeAddr, used by tests
// that round-trip the object format.
func DecodeBase4(s string) (int, bool) {
	v := 0
	for _, c := range s {
		d := -1
		for i, q := range quadDigits {
			if q == c {
				d = i
				break
			}
		}
		if d < 0 {
			return 0, false
		}
		v = v*4 + d
	}
	return v, true
}
