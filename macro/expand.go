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

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/asm10vm/assembler/word"
)

const maxLineLen = 80

// Expand reads "<basename>.as", expands every macro invocation inline, and
// writes the result to "<basename>.am". It returns the Table of macros
// defined in this file (needed by the first pass solely to forbid macro
// names as labels) and a non-nil error if any validation failed.
//
// On any validation error the partially written ".am" is deleted and Expand
// returns a non-nil Err; on a resource failure (I/O) it returns a wrapped
// error instead and also deletes the output.
func Expand(basename string) (*Table, error) {
	inName := basename + ".as"
	outName := basename + ".am"

	in, err := os.Open(inName)
	if err != nil {
		return nil, errors.Wrap(err, "open source failed")
	}
	defer in.Close()

	out, err := os.Create(outName)
	if err != nil {
		return nil, errors.Wrap(err, "create intermediate failed")
	}
	cleanFail := func(err error) (*Table, error) {
		out.Close()
		os.Remove(outName)
		return nil, err
	}

	table := newTable()
	var errs Err

	var current []string
	var currentName string
	insideMacro := false
	lineNum := 0

	r := bufio.NewReader(in)
	for {
		raw, rerr := r.ReadString('\n')
		if len(raw) == 0 && rerr != nil {
			break
		}
		lineNum++

		trimmed := strings.TrimRight(raw, "\n")
		if len(trimmed) > maxLineLen {
			errs.add(lineNum, ErrLineTooLong, "")
		}

		if trimmed == "" || trimmed[0] == ';' {
			if insideMacro {
				current = append(current, raw)
			} else if _, werr := out.WriteString(raw); werr != nil {
				return cleanFail(errors.Wrap(werr, "write intermediate failed"))
			}
			if rerr == io.EOF {
				break
			}
			continue
		}

		fields := strings.Fields(trimmed)
		first := fields[0]

		switch first {
		case "mcro":
			if insideMacro {
				errs.add(lineNum, ErrNested, "")
			}
			if len(fields) != 2 {
				errs.add(lineNum, ErrSyntax, "")
			} else {
				name := fields[1]
				if word.IsReserved(name) {
					errs.add(lineNum, ErrReserved, "")
				} else if !validMacroName(name) {
					errs.add(lineNum, ErrIllegalName, "")
				} else if table.Has(name) {
					errs.add(lineNum, ErrDuplicate, "")
				} else {
					currentName = name
				}
			}
			insideMacro = true
			current = nil

		case "mcroend":
			if len(fields) != 1 {
				errs.add(lineNum, ErrSyntax, "'mcroend' takes no arguments")
			}
			if !insideMacro {
				errs.add(lineNum, ErrUnclosed, "'mcroend' without matching 'mcro'")
			} else {
				if len(current) == 0 {
					errs.add(lineNum, ErrEmptyBody, "")
				}
				if currentName != "" {
					table.define(currentName, current)
				}
			}
			insideMacro = false
			currentName = ""
			current = nil

		default:
			if insideMacro {
				current = append(current, raw)
			} else if body, ok := table.Lines(first); ok {
				for _, l := range body {
					if _, werr := out.WriteString(l); werr != nil {
						return cleanFail(errors.Wrap(werr, "write intermediate failed"))
					}
				}
			} else if _, werr := out.WriteString(raw); werr != nil {
				return cleanFail(errors.Wrap(werr, "write intermediate failed"))
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return cleanFail(errors.Wrap(rerr, "read source failed"))
		}
	}

	if insideMacro {
		errs.add(lineNum, ErrUnclosed, "")
	}

	if err := out.Close(); err != nil {
		os.Remove(outName)
		return nil, errors.Wrap(err, "close intermediate failed")
	}
	if len(errs) > 0 {
		os.Remove(outName)
		return nil, errs
	}
	return table, nil
}

func validMacroName(name string) bool {
	if len(name) < 1 || len(name) > maxNameLen {
		return false
	}
	r := []rune(name)
	if !unicode.IsLetter(r[0]) {
		return false
	}
	for _, c := range r[1:] {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			return false
		}
	}
	return true
}
