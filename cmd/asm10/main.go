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

// Command asm10 translates one or more assembly source files into object
// files for the 10-bit word virtual machine.
//
// Usage:
//
//	asm10 <basename>...
//
// For each basename, asm10 reads "<basename>.as", expands macros into
// "<basename>.am", then runs the two-pass translator to produce
// "<basename>.ob" and, where applicable, "<basename>.ent"/"<basename>.ext".
// A non-fatal error in one file does not stop the remaining files from
// being processed; a fatal (capacity or I/O) error abandons the run.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/asm10vm/assembler/asm"
)

const configPath = "asm10.toml"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <basename>...\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := asm.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	os.Exit(run(args, cfg))
}

// run processes every basename, logging whatever diagnostics each one
// produces. Per spec.md §6 and §8 Scenario D, ordinary content errors
// (macro.Err, asm.Err) are signaled for that file but do not affect the
// process exit status; only a *FatalError aborts the remaining files and
// makes the run exit 1.
func run(basenames []string, cfg asm.Config) int {
	for _, base := range basenames {
		if _, err := asm.Assemble(base, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			if _, fatal := err.(*asm.FatalError); fatal {
				return 1
			}
		}
	}
	return 0
}
