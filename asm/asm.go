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

import (
	"github.com/asm10vm/assembler/macro"
)

// Assemble runs the full per-file pipeline: macro expansion, Pass 1 and
// Pass 2. The returned *Context is nil when macro expansion fails; otherwise
// it is populated regardless of outcome (useful to callers inspecting a
// failed run). The error is one of:
//
//   - nil: the file assembled cleanly and its output files were retained.
//   - an accumulator (macro.Err or asm.Err): one or more non-fatal
//     diagnostics were reported; any output files were deleted.
//   - *FatalError: a capacity or I/O failure abandoned the file outright.
func Assemble(basename string, cfg Config) (*Context, error) {
	table, err := macro.Expand(basename)
	if err != nil {
		if _, ok := err.(macro.Err); ok {
			return nil, err
		}
		return nil, &FatalError{msg: err.Error()}
	}

	ctx := newContext(basename, table, cfg)

	if err := FirstPass(ctx); err != nil {
		return ctx, err
	}
	if err := SecondPass(ctx); err != nil {
		return ctx, err
	}
	if len(ctx.errs) > 0 {
		return ctx, ctx.errs
	}
	return ctx, nil
}
