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

// Package macro implements the assembler's first phase: a scan-time block
// recognizer that captures "mcro <name>" ... "mcroend" bodies and inlines
// them wherever their name appears as the first token of a later line.
//
// Expand reads "<basename>.as" and writes "<basename>.am". On any validation
// error the partially written ".am" is removed and Expand returns a non-nil
// error; Expand never aborts the scan early, so a single run reports every
// violation it finds.
package macro
