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
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/asm10vm/assembler/word"
)

// Config holds the handful of knobs a deployment might want to tune without
// a recompile. It is entirely optional: a missing file is not an error, and
// every field defaults to the value the spec hard-codes.
type Config struct {
	// Capacity overrides the combined instruction+data word limit
	// (word.Capacity by default).
	Capacity int `toml:"capacity"`

	// WarnRedundantEntry switches on a diagnostic for a label that
	// ".entry" declares more than once. The reference implementation
	// accepts this silently; off by default to match it.
	WarnRedundantEntry bool `toml:"warn_redundant_entry"`
}

// DefaultConfig returns the configuration the assembler uses when no
// "asm10.toml" is present.
func DefaultConfig() Config {
	return Config{Capacity: word.Capacity}
}

// LoadConfig reads path as TOML and overlays it onto DefaultConfig(). A
// missing file is not an error; it simply yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config failed")
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = word.Capacity
	}
	return cfg, nil
}
