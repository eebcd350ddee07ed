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
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/asm10vm/assembler/internal/ioutil"
	"github.com/asm10vm/assembler/word"
)

// lazyFile opens its backing file only on first use, and is removed (not
// merely closed) if remove is later called on it. This mirrors the
// reference object writer's lazy-open, delete-on-error discipline for the
// optional ".ent"/".ext" cross-reference files.
type lazyFile struct {
	path string
	f    *os.File
	w    *ioutil.ErrWriter
}

func (l *lazyFile) writer() (*ioutil.ErrWriter, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return nil, err
		}
		l.f = f
		l.w = ioutil.NewErrWriter(f)
	}
	return l.w, nil
}

func (l *lazyFile) close() {
	if l.f != nil {
		l.f.Close()
	}
}

func (l *lazyFile) remove() {
	l.close()
	if l.f != nil {
		os.Remove(l.path)
	}
}

// SecondPass resolves every pending reference against ctx's symbol table,
// patches the instruction image in place, and emits "<basename>.ob" plus
// the optional ".ent"/".ext" cross-reference files. It returns a
// *FatalError only for an I/O failure; undefined references and 8-bit
// overflow are recorded as ordinary diagnostics in ctx.errs. Outputs are
// deleted instead of kept whenever ctx.errs is non-empty once both passes
// have run (spec.md §4.3).
func SecondPass(ctx *Context) error {
	icFinal := len(ctx.ins)
	dcFinal := len(ctx.data)

	ext := &lazyFile{path: ctx.file + ".ext"}
	ent := &lazyFile{path: ctx.file + ".ent"}

	for _, p := range ctx.pending {
		sym, ok := ctx.sym.lookup(p.Label)
		if !ok {
			ctx.errs.add(ctx.file, p.Line, "undefined symbol: "+p.Label)
			continue
		}
		if sym.Linkage == LinkageExternal {
			ctx.ins[p.Offset] = word.WithValue(ctx.ins[p.Offset], 0, word.AREExternal)
			w, err := ext.writer()
			if err != nil {
				return &FatalError{msg: errors.Wrap(err, "open .ext failed").Error()}
			}
			useAddr := word.Origin + p.Offset
			fmt.Fprintf(w, "%s %s\n", p.Label, word.EncodeAddr(useAddr))
			if w.Err != nil {
				return &FatalError{msg: w.Err.Error()}
			}
			continue
		}

		abs := absoluteAddress(sym, icFinal)
		if abs > 255 {
			ctx.errs.add(ctx.file, p.Line, fmt.Sprintf("address of %s does not fit in 8 bits", p.Label))
		}
		ctx.ins[p.Offset] = word.WithValue(ctx.ins[p.Offset], abs, word.ARERelocatable)
	}

	ob, err := os.Create(ctx.file + ".ob")
	if err != nil {
		return &FatalError{msg: errors.Wrap(err, "create .ob failed").Error()}
	}
	obw := ioutil.NewErrWriter(ob)

	fmt.Fprintf(obw, " %s %s\n", word.EncodeAddr(icFinal), word.EncodeAddr(dcFinal))
	for i, w := range ctx.ins {
		fmt.Fprintf(obw, "%s\t%s\n", word.EncodeAddr(word.Origin+i), word.EncodeWord(w))
	}
	for i, w := range ctx.data {
		fmt.Fprintf(obw, "%s\t%s\n", word.EncodeAddr(word.Origin+icFinal+i), word.EncodeWord(w))
	}
	if obw.Err != nil {
		ob.Close()
		os.Remove(ctx.file + ".ob")
		return &FatalError{msg: obw.Err.Error()}
	}
	if err := ob.Close(); err != nil {
		os.Remove(ctx.file + ".ob")
		return &FatalError{msg: errors.Wrap(err, "close .ob failed").Error()}
	}

	for _, sym := range ctx.sym.all() {
		if sym.Linkage != LinkageEntry || sym.Kind == KindUnknown {
			continue
		}
		w, err := ent.writer()
		if err != nil {
			return &FatalError{msg: errors.Wrap(err, "open .ent failed").Error()}
		}
		abs := absoluteAddress(sym, icFinal)
		fmt.Fprintf(w, "%s %s\n", sym.Name, word.EncodeAddr(abs))
		if w.Err != nil {
			return &FatalError{msg: w.Err.Error()}
		}
	}

	ext.close()
	ent.close()

	if len(ctx.errs) > 0 {
		os.Remove(ctx.file + ".ob")
		ext.remove()
		ent.remove()
	}

	return nil
}

// absoluteAddress implements the origin-100 rule of spec.md §3: an
// instruction-kind symbol's address is its offset from the origin; a
// data-kind symbol's address follows the final instruction image.
func absoluteAddress(sym *Symbol, icFinal int) int {
	if sym.Kind == KindData {
		return word.Origin + icFinal + sym.Address
	}
	return word.Origin + sym.Address
}
