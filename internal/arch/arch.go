/*
 * Copyright 2025 Nyteshade Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package arch contains one trampoline emitter per supported (ISA, ABI)
// pair. Every emitter is a pure function from (target, context, arity) to a
// byte sequence, so all of them compile and test on every host; the backend
// actually used by a build is bound once, at build time, in the host_*.go
// files.
//
// All emitters follow the same plan: shift the declared public arguments one
// location up the calling convention's argument list (last argument first),
// write the bound context into the argument-0 location, then transfer
// control to the target so that the target's own return goes straight back
// to the original caller.
package arch

import (
	`encoding/binary`
	`fmt`

	`github.com/bytedance/gopkg/lang/dirtmake`
)

// Backend is one (ISA, ABI) trampoline generator.
type Backend struct {
	Name     string
	MaxArity int
	emit     func(target uintptr, context uintptr, arity int) ([]byte, error)
}

// Emit synthesizes the stub bytes binding context as the hidden first
// argument of target. The arity is validated here, once, so the individual
// emitters may assume it is in range.
func (self *Backend) Emit(target uintptr, context uintptr, arity int) ([]byte, error) {
	if arity < 0 || arity > self.MaxArity {
		return nil, ArityError{Backend: self.Name, Arity: arity, Max: self.MaxArity}
	}
	return self.emit(target, context, arity)
}

// Backends lists every compiled-in generator, for tests and debug tooling.
var Backends = []*Backend{
	&AMD64SysV,
	&AMD64Win64,
	&X86CDecl,
	&ARM64AAPCS64,
	&ARMAAPCS32,
	&RISCV64LP64,
	&PPC64LEELFv2,
	&MIPS64LEN64,
	&S390XELF,
}

// ArityError reports a declared public argument count the backend cannot
// express. Generation fails before any memory is touched.
type ArityError struct {
	Backend string
	Arity   int
	Max     int
}

func (self ArityError) Error() string {
	return fmt.Sprintf("ArityError(%s): %d public arguments, at most %d supported", self.Backend, self.Arity, self.Max)
}

// wbuf accumulates instruction words in the target's byte order.
type wbuf struct {
	b []byte
	o binary.AppendByteOrder
}

func newWbuf(o binary.AppendByteOrder, hint int) *wbuf {
	return &wbuf{b: dirtmake.Bytes(0, hint), o: o}
}

func (self *wbuf) b8(v ...byte) {
	self.b = append(self.b, v...)
}

func (self *wbuf) w32(v uint32) {
	self.b = self.o.AppendUint32(self.b, v)
}

func (self *wbuf) w64(v uint64) {
	self.b = self.o.AppendUint64(self.b, v)
}
