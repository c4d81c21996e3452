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

// Package trampolines synthesizes executable stubs at run time that bind a
// fixed context value to a target function: calling the stub calls the
// target with the context silently prepended as its first argument. A table
// of plain function pointers can this way behave like bound methods on an
// object, without language-level closures.
//
// Trampolines created for one logical context can be grouped in a Registry
// for all-or-nothing validation and bulk teardown; see Registry.
//
// The generated code, once created, is immutable and safe to invoke from
// any number of threads. The Registry itself carries no locks: callers that
// build or free trampolines from multiple goroutines must serialize those
// calls externally.
package trampolines

import (
	`unsafe`

	`github.com/nyteshade/trampolines/internal/arch`
	`github.com/nyteshade/trampolines/internal/loader`
)

// Trampoline is an opaque handle to one generated stub. Its identity is the
// base address of the executable block backing it.
type Trampoline struct {
	region *loader.Region
	used   int
}

// Addr returns the entry point of the stub.
func (self *Trampoline) Addr() uintptr {
	return self.region.Addr()
}

// Size returns the page-rounded size of the backing block.
func (self *Trampoline) Size() int {
	return self.region.Size()
}

// Used returns the number of bytes of code and literals actually emitted.
func (self *Trampoline) Used() int {
	return self.used
}

// Func returns the entry point as a C function pointer value, suitable for
// handing to foreign code expecting a callback.
func (self *Trampoline) Func() unsafe.Pointer {
	addr := self.Addr()
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

// Code returns a read-only view of the emitted bytes.
func (self *Trampoline) Code() []byte {
	return self.region.Mem()[:self.used]
}

// Supported reports whether this build target has a trampoline generator.
func Supported() bool {
	return arch.Host != nil
}

// Arch returns the name of the build target's generator, or an empty string
// when unsupported.
func Arch() string {
	if arch.Host == nil {
		return ""
	}
	return arch.Host.Name
}

// MaxArity returns the largest public argument count the build target's
// generator accepts.
func MaxArity() int {
	if arch.Host == nil {
		return 0
	}
	return arch.Host.MaxArity
}

// Create builds a trampoline that invokes target with context inserted
// before the caller's arity public arguments. On any failure every
// partially acquired resource is released before the error is returned;
// there is never a half-constructed trampoline.
//
// On amd64, arities that overflow the argument registers (6 and above under
// System V, 4 and above under Win64) reach the target with the stack one
// word off its usual 16-byte entry alignment, because the insertion pushes
// an odd number of words. Targets that rely on entry alignment for aligned
// vector stores cannot be bound at those arities.
func Create(target uintptr, context uintptr, arity int) (*Trampoline, error) {
	if arch.Host == nil {
		return nil, ErrUnsupported
	}
	return create(arch.Host, target, context, arity)
}

func create(backend *arch.Backend, target uintptr, context uintptr, arity int) (*Trampoline, error) {
	code, err := backend.Emit(target, context, arity)
	if err != nil {
		return nil, err
	}

	region, err := loader.Reserve(len(code))
	if err != nil {
		return nil, err
	}

	copy(region.Mem(), code)
	if err := region.Executable(); err != nil {
		/* Executable already released the region */
		return nil, err
	}
	return &Trampoline{region: region, used: len(code)}, nil
}

// Free releases the executable memory behind t. Passing nil is a no-op.
// The handle and every function pointer derived from it are dangling
// afterwards.
func Free(t *Trampoline) error {
	if t == nil || t.region == nil {
		return nil
	}
	return t.region.Release()
}
