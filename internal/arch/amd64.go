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

package arch

import (
	`github.com/chenzhuoyu/iasm/x86_64`
)

// AMD64SysV binds a context under the System V AMD64 calling convention
// (Linux, macOS, BSDs).
var AMD64SysV = Backend{
	Name:     "amd64-sysv",
	MaxArity: 8,
	emit:     emitAMD64SysV,
}

// AMD64Win64 binds a context under the Microsoft x64 calling convention.
var AMD64Win64 = Backend{
	Name:     "amd64-win64",
	MaxArity: 8,
	emit:     emitAMD64Win64,
}

var regsSysV = [6]x86_64.Register64{
	x86_64.RDI, x86_64.RSI, x86_64.RDX, x86_64.RCX, x86_64.R8, x86_64.R9,
}

var regsWin64 = [4]x86_64.Register64{
	x86_64.RCX, x86_64.RDX, x86_64.R8, x86_64.R9,
}

// emitAMD64SysV shifts the six register arguments up one place, spilling the
// sixth to a fresh stack slot when present. amd64 has a unified call stack,
// so the spill is made by removing the return address, pushing the spilled
// register, and pushing the return address back: existing stack arguments
// land one slot further from RSP without being copied, because RSP itself
// moved. R10 and R11 are scratch under this ABI; RAX is avoided since AL
// carries the vector-register count for variadic targets.
//
// The spill inserts an odd number of words, so the target sees RSP at
// 0 mod 16 instead of the usual 8 mod 16 at entry. Targets that derive
// aligned vector slots from entry alignment will fault at spilling arities.
func emitAMD64SysV(target uintptr, context uintptr, arity int) ([]byte, error) {
	p := x86_64.DefaultArch.CreateProgram()
	defer p.Free()

	/* spill the last register argument when every register is occupied */
	spill := arity >= len(regsSysV)
	if spill {
		p.POPQ(x86_64.R10)
		p.PUSHQ(x86_64.R9)
	}

	/* shift register arguments, last first */
	nr := arity
	if nr > len(regsSysV)-1 {
		nr = len(regsSysV) - 1
	}
	for i := nr - 1; i >= 0; i-- {
		p.MOVQ(regsSysV[i], regsSysV[i+1])
	}

	/* inject the context and transfer to the target */
	p.MOVQ(context, x86_64.RDI)
	if spill {
		p.PUSHQ(x86_64.R10)
	}
	p.MOVQ(target, x86_64.R11)
	p.JMPQ(x86_64.R11)
	return p.Assemble(0), nil
}

// emitAMD64Win64 shifts the four register arguments up one place. When all
// four are occupied the spilled R9 belongs in the first stack slot, which
// sits beyond the 32-byte shadow space; the stub stores it into the top
// shadow slot, then slides the return address down one word so that slot
// becomes the first stack argument. The store happens before the register
// shift can overwrite R9. Shadow-slot contents are callee scratch and need
// no preservation. As with the System V spill, the inserted word leaves the
// target's entry RSP at 0 mod 16 rather than 8 mod 16.
func emitAMD64Win64(target uintptr, context uintptr, arity int) ([]byte, error) {
	p := x86_64.DefaultArch.CreateProgram()
	defer p.Free()

	spill := arity >= len(regsWin64)
	if spill {
		p.MOVQ(x86_64.Ptr(x86_64.RSP, 0), x86_64.R10)
		p.MOVQ(x86_64.R9, x86_64.Ptr(x86_64.RSP, 32))
		p.SUBQ(8, x86_64.RSP)
		p.MOVQ(x86_64.R10, x86_64.Ptr(x86_64.RSP, 0))
	}

	nr := arity
	if nr > len(regsWin64)-1 {
		nr = len(regsWin64) - 1
	}
	for i := nr - 1; i >= 0; i-- {
		p.MOVQ(regsWin64[i], regsWin64[i+1])
	}

	p.MOVQ(context, x86_64.RCX)
	p.MOVQ(target, x86_64.R11)
	p.JMPQ(x86_64.R11)
	return p.Assemble(0), nil
}
