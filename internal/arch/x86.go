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
	`encoding/binary`
)

// X86CDecl binds a context under the 32-bit cdecl convention, where every
// argument lives on the stack. Insertion is uniform for any arity: remove
// the return address, push the context, push the return address back. The
// caller's arguments end up exactly one slot further from ESP.
var X86CDecl = Backend{
	Name:     "x86-cdecl",
	MaxArity: 8,
	emit:     emitX86CDecl,
}

func emitX86CDecl(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.LittleEndian, 16)
	w.b8(0x59)                          // pop  ecx
	w.b8(0x68)                          // push imm32
	w.w32(uint32(context))
	w.b8(0x51)                          // push ecx
	w.b8(0xb8)                          // mov  eax, imm32
	w.w32(uint32(target))
	w.b8(0xff, 0xe0)                    // jmp  eax
	return w.b, nil
}
