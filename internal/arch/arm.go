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

// ARMAAPCS32 binds a context under 32-bit AAPCS: arguments in R0..R3, tail
// transfer through IP (R12), the intra-procedure scratch register. The
// context and target are fetched PC-relative from a two-word literal pool
// appended after the code, the classic veneer shape on this ISA.
var ARMAAPCS32 = Backend{
	Name:     "arm-aapcs32",
	MaxArity: 3,
	emit:     emitARM,
}

func emitARM(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.LittleEndian, 40)

	/* mov r(d), r(m), last argument first */
	for i := arity - 1; i >= 0; i-- {
		w.w32(0xe1a00000 | uint32(i+1)<<12 | uint32(i))
	}

	/* both loads sit a fixed two words plus pipeline offset before their
	 * literals, so the displacement is always 4 */
	w.w32(0xe59f0004)     // ldr r0, [pc, #4]  -> context
	w.w32(0xe59fc004)     // ldr ip, [pc, #4]  -> target
	w.w32(0xe12fff1c)     // bx  ip

	w.w32(uint32(context))
	w.w32(uint32(target))
	return w.b, nil
}
