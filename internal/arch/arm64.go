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

// ARM64AAPCS64 binds a context under AAPCS64 (Linux, macOS and Windows all
// pass the first eight integer arguments in X0..X7). The stub tail-branches
// through X16 (IP0, reserved for exactly this kind of veneer), so the
// target's RET goes straight back through the caller's untouched LR. With
// no way to grow the caller's frame under a tail branch, arguments can
// never spill: the maximum public arity is the register count less one.
var ARM64AAPCS64 = Backend{
	Name:     "arm64-aapcs64",
	MaxArity: 7,
	emit:     emitARM64,
}

func emitARM64(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.LittleEndian, 64)

	/* shift X0..X(arity-1) up one register, last first: MOV Xd, Xm */
	for i := arity - 1; i >= 0; i-- {
		w.w32(0xaa0003e0 | uint32(i)<<16 | uint32(i+1))
	}

	/* arm64 has no 64-bit load-immediate; build the context in X0 and the
	 * target in X16 from four 16-bit pieces each */
	arm64MovImm64(w, 0, uint64(context))
	arm64MovImm64(w, 16, uint64(target))

	/* br x16 */
	w.w32(0xd61f0000 | 16<<5)
	return w.b, nil
}

// arm64MovImm64 emits MOVZ plus three MOVKs loading v into Xd.
func arm64MovImm64(w *wbuf, rd uint32, v uint64) {
	w.w32(0xd2800000 | uint32(v&0xffff)<<5 | rd)
	w.w32(0xf2a00000 | uint32(v>>16&0xffff)<<5 | rd)
	w.w32(0xf2c00000 | uint32(v>>32&0xffff)<<5 | rd)
	w.w32(0xf2e00000 | uint32(v>>48&0xffff)<<5 | rd)
}
