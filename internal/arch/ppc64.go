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

// PPC64LEELFv2 binds a context under the little-endian ELFv2 convention:
// arguments in R3..R10, branch through CTR. The target address is built in
// R12 because ELFv2 callees recompute their TOC pointer from R12 at entry.
// The link register is left untouched, so the target's BLR returns to the
// original caller.
var PPC64LEELFv2 = Backend{
	Name:     "ppc64le-elfv2",
	MaxArity: 7,
	emit:     emitPPC64LE,
}

func emitPPC64LE(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.LittleEndian, 80)

	/* mr r(3+i+1), r(3+i), last argument first: or rA, rS, rS */
	for i := arity - 1; i >= 0; i-- {
		s := uint32(3 + i)
		w.w32(0x7c000378 | s<<21 | uint32(3+i+1)<<16 | s<<11)
	}

	ppcLoadImm64(w, 3, uint64(context))
	ppcLoadImm64(w, 12, uint64(target))

	w.w32(0x7d8903a6) // mtctr r12
	w.w32(0x4e800420) // bctr
	return w.b, nil
}

// ppcLoadImm64 emits the canonical five-instruction 64-bit immediate build:
// lis / ori the high half, shift it into place, oris / ori the low half.
func ppcLoadImm64(w *wbuf, rd uint32, v uint64) {
	w.w32(0x3c000000 | rd<<21 | uint32(v>>48&0xffff))         // lis    rd, v[63:48]
	w.w32(0x60000000 | rd<<21 | rd<<16 | uint32(v>>32&0xffff)) // ori    rd, rd, v[47:32]
	w.w32(0x780007c6 | rd<<21 | rd<<16)                        // rldicr rd, rd, 32, 31
	w.w32(0x64000000 | rd<<21 | rd<<16 | uint32(v>>16&0xffff)) // oris   rd, rd, v[31:16]
	w.w32(0x60000000 | rd<<21 | rd<<16 | uint32(v&0xffff))     // ori    rd, rd, v[15:0]
}
