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

// MIPS64LEN64 binds a context under the n64 convention: arguments in A0..A7
// (r4..r11). The target address goes through T9 (r25) because n64 callees
// expect T9 to hold their own entry address for GP setup. JR has a branch
// delay slot, filled with a NOP. RA is untouched, so the target's JR RA
// returns to the original caller.
var MIPS64LEN64 = Backend{
	Name:     "mips64le-n64",
	MaxArity: 7,
	emit:     emitMIPS64LE,
}

const (
	mipsA0 = 4
	mipsT9 = 25
)

func emitMIPS64LE(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.LittleEndian, 96)

	/* move r(d), r(s), last argument first: or rd, rs, zero */
	for i := arity - 1; i >= 0; i-- {
		w.w32(uint32(mipsA0+i)<<21 | uint32(mipsA0+i+1)<<11 | 0x25)
	}

	mipsLoadImm64(w, mipsA0, uint64(context))
	mipsLoadImm64(w, mipsT9, uint64(target))

	w.w32(uint32(mipsT9)<<21 | 0x08) // jr t9
	w.w32(0x00000000)                // nop (delay slot)
	return w.b, nil
}

// mipsLoadImm64 builds a 64-bit immediate 16 bits at a time: lui, then
// alternating ori and dsll-by-16.
func mipsLoadImm64(w *wbuf, rd uint32, v uint64) {
	w.w32(0x3c000000 | rd<<16 | uint32(v>>48&0xffff))          // lui  rd, v[63:48]
	w.w32(0x34000000 | rd<<21 | rd<<16 | uint32(v>>32&0xffff)) // ori  rd, rd, v[47:32]
	w.w32(rd<<16 | rd<<11 | 16<<6 | 0x38)                      // dsll rd, rd, 16
	w.w32(0x34000000 | rd<<21 | rd<<16 | uint32(v>>16&0xffff)) // ori  rd, rd, v[31:16]
	w.w32(rd<<16 | rd<<11 | 16<<6 | 0x38)                      // dsll rd, rd, 16
	w.w32(0x34000000 | rd<<21 | rd<<16 | uint32(v&0xffff))     // ori  rd, rd, v[15:0]
}
