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

// RISCV64LP64 binds a context under the LP64 convention: arguments in
// A0..A7 (x10..x17). Rather than the six-instruction immediate chains this
// ISA would need per address, the stub takes its own address with AUIPC and
// loads both 64-bit literals from an aligned pool after the code, then
// tail-jumps through T1 so the target returns on the caller's RA.
var RISCV64LP64 = Backend{
	Name:     "riscv64-lp64",
	MaxArity: 7,
	emit:     emitRISCV64,
}

const (
	riscvA0 = 10 // x10
	riscvT0 = 5  // x5
	riscvT1 = 6  // x6
)

func emitRISCV64(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.LittleEndian, 64)

	/* mv a(i+1), a(i), last argument first: addi rd, rs, 0 */
	for i := arity - 1; i >= 0; i-- {
		w.w32(uint32(riscvA0+i)<<15 | uint32(riscvA0+i+1)<<7 | 0x13)
	}

	/* auipc t0, 0 anchors the literal pool offsets */
	base := len(w.b)
	w.w32(uint32(riscvT0)<<7 | 0x17)

	/* the pool follows the four fixed instructions, padded to 8 bytes */
	pool := (base + 16 + 7) &^ 7

	w.w32(riscvLd(riscvA0, riscvT0, int32(pool-base)))   // ld a0, ctx
	w.w32(riscvLd(riscvT1, riscvT0, int32(pool-base+8))) // ld t1, target
	w.w32(uint32(riscvT1)<<15 | 0x67)                    // jalr x0, 0(t1)

	for len(w.b) < pool {
		w.w32(0x00000013) // nop
	}
	w.w64(uint64(context))
	w.w64(uint64(target))
	return w.b, nil
}

func riscvLd(rd int, rs int, off int32) uint32 {
	return uint32(off&0xfff)<<20 | uint32(rs)<<15 | 3<<12 | uint32(rd)<<7 | 0x03
}
