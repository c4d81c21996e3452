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

// S390XELF binds a context under the s390x ELF convention: arguments in
// R2..R6, return address in R14. Instructions are emitted big-endian, the
// only such backend. The stub branches through R1 and never touches R14, so
// the target returns straight to the original caller.
var S390XELF = Backend{
	Name:     "s390x-elf",
	MaxArity: 4,
	emit:     emitS390X,
}

func emitS390X(target uintptr, context uintptr, arity int) ([]byte, error) {
	w := newWbuf(binary.BigEndian, 48)

	/* lgr r(2+i+1), r(2+i), last argument first */
	for i := arity - 1; i >= 0; i-- {
		w.b8(0xb9, 0x04, 0x00, byte(2+i+1)<<4|byte(2+i))
	}

	s390xLoadImm64(w, 2, uint64(context))
	s390xLoadImm64(w, 1, uint64(target))

	w.b8(0x07, 0xf1) // br r1
	return w.b, nil
}

// s390xLoadImm64 fills a register with IIHF (high word) then IILF (low word).
func s390xLoadImm64(w *wbuf, rd byte, v uint64) {
	w.b8(0xc0, rd<<4|0x08)
	w.w32(uint32(v >> 32))
	w.b8(0xc0, rd<<4|0x09)
	w.w32(uint32(v))
}
