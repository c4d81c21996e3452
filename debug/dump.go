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

package debug

import (
	`encoding/binary`
	`fmt`
	`io`
	`runtime`

	`github.com/klauspost/cpuid/v2`
	`github.com/nyteshade/trampolines`
	`golang.org/x/arch/arm64/arm64asm`
	`golang.org/x/arch/ppc64/ppc64asm`
	`golang.org/x/arch/x86/x86asm`
)

const (
	_MaxByte = 10
)

// Dump writes an annotated listing of t's generated code: a header naming
// the generator (and the CPU on x86 hosts), then one line per instruction
// with address, raw bytes and GNU-syntax disassembly. Architectures without
// a disassembler in the toolchain get a plain hex listing.
func Dump(w io.Writer, t *trampolines.Trampoline) error {
	if _, err := fmt.Fprintf(w, "trampoline %#x: %d bytes (%s)\n", t.Addr(), t.Used(), trampolines.Arch()); err != nil {
		return err
	}
	if cpuid.CPU.BrandName != "" && (runtime.GOARCH == "amd64" || runtime.GOARCH == "386") {
		if _, err := fmt.Fprintf(w, "cpu: %s\n", cpuid.CPU.BrandName); err != nil {
			return err
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		return dumpX86(w, t)
	case "arm64":
		return dumpARM64(w, t)
	case "ppc64le":
		return dumpPPC64(w, t)
	default:
		return dumpHex(w, t)
	}
}

func line(w io.Writer, addr uintptr, code []byte, dis string) error {
	pad := _MaxByte - len(code)
	if pad < 0 {
		pad = 0
	}
	_, err := fmt.Fprintf(w, "0x%08x :", addr)
	if err != nil {
		return err
	}
	for _, v := range code {
		if _, err = fmt.Fprintf(w, " %02x", v); err != nil {
			return err
		}
	}
	for i := 0; i < pad; i++ {
		if _, err = fmt.Fprintf(w, "   "); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "    %s\n", dis)
	return err
}

func dumpX86(w io.Writer, t *trampolines.Trampoline) error {
	pc := 0
	mode := 64
	if runtime.GOARCH == "386" {
		mode = 32
	}
	code := t.Code()
	for pc < len(code) {
		i, err := x86asm.Decode(code[pc:], mode)
		if err != nil {
			return err
		}
		dis := x86asm.GNUSyntax(i, uint64(t.Addr())+uint64(pc), nil)
		if err := line(w, t.Addr()+uintptr(pc), code[pc:pc+i.Len], dis); err != nil {
			return err
		}
		pc += i.Len
	}
	return nil
}

func dumpARM64(w io.Writer, t *trampolines.Trampoline) error {
	code := t.Code()
	for pc := 0; pc+4 <= len(code); pc += 4 {
		i, err := arm64asm.Decode(code[pc : pc+4])
		if err != nil {
			/* trailing literal data is not decodable */
			return dumpHexFrom(w, t, pc)
		}
		if err := line(w, t.Addr()+uintptr(pc), code[pc:pc+4], arm64asm.GNUSyntax(i)); err != nil {
			return err
		}
	}
	return nil
}

func dumpPPC64(w io.Writer, t *trampolines.Trampoline) error {
	code := t.Code()
	for pc := 0; pc+4 <= len(code); pc += 4 {
		i, err := ppc64asm.Decode(code[pc:pc+4], binary.LittleEndian)
		if err != nil {
			return dumpHexFrom(w, t, pc)
		}
		if err := line(w, t.Addr()+uintptr(pc), code[pc:pc+4], ppc64asm.GNUSyntax(i, uint64(t.Addr())+uint64(pc))); err != nil {
			return err
		}
	}
	return nil
}

func dumpHex(w io.Writer, t *trampolines.Trampoline) error {
	return dumpHexFrom(w, t, 0)
}

func dumpHexFrom(w io.Writer, t *trampolines.Trampoline, pc int) error {
	code := t.Code()
	for ; pc < len(code); pc += _MaxByte {
		end := pc + _MaxByte
		if end > len(code) {
			end = len(code)
		}
		if err := line(w, t.Addr()+uintptr(pc), code[pc:end], ".data"); err != nil {
			return err
		}
	}
	return nil
}
