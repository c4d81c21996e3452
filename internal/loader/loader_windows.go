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

package loader

import (
	`os`
	`sync/atomic`
	`syscall`
	`unsafe`

	`github.com/nyteshade/trampolines/internal/rt`
)

const (
	MEM_COMMIT  = 0x00001000
	MEM_RESERVE = 0x00002000
	MEM_RELEASE = 0x00008000
)

var (
	libKernel32                       = syscall.NewLazyDLL("KERNEL32.DLL")
	libKernel32_VirtualAlloc          = libKernel32.NewProc("VirtualAlloc")
	libKernel32_VirtualProtect        = libKernel32.NewProc("VirtualProtect")
	libKernel32_VirtualFree           = libKernel32.NewProc("VirtualFree")
	libKernel32_GetCurrentProcess     = libKernel32.NewProc("GetCurrentProcess")
	libKernel32_FlushInstructionCache = libKernel32.NewProc("FlushInstructionCache")
)

// Reserve commits a page-rounded read-write block of at least size bytes.
func Reserve(size int) (*Region, error) {
	nb := alignUp(size, os.Getpagesize())

	mm, _, err := libKernel32_VirtualAlloc.Call(0, uintptr(nb), MEM_COMMIT|MEM_RESERVE, syscall.PAGE_READWRITE)
	if mm == 0 {
		return nil, &MemoryError{Op: "reserve", Size: nb, Err: err}
	}

	atomic.AddInt64(&RegionCount, 1)
	atomic.AddInt64(&RegionBytes, int64(nb))
	return &Region{mem: rt.MemFrom(mm, nb, nb)}, nil
}

// Executable asks the OS to flush the instruction cache over the written
// range and then flips the block from read-write to execute-read. On a
// refused protection change the block is released before the error returns.
func (self *Region) Executable() error {
	mm := self.Addr()
	nb := len(self.mem)

	hp, _, _ := libKernel32_GetCurrentProcess.Call()
	libKernel32_FlushInstructionCache.Call(hp, mm, uintptr(nb))

	var oldPf uintptr
	if r1, _, err := libKernel32_VirtualProtect.Call(mm, uintptr(nb), syscall.PAGE_EXECUTE_READ, uintptr(unsafe.Pointer(&oldPf))); r1 == 0 {
		_ = self.Release()
		return &MemoryError{Op: "protect", Size: nb, Err: err}
	}

	return nil
}

// Release decommits the block. Safe to call once per region only.
func (self *Region) Release() error {
	mm := self.Addr()
	nb := len(self.mem)
	self.mem = nil

	if mm == 0 {
		return nil
	}

	atomic.AddInt64(&RegionCount, -1)
	atomic.AddInt64(&RegionBytes, -int64(nb))

	if r1, _, err := libKernel32_VirtualFree.Call(mm, 0, MEM_RELEASE); r1 == 0 {
		return &MemoryError{Op: "release", Size: nb, Err: err}
	}
	return nil
}
