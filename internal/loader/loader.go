//go:build !windows

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
	`unsafe`

	`golang.org/x/sys/unix`
)

// Reserve maps a page-rounded anonymous read-write region of at least size
// bytes. The region starts writable and non-executable; Executable performs
// the one-way flip.
func Reserve(size int) (*Region, error) {
	nb := alignUp(size, os.Getpagesize())

	mem, err := unix.Mmap(-1, 0, nb, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, &MemoryError{Op: "reserve", Size: nb, Err: err}
	}

	atomic.AddInt64(&RegionCount, 1)
	atomic.AddInt64(&RegionBytes, int64(nb))
	return &Region{mem: mem}, nil
}

// Executable transitions the region from read-write to read-execute, after
// synchronizing the instruction cache over the written range. The region is
// never left both writable and executable; if the protection change is
// refused the mapping is released before the error is returned.
func (self *Region) Executable() error {
	flushcache(uintptr(unsafe.Pointer(&self.mem[0])), uintptr(len(self.mem)))

	if err := unix.Mprotect(self.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		nb := len(self.mem)
		_ = self.Release()
		return &MemoryError{Op: "protect", Size: nb, Err: err}
	}

	return nil
}

// Release unmaps the region. Safe to call once per region only.
func (self *Region) Release() error {
	mem := self.mem
	self.mem = nil

	if mem == nil {
		return nil
	}

	atomic.AddInt64(&RegionCount, -1)
	atomic.AddInt64(&RegionBytes, -int64(len(mem)))

	if err := unix.Munmap(mem); err != nil {
		return &MemoryError{Op: "release", Size: len(mem), Err: err}
	}
	return nil
}
