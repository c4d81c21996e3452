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

// Package loader owns the executable memory that generated trampolines live
// in. A Region begins life readable and writable, receives its code exactly
// once, then flips to readable and executable for the rest of its life.
package loader

import (
	`fmt`
	`unsafe`
)

// Process-wide accounting, read by the debug package.
var (
	RegionCount int64
	RegionBytes int64
)

// Region is one page-granular block of process memory.
type Region struct {
	mem []byte
}

// Mem exposes the mapped view of the region. Writing through it is only
// legal before Executable; afterwards the pages are read-only.
func (self *Region) Mem() []byte {
	return self.mem
}

// Addr returns the base address of the mapping.
func (self *Region) Addr() uintptr {
	if len(self.mem) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&self.mem[0]))
}

// Size returns the page-rounded length of the mapping.
func (self *Region) Size() int {
	return len(self.mem)
}

// MemoryError reports a failed interaction with the OS memory facilities.
type MemoryError struct {
	Op   string
	Size int
	Err  error
}

func (self *MemoryError) Error() string {
	return fmt.Sprintf("MemoryError(%s, %d bytes): %v", self.Op, self.Size, self.Err)
}

func (self *MemoryError) Unwrap() error {
	return self.Err
}

func alignUp(n int, a int) int {
	return (n + a - 1) &^ (a - 1)
}
