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

// Package debug exposes introspection over the trampoline allocator: live
// allocation statistics and annotated disassembly of generated stubs.
package debug

import (
	`sync/atomic`

	`github.com/nyteshade/trampolines/internal/loader`
)

// A Stats records statistics about the executable memory allocator.
type Stats struct {
	Memory MemStats
}

// A MemStats records the live trampoline regions and their mapped bytes.
type MemStats struct {
	Alloc int
	Count int
}

// GetStats returns statistics of the trampoline allocator.
func GetStats() Stats {
	return Stats{
		Memory: MemStats{
			Count: int(atomic.LoadInt64(&loader.RegionCount)),
			Alloc: int(atomic.LoadInt64(&loader.RegionBytes)),
		},
	}
}
