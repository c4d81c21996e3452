//go:build !windows && mips64le

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
	`golang.org/x/sys/unix`
)

// BCACHE asks cacheflush(2) for both the data and instruction caches.
const mipsBCache = 3

// flushcache writes back the data cache and invalidates the instruction
// cache over [addr, addr+n) through the MIPS cacheflush syscall.
func flushcache(addr uintptr, n uintptr) {
	unix.Syscall(unix.SYS_CACHEFLUSH, addr, n, mipsBCache)
}
