//go:build !windows && arm

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

// __ARM_NR_cacheflush, an ARM-private Linux syscall that lives outside the
// ordinary table. The required cache maintenance instructions are privileged
// on ARMv7, so user space must go through the kernel. It takes [start, end)
// rather than a length.
const armCacheflush = 0x0f0002

func flushcache(addr uintptr, n uintptr) {
	unix.Syscall(armCacheflush, addr, addr+n, 0)
}
