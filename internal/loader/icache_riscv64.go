//go:build !windows && riscv64

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

// flushcache synchronizes the instruction stream over [addr, addr+n).
// fence.i only orders the executing hart, so Linux exposes a dedicated
// syscall that reaches every hart the process may migrate to; flags zero
// means all threads.
func flushcache(addr uintptr, n uintptr) {
	unix.Syscall(unix.SYS_RISCV_FLUSH_ICACHE, addr, addr+n, 0)
}
