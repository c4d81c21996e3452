//go:build !windows && !arm64 && !arm && !riscv64 && !ppc64le && !mips64le

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

// x86 snoops instruction fetch against data stores, and z/Architecture
// serializes instruction fetch across the mprotect trap, so freshly written
// code needs no explicit maintenance on these machines. Targets with no
// bound generator never load code at all.
func flushcache(addr uintptr, n uintptr) {}
