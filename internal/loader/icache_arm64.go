//go:build !windows && arm64

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

// flushcache cleans the data cache and invalidates the instruction cache
// over [addr, addr+n). arm64 does not keep the two coherent, so skipping
// this can execute stale bytes.
//
//go:noescape
func flushcache(addr uintptr, n uintptr)
