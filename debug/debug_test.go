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

package debug_test

import (
	`bytes`
	`runtime`
	`strings`
	`testing`

	`github.com/nyteshade/trampolines`
	`github.com/nyteshade/trampolines/debug`
	`github.com/stretchr/testify/require`
)

func TestStatsFollowLifecycle(t *testing.T) {
	if !trampolines.Supported() {
		t.Skip("no trampoline generator for this build target")
	}

	before := debug.GetStats()
	tr, err := trampolines.Create(0x400000, 0x1, 0)
	require.NoError(t, err)

	mid := debug.GetStats()
	require.Equal(t, before.Memory.Count+1, mid.Memory.Count)
	require.Equal(t, before.Memory.Alloc+tr.Size(), mid.Memory.Alloc)

	require.NoError(t, trampolines.Free(tr))
	require.Equal(t, before, debug.GetStats())
}

func TestDumpListsEveryInstruction(t *testing.T) {
	if !trampolines.Supported() {
		t.Skip("no trampoline generator for this build target")
	}

	tr, err := trampolines.Create(0x400000, 0xaabb, 2)
	require.NoError(t, err)
	defer trampolines.Free(tr)

	var buf bytes.Buffer
	require.NoError(t, debug.Dump(&buf, tr))

	out := buf.String()
	require.Contains(t, out, "trampoline ")
	require.Contains(t, out, trampolines.Arch())
	if runtime.GOARCH == "amd64" {
		require.Contains(t, strings.ToLower(out), "jmp")
	}
}
