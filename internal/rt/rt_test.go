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

package rt

import (
	`testing`
	`unsafe`

	`github.com/stretchr/testify/require`
)

func TestBytesFromAliasesMemory(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	view := BytesFrom(unsafe.Pointer(&src[0]), 4, 4)

	require.Equal(t, src, view)
	view[0] = 9
	require.EqualValues(t, 9, src[0])
}

func TestMemFromMatchesBytesFrom(t *testing.T) {
	src := []byte{5, 6, 7, 8}
	view := MemFrom(uintptr(unsafe.Pointer(&src[0])), 2, 4)

	require.Equal(t, []byte{5, 6}, view)
	require.Equal(t, 4, cap(view))
}

func TestFuncAddr(t *testing.T) {
	require.NotZero(t, FuncAddr(TestFuncAddr))
	require.Panics(t, func() { FuncAddr(42) })
}
