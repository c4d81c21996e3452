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

package trampolines

import (
	`testing`

	`github.com/brianvoe/gofakeit/v6`
	`github.com/stretchr/testify/require`
)

// handle fabricates a tracked-but-unbacked trampoline, letting registry
// semantics run on build targets without a generator.
func handle() *Trampoline {
	return &Trampoline{}
}

func TestTrackGroupsByContext(t *testing.T) {
	r := NewRegistry()

	tk := r.Track(handle(), 0x1000, nil)
	require.NotNil(t, tk)
	require.Same(t, tk, r.Track(handle(), 0x1000, nil))
	require.Same(t, tk, r.Track(handle(), 0x1000, tk))

	require.Equal(t, 3, tk.Count())
	require.Equal(t, 0, tk.Failures())
	require.Equal(t, uintptr(0x1000), tk.Context())
	require.NotZero(t, tk.ID())

	/* a second context gets its own tracker */
	other := r.Track(handle(), 0x2000, nil)
	require.NotSame(t, tk, other)
	require.NotEqual(t, tk.ID(), other.ID())
}

func TestTrackNilRecordsFailure(t *testing.T) {
	r := NewRegistry()

	tk := r.Track(handle(), 0x1000, nil)
	require.Same(t, tk, r.Track(nil, 0x1000, nil))
	require.Equal(t, 1, tk.Count())
	require.Equal(t, 1, tk.Failures())

	/* a failure may also open the tracker */
	tk2 := r.Track(nil, 0x2000, nil)
	require.NotNil(t, tk2)
	require.Equal(t, 0, tk2.Count())
	require.Equal(t, 1, tk2.Failures())
}

func TestValidateCleanTrackerIsUntouched(t *testing.T) {
	r := NewRegistry()

	tk := r.Track(handle(), 0x1000, nil)
	r.Track(handle(), 0x1000, tk)

	require.True(t, r.Validate(tk))
	require.Equal(t, 2, tk.Count())
	require.Same(t, tk, r.lookup(0x1000))
}

func TestValidateRollsBackOnAnyFailure(t *testing.T) {
	r := NewRegistry()

	tk := r.Track(handle(), 0x1000, nil)
	r.Track(handle(), 0x1000, tk)
	r.Track(nil, 0x1000, tk)

	require.False(t, r.Validate(tk))
	require.Equal(t, 0, tk.Count())
	require.Nil(t, r.lookup(0x1000))
	require.Equal(t, 0, r.FreeByContext(0x1000))
}

func TestSentinelIsExemptFromEverything(t *testing.T) {
	r := NewRegistry()
	s := r.Sentinel()

	require.True(t, r.Validate(nil))
	require.True(t, r.Validate(s))
	require.Equal(t, 0, r.FreeByContext(s.Context()))
	require.Same(t, s, r.Sentinel())

	/* a sentinel hint falls back to ordinary lookup */
	tk := r.Track(handle(), 0x1000, s)
	require.NotSame(t, s, tk)
	require.Equal(t, 1, tk.Count())
}

func TestFreeByContext(t *testing.T) {
	r := NewRegistry()

	for i := 0; i < 3; i++ {
		r.Track(handle(), 0x1000, nil)
	}
	r.Track(handle(), 0x2000, nil)

	require.Equal(t, 3, r.FreeByContext(0x1000))
	require.Equal(t, 0, r.FreeByContext(0x1000))
	require.Nil(t, r.lookup(0x1000))
	require.NotNil(t, r.lookup(0x2000))
}

func TestFreeByTrampolineFreesWholeGroup(t *testing.T) {
	r := NewRegistry()

	member := handle()
	r.Track(handle(), 0x1000, nil)
	r.Track(member, 0x1000, nil)
	r.Track(handle(), 0x1000, nil)

	require.Equal(t, 3, r.FreeByTrampoline(member))
	require.Nil(t, r.lookup(0x1000))
	require.Equal(t, 0, r.FreeByTrampoline(member))
	require.Equal(t, 0, r.FreeByTrampoline(nil))
}

func TestLookupEquivalence(t *testing.T) {
	r := NewRegistry()
	n := gofakeit.Number(1, 8)

	var byCtx, byMember []*Trampoline
	for i := 0; i < n; i++ {
		byCtx = append(byCtx, handle())
		byMember = append(byMember, handle())
	}
	for _, h := range byCtx {
		r.Track(h, 0x1000, nil)
	}
	for _, h := range byMember {
		r.Track(h, 0x2000, nil)
	}

	require.Equal(t, n, r.FreeByContext(0x1000))
	require.Equal(t, n, r.FreeByTrampoline(byMember[n-1]))
}

func TestRegistryUnlinkKeepsTailAppendable(t *testing.T) {
	r := NewRegistry()

	r.Track(handle(), 0x1000, nil)
	r.Track(handle(), 0x2000, nil)
	require.Equal(t, 1, r.FreeByContext(0x2000))

	/* tail was the freed tracker; the list must keep accepting appends */
	tk := r.Track(handle(), 0x3000, nil)
	require.Same(t, tk, r.lookup(0x3000))
	require.Equal(t, 1, r.FreeByContext(0x1000))
	require.Equal(t, 1, r.FreeByContext(0x3000))
}
