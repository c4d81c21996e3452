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

package trampolines_test

import (
	`errors`
	`os`
	`testing`

	`github.com/nyteshade/trampolines`
	`github.com/nyteshade/trampolines/debug`
	`github.com/nyteshade/trampolines/internal/rt`
	`github.com/stretchr/testify/require`
)

//go:noinline
func targetStub(ctx uintptr, a uintptr, b uintptr) uintptr {
	return ctx + a + b
}

func mustSupport(t *testing.T) {
	t.Helper()
	if !trampolines.Supported() {
		t.Skip("no trampoline generator for this build target")
	}
}

func TestCreateFree(t *testing.T) {
	mustSupport(t)

	tr, err := trampolines.Create(rt.FuncAddr(targetStub), 0xdeadbeef, 2)
	require.NoError(t, err)
	require.NotNil(t, tr)

	require.NotZero(t, tr.Addr())
	require.NotNil(t, tr.Func())
	require.Greater(t, tr.Used(), 0)
	require.GreaterOrEqual(t, tr.Size(), tr.Used())
	require.Zero(t, tr.Size()%os.Getpagesize())
	require.Len(t, tr.Code(), tr.Used())

	require.NoError(t, trampolines.Free(tr))
}

func TestFreeNilIsNoop(t *testing.T) {
	require.NoError(t, trampolines.Free(nil))
}

func TestCreateArityError(t *testing.T) {
	mustSupport(t)

	_, err := trampolines.Create(rt.FuncAddr(targetStub), 0x1, trampolines.MaxArity()+1)
	var ae trampolines.ArityError
	require.True(t, errors.As(err, &ae))
	require.Equal(t, trampolines.Arch(), ae.Backend)
}

func TestCreateFreeCycleDoesNotLeak(t *testing.T) {
	mustSupport(t)

	before := debug.GetStats().Memory
	for i := 0; i < 256; i++ {
		tr, err := trampolines.Create(rt.FuncAddr(targetStub), uintptr(i), i%3)
		require.NoError(t, err)
		require.NoError(t, trampolines.Free(tr))
	}
	require.Equal(t, before, debug.GetStats().Memory)
}

func TestEveryArityCreates(t *testing.T) {
	mustSupport(t)

	for arity := 0; arity <= trampolines.MaxArity(); arity++ {
		tr, err := trampolines.Create(rt.FuncAddr(targetStub), 0xaabb, arity)
		require.NoError(t, err)
		require.NoError(t, trampolines.Free(tr))
	}
}

// Three trampolines of arities 0, 1, 2 built for one context validate as a
// group and tear down as a group through any member handle.
func TestScenarioBuildValidateTeardown(t *testing.T) {
	mustSupport(t)

	r := trampolines.NewRegistry()
	target := rt.FuncAddr(targetStub)

	var tk *trampolines.Tracker
	var handles []*trampolines.Trampoline
	for arity := 0; arity <= 2; arity++ {
		tr, next := r.CreateAndTrack(target, 0xaabb, arity, tk)
		require.NotNil(t, tr)
		require.NotNil(t, next)
		if tk != nil {
			require.Same(t, tk, next)
		}
		tk = next
		handles = append(handles, tr)
	}

	require.True(t, r.Validate(tk))
	require.Equal(t, 3, tk.Count())
	require.Equal(t, 0, tk.Failures())

	require.Equal(t, 3, r.FreeByTrampoline(handles[1]))
	require.Equal(t, 0, r.FreeByContext(0xaabb))
}

// Two successes and one recorded failure under one context roll back as a
// unit: Validate fails and the context is already gone from the registry.
func TestScenarioPartialFailureRollsBack(t *testing.T) {
	mustSupport(t)

	r := trampolines.NewRegistry()
	target := rt.FuncAddr(targetStub)

	_, tk := r.CreateAndTrack(target, 0xccdd, 0, nil)
	_, tk = r.CreateAndTrack(target, 0xccdd, 1, tk)
	require.Equal(t, 2, tk.Count())

	/* an over-arity request fails generation and records the failure */
	tr, tk := r.CreateAndTrack(target, 0xccdd, trampolines.MaxArity()+1, tk)
	require.Nil(t, tr)
	require.Equal(t, 1, tk.Failures())

	require.False(t, r.Validate(tk))
	require.Equal(t, 0, r.FreeByContext(0xccdd))
}
