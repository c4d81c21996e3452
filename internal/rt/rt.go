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

// Package rt holds the narrow unsafe helpers shared by the loader and the
// code emitters. Nothing outside this package constructs raw slice headers.
package rt

import (
	`reflect`
	`unsafe`
)

type GoSlice struct {
	Ptr unsafe.Pointer
	Len int
	Cap int
}

type GoEface struct {
	Type unsafe.Pointer
	Value unsafe.Pointer
}

// BytesFrom builds a byte slice view over raw process memory. The caller
// guarantees the region stays mapped for the lifetime of the slice.
func BytesFrom(p unsafe.Pointer, n int, c int) (r []byte) {
	(*GoSlice)(unsafe.Pointer(&r)).Ptr = p
	(*GoSlice)(unsafe.Pointer(&r)).Len = n
	(*GoSlice)(unsafe.Pointer(&r)).Cap = c
	return
}

// MemFrom is BytesFrom over a bare address.
func MemFrom(addr uintptr, n int, c int) []byte {
	return BytesFrom(*(*unsafe.Pointer)(unsafe.Pointer(&addr)), n, c)
}

// FuncAddr returns the machine entry point of f. f must be a func value.
func FuncAddr(f interface{}) uintptr {
	if reflect.TypeOf(f).Kind() != reflect.Func {
		panic("rt: f is not a function")
	}
	ef := (*GoEface)(unsafe.Pointer(&f))
	return uintptr(*(*unsafe.Pointer)(ef.Value))
}
