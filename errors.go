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
	`errors`

	`github.com/nyteshade/trampolines/internal/arch`
	`github.com/nyteshade/trampolines/internal/loader`
)

// ArityError reports a public argument count beyond what the build target's
// generator can express. Returned by Create before any memory is touched.
type ArityError = arch.ArityError

// MemoryError reports a refused OS memory operation. A "protect" failure
// has already released the affected region; nothing leaks.
type MemoryError = loader.MemoryError

// ErrUnsupported is returned by Create on build targets without a
// compiled-in generator.
var ErrUnsupported = errors.New("trampolines: no generator for this build target")
