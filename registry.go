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

// allocationNode is one link in a tracker's list, wrapping exactly one
// trampoline. It lives and dies with the trampoline it wraps.
type allocationNode struct {
	tramp *Trampoline
	next  *allocationNode
}

// Tracker groups every trampoline created for one logical context, usually
// one object instance under construction. A tracker with zero failures has
// seen every create-and-track call for its context succeed; any recorded
// failure condemns the whole group at Validate time.
type Tracker struct {
	context  uintptr
	id       uint64
	count    int
	failures int
	head     *allocationNode
	tail     *allocationNode
	next     *Tracker
}

// Context returns the opaque identity the tracker groups by. The registry
// only ever compares it; it is never dereferenced.
func (self *Tracker) Context() uintptr {
	return self.context
}

// ID returns the tracker's locally-unique identifier.
func (self *Tracker) ID() uint64 {
	return self.id
}

// Count returns the number of trampolines tracked so far.
func (self *Tracker) Count() int {
	return self.count
}

// Failures returns the number of failed creation attempts recorded for this
// context. Zero is the authoritative signal of validity.
func (self *Tracker) Failures() int {
	return self.failures
}

func (self *Tracker) append(t *Trampoline) {
	n := &allocationNode{tramp: t}
	if self.tail == nil {
		self.head = n
	} else {
		self.tail.next = n
	}
	self.tail = n
	self.count++
}

// releaseAll frees every tracked trampoline and drops the node list.
// Returns the number of trampolines freed.
func (self *Tracker) releaseAll() int {
	nf := 0
	for n := self.head; n != nil; n = n.next {
		_ = Free(n.tramp)
		nf++
	}
	self.head = nil
	self.tail = nil
	self.count = 0
	return nf
}

// Registry is the collection of live trackers. It holds one permanent
// sentinel tracker that is never freed, so free and validate calls against
// a nil or no-op tracker are always harmless.
//
// A Registry has no internal locking. Creating, validating and freeing
// trampolines from multiple goroutines requires external serialization
// around the whole create-track-validate or free sequence.
type Registry struct {
	head   *Tracker // sentinel, permanent
	tail   *Tracker
	nextid uint64
}

// NewRegistry returns a registry seeded with its permanent sentinel.
func NewRegistry() *Registry {
	s := &Tracker{}
	return &Registry{head: s, tail: s, nextid: 1}
}

// Default is the process-wide registry. Its sentinel lives for the process
// lifetime.
var Default = NewRegistry()

// Sentinel returns the registry's permanent no-op tracker.
func (self *Registry) Sentinel() *Tracker {
	return self.head
}

// lookup scans for the tracker owning context. At most one exists.
func (self *Registry) lookup(context uintptr) *Tracker {
	for t := self.head.next; t != nil; t = t.next {
		if t.context == context {
			return t
		}
	}
	return nil
}

func (self *Registry) insert(context uintptr) *Tracker {
	t := &Tracker{context: context, id: self.nextid}
	self.nextid++
	self.tail.next = t
	self.tail = t
	return t
}

// unlink removes t from the registry list. The sentinel is never unlinked.
func (self *Registry) unlink(t *Tracker) {
	for p := self.head; p.next != nil; p = p.next {
		if p.next == t {
			p.next = t.next
			if self.tail == t {
				self.tail = p
			}
			t.next = nil
			return
		}
	}
}

// Track records tramp under the tracker owning context, creating the
// tracker on first use. hint short-circuits the lookup when the caller
// already holds the tracker it is building.
//
// A nil tramp records a failed creation attempt instead of aborting: the
// failure count rises and the caller can keep attempting the rest of the
// batch, deferring the overall verdict to Validate.
func (self *Registry) Track(tramp *Trampoline, context uintptr, hint *Tracker) *Tracker {
	t := hint
	if t == nil || t == self.head {
		t = self.lookup(context)
	}
	if t == nil {
		t = self.insert(context)
	}

	if tramp == nil {
		t.failures++
		return t
	}

	t.append(tramp)
	return t
}

// CreateAndTrack composes Create with Track: the one call used per method
// when building an object's table. A creation failure is not surfaced here;
// it is absorbed into the tracker's failure count and reported by Validate,
// so a constructor can attempt its whole batch before checking.
func (self *Registry) CreateAndTrack(target uintptr, context uintptr, arity int, hint *Tracker) (*Trampoline, *Tracker) {
	tramp, err := Create(target, context, arity)
	if err != nil {
		tramp = nil
	}
	return tramp, self.Track(tramp, context, hint)
}

// Validate delivers the batch verdict for t. A nil tracker and the sentinel
// are always valid and never mutated. A tracker with recorded failures is
// rolled back: every tracked trampoline is freed, the tracker leaves the
// registry, and Validate reports false. A clean tracker is left untouched;
// the caller owns it until an eventual FreeByContext or FreeByTrampoline.
func (self *Registry) Validate(t *Tracker) bool {
	if t == nil || t == self.head {
		return true
	}
	if t.failures == 0 {
		return true
	}

	t.releaseAll()
	self.unlink(t)
	return false
}

// FreeByContext tears down the tracker owning context: every trampoline is
// freed, the tracker leaves the registry, and the number of trampolines
// freed is returned. Unknown contexts and the sentinel context return 0.
func (self *Registry) FreeByContext(context uintptr) int {
	t := self.lookup(context)
	if t == nil || t == self.head {
		return 0
	}

	nf := t.releaseAll()
	self.unlink(t)
	return nf
}

// FreeByTrampoline tears down the whole group that tramp belongs to,
// exactly as FreeByContext on the owning context. A consumer can this way
// destroy an entire method table by handing back any one of its method
// pointers.
func (self *Registry) FreeByTrampoline(tramp *Trampoline) int {
	if tramp == nil {
		return 0
	}
	for t := self.head.next; t != nil; t = t.next {
		for n := t.head; n != nil; n = n.next {
			if n.tramp == tramp {
				nf := t.releaseAll()
				self.unlink(t)
				return nf
			}
		}
	}
	return 0
}
