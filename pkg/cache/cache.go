// Copyright 2025 The PageCache Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cache

import (
	"fmt"
	"strings"

	"github.com/pagecache/pagecache/golibs/errors"
	"github.com/pagecache/pagecache/golibs/logging"
)

type (
	// Cache implements the container with limited size capacity and LRU (Least Recently Used)
	// pull out discipline. Insert, Lookup and the eviction are all O(1).
	//
	// The recency order is kept as a doubly-linked list threaded through the slots of the
	// arena slice. The head is the most recently used entry, the tail is the eviction victim.
	// The index map resolves a key to its slot, so the index and the recency list always
	// describe the same set of entries.
	//
	// The zero capacity is allowed: such cache retains nothing, every inserted entry
	// immediately becomes its own eviction victim (the OnEvict callback still observes it).
	Cache[K comparable, V any] struct {
		capacity int
		index    map[K]int32
		arena    []entry[K, V]
		free     int32
		head     int32
		tail     int32
		onEvictF OnEvictF[K, V]
		trace    logging.Logger
	}

	// OnEvictF function type for the callback invoked for every entry leaving the cache:
	// by the eviction, Remove(), Clear() or Build()
	OnEvictF[K comparable, V any] func(k K, v V)

	// entry occupies one slot of the arena. Free slots are chained through the next field
	entry[K comparable, V any] struct {
		key  K
		val  V
		prev int32
		next int32
	}
)

// nilIdx marks the absent slot reference
const nilIdx = int32(-1)

// New creates the new Cache object with the provided capacity. A negative
// capacity is treated as 0
func New[K comparable, V any](capacity int) *Cache[K, V] {
	c := new(Cache[K, V])
	c.Build(capacity)
	return c
}

// OnEvict sets the callback invoked for every entry leaving the cache. Passing
// nil turns the notifications off
func (c *Cache[K, V]) OnEvict(f OnEvictF[K, V]) {
	c.onEvictF = f
}

// SetTraceLog turns on dumping the cache state to the log after every mutating
// operation. The dump is written on the TRACE level only. Passing nil turns
// the dumps off
func (c *Cache[K, V]) SetTraceLog(log logging.Logger) {
	c.trace = log
}

// Build (re)initializes the cache to the provided capacity. All retained entries
// are released through the OnEvict callback, least recently used first. The call
// is idempotent and it cannot fail, any non-negative capacity is acceptable.
// A negative capacity is treated as 0
func (c *Cache[K, V]) Build(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if c.index != nil {
		c.Clear()
	}
	c.capacity = capacity
	c.index = make(map[K]int32)
	c.arena = nil
	c.free, c.head, c.tail = nilIdx, nilIdx, nilIdx
	c.dump("Build")
}

// Destruct empties the cache, releasing all retained entries, and resets the
// capacity to 0. Same as Build(0)
func (c *Cache[K, V]) Destruct() {
	c.Build(0)
}

// Insert stores the value v for the key k and makes the entry the most recently
// used one. If the key is already in the cache, its value is replaced in place,
// the entry count doesn't change and no eviction happens. If the key is new and
// the cache is on its capacity, the least recently used entry is evicted first.
// The function cannot fail
func (c *Cache[K, V]) Insert(k K, v V) {
	if idx, ok := c.index[k]; ok {
		c.arena[idx].val = v
		c.promote(idx)
		c.dump("Insert")
		return
	}
	if c.capacity == 0 {
		// the new entry would be the victim of its own insert, so nothing is retained
		if c.onEvictF != nil {
			c.onEvictF(k, v)
		}
		c.dump("Insert")
		return
	}
	if len(c.index) == c.capacity {
		c.evict(c.tail)
	}
	idx := c.alloc(k, v)
	c.index[k] = idx
	c.linkFront(idx)
	c.dump("Insert")
}

// Lookup returns the value stored for the key k and makes the entry the most
// recently used one. If the key has no entry, the errors.ErrNotExist wrapped
// with the key is returned and the cache state is not changed
func (c *Cache[K, V]) Lookup(k K) (V, error) {
	idx, ok := c.index[k]
	if !ok {
		return *new(V), fmt.Errorf("no entry for the key=%v: %w", k, errors.ErrNotExist)
	}
	c.promote(idx)
	c.dump("Lookup")
	return c.arena[idx].val, nil
}

// Peek returns the value stored for the key k without touching the recency
// order. The second result indicates whether the key was found
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	idx, ok := c.index[k]
	if !ok {
		return *new(V), false
	}
	return c.arena[idx].val, true
}

// Remove deletes the entry by the key k, releasing it through the OnEvict
// callback. It returns true if the entry was in the cache and false if it
// was not found
func (c *Cache[K, V]) Remove(k K) bool {
	idx, ok := c.index[k]
	if !ok {
		return false
	}
	c.evict(idx)
	c.dump("Remove")
	return true
}

// Clear removes all entries, least recently used first, keeping the capacity.
// The function returns the number of the entries removed
func (c *Cache[K, V]) Clear() int {
	removed := 0
	for c.tail != nilIdx {
		c.evict(c.tail)
		removed++
	}
	return removed
}

// Len returns the number of the entries currently retained
func (c *Cache[K, V]) Len() int {
	return len(c.index)
}

// Capacity returns the maximum number of the entries the cache may retain
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns all keys in the recency order, the most recently used first.
// The recency order is not affected
func (c *Cache[K, V]) Keys() []K {
	res := make([]K, 0, len(c.index))
	for idx := c.head; idx != nilIdx; idx = c.arena[idx].next {
		res = append(res, c.arena[idx].key)
	}
	return res
}

// alloc places the pair into a free slot and returns the slot index. The slot
// is not linked into the recency list yet
func (c *Cache[K, V]) alloc(k K, v V) int32 {
	if c.free != nilIdx {
		idx := c.free
		c.free = c.arena[idx].next
		c.arena[idx] = entry[K, V]{key: k, val: v, prev: nilIdx, next: nilIdx}
		return idx
	}
	c.arena = append(c.arena, entry[K, V]{key: k, val: v, prev: nilIdx, next: nilIdx})
	return int32(len(c.arena) - 1)
}

// evict removes the slot idx from the cache: unlinks it, drops the key from the
// index, pushes the slot to the free list and reports the pair via OnEvict
func (c *Cache[K, V]) evict(idx int32) {
	e := &c.arena[idx]
	k, v := e.key, e.val
	c.unlink(idx)
	delete(c.index, k)
	e.key, e.val = *new(K), *new(V)
	e.next = c.free
	c.free = idx
	if c.onEvictF != nil {
		c.onEvictF(k, v)
	}
}

// promote makes the slot idx the most recently used one. No-op if it is the
// head already (which covers the single-entry cache as well)
func (c *Cache[K, V]) promote(idx int32) {
	if c.head == idx {
		return
	}
	c.unlink(idx)
	c.linkFront(idx)
}

// unlink takes the slot idx out of the recency list updating the head and the
// tail markers when the slot was at either extreme
func (c *Cache[K, V]) unlink(idx int32) {
	e := &c.arena[idx]
	if e.prev != nilIdx {
		c.arena[e.prev].next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nilIdx {
		c.arena[e.next].prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nilIdx, nilIdx
}

// linkFront puts the unlinked slot idx to the head of the recency list
func (c *Cache[K, V]) linkFront(idx int32) {
	e := &c.arena[idx]
	e.prev = nilIdx
	e.next = c.head
	if c.head != nilIdx {
		c.arena[c.head].prev = idx
	}
	c.head = idx
	if c.tail == nilIdx {
		c.tail = idx
	}
}

// dump writes the cache state after the operation op to the trace log
func (c *Cache[K, V]) dump(op string) {
	if c.trace == nil || logging.GetLevel() < logging.TRACE {
		return
	}
	var sb strings.Builder
	for idx := c.head; idx != nilIdx; idx = c.arena[idx].next {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v => %v", c.arena[idx].key, c.arena[idx].val)
	}
	c.trace.Tracef("%s: capacity=%d, len=%d, recency=[%s]", op, c.capacity, len(c.index), sb.String())
}
