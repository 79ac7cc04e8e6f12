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
	"testing"

	"github.com/pagecache/pagecache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

// checkConsistent walks the recency list and compares it against the index:
// same set of keys, correct back references, correct head/tail markers and
// the entry count within the capacity
func checkConsistent[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()
	assert.LessOrEqual(t, len(c.index), c.capacity)
	cnt := 0
	prev := nilIdx
	for idx := c.head; idx != nilIdx; idx = c.arena[idx].next {
		assert.Equal(t, prev, c.arena[idx].prev)
		gotIdx, ok := c.index[c.arena[idx].key]
		assert.True(t, ok)
		assert.Equal(t, idx, gotIdx)
		prev = idx
		cnt++
		if cnt > len(c.index) {
			t.Fatalf("the recency list is longer than the index, a cycle?")
		}
	}
	assert.Equal(t, prev, c.tail)
	assert.Equal(t, len(c.index), cnt)
	if cnt == 0 {
		assert.Equal(t, nilIdx, c.head)
		assert.Equal(t, nilIdx, c.tail)
	}
}

func TestInsertAndLookup(t *testing.T) {
	c := New[string, int](3)
	c.Insert("aa", 1)
	v, err := c.Lookup("aa")
	assert.Nil(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Capacity())
}

func TestLookupMiss(t *testing.T) {
	c := New[int, string](2)
	c.Insert(1, "aa")
	_, err := c.Lookup(33)
	assert.True(t, errors.Is(err, errors.ErrNotExist))
	assert.Contains(t, err.Error(), "key=33")
	// the miss must not touch the state
	assert.Equal(t, []int{1}, c.Keys())
	assert.Equal(t, 1, c.Len())
	checkConsistent(t, c)
}

func TestEvictionOrder(t *testing.T) {
	evicted := []int{}
	c := New[int, int](3)
	c.OnEvict(func(k, v int) {
		evicted = append(evicted, k)
	})
	for i := 0; i < 10; i++ {
		c.Insert(i, i*i)
		checkConsistent(t, c)
	}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, evicted)
	assert.Equal(t, []int{9, 8, 7}, c.Keys())
}

func TestLookupPromotes(t *testing.T) {
	c := New[string, string](2)
	c.Insert("aa", "1")
	c.Insert("bb", "2")
	_, err := c.Lookup("aa")
	assert.Nil(t, err)
	c.Insert("cc", "3")
	checkConsistent(t, c)

	// "bb" went the longest without an access, so it must be the victim
	_, err = c.Lookup("bb")
	assert.True(t, errors.Is(err, errors.ErrNotExist))
	v, err := c.Lookup("aa")
	assert.Nil(t, err)
	assert.Equal(t, "1", v)
}

func TestOverwriteDoesNotGrow(t *testing.T) {
	evictions := 0
	c := New[int, string](2)
	c.OnEvict(func(k int, v string) { evictions++ })
	c.Insert(1, "aa")
	c.Insert(2, "bb")
	c.Insert(1, "cc")
	checkConsistent(t, c)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 0, evictions)

	v, err := c.Lookup(1)
	assert.Nil(t, err)
	assert.Equal(t, "cc", v)
	// the overwrite promoted the key 1, so the key 2 is the victim now
	assert.Equal(t, []int{1, 2}, c.Keys())
}

func TestBuildResets(t *testing.T) {
	c := New[int, string](4)
	for i := 0; i < 4; i++ {
		c.Insert(i, "v")
	}
	c.Build(2)
	checkConsistent(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 2, c.Capacity())
	for i := 0; i < 4; i++ {
		_, err := c.Lookup(i)
		assert.True(t, errors.Is(err, errors.ErrNotExist))
	}
	// idempotent
	c.Build(2)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 2, c.Capacity())
}

func TestDestruct(t *testing.T) {
	released := []int{}
	c := New[int, string](3)
	c.OnEvict(func(k int, v string) { released = append(released, k) })
	c.Insert(1, "aa")
	c.Insert(2, "bb")
	c.Destruct()
	checkConsistent(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Capacity())
	// released least recently used first
	assert.Equal(t, []int{1, 2}, released)
	_, err := c.Lookup(1)
	assert.True(t, errors.Is(err, errors.ErrNotExist))
	// the destructed cache retains nothing
	c.Insert(5, "cc")
	assert.Equal(t, 0, c.Len())
}

func TestZeroCapacity(t *testing.T) {
	evicted := []string{}
	c := New[string, string](0)
	c.OnEvict(func(k, v string) { evicted = append(evicted, k) })
	c.Insert("aa", "1")
	checkConsistent(t, c)
	assert.Equal(t, 0, c.Len())
	// the entry is released right away, it is never retained
	assert.Equal(t, []string{"aa"}, evicted)
	_, err := c.Lookup("aa")
	assert.True(t, errors.Is(err, errors.ErrNotExist))

	// a negative capacity makes no sense, it is treated as 0
	c = New[string, string](-5)
	assert.Equal(t, 0, c.Capacity())
}

func TestPromotionRelinkCases(t *testing.T) {
	c := New[int, int](4)
	for i := 1; i <= 4; i++ {
		c.Insert(i, i)
	}
	// recency is [4 3 2 1] now

	// the entry is at the front already
	c.Lookup(4)
	checkConsistent(t, c)
	assert.Equal(t, []int{4, 3, 2, 1}, c.Keys())

	// the entry is at the back, the tail marker moves
	c.Lookup(1)
	checkConsistent(t, c)
	assert.Equal(t, []int{1, 4, 3, 2}, c.Keys())

	// the entry is in the interior, both neighbours are relinked
	c.Lookup(3)
	checkConsistent(t, c)
	assert.Equal(t, []int{3, 1, 4, 2}, c.Keys())

	// the single entry cache, the promotion is a no-op
	c1 := New[int, int](1)
	c1.Insert(7, 7)
	c1.Lookup(7)
	checkConsistent(t, c1)
	assert.Equal(t, []int{7}, c1.Keys())
}

func TestPeek(t *testing.T) {
	c := New[int, string](2)
	c.Insert(1, "aa")
	c.Insert(2, "bb")
	v, ok := c.Peek(1)
	assert.True(t, ok)
	assert.Equal(t, "aa", v)
	// Peek must not promote
	assert.Equal(t, []int{2, 1}, c.Keys())
	_, ok = c.Peek(33)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	released := []int{}
	c := New[int, string](3)
	c.OnEvict(func(k int, v string) { released = append(released, k) })
	c.Insert(1, "aa")
	c.Insert(2, "bb")
	assert.True(t, c.Remove(1))
	checkConsistent(t, c)
	assert.False(t, c.Remove(1))
	assert.Equal(t, []int{1}, released)
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New[int, int](5)
	for i := 0; i < 5; i++ {
		c.Insert(i, i)
	}
	assert.Equal(t, 5, c.Clear())
	checkConsistent(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 5, c.Capacity())
	assert.Equal(t, 0, c.Clear())
}

func TestSlotReuse(t *testing.T) {
	c := New[int, int](3)
	for i := 0; i < 100; i++ {
		c.Insert(i, i)
	}
	checkConsistent(t, c)
	// the evicted slots are recycled, the arena never outgrows the capacity
	assert.Equal(t, 3, len(c.arena))
}

// TestHitchhikerScenario replays the demo scenario step by step
func TestHitchhikerScenario(t *testing.T) {
	evicted := []uint{}
	c := New[uint, string](4)
	c.OnEvict(func(k uint, v string) { evicted = append(evicted, k) })

	c.Insert(0, "Marvin")
	checkConsistent(t, c)
	c.Insert(1, "Ford Prefect")
	checkConsistent(t, c)
	c.Insert(0, "Another Marvin")
	checkConsistent(t, c)
	assert.Equal(t, 2, c.Len())
	c.Insert(10, "Lisbeth Salander")
	checkConsistent(t, c)
	c.Insert(3, "Mikael Blomkvist")
	checkConsistent(t, c)
	assert.Equal(t, 4, c.Len())

	// the key 0 was refreshed by the overwrite, so the key 1 goes first
	c.Insert(4, "Trician McMillian")
	checkConsistent(t, c)
	assert.Equal(t, []uint{1}, evicted)
	c.Insert(5, "Don't panic!")
	checkConsistent(t, c)
	assert.Equal(t, []uint{1, 10}, evicted)

	v, err := c.Lookup(3)
	assert.Nil(t, err)
	assert.Equal(t, "Mikael Blomkvist", v)
	checkConsistent(t, c)

	_, err = c.Lookup(11)
	assert.True(t, errors.Is(err, errors.ErrNotExist))

	c.Destruct()
	checkConsistent(t, c)
	_, err = c.Lookup(5)
	assert.True(t, errors.Is(err, errors.ErrNotExist))
}

func BenchmarkCache_LookupHit(b *testing.B) {
	c := New[int, string](1000)
	for i := 0; i < 1000; i++ {
		c.Insert(i, fmt.Sprintf("v%d", i))
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Lookup(i % 1000)
	}
}

func BenchmarkCache_InsertEvict(b *testing.B) {
	c := New[int, int](1000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Insert(i, i)
	}
}
