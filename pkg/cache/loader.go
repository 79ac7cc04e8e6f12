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
	"sync"

	"github.com/pagecache/pagecache/golibs/errors"
)

type (
	// Loader wraps Cache with a value factory: a missing value is created by the
	// createNewF call and inserted as the most recently used one. The Loader owns
	// its Cache and serializes all calls with its own lock, so unlike the bare
	// Cache it is safe for concurrent use. If several goroutines request the same
	// missing key, only one of them calls the factory, the others wait for the result
	Loader[K comparable, V any] struct {
		lock       sync.Mutex
		cache      *Cache[K, V]
		inflight   map[K]chan struct{}
		createNewF CreateElemF[K, V]
	}

	// CreateElemF function type for creating new cache values by the key
	CreateElemF[K comparable, V any] func(k K) (V, error)
)

// NewLoader creates new Loader object. It expects the cache capacity and the
// create new element function in the parameters
func NewLoader[K comparable, V any](capacity int, createNewF CreateElemF[K, V], onEvictF OnEvictF[K, V]) (*Loader[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("NewLoader(): the capacity=%d, but it cannot be less than 1: %w", capacity, errors.ErrInvalid)
	}
	if createNewF == nil {
		return nil, fmt.Errorf("NewLoader(): createNewF must not be nil: %w", errors.ErrInvalid)
	}
	l := new(Loader[K, V])
	l.cache = New[K, V](capacity)
	l.cache.OnEvict(onEvictF)
	l.inflight = make(map[K]chan struct{})
	l.createNewF = createNewF
	return l, nil
}

// GetOrCreate returns an existing cache value or creates the new one by its key
func (l *Loader[K, V]) GetOrCreate(k K) (V, error) {
	for {
		l.lock.Lock()
		if v, err := l.cache.Lookup(k); err == nil {
			l.lock.Unlock()
			return v, nil
		}
		ch, watcher := l.inflight[k]
		if !watcher {
			ch = make(chan struct{})
			l.inflight[k] = ch
		}
		l.lock.Unlock()

		// if watcher is true, it means that another goroutine already creating the new
		// value, so it needs to wait for the result instead of requesting the new one
		if watcher {
			<-ch
			continue
		}

		v, err := l.createNewF(k)

		l.lock.Lock()
		close(ch)
		delete(l.inflight, k)
		if err == nil {
			l.cache.Insert(k, v)
		}
		l.lock.Unlock()

		return v, err
	}
}

// Remove deletes the value by the key k. It returns true if the value
// was in the cache and false if it was not found
func (l *Loader[K, V]) Remove(k K) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.cache.Remove(k)
}

// Clear cleans up the cache removing all values. The function returns the
// number of the values deleted
func (l *Loader[K, V]) Clear() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.cache.Clear()
}

// Len returns the number of the values currently cached
func (l *Loader[K, V]) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.cache.Len()
}
