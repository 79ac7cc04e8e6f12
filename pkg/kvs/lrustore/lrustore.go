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

// Package lrustore provides the kvs.Storage implementation bounded by a fixed
// capacity. The records are retained with the LRU discipline: a Put over the
// capacity silently drops the record that has gone the longest without an access
package lrustore

import (
	"context"
	"fmt"
	"sync"

	"github.com/gobwas/glob"
	"github.com/pagecache/pagecache/golibs/errors"
	"github.com/pagecache/pagecache/golibs/logging"
	"github.com/pagecache/pagecache/golibs/ulidutils"
	"github.com/pagecache/pagecache/pkg/cache"
	"github.com/pagecache/pagecache/pkg/kvs"
)

type storage struct {
	lock  sync.Mutex
	cache *cache.Cache[string, kvs.Record]
	log   logging.Logger
}

// New creates the new kvs.Storage, which keeps up to capacity records in memory
func New(capacity int) kvs.Storage {
	s := new(storage)
	s.cache = cache.New[string, kvs.Record](capacity)
	s.log = logging.NewLogger("lrustore")
	s.cache.OnEvict(func(k string, r kvs.Record) {
		s.log.Debugf("the record key=%q ver=%s left the storage", k, r.Version)
	})
	return s
}

// Init implements linker.Initializer
func (s *storage) Init(ctx context.Context) error {
	s.log.Infof("initializing, capacity=%d", s.cache.Capacity())
	return nil
}

// Shutdown implements linker.Shutdowner
func (s *storage) Shutdown() {
	s.lock.Lock()
	defer s.lock.Unlock()
	removed := s.cache.Clear()
	s.log.Infof("shutdown, %d record(s) dropped", removed)
}

func (s *storage) Get(ctx context.Context, key string) (kvs.Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	r, err := s.cache.Lookup(key)
	if err != nil {
		return kvs.Record{}, err
	}
	return r, nil
}

func (s *storage) Put(ctx context.Context, record kvs.Record) (kvs.Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	record.Version = ulidutils.NewID()
	s.cache.Insert(record.Key, record)
	return record, nil
}

func (s *storage) Delete(ctx context.Context, key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.cache.Remove(key) {
		return fmt.Errorf("could not delete the record key=%q: %w", key, errors.ErrNotExist)
	}
	return nil
}

func (s *storage) ListKeys(ctx context.Context, pattern string) ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("could not compile the pattern %q: %w", pattern, errors.ErrInvalid)
	}
	res := []string{}
	for _, k := range s.cache.Keys() {
		if g.Match(k) {
			res = append(res, k)
		}
	}
	return res, nil
}
