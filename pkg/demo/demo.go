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

// Package demo drives the cache through a fixed demonstration scenario. It is
// an external caller of the pkg/cache and pkg/kvs APIs, nothing in the cache
// behavior depends on it
package demo

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrange/linker"
	"github.com/pagecache/pagecache/golibs/logging"
	"github.com/pagecache/pagecache/pkg/cache"
	"github.com/pagecache/pagecache/pkg/kvs"
	"github.com/pagecache/pagecache/pkg/kvs/lrustore"
)

// Run is an entry point of the pagecache demo tool
func Run(ctx context.Context, cfg *Config) error {
	log := logging.NewLogger("demo")
	log.Infof("starting the demo with the config: %s", spew.Sprint(cfg))
	defer log.Infof("the demo is over")

	runCacheScenario(cfg, log)

	// the storage is assembled via the injector the way a bigger application would do it
	store := lrustore.New(cfg.Capacity)
	inj := linker.New()
	inj.Register(linker.Component{Name: "", Value: store})
	inj.Init(ctx)
	defer inj.Shutdown()

	return runStoreScenario(ctx, store, log)
}

// runCacheScenario replays the classic capacity-4 scenario over the bare cache
func runCacheScenario(cfg *Config, log logging.Logger) {
	c := cache.New[uint, string](cfg.Capacity)
	c.OnEvict(func(k uint, v string) {
		log.Infof("the key=%d left the cache", k)
	})
	if cfg.TraceCache {
		c.SetTraceLog(logging.NewLogger("cache"))
	}

	add := func(k uint, v string) {
		log.Infof("adding data to the key=%d", k)
		c.Insert(k, v)
	}
	get := func(k uint) {
		v, err := c.Lookup(k)
		if err != nil {
			log.Errorf("an error has occurred while reading data from the cache: %v", err)
			return
		}
		log.Infof("the key=%d holds %q", k, v)
	}

	log.Infof("building the cache with the capacity for %d entries", cfg.Capacity)
	add(0, "Marvin")
	add(1, "Ford Prefect")
	add(0, "Another Marvin")
	add(10, "Lisbeth Salander")
	add(3, "Mikael Blomkvist")
	add(4, "Trician McMillian")
	add(5, "Don't panic!")

	get(3)
	get(11)

	log.Infof("destructing the cache along with all data related to it")
	c.Destruct()
	get(5)

	log.Infof("rebuilding the cache with the capacity for 2 entries")
	c.Build(2)
	add(0, "Marvin")
	add(1, "Ford Prefect")
	add(3, "Mikael Blomkvist")
	c.Destruct()
}

// runStoreScenario shows the same retention discipline through the kvs.Storage facade
func runStoreScenario(ctx context.Context, store kvs.Storage, log logging.Logger) error {
	for _, key := range []string{"answer/42", "answer/54", "towel/1"} {
		r, err := store.Put(ctx, kvs.Record{Key: key, Value: []byte("so long, and thanks for all the fish")})
		if err != nil {
			return err
		}
		log.Infof("stored the record key=%q ver=%s", r.Key, r.Version)
	}
	keys, err := store.ListKeys(ctx, "answer/*")
	if err != nil {
		return err
	}
	log.Infof("the storage keeps the answer keys: %v", keys)
	return nil
}
