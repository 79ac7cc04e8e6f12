// Copyright 2025 The PageCache Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
Package kvs contains interfaces and structures for working with a bounded
key-value storage. The kvs.Storage implementations may drop records to keep
the storage within its capacity, so a record written earlier is not guaranteed
to be there later (see the lrustore package).
*/
package kvs

import (
	"context"
)

type (
	// Record is a value that can be stored in a Storage
	Record struct {
		// Key is a key for the record
		Key string
		// Value is a value for the record
		Value []byte
		// Version identifies the record revision. It is managed by the Storage,
		// and it is ignored in the Put operation
		Version string
	}

	// Storage interface defines some operations over the record storage
	Storage interface {
		// Get retrieves the record by its key. ErrNotExist is returned if the key
		// is not found in the storage
		Get(ctx context.Context, key string) (Record, error)

		// Put stores the record and returns it with the new version assigned.
		// The storage may drop another record to keep itself within its capacity
		Put(ctx context.Context, record Record) (Record, error)

		// Delete removes the record from the storage by its key. It returns
		// ErrNotExist if the record does not exist
		Delete(ctx context.Context, key string) error

		// ListKeys returns the keys matching the glob pattern
		ListKeys(ctx context.Context, pattern string) ([]string, error)
	}
)
