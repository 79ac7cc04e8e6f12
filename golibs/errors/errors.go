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
package errors

import "errors"

var (
	// ErrNotExist is returned when an object identified by a key is requested,
	// but it is not found. The error should be wrapped with the details about
	// the key requested (see fmt.Errorf and the %w verb)
	ErrNotExist = errors.New("not exist")

	// ErrExist is returned when an object cannot be created because another
	// object with the same key already exists
	ErrExist = errors.New("already exist")

	// ErrInvalid indicates that the operation parameters don't make sense and
	// cannot be accepted
	ErrInvalid = errors.New("invalid parameter value")

	// ErrClosed is returned when an operation is requested on an object that
	// is already closed and cannot serve requests anymore
	ErrClosed = errors.New("closed")

	// ErrInternal indicates an internal unrecoverable problem
	ErrInternal = errors.New("internal error")
)

// Is reports whether any error in err's chain matches target. This is the
// standard errors.Is, re-exported so the package can be used as a drop-in
// replacement for the standard "errors" in the codebase
func Is(err, target error) bool {
	return errors.Is(err, target)
}
