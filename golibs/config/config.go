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

// Package config contains helpers for loading configuration structures from
// files. Both YAML and JSON contents are accepted, the fields are matched by
// the standard json:"..." annotations
package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pagecache/pagecache/golibs/errors"
)

// LoadFromFile reads the fileName content and unmarshals it into cfg. The
// fileName may refer to either YAML or JSON file. If the file doesn't exist,
// the function returns errors.ErrNotExist wrapped with the file name
func LoadFromFile(fileName string, cfg any) error {
	if fileName == "" {
		return fmt.Errorf("the config file name must not be empty: %w", errors.ErrInvalid)
	}
	buf, err := os.ReadFile(fileName)
	if os.IsNotExist(err) {
		return fmt.Errorf("the config file %s is not found: %w", fileName, errors.ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("could not read the config file %s: %w", fileName, err)
	}
	if err = yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("could not unmarshal the config file %s content: %w", fileName, err)
	}
	return nil
}
