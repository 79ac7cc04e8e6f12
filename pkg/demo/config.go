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

package demo

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pagecache/pagecache/golibs/config"
	"github.com/pagecache/pagecache/golibs/logging"
)

type (
	// Config defines the demo tool configuration
	Config struct {
		// Capacity is the number of entries the demo cache retains
		Capacity int `json:"capacity"`
		// LogLevel is one of error, warn, info, debug or trace
		LogLevel string `json:"logLevel"`
		// TraceCache turns on dumping the cache state after every mutating operation
		TraceCache bool `json:"traceCache"`
	}
)

// getDefaultConfig returns the default demo config
func getDefaultConfig() *Config {
	return &Config{
		Capacity: 4,
		LogLevel: "info",
	}
}

// BuildConfig makes the final demo config from the defaults, the optional
// cfgFile and the environment variables with the PAGECACHE_ prefix
func BuildConfig(cfgFile string) (*Config, error) {
	log := logging.NewLogger("pagecache.ConfigBuilder")
	cfg := getDefaultConfig()
	if cfgFile != "" {
		log.Infof("trying to build config. cfgFile=%s", cfgFile)
		if err := config.LoadFromFile(cfgFile, cfg); err != nil {
			return nil, fmt.Errorf("could not read data from the file %s: %w", cfgFile, err)
		}
	}
	applyEnvVariables(cfg)
	return cfg, nil
}

// applyEnvVariables overwrites the cfg fields by the environment variables
func applyEnvVariables(cfg *Config) {
	if v, ok := os.LookupEnv("PAGECACHE_CAPACITY"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capacity = n
		}
	}
	if v, ok := os.LookupEnv("PAGECACHE_LOGLEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("PAGECACHE_TRACECACHE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TraceCache = b
		}
	}
}

// String implements fmt.Stringify interface in a pretty console form
func (c *Config) String() string {
	b, _ := json.MarshalIndent(*c, "", "  ")
	return string(b)
}
