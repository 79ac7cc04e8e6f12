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

package main

import (
	"fmt"
	"os"
	"syscall"

	gcontext "github.com/pagecache/pagecache/golibs/context"
	"github.com/pagecache/pagecache/golibs/logging"
	"github.com/pagecache/pagecache/pkg/demo"
	"github.com/spf13/cobra"
)

func main() {
	var (
		cfgFile  string
		capacity int
		logLevel string
		trace    bool
	)

	cmd := &cobra.Command{
		Use:           "pagecache",
		Short:         "pagecache runs the LRU cache demonstration scenario",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := demo.BuildConfig(cfgFile)
			if err != nil {
				return err
			}
			// the explicit flags win over the file and the environment
			if cmd.Flags().Changed("capacity") {
				cfg.Capacity = capacity
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("trace") {
				cfg.TraceCache = trace
			}
			logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

			ctx := gcontext.NewSignalsContext(os.Interrupt, syscall.SIGTERM)
			return demo.Run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "path to the YAML or JSON config file")
	cmd.Flags().IntVar(&capacity, "capacity", 4, "the cache capacity for the demo scenario")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "logging level: error, warn, info, debug or trace")
	cmd.Flags().BoolVar(&trace, "trace", false, "dump the cache state after every mutating operation")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
