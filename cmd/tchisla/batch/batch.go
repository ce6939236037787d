// Copyright © 2020 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch implements "tchisla batch", which reads a YAML file of
// problem strings and solves each in turn against a shared driver.Context
// so repeated digits reuse whatever the engine has already discovered.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/getamis/tchisla/driver"
	"github.com/getamis/tchisla/logger"
)

// File is the on-disk shape of a batch problem list.
type File struct {
	Problems []string `yaml:"problems"`
}

var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Solve every problem listed in a YAML file",
	Long:  `Reads a YAML file with a top-level "problems" list of DSL strings and solves each one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("file")
		if path == "" {
			return fmt.Errorf("batch: --file is required")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var file File
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return err
		}

		maxDepth := viper.GetInt("max-depth")
		verbose := viper.GetBool("verbose")
		chain := driver.ChainFromNames(viper.GetStringSlice("add-solver"))

		ctx := context.Background()
		c := driver.NewContext()
		c.SetLogger(logger.Logger())

		for _, line := range file.Problems {
			problem, err := driver.ParseProblem(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping %q: %v\n", line, err)
				continue
			}
			for _, n := range problem.Digits {
				for _, target := range problem.Targets {
					result, solveErr := c.Solve(ctx, n, target, chain, maxDepth, verbose)
					if solveErr != nil && !errors.Is(solveErr, driver.ErrNoSolution) {
						fmt.Fprintf(os.Stderr, "%s#%d: %v\n", target.String(), n, solveErr)
						continue
					}
					found := solveErr == nil
					driver.Report(func(s string) { fmt.Println(s) }, target, n, result, found, verbose)
				}
			}
		}
		return nil
	},
}

func init() {
	Cmd.Flags().String("file", "", "path to a YAML problem list")
	Cmd.Flags().Int("max-depth", 6, "maximum digit count to search before giving up")
	Cmd.Flags().Bool("verbose", false, "print the fully expanded expression (depth progress is not traced)")
	Cmd.Flags().StringSlice("add-solver", nil, "extra algebras to append to the chain (rational, quadratic)")
}
