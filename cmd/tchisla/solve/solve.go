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

// Package solve implements "tchisla solve", a single problem run against
// the problem DSL: "target#digit", with target/digit lists and ranges
// allowed on either side, tried against the configured algebra chain.
package solve

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/getamis/tchisla/driver"
	"github.com/getamis/tchisla/logger"
	"github.com/getamis/tchisla/record"
)

var Cmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Solve a single Tchisla problem",
	Long:  `Solve a single problem of the form "target#digit" (digit/range lists allowed on both sides).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problem, err := driver.ParseProblem(args[0])
		if err != nil {
			return err
		}

		defaultMaxDepth := viper.GetInt("max-depth")
		verbose := viper.GetBool("verbose")
		chain := driver.ChainFromNames(viper.GetStringSlice("add-solver"))
		checkWR := viper.GetBool("check-wr")
		tryWR := viper.GetBool("try-wr")

		ctx := context.Background()
		c := driver.NewContext()
		c.SetLogger(logger.Logger())

		var wr *record.Client
		if checkWR || tryWR {
			wr = record.NewClient()
			wr.SetLogger(logger.Logger())
		}

		for _, n := range problem.Digits {
			for _, target := range problem.Targets {
				maxDepth, capped := worldRecordDepth(ctx, wr, target, n, checkWR, defaultMaxDepth)
				if capped && maxDepth <= 0 {
					// The published record is already unbeatable at this
					// bound (or, for --try-wr, there is nothing to match);
					// nothing to search.
					driver.Report(func(s string) { fmt.Println(s) }, target, n, driver.Result{}, false, verbose)
					continue
				}

				result, solveErr := c.Solve(ctx, n, target, chain, maxDepth, verbose)
				found := solveErr == nil
				if solveErr != nil && !errors.Is(solveErr, driver.ErrNoSolution) {
					return solveErr
				}
				driver.Report(func(s string) { fmt.Println(s) }, target, n, result, found, verbose)

				if tryWR && !found {
					fmt.Fprintf(os.Stderr, "%s#%d: no solution within the published world record of %d digits\n", target.String(), n, maxDepth)
					os.Exit(1)
				}
			}
		}
		return nil
	},
}

func init() {
	Cmd.Flags().Int("max-depth", 6, "maximum digit count to search before giving up")
	Cmd.Flags().Bool("verbose", false, "print the fully expanded expression (depth progress is not traced)")
	Cmd.Flags().StringSlice("add-solver", nil, "extra algebras to append to the chain (rational, quadratic)")
	Cmd.Flags().Bool("check-wr", false, "search only for a solution that beats the published world record")
	Cmd.Flags().Bool("try-wr", false, "search only up to the published world record, and fail if it cannot be matched")
}

// worldRecordDepth consults the published record, when --check-wr or
// --try-wr asked for one, and returns the depth bound to search with:
// record-1 for --check-wr (only a strictly better solution counts),
// record for --try-wr (match or beat it). capped reports whether a
// record-derived bound replaced defaultMaxDepth; when it did not (no
// client, a rational target the API does not track, or no published
// record), defaultMaxDepth is returned unchanged.
func worldRecordDepth(ctx context.Context, wr *record.Client, target driver.Target, n uint64, checkWR bool, defaultMaxDepth int) (maxDepth int, capped bool) {
	if wr == nil || target.Den != nil {
		return defaultMaxDepth, false
	}
	published, ok, err := wr.SingleRecord(ctx, target.Num.Int64(), n)
	if err != nil {
		log.Warn("world record lookup failed", "target", target.String(), "digit", n, "err", err)
		return defaultMaxDepth, false
	}
	if !ok {
		return defaultMaxDepth, false
	}
	if checkWR {
		return published - 1, true
	}
	return published, true
}
