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

package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/getamis/sirius/log"

	"github.com/getamis/tchisla/numalg"
)

// Algebra names an entry in the solver chain a problem is tried against,
// in order, until one finds a solution or the chain is exhausted.
type Algebra string

const (
	Integral  Algebra = "integral"
	Rational  Algebra = "rational"
	Quadratic Algebra = "quadratic"
)

// DefaultChain is the algebra chain used when the CLI's --add-solver
// flag is not given: integral first, then rational.
func DefaultChain() []Algebra { return []Algebra{Integral, Rational} }

// ChainFromNames builds an algebra chain starting from DefaultChain and
// appending each named algebra (as given to --add-solver) that is not
// already present, in the order given. Unknown names are ignored.
func ChainFromNames(names []string) []Algebra {
	chain := DefaultChain()
	seen := map[Algebra]bool{Integral: true, Rational: true}
	for _, name := range names {
		alg := Algebra(name)
		switch alg {
		case Integral, Rational, Quadratic:
		default:
			continue
		}
		if seen[alg] {
			continue
		}
		seen[alg] = true
		chain = append(chain, alg)
	}
	return chain
}

// ErrNoSolution reports that every algebra in the chain exhausted
// max_depth without finding the target.
var ErrNoSolution = errors.New("driver: no solution within max depth")

// Result is one solved problem's report.
type Result struct {
	Target  Target
	Digit   uint64
	Algebra Algebra
	Digits  int
	Lines   []string
	Full    string
}

// Solve tries target against n using each algebra in chain in order,
// advancing on DepthExhausted or TargetMismatch, and returns the first
// solution found. verbose additionally populates Result.Full with the
// fully expanded expression.
func (c *Context) Solve(ctx context.Context, n uint64, target Target, chain []Algebra, maxDepth int, verbose bool) (Result, error) {
	key := cacheKey(n, string(joinChain(chain)), target.String())
	if cached, ok := c.cached(key); ok {
		return cached, nil
	}

	for _, alg := range chain {
		result, ok, err := c.solveOne(ctx, n, target, alg, maxDepth, verbose)
		if err != nil {
			return Result{}, err
		}
		if ok {
			c.remember(key, result)
			return result, nil
		}
	}
	return Result{}, ErrNoSolution
}

func joinChain(chain []Algebra) string {
	s := ""
	for i, a := range chain {
		if i > 0 {
			s += ","
		}
		s += string(a)
	}
	return s
}

func (c *Context) solveOne(ctx context.Context, n uint64, target Target, alg Algebra, maxDepth int, verbose bool) (Result, bool, error) {
	switch alg {
	case Integral:
		if target.Den != nil {
			return Result{}, false, nil // TargetMismatch: not an integer
		}
		engine := c.integralEngine(n)
		value := numalg.NewInteger(target.Num)
		digits, found, err := engine.Solve(ctx, value, maxDepth)
		if err != nil || !found {
			return Result{}, false, err
		}
		lines := engine.SolutionPrettyPrint(value, true)
		full := ""
		if verbose {
			full = engine.FullExpression(value).String()
		}
		return Result{Target: target, Digit: n, Algebra: alg, Digits: digits, Lines: lines, Full: full}, true, nil

	case Rational:
		engine := c.rationalEngine(n)
		var value numalg.Rational
		if target.Den != nil {
			value = numalg.NewRational(target.Num, target.Den)
		} else {
			value = numalg.NewRationalFromInt(target.Num)
		}
		digits, found, err := engine.Solve(ctx, value, maxDepth)
		if err != nil || !found {
			return Result{}, false, err
		}
		lines := engine.SolutionPrettyPrint(value, true)
		full := ""
		if verbose {
			full = engine.FullExpression(value).String()
		}
		return Result{Target: target, Digit: n, Algebra: alg, Digits: digits, Lines: lines, Full: full}, true, nil

	case Quadratic:
		engine := c.quadraticEngine(n)
		var value numalg.Quadratic
		if target.Den != nil {
			value = numalg.NewQuadraticFromRational(numalg.NewRational(target.Num, target.Den))
		} else {
			value = numalg.NewQuadraticFromInt(target.Num)
		}
		digits, found, err := engine.Solve(ctx, value, maxDepth)
		if err != nil || !found {
			return Result{}, false, err
		}
		lines := engine.SolutionPrettyPrint(value, true)
		full := ""
		if verbose {
			full = engine.FullExpression(value).String()
		}
		return Result{Target: target, Digit: n, Algebra: alg, Digits: digits, Lines: lines, Full: full}, true, nil
	}
	return Result{}, false, fmt.Errorf("driver: unknown algebra %q", alg)
}

// Report formats a Result per the output contract: "T # n" on its own
// line, then the pretty-printed lines, then (when verbose) the fully
// expanded expression and a trailing bell character.
func Report(w func(string), target Target, n uint64, result Result, found bool, verbose bool) {
	w(fmt.Sprintf("%s # %d", target.String(), n))
	if !found {
		return
	}
	for _, line := range result.Lines {
		w(line)
	}
	if verbose {
		w(fmt.Sprintf("%s = %s", target.String(), result.Full))
		w("\x07")
	}
}

// SetLogger wires a verbose depth-trace logger into the Context, applied
// to every engine already created and every engine created afterward.
func (c *Context) SetLogger(l log.Logger) {
	c.log = l
	for _, e := range c.integral {
		e.SetLogger(l)
	}
	for _, e := range c.rational {
		e.SetLogger(l)
	}
	for _, e := range c.quadratic {
		e.SetLogger(l)
	}
}
