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

// Package numalg implements the three exact-arithmetic value algebras the
// search engine indexes by: arbitrary-precision Integer, reduced
// Rational, and canonical Quadratic surds r*sqrt(q). Every type is
// immutable; operations always return a new value.
package numalg

import (
	"math/big"

	"github.com/getamis/tchisla/intutil"
)

var big1 = big.NewInt(1)

// Integer wraps an arbitrary-precision integer.
type Integer struct {
	v *big.Int
}

// NewInteger takes ownership of v's digits but never its pointer; callers
// may safely keep mutating the *big.Int they passed in afterwards.
func NewInteger(v *big.Int) Integer {
	return Integer{v: new(big.Int).Set(v)}
}

// NewIntegerFromInt64 builds an Integer from a small literal, primarily
// used by tests.
func NewIntegerFromInt64(v int64) Integer {
	return Integer{v: big.NewInt(v)}
}

// BigInt returns a defensive copy of the underlying value.
func (x Integer) BigInt() *big.Int {
	return new(big.Int).Set(x.v)
}

func (x Integer) String() string { return x.v.String() }

// Key is a stable map key, suitable for use as the solution table's index.
func (x Integer) Key() string { return x.v.String() }

func (x Integer) Equal(y Integer) bool { return x.v.Cmp(y.v) == 0 }

func (x Integer) Cmp(y Integer) int { return x.v.Cmp(y.v) }

func (x Integer) IsOne() bool  { return x.v.Cmp(big1) == 0 }
func (x Integer) IsZero() bool { return x.v.Sign() == 0 }

func (x Integer) Add(y Integer) Integer {
	return Integer{v: new(big.Int).Add(x.v, y.v)}
}

// Sub computes x - y. The search engine only ever calls this after
// establishing x >= y so the result stays non-negative, but the method
// itself does not enforce that.
func (x Integer) Sub(y Integer) Integer {
	return Integer{v: new(big.Int).Sub(x.v, y.v)}
}

func (x Integer) Mul(y Integer) Integer {
	return Integer{v: new(big.Int).Mul(x.v, y.v)}
}

// Div returns x / y and whether the division was exact.
func (x Integer) Div(y Integer) (Integer, bool) {
	q, r := new(big.Int).QuoRem(x.v, y.v, new(big.Int))
	if r.Sign() != 0 {
		return Integer{}, false
	}
	return Integer{v: q}, true
}

// Pow raises x to a non-negative integer power.
func (x Integer) Pow(exp *big.Int) Integer {
	return Integer{v: new(big.Int).Exp(x.v, exp, nil)}
}

// Sqrt returns the exact square root of x and whether x is a perfect
// square.
func (x Integer) Sqrt() (Integer, bool) {
	if !intutil.IsPerfectSquare(x.v) {
		return Integer{}, false
	}
	return Integer{v: intutil.ISqrt(x.v)}, true
}

// Factorial returns x! and whether x fits a uint64 at all (the search
// engine additionally bounds x well below that before ever calling this).
func (x Integer) Factorial() (Integer, bool) {
	n, ok := intutil.Uint64(x.v)
	if !ok {
		return Integer{}, false
	}
	return Integer{v: intutil.Factorial(n)}, true
}

// MaxLog2 approximates log2(x), the quantity the exponent-halving
// heuristics prune on.
func (x Integer) MaxLog2() float64 {
	return intutil.Log2(x.v)
}
