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

package search

import (
	"math/big"

	"github.com/getamis/tchisla/expr"
	"github.com/getamis/tchisla/numalg"
)

// Default pruning bounds for the Rational algebra.
const (
	RationalDefaultMaxDigits    = 32
	RationalDefaultMaxConcat    = 20
	RationalDefaultMaxFactorial = 12
)

type rationalAlgebra struct {
	max          *big.Int
	maxDigits    int
	maxConcat    int
	maxFactorial int
}

// NewRationalAlgebra builds the Algebra for reduced rationals, with the
// default bounds unless overridden.
func NewRationalAlgebra(opts ...RationalOption) Algebra[numalg.Rational] {
	a := &rationalAlgebra{
		max:          new(big.Int).Lsh(big1, 32),
		maxDigits:    RationalDefaultMaxDigits,
		maxConcat:    RationalDefaultMaxConcat,
		maxFactorial: RationalDefaultMaxFactorial,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RationalOption overrides one of the Rational algebra's pruning bounds.
type RationalOption func(*rationalAlgebra)

func WithRationalMaxDigits(n int) RationalOption {
	return func(a *rationalAlgebra) { a.maxDigits = n }
}

func (a *rationalAlgebra) RangeCheck(v numalg.Rational) bool {
	return v.Numerator().CmpAbs(a.max) <= 0 && v.Denominator().Cmp(a.max) <= 0
}

func (a *rationalAlgebra) IntegerCheck(v numalg.Rational) bool { return v.IsInteger() }

func (a *rationalAlgebra) Equal(x, y numalg.Rational) bool { return x.Equal(y) }
func (a *rationalAlgebra) Key(v numalg.Rational) string     { return v.Key() }
func (a *rationalAlgebra) IsNegative(v numalg.Rational) bool { return v.IsNegative() }

func (a *rationalAlgebra) FromBigInt(n *big.Int) numalg.Rational {
	return numalg.NewRationalFromInt(n)
}
func (a *rationalAlgebra) ToBigInt(v numalg.Rational) (*big.Int, bool) { return v.Int() }

func (a *rationalAlgebra) Add(x, y numalg.Rational) (numalg.Rational, bool) { return x.Add(y), true }
func (a *rationalAlgebra) Sub(x, y numalg.Rational) (numalg.Rational, bool) { return x.Sub(y), true }
func (a *rationalAlgebra) Mul(x, y numalg.Rational) numalg.Rational         { return x.Mul(y) }

// Div is total: the search never holds a zero value (0 is never inserted
// as a reachable value beyond the trivial leaf), so division never
// degenerates here the way Integer's exact-division check can fail.
func (a *rationalAlgebra) Div(x, y numalg.Rational) (numalg.Rational, bool) { return x.Div(y), true }

func (a *rationalAlgebra) Sqrt(v numalg.Rational) (numalg.Rational, bool) { return v.Sqrt() }

func (a *rationalAlgebra) MaxConcat() int    { return a.maxConcat }
func (a *rationalAlgebra) MaxFactorial() int { return a.maxFactorial }
func (a *rationalAlgebra) MaxDigits() int    { return a.maxDigits }

// Exponent computes p^q for integer q, inserting both p^q and its
// inverse p^-q, since a rational base raised to a negative power is
// still a rational, unlike Integer where it would leave the algebra.
func (a *rationalAlgebra) Exponent(p, q numalg.Rational, pw, qw Witness[numalg.Rational], insert Insert[numalg.Rational]) error {
	if !q.IsInteger() || p.IsOne() {
		return nil
	}
	pDigits := p.MaxLog2()
	exponent := q.Numerator()
	posWitness := expr.NewPow(pw, qw)
	negWitness := expr.NewPow(pw, expr.NewNegate(qw))
	for pDigits*bigFloat(exponent) > float64(a.maxDigits) {
		if exponent.Bit(0) != 0 {
			return nil
		}
		exponent = new(big.Int).Rsh(exponent, 1)
		posWitness = expr.NewSqrt(posWitness)
		negWitness = expr.NewSqrt(negWitness)
	}
	value := p.Pow(exponent.Int64())
	if err := insert(value, posWitness); err != nil {
		return err
	}
	return insert(value.Inverse(), negWitness)
}
