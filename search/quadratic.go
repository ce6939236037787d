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

// Default pruning bounds for the Quadratic algebra.
const (
	QuadraticDefaultMaxDigits         = 16
	QuadraticDefaultMaxConcat         = 5
	QuadraticDefaultMaxFactorial      = 8
	QuadraticDefaultMaxQuadraticPower = 1
)

type quadraticAlgebra struct {
	max               *big.Int
	maxDigits         int
	maxConcat         int
	maxFactorial      int
	maxQuadraticPower uint64
}

// NewQuadraticAlgebra builds the Algebra for canonical quadratic surds,
// with the default bounds unless overridden.
func NewQuadraticAlgebra(opts ...QuadraticOption) Algebra[numalg.Quadratic] {
	a := &quadraticAlgebra{
		max:               new(big.Int).Lsh(big1, 16),
		maxDigits:         QuadraticDefaultMaxDigits,
		maxConcat:         QuadraticDefaultMaxConcat,
		maxFactorial:      QuadraticDefaultMaxFactorial,
		maxQuadraticPower: QuadraticDefaultMaxQuadraticPower,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// QuadraticOption overrides one of the Quadratic algebra's pruning
// bounds. The original per-digit `limits` table that would raise
// MaxQuadraticPower for specific (n, digits) pairs is not present in the
// retrieved source; callers needing that override apply it explicitly.
type QuadraticOption func(*quadraticAlgebra)

func WithMaxQuadraticPower(k uint64) QuadraticOption {
	return func(a *quadraticAlgebra) { a.maxQuadraticPower = k }
}

func (a *quadraticAlgebra) RangeCheck(v numalg.Quadratic) bool {
	return v.R.Numerator().CmpAbs(a.max) <= 0 && v.R.Denominator().Cmp(a.max) <= 0
}

func (a *quadraticAlgebra) IntegerCheck(v numalg.Quadratic) bool {
	return v.K == 0 && v.R.IsInteger()
}

func (a *quadraticAlgebra) Equal(x, y numalg.Quadratic) bool  { return x.Equal(y) }
func (a *quadraticAlgebra) Key(v numalg.Quadratic) string     { return v.Key() }
func (a *quadraticAlgebra) IsNegative(v numalg.Quadratic) bool { return v.R.IsNegative() }

func (a *quadraticAlgebra) FromBigInt(n *big.Int) numalg.Quadratic {
	return numalg.NewQuadraticFromInt(n)
}
func (a *quadraticAlgebra) ToBigInt(v numalg.Quadratic) (*big.Int, bool) {
	if !a.IntegerCheck(v) {
		return nil, false
	}
	return v.R.Numerator(), true
}

func (a *quadraticAlgebra) Add(x, y numalg.Quadratic) (numalg.Quadratic, bool) { return x.Add(y) }
func (a *quadraticAlgebra) Sub(x, y numalg.Quadratic) (numalg.Quadratic, bool) { return x.Sub(y) }
func (a *quadraticAlgebra) Mul(x, y numalg.Quadratic) numalg.Quadratic         { return x.Mul(y) }
func (a *quadraticAlgebra) Div(x, y numalg.Quadratic) (numalg.Quadratic, bool) {
	return x.Div(y), true
}

// Sqrt refuses to deepen the surd tower past MaxQuadraticPower, since
// without this bound the search could chase an unbounded nesting of
// square roots of square roots.
func (a *quadraticAlgebra) Sqrt(v numalg.Quadratic) (numalg.Quadratic, bool) {
	if v.K >= a.maxQuadraticPower {
		return numalg.Quadratic{}, false
	}
	return v.Sqrt()
}

func (a *quadraticAlgebra) MaxConcat() int    { return a.maxConcat }
func (a *quadraticAlgebra) MaxFactorial() int { return a.maxFactorial }
func (a *quadraticAlgebra) MaxDigits() int    { return a.maxDigits }

// Exponent computes every power of p reachable by halving q down to an
// odd core exponent (bounding digit growth, same as Integer/Rational),
// then walking back up from that core to the original exponent by
// repeated squaring, reporting each intermediate power (and its inverse)
// as a bonus reachable value along the way.
func (a *quadraticAlgebra) Exponent(p, q numalg.Quadratic, pw, qw Witness[numalg.Quadratic], insert Insert[numalg.Quadratic]) error {
	if !(q.K == 0 && q.R.IsInteger()) || p.IsOne() {
		return nil
	}
	base := p.R.MaxLog2()
	posWitness := expr.NewPow(pw, qw)
	negWitness := expr.NewPow(pw, expr.NewNegate(qw))
	qMax := q.R.Numerator()
	threshold := float64(a.maxDigits) * float64(uint64(1)<<p.K)
	for bigFloat(qMax)*base > threshold {
		if qMax.Bit(0) != 0 {
			return nil
		}
		qMax = new(big.Int).Rsh(qMax, 1)
		posWitness = expr.NewSqrt(posWitness)
		negWitness = expr.NewSqrt(negWitness)
	}

	qMin := new(big.Int).Set(qMax)
	for qMin.Sign() != 0 && qMin.Bit(0) == 0 {
		qMin.Rsh(qMin, 1)
		posWitness = expr.NewSqrt(posWitness)
		negWitness = expr.NewSqrt(negWitness)
	}

	exponent := new(big.Int).Set(qMin)
	value := p.Pow(exponent.Uint64())
	for exponent.Cmp(qMax) <= 0 {
		if !a.RangeCheck(value) {
			break
		}
		if err := insert(value, posWitness); err != nil {
			return err
		}
		if err := insert(value.Inverse(), negWitness); err != nil {
			return err
		}
		exponent.Lsh(exponent, 1)
		value = value.Mul(value)
		if exponent.Cmp(qMax) <= 0 {
			posWitness = posWitness.Children[0]
			negWitness = negWitness.Children[0]
		}
	}
	return nil
}
