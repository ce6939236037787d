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

// Default pruning bounds for the Integral algebra.
const (
	IntegralDefaultMaxDigits    = 64
	IntegralDefaultMaxConcat    = 20
	IntegralDefaultMaxFactorial = 20
)

type integralAlgebra struct {
	max          *big.Int
	maxDigits    int
	maxConcat    int
	maxFactorial int
}

// NewIntegral builds the Algebra for arbitrary-precision non-negative
// integers, with the default bounds unless overridden.
func NewIntegral(opts ...IntegralOption) Algebra[numalg.Integer] {
	a := &integralAlgebra{
		max:          new(big.Int).Lsh(big1, 64),
		maxDigits:    IntegralDefaultMaxDigits,
		maxConcat:    IntegralDefaultMaxConcat,
		maxFactorial: IntegralDefaultMaxFactorial,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IntegralOption overrides one of the Integral algebra's pruning bounds,
// the Go equivalent of the original's per-digit `limits` table entries.
type IntegralOption func(*integralAlgebra)

func WithIntegralMaxDigits(n int) IntegralOption {
	return func(a *integralAlgebra) { a.maxDigits = n }
}

func (a *integralAlgebra) RangeCheck(v numalg.Integer) bool {
	return v.BigInt().Cmp(a.max) <= 0
}

func (a *integralAlgebra) IntegerCheck(numalg.Integer) bool { return true }

func (a *integralAlgebra) Equal(x, y numalg.Integer) bool { return x.Equal(y) }
func (a *integralAlgebra) Key(v numalg.Integer) string     { return v.Key() }
func (a *integralAlgebra) IsNegative(v numalg.Integer) bool {
	return v.BigInt().Sign() < 0
}

func (a *integralAlgebra) FromBigInt(n *big.Int) numalg.Integer { return numalg.NewInteger(n) }
func (a *integralAlgebra) ToBigInt(v numalg.Integer) (*big.Int, bool) {
	return v.BigInt(), true
}

func (a *integralAlgebra) Add(x, y numalg.Integer) (numalg.Integer, bool) { return x.Add(y), true }
func (a *integralAlgebra) Sub(x, y numalg.Integer) (numalg.Integer, bool) { return x.Sub(y), true }
func (a *integralAlgebra) Mul(x, y numalg.Integer) numalg.Integer         { return x.Mul(y) }

// Div succeeds only when x divides evenly by y; the engine calls it with
// both (p, q) and (q, p), so there is no need to special-case which
// operand is larger here.
func (a *integralAlgebra) Div(x, y numalg.Integer) (numalg.Integer, bool) { return x.Div(y) }

func (a *integralAlgebra) Sqrt(v numalg.Integer) (numalg.Integer, bool) { return v.Sqrt() }

func (a *integralAlgebra) MaxConcat() int    { return a.maxConcat }
func (a *integralAlgebra) MaxFactorial() int { return a.maxFactorial }
func (a *integralAlgebra) MaxDigits() int    { return a.maxDigits }

// Exponent computes p^q, halving q (and wrapping the witness in sqrt)
// while p^q would need more than MaxDigits bits, abandoning entirely if
// it can never be brought into range because q has an odd factor left.
func (a *integralAlgebra) Exponent(p, q numalg.Integer, pw, qw Witness[numalg.Integer], insert Insert[numalg.Integer]) error {
	if p.IsOne() {
		return nil
	}
	pDigits := p.MaxLog2()
	exponent := q.BigInt()
	witness := expr.NewPow(pw, qw)
	for pDigits*bigFloat(exponent) > float64(a.maxDigits) {
		if exponent.Bit(0) != 0 {
			return nil
		}
		exponent = new(big.Int).Rsh(exponent, 1)
		witness = expr.NewSqrt(witness)
	}
	return insert(p.Pow(exponent), witness)
}
