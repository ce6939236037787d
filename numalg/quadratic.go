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

package numalg

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

// primeInts are the only primes the Quadratic algebra can carry under a
// radical. A value whose irrational part needs any other prime factor
// simply has no Quadratic representation, and Sqrt reports failure.
var primeInts = [4]int64{2, 3, 5, 7}

var primeBig = [4]*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(5), big.NewInt(7)}

// Quadratic is a canonical surd r * prod(p_i^(e_i/2^k)) for the four
// primes above. R is always reduced and, at K == 0, uniquely represents a
// plain rational: every irrational factor has been fully absorbed into R
// or cancelled out by canonicalization.
type Quadratic struct {
	R Rational
	K uint64
	E [4]uint64
}

// QuadraticZero is the canonical representation of zero.
var QuadraticZero = Quadratic{R: RationalZero}

// NewQuadraticFromRational lifts a plain Rational into the algebra.
func NewQuadraticFromRational(r Rational) Quadratic {
	if r.IsZero() {
		return QuadraticZero
	}
	return Quadratic{R: r}
}

// NewQuadraticFromInt lifts a plain integer into the algebra.
func NewQuadraticFromInt(v *big.Int) Quadratic {
	return NewQuadraticFromRational(NewRationalFromInt(v))
}

func (x Quadratic) String() string {
	s := x.R.String()
	if x.K == 0 {
		return s
	}
	denom := uint64(1) << x.K
	for i, e := range x.E {
		if e == 0 {
			continue
		}
		s += fmt.Sprintf("*%d^(%d/%d)", primeInts[i], e, denom)
	}
	return s
}

// Key is a stable map key, suitable for use as the solution table's index.
func (x Quadratic) Key() string {
	return fmt.Sprintf("%s@%d:%d,%d,%d,%d", x.R.Key(), x.K, x.E[0], x.E[1], x.E[2], x.E[3])
}

func (x Quadratic) Equal(y Quadratic) bool {
	return x.R.Equal(y.R) && x.K == y.K && x.E == y.E
}

func (x Quadratic) IsZero() bool { return x.R.IsZero() && x.K == 0 }
func (x Quadratic) IsOne() bool  { return x.K == 0 && x.R.IsOne() }

// Float64 is an approximate value, used only by the heuristics that order
// or bound candidates (factorial-divide selection, exponent pruning),
// never by an exactness check.
func (x Quadratic) Float64() float64 {
	rn, _ := new(big.Float).SetInt(x.R.Numerator()).Float64()
	rd, _ := new(big.Float).SetInt(x.R.Denominator()).Float64()
	v := rn / rd
	if x.K > 0 {
		denom := float64(uint64(1) << x.K)
		for i, e := range x.E {
			if e == 0 {
				continue
			}
			v *= math.Pow(float64(primeInts[i]), float64(e)/denom)
		}
	}
	return v
}

// MaxLog2 approximates log2(|x|), the quantity the exponent-halving
// heuristics prune on.
func (x Quadratic) MaxLog2() float64 {
	return math.Log2(math.Abs(x.Float64()))
}

// floorDiv is Euclidean floor division for possibly-negative a, positive b.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// carryAndCanonicalize takes an unreduced exponent numerator (over a
// denominator of 2^k) for each prime, pulls out every full integer power
// into r, and then shifts away any common factor of two left in every
// remaining numerator so k is always minimal. This single routine backs
// Mul, Div, Pow, Inverse and Sqrt; each just builds a different `total`.
func carryAndCanonicalize(r Rational, k uint64, total [4]int64) Quadratic {
	if k == 0 {
		// No radical structure to carry; total must already be all zero.
		return NewQuadraticFromRational(r)
	}
	mod := int64(uint64(1) << k)
	var e [4]uint64
	for i, t := range total {
		full := floorDiv(t, mod)
		rem := t - full*mod
		if full != 0 {
			r = r.Mul(NewRationalFromInt(primeBig[i]).Pow(full))
		}
		e[i] = uint64(rem)
	}
	var mask uint64
	for _, v := range e {
		mask |= v
	}
	if mask == 0 {
		return NewQuadraticFromRational(r)
	}
	if r.IsZero() {
		return QuadraticZero
	}
	shift := uint64(bits.TrailingZeros64(mask))
	if shift > k {
		shift = k
	}
	k -= shift
	for i := range e {
		e[i] >>= shift
	}
	return Quadratic{R: r, K: k, E: e}
}

// Add succeeds only when x and y share the same irrational part.
func (x Quadratic) Add(y Quadratic) (Quadratic, bool) {
	if x.K != y.K || x.E != y.E {
		return Quadratic{}, false
	}
	return Quadratic{R: x.R.Add(y.R), K: x.K, E: x.E}.normalizeZero(), true
}

// Sub computes x - y, succeeding only when they share the same irrational
// part. Like Rational.Sub it does not enforce the result be non-negative.
func (x Quadratic) Sub(y Quadratic) (Quadratic, bool) {
	if x.K != y.K || x.E != y.E {
		return Quadratic{}, false
	}
	return Quadratic{R: x.R.Sub(y.R), K: x.K, E: x.E}.normalizeZero(), true
}

func (x Quadratic) normalizeZero() Quadratic {
	if x.R.IsZero() {
		return QuadraticZero
	}
	return x
}

func scaleExponents(e [4]uint64, shift uint64) [4]int64 {
	var out [4]int64
	for i, v := range e {
		out[i] = int64(v) << shift
	}
	return out
}

func (x Quadratic) Mul(y Quadratic) Quadratic {
	k := x.K
	if y.K > k {
		k = y.K
	}
	xs := scaleExponents(x.E, k-x.K)
	ys := scaleExponents(y.E, k-y.K)
	var total [4]int64
	for i := range total {
		total[i] = xs[i] + ys[i]
	}
	return carryAndCanonicalize(x.R.Mul(y.R), k, total)
}

// Div returns x / y; y must be non-zero.
func (x Quadratic) Div(y Quadratic) Quadratic {
	k := x.K
	if y.K > k {
		k = y.K
	}
	xs := scaleExponents(x.E, k-x.K)
	ys := scaleExponents(y.E, k-y.K)
	var total [4]int64
	for i := range total {
		total[i] = xs[i] - ys[i]
	}
	return carryAndCanonicalize(x.R.Div(y.R), k, total)
}

// Inverse returns 1/x; x must be non-zero.
func (x Quadratic) Inverse() Quadratic {
	var total [4]int64
	for i, v := range x.E {
		total[i] = -int64(v)
	}
	return carryAndCanonicalize(x.R.Inverse(), x.K, total)
}

// Pow raises x to a non-negative integer power.
func (x Quadratic) Pow(n uint64) Quadratic {
	if n == 0 {
		return Quadratic{R: NewRationalFromInt(big1)}
	}
	var total [4]int64
	for i, v := range x.E {
		total[i] = int64(v) * int64(n)
	}
	return carryAndCanonicalize(x.R.Pow(int64(n)), x.K, total)
}

// factorSmallPrimes divides n (n >= 0) by 2, 3, 5 and 7 as many times as
// possible and reports how many times each divided evenly, along with
// what remains once they are all fully divided out.
func factorSmallPrimes(n *big.Int) ([4]uint64, *big.Int) {
	var exp [4]uint64
	residual := new(big.Int).Set(n)
	for i, p := range primeBig {
		for residual.Sign() != 0 {
			q, r := new(big.Int).QuoRem(residual, p, new(big.Int))
			if r.Sign() != 0 {
				break
			}
			residual = q
			exp[i]++
		}
	}
	return exp, residual
}

// Sqrt returns the principal square root of x, succeeding exactly when
// that root is itself expressible in the algebra: x must be non-negative,
// and whatever remains of its rational part once every factor of 2, 3, 5
// and 7 has been pulled out must itself be a perfect-square rational.
func (x Quadratic) Sqrt() (Quadratic, bool) {
	if x.IsZero() {
		return QuadraticZero, true
	}
	if x.R.IsNegative() {
		return Quadratic{}, false
	}
	numExp, numRes := factorSmallPrimes(x.R.Numerator())
	denExp, denRes := factorSmallPrimes(x.R.Denominator())
	residual := NewRational(numRes, denRes)
	rootResidual, ok := residual.Sqrt()
	if !ok {
		return Quadratic{}, false
	}
	mod := int64(uint64(1) << x.K)
	var total [4]int64
	for i := range total {
		v := int64(numExp[i]) - int64(denExp[i])
		total[i] = v*mod + int64(x.E[i])
	}
	return carryAndCanonicalize(rootResidual, x.K+1, total), true
}
