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
	"math/big"

	"github.com/getamis/tchisla/intutil"
)

// Rational is a reduced fraction num/den. The denominator is always
// positive; the numerator carries the sign, even though every Rational
// the search engine stores in its solution table is positive (subtraction
// swaps operands rather than storing a negative value). A transient
// negative numerator only exists inside an algebra's Sub before it
// decides which operand to swap.
type Rational struct {
	num *big.Int
	den *big.Int
}

// NewRational reduces num/den to lowest terms. den must be non-zero.
func NewRational(num, den *big.Int) Rational {
	n, d := new(big.Int).Set(num), new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := intutil.Gcd(new(big.Int).Abs(n), d)
	if g.Sign() != 0 && g.Cmp(big1) != 0 {
		n.Div(n, g)
		d.Div(d, g)
	}
	return Rational{num: n, den: d}
}

// NewRationalFromInt builds the Rational v/1.
func NewRationalFromInt(v *big.Int) Rational {
	return Rational{num: new(big.Int).Set(v), den: new(big.Int).Set(big1)}
}

// RationalZero is the additive identity.
var RationalZero = Rational{num: new(big.Int), den: new(big.Int).Set(big1)}

func (x Rational) Numerator() *big.Int   { return x.num }
func (x Rational) Denominator() *big.Int { return x.den }

func (x Rational) String() string {
	if x.den.Cmp(big1) == 0 {
		return x.num.String()
	}
	return x.num.String() + "/" + x.den.String()
}

// Key is a stable map key, suitable for use as the solution table's index.
func (x Rational) Key() string {
	return x.num.String() + "/" + x.den.String()
}

func (x Rational) Equal(y Rational) bool {
	return x.num.Cmp(y.num) == 0 && x.den.Cmp(y.den) == 0
}

// Cmp compares two Rationals as ordinary rational numbers. Defined for
// both signs even though the search engine only ever stores positive
// values, so factorial-divide's max/min selection can reuse it.
func (x Rational) Cmp(y Rational) int {
	lhs := new(big.Int).Mul(x.num, y.den)
	rhs := new(big.Int).Mul(y.num, x.den)
	return lhs.Cmp(rhs)
}

func (x Rational) IsZero() bool     { return x.num.Sign() == 0 }
func (x Rational) IsNegative() bool { return x.num.Sign() < 0 }
func (x Rational) IsOne() bool      { return x.num.Cmp(big1) == 0 && x.den.Cmp(big1) == 0 }

func (x Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(x.num), den: x.den}
}

func (x Rational) Abs() Rational {
	return Rational{num: new(big.Int).Abs(x.num), den: x.den}
}

func (x Rational) Add(y Rational) Rational {
	num := new(big.Int).Add(new(big.Int).Mul(x.num, y.den), new(big.Int).Mul(y.num, x.den))
	den := new(big.Int).Mul(x.den, y.den)
	return NewRational(num, den)
}

// Sub computes x - y without regard for sign; callers decide whether to
// swap operands to keep the stored value non-negative.
func (x Rational) Sub(y Rational) Rational {
	return x.Add(y.Neg())
}

func (x Rational) Mul(y Rational) Rational {
	return NewRational(new(big.Int).Mul(x.num, y.num), new(big.Int).Mul(x.den, y.den))
}

// MulInt multiplies by a plain integer.
func (x Rational) MulInt(n *big.Int) Rational {
	return NewRational(new(big.Int).Mul(x.num, n), x.den)
}

// Div computes x / y. y must be non-zero.
func (x Rational) Div(y Rational) Rational {
	return NewRational(new(big.Int).Mul(x.num, y.den), new(big.Int).Mul(x.den, y.num))
}

func (x Rational) Inverse() Rational {
	return NewRational(x.den, x.num)
}

// Pow raises x to an integer power, which may be negative.
func (x Rational) Pow(exp int64) Rational {
	if exp < 0 {
		return x.Inverse().Pow(-exp)
	}
	e := big.NewInt(exp)
	return NewRational(new(big.Int).Exp(x.num, e, nil), new(big.Int).Exp(x.den, e, nil))
}

// Sqrt succeeds iff both numerator and denominator are perfect squares.
func (x Rational) Sqrt() (Rational, bool) {
	if x.num.Sign() < 0 {
		return Rational{}, false
	}
	if !intutil.IsPerfectSquare(x.num) || !intutil.IsPerfectSquare(x.den) {
		return Rational{}, false
	}
	return Rational{num: intutil.ISqrt(x.num), den: intutil.ISqrt(x.den)}, true
}

func (x Rational) IsInteger() bool { return x.den.Cmp(big1) == 0 }

// Int returns the numerator when the value is an integer.
func (x Rational) Int() (*big.Int, bool) {
	if !x.IsInteger() {
		return nil, false
	}
	return x.num, true
}

// MaxLog2 approximates log2(max(|numerator|, denominator)), the quantity
// the exponent-halving heuristics prune on.
func (x Rational) MaxLog2() float64 {
	n := new(big.Int).Abs(x.num)
	if n.Cmp(x.den) < 0 {
		n = x.den
	}
	return intutil.Log2(n)
}
