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

// Package search implements the iterative-deepening value search: given a
// digit and a target, it enumerates every value reachable by combining
// copies of the digit with the nine operators, in order of increasing
// digit-count, until the target turns up or a depth limit is hit.
//
// The search itself never mentions which of the three number algebras it
// is running over. That is the Algebra[V] trait below. This mirrors the
// base/subclass split of the system the search was learned from, just
// expressed as a generic engine over a value-algebra interface instead of
// an abstract base class.
package search

import (
	"math/big"

	"github.com/getamis/tchisla/expr"
)

// Witness is the expression-tree type the search records as a proof that
// a value is reachable.
type Witness[V expr.Stringer] = *expr.Expression[V]

// Insert is how an Algebra reports a value it wants inserted into the
// search; returning a non-nil error aborts whatever loop produced it
// (used to propagate "target found" up out of a multi-value exponent
// chain without more machinery than an error return).
type Insert[V expr.Stringer] func(value V, witness Witness[V]) error

// Algebra is the value-algebra trait the generic engine is parameterised
// over: everything domain-specific about how Integer, Rational and
// Quadratic values combine and get pruned lives behind this interface.
type Algebra[V expr.Stringer] interface {
	// RangeCheck reports whether v is small enough to keep exploring from.
	RangeCheck(v V) bool
	// IntegerCheck reports whether v is a plain non-negative integer in
	// this algebra (always true for Integer, denominator==1 for
	// Rational, k==0 && denominator==1 for Quadratic).
	IntegerCheck(v V) bool
	// Equal reports structural equality.
	Equal(a, b V) bool
	// Key is a stable, collision-free map key for v.
	Key(v V) string
	// IsNegative reports whether v is negative. No algebra ever stores a
	// negative solution, but Sub computes a raw difference before the
	// engine decides whether to swap operands, and needs this to decide.
	IsNegative(v V) bool

	// FromBigInt lifts a non-negative arbitrary-precision integer into
	// the algebra (concatenation, factorial and factorial-quotient
	// results are always exact integers of this form).
	FromBigInt(n *big.Int) V
	// ToBigInt extracts an integer value's exact big.Int form. ok is
	// false whenever IntegerCheck would be false.
	ToBigInt(v V) (n *big.Int, ok bool)

	// Add attempts a + b; ok is false when the algebra cannot represent
	// the sum at all (only Quadratic's partial add/sub can fail).
	Add(a, b V) (V, bool)
	// Sub attempts a - b; ok is false when the algebra cannot represent
	// the difference at all (only Quadratic's partial add/sub can fail).
	Sub(a, b V) (V, bool)
	// Mul is total.
	Mul(a, b V) V
	// Div attempts a / b; ok is false when the algebra requires exact
	// division and it does not divide evenly (Integer only).
	Div(a, b V) (V, bool)
	// Sqrt attempts the principal square root.
	Sqrt(v V) (V, bool)

	// Exponent computes p^q (and, for Rational and Quadratic, its inverse
	// p^-q) and reports every reachable
	// value through insert, building its own witness chain. The
	// halving-by-sqrt pruning strategy differs enough between algebras
	// that this is not worth factoring into the generic engine.
	Exponent(p, q V, pWitness, qWitness Witness[V], insert Insert[V]) error

	// MaxConcat, MaxFactorial and MaxDigits are this algebra's pruning
	// bounds, as configured for the particular digit being searched.
	MaxConcat() int
	MaxFactorial() int
	MaxDigits() int
}
