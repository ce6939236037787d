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

// Package intutil provides the small number-theoretic primitives the
// search engine leans on millions of times per solve: a fast perfect
// square test, integer square root, factorial, and gcd.
package intutil

import (
	"math"
	"math/big"
)

var (
	big1      = big.NewInt(1)
	big11     = big.NewInt(11)
	big63     = big.NewInt(63)
	big65     = big.NewInt(65)
	mod64Mask = big.NewInt(63) // n & 63 == n mod 64
)

// perfectSquareResidue holds, for a given modulus, which residues a
// perfect square can possibly have. A candidate failing any of these
// cheap modular tests cannot be a perfect square; passing all four still
// requires the exact isqrt check below.
type perfectSquareResidue []bool

func newResidueMask(bits string) perfectSquareResidue {
	mask := make(perfectSquareResidue, len(bits))
	for i, c := range bits {
		mask[i] = c == '1'
	}
	return mask
}

var (
	// residue mod 64 is read directly off the low 6 bits of n.
	residueMod64 = newResidueMask("1100100001000000110000000100000001001000010000000100000001000000")
	residueMod63 = newResidueMask("110010010100000010100010010010000000110000010010010000000010000")
	residueMod65 = newResidueMask("11001000011000101000000001100110000110011000000001010001100001001")
	residueMod11 = newResidueMask("11011100010")
)

// IsPerfectSquare reports whether n is the square of a non-negative
// integer. It runs the four-level bitmask prefilter of moduli
// 64, 63, 65, 11 before paying for an isqrt.
func IsPerfectSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	if n.Sign() == 0 {
		return true
	}
	if !residueMod64[new(big.Int).And(n, mod64Mask).Int64()] {
		return false
	}
	if !residueMod11[new(big.Int).Mod(n, big11).Int64()] {
		return false
	}
	if !residueMod63[new(big.Int).Mod(n, big63).Int64()] {
		return false
	}
	if !residueMod65[new(big.Int).Mod(n, big65).Int64()] {
		return false
	}
	root := ISqrt(n)
	square := new(big.Int).Mul(root, root)
	return square.Cmp(n) == 0
}

// ISqrt returns the floor of the square root of n via Newton's method,
// seeded from 1 << ceil(bitlen(n)/2).
func ISqrt(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}
	x := new(big.Int).Lsh(big1, uint((n.BitLen()+1)/2))
	for {
		y := new(big.Int).Div(n, x)
		y.Add(y, x)
		y.Rsh(y, 1)
		if y.Cmp(x) >= 0 {
			return x
		}
		x = y
	}
}

// Factorial computes n! by naive multiplication. Callers are expected to
// bound n themselves (the search engine's MaxFactorial limits per
// algebra); this function does not second-guess the caller.
func Factorial(n uint64) *big.Int {
	result := new(big.Int).Set(big1)
	for i := uint64(2); i <= n; i++ {
		result.Mul(result, new(big.Int).SetUint64(i))
	}
	return result
}

// Gcd returns the greatest common divisor of two positive integers.
func Gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// Log2 approximates log2(n) for the exponent-pruning heuristics. n is
// expected to be positive; the algebras calling this already range-check
// their operands, so the conversion to float64 never needs to retain more
// than the handful of significant bits the pruning arithmetic cares about.
func Log2(n *big.Int) float64 {
	f := new(big.Float).SetInt(n)
	v, _ := f.Float64()
	return math.Log2(v)
}

// Uint64 reports whether n fits in a uint64 and, if so, its value.
func Uint64(n *big.Int) (uint64, bool) {
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}
