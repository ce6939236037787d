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

package intutil

import (
	"math/big"
	"testing"
)

func big_(n int64) *big.Int { return big.NewInt(n) }

func TestIsPerfectSquare(t *testing.T) {
	cases := []struct {
		n    int64
		want bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{3, false},
		{4, true},
		{15, false},
		{16, true},
		{1 << 40, true},
		{(1 << 40) + 1, false},
	}
	for _, c := range cases {
		got := IsPerfectSquare(big_(c.n))
		if got != c.want {
			t.Errorf("IsPerfectSquare(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestIsPerfectSquareLarge(t *testing.T) {
	root := new(big.Int).Exp(big_(10), big_(40), nil)
	square := new(big.Int).Mul(root, root)
	if !IsPerfectSquare(square) {
		t.Errorf("IsPerfectSquare(10^40 squared) = false, want true")
	}
	square.Add(square, big1)
	if IsPerfectSquare(square) {
		t.Errorf("IsPerfectSquare(10^40 squared + 1) = true, want false")
	}
}

func TestISqrt(t *testing.T) {
	for n := int64(0); n < 200; n++ {
		root := ISqrt(big_(n))
		square := new(big.Int).Mul(root, root)
		next := new(big.Int).Mul(new(big.Int).Add(root, big1), new(big.Int).Add(root, big1))
		if square.Cmp(big_(n)) > 0 || next.Cmp(big_(n)) <= 0 {
			t.Errorf("ISqrt(%d) = %s is not the floor square root", n, root)
		}
	}
}

func TestFactorial(t *testing.T) {
	cases := []struct {
		n    uint64
		want int64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{10, 3628800},
	}
	for _, c := range cases {
		if got := Factorial(c.n); got.Cmp(big_(c.want)) != 0 {
			t.Errorf("Factorial(%d) = %s, want %d", c.n, got, c.want)
		}
	}
}

func TestGcd(t *testing.T) {
	if got := Gcd(big_(12), big_(18)); got.Cmp(big_(6)) != 0 {
		t.Errorf("Gcd(12, 18) = %s, want 6", got)
	}
	if got := Gcd(big_(7), big_(13)); got.Cmp(big1) != 0 {
		t.Errorf("Gcd(7, 13) = %s, want 1", got)
	}
}
