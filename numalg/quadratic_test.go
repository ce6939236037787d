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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Quadratic", func() {
	sqrt2 := func() Quadratic {
		q, ok := NewQuadraticFromInt(big.NewInt(2)).Sqrt()
		Expect(ok).Should(BeTrue())
		return q
	}

	It("renders the canonical surd form", func() {
		Expect(sqrt2().String()).Should(Equal("1*2^(1/2)"))
	})

	It("falls back to a plain rational once the radical cancels", func() {
		got := sqrt2().Mul(sqrt2())
		Expect(got.K).Should(BeZero())
		Expect(got.String()).Should(Equal("2"))
	})

	It("extracts a perfect-square factor out from under the radical", func() {
		got, ok := NewQuadraticFromInt(big.NewInt(8)).Sqrt()
		Expect(ok).Should(BeTrue())
		Expect(got.String()).Should(Equal("2*2^(1/2)"))
	})

	It("takes the root of a value whose non-square part factors over 2, 3, 5 and 7", func() {
		_, ok := NewQuadraticFromInt(big.NewInt(12)).Sqrt()
		// 12 = 4*3: stripping 2, 3, 5 and 7 from 12 leaves 1 (a perfect
		// square), so the root 2*sqrt(3) is representable.
		Expect(ok).Should(BeTrue())
	})

	It("rejects the root of a value with an unsupported prime factor", func() {
		_, ok := NewQuadraticFromInt(big.NewInt(11)).Sqrt()
		Expect(ok).Should(BeFalse())
	})

	It("adds two values sharing the same irrational part", func() {
		got, ok := sqrt2().Add(sqrt2())
		Expect(ok).Should(BeTrue())
		Expect(got.String()).Should(Equal("2*2^(1/2)"))
	})

	It("refuses to add values with different irrational parts", func() {
		sqrt3, ok := NewQuadraticFromInt(big.NewInt(3)).Sqrt()
		Expect(ok).Should(BeTrue())
		_, ok = sqrt2().Add(sqrt3)
		Expect(ok).Should(BeFalse())
	})

	It("inverts a surd", func() {
		got := sqrt2().Inverse()
		Expect(got.String()).Should(Equal("1/2*2^(1/2)"))
	})

	It("divides an integer by a surd", func() {
		got := NewQuadraticFromInt(big.NewInt(8)).Div(sqrt2())
		Expect(got.String()).Should(Equal("4*2^(1/2)"))
	})

	It("raises a surd to an even power and collapses the radical", func() {
		got := sqrt2().Pow(2)
		Expect(got.K).Should(BeZero())
		Expect(got.String()).Should(Equal("2"))
	})

	It("compares equal values structurally", func() {
		Expect(sqrt2().Equal(sqrt2())).Should(BeTrue())
	})

	It("approximates its float value for pruning heuristics", func() {
		Expect(sqrt2().Float64()).Should(BeNumerically("~", 1.4142, 0.001))
	})
})
