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
	"context"
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/getamis/tchisla/numalg"
)

var _ = Describe("Quadratic", func() {
	It("finds a target reached by taking a square root", func() {
		engine := NewEngine[numalg.Quadratic](NewQuadraticAlgebra(), 2, nil)
		target, ok := numalg.NewQuadraticFromInt(big.NewInt(2)).Sqrt()
		Expect(ok).Should(BeTrue())
		digits, found, err := engine.Solve(context.Background(), target, 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(found).Should(BeTrue())
		Expect(digits).Should(Equal(1))
	})

	It("refuses to take a square root deeper than MaxQuadraticPower", func() {
		alg := NewQuadraticAlgebra(WithMaxQuadraticPower(1))
		v, ok := numalg.NewQuadraticFromInt(big.NewInt(2)).Sqrt()
		Expect(ok).Should(BeTrue())
		Expect(v.K).Should(Equal(uint64(1)))
		_, ok = alg.Sqrt(v)
		Expect(ok).Should(BeFalse())
	})

	It("finds the special-seeded solution for digit 8 depth 2", func() {
		engine := NewEngine[numalg.Quadratic](NewQuadraticAlgebra(), 8, QuadraticSpecials[8])
		target := mustQuadraticSqrt(numalg.NewQuadraticFromInt(big.NewInt(80640)))
		digits, found, err := engine.Solve(context.Background(), target, 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(found).Should(BeTrue())
		Expect(digits).Should(Equal(2))
	})

	It("finds the special-seeded solution for digit 7 depth 3", func() {
		engine := NewEngine[numalg.Quadratic](NewQuadraticAlgebra(), 7, QuadraticSpecials[7])
		target := mustQuadraticSqrt(numalg.NewQuadraticFromInt(big.NewInt(87178296240)))
		digits, found, err := engine.Solve(context.Background(), target, 3)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(found).Should(BeTrue())
		Expect(digits).Should(Equal(3))
	})
})
