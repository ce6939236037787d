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

	"github.com/getamis/tchisla/expr"
	"github.com/getamis/tchisla/numalg"
)

var _ = Describe("Rational", func() {
	solve := func(n uint64, target numalg.Rational, maxDepth int) (int, bool) {
		engine := NewEngine[numalg.Rational](NewRationalAlgebra(), n, nil)
		digits, ok, err := engine.Solve(context.Background(), target, maxDepth)
		Expect(err).ShouldNot(HaveOccurred())
		return digits, ok
	}

	It("finds a fractional target reached by a negative power and a square root", func() {
		target := numalg.NewRational(big.NewInt(1), big.NewInt(2))
		digits, ok := solve(2, target, 2)
		Expect(ok).Should(BeTrue())
		Expect(digits).Should(Equal(2))
	})

	It("inserts both a power and its inverse for an integer exponent", func() {
		p := numalg.NewRationalFromInt(big.NewInt(2))
		q := numalg.NewRationalFromInt(big.NewInt(3))
		var inserted []numalg.Rational
		insert := func(v numalg.Rational, w Witness[numalg.Rational]) error {
			inserted = append(inserted, v)
			return nil
		}
		alg := NewRationalAlgebra()
		err := alg.Exponent(p, q, expr.Leaf(p), expr.Leaf(q), insert)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(inserted).Should(HaveLen(2))
	})

	It("fails within a depth budget too small to reach the target", func() {
		target := numalg.NewRational(big.NewInt(1), big.NewInt(997))
		_, ok := solve(3, target, 2)
		Expect(ok).Should(BeFalse())
	})
})
