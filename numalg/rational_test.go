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
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func r(num, den int64) Rational {
	return NewRational(big.NewInt(num), big.NewInt(den))
}

var _ = Describe("Rational", func() {
	It("reduces to lowest terms on construction", func() {
		Expect(r(6, 8).String()).Should(Equal("3/4"))
	})

	It("normalizes a negative denominator", func() {
		Expect(NewRational(big.NewInt(1), big.NewInt(-2)).String()).Should(Equal("-1/2"))
	})

	It("prints an integral value without a slash", func() {
		Expect(r(4, 2).String()).Should(Equal("2"))
	})

	DescribeTable("arithmetic",
		func(x, y Rational, op func(a, b Rational) Rational, want string) {
			Expect(op(x, y).String()).Should(Equal(want))
		},
		Entry("add", r(1, 2), r(1, 3), Rational.Add, "5/6"),
		Entry("sub", r(1, 2), r(1, 3), Rational.Sub, "1/6"),
		Entry("mul", r(2, 3), r(3, 4), Rational.Mul, "1/2"),
		Entry("div", r(2, 3), r(4, 9), Rational.Div, "3/2"),
	)

	It("raises to a negative power by inverting first", func() {
		Expect(r(2, 1).Pow(-3).String()).Should(Equal("1/8"))
	})

	DescribeTable("Sqrt reports exactness",
		func(x Rational, wantString string, wantOK bool) {
			got, ok := x.Sqrt()
			Expect(ok).Should(Equal(wantOK))
			if wantOK {
				Expect(got.String()).Should(Equal(wantString))
			}
		},
		Entry("perfect square ratio", r(9, 4), "3/2", true),
		Entry("numerator not square", r(8, 4), "", false),
	)

	It("reports IsInteger and Int", func() {
		Expect(r(6, 3).IsInteger()).Should(BeTrue())
		v, ok := r(6, 3).Int()
		Expect(ok).Should(BeTrue())
		Expect(v.String()).Should(Equal("2"))

		Expect(r(1, 2).IsInteger()).Should(BeFalse())
	})
})
