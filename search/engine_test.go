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
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/getamis/tchisla/numalg"
)

func TestSearch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Search Suite")
}

var _ = Describe("Engine", func() {
	It("survives an aborted Solve call and still answers a later one correctly", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 4, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := engine.Solve(ctx, numalg.NewIntegerFromInt64(1000), 0)
		Expect(err).Should(HaveOccurred())

		digits, ok, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(8), 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).Should(BeTrue())
		Expect(digits).Should(Equal(2))
	})

	It("pretty-prints a solution and its intermediate requirements", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 2, nil)
		_, ok, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(4), 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).Should(BeTrue())

		lines := engine.SolutionPrettyPrint(numalg.NewIntegerFromInt64(4), true)
		Expect(lines).ShouldNot(BeEmpty())
		Expect(lines[0]).Should(ContainSubstring("4"))
	})

	It("expands a witness into a fully substituted expression", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 2, nil)
		_, ok, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(4), 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).Should(BeTrue())

		full := engine.FullExpression(numalg.NewIntegerFromInt64(4))
		Expect(full.String()).Should(Equal("2+2"))
	})

	It("reaches a value via concatenation then factorial in one pass", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 1, nil)
		// "11" concatenated from two 1s, then 11!, since 11 is within the
		// default MaxFactorial bound of 20.
		target := numalg.NewInteger(mustFactorial(11))
		digits, ok, err := engine.Solve(context.Background(), target, 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).Should(BeTrue())
		Expect(digits).Should(Equal(2))
	})
})

func mustFactorial(n int64) *big.Int {
	result := big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		result.Mul(result, big.NewInt(i))
	}
	return result
}
