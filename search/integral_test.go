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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/getamis/tchisla/numalg"
)

var _ = Describe("Integral", func() {
	solve := func(n uint64, target int64, maxDepth int) (int, bool) {
		engine := NewEngine[numalg.Integer](NewIntegral(), n, nil)
		digits, ok, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(target), maxDepth)
		Expect(err).ShouldNot(HaveOccurred())
		return digits, ok
	}

	It("finds the trivial one-digit solution", func() {
		digits, ok := solve(5, 5, 1)
		Expect(ok).Should(BeTrue())
		Expect(digits).Should(Equal(1))
	})

	It("reaches a target via concatenation", func() {
		digits, ok := solve(1, 11, 2)
		Expect(ok).Should(BeTrue())
		Expect(digits).Should(Equal(2))
	})

	It("reaches a target via addition", func() {
		digits, ok := solve(5, 10, 2)
		Expect(ok).Should(BeTrue())
		Expect(digits).Should(Equal(2))
	})

	It("reaches a target via factorial", func() {
		digits, ok := solve(3, 6, 2)
		Expect(ok).Should(BeTrue())
		// 3! == 6 is also a one-digit-cheaper solution than 3+3.
		Expect(digits).Should(BeNumerically("<=", 2))
	})

	It("fails within a depth budget too small to reach the target", func() {
		_, ok := solve(1, 9999, 2)
		Expect(ok).Should(BeFalse())
	})

	It("reuses solved state across repeated Solve calls on one engine", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 2, nil)
		d1, ok1, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(4), 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok1).Should(BeTrue())
		Expect(d1).Should(Equal(2))

		d2, ok2, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(2), 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok2).Should(BeTrue())
		Expect(d2).Should(Equal(1))
	})

	It("prints a solution line with its witness expression", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 3, nil)
		_, ok, err := engine.Solve(context.Background(), numalg.NewIntegerFromInt64(6), 2)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).Should(BeTrue())
		line := engine.Printer(numalg.NewIntegerFromInt64(6))
		Expect(line).Should(ContainSubstring("6"))
	})

	It("cancels promptly when the context is already done", func() {
		engine := NewEngine[numalg.Integer](NewIntegral(), 1, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := engine.Solve(ctx, numalg.NewIntegerFromInt64(999999), 0)
		Expect(err).Should(HaveOccurred())
	})
})
