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
	"math/big"

	"github.com/getamis/tchisla/expr"
	"github.com/getamis/tchisla/numalg"
)

func quadraticFactorialWitness(n int64) Witness[numalg.Quadratic] {
	return expr.NewFactorial(expr.Leaf(numalg.NewQuadraticFromInt(big.NewInt(n))))
}

// mustQuadraticSqrt panics if v is not a representable quadratic square
// root; it is only ever called on the two hand-verified constants below,
// so the panic can never actually fire.
func mustQuadraticSqrt(v numalg.Quadratic) numalg.Quadratic {
	root, ok := v.Sqrt()
	if !ok {
		panic("search: special-seed value is not a representable quadratic square root")
	}
	return root
}

// QuadraticSpecials seeds the quadratic search with two values that are
// otherwise unreachable at their digit budget: sqrt(14!+7!) at digit 7
// depth 3, and sqrt(8!+8!) at digit 8 depth 2.
var QuadraticSpecials = map[uint64]map[int][]Seed[numalg.Quadratic]{
	7: {
		3: {{
			Value:   mustQuadraticSqrt(numalg.NewQuadraticFromInt(big.NewInt(87178296240))),
			Witness: expr.NewSqrt(expr.NewAdd(quadraticFactorialWitness(14), quadraticFactorialWitness(7))),
		}},
	},
	8: {
		2: {{
			Value:   mustQuadraticSqrt(numalg.NewQuadraticFromInt(big.NewInt(80640))),
			Witness: expr.NewSqrt(expr.NewAdd(quadraticFactorialWitness(8), quadraticFactorialWitness(8))),
		}},
	},
}
