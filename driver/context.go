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

package driver

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/getamis/sirius/log"

	"github.com/getamis/tchisla/numalg"
	"github.com/getamis/tchisla/search"
)

// Context caches one search.Engine per (digit, algebra), the "shared
// instance" behaviour of the source's solver classes: repeated problems
// for the same digit reuse whatever a previous problem already
// discovered. Switching to a different digit evicts every algebra's
// instance for the digit being abandoned, bounding memory the same way
// the source's BaseTchisla.last_digit eviction does.
type Context struct {
	integral  map[uint64]*search.Engine[numalg.Integer]
	rational  map[uint64]*search.Engine[numalg.Rational]
	quadratic map[uint64]*search.Engine[numalg.Quadratic]

	lastDigit uint64
	hasLast   bool

	resultCache map[[32]byte]Result
	log         log.Logger
}

// NewContext builds an empty Context.
func NewContext() *Context {
	return &Context{
		integral:    map[uint64]*search.Engine[numalg.Integer]{},
		rational:    map[uint64]*search.Engine[numalg.Rational]{},
		quadratic:   map[uint64]*search.Engine[numalg.Quadratic]{},
		resultCache: map[[32]byte]Result{},
		log:         log.Discard(),
	}
}

func (c *Context) evictOtherDigit(n uint64) {
	if c.hasLast && c.lastDigit != n {
		delete(c.integral, c.lastDigit)
		delete(c.rational, c.lastDigit)
		delete(c.quadratic, c.lastDigit)
	}
	c.lastDigit = n
	c.hasLast = true
}

func (c *Context) integralEngine(n uint64) *search.Engine[numalg.Integer] {
	c.evictOtherDigit(n)
	e, ok := c.integral[n]
	if !ok {
		e = search.NewEngine[numalg.Integer](search.NewIntegral(), n, nil)
		e.SetLogger(c.log)
		c.integral[n] = e
	}
	return e
}

func (c *Context) rationalEngine(n uint64) *search.Engine[numalg.Rational] {
	c.evictOtherDigit(n)
	e, ok := c.rational[n]
	if !ok {
		e = search.NewEngine[numalg.Rational](search.NewRationalAlgebra(), n, nil)
		e.SetLogger(c.log)
		c.rational[n] = e
	}
	return e
}

func (c *Context) quadraticEngine(n uint64) *search.Engine[numalg.Quadratic] {
	c.evictOtherDigit(n)
	e, ok := c.quadratic[n]
	if !ok {
		e = search.NewEngine[numalg.Quadratic](search.NewQuadraticAlgebra(), n, search.QuadraticSpecials[n])
		e.SetLogger(c.log)
		c.quadratic[n] = e
	}
	return e
}

// cacheKey hashes (n, algebra, target) with blake2b so a batch run that
// repeats the identical problem twice (the same target and digit listed
// in more than one range) can skip re-solving it.
func cacheKey(n uint64, algebra, target string) [32]byte {
	return blake2b.Sum256([]byte(fmt.Sprintf("%d|%s|%s", n, algebra, target)))
}

func (c *Context) cached(key [32]byte) (Result, bool) {
	r, ok := c.resultCache[key]
	return r, ok
}

func (c *Context) remember(key [32]byte, r Result) {
	c.resultCache[key] = r
}
