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
	"fmt"
	"math/big"

	"github.com/getamis/sirius/log"

	"github.com/getamis/tchisla/expr"
	"github.com/getamis/tchisla/intutil"
)

var big1 = big.NewInt(1)

// Seed is a precomputed (value, witness) pair injected directly into a
// depth's solution table, for the handful of targets the generic search
// cannot reach on its own.
type Seed[V expr.Stringer] struct {
	Value   V
	Witness Witness[V]
}

// SpecialTable maps digit -> depth -> seeds to inject at that depth,
// before the generic search runs.
type SpecialTable[V expr.Stringer] map[uint64]map[int][]Seed[V]

type solutionEntry[V expr.Stringer] struct {
	value   V
	digits  int
	witness Witness[V]
}

// foundError unwinds the search the moment the target is inserted,
// carrying the depth it was found at.
type foundError struct{ digits int }

func (e *foundError) Error() string { return fmt.Sprintf("solution found at depth %d", e.digits) }

// Engine runs the iterative-deepening search for a single digit n over a
// single value algebra. An Engine is reused across multiple Solve calls
// for the same n: everything already discovered for a lower or equal
// depth stays in the solution table, so searching for a second target
// after the first is typically far cheaper than starting cold.
type Engine[V expr.Stringer] struct {
	algebra Algebra[V]
	n       uint64

	target    V
	hasTarget bool
	maxDepth  int // 0 means unlimited

	solutions map[string]solutionEntry[V]
	visited   [][]V
	printed   map[string]bool

	specials map[int][]Seed[V]

	depthStarted  int
	depthFinished int
	startState    []V

	log log.Logger
}

// NewEngine builds a search engine for digit n over the given algebra.
// specials should already be filtered down to this n's table (see
// SpecialTable).
func NewEngine[V expr.Stringer](algebra Algebra[V], n uint64, specials map[int][]Seed[V]) *Engine[V] {
	if specials == nil {
		specials = map[int][]Seed[V]{}
	}
	return &Engine[V]{
		algebra:   algebra,
		n:         n,
		solutions: map[string]solutionEntry[V]{},
		visited:   make([][]V, 2),
		printed:   map[string]bool{},
		specials:  specials,
		log:       log.Discard(),
	}
}

// SetLogger overrides the engine's logger, used to trace search depth.
func (e *Engine[V]) SetLogger(l log.Logger) { e.log = l }

// Solve searches for target, at increasing digit counts, until it is
// found or maxDepth (0 for unlimited) is exhausted. It returns the
// minimal digit count and true on success.
func (e *Engine[V]) Solve(ctx context.Context, target V, maxDepth int) (int, bool, error) {
	e.target = target
	e.hasTarget = true
	e.maxDepth = maxDepth

	for digits := 1; ; digits++ {
		if maxDepth != 0 && digits-1 == maxDepth {
			return 0, false, nil
		}
		select {
		case <-ctx.Done():
			return 0, false, ctx.Err()
		default:
		}
		e.log.Debug("searching depth", "n", e.n, "digits", digits)
		err := e.search(digits)
		if err == nil {
			continue
		}
		found, ok := err.(*foundError)
		if !ok {
			return 0, false, err
		}
		if maxDepth == 0 || found.digits <= maxDepth {
			return found.digits, true, nil
		}
		return 0, false, nil
	}
}

// Solution reports the witness recorded for v, if any.
func (e *Engine[V]) Solution(v V) (digits int, witness Witness[V], ok bool) {
	entry, found := e.solutions[e.algebra.Key(v)]
	if !found {
		return 0, nil, false
	}
	return entry.digits, entry.witness, true
}

func (e *Engine[V]) search(digits int) error {
	if e.hasTarget {
		if entry, ok := e.solutions[e.algebra.Key(e.target)]; ok {
			return &foundError{digits: entry.digits}
		}
	}
	if digits <= e.depthFinished {
		return nil
	}
	for len(e.visited) <= digits+1 {
		e.visited = append(e.visited, nil)
	}

	// Restart the unfinished depth, but keep whatever factorial-divide
	// bonus values a previous pass already deposited one depth ahead.
	if e.depthStarted < digits {
		e.startState = append([]V(nil), e.visited[digits]...)
		e.depthStarted = digits
	}
	kept := make(map[string]bool, len(e.startState))
	for _, v := range e.startState {
		kept[e.algebra.Key(v)] = true
	}
	for _, v := range e.visited[digits] {
		k := e.algebra.Key(v)
		if !kept[k] {
			delete(e.solutions, k)
		}
	}
	e.visited[digits] = append([]V(nil), e.startState...)

	for _, seed := range e.specials[digits] {
		if err := e.insertOnly(seed.Value, digits, seed.Witness); err != nil {
			return err
		}
	}

	if err := e.concat(digits); err != nil {
		return err
	}
	if err := e.eachBinaryPair(digits, func(p, q V) error {
		return e.binaryOperation(p, q, digits)
	}); err != nil {
		return err
	}
	if err := e.eachBinaryPair(digits, func(p, q V) error {
		return e.factorialDivide(p, q, digits)
	}); err != nil {
		return err
	}
	e.depthFinished = digits
	return nil
}

// insertOnly records (v, digits, witness) unconditionally: no range
// check, no dedup, no sqrt/factorial cascade. It reports whether v is
// the target. Used for special-seed injection, where the witness is
// already known-good and re-deriving it would be wasted work.
func (e *Engine[V]) insertOnly(v V, digits int, w Witness[V]) error {
	key := e.algebra.Key(v)
	e.solutions[key] = solutionEntry[V]{value: v, digits: digits, witness: w}
	for len(e.visited) <= digits {
		e.visited = append(e.visited, nil)
	}
	e.visited[digits] = append(e.visited[digits], v)
	if e.hasTarget && e.algebra.Equal(v, e.target) {
		return &foundError{digits: digits}
	}
	return nil
}

// check is the search's single entry point for a newly derived value: it
// range-checks, dedups, records the witness, and recursively tries sqrt
// and (for integers) factorial of the freshly inserted value at the same
// depth.
func (e *Engine[V]) check(v V, digits int, w Witness[V], needSqrt bool) error {
	if !e.algebra.RangeCheck(v) {
		return nil
	}
	if _, exists := e.solutions[e.algebra.Key(v)]; exists {
		return nil
	}
	if err := e.insertOnly(v, digits, w); err != nil {
		return err
	}
	if needSqrt {
		if root, ok := e.algebra.Sqrt(v); ok {
			if err := e.check(root, digits, expr.NewSqrt(w), true); err != nil {
				return err
			}
		}
	}
	if e.algebra.IntegerCheck(v) {
		if err := e.checkFactorial(v, digits, w); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine[V]) checkFactorial(v V, digits int, w Witness[V]) error {
	n, ok := e.algebra.ToBigInt(v)
	if !ok || n.Sign() < 0 {
		return nil
	}
	if n.Cmp(big.NewInt(int64(e.algebra.MaxFactorial()))) > 0 {
		return nil
	}
	result := intutil.Factorial(n.Uint64())
	return e.check(e.algebra.FromBigInt(result), digits, expr.NewFactorial(w), true)
}

func (e *Engine[V]) concat(digits int) error {
	if digits > e.algebra.MaxConcat() {
		return nil
	}
	repunit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	repunit.Sub(repunit, big1)
	repunit.Div(repunit, big.NewInt(9))
	repunit.Mul(repunit, new(big.Int).SetUint64(e.n))
	v := e.algebra.FromBigInt(repunit)
	return e.check(v, digits, expr.NewConcat[V](v), true)
}

// eachBinaryPair yields every unordered pair of already-solved values
// whose digit counts sum to digits, stopping (and propagating the error)
// the moment fn reports one.
func (e *Engine[V]) eachBinaryPair(digits int, fn func(p, q V) error) error {
	for d1 := 1; d1 < digits-d1; d1++ {
		d2 := digits - d1
		for _, p := range e.visited[d1] {
			for _, q := range e.visited[d2] {
				if err := fn(p, q); err != nil {
					return err
				}
			}
		}
	}
	if digits%2 == 0 {
		half := e.visited[digits/2]
		for i := range half {
			for j := i; j < len(half); j++ {
				if err := fn(half[i], half[j]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *Engine[V]) binaryOperation(p, q V, digits int) error {
	pw, qw := expr.Leaf(p), expr.Leaf(q)
	if sum, ok := e.algebra.Add(p, q); ok {
		if err := e.check(sum, digits, expr.NewAdd(pw, qw), true); err != nil {
			return err
		}
	}
	if err := e.subtract(p, q, pw, qw, digits); err != nil {
		return err
	}
	if err := e.check(e.algebra.Mul(p, q), digits, expr.NewMul(pw, qw), true); err != nil {
		return err
	}
	if err := e.divide(p, q, pw, qw, digits); err != nil {
		return err
	}
	if err := e.exponentiate(p, q, pw, qw, digits); err != nil {
		return err
	}
	return e.exponentiate(q, p, qw, pw, digits)
}

func (e *Engine[V]) subtract(p, q V, pw, qw Witness[V], digits int) error {
	if e.algebra.Equal(p, q) {
		return nil
	}
	result, ok := e.algebra.Sub(p, q)
	if !ok {
		return nil
	}
	if e.algebra.IsNegative(result) {
		result, ok = e.algebra.Sub(q, p)
		if !ok {
			return nil
		}
		return e.check(result, digits, expr.NewSub(qw, pw), true)
	}
	return e.check(result, digits, expr.NewSub(pw, qw), true)
}

func (e *Engine[V]) divide(p, q V, pw, qw Witness[V], digits int) error {
	if quotient, ok := e.algebra.Div(p, q); ok {
		if err := e.check(quotient, digits, expr.NewDiv(pw, qw), true); err != nil {
			return err
		}
	}
	if quotient, ok := e.algebra.Div(q, p); ok {
		if err := e.check(quotient, digits, expr.NewDiv(qw, pw), true); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine[V]) exponentiate(p, q V, pw, qw Witness[V], digits int) error {
	insert := func(v V, w Witness[V]) error {
		return e.check(v, digits, w, true)
	}
	return e.algebra.Exponent(p, q, pw, qw, insert)
}

func bigFloat(n *big.Int) float64 {
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// factorialDivide implements the x!/y! shortcut (spec §4.4's
// "factorial-quotient heuristic"): when p and q are both plain integers
// far enough apart, x!/y! = x·(x-1)·…·(y+1) reaches values no chain of
// ordinary binary operations could, for the cost of one division. Extra
// values are recorded one digit deeper: when the smaller operand y was
// found at depth 1, (x!-y!)/y!, (x!+y!)/y! and x!/(y!+y!); when the larger
// operand x was, (x!+x!)/y!.
func (e *Engine[V]) factorialDivide(p, q V, digits int) error {
	if e.algebra.Equal(p, q) {
		return nil
	}
	if !e.algebra.IntegerCheck(p) || !e.algebra.IntegerCheck(q) {
		return nil
	}
	x, okx := e.algebra.ToBigInt(p)
	y, oky := e.algebra.ToBigInt(q)
	if !okx || !oky {
		return nil
	}
	if x.Cmp(y) < 0 {
		x, y = y, x
		p, q = q, p
	}
	maxFactorial := big.NewInt(int64(e.algebra.MaxFactorial()))
	diff := new(big.Int).Sub(x, y)
	if x.Cmp(maxFactorial) <= 0 || y.Cmp(big.NewInt(2)) <= 0 || diff.Cmp(big1) == 0 {
		return nil
	}
	if bigFloat(diff)*(intutil.Log2(x)+intutil.Log2(y)) > float64(2*e.algebra.MaxDigits()) {
		return nil
	}

	result := new(big.Int).Set(big1)
	for cursor := new(big.Int).Set(x); cursor.Cmp(y) > 0; cursor.Sub(cursor, big1) {
		result.Mul(result, cursor)
	}

	pLeaf, qLeaf := expr.Leaf(p), expr.Leaf(q)
	pFact, qFact := expr.NewFactorial(pLeaf), expr.NewFactorial(qLeaf)
	if err := e.check(e.algebra.FromBigInt(result), digits, expr.NewDiv(pFact, qFact), true); err != nil {
		return err
	}
	if e.maxDepth != 0 && digits == e.maxDepth {
		return nil
	}
	if entry, ok := e.solutions[e.algebra.Key(q)]; ok && entry.digits == 1 {
		sub1 := new(big.Int).Sub(result, big1)
		add1 := new(big.Int).Add(result, big1)
		half := new(big.Int).Rsh(result, 1)
		if err := e.check(e.algebra.FromBigInt(sub1), digits+1,
			expr.NewDiv(expr.NewSub(pFact, qFact), qFact), true); err != nil {
			return err
		}
		if err := e.check(e.algebra.FromBigInt(add1), digits+1,
			expr.NewDiv(expr.NewAdd(pFact, qFact), qFact), true); err != nil {
			return err
		}
		if err := e.check(e.algebra.FromBigInt(half), digits+1,
			expr.NewDiv(pFact, expr.NewAdd(qFact, qFact)), true); err != nil {
			return err
		}
	}
	if entry, ok := e.solutions[e.algebra.Key(p)]; ok && entry.digits == 1 {
		double := new(big.Int).Lsh(result, 1)
		if err := e.check(e.algebra.FromBigInt(double), digits+1,
			expr.NewDiv(expr.NewAdd(pFact, pFact), qFact), true); err != nil {
			return err
		}
	}
	return nil
}

// Printer renders a single solution line: "<digits>: <value>" and, unless
// the value was reached by bare concatenation, " = <expression>".
func (e *Engine[V]) Printer(v V) string {
	entry := e.solutions[e.algebra.Key(v)]
	line := fmt.Sprintf("%d: %s", entry.digits, v.String())
	if entry.witness.IsConcat() {
		return line
	}
	return line + " = " + entry.witness.Spaced()
}

// SolutionPrettyPrint returns the printed solution line for v followed by
// the recursively printed lines for every intermediate value its witness
// references, each printed at most once across the lifetime of the
// engine. forcePrint overrides the "don't bother printing a bare digit
// concatenation" rule for the top-level call.
func (e *Engine[V]) SolutionPrettyPrint(v V, forcePrint bool) []string {
	key := e.algebra.Key(v)
	if e.printed[key] {
		return nil
	}
	entry, ok := e.solutions[key]
	if !ok {
		return nil
	}
	if entry.witness.IsConcat() && !forcePrint {
		return nil
	}
	out := []string{e.Printer(v)}
	e.printed[key] = true
	for _, req := range entry.witness.Requirements() {
		out = append(out, e.SolutionPrettyPrint(req, false)...)
	}
	return out
}

// FullExpression recursively substitutes every value a witness
// references with that value's own witness, producing one fully expanded
// expression with no shared sub-values: the verbose final-answer form.
func (e *Engine[V]) FullExpression(v V) Witness[V] {
	entry, ok := e.solutions[e.algebra.Key(v)]
	if !ok || entry.witness.IsConcat() {
		return expr.Leaf(v)
	}
	return e.expandWitness(entry.witness)
}

func (e *Engine[V]) expandWitness(w Witness[V]) Witness[V] {
	if w.IsLeaf() {
		return e.FullExpression(w.Value)
	}
	children := make([]Witness[V], len(w.Children))
	for i, c := range w.Children {
		children[i] = e.expandWitness(c)
	}
	return &expr.Expression[V]{Kind: w.Kind, Children: children}
}
