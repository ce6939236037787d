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

// Package expr implements the Tchisla expression tree: a small operator
// DAG that records witnesses for values discovered by the search engine,
// and a precedence-aware pretty printer.
package expr

import "strings"

// Kind identifies the operator (or leaf) a node represents.
type Kind int

const (
	Number Kind = iota
	Concat
	Negate
	Factorial
	Sqrt
	Add
	Sub
	Mul
	Div
	Pow
)

type opInfo struct {
	precedence int
	abelian    bool
	// rtl is only meaningful for binary operators; it is true when the
	// operator is right-associative (only "^" in this grammar).
	rtl bool
}

var operators = map[Kind]opInfo{
	Number:    {precedence: 7},
	Concat:    {precedence: 7},
	Sqrt:      {precedence: 6, abelian: true},
	Factorial: {precedence: 5, abelian: true},
	Pow:       {precedence: 4, rtl: true},
	Mul:       {precedence: 3, abelian: true},
	Div:       {precedence: 3},
	Negate:    {precedence: 2},
	Add:       {precedence: 1, abelian: true},
	Sub:       {precedence: 1},
}

// Stringer is the minimal requirement an expression leaf value must
// satisfy: the search algebras (numalg.Integer, numalg.Rational,
// numalg.Quadratic) all implement it.
type Stringer interface {
	String() string
}

// Expression[V] is a node in the operator DAG. Leaves (Number, Concat)
// carry a Value; every other kind carries one or two Children.
type Expression[V Stringer] struct {
	Kind     Kind
	Children []*Expression[V]
	Value    V
}

// Leaf builds a bare numeric leaf wrapping an already-solved value. This
// is how binary operators reference an operand that has its own entry in
// the solution table, without duplicating its witness subtree.
func Leaf[V Stringer](v V) *Expression[V] {
	return &Expression[V]{Kind: Number, Value: v}
}

// NewConcat builds the leaf for the digit-concatenation value itself.
func NewConcat[V Stringer](v V) *Expression[V] {
	return &Expression[V]{Kind: Concat, Value: v}
}

func unary[V Stringer](kind Kind, x *Expression[V]) *Expression[V] {
	return &Expression[V]{Kind: kind, Children: []*Expression[V]{x}}
}

func binary[V Stringer](kind Kind, x, y *Expression[V]) *Expression[V] {
	return &Expression[V]{Kind: kind, Children: []*Expression[V]{x, y}}
}

func NewNegate[V Stringer](x *Expression[V]) *Expression[V]    { return unary(Negate, x) }
func NewFactorial[V Stringer](x *Expression[V]) *Expression[V] { return unary(Factorial, x) }
func NewSqrt[V Stringer](x *Expression[V]) *Expression[V]      { return unary(Sqrt, x) }

func NewAdd[V Stringer](x, y *Expression[V]) *Expression[V] { return binary(Add, x, y) }
func NewSub[V Stringer](x, y *Expression[V]) *Expression[V] { return binary(Sub, x, y) }
func NewMul[V Stringer](x, y *Expression[V]) *Expression[V] { return binary(Mul, x, y) }
func NewDiv[V Stringer](x, y *Expression[V]) *Expression[V] { return binary(Div, x, y) }
func NewPow[V Stringer](x, y *Expression[V]) *Expression[V] { return binary(Pow, x, y) }

// IsConcat reports whether the node is a bare digit-concatenation leaf.
func (e *Expression[V]) IsConcat() bool {
	return e != nil && e.Kind == Concat
}

// IsLeaf reports whether the node carries a Value rather than Children.
func (e *Expression[V]) IsLeaf() bool {
	return e.Kind == Number || e.Kind == Concat
}

func (e *Expression[V]) precedence() int {
	return operators[e.Kind].precedence
}

// String renders the expression with no spaces around binary operators,
// matching the Tchisla community's compact notation.
func (e *Expression[V]) String() string {
	return e.render(false)
}

// Spaced renders the expression with spaces around binary operators,
// used for the verbose, human-facing trace lines.
func (e *Expression[V]) Spaced() string {
	return e.render(true)
}

var symbol = map[Kind]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Pow: "^",
}

func (e *Expression[V]) render(spaces bool) string {
	switch e.Kind {
	case Number, Concat:
		return e.Value.String()
	case Negate:
		return "-" + e.wrapChild(e.Children[0], spaces, false)
	case Factorial:
		return e.wrapChild(e.Children[0], spaces, false) + "!"
	case Sqrt:
		depth := 1
		inner := e.Children[0]
		for inner.Kind == Sqrt {
			depth++
			inner = inner.Children[0]
		}
		return strings.Repeat("s", depth) + "qrt(" + inner.render(spaces) + ")"
	default:
		op := operators[e.Kind]
		left := e.wrapBinaryChild(e.Children[0], spaces, op, 0)
		right := e.wrapBinaryChild(e.Children[1], spaces, op, 1)
		sym := symbol[e.Kind]
		if spaces {
			return left + " " + sym + " " + right
		}
		return left + sym + right
	}
}

// wrapChild parenthesizes a unary operator's operand when its own
// precedence is below the parent's, or equal to it when the parent is not
// abelian (sqrt handles its own chain collapsing separately and never
// reaches here).
func (e *Expression[V]) wrapChild(child *Expression[V], spaces bool, abelianParent bool) string {
	parentPrecedence := operators[e.Kind].precedence
	comparator := lessOrEqual
	if operators[e.Kind].abelian {
		comparator = less
	}
	s := child.render(spaces)
	if comparator(child.precedence(), parentPrecedence) {
		return "(" + s + ")"
	}
	return s
}

func less(a, b int) bool        { return a < b }
func lessOrEqual(a, b int) bool { return a <= b }

// wrapBinaryChild decides whether a child needs parentheses: iff its
// precedence is strictly lower than the parent's, or equal and the parent
// is non-abelian and the child position violates the parent's
// associativity direction.
func (e *Expression[V]) wrapBinaryChild(child *Expression[V], spaces bool, op opInfo, index int) string {
	diff := child.precedence() - op.precedence
	needParens := diff < 0
	if diff == 0 && !op.abelian {
		// left-associative operators need parens on the right operand;
		// right-associative ones need parens on the left operand.
		if op.rtl {
			needParens = index == 0
		} else {
			needParens = index == 1
		}
	}
	s := child.render(spaces)
	if needParens {
		return "(" + s + ")"
	}
	return s
}

// Requirements returns every leaf Value referenced anywhere in the
// subtree (Concat leaves included), in left-to-right order. The caller
// uses this to find intermediate values that need their own printed line.
func (e *Expression[V]) Requirements() []V {
	var out []V
	e.collect(&out)
	return out
}

func (e *Expression[V]) collect(out *[]V) {
	if e.IsLeaf() {
		*out = append(*out, e.Value)
		return
	}
	for _, c := range e.Children {
		c.collect(out)
	}
}

// Map returns a new expression with every leaf Value (but not the
// tree shape) replaced by the subtree f returns for it, for example a
// leaf's own witness subtree.
func Map[V Stringer, W Stringer](e *Expression[V], f func(Kind, V) *Expression[W]) *Expression[W] {
	if e.IsLeaf() {
		return f(e.Kind, e.Value)
	}
	children := make([]*Expression[W], len(e.Children))
	for i, c := range e.Children {
		children[i] = Map(c, f)
	}
	return &Expression[W]{Kind: e.Kind, Children: children}
}
