// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"fmt"
)

// Cons is the closed family of constraints: the normal form of a constraint
// expression.  Conjunctions and disjunctions are nested to the right so that
// reassociated formulas have the same shape.
type Cons interface {
	Term
	isCons()
}

// ConceptCons checks a concept against arguments.  It is expanded on
// demand.
type ConceptCons struct {
	concept Decl
	args    []Term
}

// PredicateCons is an atomic boolean expression.
type PredicateCons struct {
	expr Expr
}

// ExpressionCons requires an expression to be valid (with its type).
type ExpressionCons struct {
	expr Expr
}

// ParameterizedCons introduces the parameters of a requires expression over
// a constraint.
type ParameterizedCons struct {
	params []Decl
	cons   Cons
}

// ConjunctionCons holds when both operands hold.
type ConjunctionCons struct {
	left  Cons
	right Cons
}

// DisjunctionCons holds when either operand holds.
type DisjunctionCons struct {
	left  Cons
	right Cons
}

// NewConceptCons constructs a concept constraint.
func NewConceptCons(concept Decl, args []Term) *ConceptCons {
	return &ConceptCons{concept, args}
}

// NewPredicateCons constructs an atomic constraint.
func NewPredicateCons(expr Expr) *PredicateCons { return &PredicateCons{expr} }

// NewExpressionCons constructs a usage requirement.
func NewExpressionCons(expr Expr) *ExpressionCons { return &ExpressionCons{expr} }

// NewParameterizedCons constructs a parameterised constraint.
func NewParameterizedCons(params []Decl, cons Cons) *ParameterizedCons {
	return &ParameterizedCons{params, cons}
}

// NewConjunctionCons constructs a conjunction.
func NewConjunctionCons(left Cons, right Cons) *ConjunctionCons {
	return &ConjunctionCons{left, right}
}

// NewDisjunctionCons constructs a disjunction.
func NewDisjunctionCons(left Cons, right Cons) *DisjunctionCons {
	return &DisjunctionCons{left, right}
}

// Concept returns the concept being checked.
func (p *ConceptCons) Concept() Decl { return p.concept }

// Arguments returns the concept arguments.
func (p *ConceptCons) Arguments() []Term { return p.args }

// Expr returns the predicate.
func (p *PredicateCons) Expr() Expr { return p.expr }

// Expr returns the required expression.
func (p *ExpressionCons) Expr() Expr { return p.expr }

// Parameters returns the introduced parameters.
func (p *ParameterizedCons) Parameters() []Decl { return p.params }

// Constraint returns the constraint over the parameters.
func (p *ParameterizedCons) Constraint() Cons { return p.cons }

// Left returns the left operand.
func (p *ConjunctionCons) Left() Cons { return p.left }

// Right returns the right operand.
func (p *ConjunctionCons) Right() Cons { return p.right }

// Left returns the left operand.
func (p *DisjunctionCons) Left() Cons { return p.left }

// Right returns the right operand.
func (p *DisjunctionCons) Right() Cons { return p.right }

func (p *ConceptCons) String() string {
	return fmt.Sprintf("%s<%s>", p.concept.Name(), joinTerms(p.args))
}

func (p *PredicateCons) String() string  { return p.expr.String() }
func (p *ExpressionCons) String() string { return fmt.Sprintf("valid(%s: %s)", p.expr, p.expr.Type()) }

func (p *ParameterizedCons) String() string {
	return fmt.Sprintf("\\(%s).%s", joinDecls(p.params), p.cons)
}

func (p *ConjunctionCons) String() string { return fmt.Sprintf("(%s /\\ %s)", p.left, p.right) }
func (p *DisjunctionCons) String() string { return fmt.Sprintf("(%s \\/ %s)", p.left, p.right) }

func (*ConceptCons) isTerm()       {}
func (*PredicateCons) isTerm()     {}
func (*ExpressionCons) isTerm()    {}
func (*ParameterizedCons) isTerm() {}
func (*ConjunctionCons) isTerm()   {}
func (*DisjunctionCons) isTerm()   {}

func (*ConceptCons) isCons()       {}
func (*PredicateCons) isCons()     {}
func (*ExpressionCons) isCons()    {}
func (*ParameterizedCons) isCons() {}
func (*ConjunctionCons) isCons()   {}
func (*DisjunctionCons) isCons()   {}
