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
package compiler

import (
	"github.com/consensys/go-banjo/pkg/banjo/ast"
	"github.com/hashicorp/go-set/v3"
)

// Admit searches a constraint for an expression equivalent to a candidate,
// returning the constraint's copy (which carries the type the constraint
// establishes).  Concept constraints are expanded before being searched,
// and the operands of conjunctions and disjunctions are searched left to
// right with the first match winning.  If nothing matches, the result is
// nil: this is not an error.  A concept reached again while it is being
// expanded is an error.
func Admit(ctx *Context, cons ast.Cons, candidate ast.Expr) (ast.Expr, error) {
	return ast.ApplyCons(cons, &admission{ctx, candidate, set.New[expansionKey](0)})
}

// AdmitExpression normalizes a constraint expression and searches it for a
// candidate.
func AdmitExpression(ctx *Context, constraint ast.Expr, candidate ast.Expr) (ast.Expr, error) {
	return Admit(ctx, Normalize(ctx, constraint), candidate)
}

type admission struct {
	ctx       *Context
	candidate ast.Expr
	// Concept constraints currently being expanded
	expanding *set.Set[expansionKey]
}

func (p *admission) match(expr ast.Expr) (ast.Expr, error) {
	if ast.EquivalentOperation(expr, p.candidate) {
		return expr, nil
	}
	//
	return nil, nil
}

func (p *admission) VisitConceptCons(c *ast.ConceptCons) (ast.Expr, error) {
	var key = expansionKey{c.Concept(), argumentsKey(c.Arguments())}
	//
	if !p.expanding.Insert(key) {
		return nil, NewTranslationError(c, "concept %s is defined in terms of itself", c.Concept().Name())
	}
	//
	defer p.expanding.Remove(key)
	//
	cons, err := Expand(p.ctx, c)
	if err != nil {
		return nil, err
	}
	//
	return ast.ApplyCons(cons, p)
}

func (p *admission) VisitPredicateCons(c *ast.PredicateCons) (ast.Expr, error) {
	return p.match(c.Expr())
}

func (p *admission) VisitExpressionCons(c *ast.ExpressionCons) (ast.Expr, error) {
	return p.match(c.Expr())
}

func (p *admission) VisitParameterizedCons(c *ast.ParameterizedCons) (ast.Expr, error) {
	return ast.ApplyCons(c.Constraint(), p)
}

func (p *admission) VisitConjunctionCons(c *ast.ConjunctionCons) (ast.Expr, error) {
	return p.either(c.Left(), c.Right())
}

func (p *admission) VisitDisjunctionCons(c *ast.DisjunctionCons) (ast.Expr, error) {
	return p.either(c.Left(), c.Right())
}

func (p *admission) either(lhs ast.Cons, rhs ast.Cons) (ast.Expr, error) {
	if expr, err := ast.ApplyCons(lhs, p); err != nil || expr != nil {
		return expr, err
	}
	//
	return ast.ApplyCons(rhs, p)
}
