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
)

// Normalize reduces a constraint expression to its normal form.  Logical
// connectives become conjunctions and disjunctions, flattened and nested to
// the right so that reassociated formulas have identical shapes.  Concept
// checks become (unexpanded) concept constraints, and requires expressions
// become parameterised conjunctions of usage requirements.  Anything else is
// an atomic predicate.
func Normalize(ctx *Context, expr ast.Expr) ast.Cons {
	switch e := expr.(type) {
	case *ast.And:
		return chain(flatten(ctx, e, true), true)
	case *ast.Or:
		return chain(flatten(ctx, e, false), false)
	case *ast.Check:
		return ast.NewConceptCons(e.Concept(), e.Arguments())
	case *ast.Requires:
		return normalizeRequires(ctx, e)
	default:
		return ast.NewPredicateCons(expr)
	}
}

func normalizeRequires(ctx *Context, e *ast.Requires) ast.Cons {
	var cons []ast.Cons
	//
	for _, req := range e.Requirements() {
		cons = append(cons, ast.NewExpressionCons(req.Expr()))
	}
	//
	if len(cons) == 0 {
		cons = append(cons, ast.NewPredicateCons(ast.NewBooleanLiteral(ctx.BoolType(), true)))
	}
	//
	var body = chain(cons, true)
	//
	if len(e.Parameters()) == 0 {
		return body
	}
	//
	return ast.NewParameterizedCons(e.Parameters(), body)
}

// Flatten a tree of one connective into its normalized operands, left to
// right.  An operand which itself normalizes to the same connective is
// spliced in.
func flatten(ctx *Context, expr ast.Expr, conjunction bool) []ast.Cons {
	if lhs, rhs, ok := operands(expr, conjunction); ok {
		return append(flatten(ctx, lhs, conjunction), flatten(ctx, rhs, conjunction)...)
	}
	//
	return splice(Normalize(ctx, expr), conjunction)
}

func operands(expr ast.Expr, conjunction bool) (ast.Expr, ast.Expr, bool) {
	switch e := expr.(type) {
	case *ast.And:
		if conjunction {
			return e.Left(), e.Right(), true
		}
	case *ast.Or:
		if !conjunction {
			return e.Left(), e.Right(), true
		}
	}
	//
	return nil, nil, false
}

// Split a normalized (hence right-nested) chain into its operands.
func splice(cons ast.Cons, conjunction bool) []ast.Cons {
	switch c := cons.(type) {
	case *ast.ConjunctionCons:
		if conjunction {
			return append([]ast.Cons{c.Left()}, splice(c.Right(), conjunction)...)
		}
	case *ast.DisjunctionCons:
		if !conjunction {
			return append([]ast.Cons{c.Left()}, splice(c.Right(), conjunction)...)
		}
	}
	//
	return []ast.Cons{cons}
}

// Rebuild a right-nested chain from a non-empty list of operands.
func chain(operands []ast.Cons, conjunction bool) ast.Cons {
	var result = operands[len(operands)-1]
	//
	for i := len(operands) - 2; i >= 0; i-- {
		if conjunction {
			result = ast.NewConjunctionCons(operands[i], result)
		} else {
			result = ast.NewDisjunctionCons(operands[i], result)
		}
	}
	//
	return result
}
