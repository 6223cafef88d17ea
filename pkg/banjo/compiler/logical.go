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
	log "github.com/sirupsen/logrus"
)

// MakeLogicalAnd constructs the expression lhs && rhs.  When neither operand
// is dependent, both are converted to bool.  Otherwise the expression is
// given a fresh placeholder type and checked against the active constraints
// which, if they contain an equivalent expression, determine its meaning.
// When no constraint matches, the operands are assumed to be convertible to
// bool.
func MakeLogicalAnd(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	if isDependentOperand(lhs, rhs) {
		var expr = ast.NewAnd(ctx.MakePlaceholder(), lhs, rhs)
		//
		if result, ok, err := admitDependent(ctx, expr); err != nil || ok {
			return result, err
		}
	}
	//
	return makeStandardAnd(ctx, lhs, rhs)
}

// MakeLogicalOr constructs the expression lhs || rhs, in the same way as
// MakeLogicalAnd.
func MakeLogicalOr(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	if isDependentOperand(lhs, rhs) {
		var expr = ast.NewOr(ctx.MakePlaceholder(), lhs, rhs)
		//
		if result, ok, err := admitDependent(ctx, expr); err != nil || ok {
			return result, err
		}
	}
	//
	return makeStandardOr(ctx, lhs, rhs)
}

// MakeLogicalNot constructs the expression !operand, in the same way as
// MakeLogicalAnd.
func MakeLogicalNot(ctx *Context, operand ast.Expr) (ast.Expr, error) {
	if isDependentOperand(operand) {
		var expr = ast.NewNot(ctx.MakePlaceholder(), operand)
		//
		if result, ok, err := admitDependent(ctx, expr); err != nil || ok {
			return result, err
		}
	}
	//
	return makeStandardNot(ctx, operand)
}

func makeStandardAnd(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	// TODO: search for a user-defined operator&& (and likewise || and !)
	// before converting, once classes can declare operators.
	l, r, err := convertOperands(ctx, lhs, rhs)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewAnd(ctx.BoolType(), l, r), nil
}

func makeStandardOr(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	l, r, err := convertOperands(ctx, lhs, rhs)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewOr(ctx.BoolType(), l, r), nil
}

func makeStandardNot(ctx *Context, operand ast.Expr) (ast.Expr, error) {
	o, err := ContextualConversionToBool(ctx, operand)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewNot(ctx.BoolType(), o), nil
}

func convertOperands(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, ast.Expr, error) {
	l, err := ContextualConversionToBool(ctx, lhs)
	if err != nil {
		return nil, nil, err
	}
	//
	r, err := ContextualConversionToBool(ctx, rhs)
	if err != nil {
		return nil, nil, err
	}
	//
	return l, r, nil
}

func isDependentOperand(operands ...ast.Expr) bool {
	for _, e := range operands {
		if ast.IsDependentType(e.Type()) {
			return true
		}
	}
	//
	return false
}

// Determine the meaning of a placeholder-typed expression.  The flag
// indicates whether a result was determined; when it is false the caller
// falls back to the standard construction.
func admitDependent(ctx *Context, expr ast.Expr) (ast.Expr, bool, error) {
	var constraints = ctx.Constraints()
	//
	if ctx.InRequirements() || constraints == nil {
		return expr, true, nil
	}
	//
	result, err := Admit(ctx, constraints, expr)
	if err != nil {
		return nil, false, err
	} else if result != nil {
		log.Debugf("admitted %s as %s : %s", expr, result, result.Type())
		return result, true, nil
	}
	//
	log.Debugf("no constraint admits %s", expr)
	//
	return nil, false, nil
}
