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

// MakeEq constructs the expression lhs == rhs.
func MakeEq(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	return MakeCompare(ctx, ast.EQ, lhs, rhs)
}

// MakeNe constructs the expression lhs != rhs.
func MakeNe(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	return MakeCompare(ctx, ast.NE, lhs, rhs)
}

// MakeLt constructs the expression lhs < rhs.
func MakeLt(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	return MakeCompare(ctx, ast.LT, lhs, rhs)
}

// MakeGt constructs the expression lhs > rhs.
func MakeGt(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	return MakeCompare(ctx, ast.GT, lhs, rhs)
}

// MakeLe constructs the expression lhs <= rhs.
func MakeLe(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	return MakeCompare(ctx, ast.LE, lhs, rhs)
}

// MakeGe constructs the expression lhs >= rhs.
func MakeGe(ctx *Context, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	return MakeCompare(ctx, ast.GE, lhs, rhs)
}

// MakeCompare constructs a comparison in the same way as MakeLogicalAnd:
// dependent comparisons are checked against the active constraints, and
// otherwise both operands must have the same scalar type.
func MakeCompare(ctx *Context, op ast.Comparator, lhs ast.Expr, rhs ast.Expr) (ast.Expr, error) {
	if isDependentOperand(lhs, rhs) {
		var expr = ast.NewCompare(ctx.MakePlaceholder(), op, lhs, rhs)
		//
		if result, ok, err := admitDependent(ctx, expr); err != nil || ok {
			return result, err
		}
		// Assume the comparison is well-formed at every instantiation
		return ast.NewCompare(ctx.BoolType(), op, lhs, rhs), nil
	}
	//
	var (
		lt = StripType(lhs.Type())
		rt = StripType(rhs.Type())
	)
	//
	if !isScalar(lt) || !ast.EquivalentTypes(lt, rt) {
		return nil, NewTranslationError(lhs, "cannot compare %s of type %s with %s of type %s",
			lhs, lhs.Type(), rhs, rhs.Type())
	}
	//
	return ast.NewCompare(ctx.BoolType(), op, lhs, rhs), nil
}

func isScalar(t ast.Type) bool {
	switch t.(type) {
	case *ast.BooleanType, *ast.IntegerType, *ast.FloatType, *ast.PointerType, *ast.EnumType:
		return true
	default:
		return false
	}
}
