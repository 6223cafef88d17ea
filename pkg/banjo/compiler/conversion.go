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

// ContextualConversionToBool converts an expression for use as a truth
// value.  Expressions of type bool are returned unchanged, scalars are
// wrapped in a conversion and other types cannot be converted.  Dependent
// operands are assumed to be convertible.
func ContextualConversionToBool(ctx *Context, expr ast.Expr) (ast.Expr, error) {
	return ast.ApplyType(StripType(expr.Type()), &boolConversion{ctx, expr})
}

type boolConversion struct {
	ctx  *Context
	expr ast.Expr
}

func (p *boolConversion) convert() (ast.Expr, error) {
	return ast.NewBooleanConversion(p.ctx.BoolType(), p.expr), nil
}

func (p *boolConversion) fail() (ast.Expr, error) {
	return nil, NewTranslationError(p.expr, "cannot convert %s of type %s to bool", p.expr, p.expr.Type())
}

func (p *boolConversion) VisitVoid(*ast.VoidType) (ast.Expr, error) { return p.fail() }

func (p *boolConversion) VisitBoolean(*ast.BooleanType) (ast.Expr, error) {
	return p.expr, nil
}

func (p *boolConversion) VisitInteger(*ast.IntegerType) (ast.Expr, error) { return p.convert() }
func (p *boolConversion) VisitFloat(*ast.FloatType) (ast.Expr, error)     { return p.convert() }
func (p *boolConversion) VisitAuto(*ast.AutoType) (ast.Expr, error)       { return p.convert() }

func (p *boolConversion) VisitDecltype(t *ast.DecltypeType) (ast.Expr, error) {
	return ast.ApplyType(StripType(t.Expr().Type()), p)
}

func (p *boolConversion) VisitDeclauto(*ast.DeclautoType) (ast.Expr, error) { return p.fail() }
func (p *boolConversion) VisitFunction(*ast.FunctionType) (ast.Expr, error) { return p.fail() }

func (p *boolConversion) VisitReference(*ast.ReferenceType) (ast.Expr, error) {
	// references are stripped before dispatch
	panic("unreachable")
}

func (p *boolConversion) VisitQualified(*ast.QualifiedType) (ast.Expr, error) {
	panic("unreachable")
}

func (p *boolConversion) VisitPointer(*ast.PointerType) (ast.Expr, error)   { return p.convert() }
func (p *boolConversion) VisitArray(*ast.ArrayType) (ast.Expr, error)       { return p.convert() }
func (p *boolConversion) VisitSequence(*ast.SequenceType) (ast.Expr, error) { return p.convert() }
func (p *boolConversion) VisitClass(*ast.ClassType) (ast.Expr, error)       { return p.fail() }
func (p *boolConversion) VisitUnion(*ast.UnionType) (ast.Expr, error)       { return p.fail() }
func (p *boolConversion) VisitEnum(*ast.EnumType) (ast.Expr, error)         { return p.convert() }
func (p *boolConversion) VisitTypename(*ast.TypenameType) (ast.Expr, error) { return p.convert() }
