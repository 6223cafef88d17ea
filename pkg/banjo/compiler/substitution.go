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
	"fmt"
	"strings"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
)

// Substitution maps template parameter declarations to arguments.  Lookup is
// by declaration identity.  Parameters which are not mapped are left alone,
// so substitution may be applied in stages.
type Substitution struct {
	// Mapped parameters in order of insertion
	params []ast.Decl
	args   map[ast.Decl]ast.Term
}

// NewSubstitution constructs an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{nil, make(map[ast.Decl]ast.Term)}
}

// NewSubstitutionFrom maps each parameter to the corresponding argument.  The
// arguments are assumed to have been checked against the parameters.
func NewSubstitutionFrom(params []ast.Decl, args []ast.Term) *Substitution {
	var s = NewSubstitution()
	//
	if len(params) != len(args) {
		panic(fmt.Sprintf("substitution of %d arguments for %d parameters", len(args), len(params)))
	}
	//
	for i, p := range params {
		s.Map(p, args[i])
	}
	//
	return s
}

// Map a parameter to an argument, replacing any existing mapping.
func (p *Substitution) Map(param ast.Decl, arg ast.Term) {
	if _, ok := p.args[param]; !ok {
		p.params = append(p.params, param)
	}
	//
	p.args[param] = arg
}

// Get returns the argument mapped to a given parameter, if any.
func (p *Substitution) Get(param ast.Decl) (ast.Term, bool) {
	arg, ok := p.args[param]
	return arg, ok
}

// Parameters returns the mapped parameters in order of insertion.
func (p *Substitution) Parameters() []ast.Decl { return p.params }

// Closes determines whether every parameter on which a type depends is
// mapped by this substitution.
func (p *Substitution) Closes(t ast.Type) bool {
	for param := range ast.FreeParameters(t).Items() {
		if _, ok := p.args[param]; !ok {
			return false
		}
	}
	//
	return true
}

// Extend returns a copy of this substitution which can be extended without
// affecting the original.
func (p *Substitution) Extend() *Substitution {
	var s = NewSubstitution()
	//
	for _, param := range p.params {
		s.Map(param, p.args[param])
	}
	//
	return s
}

func (p *Substitution) String() string {
	var strs = make([]string, len(p.params))
	//
	for i, param := range p.params {
		strs[i] = fmt.Sprintf("%s:=%s", param.Name(), p.args[param])
	}
	//
	return fmt.Sprintf("[%s]", strings.Join(strs, ", "))
}

// Substitute applies a substitution to a type, expression or declaration.
func Substitute(ctx *Context, term ast.Term, s *Substitution) (ast.Term, error) {
	switch t := term.(type) {
	case ast.Type:
		return SubstituteType(ctx, t, s)
	case ast.Expr:
		return SubstituteExpr(ctx, t, s)
	case ast.Decl:
		return SubstituteDecl(ctx, t, s)
	default:
		return nil, NewUnsupportedError("substitution into %T", term)
	}
}

// SubstituteType applies a substitution to a type.  Compound types are
// rebuilt through the builder, nominal types are returned unchanged and a
// typename is replaced by its argument (if mapped).
func SubstituteType(ctx *Context, t ast.Type, s *Substitution) (ast.Type, error) {
	return ast.ApplyType(t, &typeSubstituter{ctx, s})
}

// SubstituteExpr applies a substitution to an expression.  Operators are
// rebuilt through the same constructors used during elaboration, in
// requirements mode so that the active constraints are not consulted.
func SubstituteExpr(ctx *Context, e ast.Expr, s *Substitution) (ast.Expr, error) {
	var restore = ctx.EnterRequirements()
	//
	defer restore()
	//
	return ast.ApplyExpr(e, &exprSubstituter{ctx, s})
}

// SubstituteDecl applies a substitution to a declaration, producing a new
// declaration with the same name.  The new declaration is not bound in any
// scope.  Only variables and object parameters are supported.
func SubstituteDecl(ctx *Context, d ast.Decl, s *Substitution) (ast.Decl, error) {
	return ast.ApplyDecl(d, &declSubstituter{ctx, s})
}

// ============================================================================
// Types
// ============================================================================

type typeSubstituter struct {
	ctx *Context
	s   *Substitution
}

func (p *typeSubstituter) apply(t ast.Type) (ast.Type, error) {
	return ast.ApplyType(t, p)
}

func (p *typeSubstituter) VisitVoid(t *ast.VoidType) (ast.Type, error)       { return t, nil }
func (p *typeSubstituter) VisitBoolean(t *ast.BooleanType) (ast.Type, error) { return t, nil }
func (p *typeSubstituter) VisitInteger(t *ast.IntegerType) (ast.Type, error) { return t, nil }
func (p *typeSubstituter) VisitFloat(t *ast.FloatType) (ast.Type, error)     { return t, nil }

func (p *typeSubstituter) VisitAuto(t *ast.AutoType) (ast.Type, error) {
	return nil, NewUnsupportedError("substitution into placeholder type %s", t)
}

func (p *typeSubstituter) VisitDecltype(t *ast.DecltypeType) (ast.Type, error) {
	return nil, NewUnsupportedError("substitution into %s", t)
}

func (p *typeSubstituter) VisitDeclauto(t *ast.DeclautoType) (ast.Type, error) {
	return nil, NewUnsupportedError("substitution into %s", t)
}

func (p *typeSubstituter) VisitFunction(t *ast.FunctionType) (ast.Type, error) {
	var params = make([]ast.Type, len(t.Parameters()))
	//
	for i, param := range t.Parameters() {
		var err error
		//
		if params[i], err = p.apply(param); err != nil {
			return nil, err
		}
	}
	//
	ret, err := p.apply(t.Return())
	if err != nil {
		return nil, err
	}
	//
	return p.ctx.Builder().FunctionType(params, ret), nil
}

func (p *typeSubstituter) VisitReference(t *ast.ReferenceType) (ast.Type, error) {
	referent, err := p.apply(t.Referent())
	if err != nil {
		return nil, err
	}
	//
	return p.ctx.Builder().ReferenceType(referent), nil
}

func (p *typeSubstituter) VisitQualified(t *ast.QualifiedType) (ast.Type, error) {
	referent, err := p.apply(t.Referent())
	if err != nil {
		return nil, err
	}
	//
	return p.ctx.Builder().QualifiedType(referent, t.Qualifiers()), nil
}

func (p *typeSubstituter) VisitPointer(t *ast.PointerType) (ast.Type, error) {
	referent, err := p.apply(t.Referent())
	if err != nil {
		return nil, err
	}
	//
	return p.ctx.Builder().PointerType(referent), nil
}

func (p *typeSubstituter) VisitArray(t *ast.ArrayType) (ast.Type, error) {
	// TODO: substitute into the bound once value parameters can be mapped
	// in types.
	return nil, NewUnsupportedError("substitution into array type %s", t)
}

func (p *typeSubstituter) VisitSequence(t *ast.SequenceType) (ast.Type, error) {
	element, err := p.apply(t.Element())
	if err != nil {
		return nil, err
	}
	//
	return p.ctx.Builder().SequenceType(element), nil
}

func (p *typeSubstituter) VisitClass(t *ast.ClassType) (ast.Type, error) { return t, nil }
func (p *typeSubstituter) VisitUnion(t *ast.UnionType) (ast.Type, error) { return t, nil }
func (p *typeSubstituter) VisitEnum(t *ast.EnumType) (ast.Type, error)   { return t, nil }

func (p *typeSubstituter) VisitTypename(t *ast.TypenameType) (ast.Type, error) {
	arg, ok := p.s.Get(t.Declaration())
	//
	if !ok {
		return t, nil
	} else if typ, ok := arg.(ast.Type); ok {
		return typ, nil
	}
	//
	return nil, NewTranslationError(arg, "argument %s for parameter %s is not a type", arg, t)
}

// ============================================================================
// Expressions
// ============================================================================

type exprSubstituter struct {
	ctx *Context
	s   *Substitution
}

func (p *exprSubstituter) apply(e ast.Expr) (ast.Expr, error) {
	return ast.ApplyExpr(e, p)
}

func (p *exprSubstituter) applyAll(exprs []ast.Expr) ([]ast.Expr, error) {
	var (
		result = make([]ast.Expr, len(exprs))
		err    error
	)
	//
	for i, e := range exprs {
		if result[i], err = p.apply(e); err != nil {
			return nil, err
		}
	}
	//
	return result, nil
}

func (p *exprSubstituter) VisitBooleanLiteral(e *ast.BooleanLiteral) (ast.Expr, error) {
	return e, nil
}

func (p *exprSubstituter) VisitIntegerLiteral(e *ast.IntegerLiteral) (ast.Expr, error) {
	return e, nil
}

func (p *exprSubstituter) VisitReference(e *ast.Reference) (ast.Expr, error) {
	if arg, ok := p.s.Get(e.Declaration()); ok {
		switch arg := arg.(type) {
		case ast.Expr:
			return arg, nil
		case ast.Decl:
			return ast.NewReference(ast.DeclType(arg), arg), nil
		default:
			return nil, NewTranslationError(arg, "argument %s for parameter %s is not a value", arg,
				e.Declaration().Name())
		}
	}
	// Unmapped references keep their declaration
	typ, err := SubstituteType(p.ctx, e.Type(), p.s)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewReference(typ, e.Declaration()), nil
}

func (p *exprSubstituter) VisitCheck(e *ast.Check) (ast.Expr, error) {
	var args = make([]ast.Term, len(e.Arguments()))
	//
	for i, arg := range e.Arguments() {
		var err error
		//
		if args[i], err = Substitute(p.ctx, arg, p.s); err != nil {
			return nil, err
		}
	}
	//
	return ast.NewCheck(p.ctx.BoolType(), e.Concept(), args), nil
}

func (p *exprSubstituter) VisitRequires(e *ast.Requires) (ast.Expr, error) {
	var (
		inner  = p.s.Extend()
		params = make([]ast.Decl, len(e.Parameters()))
		reqs   = make([]ast.Requirement, len(e.Requirements()))
	)
	// Parameters are instantiated afresh and mapped for the body
	for i, param := range e.Parameters() {
		var err error
		//
		if params[i], err = SubstituteDecl(p.ctx, param, p.s); err != nil {
			return nil, err
		}
		//
		inner.Map(param, params[i])
	}
	//
	for i, req := range e.Requirements() {
		expr, err := SubstituteExpr(p.ctx, req.Expr(), inner)
		if err != nil {
			return nil, err
		}
		//
		switch req := req.(type) {
		case *ast.SimpleRequirement:
			reqs[i] = ast.NewSimpleRequirement(expr)
		case *ast.TypedRequirement:
			typ, err := SubstituteType(p.ctx, req.Type(), p.s)
			if err != nil {
				return nil, err
			}
			//
			reqs[i] = ast.NewTypedRequirement(Retype(expr, typ), typ)
		default:
			panic(fmt.Sprintf("unknown requirement %T", req))
		}
	}
	//
	return ast.NewRequires(p.ctx.BoolType(), params, reqs), nil
}

func (p *exprSubstituter) VisitAnd(e *ast.And) (ast.Expr, error) {
	lhs, rhs, err := p.applyBinary(e.Left(), e.Right())
	if err != nil {
		return nil, err
	}
	//
	return MakeLogicalAnd(p.ctx, lhs, rhs)
}

func (p *exprSubstituter) VisitOr(e *ast.Or) (ast.Expr, error) {
	lhs, rhs, err := p.applyBinary(e.Left(), e.Right())
	if err != nil {
		return nil, err
	}
	//
	return MakeLogicalOr(p.ctx, lhs, rhs)
}

func (p *exprSubstituter) VisitNot(e *ast.Not) (ast.Expr, error) {
	operand, err := p.apply(e.Operand())
	if err != nil {
		return nil, err
	}
	//
	return MakeLogicalNot(p.ctx, operand)
}

func (p *exprSubstituter) VisitCompare(e *ast.Compare) (ast.Expr, error) {
	lhs, rhs, err := p.applyBinary(e.Left(), e.Right())
	if err != nil {
		return nil, err
	}
	//
	return MakeCompare(p.ctx, e.Comparator(), lhs, rhs)
}

func (p *exprSubstituter) VisitBooleanConversion(e *ast.BooleanConversion) (ast.Expr, error) {
	operand, err := p.apply(e.Operand())
	if err != nil {
		return nil, err
	}
	//
	return ContextualConversionToBool(p.ctx, operand)
}

func (p *exprSubstituter) VisitCall(e *ast.Call) (ast.Expr, error) {
	args, err := p.applyAll(e.Arguments())
	if err != nil {
		return nil, err
	}
	//
	typ, err := SubstituteType(p.ctx, e.Type(), p.s)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewCall(typ, e.Function(), args), nil
}

func (p *exprSubstituter) applyBinary(lhs ast.Expr, rhs ast.Expr) (ast.Expr, ast.Expr, error) {
	l, err := p.apply(lhs)
	if err != nil {
		return nil, nil, err
	}
	//
	r, err := p.apply(rhs)
	if err != nil {
		return nil, nil, err
	}
	//
	return l, r, nil
}

// ============================================================================
// Declarations
// ============================================================================

type declSubstituter struct {
	ctx *Context
	s   *Substitution
}

// The initializer of a variable is not substituted.
func (p *declSubstituter) VisitVariable(d *ast.VariableDecl) (ast.Decl, error) {
	typ, err := SubstituteType(p.ctx, d.Type(), p.s)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewVariableDecl(d.Name(), typ), nil
}

func (p *declSubstituter) VisitFunction(d *ast.FunctionDecl) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into function %s", d.Name())
}

func (p *declSubstituter) VisitNamespace(d *ast.NamespaceDecl) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into namespace %s", d.Name())
}

func (p *declSubstituter) VisitTypeParm(d *ast.TypeParm) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into type parameter %s", d.Name())
}

func (p *declSubstituter) VisitValueParm(d *ast.ValueParm) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into value parameter %s", d.Name())
}

func (p *declSubstituter) VisitTemplateParm(d *ast.TemplateParm) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into template parameter %s", d.Name())
}

func (p *declSubstituter) VisitObjectParm(d *ast.ObjectParm) (ast.Decl, error) {
	typ, err := SubstituteType(p.ctx, d.Type(), p.s)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewObjectParm(d.Name(), typ, d.Kind()), nil
}

func (p *declSubstituter) VisitConcept(d *ast.ConceptDecl) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into concept %s", d.Name())
}

func (p *declSubstituter) VisitTemplate(d *ast.TemplateDecl) (ast.Decl, error) {
	return nil, NewUnsupportedError("substitution into template %s", d.Name())
}
