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

// Builder constructs types for a translation, interning them so that
// structurally identical types built at different points are the same
// object.  Since components are themselves interned, compound types can be
// keyed on the identity of their components.
type Builder struct {
	void      *ast.VoidType
	boolean   *ast.BooleanType
	declauto  *ast.DeclautoType
	integers  map[integerKey]*ast.IntegerType
	floats    map[uint]*ast.FloatType
	functions map[string]*ast.FunctionType
	refs      map[ast.Type]*ast.ReferenceType
	quals     map[qualifiedKey]*ast.QualifiedType
	pointers  map[ast.Type]*ast.PointerType
	arrays    map[arrayKey]*ast.ArrayType
	sequences map[ast.Type]*ast.SequenceType
	decltypes map[ast.Expr]*ast.DecltypeType
	classes   map[ast.Decl]*ast.ClassType
	unions    map[ast.Decl]*ast.UnionType
	enums     map[ast.Decl]*ast.EnumType
	typenames map[ast.Decl]*ast.TypenameType
}

type integerKey struct {
	signed    bool
	precision uint
}

type qualifiedKey struct {
	referent   ast.Type
	qualifiers ast.Qualifier
}

// Arrays with a literal bound are keyed on the bound's type and value;
// otherwise on the bound itself.
type arrayKey struct {
	element ast.Type
	bound   ast.Expr
	literal ast.Type
	value   int64
}

// NewBuilder constructs an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		void:      &ast.VoidType{},
		boolean:   &ast.BooleanType{},
		declauto:  &ast.DeclautoType{},
		integers:  make(map[integerKey]*ast.IntegerType),
		floats:    make(map[uint]*ast.FloatType),
		functions: make(map[string]*ast.FunctionType),
		refs:      make(map[ast.Type]*ast.ReferenceType),
		quals:     make(map[qualifiedKey]*ast.QualifiedType),
		pointers:  make(map[ast.Type]*ast.PointerType),
		arrays:    make(map[arrayKey]*ast.ArrayType),
		sequences: make(map[ast.Type]*ast.SequenceType),
		decltypes: make(map[ast.Expr]*ast.DecltypeType),
		classes:   make(map[ast.Decl]*ast.ClassType),
		unions:    make(map[ast.Decl]*ast.UnionType),
		enums:     make(map[ast.Decl]*ast.EnumType),
		typenames: make(map[ast.Decl]*ast.TypenameType),
	}
}

// VoidType returns the void type.
func (p *Builder) VoidType() *ast.VoidType { return p.void }

// BooleanType returns the bool type.
func (p *Builder) BooleanType() *ast.BooleanType { return p.boolean }

// DeclautoType returns the decltype(auto) type.
func (p *Builder) DeclautoType() *ast.DeclautoType { return p.declauto }

// IntegerType returns the integer type of a given signedness and precision.
func (p *Builder) IntegerType(signed bool, precision uint) *ast.IntegerType {
	return intern(p.integers, integerKey{signed, precision}, func() *ast.IntegerType {
		return ast.NewIntegerType(signed, precision)
	})
}

// FloatType returns the floating point type of a given precision.
func (p *Builder) FloatType(precision uint) *ast.FloatType {
	return intern(p.floats, precision, func() *ast.FloatType {
		return ast.NewFloatType(precision)
	})
}

// FunctionType returns the function type with given parameter and return
// types.
func (p *Builder) FunctionType(params []ast.Type, ret ast.Type) *ast.FunctionType {
	var key strings.Builder
	//
	for _, t := range params {
		key.WriteString(fmt.Sprintf("%s@%p,", t, t))
	}
	//
	key.WriteString(fmt.Sprintf("->%s@%p", ret, ret))
	//
	return intern(p.functions, key.String(), func() *ast.FunctionType {
		return ast.NewFunctionType(params, ret)
	})
}

// ReferenceType returns a reference to a given type.
func (p *Builder) ReferenceType(referent ast.Type) *ast.ReferenceType {
	return intern(p.refs, referent, func() *ast.ReferenceType {
		return ast.NewReferenceType(referent)
	})
}

// QualifiedType qualifies a given type.  Qualifying an already qualified
// type merges the qualifiers, and an empty qualifier set leaves the type
// unchanged.
func (p *Builder) QualifiedType(referent ast.Type, qualifiers ast.Qualifier) ast.Type {
	if q, ok := referent.(*ast.QualifiedType); ok {
		referent = q.Referent()
		qualifiers |= q.Qualifiers()
	}
	//
	if qualifiers == 0 {
		return referent
	}
	//
	return intern(p.quals, qualifiedKey{referent, qualifiers}, func() *ast.QualifiedType {
		return ast.NewQualifiedType(referent, qualifiers)
	})
}

// PointerType returns a pointer to a given type.
func (p *Builder) PointerType(referent ast.Type) *ast.PointerType {
	return intern(p.pointers, referent, func() *ast.PointerType {
		return ast.NewPointerType(referent)
	})
}

// ArrayType returns an array of a given element type and bound.
func (p *Builder) ArrayType(element ast.Type, bound ast.Expr) *ast.ArrayType {
	var key = arrayKey{element, bound, nil, 0}
	//
	if lit, ok := bound.(*ast.IntegerLiteral); ok {
		key = arrayKey{element, nil, lit.Type(), lit.Value()}
	}
	//
	return intern(p.arrays, key, func() *ast.ArrayType {
		return ast.NewArrayType(element, bound)
	})
}

// SequenceType returns an array of unknown bound of a given element type.
func (p *Builder) SequenceType(element ast.Type) *ast.SequenceType {
	return intern(p.sequences, element, func() *ast.SequenceType {
		return ast.NewSequenceType(element)
	})
}

// DecltypeType returns the declared type of an expression.
func (p *Builder) DecltypeType(expr ast.Expr) *ast.DecltypeType {
	return intern(p.decltypes, expr, func() *ast.DecltypeType {
		return ast.NewDecltypeType(expr)
	})
}

// ClassType returns the type of a class declaration.
func (p *Builder) ClassType(decl ast.Decl) *ast.ClassType {
	return intern(p.classes, decl, func() *ast.ClassType { return ast.NewClassType(decl) })
}

// UnionType returns the type of a union declaration.
func (p *Builder) UnionType(decl ast.Decl) *ast.UnionType {
	return intern(p.unions, decl, func() *ast.UnionType { return ast.NewUnionType(decl) })
}

// EnumType returns the type of an enum declaration.
func (p *Builder) EnumType(decl ast.Decl) *ast.EnumType {
	return intern(p.enums, decl, func() *ast.EnumType { return ast.NewEnumType(decl) })
}

// TypenameType returns the type denoted by a type template parameter.
func (p *Builder) TypenameType(decl ast.Decl) *ast.TypenameType {
	return intern(p.typenames, decl, func() *ast.TypenameType { return ast.NewTypenameType(decl) })
}

func intern[K comparable, T any](cache map[K]T, key K, construct func() T) T {
	if t, ok := cache[key]; ok {
		return t
	}
	//
	var t = construct()
	//
	cache[key] = t
	//
	return t
}

// Retype returns a copy of an expression with a different type.  This is
// used to give a requirement the type it is declared to have.
func Retype(expr ast.Expr, typ ast.Type) ast.Expr {
	switch e := expr.(type) {
	case *ast.BooleanLiteral:
		return ast.NewBooleanLiteral(typ, e.Value())
	case *ast.IntegerLiteral:
		return ast.NewIntegerLiteral(typ, e.Value())
	case *ast.Reference:
		return ast.NewReference(typ, e.Declaration())
	case *ast.Check:
		return ast.NewCheck(typ, e.Concept(), e.Arguments())
	case *ast.Requires:
		return ast.NewRequires(typ, e.Parameters(), e.Requirements())
	case *ast.And:
		return ast.NewAnd(typ, e.Left(), e.Right())
	case *ast.Or:
		return ast.NewOr(typ, e.Left(), e.Right())
	case *ast.Not:
		return ast.NewNot(typ, e.Operand())
	case *ast.Compare:
		return ast.NewCompare(typ, e.Comparator(), e.Left(), e.Right())
	case *ast.BooleanConversion:
		return ast.NewBooleanConversion(typ, e.Operand())
	case *ast.Call:
		return ast.NewCall(typ, e.Function(), e.Arguments())
	default:
		panic(fmt.Sprintf("unknown expression %T", expr))
	}
}

// StripType removes references and qualifiers from a type, giving the type
// of the object being manipulated.
func StripType(t ast.Type) ast.Type {
	for {
		switch s := t.(type) {
		case *ast.ReferenceType:
			t = s.Referent()
		case *ast.QualifiedType:
			t = s.Referent()
		default:
			return t
		}
	}
}
