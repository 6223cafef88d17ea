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
	"strings"
)

// Type is the closed family of types.  Nominal types (void, bool, integer,
// float, class, union and enum) are leaves, typename types denote a
// (not yet substituted) type template parameter and auto types are
// placeholders.
type Type interface {
	Term
	isType()
}

// Qualifier is a set of cv-qualifiers.
type Qualifier uint8

const (
	// CONST_QUALIFIER marks a type as const.
	CONST_QUALIFIER Qualifier = 1
	// VOLATILE_QUALIFIER marks a type as volatile.
	VOLATILE_QUALIFIER Qualifier = 2
)

// VoidType is the type of expressions which produce no value.
type VoidType struct{}

// BooleanType is the type of truth values.
type BooleanType struct{}

// IntegerType is a (possibly signed) integer type of a given precision.
type IntegerType struct {
	signed    bool
	precision uint
}

// FloatType is a floating point type of a given precision.
type FloatType struct {
	precision uint
}

// AutoType is a placeholder standing for a type which has not been
// determined.  Every placeholder has a distinct identifier so that two
// placeholders never compare equal by accident.
type AutoType struct {
	id uint
}

// DecltypeType is the declared type of an expression.
type DecltypeType struct {
	expr Expr
}

// DeclautoType is the deduced declared type of an initializer.
type DeclautoType struct{}

// FunctionType is the type of a function.
type FunctionType struct {
	params []Type
	ret    Type
}

// ReferenceType is a reference to an object of some type.
type ReferenceType struct {
	referent Type
}

// QualifiedType adds cv-qualifiers to some type.
type QualifiedType struct {
	referent   Type
	qualifiers Qualifier
}

// PointerType is a pointer to some type.
type PointerType struct {
	referent Type
}

// ArrayType is a fixed length array whose bound is given by an expression.
type ArrayType struct {
	element Type
	bound   Expr
}

// SequenceType is an array of unknown bound.
type SequenceType struct {
	element Type
}

// ClassType is the type declared by a class declaration.
type ClassType struct {
	decl Decl
}

// UnionType is the type declared by a union declaration.
type UnionType struct {
	decl Decl
}

// EnumType is the type declared by an enum declaration.
type EnumType struct {
	decl Decl
}

// TypenameType refers to a type template parameter.
type TypenameType struct {
	decl Decl
}

// NewIntegerType constructs an integer type.  Prefer the builder, which
// interns types.
func NewIntegerType(signed bool, precision uint) *IntegerType {
	return &IntegerType{signed, precision}
}

// NewFloatType constructs a floating point type.
func NewFloatType(precision uint) *FloatType { return &FloatType{precision} }

// NewAutoType constructs a placeholder with a given identifier.
func NewAutoType(id uint) *AutoType { return &AutoType{id} }

// NewDecltypeType constructs the declared type of an expression.
func NewDecltypeType(expr Expr) *DecltypeType { return &DecltypeType{expr} }

// NewFunctionType constructs a function type.
func NewFunctionType(params []Type, ret Type) *FunctionType {
	return &FunctionType{params, ret}
}

// NewReferenceType constructs a reference type.
func NewReferenceType(referent Type) *ReferenceType { return &ReferenceType{referent} }

// NewQualifiedType constructs a qualified type.
func NewQualifiedType(referent Type, qualifiers Qualifier) *QualifiedType {
	return &QualifiedType{referent, qualifiers}
}

// NewPointerType constructs a pointer type.
func NewPointerType(referent Type) *PointerType { return &PointerType{referent} }

// NewArrayType constructs an array type.
func NewArrayType(element Type, bound Expr) *ArrayType { return &ArrayType{element, bound} }

// NewSequenceType constructs a sequence type.
func NewSequenceType(element Type) *SequenceType { return &SequenceType{element} }

// NewClassType constructs the type of a class declaration.
func NewClassType(decl Decl) *ClassType { return &ClassType{decl} }

// NewUnionType constructs the type of a union declaration.
func NewUnionType(decl Decl) *UnionType { return &UnionType{decl} }

// NewEnumType constructs the type of an enum declaration.
func NewEnumType(decl Decl) *EnumType { return &EnumType{decl} }

// NewTypenameType constructs a reference to a type template parameter.
func NewTypenameType(decl Decl) *TypenameType { return &TypenameType{decl} }

// Signed indicates whether this integer type is signed.
func (p *IntegerType) Signed() bool { return p.signed }

// Precision returns the number of bits of this integer type.
func (p *IntegerType) Precision() uint { return p.precision }

// Precision returns the number of bits of this floating point type.
func (p *FloatType) Precision() uint { return p.precision }

// Id returns the unique identifier of this placeholder.
func (p *AutoType) Id() uint { return p.id }

// Expr returns the expression whose type is denoted.
func (p *DecltypeType) Expr() Expr { return p.expr }

// Parameters returns the parameter types of this function type.
func (p *FunctionType) Parameters() []Type { return p.params }

// Return returns the return type of this function type.
func (p *FunctionType) Return() Type { return p.ret }

// Referent returns the referenced type.
func (p *ReferenceType) Referent() Type { return p.referent }

// Referent returns the qualified type.
func (p *QualifiedType) Referent() Type { return p.referent }

// Qualifiers returns the set of qualifiers.
func (p *QualifiedType) Qualifiers() Qualifier { return p.qualifiers }

// Referent returns the type pointed to.
func (p *PointerType) Referent() Type { return p.referent }

// Element returns the element type.
func (p *ArrayType) Element() Type { return p.element }

// Bound returns the expression giving the number of elements.
func (p *ArrayType) Bound() Expr { return p.bound }

// Element returns the element type.
func (p *SequenceType) Element() Type { return p.element }

// Declaration returns the class declaration.
func (p *ClassType) Declaration() Decl { return p.decl }

// Declaration returns the union declaration.
func (p *UnionType) Declaration() Decl { return p.decl }

// Declaration returns the enum declaration.
func (p *EnumType) Declaration() Decl { return p.decl }

// Declaration returns the type template parameter referred to.
func (p *TypenameType) Declaration() Decl { return p.decl }

func (*VoidType) String() string    { return "void" }
func (*BooleanType) String() string { return "bool" }

func (p *IntegerType) String() string {
	switch {
	case p.signed && p.precision == 32:
		return "int"
	case p.signed:
		return fmt.Sprintf("int%d", p.precision)
	default:
		return fmt.Sprintf("uint%d", p.precision)
	}
}

func (p *FloatType) String() string {
	if p.precision == 64 {
		return "float"
	}
	//
	return fmt.Sprintf("float%d", p.precision)
}

func (p *AutoType) String() string     { return fmt.Sprintf("auto#%d", p.id) }
func (p *DecltypeType) String() string { return fmt.Sprintf("decltype(%s)", p.expr) }
func (*DeclautoType) String() string   { return "decltype(auto)" }

func (p *FunctionType) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, t := range p.params {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(") -> ")
	builder.WriteString(p.ret.String())
	//
	return builder.String()
}

func (p *ReferenceType) String() string { return p.referent.String() + "&" }

func (p *QualifiedType) String() string {
	var str = p.referent.String()
	//
	if p.qualifiers&CONST_QUALIFIER != 0 {
		str += " const"
	}
	//
	if p.qualifiers&VOLATILE_QUALIFIER != 0 {
		str += " volatile"
	}
	//
	return str
}

func (p *PointerType) String() string  { return p.referent.String() + "*" }
func (p *ArrayType) String() string    { return fmt.Sprintf("%s[%s]", p.element, p.bound) }
func (p *SequenceType) String() string { return p.element.String() + "[]" }
func (p *ClassType) String() string    { return p.decl.Name().String() }
func (p *UnionType) String() string    { return p.decl.Name().String() }
func (p *EnumType) String() string     { return p.decl.Name().String() }
func (p *TypenameType) String() string { return p.decl.Name().String() }

func (*VoidType) isTerm()      {}
func (*BooleanType) isTerm()   {}
func (*IntegerType) isTerm()   {}
func (*FloatType) isTerm()     {}
func (*AutoType) isTerm()      {}
func (*DecltypeType) isTerm()  {}
func (*DeclautoType) isTerm()  {}
func (*FunctionType) isTerm()  {}
func (*ReferenceType) isTerm() {}
func (*QualifiedType) isTerm() {}
func (*PointerType) isTerm()   {}
func (*ArrayType) isTerm()     {}
func (*SequenceType) isTerm()  {}
func (*ClassType) isTerm()     {}
func (*UnionType) isTerm()     {}
func (*EnumType) isTerm()      {}
func (*TypenameType) isTerm()  {}

func (*VoidType) isType()      {}
func (*BooleanType) isType()   {}
func (*IntegerType) isType()   {}
func (*FloatType) isType()     {}
func (*AutoType) isType()      {}
func (*DecltypeType) isType()  {}
func (*DeclautoType) isType()  {}
func (*FunctionType) isType()  {}
func (*ReferenceType) isType() {}
func (*QualifiedType) isType() {}
func (*PointerType) isType()   {}
func (*ArrayType) isType()     {}
func (*SequenceType) isType()  {}
func (*ClassType) isType()     {}
func (*UnionType) isType()     {}
func (*EnumType) isType()      {}
func (*TypenameType) isType()  {}
