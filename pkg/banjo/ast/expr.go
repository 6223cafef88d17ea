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

// Expr is the closed family of expressions.  Every expression carries its
// type, which is a fresh placeholder for dependent expressions whose meaning
// is not yet known.
type Expr interface {
	Term
	// Type returns the type of this expression.
	Type() Type
	isExpr()
}

// Comparator identifies the relation of a comparison.
type Comparator uint8

const (
	// EQ is equality (==).
	EQ Comparator = iota
	// NE is disequality (!=).
	NE
	// LT is strict less-than (<).
	LT
	// GT is strict greater-than (>).
	GT
	// LE is less-than-or-equals (<=).
	LE
	// GE is greater-than-or-equals (>=).
	GE
)

func (c Comparator) String() string {
	switch c {
	case EQ:
		return "=="
	case NE:
		return "!="
	case LT:
		return "<"
	case GT:
		return ">"
	case LE:
		return "<="
	case GE:
		return ">="
	}
	//
	panic("unreachable")
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	typ   Type
	value bool
}

// IntegerLiteral is a constant integer.
type IntegerLiteral struct {
	typ   Type
	value int64
}

// Reference names a declared object (variable, function or parameter).
type Reference struct {
	typ  Type
	decl Decl
}

// Check applies a concept to a list of arguments, as in C<int>.  Arguments
// are types or expressions.
type Check struct {
	typ     Type
	concept Decl
	args    []Term
}

// Requires introduces a list of parameters and the requirements placed on
// them, as in requires (T a) { a && a; }.
type Requires struct {
	typ    Type
	params []Decl
	reqs   []Requirement
}

// And is logical conjunction.
type And struct {
	typ   Type
	left  Expr
	right Expr
}

// Or is logical disjunction.
type Or struct {
	typ   Type
	left  Expr
	right Expr
}

// Not is logical negation.
type Not struct {
	typ     Type
	operand Expr
}

// Compare relates two operands.
type Compare struct {
	typ   Type
	op    Comparator
	left  Expr
	right Expr
}

// BooleanConversion is the result of contextually converting an operand to
// bool.
type BooleanConversion struct {
	typ     Type
	operand Expr
}

// Call applies a function to some arguments.
type Call struct {
	typ  Type
	fun  Decl
	args []Expr
}

// NewBooleanLiteral constructs a boolean literal.
func NewBooleanLiteral(typ Type, value bool) *BooleanLiteral {
	return &BooleanLiteral{typ, value}
}

// NewIntegerLiteral constructs an integer literal.
func NewIntegerLiteral(typ Type, value int64) *IntegerLiteral {
	return &IntegerLiteral{typ, value}
}

// NewReference constructs a reference to a declaration.
func NewReference(typ Type, decl Decl) *Reference {
	return &Reference{typ, decl}
}

// NewCheck constructs a concept check.
func NewCheck(typ Type, concept Decl, args []Term) *Check {
	return &Check{typ, concept, args}
}

// NewRequires constructs a requires expression.
func NewRequires(typ Type, params []Decl, reqs []Requirement) *Requires {
	return &Requires{typ, params, reqs}
}

// NewAnd constructs a conjunction.
func NewAnd(typ Type, left Expr, right Expr) *And { return &And{typ, left, right} }

// NewOr constructs a disjunction.
func NewOr(typ Type, left Expr, right Expr) *Or { return &Or{typ, left, right} }

// NewNot constructs a negation.
func NewNot(typ Type, operand Expr) *Not { return &Not{typ, operand} }

// NewCompare constructs a comparison.
func NewCompare(typ Type, op Comparator, left Expr, right Expr) *Compare {
	return &Compare{typ, op, left, right}
}

// NewBooleanConversion constructs a conversion to bool.
func NewBooleanConversion(typ Type, operand Expr) *BooleanConversion {
	return &BooleanConversion{typ, operand}
}

// NewCall constructs a call expression.
func NewCall(typ Type, fun Decl, args []Expr) *Call { return &Call{typ, fun, args} }

func (p *BooleanLiteral) Type() Type    { return p.typ }
func (p *IntegerLiteral) Type() Type    { return p.typ }
func (p *Reference) Type() Type         { return p.typ }
func (p *Check) Type() Type             { return p.typ }
func (p *Requires) Type() Type          { return p.typ }
func (p *And) Type() Type               { return p.typ }
func (p *Or) Type() Type                { return p.typ }
func (p *Not) Type() Type               { return p.typ }
func (p *Compare) Type() Type           { return p.typ }
func (p *BooleanConversion) Type() Type { return p.typ }
func (p *Call) Type() Type              { return p.typ }

// Value returns the literal value.
func (p *BooleanLiteral) Value() bool { return p.value }

// Value returns the literal value.
func (p *IntegerLiteral) Value() int64 { return p.value }

// Declaration returns the declaration referred to.
func (p *Reference) Declaration() Decl { return p.decl }

// Concept returns the concept being checked.
func (p *Check) Concept() Decl { return p.concept }

// Arguments returns the arguments of the check.
func (p *Check) Arguments() []Term { return p.args }

// Parameters returns the parameters introduced by this requires expression.
func (p *Requires) Parameters() []Decl { return p.params }

// Requirements returns the requirements of this requires expression.
func (p *Requires) Requirements() []Requirement { return p.reqs }

// Left returns the left operand.
func (p *And) Left() Expr { return p.left }

// Right returns the right operand.
func (p *And) Right() Expr { return p.right }

// Left returns the left operand.
func (p *Or) Left() Expr { return p.left }

// Right returns the right operand.
func (p *Or) Right() Expr { return p.right }

// Operand returns the negated operand.
func (p *Not) Operand() Expr { return p.operand }

// Comparator returns the relation being tested.
func (p *Compare) Comparator() Comparator { return p.op }

// Left returns the left operand.
func (p *Compare) Left() Expr { return p.left }

// Right returns the right operand.
func (p *Compare) Right() Expr { return p.right }

// Operand returns the converted operand.
func (p *BooleanConversion) Operand() Expr { return p.operand }

// Function returns the function being called.
func (p *Call) Function() Decl { return p.fun }

// Arguments returns the call arguments.
func (p *Call) Arguments() []Expr { return p.args }

func (p *BooleanLiteral) String() string {
	if p.value {
		return "true"
	}
	//
	return "false"
}

func (p *IntegerLiteral) String() string { return fmt.Sprintf("%d", p.value) }
func (p *Reference) String() string      { return p.decl.Name().String() }

func (p *Check) String() string {
	return fmt.Sprintf("%s<%s>", p.concept.Name(), joinTerms(p.args))
}

func (p *Requires) String() string {
	var builder strings.Builder
	//
	builder.WriteString("requires (")
	//
	for i, d := range p.params {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(d.String())
	}
	//
	builder.WriteString(") {")
	//
	for _, r := range p.reqs {
		builder.WriteString(" ")
		builder.WriteString(r.String())
	}
	//
	builder.WriteString(" }")
	//
	return builder.String()
}

func (p *And) String() string     { return fmt.Sprintf("(%s && %s)", p.left, p.right) }
func (p *Or) String() string      { return fmt.Sprintf("(%s || %s)", p.left, p.right) }
func (p *Not) String() string     { return fmt.Sprintf("!%s", p.operand) }
func (p *Compare) String() string { return fmt.Sprintf("(%s %s %s)", p.left, p.op, p.right) }

func (p *BooleanConversion) String() string {
	return fmt.Sprintf("bool(%s)", p.operand)
}

func (p *Call) String() string {
	var args = make([]Term, len(p.args))
	//
	for i, a := range p.args {
		args[i] = a
	}
	//
	return fmt.Sprintf("%s(%s)", p.fun.Name(), joinTerms(args))
}

func joinTerms(terms []Term) string {
	var strs = make([]string, len(terms))
	//
	for i, t := range terms {
		strs[i] = t.String()
	}
	//
	return strings.Join(strs, ", ")
}

func (*BooleanLiteral) isTerm()    {}
func (*IntegerLiteral) isTerm()    {}
func (*Reference) isTerm()         {}
func (*Check) isTerm()             {}
func (*Requires) isTerm()          {}
func (*And) isTerm()               {}
func (*Or) isTerm()                {}
func (*Not) isTerm()               {}
func (*Compare) isTerm()           {}
func (*BooleanConversion) isTerm() {}
func (*Call) isTerm()              {}

func (*BooleanLiteral) isExpr()    {}
func (*IntegerLiteral) isExpr()    {}
func (*Reference) isExpr()         {}
func (*Check) isExpr()             {}
func (*Requires) isExpr()          {}
func (*And) isExpr()               {}
func (*Or) isExpr()                {}
func (*Not) isExpr()               {}
func (*Compare) isExpr()           {}
func (*BooleanConversion) isExpr() {}
func (*Call) isExpr()              {}

// ============================================================================
// Requirements
// ============================================================================

// Requirement is one entry in the body of a requires expression.
type Requirement interface {
	Term
	// Expr returns the required expression.
	Expr() Expr
	isRequirement()
}

// SimpleRequirement requires that an expression is valid.
type SimpleRequirement struct {
	expr Expr
}

// TypedRequirement requires that an expression is valid and has a given
// type, as in { e } -> T.  The expression is retyped to T.
type TypedRequirement struct {
	expr Expr
	typ  Type
}

// NewSimpleRequirement constructs a simple requirement.
func NewSimpleRequirement(expr Expr) *SimpleRequirement {
	return &SimpleRequirement{expr}
}

// NewTypedRequirement constructs a typed requirement.
func NewTypedRequirement(expr Expr, typ Type) *TypedRequirement {
	return &TypedRequirement{expr, typ}
}

// Expr returns the required expression.
func (p *SimpleRequirement) Expr() Expr { return p.expr }

// Expr returns the required expression.
func (p *TypedRequirement) Expr() Expr { return p.expr }

// Type returns the required type.
func (p *TypedRequirement) Type() Type { return p.typ }

func (p *SimpleRequirement) String() string { return fmt.Sprintf("%s;", p.expr) }
func (p *TypedRequirement) String() string  { return fmt.Sprintf("{%s} -> %s;", p.expr, p.typ) }

func (*SimpleRequirement) isTerm()        {}
func (*TypedRequirement) isTerm()         {}
func (*SimpleRequirement) isRequirement() {}
func (*TypedRequirement) isRequirement()  {}
