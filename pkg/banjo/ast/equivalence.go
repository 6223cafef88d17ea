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

import "fmt"

// EquivalentTypes determines whether two types are structurally equivalent.
// Placeholders are equivalent only to themselves.
func EquivalentTypes(lhs Type, rhs Type) bool {
	if lhs == rhs {
		return true
	}
	//
	switch l := lhs.(type) {
	case *VoidType:
		_, ok := rhs.(*VoidType)
		return ok
	case *BooleanType:
		_, ok := rhs.(*BooleanType)
		return ok
	case *IntegerType:
		r, ok := rhs.(*IntegerType)
		return ok && l.signed == r.signed && l.precision == r.precision
	case *FloatType:
		r, ok := rhs.(*FloatType)
		return ok && l.precision == r.precision
	case *AutoType:
		r, ok := rhs.(*AutoType)
		return ok && l.id == r.id
	case *DecltypeType:
		r, ok := rhs.(*DecltypeType)
		return ok && EquivalentExprs(l.expr, r.expr)
	case *DeclautoType:
		_, ok := rhs.(*DeclautoType)
		return ok
	case *FunctionType:
		r, ok := rhs.(*FunctionType)
		return ok && equivalentTypeLists(l.params, r.params) && EquivalentTypes(l.ret, r.ret)
	case *ReferenceType:
		r, ok := rhs.(*ReferenceType)
		return ok && EquivalentTypes(l.referent, r.referent)
	case *QualifiedType:
		r, ok := rhs.(*QualifiedType)
		return ok && l.qualifiers == r.qualifiers && EquivalentTypes(l.referent, r.referent)
	case *PointerType:
		r, ok := rhs.(*PointerType)
		return ok && EquivalentTypes(l.referent, r.referent)
	case *ArrayType:
		r, ok := rhs.(*ArrayType)
		return ok && EquivalentTypes(l.element, r.element) && EquivalentExprs(l.bound, r.bound)
	case *SequenceType:
		r, ok := rhs.(*SequenceType)
		return ok && EquivalentTypes(l.element, r.element)
	case *ClassType:
		r, ok := rhs.(*ClassType)
		return ok && l.decl == r.decl
	case *UnionType:
		r, ok := rhs.(*UnionType)
		return ok && l.decl == r.decl
	case *EnumType:
		r, ok := rhs.(*EnumType)
		return ok && l.decl == r.decl
	case *TypenameType:
		r, ok := rhs.(*TypenameType)
		return ok && l.decl == r.decl
	default:
		panic(fmt.Sprintf("unknown type %T", lhs))
	}
}

// EquivalentExprs determines whether two expressions are equivalent: they
// perform equivalent operations and have equivalent types.  A placeholder
// type carries no information and so matches any type.
func EquivalentExprs(lhs Expr, rhs Expr) bool {
	var (
		lt = lhs.Type()
		rt = rhs.Type()
	)
	//
	if !IsPlaceholder(lt) && !IsPlaceholder(rt) && !EquivalentTypes(lt, rt) {
		return false
	}
	//
	return EquivalentOperation(lhs, rhs)
}

// EquivalentOperation determines whether two expressions apply the same
// operator to equivalent operands, regardless of their result types.  A
// reference to a requirement parameter is equivalent to any reference of
// the same type.
func EquivalentOperation(lhs Expr, rhs Expr) bool {
	switch l := lhs.(type) {
	case *BooleanLiteral:
		r, ok := rhs.(*BooleanLiteral)
		return ok && l.value == r.value
	case *IntegerLiteral:
		r, ok := rhs.(*IntegerLiteral)
		return ok && l.value == r.value
	case *Reference:
		r, ok := rhs.(*Reference)
		return ok && equivalentReferences(l, r)
	case *Check:
		r, ok := rhs.(*Check)
		return ok && l.concept == r.concept && equivalentTermLists(l.args, r.args)
	case *Requires:
		r, ok := rhs.(*Requires)
		return ok && equivalentRequires(l, r)
	case *And:
		r, ok := rhs.(*And)
		return ok && EquivalentExprs(l.left, r.left) && EquivalentExprs(l.right, r.right)
	case *Or:
		r, ok := rhs.(*Or)
		return ok && EquivalentExprs(l.left, r.left) && EquivalentExprs(l.right, r.right)
	case *Not:
		r, ok := rhs.(*Not)
		return ok && EquivalentExprs(l.operand, r.operand)
	case *Compare:
		r, ok := rhs.(*Compare)
		return ok && l.op == r.op && EquivalentExprs(l.left, r.left) && EquivalentExprs(l.right, r.right)
	case *BooleanConversion:
		r, ok := rhs.(*BooleanConversion)
		return ok && EquivalentExprs(l.operand, r.operand)
	case *Call:
		r, ok := rhs.(*Call)
		return ok && l.fun == r.fun && equivalentExprLists(l.args, r.args)
	default:
		panic(fmt.Sprintf("unknown expression %T", lhs))
	}
}

// EquivalentCons determines whether two constraints are structurally
// equivalent.
func EquivalentCons(lhs Cons, rhs Cons) bool {
	switch l := lhs.(type) {
	case *ConceptCons:
		r, ok := rhs.(*ConceptCons)
		return ok && l.concept == r.concept && equivalentTermLists(l.args, r.args)
	case *PredicateCons:
		r, ok := rhs.(*PredicateCons)
		return ok && EquivalentExprs(l.expr, r.expr)
	case *ExpressionCons:
		r, ok := rhs.(*ExpressionCons)
		return ok && EquivalentExprs(l.expr, r.expr)
	case *ParameterizedCons:
		r, ok := rhs.(*ParameterizedCons)
		return ok && equivalentParameters(l.params, r.params) && EquivalentCons(l.cons, r.cons)
	case *ConjunctionCons:
		r, ok := rhs.(*ConjunctionCons)
		return ok && EquivalentCons(l.left, r.left) && EquivalentCons(l.right, r.right)
	case *DisjunctionCons:
		r, ok := rhs.(*DisjunctionCons)
		return ok && EquivalentCons(l.left, r.left) && EquivalentCons(l.right, r.right)
	default:
		panic(fmt.Sprintf("unknown constraint %T", lhs))
	}
}

// EquivalentTerms compares two template arguments.  Types and expressions
// are compared structurally, declarations by identity.
func EquivalentTerms(lhs Term, rhs Term) bool {
	switch l := lhs.(type) {
	case Type:
		r, ok := rhs.(Type)
		return ok && EquivalentTypes(l, r)
	case Expr:
		r, ok := rhs.(Expr)
		return ok && EquivalentExprs(l, r)
	case Decl:
		r, ok := rhs.(Decl)
		return ok && l == r
	default:
		return false
	}
}

// IsRequirementParameter determines whether a declaration is the parameter
// of a requires expression.
func IsRequirementParameter(decl Decl) bool {
	p, ok := decl.(*ObjectParm)
	return ok && p.kind == REQUIREMENT_PARAMETER
}

func equivalentReferences(lhs *Reference, rhs *Reference) bool {
	if lhs.decl == rhs.decl {
		return true
	} else if IsRequirementParameter(lhs.decl) || IsRequirementParameter(rhs.decl) {
		return EquivalentTypes(lhs.typ, rhs.typ)
	}
	//
	return false
}

func equivalentRequires(lhs *Requires, rhs *Requires) bool {
	if !equivalentParameters(lhs.params, rhs.params) || len(lhs.reqs) != len(rhs.reqs) {
		return false
	}
	//
	for i, l := range lhs.reqs {
		var r = rhs.reqs[i]
		//
		switch l := l.(type) {
		case *SimpleRequirement:
			if r, ok := r.(*SimpleRequirement); !ok || !EquivalentExprs(l.expr, r.expr) {
				return false
			}
		case *TypedRequirement:
			if r, ok := r.(*TypedRequirement); !ok || !EquivalentTypes(l.typ, r.typ) ||
				!EquivalentExprs(l.expr, r.expr) {
				return false
			}
		default:
			panic(fmt.Sprintf("unknown requirement %T", l))
		}
	}
	//
	return true
}

// Parameters are compared by their types, since their names are bound
// locally.
func equivalentParameters(lhs []Decl, rhs []Decl) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i, l := range lhs {
		var (
			lt = DeclType(l)
			rt = DeclType(rhs[i])
		)
		//
		if lt == nil || rt == nil {
			if l != rhs[i] {
				return false
			}
		} else if !EquivalentTypes(lt, rt) {
			return false
		}
	}
	//
	return true
}

func equivalentTypeLists(lhs []Type, rhs []Type) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !EquivalentTypes(lhs[i], rhs[i]) {
			return false
		}
	}
	//
	return true
}

func equivalentExprLists(lhs []Expr, rhs []Expr) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !EquivalentExprs(lhs[i], rhs[i]) {
			return false
		}
	}
	//
	return true
}

func equivalentTermLists(lhs []Term, rhs []Term) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !EquivalentTerms(lhs[i], rhs[i]) {
			return false
		}
	}
	//
	return true
}
