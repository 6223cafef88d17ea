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

// TypeVisitor has one method per type variant.  Adding a variant to the
// family adds a method here, so every visitor must be updated before the
// code compiles again.
type TypeVisitor[R any] interface {
	VisitVoid(*VoidType) (R, error)
	VisitBoolean(*BooleanType) (R, error)
	VisitInteger(*IntegerType) (R, error)
	VisitFloat(*FloatType) (R, error)
	VisitAuto(*AutoType) (R, error)
	VisitDecltype(*DecltypeType) (R, error)
	VisitDeclauto(*DeclautoType) (R, error)
	VisitFunction(*FunctionType) (R, error)
	VisitReference(*ReferenceType) (R, error)
	VisitQualified(*QualifiedType) (R, error)
	VisitPointer(*PointerType) (R, error)
	VisitArray(*ArrayType) (R, error)
	VisitSequence(*SequenceType) (R, error)
	VisitClass(*ClassType) (R, error)
	VisitUnion(*UnionType) (R, error)
	VisitEnum(*EnumType) (R, error)
	VisitTypename(*TypenameType) (R, error)
}

// ApplyType dispatches a type to the matching method of a visitor.
func ApplyType[R any](t Type, v TypeVisitor[R]) (R, error) {
	switch t := t.(type) {
	case *VoidType:
		return v.VisitVoid(t)
	case *BooleanType:
		return v.VisitBoolean(t)
	case *IntegerType:
		return v.VisitInteger(t)
	case *FloatType:
		return v.VisitFloat(t)
	case *AutoType:
		return v.VisitAuto(t)
	case *DecltypeType:
		return v.VisitDecltype(t)
	case *DeclautoType:
		return v.VisitDeclauto(t)
	case *FunctionType:
		return v.VisitFunction(t)
	case *ReferenceType:
		return v.VisitReference(t)
	case *QualifiedType:
		return v.VisitQualified(t)
	case *PointerType:
		return v.VisitPointer(t)
	case *ArrayType:
		return v.VisitArray(t)
	case *SequenceType:
		return v.VisitSequence(t)
	case *ClassType:
		return v.VisitClass(t)
	case *UnionType:
		return v.VisitUnion(t)
	case *EnumType:
		return v.VisitEnum(t)
	case *TypenameType:
		return v.VisitTypename(t)
	default:
		panic(fmt.Sprintf("unknown type %T", t))
	}
}

// ExprVisitor has one method per expression variant.
type ExprVisitor[R any] interface {
	VisitBooleanLiteral(*BooleanLiteral) (R, error)
	VisitIntegerLiteral(*IntegerLiteral) (R, error)
	VisitReference(*Reference) (R, error)
	VisitCheck(*Check) (R, error)
	VisitRequires(*Requires) (R, error)
	VisitAnd(*And) (R, error)
	VisitOr(*Or) (R, error)
	VisitNot(*Not) (R, error)
	VisitCompare(*Compare) (R, error)
	VisitBooleanConversion(*BooleanConversion) (R, error)
	VisitCall(*Call) (R, error)
}

// ApplyExpr dispatches an expression to the matching method of a visitor.
func ApplyExpr[R any](e Expr, v ExprVisitor[R]) (R, error) {
	switch e := e.(type) {
	case *BooleanLiteral:
		return v.VisitBooleanLiteral(e)
	case *IntegerLiteral:
		return v.VisitIntegerLiteral(e)
	case *Reference:
		return v.VisitReference(e)
	case *Check:
		return v.VisitCheck(e)
	case *Requires:
		return v.VisitRequires(e)
	case *And:
		return v.VisitAnd(e)
	case *Or:
		return v.VisitOr(e)
	case *Not:
		return v.VisitNot(e)
	case *Compare:
		return v.VisitCompare(e)
	case *BooleanConversion:
		return v.VisitBooleanConversion(e)
	case *Call:
		return v.VisitCall(e)
	default:
		panic(fmt.Sprintf("unknown expression %T", e))
	}
}

// DeclVisitor has one method per declaration variant.
type DeclVisitor[R any] interface {
	VisitVariable(*VariableDecl) (R, error)
	VisitFunction(*FunctionDecl) (R, error)
	VisitNamespace(*NamespaceDecl) (R, error)
	VisitTypeParm(*TypeParm) (R, error)
	VisitValueParm(*ValueParm) (R, error)
	VisitTemplateParm(*TemplateParm) (R, error)
	VisitObjectParm(*ObjectParm) (R, error)
	VisitConcept(*ConceptDecl) (R, error)
	VisitTemplate(*TemplateDecl) (R, error)
}

// ApplyDecl dispatches a declaration to the matching method of a visitor.
func ApplyDecl[R any](d Decl, v DeclVisitor[R]) (R, error) {
	switch d := d.(type) {
	case *VariableDecl:
		return v.VisitVariable(d)
	case *FunctionDecl:
		return v.VisitFunction(d)
	case *NamespaceDecl:
		return v.VisitNamespace(d)
	case *TypeParm:
		return v.VisitTypeParm(d)
	case *ValueParm:
		return v.VisitValueParm(d)
	case *TemplateParm:
		return v.VisitTemplateParm(d)
	case *ObjectParm:
		return v.VisitObjectParm(d)
	case *ConceptDecl:
		return v.VisitConcept(d)
	case *TemplateDecl:
		return v.VisitTemplate(d)
	default:
		panic(fmt.Sprintf("unknown declaration %T", d))
	}
}

// ConsVisitor has one method per constraint variant.
type ConsVisitor[R any] interface {
	VisitConceptCons(*ConceptCons) (R, error)
	VisitPredicateCons(*PredicateCons) (R, error)
	VisitExpressionCons(*ExpressionCons) (R, error)
	VisitParameterizedCons(*ParameterizedCons) (R, error)
	VisitConjunctionCons(*ConjunctionCons) (R, error)
	VisitDisjunctionCons(*DisjunctionCons) (R, error)
}

// ApplyCons dispatches a constraint to the matching method of a visitor.
func ApplyCons[R any](c Cons, v ConsVisitor[R]) (R, error) {
	switch c := c.(type) {
	case *ConceptCons:
		return v.VisitConceptCons(c)
	case *PredicateCons:
		return v.VisitPredicateCons(c)
	case *ExpressionCons:
		return v.VisitExpressionCons(c)
	case *ParameterizedCons:
		return v.VisitParameterizedCons(c)
	case *ConjunctionCons:
		return v.VisitConjunctionCons(c)
	case *DisjunctionCons:
		return v.VisitDisjunctionCons(c)
	default:
		panic(fmt.Sprintf("unknown constraint %T", c))
	}
}
