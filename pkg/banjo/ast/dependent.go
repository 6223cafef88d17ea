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
	"github.com/hashicorp/go-set/v3"
)

// IsPlaceholder determines whether a type is a placeholder standing for a
// type which is yet to be determined.
func IsPlaceholder(t Type) bool {
	_, ok := t.(*AutoType)
	return ok
}

// IsDependentType determines whether the meaning of a type depends on a
// template parameter, either directly or through a placeholder.
func IsDependentType(t Type) bool {
	var v = newDependence()
	//
	_, _ = ApplyType(t, v)
	//
	return v.placeholder || !v.params.Empty()
}

// IsDependentExpr determines whether an expression has a dependent type or
// refers to a value parameter.
func IsDependentExpr(e Expr) bool {
	var v = newDependence()
	//
	v.collectExpr(e)
	//
	return v.placeholder || !v.params.Empty()
}

// FreeParameters returns the set of template parameter declarations a type
// refers to.
func FreeParameters(t Type) *set.Set[Decl] {
	var v = newDependence()
	//
	_, _ = ApplyType(t, v)
	//
	return v.params
}

// Collects the parameters on which a type depends.
type dependence struct {
	params      *set.Set[Decl]
	placeholder bool
}

func newDependence() *dependence {
	return &dependence{set.New[Decl](0), false}
}

func (p *dependence) collectExpr(e Expr) {
	// Only the type and direct references to value parameters matter here.
	if r, ok := e.(*Reference); ok {
		if _, ok := r.decl.(*ValueParm); ok {
			p.params.Insert(r.decl)
		}
	}
	//
	_, _ = ApplyType(e.Type(), p)
}

func (p *dependence) collectAll(types []Type) {
	for _, t := range types {
		_, _ = ApplyType(t, p)
	}
}

func (p *dependence) VisitVoid(*VoidType) (bool, error)       { return false, nil }
func (p *dependence) VisitBoolean(*BooleanType) (bool, error) { return false, nil }
func (p *dependence) VisitInteger(*IntegerType) (bool, error) { return false, nil }
func (p *dependence) VisitFloat(*FloatType) (bool, error)     { return false, nil }

func (p *dependence) VisitAuto(*AutoType) (bool, error) {
	p.placeholder = true
	return true, nil
}

func (p *dependence) VisitDecltype(t *DecltypeType) (bool, error) {
	p.collectExpr(t.expr)
	return false, nil
}

func (p *dependence) VisitDeclauto(*DeclautoType) (bool, error) { return false, nil }

func (p *dependence) VisitFunction(t *FunctionType) (bool, error) {
	p.collectAll(t.params)
	return ApplyType(t.ret, p)
}

func (p *dependence) VisitReference(t *ReferenceType) (bool, error) {
	return ApplyType(t.referent, p)
}

func (p *dependence) VisitQualified(t *QualifiedType) (bool, error) {
	return ApplyType(t.referent, p)
}

func (p *dependence) VisitPointer(t *PointerType) (bool, error) {
	return ApplyType(t.referent, p)
}

func (p *dependence) VisitArray(t *ArrayType) (bool, error) {
	p.collectExpr(t.bound)
	return ApplyType(t.element, p)
}

func (p *dependence) VisitSequence(t *SequenceType) (bool, error) {
	return ApplyType(t.element, p)
}

func (p *dependence) VisitClass(*ClassType) (bool, error) { return false, nil }
func (p *dependence) VisitUnion(*UnionType) (bool, error) { return false, nil }
func (p *dependence) VisitEnum(*EnumType) (bool, error)   { return false, nil }

func (p *dependence) VisitTypename(t *TypenameType) (bool, error) {
	p.params.Insert(t.decl)
	return true, nil
}
