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
	"testing"

	"github.com/davecgh/go-spew/spew"
)

var (
	symbols = NewSymbolTable()
	int32T  = NewIntegerType(true, 32)
	boolT   = &BooleanType{}
	parmT   = NewTypeParm(NewSimpleId(symbols.Get("T")), nil)
	parmU   = NewTypeParm(NewSimpleId(symbols.Get("U")), nil)
)

func Test_EquivalentTypes_01(t *testing.T) {
	check_EquivalentTypes(t, true, int32T, NewIntegerType(true, 32))
	check_EquivalentTypes(t, false, int32T, NewIntegerType(false, 32))
	check_EquivalentTypes(t, false, int32T, NewIntegerType(true, 64))
	check_EquivalentTypes(t, false, int32T, boolT)
}

func Test_EquivalentTypes_02(t *testing.T) {
	check_EquivalentTypes(t, true, NewPointerType(int32T), NewPointerType(NewIntegerType(true, 32)))
	check_EquivalentTypes(t, false, NewPointerType(int32T), NewReferenceType(int32T))
	check_EquivalentTypes(t, true,
		NewQualifiedType(int32T, CONST_QUALIFIER), NewQualifiedType(int32T, CONST_QUALIFIER))
	check_EquivalentTypes(t, false,
		NewQualifiedType(int32T, CONST_QUALIFIER), NewQualifiedType(int32T, VOLATILE_QUALIFIER))
}

func Test_EquivalentTypes_03(t *testing.T) {
	var (
		f1 = NewFunctionType([]Type{int32T, boolT}, boolT)
		f2 = NewFunctionType([]Type{int32T, boolT}, boolT)
		f3 = NewFunctionType([]Type{int32T}, boolT)
	)
	//
	check_EquivalentTypes(t, true, f1, f2)
	check_EquivalentTypes(t, false, f1, f3)
}

func Test_EquivalentTypes_04(t *testing.T) {
	check_EquivalentTypes(t, true, NewTypenameType(parmT), NewTypenameType(parmT))
	check_EquivalentTypes(t, false, NewTypenameType(parmT), NewTypenameType(parmU))
	check_EquivalentTypes(t, true, NewAutoType(1), NewAutoType(1))
	check_EquivalentTypes(t, false, NewAutoType(1), NewAutoType(2))
}

func Test_EquivalentExprs_01(t *testing.T) {
	var (
		x = NewVariableDecl(NewSimpleId(symbols.Get("x")), boolT)
		y = NewVariableDecl(NewSimpleId(symbols.Get("y")), boolT)
		a = NewAnd(boolT, NewReference(boolT, x), NewReference(boolT, y))
		b = NewAnd(boolT, NewReference(boolT, x), NewReference(boolT, y))
		c = NewOr(boolT, NewReference(boolT, x), NewReference(boolT, y))
	)
	//
	check_EquivalentExprs(t, true, a, b)
	check_EquivalentExprs(t, false, a, c)
	check_EquivalentExprs(t, false, a, NewAnd(boolT, NewReference(boolT, y), NewReference(boolT, x)))
}

// Result types are ignored when comparing operations.
func Test_EquivalentExprs_02(t *testing.T) {
	var (
		x = NewVariableDecl(NewSimpleId(symbols.Get("x")), int32T)
		a = NewCompare(NewAutoType(3), LT, NewReference(int32T, x), NewIntegerLiteral(int32T, 1))
		b = NewCompare(boolT, LT, NewReference(int32T, x), NewIntegerLiteral(int32T, 1))
		c = NewCompare(int32T, LT, NewReference(int32T, x), NewIntegerLiteral(int32T, 1))
	)
	//
	if !EquivalentOperation(a, b) || !EquivalentOperation(b, c) {
		t.Errorf("expected equivalent operations")
	}
	// Placeholder matches anything
	check_EquivalentExprs(t, true, a, b)
	// Concrete types must agree
	check_EquivalentExprs(t, false, b, c)
}

// A requirement parameter stands for any expression of its type.
func Test_EquivalentExprs_03(t *testing.T) {
	var (
		tT = NewTypenameType(parmT)
		a  = NewObjectParm(NewSimpleId(symbols.Get("a")), tT, REQUIREMENT_PARAMETER)
		x  = NewObjectParm(NewSimpleId(symbols.Get("x")), tT, FUNCTION_PARAMETER)
		y  = NewObjectParm(NewSimpleId(symbols.Get("y")), int32T, FUNCTION_PARAMETER)
		z  = NewObjectParm(NewSimpleId(symbols.Get("z")), tT, FUNCTION_PARAMETER)
	)
	//
	check_EquivalentExprs(t, true, NewReference(tT, a), NewReference(tT, x))
	check_EquivalentExprs(t, false, NewReference(tT, a), NewReference(int32T, y))
	// Function parameters are only equivalent to themselves
	check_EquivalentExprs(t, false, NewReference(tT, x), NewReference(tT, z))
}

func Test_EquivalentCons_01(t *testing.T) {
	var (
		p = NewPredicateCons(NewBooleanLiteral(boolT, true))
		q = NewPredicateCons(NewBooleanLiteral(boolT, false))
		c = NewConjunctionCons(p, NewDisjunctionCons(q, p))
		d = NewConjunctionCons(p, NewDisjunctionCons(q, p))
		e = NewConjunctionCons(NewDisjunctionCons(q, p), p)
	)
	//
	if !EquivalentCons(c, d) {
		t.Errorf("expected equivalent: %s and %s", c, d)
	}
	//
	if EquivalentCons(c, e) {
		t.Errorf("expected distinct: %s and %s", c, e)
	}
}

func Test_Dependent_01(t *testing.T) {
	var tT = NewTypenameType(parmT)
	//
	check_Dependent(t, false, int32T)
	check_Dependent(t, false, NewPointerType(NewQualifiedType(int32T, CONST_QUALIFIER)))
	check_Dependent(t, true, tT)
	check_Dependent(t, true, NewPointerType(tT))
	check_Dependent(t, true, NewFunctionType([]Type{int32T, tT}, boolT))
	check_Dependent(t, true, NewSequenceType(NewReferenceType(tT)))
	check_Dependent(t, true, NewAutoType(7))
}

func Test_FreeParameters_01(t *testing.T) {
	var (
		tT = NewTypenameType(parmT)
		uT = NewTypenameType(parmU)
		ps = FreeParameters(NewFunctionType([]Type{tT, NewPointerType(uT)}, tT))
	)
	//
	if ps.Size() != 2 || !ps.Contains(parmT) || !ps.Contains(parmU) {
		t.Errorf("unexpected free parameters %s", ps)
	}
	//
	if !FreeParameters(int32T).Empty() {
		t.Errorf("expected no free parameters")
	}
}

func Test_String_01(t *testing.T) {
	check_String(t, "int", int32T)
	check_String(t, "uint8", NewIntegerType(false, 8))
	check_String(t, "int const*", NewPointerType(NewQualifiedType(int32T, CONST_QUALIFIER)))
	check_String(t, "(int, bool) -> bool", NewFunctionType([]Type{int32T, boolT}, boolT))
	check_String(t, "T[]", NewSequenceType(NewTypenameType(parmT)))
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_EquivalentTypes(t *testing.T, expected bool, lhs Type, rhs Type) {
	if EquivalentTypes(lhs, rhs) != expected {
		t.Errorf("expected equivalent(%s,%s) == %t\n%s%s", lhs, rhs, expected, spew.Sdump(lhs), spew.Sdump(rhs))
	}
	// Equivalence is symmetric
	if EquivalentTypes(rhs, lhs) != expected {
		t.Errorf("expected equivalent(%s,%s) == %t", rhs, lhs, expected)
	}
}

func check_EquivalentExprs(t *testing.T, expected bool, lhs Expr, rhs Expr) {
	if EquivalentExprs(lhs, rhs) != expected {
		t.Errorf("expected equivalent(%s,%s) == %t\n%s%s", lhs, rhs, expected, spew.Sdump(lhs), spew.Sdump(rhs))
	}
}

func check_Dependent(t *testing.T, expected bool, typ Type) {
	if IsDependentType(typ) != expected {
		t.Errorf("expected dependent(%s) == %t", typ, expected)
	}
}

func check_String(t *testing.T, expected string, term Term) {
	if term.String() != expected {
		t.Errorf("expected \"%s\", got \"%s\"", expected, term.String())
	}
}
