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
	"strings"
	"testing"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
	"github.com/davecgh/go-spew/spew"
)

func Test_Substitution_01(t *testing.T) {
	var (
		ctx    = NewContext(DefaultConfig())
		b      = ctx.Builder()
		T      = ast.NewTypeParm(identifier(ctx, "T"), nil)
		tT     = b.TypenameType(T)
		intT   = ctx.IntType()
		s      = NewSubstitutionFrom([]ast.Decl{T}, []ast.Term{intT})
		params = []ast.Type{tT, b.BooleanType()}
	)
	// Compound types recurse
	check_SubstituteType(t, ctx, s, b.PointerType(tT), b.PointerType(intT))
	check_SubstituteType(t, ctx, s, b.ReferenceType(tT), b.ReferenceType(intT))
	check_SubstituteType(t, ctx, s, b.QualifiedType(tT, ast.CONST_QUALIFIER),
		b.QualifiedType(intT, ast.CONST_QUALIFIER))
	check_SubstituteType(t, ctx, s, b.SequenceType(tT), b.SequenceType(intT))
	check_SubstituteType(t, ctx, s, b.FunctionType(params, tT),
		b.FunctionType([]ast.Type{intT, b.BooleanType()}, intT))
	check_SubstituteType(t, ctx, s, b.PointerType(b.PointerType(tT)), b.PointerType(b.PointerType(intT)))
}

// Unmapped parameters are left alone.
func Test_Substitution_02(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		b   = ctx.Builder()
		T   = ast.NewTypeParm(identifier(ctx, "T"), nil)
		U   = ast.NewTypeParm(identifier(ctx, "U"), nil)
		s   = NewSubstitutionFrom([]ast.Decl{T}, []ast.Term{b.BooleanType()})
	)
	//
	check_SubstituteType(t, ctx, s, b.TypenameType(U), b.TypenameType(U))
	check_SubstituteType(t, ctx, s, b.PointerType(b.TypenameType(U)), b.PointerType(b.TypenameType(U)))
	check_SubstituteType(t, ctx, s, b.FunctionType([]ast.Type{b.TypenameType(T)}, b.TypenameType(U)),
		b.FunctionType([]ast.Type{b.BooleanType()}, b.TypenameType(U)))
	//
	if s.Closes(b.PointerType(b.TypenameType(U))) {
		t.Errorf("substitution %s should not close %s", s, b.TypenameType(U))
	} else if !s.Closes(b.PointerType(b.TypenameType(T))) {
		t.Errorf("substitution %s should close %s", s, b.TypenameType(T))
	}
}

// Nominal types are left alone.
func Test_Substitution_03(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		b   = ctx.Builder()
		T   = ast.NewTypeParm(identifier(ctx, "T"), nil)
		K   = ast.NewNamespaceDecl(identifier(ctx, "K"))
		s   = NewSubstitutionFrom([]ast.Decl{T}, []ast.Term{ctx.IntType()})
	)
	//
	for _, typ := range []ast.Type{b.VoidType(), b.BooleanType(), ctx.IntType(), b.IntegerType(false, 8),
		b.FloatType(64), b.ClassType(K), b.UnionType(K), b.EnumType(K)} {
		check_SubstituteType(t, ctx, s, typ, typ)
	}
}

// Substituting twice with a closing substitution changes nothing.
func Test_Substitution_04(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		b   = ctx.Builder()
		T   = ast.NewTypeParm(identifier(ctx, "T"), nil)
		tT  = b.TypenameType(T)
		s   = NewSubstitutionFrom([]ast.Decl{T}, []ast.Term{b.PointerType(ctx.IntType())})
		typ = b.FunctionType([]ast.Type{tT, b.PointerType(tT)}, b.ReferenceType(tT))
	)
	//
	if !s.Closes(typ) {
		t.Fatalf("substitution %s should close %s", s, typ)
	}
	//
	once, err := SubstituteType(ctx, typ, s)
	if err != nil {
		t.Fatal(err)
	}
	//
	twice, err := SubstituteType(ctx, once, s)
	if err != nil {
		t.Fatal(err)
	}
	//
	if once != twice {
		t.Errorf("substitution not idempotent: %s then %s", once, twice)
	}
}

func Test_Substitution_05(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		b   = ctx.Builder()
		T   = ast.NewTypeParm(identifier(ctx, "T"), nil)
		s   = NewSubstitutionFrom([]ast.Decl{T}, []ast.Term{ctx.IntType()})
		n   = ast.NewIntegerLiteral(ctx.IntType(), 4)
	)
	//
	check_Unsupported(t, ctx, s, b.ArrayType(b.TypenameType(T), n))
	check_Unsupported(t, ctx, s, ctx.MakePlaceholder())
	check_Unsupported(t, ctx, s, b.DeclautoType())
	check_Unsupported(t, ctx, s, ast.NewNamespaceDecl(identifier(ctx, "N")))
	check_Unsupported(t, ctx, s, ast.NewFunctionDecl(identifier(ctx, "f"), b.FunctionType(nil, b.VoidType()), nil))
}

// Substitution into a variable builds a new declaration with the same name.
func Test_Substitution_06(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		b   = ctx.Builder()
		T   = ast.NewTypeParm(identifier(ctx, "T"), nil)
		x   = ast.NewVariableDecl(identifier(ctx, "x"), b.PointerType(b.TypenameType(T)))
		s   = NewSubstitutionFrom([]ast.Decl{T}, []ast.Term{ctx.IntType()})
	)
	//
	x.SetInitializer(&ast.DefaultInit{})
	//
	d, err := SubstituteDecl(ctx, x, s)
	if err != nil {
		t.Fatal(err)
	}
	//
	var y = d.(*ast.VariableDecl)
	//
	if y == x || y.Name() != x.Name() {
		t.Errorf("expected fresh declaration named %s, got %s", x.Name(), y)
	} else if y.Type() != b.PointerType(ctx.IntType()) {
		t.Errorf("unexpected type %s", y.Type())
	} else if y.Initializer() != nil {
		t.Errorf("initializer should not be substituted")
	} else if x.Type() != b.PointerType(b.TypenameType(T)) {
		t.Errorf("original declaration modified")
	}
}

// A reference to a value parameter is replaced by its argument.
func Test_Substitution_07(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		N   = ast.NewValueParm(identifier(ctx, "N"), ctx.IntType(), nil)
		lit = ast.NewIntegerLiteral(ctx.IntType(), 3)
		s   = NewSubstitutionFrom([]ast.Decl{N}, []ast.Term{lit})
		e   = ast.NewCompare(ctx.BoolType(), ast.LT, ast.NewReference(ctx.IntType(), N), lit)
	)
	//
	actual, err := SubstituteExpr(ctx, e, s)
	if err != nil {
		t.Fatal(err)
	}
	//
	var expected = ast.NewCompare(ctx.BoolType(), ast.LT, lit, lit)
	//
	if !ast.EquivalentExprs(actual, expected) {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

// ===================================================================
// Scopes
// ===================================================================

func Test_Scope_01(t *testing.T) {
	var (
		ctx    = NewContext(DefaultConfig())
		x      = identifier(ctx, "x")
		global = NewGlobalScope()
		inner  = global.Enter(BLOCK_SCOPE, nil)
		outerX = ast.NewVariableDecl(x, ctx.IntType())
		innerX = ast.NewVariableDecl(x, ctx.BoolType())
		symbol = ctx.Symbols().Get("x")
	)
	//
	global.Bind(x, outerX)
	inner.Bind(x, innerX)
	//
	check_Lookup(t, inner, symbol, innerX)
	check_Lookup(t, global, symbol, outerX)
	//
	if inner.Lookup(symbol).Size() != 1 {
		t.Errorf("overload sets from different scopes should not be merged")
	}
}

func Test_Scope_02(t *testing.T) {
	var (
		ctx    = NewContext(DefaultConfig())
		b      = ctx.Builder()
		f      = identifier(ctx, "f")
		global = NewGlobalScope()
		inner  = global.Enter(FUNCTION_SCOPE, nil)
		f1     = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{ctx.IntType()}, b.VoidType()), nil)
		f2     = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{ctx.BoolType()}, b.VoidType()), nil)
		symbol = ctx.Symbols().Get("f")
	)
	//
	global.Bind(f, f1)
	global.Bind(f, f2)
	// Inner scope sees the whole outer set
	var set = inner.Lookup(symbol)
	//
	if set == nil || set.Size() != 2 || set.Declarations()[0] != f1 || set.Declarations()[1] != f2 {
		t.Errorf("unexpected overload set %s", spew.Sdump(set))
	} else if set.Single() != nil {
		t.Errorf("overloaded name has no single declaration")
	} else if inner.LookupLocal(symbol) != nil {
		t.Errorf("nothing bound locally")
	}
}

// Anonymous declarations are not bound.
func Test_Scope_03(t *testing.T) {
	var (
		ctx    = NewContext(DefaultConfig())
		global = NewGlobalScope()
		p      = ast.NewObjectParm(ast.NewPlaceholderId(0), ctx.IntType(), ast.FUNCTION_PARAMETER)
	)
	//
	global.Bind(p.Name(), p)
	//
	if len(global.Symbols()) != 0 {
		t.Errorf("anonymous parameter should not be bound")
	}
}

// ===================================================================
// Overloading and conversions
// ===================================================================

func Test_Resolve_01(t *testing.T) {
	var (
		ctx  = NewContext(DefaultConfig())
		b    = ctx.Builder()
		f    = identifier(ctx, "f")
		intT = ctx.IntType()
		f1   = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{intT}, b.VoidType()), nil)
		f2   = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{b.BooleanType()}, b.VoidType()), nil)
		f3   = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{intT, intT}, b.VoidType()), nil)
		fns  = []ast.Decl{f1, f2, f3}
	)
	// Exact matches beat conversions
	check_Resolve(t, fns, []ast.Type{intT}, f1)
	check_Resolve(t, fns, []ast.Type{b.BooleanType()}, f2)
	check_Resolve(t, fns, []ast.Type{b.QualifiedType(intT, ast.CONST_QUALIFIER)}, f1)
	check_Resolve(t, fns, []ast.Type{intT, b.BooleanType()}, f3)
	// Conversion from float is equally good for both
	if _, err := Resolve(fns, []ast.Type{b.FloatType(64)}); !IsTranslationError(err) {
		t.Errorf("expected ambiguous call, got %v", err)
	}
	// No candidate takes a pointer
	if _, err := Resolve(fns, []ast.Type{b.PointerType(intT)}); !IsTranslationError(err) {
		t.Errorf("expected no matching declaration, got %v", err)
	}
	// Duplicates count once
	check_Resolve(t, []ast.Decl{f1, f1}, []ast.Type{intT}, f1)
}

func Test_Resolve_02(t *testing.T) {
	var (
		ctx  = NewContext(DefaultConfig())
		b    = ctx.Builder()
		f    = identifier(ctx, "f")
		intT = ctx.IntType()
		f1   = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{intT}, b.VoidType()), nil)
		f2   = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{intT}, b.VoidType()), nil)
		f3   = ast.NewFunctionDecl(f, b.FunctionType([]ast.Type{b.BooleanType()}, b.VoidType()), nil)
	)
	// Redeclarations of the same function are not ambiguous
	check_Resolve(t, []ast.Decl{f1, f2, f3}, []ast.Type{intT}, f1)
	// The defining declaration is preferred
	f2.SetDefinition(&ast.DeletedDef{})
	check_Resolve(t, []ast.Decl{f1, f2, f3}, []ast.Type{intT}, f2)
	check_Resolve(t, []ast.Decl{f2, f1, f3}, []ast.Type{intT}, f2)
}

func Test_Builder_01(t *testing.T) {
	var (
		ctx   = NewContext(DefaultConfig())
		b     = ctx.Builder()
		intT  = ctx.IntType()
		three = ast.NewIntegerLiteral(intT, 3)
		four  = ast.NewIntegerLiteral(intT, 4)
		n     = ast.NewReference(intT, ast.NewVariableDecl(identifier(ctx, "n"), intT))
	)
	// Equal literal bounds give the same array type
	if b.ArrayType(intT, three) != b.ArrayType(intT, ast.NewIntegerLiteral(intT, 3)) {
		t.Errorf("expected int[3] to be interned")
	} else if b.ArrayType(intT, three) == b.ArrayType(intT, four) {
		t.Errorf("int[3] and int[4] should differ")
	} else if b.ArrayType(intT, three) == b.ArrayType(b.BooleanType(), three) {
		t.Errorf("int[3] and bool[3] should differ")
	}
	// Other bounds are compared by identity
	if b.ArrayType(intT, n) != b.ArrayType(intT, n) {
		t.Errorf("expected int[n] to be interned")
	} else if b.ArrayType(intT, n) == b.ArrayType(intT, three) {
		t.Errorf("int[n] and int[3] should differ")
	}
}

func Test_Conversion_01(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		b   = ctx.Builder()
		K   = ast.NewNamespaceDecl(identifier(ctx, "K"))
		lit = ast.NewIntegerLiteral(ctx.IntType(), 1)
		tru = ast.NewBooleanLiteral(ctx.BoolType(), true)
	)
	//
	if e, err := ContextualConversionToBool(ctx, tru); err != nil || e != ast.Expr(tru) {
		t.Errorf("bool should convert to itself")
	}
	//
	if e, err := ContextualConversionToBool(ctx, lit); err != nil {
		t.Error(err)
	} else if c, ok := e.(*ast.BooleanConversion); !ok || c.Operand() != ast.Expr(lit) || c.Type() != ctx.BoolType() {
		t.Errorf("expected conversion of %s, got %s", lit, e)
	}
	//
	var obj = ast.NewObjectParm(identifier(ctx, "k"), b.ClassType(K), ast.FUNCTION_PARAMETER)
	//
	if _, err := ContextualConversionToBool(ctx, ast.NewReference(obj.Type(), obj)); !IsTranslationError(err) {
		t.Errorf("class should not convert to bool")
	}
}

// ===================================================================
// Normalization, expansion and admission
// ===================================================================

// Reassociated conjunctions have the same normal form.
func Test_Normalize_01(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		bT  = ctx.BoolType()
		a   = boolVariable(ctx, "a")
		b   = boolVariable(ctx, "b")
		c   = boolVariable(ctx, "c")
		lhs = ast.NewAnd(bT, ast.NewAnd(bT, a, b), c)
		rhs = ast.NewAnd(bT, a, ast.NewAnd(bT, b, c))
	)
	//
	check_Normalize(t, ctx, lhs, rhs)
	check_Normalize(t, ctx, ast.NewOr(bT, ast.NewOr(bT, a, b), c), ast.NewOr(bT, a, ast.NewOr(bT, b, c)))
	//
	var cons = Normalize(ctx, lhs)
	//
	if conj, ok := cons.(*ast.ConjunctionCons); !ok {
		t.Errorf("expected conjunction, got %s", cons)
	} else if _, ok := conj.Right().(*ast.ConjunctionCons); !ok {
		t.Errorf("expected right nested conjunction, got %s", cons)
	}
}

// C<int> expands to the normalized instantiation of C's body.
func Test_Expand_01(t *testing.T) {
	var (
		ctx  = NewContext(Config{Memoize: false, Recover: true, IntegerPrecision: 32})
		T    = ast.NewTypeParm(identifier(ctx, "T"), nil)
		tT   = ctx.Builder().TypenameType(T)
		v    = ast.NewObjectParm(identifier(ctx, "v"), tT, ast.FUNCTION_PARAMETER)
		C    = ast.NewConceptDecl(identifier(ctx, "C"), []ast.Decl{T})
		args = []ast.Term{ctx.IntType()}
	)
	//
	var restore = ctx.EnterRequirements()
	//
	body, err := MakeLogicalAnd(ctx, ast.NewReference(tT, v), ast.NewBooleanLiteral(ctx.BoolType(), true))
	//
	restore()
	//
	if err != nil {
		t.Fatal(err)
	} else if !ast.IsPlaceholder(body.Type()) {
		t.Fatalf("dependent conjunction should have placeholder type, got %s", body.Type())
	}
	//
	C.SetDefinition(body)
	//
	actual, err := Expand(ctx, ast.NewConceptCons(C, args))
	if err != nil {
		t.Fatal(err)
	}
	// Substitute and normalize by hand
	instance, err := SubstituteExpr(ctx, body, NewSubstitutionFrom(C.Parameters(), args))
	if err != nil {
		t.Fatal(err)
	}
	//
	var expected = Normalize(ctx, instance)
	//
	if !ast.EquivalentCons(actual, expected) {
		t.Errorf("expected %s, got %s\n%s", expected, actual, spew.Sdump(actual))
	}
	// After substitution the conjunction is no longer dependent, and its
	// operands are converted to bool.
	if conj, ok := actual.(*ast.ConjunctionCons); !ok {
		t.Errorf("expected conjunction, got %s", actual)
	} else if p, ok := conj.Left().(*ast.PredicateCons); !ok || p.Expr().Type() != ctx.BoolType() {
		t.Errorf("expected predicate of type bool, got %s", conj.Left())
	} else if _, ok := p.Expr().(*ast.BooleanConversion); !ok {
		t.Errorf("expected conversion to bool, got %s", p.Expr())
	}
}

// Expansion is deterministic, with or without memoisation.
func Test_Expand_02(t *testing.T) {
	for _, memoize := range []bool{false, true} {
		var (
			ctx      = NewContext(Config{Memoize: memoize, Recover: true, IntegerPrecision: 32})
			D, _     = requiresConcept(ctx, false)
			U        = ast.NewTypeParm(identifier(ctx, "U"), nil)
			cons     = ast.NewConceptCons(D, []ast.Term{ctx.Builder().TypenameType(U)})
			one, err = Expand(ctx, cons)
		)
		//
		if err != nil {
			t.Fatal(err)
		}
		//
		two, err := Expand(ctx, cons)
		if err != nil {
			t.Fatal(err)
		}
		//
		if !ast.EquivalentCons(one, two) {
			t.Errorf("expansion not deterministic: %s and %s", one, two)
		} else if memoize && one != two {
			t.Errorf("expansion not memoised")
		} else if !memoize && one == two {
			t.Errorf("expansion memoised")
		}
	}
}

func Test_Expand_03(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		C   = ast.NewConceptDecl(identifier(ctx, "C"), nil)
	)
	// Not yet defined
	if _, err := Expand(ctx, ast.NewConceptCons(C, nil)); !IsTranslationError(err) {
		t.Errorf("expected translation error, got %v", err)
	}
}

// Leftmost match wins.
func Test_Admit_01(t *testing.T) {
	var (
		ctx       = NewContext(DefaultConfig())
		tT        = ctx.Builder().TypenameType(ast.NewTypeParm(identifier(ctx, "T"), nil))
		x         = reference(ctx, "x", tT, ast.FUNCTION_PARAMETER)
		y         = reference(ctx, "y", tT, ast.FUNCTION_PARAMETER)
		candidate = ast.NewAnd(ctx.MakePlaceholder(), x, y)
		first     = ast.NewAnd(ctx.BoolType(), x, y)
		second    = ast.NewAnd(ctx.IntType(), x, y)
		other     = ast.NewOr(ctx.BoolType(), x, y)
	)
	//
	check_Admit(t, ctx, ast.NewConjunctionCons(ast.NewPredicateCons(first), ast.NewPredicateCons(second)),
		candidate, first)
	check_Admit(t, ctx, ast.NewDisjunctionCons(ast.NewExpressionCons(second), ast.NewPredicateCons(first)),
		candidate, second)
	check_Admit(t, ctx, ast.NewConjunctionCons(ast.NewPredicateCons(other), ast.NewPredicateCons(second)),
		candidate, second)
	check_Admit(t, ctx, ast.NewPredicateCons(other), candidate, nil)
}

// A dependent conjunction is admitted by a concept requiring it.
func Test_Admit_02(t *testing.T) {
	var (
		ctx     = NewContext(DefaultConfig())
		D, _    = requiresConcept(ctx, true)
		X       = ast.NewTypeParm(identifier(ctx, "X"), nil)
		xT      = ctx.Builder().TypenameType(X)
		x       = reference(ctx, "x", xT, ast.FUNCTION_PARAMETER)
		y       = reference(ctx, "y", xT, ast.FUNCTION_PARAMETER)
		restore = ctx.EnterConstraints(ast.NewConceptCons(D, []ast.Term{xT}))
	)
	//
	defer restore()
	//
	actual, err := MakeLogicalAnd(ctx, x, y)
	if err != nil {
		t.Fatal(err)
	}
	// Result is the constraint's copy, which has type bool
	if actual.Type() != ctx.BoolType() {
		t.Errorf("expected admitted expression of type bool, got %s : %s", actual, actual.Type())
	} else if and, ok := actual.(*ast.And); !ok || and.Left() == ast.Expr(x) {
		t.Errorf("expected constraint's expression, got %s", actual)
	}
}

// Without a match, the dependent path gives the standard construction.
func Test_Admit_03(t *testing.T) {
	var (
		ctx     = NewContext(DefaultConfig())
		tT      = ctx.Builder().TypenameType(ast.NewTypeParm(identifier(ctx, "T"), nil))
		x       = reference(ctx, "x", tT, ast.FUNCTION_PARAMETER)
		y       = reference(ctx, "y", tT, ast.FUNCTION_PARAMETER)
		z       = reference(ctx, "z", tT, ast.FUNCTION_PARAMETER)
		cons    = ast.NewPredicateCons(ast.NewOr(ctx.BoolType(), z, z))
		restore = ctx.EnterConstraints(cons)
	)
	//
	defer restore()
	//
	for _, build := range []func() (ast.Expr, ast.Expr, error){
		func() (ast.Expr, ast.Expr, error) {
			actual, err := MakeLogicalAnd(ctx, x, y)
			expected, _ := makeStandardAnd(ctx, x, y)
			return actual, expected, err
		},
		func() (ast.Expr, ast.Expr, error) {
			actual, err := MakeLogicalOr(ctx, x, y)
			expected, _ := makeStandardOr(ctx, x, y)
			return actual, expected, err
		},
		func() (ast.Expr, ast.Expr, error) {
			actual, err := MakeLogicalNot(ctx, x)
			expected, _ := makeStandardNot(ctx, x)
			return actual, expected, err
		},
	} {
		actual, expected, err := build()
		//
		if err != nil {
			t.Fatal(err)
		} else if !ast.EquivalentExprs(actual, expected) || actual.Type() != ctx.BoolType() {
			t.Errorf("expected %s, got %s\n%s", expected, actual, spew.Sdump(actual))
		}
	}
}

// Dependent expressions keep their placeholder when elaborating
// constraints, or outside constrained templates.
func Test_Admit_04(t *testing.T) {
	var (
		ctx  = NewContext(DefaultConfig())
		tT   = ctx.Builder().TypenameType(ast.NewTypeParm(identifier(ctx, "T"), nil))
		x    = reference(ctx, "x", tT, ast.FUNCTION_PARAMETER)
		y    = reference(ctx, "y", tT, ast.FUNCTION_PARAMETER)
		cons = ast.NewPredicateCons(ast.NewAnd(ctx.BoolType(), x, y))
	)
	// Unconstrained
	check_Placeholder(t, ctx, x, y)
	// Elaborating a constraint
	var (
		leave   = ctx.EnterConstraints(cons)
		restore = ctx.EnterRequirements()
	)
	//
	check_Placeholder(t, ctx, x, y)
	restore()
	leave()
	// Distinct placeholders
	one, _ := MakeLogicalAnd(ctx, x, y)
	two, _ := MakeLogicalAnd(ctx, x, y)
	//
	if ast.EquivalentTypes(one.Type(), two.Type()) {
		t.Errorf("placeholders %s and %s should be distinct", one.Type(), two.Type())
	}
}

func Test_Compare_01(t *testing.T) {
	var (
		ctx = NewContext(DefaultConfig())
		one = ast.NewIntegerLiteral(ctx.IntType(), 1)
		tru = ast.NewBooleanLiteral(ctx.BoolType(), true)
	)
	//
	for _, build := range []func(*Context, ast.Expr, ast.Expr) (ast.Expr, error){
		MakeEq, MakeNe, MakeLt, MakeGt, MakeLe, MakeGe,
	} {
		if e, err := build(ctx, one, one); err != nil || e.Type() != ctx.BoolType() {
			t.Errorf("expected well-formed comparison, got %v", err)
		}
		//
		if _, err := build(ctx, one, tru); !IsTranslationError(err) {
			t.Errorf("expected translation error comparing %s with %s", one, tru)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// A concept defined in terms of itself is reported rather than expanded
// forever.
func Test_Admit_05(t *testing.T) {
	for _, memoize := range []bool{false, true} {
		var (
			ctx       = NewContext(Config{Memoize: memoize, Recover: true, IntegerPrecision: 32})
			T         = ast.NewTypeParm(identifier(ctx, "T"), nil)
			U         = ast.NewTypeParm(identifier(ctx, "U"), nil)
			tT        = ctx.Builder().TypenameType(T)
			tU        = ctx.Builder().TypenameType(U)
			C         = ast.NewConceptDecl(identifier(ctx, "C"), []ast.Decl{T})
			x         = reference(ctx, "x", tU, ast.FUNCTION_PARAMETER)
			y         = reference(ctx, "y", tU, ast.FUNCTION_PARAMETER)
			candidate = ast.NewAnd(ctx.MakePlaceholder(), x, y)
		)
		//
		C.SetDefinition(ast.NewCheck(ctx.BoolType(), C, []ast.Term{tT}))
		//
		actual, err := Admit(ctx, ast.NewConceptCons(C, []ast.Term{tU}), candidate)
		//
		if !IsTranslationError(err) {
			t.Errorf("expected translation error, got %v (%s)", err, spew.Sdump(actual))
		} else if !strings.Contains(err.Error(), "defined in terms of itself") {
			t.Errorf("unexpected message %s", err)
		}
	}
}

func identifier(ctx *Context, id string) ast.Name {
	return ast.NewSimpleId(ctx.Symbols().Get(id))
}

func boolVariable(ctx *Context, id string) ast.Expr {
	var decl = ast.NewVariableDecl(identifier(ctx, id), ctx.BoolType())
	//
	return ast.NewReference(ctx.BoolType(), decl)
}

func reference(ctx *Context, id string, typ ast.Type, kind ast.ParmKind) ast.Expr {
	var decl = ast.NewObjectParm(identifier(ctx, id), typ, kind)
	//
	return ast.NewReference(typ, decl)
}

// Construct concept D<T> = requires (T a, T b) { a && b; }, where the
// requirement is optionally typed as bool.
func requiresConcept(ctx *Context, typed bool) (*ast.ConceptDecl, *ast.TypeParm) {
	var (
		T       = ast.NewTypeParm(identifier(ctx, "T"), nil)
		tT      = ctx.Builder().TypenameType(T)
		a       = ast.NewObjectParm(identifier(ctx, "a"), tT, ast.REQUIREMENT_PARAMETER)
		b       = ast.NewObjectParm(identifier(ctx, "b"), tT, ast.REQUIREMENT_PARAMETER)
		D       = ast.NewConceptDecl(identifier(ctx, "D"), []ast.Decl{T})
		restore = ctx.EnterRequirements()
	)
	//
	defer restore()
	//
	and, err := MakeLogicalAnd(ctx, ast.NewReference(tT, a), ast.NewReference(tT, b))
	if err != nil {
		panic(err)
	}
	//
	var req ast.Requirement = ast.NewSimpleRequirement(and)
	//
	if typed {
		req = ast.NewTypedRequirement(Retype(and, ctx.BoolType()), ctx.BoolType())
	}
	//
	D.SetDefinition(ast.NewRequires(ctx.BoolType(), []ast.Decl{a, b}, []ast.Requirement{req}))
	//
	return D, T
}

func check_SubstituteType(t *testing.T, ctx *Context, s *Substitution, input ast.Type, expected ast.Type) {
	actual, err := SubstituteType(ctx, input, s)
	//
	if err != nil {
		t.Errorf("substituting %s into %s: %v", s, input, err)
	} else if actual != expected {
		// Interning means equivalent types are identical
		t.Errorf("substituting %s into %s: expected %s, got %s", s, input, expected, actual)
	}
}

func check_Unsupported(t *testing.T, ctx *Context, s *Substitution, input ast.Term) {
	if _, err := Substitute(ctx, input, s); !IsUnsupported(err) {
		t.Errorf("substituting %s into %s: expected unsupported construct, got %v", s, input, err)
	} else if IsTranslationError(err) {
		t.Errorf("unsupported construct reported as translation error")
	}
}

func check_Lookup(t *testing.T, scope *Scope, symbol *ast.Symbol, expected ast.Decl) {
	var set = scope.Lookup(symbol)
	//
	if set == nil {
		t.Errorf("%s not found in %s", symbol, scope)
	} else if set.Single() != expected {
		t.Errorf("expected %s, got %s", expected, spew.Sdump(set.Declarations()))
	}
}

func check_Resolve(t *testing.T, candidates []ast.Decl, args []ast.Type, expected ast.Decl) {
	actual, err := Resolve(candidates, args)
	//
	if err != nil {
		t.Errorf("resolving (%s): %v", typeList(args), err)
	} else if actual != expected {
		t.Errorf("resolving (%s): expected %s, got %s", typeList(args), expected, actual)
	}
}

func check_Normalize(t *testing.T, ctx *Context, lhs ast.Expr, rhs ast.Expr) {
	var (
		l = Normalize(ctx, lhs)
		r = Normalize(ctx, rhs)
	)
	//
	if !ast.EquivalentCons(l, r) {
		t.Errorf("expected same normal form for %s and %s, got %s and %s", lhs, rhs, l, r)
	}
}

func check_Admit(t *testing.T, ctx *Context, cons ast.Cons, candidate ast.Expr, expected ast.Expr) {
	actual, err := Admit(ctx, cons, candidate)
	//
	if err != nil {
		t.Errorf("admitting %s under %s: %v", candidate, cons, err)
	} else if actual != expected {
		t.Errorf("admitting %s under %s: expected %v, got %v", candidate, cons, expected, actual)
	}
}

func check_Placeholder(t *testing.T, ctx *Context, x ast.Expr, y ast.Expr) {
	actual, err := MakeLogicalAnd(ctx, x, y)
	//
	if err != nil {
		t.Error(err)
	} else if !ast.IsPlaceholder(actual.Type()) {
		t.Errorf("expected placeholder type for %s, got %s", actual, actual.Type())
	}
}
