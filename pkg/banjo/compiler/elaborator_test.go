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
	"testing"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
)

// var int x = 5;
func Test_Elaborate_01(t *testing.T) {
	var (
		e    = NewElaborator(NewContext(DefaultConfig()))
		x    = declareVariable(t, e, nil, "x", e.Context().IntType())
		init ast.Expr
	)
	//
	withInitializer(e, x, func() {
		lit, err := e.OnIntegerLiteral("5")
		if err != nil {
			t.Fatal(err)
		}
		//
		if init, err = e.OnEqualInitialization(x, lit); err != nil {
			t.Fatal(err)
		}
	})
	//
	check_Bound(t, e.Scope(), e.Context().Symbols().Get("x"), x)
	//
	if x.Type() != e.Context().IntType() {
		t.Errorf("expected int, got %s", x.Type())
	} else if eq, ok := x.Initializer().(*ast.EqualInit); !ok || eq.Expr() != init {
		t.Errorf("expected initializer %s, got %v", init, x.Initializer())
	} else if lit, ok := init.(*ast.IntegerLiteral); !ok || lit.Value() != 5 {
		t.Errorf("expected literal 5, got %s", init)
	} else if x.String() != "var int x = 5;" {
		t.Errorf("unexpected declaration %s", x)
	}
}

// var int x;
func Test_Elaborate_02(t *testing.T) {
	var (
		e = NewElaborator(NewContext(DefaultConfig()))
		x = declareVariable(t, e, nil, "x", e.Context().IntType())
	)
	//
	if err := e.OnDefaultInitialization(x); err != nil {
		t.Fatal(err)
	}
	//
	check_Bound(t, e.Scope(), e.Context().Symbols().Get("x"), x)
	//
	if _, ok := x.Initializer().(*ast.DefaultInit); !ok {
		t.Errorf("expected default initialization, got %v", x.Initializer())
	} else if x.String() != "var int x;" {
		t.Errorf("unexpected declaration %s", x)
	}
}

// A variable is visible within its own initializer.
func Test_Elaborate_03(t *testing.T) {
	var (
		e = NewElaborator(NewContext(DefaultConfig()))
		x = declareVariable(t, e, nil, "x", e.Context().IntType())
	)
	//
	withInitializer(e, x, func() {
		if e.Scope().Kind() != INITIALIZER_SCOPE || e.Scope().Declaration() != x {
			t.Errorf("expected initializer scope of %s, got %s", x.Name(), e.Scope())
		}
		//
		ref, err := e.OnIdExpression(nil, "x")
		if err != nil {
			t.Fatal(err)
		} else if r, ok := ref.(*ast.Reference); !ok || r.Declaration() != x {
			t.Errorf("expected reference to %s, got %s", x.Name(), ref)
		}
	})
	//
	if e.Scope() != e.Global() {
		t.Errorf("scope not restored")
	}
}

func Test_Elaborate_04(t *testing.T) {
	var (
		e = NewElaborator(NewContext(DefaultConfig()))
		_ = declareVariable(t, e, nil, "x", e.Context().IntType())
	)
	// Redeclaration
	if _, err := e.OnVariableDeclaration(e.OnDeclarator(nil, "x"), e.Context().BoolType()); !IsTranslationError(err) {
		t.Errorf("expected redeclaration error, got %v", err)
	}
	// Void variable
	if _, err := e.OnVariableDeclaration(e.OnDeclarator(nil, "y"), e.Context().Builder().VoidType()); err == nil {
		t.Errorf("expected error declaring void variable")
	}
	// Undeclared
	if _, err := e.OnIdExpression(nil, "z"); !IsTranslationError(err) {
		t.Errorf("expected undeclared identifier, got %v", err)
	}
}

// var int N::z = w; finds N::w before the global w.
func Test_Elaborate_05(t *testing.T) {
	var (
		e    = NewElaborator(NewContext(DefaultConfig()))
		intT = e.Context().IntType()
		N, _ = e.OnNamespaceDeclaration(e.OnDeclarator(nil, "N"))
	)
	//
	func() {
		var restore = e.EnterNamespace(N)
		//
		defer restore()
		//
		_ = declareVariable(t, e, nil, "w", intT)
	}()
	//
	var (
		global = declareVariable(t, e, nil, "w", e.Context().BoolType())
		qual   = declareVariable(t, e, N, "z", intT)
	)
	//
	withInitializer(e, qual, func() {
		ref, err := e.OnIdExpression(nil, "w")
		if err != nil {
			t.Fatal(err)
		}
		//
		var decl = ref.(*ast.Reference).Declaration()
		//
		if decl == ast.Decl(global) || decl.Name().String() != "w" {
			t.Errorf("expected N::w, got %s", decl)
		}
	})
	// z is a member of N, not of the global scope
	if e.Global().LookupLocal(e.Context().Symbols().Get("z")) != nil {
		t.Errorf("N::z bound in global scope")
	} else if _, err := e.OnIdExpression(N, "z"); err != nil {
		t.Errorf("N::z not found: %v", err)
	} else if qual.Name().String() != "N::z" {
		t.Errorf("unexpected name %s", qual.Name())
	}
}

func Test_Elaborate_06(t *testing.T) {
	var (
		e = NewElaborator(NewContext(DefaultConfig()))
		_ = declareVariable(t, e, nil, "v", e.Context().IntType())
	)
	// Qualifier must be a declared namespace
	if _, err := e.OnNestedNameSpecifier(nil, "M"); !IsTranslationError(err) {
		t.Errorf("expected undeclared namespace, got %v", err)
	}
	//
	if _, err := e.OnNestedNameSpecifier(nil, "v"); !IsTranslationError(err) {
		t.Errorf("expected not a namespace, got %v", err)
	}
}

func Test_Elaborate_07(t *testing.T) {
	var config = DefaultConfig()
	//
	config.IntegerPrecision = 8
	//
	var e = NewElaborator(NewContext(config))
	//
	if _, err := e.OnIntegerLiteral("127"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	//
	if _, err := e.OnIntegerLiteral("128"); !IsTranslationError(err) {
		t.Errorf("expected literal out of range, got %v", err)
	}
	//
	if _, err := e.OnIntegerLiteral("99999999999999999999"); !IsTranslationError(err) {
		t.Errorf("expected literal out of range, got %v", err)
	}
}

// def bool f(int a) { return a; }
func Test_Elaborate_08(t *testing.T) {
	var (
		e    = NewElaborator(NewContext(DefaultConfig()))
		ctx  = e.Context()
		fn   *ast.FunctionDecl
		body ast.Stmt
	)
	//
	func() {
		var restore = e.EnterFunctionParameters()
		//
		defer restore()
		//
		a, err := e.OnFunctionParameter(e.OnDeclarator(nil, "a"), ctx.IntType())
		if err != nil {
			t.Fatal(err)
		}
		//
		if fn, err = e.OnFunctionDeclaration(e.OnDeclarator(nil, "f"), []ast.Decl{a}, ctx.BoolType()); err != nil {
			t.Fatal(err)
		}
		//
		var leave = e.EnterFunctionBody(fn)
		//
		defer leave()
		//
		ref, err := e.OnIdExpression(nil, "a")
		if err != nil {
			t.Fatal(err)
		}
		//
		ret, err := e.OnReturnStatement(ref)
		if err != nil {
			t.Fatal(err)
		}
		// Recursive reference
		if _, err := e.OnCall(nil, "f", []ast.Expr{ref}); err != nil {
			t.Fatal(err)
		}
		//
		body = e.OnCompoundStatement([]ast.Stmt{ret})
	}()
	//
	if err := e.OnFunctionDefinition(fn, body); err != nil {
		t.Fatal(err)
	}
	// The returned value is converted to bool
	var ret = body.(*ast.CompoundStmt).Statements()[0].(*ast.ReturnStmt)
	//
	if _, ok := ret.Expr().(*ast.BooleanConversion); !ok {
		t.Errorf("expected conversion to bool, got %s", ret.Expr())
	}
	//
	check_Bound(t, e.Global(), ctx.Symbols().Get("f"), fn)
	//
	if e.Global().LookupLocal(ctx.Symbols().Get("a")) != nil {
		t.Errorf("parameter escaped its scope")
	}
}

// template<typename T> requires D<T> def bool g(T x, T y) { return x && y; }
func Test_Elaborate_09(t *testing.T) {
	var (
		e     = NewElaborator(NewContext(DefaultConfig()))
		ctx   = e.Context()
		D, _  = requiresConcept(ctx, true)
		value ast.Expr
	)
	//
	e.Global().Bind(D.Name(), D)
	//
	func() {
		var restore = e.EnterTemplate()
		//
		defer restore()
		//
		T, err := e.OnTypeTemplateParameter(e.OnDeclarator(nil, "T"), nil)
		if err != nil {
			t.Fatal(err)
		}
		//
		tT, err := e.OnTypeName(nil, "T")
		if err != nil || tT != ast.Type(ctx.Builder().TypenameType(T)) {
			t.Fatalf("expected T, got %v (%v)", tT, err)
		}
		//
		check, err := e.OnCheck(nil, "D", []ast.Term{tT})
		if err != nil {
			t.Fatal(err)
		} else if err := e.OnTemplateConstraint(check); err != nil {
			t.Fatal(err)
		}
		//
		var leave = e.EnterFunctionParameters()
		//
		defer leave()
		//
		x, _ := e.OnFunctionParameter(e.OnDeclarator(nil, "x"), tT)
		y, _ := e.OnFunctionParameter(e.OnDeclarator(nil, "y"), tT)
		//
		lhs, _ := e.OnIdExpression(nil, "x")
		rhs, _ := e.OnIdExpression(nil, "y")
		//
		if value, err = MakeLogicalAnd(ctx, lhs, rhs); err != nil {
			t.Fatal(err)
		}
		//
		fn, err := e.OnFunctionDeclaration(e.OnDeclarator(nil, "g"), []ast.Decl{x, y}, ctx.BoolType())
		if err != nil {
			t.Fatal(err)
		}
		//
		var tmpl = e.OnTemplateDeclaration(fn)
		//
		if tmpl.Constraint() != check || len(tmpl.Parameters()) != 1 {
			t.Errorf("unexpected template %s", tmpl)
		}
	}()
	//
	if value.Type() != ctx.BoolType() {
		t.Errorf("expected x && y to be admitted with type bool, got %s", value.Type())
	} else if ctx.Constraints() != nil {
		t.Errorf("constraint still active after template")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func declareVariable(t *testing.T, e *Elaborator, qualifier *ast.NamespaceDecl, id string,
	typ ast.Type) *ast.VariableDecl {
	decl, err := e.OnVariableDeclaration(e.OnDeclarator(qualifier, id), typ)
	if err != nil {
		t.Fatal(err)
	}
	//
	return decl
}

func withInitializer(e *Elaborator, decl *ast.VariableDecl, fn func()) {
	var restore = e.EnterInitializer(decl)
	//
	defer restore()
	//
	fn()
}

func check_Bound(t *testing.T, scope *Scope, symbol *ast.Symbol, expected ast.Decl) {
	var set = scope.LookupLocal(symbol)
	//
	if set == nil || set.Single() != expected {
		t.Errorf("expected %s bound to %s in %s", symbol, expected, scope)
	}
}
