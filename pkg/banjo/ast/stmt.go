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

// Init is the initializer of a variable.
type Init interface {
	Term
	isInit()
}

// EqualInit initializes a variable with the value of an expression.
type EqualInit struct {
	expr Expr
}

// DefaultInit marks a variable initialized by its type's default.
type DefaultInit struct{}

// NewEqualInit constructs an equal initializer.
func NewEqualInit(expr Expr) *EqualInit { return &EqualInit{expr} }

// Expr returns the initializing expression.
func (p *EqualInit) Expr() Expr { return p.expr }

func (p *EqualInit) String() string { return fmt.Sprintf("= %s", p.expr) }
func (*DefaultInit) String() string { return "default" }

func (*EqualInit) isTerm()   {}
func (*DefaultInit) isTerm() {}
func (*EqualInit) isInit()   {}
func (*DefaultInit) isInit() {}

// Def is the definition of a function.
type Def interface {
	Term
	isDef()
}

// FunctionDef defines a function by its body.
type FunctionDef struct {
	body Stmt
}

// DeletedDef defines a function as deleted.
type DeletedDef struct{}

// DefaultedDef defines a function as defaulted.
type DefaultedDef struct{}

// NewFunctionDef constructs a function definition.
func NewFunctionDef(body Stmt) *FunctionDef { return &FunctionDef{body} }

// Body returns the function body.
func (p *FunctionDef) Body() Stmt { return p.body }

func (p *FunctionDef) String() string { return p.body.String() }
func (*DeletedDef) String() string    { return "= delete" }
func (*DefaultedDef) String() string  { return "= default" }

func (*FunctionDef) isTerm()  {}
func (*DeletedDef) isTerm()   {}
func (*DefaultedDef) isTerm() {}
func (*FunctionDef) isDef()   {}
func (*DeletedDef) isDef()    {}
func (*DefaultedDef) isDef()  {}

// Stmt is the closed family of statements.
type Stmt interface {
	Term
	isStmt()
}

// CompoundStmt is a braced sequence of statements.
type CompoundStmt struct {
	stmts []Stmt
}

// ReturnStmt returns from a function, with an optional value.
type ReturnStmt struct {
	expr Expr
}

// ExpressionStmt evaluates an expression.
type ExpressionStmt struct {
	expr Expr
}

// DeclarationStmt introduces a local declaration.
type DeclarationStmt struct {
	decl Decl
}

// NewCompoundStmt constructs a compound statement.
func NewCompoundStmt(stmts []Stmt) *CompoundStmt { return &CompoundStmt{stmts} }

// NewReturnStmt constructs a return statement.  The expression may be nil.
func NewReturnStmt(expr Expr) *ReturnStmt { return &ReturnStmt{expr} }

// NewExpressionStmt constructs an expression statement.
func NewExpressionStmt(expr Expr) *ExpressionStmt { return &ExpressionStmt{expr} }

// NewDeclarationStmt constructs a declaration statement.
func NewDeclarationStmt(decl Decl) *DeclarationStmt { return &DeclarationStmt{decl} }

// Statements returns the enclosed statements.
func (p *CompoundStmt) Statements() []Stmt { return p.stmts }

// Expr returns the returned value, or nil.
func (p *ReturnStmt) Expr() Expr { return p.expr }

// Expr returns the evaluated expression.
func (p *ExpressionStmt) Expr() Expr { return p.expr }

// Declaration returns the declared entity.
func (p *DeclarationStmt) Declaration() Decl { return p.decl }

func (p *CompoundStmt) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for _, s := range p.stmts {
		builder.WriteString(" ")
		builder.WriteString(s.String())
	}
	//
	builder.WriteString(" }")
	//
	return builder.String()
}

func (p *ReturnStmt) String() string {
	if p.expr == nil {
		return "return;"
	}
	//
	return fmt.Sprintf("return %s;", p.expr)
}

func (p *ExpressionStmt) String() string  { return fmt.Sprintf("%s;", p.expr) }
func (p *DeclarationStmt) String() string { return p.decl.String() }

func (*CompoundStmt) isTerm()    {}
func (*ReturnStmt) isTerm()      {}
func (*ExpressionStmt) isTerm()  {}
func (*DeclarationStmt) isTerm() {}

func (*CompoundStmt) isStmt()    {}
func (*ReturnStmt) isStmt()      {}
func (*ExpressionStmt) isStmt()  {}
func (*DeclarationStmt) isStmt() {}
