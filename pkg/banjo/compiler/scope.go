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
	"slices"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
)

// ScopeKind identifies the lexical region a scope corresponds to.
type ScopeKind uint8

const (
	// GLOBAL_SCOPE is the outermost scope of a translation.
	GLOBAL_SCOPE ScopeKind = iota
	// NAMESPACE_SCOPE holds the members of a namespace.
	NAMESPACE_SCOPE
	// FUNCTION_PARAMETER_SCOPE holds the parameters of a function.
	FUNCTION_PARAMETER_SCOPE
	// FUNCTION_SCOPE is the outermost block of a function body.
	FUNCTION_SCOPE
	// TEMPLATE_PARAMETER_SCOPE holds the parameters of a template.
	TEMPLATE_PARAMETER_SCOPE
	// INITIALIZER_SCOPE is entered to elaborate the initializer of a
	// variable.
	INITIALIZER_SCOPE
	// BLOCK_SCOPE is a nested block within a function body.
	BLOCK_SCOPE
	// REQUIRES_SCOPE holds the parameters of a requires expression.
	REQUIRES_SCOPE
)

func (k ScopeKind) String() string {
	switch k {
	case GLOBAL_SCOPE:
		return "global"
	case NAMESPACE_SCOPE:
		return "namespace"
	case FUNCTION_PARAMETER_SCOPE:
		return "function parameter"
	case FUNCTION_SCOPE:
		return "function"
	case TEMPLATE_PARAMETER_SCOPE:
		return "template parameter"
	case INITIALIZER_SCOPE:
		return "initializer"
	case BLOCK_SCOPE:
		return "block"
	case REQUIRES_SCOPE:
		return "requires"
	}
	//
	panic("unreachable")
}

// OverloadSet is a non-empty sequence of declarations sharing a name, in
// the order they were declared.
type OverloadSet struct {
	decls []ast.Decl
}

// Declarations returns the declarations in this overload set.
func (p *OverloadSet) Declarations() []ast.Decl { return p.decls }

// Size returns the number of declarations in this overload set.
func (p *OverloadSet) Size() uint { return uint(len(p.decls)) }

// Single returns the only declaration in this set, or nil if the name is
// overloaded.
func (p *OverloadSet) Single() ast.Decl {
	if len(p.decls) == 1 {
		return p.decls[0]
	}
	//
	return nil
}

// Scope is a lexical region in which names are bound.  Scopes form a tree
// through their parent links, and lookup proceeds outwards from the
// innermost scope.
type Scope struct {
	kind   ScopeKind
	parent *Scope
	// Declaration owning this scope (if any)
	decl ast.Decl
	// Overload sets bound in this scope
	bindings map[*ast.Symbol]*OverloadSet
	// Symbols in order of first binding (for determinism)
	order []*ast.Symbol
}

// NewGlobalScope constructs an empty outermost scope.
func NewGlobalScope() *Scope {
	return &Scope{GLOBAL_SCOPE, nil, nil, make(map[*ast.Symbol]*OverloadSet), nil}
}

// Enter constructs a new scope nested within this one, optionally owned by a
// declaration.
func (p *Scope) Enter(kind ScopeKind, decl ast.Decl) *Scope {
	return &Scope{kind, p, decl, make(map[*ast.Symbol]*OverloadSet), nil}
}

// Kind returns the kind of this scope.
func (p *Scope) Kind() ScopeKind { return p.kind }

// Parent returns the enclosing scope, or nil for the global scope.
func (p *Scope) Parent() *Scope { return p.parent }

// Declaration returns the declaration owning this scope, or nil.
func (p *Scope) Declaration() ast.Decl { return p.decl }

// Symbols returns the symbols bound in this scope in order of binding.
func (p *Scope) Symbols() []*ast.Symbol { return p.order }

// Bind a declaration to a name in this scope.  Existing bindings are never
// replaced: the declaration joins the overload set for its name.  Anonymous
// declarations are not bound.
func (p *Scope) Bind(name ast.Name, decl ast.Decl) {
	var symbol = ast.SymbolOf(name)
	//
	if symbol == nil {
		return
	} else if set, ok := p.bindings[symbol]; ok {
		set.decls = append(set.decls, decl)
		return
	}
	//
	p.bindings[symbol] = &OverloadSet{[]ast.Decl{decl}}
	p.order = append(p.order, symbol)
}

// Unbind removes a declaration previously bound to a name in this scope.  A
// name left with no declarations is unbound entirely.
func (p *Scope) Unbind(name ast.Name, decl ast.Decl) {
	var (
		symbol = ast.SymbolOf(name)
		set    = p.bindings[symbol]
	)
	//
	if set == nil {
		return
	}
	//
	set.decls = slices.DeleteFunc(set.decls, func(d ast.Decl) bool { return d == decl })
	//
	if len(set.decls) == 0 {
		delete(p.bindings, symbol)
		p.order = slices.DeleteFunc(p.order, func(s *ast.Symbol) bool { return s == symbol })
	}
}

// LookupLocal returns the overload set bound to a symbol in this scope
// only, or nil.
func (p *Scope) LookupLocal(symbol *ast.Symbol) *OverloadSet {
	return p.bindings[symbol]
}

// Lookup returns the innermost overload set bound to a symbol, searching
// this scope and then its enclosing scopes.  Sets from different scopes are
// never merged.
func (p *Scope) Lookup(symbol *ast.Symbol) *OverloadSet {
	for s := p; s != nil; s = s.parent {
		if set := s.LookupLocal(symbol); set != nil {
			return set
		}
	}
	//
	return nil
}

func (p *Scope) String() string {
	if p.decl != nil {
		return fmt.Sprintf("%s scope of %s", p.kind, p.decl.Name())
	}
	//
	return fmt.Sprintf("%s scope", p.kind)
}
