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
	"strings"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
)

// Config determines how a translation is performed.
type Config struct {
	// Memoize concept expansions.  Expansion is a pure function of the
	// concept and its arguments, so this only affects performance.
	Memoize bool
	// Recover from an ill-formed declaration by skipping to the next one,
	// rather than abandoning the whole declaration sequence.
	Recover bool
	// IntegerPrecision is the number of bits of int.
	IntegerPrecision uint
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Memoize: true, Recover: true, IntegerPrecision: 32}
}

// Context carries the state of a single translation.  It is not safe to
// share one context between concurrent translations.
type Context struct {
	config  Config
	symbols *ast.SymbolTable
	builder *Builder
	// Stack of active constraints, innermost last
	constraints []ast.Cons
	// Depth of nested constraint elaboration
	requirements uint
	// Next placeholder identifier
	placeholders uint
	// Memoised expansions
	expansions map[expansionKey]ast.Cons
	// Errors reported during translation
	diagnostics []error
}

type expansionKey struct {
	concept ast.Decl
	args    string
}

// NewContext constructs a fresh translation context.
func NewContext(config Config) *Context {
	return &Context{
		config:     config,
		symbols:    ast.NewSymbolTable(),
		builder:    NewBuilder(),
		expansions: make(map[expansionKey]ast.Cons),
	}
}

// Config returns the configuration of this translation.
func (p *Context) Config() Config { return p.config }

// Symbols returns the symbol table of this translation.
func (p *Context) Symbols() *ast.SymbolTable { return p.symbols }

// Builder returns the builder used to construct (interned) types.
func (p *Context) Builder() *Builder { return p.builder }

// IntType returns the type of int, whose precision is configurable.
func (p *Context) IntType() *ast.IntegerType {
	return p.builder.IntegerType(true, p.config.IntegerPrecision)
}

// BoolType returns the type of bool.
func (p *Context) BoolType() *ast.BooleanType { return p.builder.BooleanType() }

// MakePlaceholder returns a placeholder type distinct from every other
// placeholder in this translation.
func (p *Context) MakePlaceholder() *ast.AutoType {
	p.placeholders++
	return ast.NewAutoType(p.placeholders)
}

// Constraints returns the innermost active constraint, or nil when
// elaborating outside of a constrained template.
func (p *Context) Constraints() ast.Cons {
	if n := len(p.constraints); n > 0 {
		return p.constraints[n-1]
	}
	//
	return nil
}

// EnterConstraints makes a constraint active, returning a function which
// restores the previous one.
func (p *Context) EnterConstraints(cons ast.Cons) func() {
	var n = len(p.constraints)
	//
	p.constraints = append(p.constraints, cons)
	//
	return func() { p.constraints = p.constraints[:n] }
}

// InRequirements indicates whether a constraint is being elaborated, in
// which case dependent expressions are not checked against the active
// constraints.
func (p *Context) InRequirements() bool { return p.requirements > 0 }

// EnterRequirements marks the start of constraint elaboration, returning a
// function which marks its end.
func (p *Context) EnterRequirements() func() {
	p.requirements++
	//
	return func() { p.requirements-- }
}

// Report records an error against this translation.
func (p *Context) Report(err error) { p.diagnostics = append(p.diagnostics, err) }

// Diagnostics returns the errors reported so far.
func (p *Context) Diagnostics() []error { return p.diagnostics }

func (p *Context) lookupExpansion(concept ast.Decl, args []ast.Term) (ast.Cons, bool) {
	if !p.config.Memoize {
		return nil, false
	}
	//
	cons, ok := p.expansions[expansionKey{concept, argumentsKey(args)}]
	//
	return cons, ok
}

func (p *Context) recordExpansion(concept ast.Decl, args []ast.Term, cons ast.Cons) {
	if p.config.Memoize {
		p.expansions[expansionKey{concept, argumentsKey(args)}] = cons
	}
}

// Types are interned, so their identity is canonical.  Expressions are
// identified by their printed form together with their identity.
func argumentsKey(args []ast.Term) string {
	var builder strings.Builder
	//
	for _, arg := range args {
		builder.WriteString(fmt.Sprintf("%s@%p;", arg, arg))
	}
	//
	return builder.String()
}
