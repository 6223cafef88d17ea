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

// Term is implemented by every node of the term model: names, types,
// expressions, declarations, statements and constraints.  Terms are immutable
// once built (declarations excepted, see Decl) and are compared either by
// identity or by the equivalence functions in this package.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Symbol is an interned identifier.  Two symbols with the same spelling
// obtained from the same table are the same pointer, hence symbols are
// compared by identity.
type Symbol struct {
	name string
}

func (p *Symbol) String() string {
	return p.name
}

// SymbolTable interns identifier spellings.
type SymbolTable struct {
	symbols map[string]*Symbol
}

// NewSymbolTable constructs an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{make(map[string]*Symbol)}
}

// Get returns the unique symbol for a given spelling.
func (p *SymbolTable) Get(name string) *Symbol {
	if s, ok := p.symbols[name]; ok {
		return s
	}
	//
	s := &Symbol{name}
	p.symbols[name] = s
	//
	return s
}

// Lookup returns the symbol for a given spelling, or nil if it was never
// interned.
func (p *SymbolTable) Lookup(name string) *Symbol {
	return p.symbols[name]
}
