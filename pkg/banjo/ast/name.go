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

// Name is the (possibly qualified) name given to a declaration.
type Name interface {
	Term
	isName()
}

// SimpleId is an unqualified identifier, such as "x".
type SimpleId struct {
	symbol *Symbol
}

// PlaceholderId names an entity declared without a name (e.g. an unnamed
// parameter).  Placeholders are numbered and are never entered into scope.
type PlaceholderId struct {
	index uint
}

// QualifiedId is a name qualified by the namespace it belongs to, such as
// "N::x".
type QualifiedId struct {
	context Decl
	name    Name
}

// NewSimpleId constructs a simple identifier.
func NewSimpleId(symbol *Symbol) *SimpleId {
	return &SimpleId{symbol}
}

// NewPlaceholderId constructs a numbered placeholder name.
func NewPlaceholderId(index uint) *PlaceholderId {
	return &PlaceholderId{index}
}

// NewQualifiedId constructs a name qualified by some enclosing declaration.
func NewQualifiedId(context Decl, name Name) *QualifiedId {
	return &QualifiedId{context, name}
}

// Symbol returns the symbol of this identifier.
func (p *SimpleId) Symbol() *Symbol { return p.symbol }

// Index returns the number of this placeholder.
func (p *PlaceholderId) Index() uint { return p.index }

// Context returns the qualifying declaration.
func (p *QualifiedId) Context() Decl { return p.context }

// Name returns the name being qualified.
func (p *QualifiedId) Name() Name { return p.name }

func (p *SimpleId) String() string      { return p.symbol.String() }
func (p *PlaceholderId) String() string { return fmt.Sprintf("_%d", p.index) }
func (p *QualifiedId) String() string   { return fmt.Sprintf("%s::%s", p.context.Name(), p.name) }

func (*SimpleId) isTerm()      {}
func (*PlaceholderId) isTerm() {}
func (*QualifiedId) isTerm()   {}

func (*SimpleId) isName()      {}
func (*PlaceholderId) isName() {}
func (*QualifiedId) isName()   {}

// Unqualified strips any qualification from a name.
func Unqualified(name Name) Name {
	for {
		q, ok := name.(*QualifiedId)
		if !ok {
			return name
		}
		//
		name = q.name
	}
}

// SymbolOf returns the symbol under which a name is bound in scope, or nil for
// a placeholder.
func SymbolOf(name Name) *Symbol {
	if id, ok := Unqualified(name).(*SimpleId); ok {
		return id.symbol
	}
	//
	return nil
}

// EquivalentNames checks whether two names spell the same (possibly
// qualified) identifier.
func EquivalentNames(lhs Name, rhs Name) bool {
	switch l := lhs.(type) {
	case *SimpleId:
		r, ok := rhs.(*SimpleId)
		return ok && l.symbol == r.symbol
	case *PlaceholderId:
		r, ok := rhs.(*PlaceholderId)
		return ok && l.index == r.index
	case *QualifiedId:
		r, ok := rhs.(*QualifiedId)
		return ok && l.context == r.context && EquivalentNames(l.name, r.name)
	default:
		panic(fmt.Sprintf("unknown name %T", lhs))
	}
}
