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
	"slices"
	"strings"
)

// Decl is the closed family of declarations.  A declaration is identified
// by its address: substitution never changes a declaration in place but
// builds a new one with the same name.
type Decl interface {
	Term
	// Name returns the declared name.
	Name() Name
	isDecl()
}

// ParmKind distinguishes the two uses of an object parameter.
type ParmKind uint8

const (
	// FUNCTION_PARAMETER is a parameter of a function.
	FUNCTION_PARAMETER ParmKind = iota
	// REQUIREMENT_PARAMETER is a parameter of a requires expression.  It
	// stands for any expression of its type.
	REQUIREMENT_PARAMETER
)

// VariableDecl declares a variable.  The initializer is attached after the
// declaration has been bound, so that it can refer to the variable itself.
type VariableDecl struct {
	name Name
	typ  Type
	init Init
}

// FunctionDecl declares a function.
type FunctionDecl struct {
	name   Name
	typ    *FunctionType
	params []Decl
	def    Def
}

// NamespaceDecl declares a namespace.  A namespace may be reopened, in which
// case further members are added to the same declaration.
type NamespaceDecl struct {
	name    Name
	members []Decl
}

// TypeParm is a type template parameter, with an optional default.
type TypeParm struct {
	name Name
	def  Type
}

// ValueParm is a non-type template parameter, with an optional default.
type ValueParm struct {
	name Name
	typ  Type
	def  Expr
}

// TemplateParm is a template template parameter.
type TemplateParm struct {
	name   Name
	params []Decl
}

// ObjectParm is a function parameter or requirement parameter.
type ObjectParm struct {
	name Name
	typ  Type
	kind ParmKind
}

// ConceptDecl declares a concept: a named predicate over its parameters.
type ConceptDecl struct {
	name   Name
	params []Decl
	def    Expr
}

// TemplateDecl parameterises a declaration (the pattern), optionally
// constrained by a requires clause.
type TemplateDecl struct {
	params     []Decl
	constraint Expr
	pattern    Decl
}

// NewVariableDecl constructs a variable declaration without initializer.
func NewVariableDecl(name Name, typ Type) *VariableDecl {
	return &VariableDecl{name, typ, nil}
}

// NewFunctionDecl constructs a function declaration without definition.
func NewFunctionDecl(name Name, typ *FunctionType, params []Decl) *FunctionDecl {
	return &FunctionDecl{name, typ, params, nil}
}

// NewNamespaceDecl constructs an empty namespace.
func NewNamespaceDecl(name Name) *NamespaceDecl {
	return &NamespaceDecl{name, nil}
}

// NewTypeParm constructs a type parameter.  The default may be nil.
func NewTypeParm(name Name, def Type) *TypeParm { return &TypeParm{name, def} }

// NewValueParm constructs a value parameter.  The default may be nil.
func NewValueParm(name Name, typ Type, def Expr) *ValueParm {
	return &ValueParm{name, typ, def}
}

// NewTemplateParm constructs a template template parameter.
func NewTemplateParm(name Name, params []Decl) *TemplateParm {
	return &TemplateParm{name, params}
}

// NewObjectParm constructs an object parameter of a given kind.
func NewObjectParm(name Name, typ Type, kind ParmKind) *ObjectParm {
	return &ObjectParm{name, typ, kind}
}

// NewConceptDecl constructs a concept whose definition is not yet known.
func NewConceptDecl(name Name, params []Decl) *ConceptDecl {
	return &ConceptDecl{name, params, nil}
}

// NewTemplateDecl constructs a template.  The constraint may be nil.
func NewTemplateDecl(params []Decl, constraint Expr, pattern Decl) *TemplateDecl {
	return &TemplateDecl{params, constraint, pattern}
}

func (p *VariableDecl) Name() Name { return p.name }
func (p *FunctionDecl) Name() Name { return p.name }
func (p *NamespaceDecl) Name() Name { return p.name }
func (p *TypeParm) Name() Name     { return p.name }
func (p *ValueParm) Name() Name    { return p.name }
func (p *TemplateParm) Name() Name { return p.name }
func (p *ObjectParm) Name() Name   { return p.name }
func (p *ConceptDecl) Name() Name  { return p.name }

// Name returns the name of the templated declaration.
func (p *TemplateDecl) Name() Name { return p.pattern.Name() }

// Type returns the declared type of this variable.
func (p *VariableDecl) Type() Type { return p.typ }

// Initializer returns the initializer, or nil if none has been attached.
func (p *VariableDecl) Initializer() Init { return p.init }

// SetInitializer attaches the initializer of this variable.  A variable is
// initialized at most once.
func (p *VariableDecl) SetInitializer(init Init) {
	if p.init != nil {
		panic(fmt.Sprintf("variable %s already initialized", p.name))
	}
	//
	p.init = init
}

// Type returns the function type.
func (p *FunctionDecl) Type() *FunctionType { return p.typ }

// Parameters returns the function parameters.
func (p *FunctionDecl) Parameters() []Decl { return p.params }

// Definition returns the definition, or nil for a declaration only.
func (p *FunctionDecl) Definition() Def { return p.def }

// SetDefinition attaches the definition of this function.
func (p *FunctionDecl) SetDefinition(def Def) {
	if p.def != nil {
		panic(fmt.Sprintf("function %s already defined", p.name))
	}
	//
	p.def = def
}

// Members returns the declarations made in this namespace.
func (p *NamespaceDecl) Members() []Decl { return p.members }

// AddMember records a declaration made in this namespace.
func (p *NamespaceDecl) AddMember(decl Decl) { p.members = append(p.members, decl) }

// RemoveMember forgets a declaration previously recorded in this namespace.
func (p *NamespaceDecl) RemoveMember(decl Decl) {
	p.members = slices.DeleteFunc(p.members, func(d Decl) bool { return d == decl })
}

// Default returns the default argument, or nil.
func (p *TypeParm) Default() Type { return p.def }

// Type returns the type of this parameter.
func (p *ValueParm) Type() Type { return p.typ }

// Default returns the default argument, or nil.
func (p *ValueParm) Default() Expr { return p.def }

// Parameters returns the parameters of the template template parameter.
func (p *TemplateParm) Parameters() []Decl { return p.params }

// Type returns the type of this parameter.
func (p *ObjectParm) Type() Type { return p.typ }

// Kind returns whether this is a function or requirement parameter.
func (p *ObjectParm) Kind() ParmKind { return p.kind }

// Parameters returns the concept parameters.
func (p *ConceptDecl) Parameters() []Decl { return p.params }

// Definition returns the defining expression, or nil if not yet defined.
func (p *ConceptDecl) Definition() Expr { return p.def }

// SetDefinition attaches the defining expression of this concept.
func (p *ConceptDecl) SetDefinition(def Expr) {
	if p.def != nil {
		panic(fmt.Sprintf("concept %s already defined", p.name))
	}
	//
	p.def = def
}

// Parameters returns the template parameters.
func (p *TemplateDecl) Parameters() []Decl { return p.params }

// Constraint returns the requires clause, or nil.
func (p *TemplateDecl) Constraint() Expr { return p.constraint }

// Pattern returns the templated declaration.
func (p *TemplateDecl) Pattern() Decl { return p.pattern }

// DeclType returns the type of an object declaration, or nil for
// declarations (namespaces, concepts, templates and type parameters) which
// do not denote objects.
func DeclType(decl Decl) Type {
	switch d := decl.(type) {
	case *VariableDecl:
		return d.typ
	case *FunctionDecl:
		return d.typ
	case *ValueParm:
		return d.typ
	case *ObjectParm:
		return d.typ
	default:
		return nil
	}
}

func (p *VariableDecl) String() string {
	var str = fmt.Sprintf("var %s %s", p.typ, p.name)
	//
	if e, ok := p.init.(*EqualInit); ok {
		str = fmt.Sprintf("%s = %s", str, e.expr)
	}
	//
	return str + ";"
}

func (p *FunctionDecl) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("def %s %s(%s)", p.typ.ret, p.name, joinDecls(p.params)))
	//
	switch d := p.def.(type) {
	case nil:
		builder.WriteString(";")
	case *FunctionDef:
		builder.WriteString(" ")
		builder.WriteString(d.body.String())
	case *DeletedDef:
		builder.WriteString(" = delete;")
	case *DefaultedDef:
		builder.WriteString(" = default;")
	}
	//
	return builder.String()
}

func (p *NamespaceDecl) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("namespace %s {", p.name))
	//
	for _, m := range p.members {
		builder.WriteString(" ")
		builder.WriteString(m.String())
	}
	//
	builder.WriteString(" }")
	//
	return builder.String()
}

func (p *TypeParm) String() string {
	if p.def != nil {
		return fmt.Sprintf("typename %s = %s", p.name, p.def)
	}
	//
	return fmt.Sprintf("typename %s", p.name)
}

func (p *ValueParm) String() string {
	if p.def != nil {
		return fmt.Sprintf("%s %s = %s", p.typ, p.name, p.def)
	}
	//
	return fmt.Sprintf("%s %s", p.typ, p.name)
}

func (p *TemplateParm) String() string {
	return fmt.Sprintf("template<%s> typename %s", joinDecls(p.params), p.name)
}

func (p *ObjectParm) String() string { return fmt.Sprintf("%s %s", p.typ, p.name) }

func (p *ConceptDecl) String() string {
	var def = "?"
	//
	if p.def != nil {
		def = p.def.String()
	}
	//
	return fmt.Sprintf("template<%s> concept %s = %s;", joinDecls(p.params), p.name, def)
}

func (p *TemplateDecl) String() string {
	if p.constraint != nil {
		return fmt.Sprintf("template<%s> requires %s %s", joinDecls(p.params), p.constraint, p.pattern)
	}
	//
	return fmt.Sprintf("template<%s> %s", joinDecls(p.params), p.pattern)
}

func joinDecls(decls []Decl) string {
	var strs = make([]string, len(decls))
	//
	for i, d := range decls {
		strs[i] = d.String()
	}
	//
	return strings.Join(strs, ", ")
}

func (*VariableDecl) isTerm()  {}
func (*FunctionDecl) isTerm()  {}
func (*NamespaceDecl) isTerm() {}
func (*TypeParm) isTerm()      {}
func (*ValueParm) isTerm()     {}
func (*TemplateParm) isTerm()  {}
func (*ObjectParm) isTerm()    {}
func (*ConceptDecl) isTerm()   {}
func (*TemplateDecl) isTerm()  {}

func (*VariableDecl) isDecl()  {}
func (*FunctionDecl) isDecl()  {}
func (*NamespaceDecl) isDecl() {}
func (*TypeParm) isDecl()      {}
func (*ValueParm) isDecl()     {}
func (*TemplateParm) isDecl()  {}
func (*ObjectParm) isDecl()    {}
func (*ConceptDecl) isDecl()   {}
func (*TemplateDecl) isDecl()  {}
