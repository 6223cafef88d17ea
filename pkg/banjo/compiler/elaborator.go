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
	"strconv"

	"fortio.org/safecast"
	"github.com/consensys/go-banjo/pkg/banjo/ast"
	log "github.com/sirupsen/logrus"
)

// Elaborator implements the semantic actions invoked by the parser.  It
// maintains the current scope, entering and leaving scopes as the parser
// enters and leaves lexical regions.  Every Enter method returns a function
// which restores the previous state, and which the caller must invoke on
// every exit path (typically using defer).
type Elaborator struct {
	ctx    *Context
	global *Scope
	scope  *Scope
	// Persistent scopes of namespaces, used when reopening a namespace and
	// for qualified names.
	namespaces map[*ast.NamespaceDecl]*Scope
	// Templates being declared, innermost last
	templates []*templateFrame
	// Next index for anonymous declarations
	anonymous uint
	// Undoes bindings made by declarations, most recent last
	journal []func()
}

type templateFrame struct {
	// Scope in which the template is declared
	outer  *Scope
	params []ast.Decl
	// Requires clause (if any)
	constraint ast.Expr
	// Restores the constraints active before the requires clause
	restore func()
	// Indicates a concept, rather than a templated declaration
	concept bool
}

// NewElaborator constructs an elaborator whose current scope is a fresh
// global scope.
func NewElaborator(ctx *Context) *Elaborator {
	var global = NewGlobalScope()
	//
	return &Elaborator{
		ctx:        ctx,
		global:     global,
		scope:      global,
		namespaces: make(map[*ast.NamespaceDecl]*Scope),
	}
}

// Context returns the translation context.
func (p *Elaborator) Context() *Context { return p.ctx }

// Checkpoint marks the bindings made so far.  Bindings made after a checkpoint
// are undone by rolling back to it.
func (p *Elaborator) Checkpoint() uint {
	return uint(len(p.journal))
}

// Rollback unbinds every declaration made since a given checkpoint, most
// recent first.  This is used to forget a declaration whose elaboration
// failed, so that it can be declared again.
func (p *Elaborator) Rollback(mark uint) {
	for i := len(p.journal) - 1; i >= int(mark); i-- {
		p.journal[i]()
	}
	//
	p.journal = p.journal[:mark]
}

// Scope returns the current scope.
func (p *Elaborator) Scope() *Scope { return p.scope }

// Global returns the outermost scope.
func (p *Elaborator) Global() *Scope { return p.global }

// Enter a new scope nested in the current one.
func (p *Elaborator) Enter(kind ScopeKind, decl ast.Decl) func() {
	var outer = p.scope
	//
	p.scope = outer.Enter(kind, decl)
	log.Tracef("entered %s", p.scope)
	//
	return func() {
		log.Tracef("left %s", p.scope)
		p.scope = outer
	}
}

// ============================================================================
// Lookup
// ============================================================================

// Lookup a symbol from the current scope.  The search proceeds outwards
// through the enclosing scopes.  A scope owned by a declaration with a
// qualified name N::x is followed by the scopes of N and its enclosing
// namespaces, before the search continues with the lexically enclosing
// scopes.
func (p *Elaborator) Lookup(symbol *ast.Symbol) *OverloadSet {
	for s := p.scope; s != nil; s = s.parent {
		if set := s.LookupLocal(symbol); set != nil {
			return set
		} else if s.decl == nil {
			continue
		} else if q, ok := s.decl.Name().(*ast.QualifiedId); ok {
			if ns, ok := q.Context().(*ast.NamespaceDecl); ok {
				if set := p.namespaces[ns].Lookup(symbol); set != nil {
					return set
				}
			}
		}
	}
	//
	return nil
}

// Lookup a symbol either from the current scope or, when qualified, amongst
// the members of a namespace.
func (p *Elaborator) lookupIn(qualifier *ast.NamespaceDecl, id string) *OverloadSet {
	var symbol = p.ctx.Symbols().Get(id)
	//
	if qualifier == nil {
		return p.Lookup(symbol)
	}
	//
	return p.namespaces[qualifier].LookupLocal(symbol)
}

func (p *Elaborator) lookupDecl(qualifier *ast.NamespaceDecl, id string) (*OverloadSet, error) {
	if set := p.lookupIn(qualifier, id); set != nil {
		return set, nil
	} else if qualifier != nil {
		return nil, NewTranslationError(qualifier, "no member named %s in namespace %s", id, qualifier.Name())
	}
	//
	return nil, NewTranslationError(nil, "use of undeclared identifier %s", id)
}

// IsConcept determines whether a name refers to a concept.
func (p *Elaborator) IsConcept(qualifier *ast.NamespaceDecl, id string) bool {
	if set := p.lookupIn(qualifier, id); set != nil {
		_, ok := set.Single().(*ast.ConceptDecl)
		return ok
	}
	//
	return false
}

// IsTypeName determines whether a name refers to a type.
func (p *Elaborator) IsTypeName(qualifier *ast.NamespaceDecl, id string) bool {
	if set := p.lookupIn(qualifier, id); set != nil {
		_, ok := set.Single().(*ast.TypeParm)
		return ok
	}
	//
	return false
}

// IsNamespace determines whether a name refers to a namespace.
func (p *Elaborator) IsNamespace(qualifier *ast.NamespaceDecl, id string) bool {
	if set := p.lookupIn(qualifier, id); set != nil {
		_, ok := set.Single().(*ast.NamespaceDecl)
		return ok
	}
	//
	return false
}

// ============================================================================
// Declarators
// ============================================================================

// OnNestedNameSpecifier resolves the N in N::x, which must name a previously
// declared namespace.
func (p *Elaborator) OnNestedNameSpecifier(qualifier *ast.NamespaceDecl, id string) (*ast.NamespaceDecl,
	error) {
	set, err := p.lookupDecl(qualifier, id)
	if err != nil {
		return nil, err
	}
	//
	if ns, ok := set.Single().(*ast.NamespaceDecl); ok {
		return ns, nil
	}
	//
	return nil, NewTranslationError(set.Declarations()[0], "%s is not a namespace", id)
}

// OnDeclarator constructs the name of a declaration.  An empty identifier
// gives a fresh anonymous name.
func (p *Elaborator) OnDeclarator(qualifier *ast.NamespaceDecl, id string) ast.Name {
	var name ast.Name
	//
	if id == "" {
		name = ast.NewPlaceholderId(p.anonymous)
		p.anonymous++
	} else {
		name = ast.NewSimpleId(p.ctx.Symbols().Get(id))
	}
	//
	if qualifier != nil {
		return ast.NewQualifiedId(qualifier, name)
	}
	//
	return name
}

// Determine the scope in which a declaration with a given name is bound.
// Qualified names are bound in their namespace, others in the innermost
// scope which is not a parameter scope.
func (p *Elaborator) targetScope(name ast.Name) *Scope {
	if q, ok := name.(*ast.QualifiedId); ok {
		return p.namespaces[q.Context().(*ast.NamespaceDecl)]
	}
	//
	var s = p.scope
	//
	for s.kind == FUNCTION_PARAMETER_SCOPE || s.kind == TEMPLATE_PARAMETER_SCOPE || s.kind == REQUIRES_SCOPE {
		s = s.parent
	}
	//
	return s
}

// Bind a declaration at its point of declaration, recording it as a member
// of the enclosing namespace.  The pattern of a template is recorded when
// the template itself is complete.
func (p *Elaborator) declare(decl ast.Decl) {
	var (
		name   = decl.Name()
		target = p.targetScope(name)
	)
	//
	target.Bind(name, decl)
	log.Tracef("bound %s in %s", name, target)
	//
	p.journal = append(p.journal, func() {
		log.Tracef("unbound %s in %s", name, target)
		target.Unbind(name, decl)
	})
	//
	if _, ok := name.(*ast.QualifiedId); ok || p.isPattern(target) {
		return
	} else if ns, ok := target.decl.(*ast.NamespaceDecl); ok {
		ns.AddMember(decl)
		p.journal = append(p.journal, func() { ns.RemoveMember(decl) })
	}
}

func (p *Elaborator) isPattern(target *Scope) bool {
	if n := len(p.templates); n > 0 {
		var frame = p.templates[n-1]
		return !frame.concept && frame.outer == target
	}
	//
	return false
}

func (p *Elaborator) checkRedeclaration(name ast.Name) error {
	var symbol = ast.SymbolOf(name)
	//
	if symbol == nil {
		return nil
	} else if set := p.targetScope(name).LookupLocal(symbol); set != nil {
		return NewTranslationError(set.Declarations()[0], "redeclaration of %s", name)
	}
	//
	return nil
}

// ============================================================================
// Variables
// ============================================================================

// OnVariableDeclaration declares a variable.  The variable is visible from
// this point on, including within its own initializer.
func (p *Elaborator) OnVariableDeclaration(name ast.Name, typ ast.Type) (*ast.VariableDecl, error) {
	if _, ok := StripType(typ).(*ast.VoidType); ok {
		return nil, NewTranslationError(typ, "variable %s declared void", name)
	} else if err := p.checkRedeclaration(name); err != nil {
		return nil, err
	}
	//
	var decl = ast.NewVariableDecl(name, typ)
	//
	p.declare(decl)
	//
	return decl, nil
}

// EnterInitializer enters the scope in which the initializer of a variable
// is elaborated.
func (p *Elaborator) EnterInitializer(decl *ast.VariableDecl) func() {
	return p.Enter(INITIALIZER_SCOPE, decl)
}

// OnEqualInitialization initializes a variable with an expression, returning
// the (possibly converted) initializer.
func (p *Elaborator) OnEqualInitialization(decl *ast.VariableDecl, expr ast.Expr) (ast.Expr, error) {
	init, err := p.initialize(decl.Type(), expr)
	if err != nil {
		return nil, err
	}
	//
	decl.SetInitializer(ast.NewEqualInit(init))
	//
	return init, nil
}

// OnDefaultInitialization marks a variable as default initialized.
func (p *Elaborator) OnDefaultInitialization(decl *ast.VariableDecl) error {
	if _, ok := decl.Type().(*ast.ReferenceType); ok {
		return NewTranslationError(decl, "expected initializer for reference %s", decl.Name())
	}
	//
	decl.SetInitializer(&ast.DefaultInit{})
	//
	return nil
}

// Check an expression can initialize an object of a given type.
func (p *Elaborator) initialize(typ ast.Type, expr ast.Expr) (ast.Expr, error) {
	var (
		target = StripType(typ)
		source = StripType(expr.Type())
	)
	//
	switch {
	case ast.EquivalentTypes(target, source) || ast.IsDependentType(target) || ast.IsDependentType(source):
		return expr, nil
	case isBoolean(target):
		return ContextualConversionToBool(p.ctx, expr)
	case isArithmetic(target) && isArithmetic(source):
		return expr, nil
	}
	//
	return nil, NewTranslationError(expr, "cannot initialize %s with %s of type %s", typ, expr, expr.Type())
}

func isBoolean(t ast.Type) bool {
	_, ok := t.(*ast.BooleanType)
	return ok
}

// ============================================================================
// Functions
// ============================================================================

// EnterFunctionParameters enters the scope in which function parameters are
// declared.
func (p *Elaborator) EnterFunctionParameters() func() {
	return p.Enter(FUNCTION_PARAMETER_SCOPE, nil)
}

// OnFunctionParameter declares a function parameter in the current
// parameter scope.
func (p *Elaborator) OnFunctionParameter(name ast.Name, typ ast.Type) (*ast.ObjectParm, error) {
	return p.declareParameter(name, typ, ast.FUNCTION_PARAMETER)
}

func (p *Elaborator) declareParameter(name ast.Name, typ ast.Type, kind ast.ParmKind) (*ast.ObjectParm, error) {
	if _, ok := StripType(typ).(*ast.VoidType); ok {
		return nil, NewTranslationError(typ, "parameter %s declared void", name)
	} else if symbol := ast.SymbolOf(name); symbol != nil && p.scope.LookupLocal(symbol) != nil {
		return nil, NewTranslationError(nil, "redefinition of parameter %s", name)
	}
	//
	var parm = ast.NewObjectParm(name, typ, kind)
	//
	p.scope.Bind(name, parm)
	//
	return parm, nil
}

// OnFunctionDeclaration declares a function with given parameters (already
// declared in the current parameter scope) and return type.  The function
// is visible from this point on, including within its own body.  Functions
// may be overloaded, but a name cannot denote both a function and another
// kind of entity in the same scope.
func (p *Elaborator) OnFunctionDeclaration(name ast.Name, params []ast.Decl, ret ast.Type) (*ast.FunctionDecl,
	error) {
	var types = make([]ast.Type, len(params))
	//
	for i, param := range params {
		types[i] = ast.DeclType(param)
	}
	//
	if symbol := ast.SymbolOf(name); symbol != nil {
		if set := p.targetScope(name).LookupLocal(symbol); set != nil {
			for _, d := range set.Declarations() {
				if _, ok := d.(*ast.FunctionDecl); !ok {
					return nil, NewTranslationError(d, "redeclaration of %s as a different kind of entity", name)
				}
			}
		}
	}
	//
	var fn = ast.NewFunctionDecl(name, p.ctx.Builder().FunctionType(types, ret), params)
	//
	p.declare(fn)
	//
	return fn, nil
}

// EnterFunctionBody enters the outermost block of a function.
func (p *Elaborator) EnterFunctionBody(fn *ast.FunctionDecl) func() {
	return p.Enter(FUNCTION_SCOPE, fn)
}

// OnFunctionDefinition defines a function by its body.
func (p *Elaborator) OnFunctionDefinition(fn *ast.FunctionDecl, body ast.Stmt) error {
	return p.define(fn, ast.NewFunctionDef(body))
}

// OnDeletedDefinition defines a function as deleted.
func (p *Elaborator) OnDeletedDefinition(fn *ast.FunctionDecl) error {
	return p.define(fn, &ast.DeletedDef{})
}

// OnDefaultedDefinition defines a function as defaulted.
func (p *Elaborator) OnDefaultedDefinition(fn *ast.FunctionDecl) error {
	return p.define(fn, &ast.DefaultedDef{})
}

// A function with a given type is defined at most once.
func (p *Elaborator) define(fn *ast.FunctionDecl, def ast.Def) error {
	if symbol := ast.SymbolOf(fn.Name()); symbol != nil {
		if set := p.targetScope(fn.Name()).LookupLocal(symbol); set != nil {
			for _, d := range set.Declarations() {
				if f, ok := d.(*ast.FunctionDecl); ok && f != fn && f.Definition() != nil &&
					ast.EquivalentTypes(f.Type(), fn.Type()) {
					return NewTranslationError(fn, "redefinition of %s", fn.Name())
				}
			}
		}
	}
	//
	fn.SetDefinition(def)
	//
	return nil
}

// ============================================================================
// Statements
// ============================================================================

// EnterBlock enters a nested block.
func (p *Elaborator) EnterBlock() func() {
	return p.Enter(BLOCK_SCOPE, nil)
}

// OnCompoundStatement constructs a block.
func (p *Elaborator) OnCompoundStatement(stmts []ast.Stmt) ast.Stmt {
	return ast.NewCompoundStmt(stmts)
}

// OnReturnStatement constructs a return statement, checking the value
// against the return type of the enclosing function.  The value may be nil.
func (p *Elaborator) OnReturnStatement(expr ast.Expr) (ast.Stmt, error) {
	var fn = p.enclosingFunction()
	//
	if fn == nil {
		return nil, NewTranslationError(expr, "return statement outside of function")
	}
	//
	var (
		ret     = fn.Type().Return()
		_, void = ret.(*ast.VoidType)
	)
	//
	switch {
	case expr == nil && !void:
		return nil, NewTranslationError(fn, "non-void function %s should return a value", fn.Name())
	case expr == nil:
		return ast.NewReturnStmt(nil), nil
	case void:
		return nil, NewTranslationError(expr, "void function %s should not return a value", fn.Name())
	}
	//
	value, err := p.initialize(ret, expr)
	if err != nil {
		return nil, err
	}
	//
	return ast.NewReturnStmt(value), nil
}

// OnExpressionStatement constructs an expression statement.
func (p *Elaborator) OnExpressionStatement(expr ast.Expr) ast.Stmt {
	return ast.NewExpressionStmt(expr)
}

// OnDeclarationStatement constructs a declaration statement.
func (p *Elaborator) OnDeclarationStatement(decl ast.Decl) ast.Stmt {
	return ast.NewDeclarationStmt(decl)
}

func (p *Elaborator) enclosingFunction() *ast.FunctionDecl {
	for s := p.scope; s != nil; s = s.parent {
		if s.kind == FUNCTION_SCOPE {
			return s.decl.(*ast.FunctionDecl)
		}
	}
	//
	return nil
}

// ============================================================================
// Templates
// ============================================================================

// EnterTemplate begins a template declaration, entering the scope of its
// parameters.  The returned function also deactivates the template's
// constraint.
func (p *Elaborator) EnterTemplate() func() {
	var (
		outer = p.scope
		frame = &templateFrame{outer: outer}
		n     = len(p.templates)
	)
	//
	p.templates = append(p.templates, frame)
	p.scope = outer.Enter(TEMPLATE_PARAMETER_SCOPE, nil)
	//
	return func() {
		if frame.restore != nil {
			frame.restore()
		}
		//
		p.templates = p.templates[:n]
		p.scope = outer
	}
}

func (p *Elaborator) template() *templateFrame {
	if n := len(p.templates); n > 0 {
		return p.templates[n-1]
	}
	// Parser must enter a template first
	panic("not within template")
}

// TemplateParameters returns the parameters of the innermost template being
// declared.
func (p *Elaborator) TemplateParameters() []ast.Decl { return p.template().params }

func (p *Elaborator) declareTemplateParameter(parm ast.Decl) error {
	var frame = p.template()
	//
	if symbol := ast.SymbolOf(parm.Name()); symbol != nil && p.scope.LookupLocal(symbol) != nil {
		return NewTranslationError(parm, "redefinition of template parameter %s", parm.Name())
	}
	//
	p.scope.Bind(parm.Name(), parm)
	frame.params = append(frame.params, parm)
	//
	return nil
}

// OnTypeTemplateParameter declares a type parameter with an optional
// default.
func (p *Elaborator) OnTypeTemplateParameter(name ast.Name, def ast.Type) (*ast.TypeParm, error) {
	var parm = ast.NewTypeParm(name, def)
	//
	return parm, p.declareTemplateParameter(parm)
}

// OnValueTemplateParameter declares a value parameter with an optional
// default.
func (p *Elaborator) OnValueTemplateParameter(name ast.Name, typ ast.Type, def ast.Expr) (*ast.ValueParm,
	error) {
	if def != nil {
		var err error
		//
		if def, err = p.initialize(typ, def); err != nil {
			return nil, err
		}
	}
	//
	var parm = ast.NewValueParm(name, typ, def)
	//
	return parm, p.declareTemplateParameter(parm)
}

// OnTemplateTemplateParameter declares a template template parameter.
func (p *Elaborator) OnTemplateTemplateParameter(name ast.Name, params []ast.Decl) (*ast.TemplateParm, error) {
	var parm = ast.NewTemplateParm(name, params)
	//
	return parm, p.declareTemplateParameter(parm)
}

// OnTemplateConstraint attaches a requires clause to the template being
// declared.  The constraint is active for the remainder of the template.
func (p *Elaborator) OnTemplateConstraint(expr ast.Expr) error {
	var frame = p.template()
	//
	if err := checkPredicate(expr); err != nil {
		return err
	}
	//
	var cons = Normalize(p.ctx, expr)
	//
	frame.constraint = expr
	frame.restore = p.ctx.EnterConstraints(cons)
	log.Debugf("constraint %s active", cons)
	//
	return nil
}

// OnTemplateDeclaration completes a template whose pattern has been
// declared.
func (p *Elaborator) OnTemplateDeclaration(pattern ast.Decl) *ast.TemplateDecl {
	var (
		frame = p.template()
		decl  = ast.NewTemplateDecl(frame.params, frame.constraint, pattern)
	)
	//
	if _, ok := pattern.Name().(*ast.QualifiedId); !ok {
		if ns, ok := frame.outer.decl.(*ast.NamespaceDecl); ok {
			ns.AddMember(decl)
			p.journal = append(p.journal, func() { ns.RemoveMember(decl) })
		}
	}
	//
	return decl
}

// A constraint must be a boolean expression, or be dependent.
func checkPredicate(expr ast.Expr) error {
	var t = StripType(expr.Type())
	//
	if isBoolean(t) || ast.IsDependentType(t) {
		return nil
	}
	//
	return NewTranslationError(expr, "constraint %s is not a boolean expression", expr)
}

// ============================================================================
// Concepts
// ============================================================================

// OnConceptDeclaration declares a concept whose parameters are those of the
// enclosing template.  The concept is visible within its own definition.
func (p *Elaborator) OnConceptDeclaration(name ast.Name) (*ast.ConceptDecl, error) {
	if len(p.templates) == 0 {
		return nil, NewTranslationError(nil, "concept %s must be a template", name)
	}
	//
	var frame = p.template()
	//
	if frame.constraint != nil {
		return nil, NewTranslationError(frame.constraint, "concept %s cannot be constrained", name)
	} else if err := p.checkRedeclaration(name); err != nil {
		return nil, err
	}
	//
	var decl = ast.NewConceptDecl(name, frame.params)
	//
	frame.concept = true
	p.declare(decl)
	//
	return decl, nil
}

// OnConceptDefinition attaches the defining expression of a concept.
func (p *Elaborator) OnConceptDefinition(decl *ast.ConceptDecl, expr ast.Expr) error {
	if err := checkPredicate(expr); err != nil {
		return err
	}
	//
	decl.SetDefinition(expr)
	//
	return nil
}

// OnCheck constructs a concept check such as C<int>.  Type parameters must
// be given types, and value parameters expressions.
func (p *Elaborator) OnCheck(qualifier *ast.NamespaceDecl, id string, args []ast.Term) (ast.Expr, error) {
	set, err := p.lookupDecl(qualifier, id)
	if err != nil {
		return nil, err
	}
	//
	concept, ok := set.Single().(*ast.ConceptDecl)
	//
	if !ok {
		return nil, NewTranslationError(set.Declarations()[0], "%s is not a concept", id)
	} else if concept.Definition() == nil {
		return nil, NewTranslationError(concept, "concept %s used in its own definition", id)
	} else if len(args) != len(concept.Parameters()) {
		return nil, NewTranslationError(concept, "concept %s expects %d arguments, given %d", id,
			len(concept.Parameters()), len(args))
	}
	//
	for i, param := range concept.Parameters() {
		switch param.(type) {
		case *ast.TypeParm:
			if _, ok := args[i].(ast.Type); !ok {
				return nil, NewTranslationError(args[i], "argument %s for %s is not a type", args[i], param.Name())
			}
		case *ast.ValueParm:
			if _, ok := args[i].(ast.Expr); !ok {
				return nil, NewTranslationError(args[i], "argument %s for %s is not a value", args[i], param.Name())
			}
		default:
			return nil, NewUnsupportedError("concept argument for %s", param)
		}
	}
	//
	return ast.NewCheck(p.ctx.BoolType(), concept, args), nil
}

// ============================================================================
// Requires expressions
// ============================================================================

// EnterRequires enters the parameter scope of a requires expression.  Until
// the returned function is called, dependent expressions are not checked
// against the active constraints.
func (p *Elaborator) EnterRequires() func() {
	var (
		leave   = p.Enter(REQUIRES_SCOPE, nil)
		restore = p.ctx.EnterRequirements()
	)
	//
	return func() {
		restore()
		leave()
	}
}

// OnRequirementParameter declares a parameter of a requires expression.
func (p *Elaborator) OnRequirementParameter(name ast.Name, typ ast.Type) (*ast.ObjectParm, error) {
	return p.declareParameter(name, typ, ast.REQUIREMENT_PARAMETER)
}

// OnSimpleRequirement constructs the requirement that an expression is
// valid.
func (p *Elaborator) OnSimpleRequirement(expr ast.Expr) ast.Requirement {
	return ast.NewSimpleRequirement(expr)
}

// OnTypedRequirement constructs the requirement that an expression is valid
// with a given type.
func (p *Elaborator) OnTypedRequirement(expr ast.Expr, typ ast.Type) ast.Requirement {
	return ast.NewTypedRequirement(Retype(expr, typ), typ)
}

// OnRequiresExpression constructs a requires expression.
func (p *Elaborator) OnRequiresExpression(params []ast.Decl, reqs []ast.Requirement) ast.Expr {
	return ast.NewRequires(p.ctx.BoolType(), params, reqs)
}

// ============================================================================
// Namespaces
// ============================================================================

// OnNamespaceDeclaration declares a namespace, or reopens an existing one.
func (p *Elaborator) OnNamespaceDeclaration(name ast.Name) (*ast.NamespaceDecl, error) {
	if p.scope.kind != GLOBAL_SCOPE && p.scope.kind != NAMESPACE_SCOPE {
		return nil, NewTranslationError(nil, "namespace %s declared within %s", name, p.scope)
	} else if _, ok := name.(*ast.QualifiedId); ok {
		return nil, NewUnsupportedError("qualified namespace declaration %s", name)
	}
	//
	if symbol := ast.SymbolOf(name); symbol != nil {
		if set := p.scope.LookupLocal(symbol); set != nil {
			if ns, ok := set.Single().(*ast.NamespaceDecl); ok {
				log.Debugf("reopened namespace %s", name)
				return ns, nil
			}
			//
			return nil, NewTranslationError(set.Declarations()[0], "redeclaration of %s as a namespace", name)
		}
	}
	//
	var ns = ast.NewNamespaceDecl(name)
	//
	p.declare(ns)
	p.namespaces[ns] = p.scope.Enter(NAMESPACE_SCOPE, ns)
	p.journal = append(p.journal, func() { delete(p.namespaces, ns) })
	//
	return ns, nil
}

// EnterNamespace makes the (persistent) scope of a namespace current.
func (p *Elaborator) EnterNamespace(ns *ast.NamespaceDecl) func() {
	var outer = p.scope
	//
	p.scope = p.namespaces[ns]
	log.Tracef("entered %s", p.scope)
	//
	return func() { p.scope = outer }
}

// ============================================================================
// Expressions
// ============================================================================

// OnIdExpression constructs a reference to a named object.
func (p *Elaborator) OnIdExpression(qualifier *ast.NamespaceDecl, id string) (ast.Expr, error) {
	set, err := p.lookupDecl(qualifier, id)
	if err != nil {
		return nil, err
	} else if set.Size() > 1 {
		return nil, NewTranslationError(set.Declarations()[0], "reference to overloaded function %s is ambiguous", id)
	}
	//
	var decl = set.Single()
	//
	switch decl.(type) {
	case *ast.VariableDecl, *ast.ObjectParm, *ast.ValueParm, *ast.FunctionDecl:
		return ast.NewReference(ast.DeclType(decl), decl), nil
	default:
		return nil, NewTranslationError(decl, "%s does not name a value", id)
	}
}

// OnCall constructs a call to the best of the functions with a given name.
func (p *Elaborator) OnCall(qualifier *ast.NamespaceDecl, id string, args []ast.Expr) (ast.Expr, error) {
	set, err := p.lookupDecl(qualifier, id)
	if err != nil {
		return nil, err
	}
	//
	var types = make([]ast.Type, len(args))
	//
	for i, arg := range args {
		types[i] = arg.Type()
	}
	//
	decl, err := Resolve(set.Declarations(), types)
	if err != nil {
		return nil, err
	}
	//
	var fn = decl.(*ast.FunctionDecl)
	//
	return ast.NewCall(fn.Type().Return(), fn, args), nil
}

// OnIntegerLiteral constructs an integer literal, which must fit in int.
func (p *Elaborator) OnIntegerLiteral(text string) (ast.Expr, error) {
	var typ = p.ctx.IntType()
	//
	value, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		err = narrow(value, typ.Precision())
	}
	//
	if IsUnsupported(err) {
		return nil, err
	} else if err != nil {
		return nil, NewTranslationError(nil, "integer literal %s out of range for %s", text, typ)
	}
	//
	return ast.NewIntegerLiteral(typ, value), nil
}

func narrow(value int64, precision uint) error {
	var err error
	//
	switch precision {
	case 8:
		_, err = safecast.Conv[int8](value)
	case 16:
		_, err = safecast.Conv[int16](value)
	case 32:
		_, err = safecast.Conv[int32](value)
	case 64:
		return nil
	default:
		return NewUnsupportedError("integer precision %d", precision)
	}
	//
	return err
}

// OnBooleanLiteral constructs true or false.
func (p *Elaborator) OnBooleanLiteral(value bool) ast.Expr {
	return ast.NewBooleanLiteral(p.ctx.BoolType(), value)
}

// OnTypeName resolves a name used as a type.
func (p *Elaborator) OnTypeName(qualifier *ast.NamespaceDecl, id string) (ast.Type, error) {
	set, err := p.lookupDecl(qualifier, id)
	if err != nil {
		return nil, err
	}
	//
	if parm, ok := set.Single().(*ast.TypeParm); ok {
		return p.ctx.Builder().TypenameType(parm), nil
	}
	//
	return nil, NewTranslationError(set.Declarations()[0], "%s does not name a type", id)
}
