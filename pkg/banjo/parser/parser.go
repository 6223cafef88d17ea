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
package parser

import (
	"fmt"
	"slices"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
	"github.com/consensys/go-banjo/pkg/banjo/compiler"
	"github.com/consensys/go-banjo/pkg/util/source"
	"github.com/consensys/go-banjo/pkg/util/source/lex"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SourceUnit captures the declarations elaborated from a single source file.
type SourceUnit struct {
	// Declarations made at the outermost level of the file.  A namespace
	// which is reopened appears once.
	Declarations []ast.Decl
	// Mapping of declarations back to the source file.
	SourceMap *source.Map[ast.Decl]
}

// Parse a given source file, elaborating each declaration as it is
// recognised.  Declarations accumulate in the elaborator's global scope, so
// that later files can refer to earlier ones.
func Parse(srcfile *source.File, elaborator *compiler.Elaborator) (SourceUnit, []source.SyntaxError) {
	return NewParser(srcfile, elaborator).Parse()
}

// ParseType parses (and elaborates) a source file consisting of exactly one
// type, resolving names from the elaborator's current scope.
func ParseType(srcfile *source.File, elaborator *compiler.Elaborator) (ast.Type, []source.SyntaxError) {
	var (
		p    = NewParser(srcfile, elaborator)
		errs []source.SyntaxError
	)
	//
	if p.tokens, errs = Lex(*srcfile); len(errs) > 0 {
		return nil, errs
	}
	//
	typ, err := p.parseType()
	if err == nil {
		_, err = p.expect(END_OF)
	}
	//
	if err != nil {
		return nil, []source.SyntaxError{*p.toSyntaxError(0, err)}
	}
	//
	return typ, nil
}

var comparators = map[uint]ast.Comparator{
	EQUALS_EQUALS:       ast.EQ,
	NOT_EQUALS:          ast.NE,
	LESS_THAN:           ast.LT,
	GREATER_THAN:        ast.GT,
	LESS_THAN_EQUALS:    ast.LE,
	GREATER_THAN_EQUALS: ast.GE,
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive-descent parser which drives an elaborator.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Semantic actions
	elaborator *compiler.Elaborator
	ctx        *compiler.Context
	// Source mapping
	srcmap *source.Map[ast.Decl]
	// Position within the tokens
	index int
	// Errors recovered from
	errors []source.SyntaxError
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File, elaborator *compiler.Elaborator) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[ast.Decl](*srcfile)
	//
	return &Parser{srcfile, nil, elaborator, elaborator.Context(), srcmap, 0, nil}
}

// Parse the given source file into a sequence of zero or more declarations
// and/or some number of syntax errors.  When recovery is enabled, a failed
// declaration is skipped and parsing continues with the next.
func (p *Parser) Parse() (SourceUnit, []source.SyntaxError) {
	var (
		unit SourceUnit
		errs []source.SyntaxError
		err  error
	)
	// Convert source file into tokens
	if p.tokens, errs = Lex(*p.srcfile); len(errs) > 0 {
		return unit, errs
	}
	//
	unit.Declarations, err = p.parseDeclarationSequence(END_OF)
	unit.SourceMap = p.srcmap
	//
	if err != nil {
		return unit, append(p.errors, *p.toSyntaxError(p.index, err))
	}
	//
	return unit, p.errors
}

// Parse declarations until a given terminator.  The terminator itself is
// not consumed.
func (p *Parser) parseDeclarationSequence(terminator uint) ([]ast.Decl, error) {
	var decls []ast.Decl
	//
	for !p.follows(terminator, END_OF) {
		var (
			start = p.index
			mark  = p.elaborator.Checkpoint()
		)
		//
		decl, err := p.parseDeclaration()
		//
		if err == nil {
			if !slices.Contains(decls, decl) {
				decls = append(decls, decl)
			}
			//
			continue
		}
		// Forget whatever the failed declaration bound
		p.elaborator.Rollback(mark)
		//
		var serr = p.toSyntaxError(start, err)
		//
		if !p.ctx.Config().Recover {
			return decls, serr
		}
		//
		log.Warnf("recovering from %s", serr)
		p.ctx.Report(serr)
		p.errors = append(p.errors, *serr)
		p.skip(start)
	}
	//
	return decls, nil
}

// Skip over a failed declaration, starting from its first token.  This stops
// after the next ";" or closing "}" at nesting depth zero, or before a "}"
// which closes an enclosing declaration sequence.
func (p *Parser) skip(start int) {
	var depth = 0
	//
	p.index = start
	//
	for {
		switch p.lookahead().Kind {
		case END_OF:
			return
		case LCURLY:
			depth++
		case RCURLY:
			if depth == 0 && p.index != start {
				return
			} else if depth <= 1 {
				p.index++
				return
			}
			//
			depth--
		case SEMICOLON:
			if depth == 0 {
				p.index++
				return
			}
		}
		//
		p.index++
	}
}

func (p *Parser) parseDeclaration() (ast.Decl, error) {
	var (
		start = p.index
		decl  ast.Decl
		err   error
	)
	//
	switch p.lookahead().Kind {
	case KEYWORD_VAR:
		decl, err = p.parseVariable()
	case KEYWORD_DEF:
		decl, err = p.parseFunction()
	case KEYWORD_NAMESPACE:
		decl, err = p.parseNamespace()
	case KEYWORD_TEMPLATE:
		decl, err = p.parseTemplate()
	default:
		return nil, p.syntaxError(p.lookahead(), "unknown declaration")
	}
	//
	if err != nil {
		return nil, p.toSyntaxError(start, err)
	}
	//
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// ============================================================================
// Variables
// ============================================================================

func (p *Parser) parseVariable() (ast.Decl, error) {
	var (
		typ  ast.Type
		name ast.Name
		decl *ast.VariableDecl
		err  error
	)
	//
	if _, err = p.expect(KEYWORD_VAR); err != nil {
		return nil, err
	} else if typ, err = p.parseType(); err != nil {
		return nil, err
	} else if name, err = p.parseDeclarator(); err != nil {
		return nil, err
	} else if decl, err = p.elaborator.OnVariableDeclaration(name, typ); err != nil {
		return nil, err
	}
	//
	if p.match(EQUALS) {
		err = p.parseInitializer(decl)
	} else {
		err = p.elaborator.OnDefaultInitialization(decl)
	}
	//
	if err != nil {
		return nil, err
	} else if _, err = p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	//
	return decl, nil
}

func (p *Parser) parseInitializer(decl *ast.VariableDecl) error {
	var restore = p.elaborator.EnterInitializer(decl)
	//
	defer restore()
	//
	init, err := p.parseExpr()
	if err != nil {
		return err
	}
	//
	_, err = p.elaborator.OnEqualInitialization(decl, init)
	//
	return err
}

// ============================================================================
// Functions
// ============================================================================

func (p *Parser) parseFunction() (ast.Decl, error) {
	var (
		ret  ast.Type
		name ast.Name
		fn   *ast.FunctionDecl
		err  error
	)
	//
	if _, err = p.expect(KEYWORD_DEF); err != nil {
		return nil, err
	} else if ret, err = p.parseType(); err != nil {
		return nil, err
	} else if name, err = p.parseDeclarator(); err != nil {
		return nil, err
	} else if fn, err = p.parseFunctionRest(name, ret); err != nil {
		return nil, err
	}
	//
	return fn, nil
}

// Parse the parameters and definition (if any) of a function.  Both are
// elaborated within the function's parameter scope.
func (p *Parser) parseFunctionRest(name ast.Name, ret ast.Type) (*ast.FunctionDecl, error) {
	var restore = p.elaborator.EnterFunctionParameters()
	//
	defer restore()
	//
	params, err := p.parseParameters(p.elaborator.OnFunctionParameter)
	if err != nil {
		return nil, err
	}
	//
	fn, err := p.elaborator.OnFunctionDeclaration(name, params, ret)
	if err != nil {
		return nil, err
	}
	//
	switch {
	case p.match(SEMICOLON):
		// declaration only
		return fn, nil
	case p.match(EQUALS):
		if p.match(KEYWORD_DELETE) {
			err = p.elaborator.OnDeletedDefinition(fn)
		} else if p.match(KEYWORD_DEFAULT) {
			err = p.elaborator.OnDefaultedDefinition(fn)
		} else {
			return nil, p.syntaxError(p.lookahead(), "expected delete or default")
		}
		//
		if err == nil {
			_, err = p.expect(SEMICOLON)
		}
		//
		return fn, err
	}
	//
	body, err := p.parseFunctionBody(fn)
	if err != nil {
		return nil, err
	}
	//
	return fn, p.elaborator.OnFunctionDefinition(fn, body)
}

// Parse a parenthesised list of parameters, each of which is a type followed
// by an optional name.
func (p *Parser) parseParameters(declare func(ast.Name, ast.Type) (*ast.ObjectParm, error)) ([]ast.Decl,
	error) {
	var params []ast.Decl
	//
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	//
	for first := true; !p.match(RBRACE); first = false {
		if !first {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}
		//
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		//
		parm, err := declare(p.parseOptionalName(), typ)
		if err != nil {
			return nil, err
		}
		//
		params = append(params, parm)
	}
	//
	return params, nil
}

func (p *Parser) parseFunctionBody(fn *ast.FunctionDecl) (ast.Stmt, error) {
	var restore = p.elaborator.EnterFunctionBody(fn)
	//
	defer restore()
	//
	return p.parseCompoundStatement()
}

// ============================================================================
// Statements
// ============================================================================

func (p *Parser) parseCompoundStatement() (ast.Stmt, error) {
	var stmts []ast.Stmt
	//
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	//
	for !p.match(RCURLY) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		//
		stmts = append(stmts, stmt)
	}
	//
	return p.elaborator.OnCompoundStatement(stmts), nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	var (
		start     = p.index
		stmt, err = p.parseStatementInner()
	)
	//
	if err != nil {
		return nil, p.toSyntaxError(start, err)
	}
	//
	return stmt, nil
}

func (p *Parser) parseStatementInner() (ast.Stmt, error) {
	switch p.lookahead().Kind {
	case END_OF:
		return nil, p.syntaxError(p.lookahead(), "unexpected end of file")
	case LCURLY:
		return p.parseBlock()
	case KEYWORD_RETURN:
		return p.parseReturn()
	case KEYWORD_VAR:
		decl, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		//
		return p.elaborator.OnDeclarationStatement(decl), nil
	}
	//
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	} else if _, err = p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	//
	return p.elaborator.OnExpressionStatement(expr), nil
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	var restore = p.elaborator.EnterBlock()
	//
	defer restore()
	//
	return p.parseCompoundStatement()
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	var (
		expr ast.Expr
		err  error
	)
	//
	if _, err = p.expect(KEYWORD_RETURN); err != nil {
		return nil, err
	} else if !p.follows(SEMICOLON) {
		if expr, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	//
	if _, err = p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	//
	return p.elaborator.OnReturnStatement(expr)
}

// ============================================================================
// Namespaces
// ============================================================================

func (p *Parser) parseNamespace() (ast.Decl, error) {
	var (
		name ast.Name
		ns   *ast.NamespaceDecl
		err  error
	)
	//
	if _, err = p.expect(KEYWORD_NAMESPACE); err != nil {
		return nil, err
	} else if name, err = p.parseDeclarator(); err != nil {
		return nil, err
	} else if ns, err = p.elaborator.OnNamespaceDeclaration(name); err != nil {
		return nil, err
	} else if _, err = p.expect(LCURLY); err != nil {
		return nil, err
	} else if err = p.parseNamespaceBody(ns); err != nil {
		return nil, err
	} else if _, err = p.expect(RCURLY); err != nil {
		return nil, err
	}
	//
	return ns, nil
}

func (p *Parser) parseNamespaceBody(ns *ast.NamespaceDecl) error {
	var restore = p.elaborator.EnterNamespace(ns)
	//
	defer restore()
	// Members are recorded by the namespace itself
	_, err := p.parseDeclarationSequence(RCURLY)
	//
	return err
}

// ============================================================================
// Templates and concepts
// ============================================================================

func (p *Parser) parseTemplate() (ast.Decl, error) {
	var (
		restore = p.elaborator.EnterTemplate()
		pattern ast.Decl
		err     error
	)
	//
	defer restore()
	//
	if _, err = p.expect(KEYWORD_TEMPLATE); err != nil {
		return nil, err
	} else if err = p.parseTemplateParameters(); err != nil {
		return nil, err
	}
	// Optional requires clause
	if p.match(KEYWORD_REQUIRES) {
		constraint, err := p.parseConstraint()
		if err != nil {
			return nil, err
		} else if err = p.elaborator.OnTemplateConstraint(constraint); err != nil {
			return nil, err
		}
	}
	//
	switch p.lookahead().Kind {
	case KEYWORD_CONCEPT:
		return p.parseConcept()
	case KEYWORD_VAR:
		pattern, err = p.parseVariable()
	case KEYWORD_DEF:
		pattern, err = p.parseFunction()
	default:
		return nil, p.syntaxError(p.lookahead(), "expected concept, variable or function declaration")
	}
	//
	if err != nil {
		return nil, err
	}
	//
	return p.elaborator.OnTemplateDeclaration(pattern), nil
}

// Parse a comma-separated list of template parameters between angle
// brackets, declaring each in the current template.
func (p *Parser) parseTemplateParameters() error {
	if _, err := p.expect(LESS_THAN); err != nil {
		return err
	}
	//
	for first := true; !p.match(GREATER_THAN); first = false {
		if !first {
			if _, err := p.expect(COMMA); err != nil {
				return err
			}
		}
		//
		if err := p.parseTemplateParameter(); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *Parser) parseTemplateParameter() error {
	var err error
	//
	switch p.lookahead().Kind {
	case KEYWORD_TYPENAME:
		var def ast.Type
		//
		p.index++
		//
		name := p.parseOptionalName()
		//
		if p.match(EQUALS) {
			if def, err = p.parseType(); err != nil {
				return err
			}
		}
		//
		_, err = p.elaborator.OnTypeTemplateParameter(name, def)
	case KEYWORD_TEMPLATE:
		params, err := p.parseTemplateTemplateParameters()
		if err != nil {
			return err
		} else if _, err = p.expect(KEYWORD_TYPENAME); err != nil {
			return err
		}
		//
		_, err = p.elaborator.OnTemplateTemplateParameter(p.parseOptionalName(), params)
		//
		return err
	default:
		var def ast.Expr
		//
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		//
		name := p.parseOptionalName()
		// Comparisons are not permitted here, as ">" closes the list
		if p.match(EQUALS) {
			if def, err = p.parseUnary(); err != nil {
				return err
			}
		}
		//
		_, err = p.elaborator.OnValueTemplateParameter(name, typ, def)
		//
		return err
	}
	//
	return err
}

// The parameters of a template template parameter are declared in a
// template of their own.
func (p *Parser) parseTemplateTemplateParameters() ([]ast.Decl, error) {
	var restore = p.elaborator.EnterTemplate()
	//
	defer restore()
	//
	if _, err := p.expect(KEYWORD_TEMPLATE); err != nil {
		return nil, err
	} else if err := p.parseTemplateParameters(); err != nil {
		return nil, err
	}
	//
	return p.elaborator.TemplateParameters(), nil
}

func (p *Parser) parseConcept() (ast.Decl, error) {
	var (
		name    ast.Name
		concept *ast.ConceptDecl
		def     ast.Expr
		err     error
	)
	//
	if _, err = p.expect(KEYWORD_CONCEPT); err != nil {
		return nil, err
	} else if name, err = p.parseDeclarator(); err != nil {
		return nil, err
	} else if concept, err = p.elaborator.OnConceptDeclaration(name); err != nil {
		return nil, err
	} else if _, err = p.expect(EQUALS); err != nil {
		return nil, err
	} else if def, err = p.parseConstraint(); err != nil {
		return nil, err
	} else if err = p.elaborator.OnConceptDefinition(concept, def); err != nil {
		return nil, err
	} else if _, err = p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	//
	return concept, nil
}

// Parse a constraint, such as a requires clause or the definition of a
// concept.  Dependent expressions within it are not checked against any
// active constraint.
func (p *Parser) parseConstraint() (ast.Expr, error) {
	var restore = p.ctx.EnterRequirements()
	//
	defer restore()
	//
	return p.parseExpr()
}

// ============================================================================
// Expressions
// ============================================================================

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseDisjunction()
}

func (p *Parser) parseDisjunction() (ast.Expr, error) {
	lhs, err := p.parseConjunction()
	//
	for err == nil && p.match(OR_OR) {
		var rhs ast.Expr
		//
		if rhs, err = p.parseConjunction(); err == nil {
			lhs, err = compiler.MakeLogicalOr(p.ctx, lhs, rhs)
		}
	}
	//
	return lhs, err
}

func (p *Parser) parseConjunction() (ast.Expr, error) {
	lhs, err := p.parseComparison()
	//
	for err == nil && p.match(AND_AND) {
		var rhs ast.Expr
		//
		if rhs, err = p.parseComparison(); err == nil {
			lhs, err = compiler.MakeLogicalAnd(p.ctx, lhs, rhs)
		}
	}
	//
	return lhs, err
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	//
	if op, ok := comparators[p.lookahead().Kind]; ok {
		p.index++
		//
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		//
		return compiler.MakeCompare(p.ctx, op, lhs, rhs)
	}
	//
	return lhs, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(NOT) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		//
		return compiler.MakeLogicalNot(p.ctx, operand)
	}
	//
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	var lookahead = p.lookahead()
	//
	switch lookahead.Kind {
	case KEYWORD_TRUE, KEYWORD_FALSE:
		p.index++
		return p.elaborator.OnBooleanLiteral(lookahead.Kind == KEYWORD_TRUE), nil
	case NUMBER:
		p.index++
		return p.elaborator.OnIntegerLiteral(p.string(lookahead))
	case LBRACE:
		p.index++
		//
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		} else if _, err = p.expect(RBRACE); err != nil {
			return nil, err
		}
		//
		return expr, nil
	case KEYWORD_REQUIRES:
		return p.parseRequiresExpression()
	case IDENTIFIER:
		return p.parseNameExpression()
	}
	//
	return nil, p.syntaxError(lookahead, "expected expression")
}

// Parse an expression beginning with a (possibly qualified) name.  This is
// either a concept check C<args>, a call f(args) or a reference.
func (p *Parser) parseNameExpression() (ast.Expr, error) {
	qualifier, id, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	//
	switch {
	case p.follows(LESS_THAN) && p.elaborator.IsConcept(qualifier, id):
		args, err := p.parseTemplateArguments()
		if err != nil {
			return nil, err
		}
		//
		return p.elaborator.OnCheck(qualifier, id, args)
	case p.match(LBRACE):
		var args []ast.Expr
		//
		for first := true; !p.match(RBRACE); first = false {
			if !first {
				if _, err := p.expect(COMMA); err != nil {
					return nil, err
				}
			}
			//
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			//
			args = append(args, arg)
		}
		//
		return p.elaborator.OnCall(qualifier, id, args)
	}
	//
	return p.elaborator.OnIdExpression(qualifier, id)
}

// Parse the arguments of a concept check.  Each is either a type or an
// expression without comparisons.
func (p *Parser) parseTemplateArguments() ([]ast.Term, error) {
	var args []ast.Term
	//
	if _, err := p.expect(LESS_THAN); err != nil {
		return nil, err
	}
	//
	for first := true; !p.match(GREATER_THAN); first = false {
		var (
			arg ast.Term
			err error
		)
		//
		if !first {
			if _, err = p.expect(COMMA); err != nil {
				return nil, err
			}
		}
		//
		if p.startsType() {
			arg, err = p.parseType()
		} else {
			arg, err = p.parseUnary()
		}
		//
		if err != nil {
			return nil, err
		}
		//
		args = append(args, arg)
	}
	//
	return args, nil
}

func (p *Parser) parseRequiresExpression() (ast.Expr, error) {
	var (
		restore = p.elaborator.EnterRequires()
		params  []ast.Decl
		reqs    []ast.Requirement
		err     error
	)
	//
	defer restore()
	//
	if _, err = p.expect(KEYWORD_REQUIRES); err != nil {
		return nil, err
	}
	// Parameters are optional
	if p.follows(LBRACE) {
		if params, err = p.parseParameters(p.elaborator.OnRequirementParameter); err != nil {
			return nil, err
		}
	}
	//
	if _, err = p.expect(LCURLY); err != nil {
		return nil, err
	}
	//
	for !p.match(RCURLY) {
		req, err := p.parseRequirement()
		if err != nil {
			return nil, err
		}
		//
		reqs = append(reqs, req)
	}
	//
	return p.elaborator.OnRequiresExpression(params, reqs), nil
}

// Parse either "e;" or "{ e } -> T;".
func (p *Parser) parseRequirement() (ast.Requirement, error) {
	var (
		typed = p.match(LCURLY)
		typ   ast.Type
	)
	//
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	//
	if typed {
		if _, err = p.expect(RCURLY); err != nil {
			return nil, err
		} else if _, err = p.expect(RIGHTARROW); err != nil {
			return nil, err
		} else if typ, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	//
	if _, err = p.expect(SEMICOLON); err != nil {
		return nil, err
	} else if typed {
		return p.elaborator.OnTypedRequirement(expr, typ), nil
	}
	//
	return p.elaborator.OnSimpleRequirement(expr), nil
}

// ============================================================================
// Types
// ============================================================================

// Parse a type, consisting of optional cv-qualifiers, a base type and any
// number of suffixes ("*", "&", "const", "[]" or "[n]").
func (p *Parser) parseType() (ast.Type, error) {
	var (
		builder    = p.ctx.Builder()
		qualifiers = p.parseQualifiers()
	)
	//
	typ, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	//
	typ = builder.QualifiedType(typ, qualifiers)
	//
	for {
		switch {
		case p.match(STAR):
			typ = builder.PointerType(typ)
		case p.match(AMPERSAND):
			typ = builder.ReferenceType(typ)
		case p.follows(KEYWORD_CONST, KEYWORD_VOLATILE):
			typ = builder.QualifiedType(typ, p.parseQualifiers())
		case p.match(LSQUARE):
			if p.match(RSQUARE) {
				typ = builder.SequenceType(typ)
				continue
			}
			//
			bound, err := p.parseExpr()
			if err != nil {
				return nil, err
			} else if _, err = p.expect(RSQUARE); err != nil {
				return nil, err
			}
			//
			typ = builder.ArrayType(typ, bound)
		default:
			return typ, nil
		}
	}
}

func (p *Parser) parseQualifiers() ast.Qualifier {
	var qualifiers ast.Qualifier
	//
	for {
		switch {
		case p.match(KEYWORD_CONST):
			qualifiers |= ast.CONST_QUALIFIER
		case p.match(KEYWORD_VOLATILE):
			qualifiers |= ast.VOLATILE_QUALIFIER
		default:
			return qualifiers
		}
	}
}

func (p *Parser) parseBaseType() (ast.Type, error) {
	var (
		lookahead = p.lookahead()
		builder   = p.ctx.Builder()
	)
	//
	switch lookahead.Kind {
	case KEYWORD_VOID:
		p.index++
		return builder.VoidType(), nil
	case KEYWORD_BOOL:
		p.index++
		return builder.BooleanType(), nil
	case KEYWORD_INT:
		p.index++
		return p.ctx.IntType(), nil
	case KEYWORD_FLOAT:
		p.index++
		return builder.FloatType(64), nil
	case IDENTIFIER:
		qualifier, id, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		//
		return p.elaborator.OnTypeName(qualifier, id)
	}
	//
	return nil, p.syntaxError(lookahead, "expected type")
}

// Determine whether a type follows.
func (p *Parser) startsType() bool {
	var lookahead = p.lookahead()
	//
	switch lookahead.Kind {
	case KEYWORD_VOID, KEYWORD_BOOL, KEYWORD_INT, KEYWORD_FLOAT, KEYWORD_CONST, KEYWORD_VOLATILE:
		return true
	case IDENTIFIER:
		return p.elaborator.IsTypeName(nil, p.string(lookahead))
	}
	//
	return false
}

// ============================================================================
// Names
// ============================================================================

// Parse a name such as x or N::M::x, resolving its qualifier (if any).
func (p *Parser) parseQualifiedName() (*ast.NamespaceDecl, string, error) {
	var qualifier *ast.NamespaceDecl
	//
	tok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, "", err
	}
	//
	var id = p.string(tok)
	//
	for p.match(COLON_COLON) {
		if qualifier, err = p.elaborator.OnNestedNameSpecifier(qualifier, id); err != nil {
			return nil, "", err
		} else if tok, err = p.expect(IDENTIFIER); err != nil {
			return nil, "", err
		}
		//
		id = p.string(tok)
	}
	//
	return qualifier, id, nil
}

func (p *Parser) parseDeclarator() (ast.Name, error) {
	qualifier, id, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	//
	return p.elaborator.OnDeclarator(qualifier, id), nil
}

// Parse an optional identifier, giving an anonymous name when absent.
func (p *Parser) parseOptionalName() ast.Name {
	var id string
	//
	if lookahead := p.lookahead(); lookahead.Kind == IDENTIFIER {
		p.index++
		id = p.string(lookahead)
	}
	//
	return p.elaborator.OnDeclarator(nil, id)
}

// ============================================================================
// Helpers
// ============================================================================

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, error) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.syntaxError(lookahead, "unexpected token")
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	lastToken = max(firstToken, min(lastToken, len(p.tokens)-1))
	//
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxError(token lex.Token, msg string) error {
	if token.Kind == END_OF {
		msg = fmt.Sprintf("%s (end of file)", msg)
	}
	//
	return p.srcfile.SyntaxError(token.Span, msg)
}

// Convert an error arising from a construct starting at a given token into a
// syntax error.  Semantic errors are reported over the construct's span.
func (p *Parser) toSyntaxError(start int, err error) *source.SyntaxError {
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		return serr
	}
	//
	var msg = err.Error()
	//
	if compiler.IsUnsupported(err) {
		msg = fmt.Sprintf("compiler limitation: %s", msg)
	}
	//
	start = min(start, len(p.tokens)-1)
	//
	return p.srcfile.SyntaxError(p.spanOf(start, p.index-1), msg)
}
