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
package banjo

import (
	"fmt"
	"strings"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
	"github.com/consensys/go-banjo/pkg/banjo/compiler"
	"github.com/consensys/go-banjo/pkg/banjo/parser"
	"github.com/consensys/go-banjo/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Translation is the result of elaborating one or more source files.  All
// files share a single global scope, and declarations accumulate as further
// files (or interactive inputs) are elaborated.
type Translation struct {
	elaborator *compiler.Elaborator
	units      []parser.SourceUnit
}

// NewTranslation constructs an empty translation for a given configuration.
func NewTranslation(config compiler.Config) *Translation {
	var ctx = compiler.NewContext(config)
	//
	return &Translation{compiler.NewElaborator(ctx), nil}
}

// Compile elaborates a set of source files, in order, into a single
// translation.  Errors in one file do not prevent later files from being
// elaborated.
func Compile(config compiler.Config, files ...source.File) (*Translation, []source.SyntaxError) {
	var (
		translation = NewTranslation(config)
		errors      []source.SyntaxError
	)
	//
	for i := range files {
		errors = append(errors, translation.Elaborate(&files[i])...)
	}
	//
	return translation, errors
}

// Elaborate a further source file within this translation.
func (p *Translation) Elaborate(srcfile *source.File) []source.SyntaxError {
	unit, errs := parser.Parse(srcfile, p.elaborator)
	//
	log.Debugf("elaborated %s (%d declarations, %d errors)", srcfile.Filename(), len(unit.Declarations), len(errs))
	p.units = append(p.units, unit)
	//
	return errs
}

// Context returns the translation context.
func (p *Translation) Context() *compiler.Context { return p.elaborator.Context() }

// Units returns the elaborated source units, in order of elaboration.
func (p *Translation) Units() []parser.SourceUnit { return p.units }

// Declarations returns the outermost declarations of every unit, in order.
func (p *Translation) Declarations() []ast.Decl {
	var decls []ast.Decl
	//
	for _, unit := range p.units {
		decls = append(decls, unit.Declarations...)
	}
	//
	return decls
}

// Expand the concept with a given (possibly qualified) name, applied to
// arguments given as the text of types, into its normal form.
func (p *Translation) Expand(name string, args ...string) (ast.Cons, error) {
	var (
		ids       = strings.Split(name, "::")
		qualifier *ast.NamespaceDecl
		terms     = make([]ast.Term, len(args))
		err       error
	)
	//
	for _, id := range ids[:len(ids)-1] {
		if qualifier, err = p.elaborator.OnNestedNameSpecifier(qualifier, id); err != nil {
			return nil, err
		}
	}
	//
	for i, arg := range args {
		var srcfile = source.NewSourceFile(fmt.Sprintf("argument %d", i+1), []byte(arg))
		//
		typ, errs := parser.ParseType(srcfile, p.elaborator)
		if len(errs) > 0 {
			return nil, &errs[0]
		}
		//
		terms[i] = typ
	}
	//
	check, err := p.elaborator.OnCheck(qualifier, ids[len(ids)-1], terms)
	if err != nil {
		return nil, err
	}
	//
	return compiler.ExpandCheck(p.Context(), check.(*ast.Check))
}
