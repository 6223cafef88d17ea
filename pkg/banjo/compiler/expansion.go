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
	"github.com/consensys/go-banjo/pkg/banjo/ast"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Expand a concept constraint by substituting its arguments for the
// concept's parameters in the concept's definition, and normalizing the
// result.  Other parameters occurring in the definition are left in place.
// The arguments are assumed to have been checked against the parameters.
func Expand(ctx *Context, cons *ast.ConceptCons) (ast.Cons, error) {
	var concept, ok = cons.Concept().(*ast.ConceptDecl)
	//
	if !ok {
		return nil, NewTranslationError(cons, "%s is not a concept", cons.Concept().Name())
	} else if concept.Definition() == nil {
		return nil, NewTranslationError(cons, "concept %s used before its definition", concept.Name())
	} else if result, ok := ctx.lookupExpansion(concept, cons.Arguments()); ok {
		log.Debugf("expanded %s (memoised)", cons)
		return result, nil
	}
	//
	var s = NewSubstitutionFrom(concept.Parameters(), cons.Arguments())
	//
	body, err := SubstituteExpr(ctx, concept.Definition(), s)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %s", cons)
	}
	//
	var result = Normalize(ctx, body)
	//
	log.Debugf("expanded %s with %s to %s", cons, s, result)
	ctx.recordExpansion(concept, cons.Arguments(), result)
	//
	return result, nil
}

// ExpandCheck expands a concept check expression, such as C<int>.
func ExpandCheck(ctx *Context, check *ast.Check) (ast.Cons, error) {
	return Expand(ctx, ast.NewConceptCons(check.Concept(), check.Arguments()))
}
