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
	"github.com/hashicorp/go-set/v3"
)

// Rank of an argument against a parameter.  Lower is better.
const (
	exactMatch     = 0
	conversion     = 1
	notConvertible = 2
)

// Resolve selects the best declaration from a set of candidates for a call
// with arguments of the given types.  A candidate whose parameters match
// exactly (ignoring references and qualifiers) beats one which requires
// conversions.  When several candidates are equally good the call is
// ambiguous.
func Resolve(candidates []ast.Decl, args []ast.Type) (ast.Decl, error) {
	var (
		best  []ast.Decl
		score = -1
	)
	//
	for _, c := range functions(candidates) {
		if s := rank(c, args); s < 0 {
			continue
		} else if score < 0 || s < score {
			best, score = []ast.Decl{c}, s
		} else if s == score {
			best = append(best, c)
		}
	}
	//
	switch len(best) {
	case 0:
		return nil, NewTranslationError(nil, "no matching declaration for call with arguments (%s)",
			typeList(args))
	case 1:
		return best[0], nil
	default:
		return nil, NewTranslationError(best[0], "ambiguous call to %s with arguments (%s)",
			best[0].Name(), typeList(args))
	}
}

// Select the distinct functions from a set of candidates.  Function types
// are interned, so redeclarations of a function share a type and only count
// once.  Of these, a declaration carrying the definition is preferred.
func functions(candidates []ast.Decl) []*ast.FunctionDecl {
	var (
		seen   = set.New[*ast.FunctionType](len(candidates))
		unique []*ast.FunctionDecl
	)
	//
	for _, c := range candidates {
		fn, ok := c.(*ast.FunctionDecl)
		//
		if !ok {
			continue
		} else if seen.Insert(fn.Type()) {
			unique = append(unique, fn)
			continue
		}
		//
		for i, other := range unique {
			if other.Type() == fn.Type() && other.Definition() == nil && fn.Definition() != nil {
				unique[i] = fn
			}
		}
	}
	//
	return unique
}

// Rank a candidate by the number of conversions required to call it, or -1
// if it cannot be called.
func rank(fn *ast.FunctionDecl, args []ast.Type) int {
	if len(fn.Type().Parameters()) != len(args) {
		return -1
	}
	//
	var count = 0
	//
	for i, p := range fn.Type().Parameters() {
		switch rankArgument(p, args[i]) {
		case notConvertible:
			return -1
		case conversion:
			count++
		}
	}
	//
	return count
}

func rankArgument(param ast.Type, arg ast.Type) int {
	param, arg = StripType(param), StripType(arg)
	//
	switch {
	case ast.EquivalentTypes(param, arg):
		return exactMatch
	case ast.IsDependentType(param) || ast.IsDependentType(arg):
		return conversion
	case isArithmetic(param) && isArithmetic(arg):
		return conversion
	default:
		return notConvertible
	}
}

// Arithmetic types are mutually convertible.
func isArithmetic(t ast.Type) bool {
	switch t.(type) {
	case *ast.BooleanType, *ast.IntegerType, *ast.FloatType, *ast.EnumType:
		return true
	default:
		return false
	}
}

func typeList(types []ast.Type) string {
	var str string
	//
	for i, t := range types {
		if i != 0 {
			str += ", "
		}
		//
		str += t.String()
	}
	//
	return str
}
