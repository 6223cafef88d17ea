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
package lex

import (
	"slices"
	"testing"

	"github.com/consensys/go-banjo/pkg/util/source"
)

const (
	tEOF   uint = 0
	tSPACE uint = 1
	tWORD  uint = 2
	tAND   uint = 3
	tAMP   uint = 4
)

var testRules = []LexRule[rune]{
	Rule(Many(Or(Unit(' '), Unit('\n'))), tSPACE),
	Rule(Unit('&', '&'), tAND),
	Rule(Unit('&'), tAMP),
	Rule(Sequence(Within('a', 'z'), Many(Within('a', 'z'))), tWORD),
	Rule(Eof[rune](), tEOF),
}

func Test_Lexer_01(t *testing.T) {
	check_Lexer(t, "", 0, Token{tEOF, source.NewSpan(0, 0)})
}

func Test_Lexer_02(t *testing.T) {
	check_Lexer(t, "a && b", 0,
		Token{tWORD, source.NewSpan(0, 1)},
		Token{tAND, source.NewSpan(2, 4)},
		Token{tWORD, source.NewSpan(5, 6)},
		Token{tEOF, source.NewSpan(6, 6)})
}

func Test_Lexer_03(t *testing.T) {
	check_Lexer(t, "ab&cd", 0,
		Token{tWORD, source.NewSpan(0, 2)},
		Token{tAMP, source.NewSpan(2, 3)},
		Token{tWORD, source.NewSpan(3, 5)},
		Token{tEOF, source.NewSpan(5, 5)})
}

func Test_Lexer_04(t *testing.T) {
	// Digits are not recognised by any rule.
	check_Lexer(t, "x 1", 1, Token{tWORD, source.NewSpan(0, 1)})
}

func Test_Lexer_05(t *testing.T) {
	var (
		scanner = Sequence(Unit('-'), Many(Within('0', '9')))
	)
	//
	if n := scanner([]rune("-12x")); n != 3 {
		t.Errorf("expected 3 characters, got %d", n)
	}
	//
	if n := Until('\n')([]rune("abc\nd")); n != 3 {
		t.Errorf("expected 3 characters, got %d", n)
	}
}

func check_Lexer(t *testing.T, input string, remaining uint, expected ...Token) {
	var (
		lexer  = NewLexer([]rune(input), testRules...)
		tokens = lexer.Collect(tSPACE)
	)
	//
	if lexer.Remaining() != remaining {
		t.Errorf("expected %d remaining, got %d", remaining, lexer.Remaining())
	}
	//
	if !slices.Equal(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}
