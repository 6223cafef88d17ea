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
	"github.com/consensys/go-banjo/pkg/util/source"
	"github.com/consensys/go-banjo/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "// ... \n"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LCURLY signals "{"
const LCURLY uint = 5

// RCURLY signals "}"
const RCURLY uint = 6

// LSQUARE signals "["
const LSQUARE uint = 7

// RSQUARE signals "]"
const RSQUARE uint = 8

// COMMA signals ","
const COMMA uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// COLON_COLON signals "::"
const COLON_COLON uint = 11

// NUMBER signals a decimal integer
const NUMBER uint = 12

// IDENTIFIER signals a name which is not a keyword
const IDENTIFIER uint = 20

// KEYWORD_VAR signals a variable declaration
const KEYWORD_VAR uint = 21

// KEYWORD_DEF signals a function declaration
const KEYWORD_DEF uint = 22

// KEYWORD_TEMPLATE signals a template declaration
const KEYWORD_TEMPLATE uint = 23

// KEYWORD_TYPENAME signals a type parameter
const KEYWORD_TYPENAME uint = 24

// KEYWORD_CONCEPT signals a concept declaration
const KEYWORD_CONCEPT uint = 25

// KEYWORD_REQUIRES signals a requires clause or expression
const KEYWORD_REQUIRES uint = 26

// KEYWORD_NAMESPACE signals a namespace declaration
const KEYWORD_NAMESPACE uint = 27

// KEYWORD_RETURN signals a return statement
const KEYWORD_RETURN uint = 28

// KEYWORD_TRUE signals the literal true
const KEYWORD_TRUE uint = 29

// KEYWORD_FALSE signals the literal false
const KEYWORD_FALSE uint = 30

// KEYWORD_VOID signals the type void
const KEYWORD_VOID uint = 31

// KEYWORD_BOOL signals the type bool
const KEYWORD_BOOL uint = 32

// KEYWORD_INT signals the type int
const KEYWORD_INT uint = 33

// KEYWORD_FLOAT signals the type float
const KEYWORD_FLOAT uint = 34

// KEYWORD_CONST signals the const qualifier
const KEYWORD_CONST uint = 35

// KEYWORD_VOLATILE signals the volatile qualifier
const KEYWORD_VOLATILE uint = 36

// KEYWORD_DELETE signals a deleted definition
const KEYWORD_DELETE uint = 37

// KEYWORD_DEFAULT signals a defaulted definition
const KEYWORD_DEFAULT uint = 38

// RIGHTARROW signals "->"
const RIGHTARROW uint = 40

// EQUALS signals "="
const EQUALS uint = 41

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 42

// NOT_EQUALS signals "!="
const NOT_EQUALS uint = 43

// LESS_THAN signals "<"
const LESS_THAN uint = 44

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 45

// GREATER_THAN signals ">"
const GREATER_THAN uint = 46

// GREATER_THAN_EQUALS signals ">="
const GREATER_THAN_EQUALS uint = 47

// AND_AND signals "&&"
const AND_AND uint = 48

// OR_OR signals "||"
const OR_OR uint = 49

// NOT signals "!"
const NOT uint = 50

// AMPERSAND signals "&"
const AMPERSAND uint = 51

// STAR signals "*"
const STAR uint = 52

// Keywords are lexed as identifiers and then reclassified.
var keywords = map[string]uint{
	"var":       KEYWORD_VAR,
	"def":       KEYWORD_DEF,
	"template":  KEYWORD_TEMPLATE,
	"typename":  KEYWORD_TYPENAME,
	"concept":   KEYWORD_CONCEPT,
	"requires":  KEYWORD_REQUIRES,
	"namespace": KEYWORD_NAMESPACE,
	"return":    KEYWORD_RETURN,
	"true":      KEYWORD_TRUE,
	"false":     KEYWORD_FALSE,
	"void":      KEYWORD_VOID,
	"bool":      KEYWORD_BOOL,
	"int":       KEYWORD_INT,
	"float":     KEYWORD_FLOAT,
	"const":     KEYWORD_CONST,
	"volatile":  KEYWORD_VOLATILE,
	"delete":    KEYWORD_DELETE,
	"default":   KEYWORD_DEFAULT,
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

// Rule for describing (decimal) numbers
var number lex.Scanner[rune] = lex.Many(lex.Within('0', '9'))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.Sequence(identifierStart, identifierRest)

// Comments start with "//" and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.Sequence(lex.Unit('/', '/'), lex.Until('\n'))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit(':', ':'), COLON_COLON),
	lex.Rule(lex.Unit('-', '>'), RIGHTARROW),
	lex.Rule(lex.Unit('=', '='), EQUALS_EQUALS),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('<', '='), LESS_THAN_EQUALS),
	lex.Rule(lex.Unit('>', '='), GREATER_THAN_EQUALS),
	lex.Rule(lex.Unit('&', '&'), AND_AND),
	lex.Rule(lex.Unit('|', '|'), OR_OR),
	lex.Rule(lex.Unit('<'), LESS_THAN),
	lex.Rule(lex.Unit('>'), GREATER_THAN),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('!'), NOT),
	lex.Rule(lex.Unit('&'), AMPERSAND),
	lex.Rule(lex.Unit('*'), STAR),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are dropped, and
// keywords are distinguished from identifiers.  The token stream always ends
// with END_OF.
func Lex(srcfile source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		contents = srcfile.Contents()
		lexer    = lex.NewLexer(contents, rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect(WHITESPACE, COMMENT)
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+1
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	//
	for i, t := range tokens {
		if t.Kind == IDENTIFIER {
			if kind, ok := keywords[string(contents[t.Span.Start():t.Span.End()])]; ok {
				tokens[i].Kind = kind
			}
		}
	}
	//
	return tokens, nil
}
