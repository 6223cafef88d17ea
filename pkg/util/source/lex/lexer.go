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

	"github.com/consensys/go-banjo/pkg/util/source"
)

// Token is a classified run of characters within the text being scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule maps characters accepted by a scanner onto a token kind.
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a lexing rule.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer tokenises an input sequence by trying its rules in order at each
// position; the first rule accepting a non-empty prefix wins.
type Lexer[T any] struct {
	items  []T
	index  int
	rules  []LexRule[T]
	buffer []Token
}

// NewLexer constructs a lexer over some input with a given set of rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, nil}
}

// Index returns the current position within the input.
func (p *Lexer[T]) Index() uint {
	return uint(p.index)
}

// Remaining returns the number of input items not yet consumed.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// HasNext checks whether another token can be produced.
func (p *Lexer[T]) HasNext() bool {
	p.scan()
	return len(p.buffer) > 0
}

// Next returns the next token and advances past it.
func (p *Lexer[T]) Next() Token {
	next := p.buffer[0]
	p.buffer = p.buffer[1:]
	//
	if p.index == len(p.items) {
		// EOF
		p.index++
	} else {
		p.index = next.Span.End()
	}
	//
	return next
}

// Collect consumes all remaining tokens, dropping those whose kind is listed
// in skip (e.g. whitespace and comments).
func (p *Lexer[T]) Collect(skip ...uint) []Token {
	var tokens []Token
	//
	for p.HasNext() {
		if next := p.Next(); !slices.Contains(skip, next.Kind) {
			tokens = append(tokens, next)
		}
	}
	//
	return tokens
}

func (p *Lexer[T]) scan() {
	if len(p.buffer) == 0 && p.index <= len(p.items) {
		for _, r := range p.rules {
			if n := r.scanner(p.items[p.index:]); n > 0 {
				end := min(len(p.items), p.index+int(n))
				p.buffer = append(p.buffer, Token{r.tag, source.NewSpan(p.index, end)})
				//
				return
			}
		}
	}
}
