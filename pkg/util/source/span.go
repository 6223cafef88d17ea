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
package source

// Span is a half-open range [start,end) of character offsets in a source file.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, checking that it is well formed.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}
	//
	return Span{start, end}
}

// Start returns the offset of the first character covered.
func (p Span) Start() int {
	return p.start
}

// End returns one past the offset of the last character covered.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered.
func (p Span) Length() int {
	return p.end - p.start
}

// Join returns the smallest span covering both spans.
func (p Span) Join(o Span) Span {
	return Span{min(p.start, o.start), max(p.end, o.end)}
}

// Map associates nodes produced from a single source file with the spans they
// were parsed from.  Nodes are keyed by identity.
type Map[T comparable] struct {
	srcfile File
	spans   map[T]Span
}

// NewSourceMap constructs an empty map over a given source file.
func NewSourceMap[T comparable](srcfile File) *Map[T] {
	return &Map[T]{srcfile, make(map[T]Span)}
}

// Source returns the file this map covers.
func (p *Map[T]) Source() *File {
	return &p.srcfile
}

// Put records the span of a node, replacing any earlier record.
func (p *Map[T]) Put(node T, span Span) {
	p.spans[node] = span
}

// Has checks whether a node has a recorded span.
func (p *Map[T]) Has(node T) bool {
	_, ok := p.spans[node]
	return ok
}

// Get returns the span of a node, which must have been recorded.
func (p *Map[T]) Get(node T) Span {
	if span, ok := p.spans[node]; ok {
		return span
	}
	//
	panic("missing source mapping")
}

// SyntaxError reports an error against the recorded span of a node.
func (p *Map[T]) SyntaxError(node T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(node), msg)
}
