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
package termio

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Colour is one of the eight standard terminal colours.
type Colour uint

const (
	// BLACK represents black
	BLACK Colour = iota
	// RED represents red
	RED
	// GREEN represents green
	GREEN
	// YELLOW represents yellow
	YELLOW
	// BLUE represents blue
	BLUE
	// MAGENTA represents magenta
	MAGENTA
	// CYAN represents cyan
	CYAN
	// WHITE represents white
	WHITE
)

// AnsiEscape is a "select graphic rendition" escape, built up one parameter
// at a time.
type AnsiEscape struct {
	params []uint
}

// NewAnsiEscape constructs an escape with no parameters.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// BoldAnsiEscape constructs an escape for bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// FgColour sets the foreground colour.
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	var params = make([]uint, len(p.params), len(p.params)+1)
	//
	copy(params, p.params)
	//
	return AnsiEscape{append(params, 30+uint(col))}
}

// Build constructs the final escape.  An escape without parameters resets
// all attributes.
func (p AnsiEscape) Build() string {
	var codes = make([]string, len(p.params))
	//
	for i, param := range p.params {
		codes[i] = fmt.Sprintf("%d", param)
	}
	//
	return fmt.Sprintf("\033[%sm", strings.Join(codes, ";"))
}

// Apply formats some text with this escape, resetting afterwards.
func (p AnsiEscape) Apply(text string) string {
	return p.Build() + text + NewAnsiEscape().Build()
}

// IsTerminal determines whether a given file is attached to a terminal, and
// hence whether escapes should be written to it.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
