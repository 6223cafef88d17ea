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

import "testing"

func Test_AnsiEscape_01(t *testing.T) {
	check_Escape(t, NewAnsiEscape(), "\033[m")
	check_Escape(t, BoldAnsiEscape(), "\033[1m")
	check_Escape(t, NewAnsiEscape().FgColour(RED), "\033[31m")
	check_Escape(t, BoldAnsiEscape().FgColour(CYAN), "\033[1;36m")
}

func Test_AnsiEscape_02(t *testing.T) {
	var (
		bold = BoldAnsiEscape()
		red  = bold.FgColour(RED)
		blue = bold.FgColour(BLUE)
	)
	// Extending an escape leaves the original unchanged
	check_Escape(t, bold, "\033[1m")
	check_Escape(t, red, "\033[1;31m")
	check_Escape(t, blue, "\033[1;34m")
	//
	if actual := red.Apply("error"); actual != "\033[1;31merror\033[m" {
		t.Errorf("unexpected formatting %q", actual)
	}
}

func check_Escape(t *testing.T, escape AnsiEscape, expected string) {
	if actual := escape.Build(); actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}
