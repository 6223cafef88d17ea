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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-banjo/pkg/banjo"
	"github.com/consensys/go-banjo/pkg/banjo/compiler"
	"github.com/consensys/go-banjo/pkg/util/source"
	"github.com/consensys/go-banjo/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error
// arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Configure logging and construct the compiler configuration from the
// persistent flags.
func getConfig(cmd *cobra.Command) compiler.Config {
	var config = compiler.DefaultConfig()
	// Configure log level
	if GetFlag(cmd, "trace") {
		log.SetLevel(log.TraceLevel)
	} else if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	config.Memoize = !GetFlag(cmd, "no-memo")
	config.Recover = !GetFlag(cmd, "no-recover")
	config.IntegerPrecision = GetUint(cmd, "int-width")
	//
	switch config.IntegerPrecision {
	case 8, 16, 32, 64:
		return config
	default:
		fmt.Printf("invalid int width %d\n", config.IntegerPrecision)
		os.Exit(2)
	}
	// unreachable
	return config
}

// CompileSourceFiles accepts a set of source files and elaborates them into
// a translation.  Any errors are reported, after which this exits.
func CompileSourceFiles(config compiler.Config, filenames []string) *banjo.Translation {
	for _, n := range filenames {
		log.Debug(fmt.Sprintf("including source file %s", n))
	}
	// Read source files
	srcfiles, err := source.ReadFiles(filenames...)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	// Compile source files
	translation, errors := banjo.Compile(config, srcfiles...)
	// Check for errors
	if len(errors) != 0 {
		// Report errors
		for _, err := range errors {
			printSyntaxError(&err)
		}
		// Fail
		os.Exit(4)
	}
	// Done
	return translation
}

// Print a syntax error with appropriate highlighting.  Colour is used only
// when writing to a terminal.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	colour := termio.IsTerminal(os.Stdout)
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, highlight(err.Message(), colour, termio.BoldAnsiEscape()))
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(highlight(strings.Repeat("^", length), colour, termio.NewAnsiEscape().FgColour(termio.RED)))
}

func highlight(text string, colour bool, escape termio.AnsiEscape) string {
	if !colour {
		return text
	}
	//
	return escape.Apply(text)
}
