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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-banjo/pkg/banjo"
	"github.com/consensys/go-banjo/pkg/util/source"
	"github.com/consensys/go-banjo/pkg/util/termio"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const historyFile = ".banjo_history"

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl [flags] [file1.banjo ...]",
	Short: "Interactively elaborate declarations.",
	Long: `Elaborate any given source file(s), then read declarations interactively.
	Each declaration is elaborated in the same global scope as those before it.
	Commands:
	  :expand C T ...   expand concept C applied to types T ...
	  :quit             exit`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			config      = getConfig(cmd)
			translation = CompileSourceFiles(config, args)
		)
		//
		runRepl(cmd, translation)
	},
}

func runRepl(cmd *cobra.Command, translation *banjo.Translation) {
	var (
		ln          = liner.NewLiner()
		home, _     = os.UserHomeDir()
		historyPath = filepath.Join(home, historyFile)
		colour      = termio.IsTerminal(os.Stdout)
	)
	//
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	//
	if f, err := os.Open(historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	//
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	//
	for n := 1; ; n++ {
		input, ok := readInput(ln)
		//
		if !ok {
			fmt.Println()
			return
		} else if input = strings.TrimSpace(input); input == "" {
			continue
		}
		//
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		//
		if strings.HasPrefix(input, ":") {
			if !runCommand(cmd, translation, strings.Fields(input)) {
				return
			}
			//
			continue
		}
		//
		var srcfile = source.NewSourceFile(fmt.Sprintf("<input %d>", n), []byte(input))
		//
		if errs := translation.Elaborate(srcfile); len(errs) > 0 {
			for _, err := range errs {
				printSyntaxError(&err)
			}
			//
			continue
		}
		//
		var units = translation.Units()
		//
		for _, decl := range units[len(units)-1].Declarations {
			fmt.Println(highlight(decl.String(), colour, termio.NewAnsiEscape().FgColour(termio.CYAN)))
		}
	}
}

// Run a REPL command, returning false when the REPL should exit.
func runCommand(cmd *cobra.Command, translation *banjo.Translation, words []string) bool {
	switch words[0] {
	case ":quit", ":q":
		return false
	case ":expand":
		if len(words) < 2 {
			fmt.Println("usage: :expand concept [type ...]")
			break
		}
		//
		if cons, err := translation.Expand(words[1], words[2:]...); err != nil {
			reportError(cmd, err)
		} else {
			fmt.Println(cons.String())
		}
	default:
		fmt.Printf("unknown command %s\n", words[0])
	}
	//
	return true
}

// Read a complete input, prompting for further lines while braces remain
// open.  The flag is false at end of input.
func readInput(ln *liner.State) (string, bool) {
	var (
		builder strings.Builder
		prompt  = "banjo> "
	)
	//
	for {
		line, err := ln.Prompt(prompt)
		//
		if errors.Is(err, io.EOF) {
			return "", false
		} else if errors.Is(err, liner.ErrPromptAborted) {
			// Abandon the current input
			return "", true
		} else if err != nil {
			return "", false
		}
		//
		builder.WriteString(line)
		builder.WriteByte('\n')
		//
		if text := builder.String(); strings.Count(text, "{") <= strings.Count(text, "}") {
			return text, true
		}
		//
		prompt = "  ...> "
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}
