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

	"github.com/consensys/go-banjo/pkg/banjo"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] file1.banjo file2.banjo ...",
	Short: "Check banjo source files.",
	Long: `Elaborate a given set of source file(s), reporting any errors.
	Files are elaborated in order, sharing a single global scope.  On success,
	the elaborated declarations are printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			config = getConfig(cmd)
			dump   = GetFlag(cmd, "dump")
			quiet  = GetFlag(cmd, "quiet")
		)
		//
		translation := CompileSourceFiles(config, args)
		//
		if !quiet {
			writeTranslation(translation, dump)
		}
	},
}

// Configuration for term tree dumps.  Symbols and interned types are shared
// widely, hence the depth limit.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                8,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func writeTranslation(translation *banjo.Translation, dump bool) {
	for _, unit := range translation.Units() {
		var srcfile = unit.SourceMap.Source()
		//
		for _, decl := range unit.Declarations {
			if unit.SourceMap.Has(decl) {
				line := srcfile.FindFirstEnclosingLine(unit.SourceMap.Get(decl))
				fmt.Printf("%s:%d: ", srcfile.Filename(), line.Number())
			}
			//
			fmt.Println(decl.String())
			//
			if dump {
				dumper.Dump(decl)
			}
		}
	}
}

func init() {
	checkCmd.Flags().Bool("dump", false, "dump the term tree of each declaration")
	checkCmd.Flags().BoolP("quiet", "q", false, "only report errors")
	rootCmd.AddCommand(checkCmd)
}
