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

	"github.com/consensys/go-banjo/pkg/banjo/compiler"
	"github.com/consensys/go-banjo/pkg/util/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand [flags] file concept [type ...]",
	Short: "Expand a concept applied to some types.",
	Long: `Elaborate a given source file, then expand the named concept applied to
	the given type arguments and print its normal form.  Concepts within a
	namespace are named as N::C.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config      = getConfig(cmd)
			translation = CompileSourceFiles(config, args[:1])
		)
		//
		cons, err := translation.Expand(args[1], args[2:]...)
		if err != nil {
			reportError(cmd, err)
			os.Exit(4)
		}
		//
		fmt.Println(cons.String())
	},
}

// Report an error which is not attached to a declaration.  Syntax errors are
// highlighted, and unsupported constructs show where they arose when logging
// is verbose.
func reportError(cmd *cobra.Command, err error) {
	var serr *source.SyntaxError
	//
	switch {
	case errors.As(err, &serr):
		printSyntaxError(serr)
	case compiler.IsUnsupported(err) && GetFlag(cmd, "verbose"):
		fmt.Printf("compiler limitation: %+v\n", err)
	case compiler.IsUnsupported(err):
		fmt.Printf("compiler limitation: %s\n", err)
	default:
		fmt.Println(err)
	}
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
