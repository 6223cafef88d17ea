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
package compiler

import (
	"fmt"

	"github.com/consensys/go-banjo/pkg/banjo/ast"
	"github.com/pkg/errors"
)

// TranslationError reports an ill-formed program.  It is the user's fault,
// and carries the offending term where one is known.
type TranslationError struct {
	msg  string
	term ast.Term
}

// UnsupportedError reports a construct which this compiler does not (yet)
// handle.  It is never the user's fault.
type UnsupportedError struct {
	construct string
}

// NewTranslationError constructs a translation error for a given term (which
// may be nil).
func NewTranslationError(term ast.Term, format string, args ...any) error {
	return &TranslationError{fmt.Sprintf(format, args...), term}
}

// NewUnsupportedError constructs an error for an unsupported construct,
// recording the stack at the point the gap was hit.
func NewUnsupportedError(format string, args ...any) error {
	return errors.WithStack(&UnsupportedError{fmt.Sprintf(format, args...)})
}

func (e *TranslationError) Error() string { return e.msg }

// Term returns the offending term, or nil.
func (e *TranslationError) Term() ast.Term { return e.term }

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s", e.construct)
}

// Construct names the construct which is not supported.
func (e *UnsupportedError) Construct() string { return e.construct }

// IsTranslationError determines whether an error (or any error it wraps) is
// a translation error.
func IsTranslationError(err error) bool {
	var target *TranslationError
	return errors.As(err, &target)
}

// IsUnsupported determines whether an error (or any error it wraps) reports
// an unsupported construct.
func IsUnsupported(err error) bool {
	var target *UnsupportedError
	return errors.As(err, &target)
}
