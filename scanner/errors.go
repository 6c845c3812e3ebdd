// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"fmt"

	"github.com/saphyr-go/yamlcore/token"
)

// Error is a lexical error raised while scanning. Once one is produced, the
// Scanner is terminal: all further calls to Next return the same Error.
//
// Unlike the parser's Error, a scanner Error carries a single mark rather
// than a context/problem pair: the scanner never needs to report "while
// parsing X, found Y elsewhere" — only "found Y here".
type Error struct {
	Mark    token.Marker
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Mark)
}

func newError(mark token.Marker, message string) *Error {
	return &Error{Mark: mark, Message: message}
}

func newErrorf(mark token.Marker, format string, args ...any) *Error {
	return &Error{Mark: mark, Message: fmt.Sprintf(format, args...)}
}
