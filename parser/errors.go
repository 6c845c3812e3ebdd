// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"

	"github.com/saphyr-go/yamlcore/token"
)

// Error is a structural error raised while parsing events out of a token
// stream. Once one is produced, the Parser is terminal: all further calls to
// Next return the same Error.
//
// The optional context mark/message let the parser report two-point errors
// like "while parsing a flow sequence, did not find expected ',' or ']'",
// where the scanner's narrower scanner.Error has no equivalent need.
type Error struct {
	ContextMark    token.Marker
	ContextMessage string

	Mark    token.Marker
	Message string
}

func (e *Error) Error() string {
	if e.ContextMessage != "" {
		return fmt.Sprintf("%s at %s: %s at %s", e.ContextMessage, e.ContextMark, e.Message, e.Mark)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Mark)
}

func newError(mark token.Marker, message string) *Error {
	return &Error{Mark: mark, Message: message}
}

func newErrorContext(contextMessage string, contextMark token.Marker, message string, mark token.Marker) *Error {
	return &Error{
		ContextMessage: contextMessage,
		ContextMark:    contextMark,
		Message:        message,
		Mark:           mark,
	}
}
