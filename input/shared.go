// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package input

import "errors"

// ErrCommentNeedsWhitespace is returned by SkipWsToEOL when a `#` is found
// with no preceding whitespace on the current run: YAML requires comments
// to be separated from other tokens by whitespace.
var ErrCommentNeedsWhitespace = errors.New("comments must be separated from other tokens by whitespace")

func isBreakzRune(c rune) bool {
	return c == '\n' || c == '\r' || c == 0
}

// skipWsToEOL is the shared SkipWsToEOL implementation used by both Input
// implementations. It only relies on the public Input methods, so there is
// no efficiency loss in sharing it: both implementations' Peek/Skip are
// already O(1).
func skipWsToEOL(in Input, policy SkipTabsPolicy) (int, SkipResult, error) {
	var consumed int
	var result SkipResult
	for {
		in.Lookahead(1)
		c := in.Peek()
		switch {
		case c == ' ':
			result.HasYAMLWhitespace = true
			in.Skip()
			consumed++
		case c == '\t' && policy == SkipTabsYes:
			result.HasYAMLWhitespace = true
			result.EncounteredTab = true
			in.Skip()
			consumed++
		case c == '#':
			if consumed == 0 {
				return consumed, result, ErrCommentNeedsWhitespace
			}
			for {
				in.Lookahead(1)
				if isBreakzRune(in.Peek()) {
					break
				}
				in.Skip()
				consumed++
			}
			return consumed, result, nil
		default:
			return consumed, result, nil
		}
	}
}
