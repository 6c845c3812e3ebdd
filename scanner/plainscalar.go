// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"strings"

	"github.com/saphyr-go/yamlcore/input"
	"github.com/saphyr-go/yamlcore/token"
)

// fetchPlainScalar scans an unquoted scalar. Plain scalars are the trickiest
// token the scanner produces: their end is decided by context-sensitive
// terminators rather than a delimiter, and folding/indentation rules mean a
// single token may span several lines.
func (s *Scanner) fetchPlainScalar() error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanPlainScalar()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanPlainScalar() (token.Token, error) {
	s.unrollNonBlockIndents()
	requiredIndent := s.indent + 1
	start := s.mark

	if s.flowLevel > 0 && start.Column < requiredIndent {
		return token.Token{}, newError(start, "invalid indentation in flow construct")
	}

	var buf strings.Builder
	s.bufWhitespaces.Reset()
	s.bufLeadingBreak.Reset()
	s.bufTrailingBreaks.Reset()
	end := s.mark

	for {
		s.in.Lookahead(4)
		if (s.leadingWhitespace && s.in.NextIsDocumentIndicator()) || s.in.Peek() == '#' {
			break
		}
		if s.flowLevel > 0 && s.in.Peek() == '-' && isFlow(s.in.PeekNth(1)) {
			return token.Token{}, newError(s.mark, "plain scalar cannot start with '-' followed by ,[]{}")
		}

		if !isBlankOrBreakz(s.in.Peek()) && s.in.NextCanBePlainScalar(s.flowLevel > 0) {
			s.flushPlainScalarWhitespace(&buf)

			buf.WriteRune(s.in.Peek())
			s.skipNonBlank()

			for {
				s.in.Lookahead(s.in.Bufmaxlen())
				stop := false
				for i := 0; i < s.in.Bufmaxlen()-1; i++ {
					if isBlankOrBreakz(s.in.Peek()) || !s.in.NextCanBePlainScalar(s.flowLevel > 0) {
						stop = true
						break
					}
					buf.WriteRune(s.in.Peek())
					s.skipNonBlank()
				}
				if stop {
					break
				}
			}
			end = s.mark
		}

		if !(isBlank(s.in.Peek()) || isBreak(s.in.Peek())) {
			break
		}

		s.in.Lookahead(2)
		for isBlank(s.in.Peek()) || isBreak(s.in.Peek()) {
			if isBlank(s.in.Peek()) {
				switch {
				case !s.leadingWhitespace:
					s.bufWhitespaces.WriteRune(s.in.Peek())
					s.skipBlank()
				case s.mark.Column < requiredIndent && s.in.Peek() == '\t':
					if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
						return token.Token{}, s.wrap(err)
					}
					if !isBreakz(s.in.Peek()) {
						return token.Token{}, newError(start, "while scanning a plain scalar, found a tab")
					}
				default:
					s.skipBlank()
				}
			} else {
				if s.leadingWhitespace {
					s.skipBreak()
					s.bufTrailingBreaks.WriteByte('\n')
				} else {
					s.bufWhitespaces.Reset()
					s.skipBreak()
					s.bufLeadingBreak.WriteByte('\n')
					s.leadingWhitespace = true
				}
			}
			s.in.Lookahead(2)
		}

		if s.flowLevel == 0 && s.mark.Column < requiredIndent {
			break
		}
	}

	if s.leadingWhitespace {
		s.allowSimpleKey()
	}

	if buf.Len() == 0 {
		// fetchPlainScalar must consume at least one byte, or fetchNextToken
		// would loop forever on malformed input like "{...".
		return token.Token{}, newError(start, "unexpected end of plain scalar")
	}
	return token.NewScalar(token.NewSpan(start, end), token.Plain, buf.String()), nil
}

// flushPlainScalarWhitespace flushes any pending folded line break or
// pending intra-line whitespace before appending the next non-blank run.
func (s *Scanner) flushPlainScalarWhitespace(buf *strings.Builder) {
	if s.leadingWhitespace {
		if s.bufLeadingBreak.Len() == 0 {
			buf.WriteString(s.bufLeadingBreak.String())
			buf.WriteString(s.bufTrailingBreaks.String())
			s.bufTrailingBreaks.Reset()
			s.bufLeadingBreak.Reset()
		} else {
			if s.bufTrailingBreaks.Len() == 0 {
				buf.WriteByte(' ')
			} else {
				buf.WriteString(s.bufTrailingBreaks.String())
				s.bufTrailingBreaks.Reset()
			}
			s.bufLeadingBreak.Reset()
		}
		s.leadingWhitespace = false
	} else if s.bufWhitespaces.Len() > 0 {
		buf.WriteString(s.bufWhitespaces.String())
		s.bufWhitespaces.Reset()
	}
}
