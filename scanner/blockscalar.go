// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"strings"

	"github.com/saphyr-go/yamlcore/token"
)

// fetchBlockScalar scans a `|` (literal) or `>` (folded) block scalar.
func (s *Scanner) fetchBlockScalar(literal bool) error {
	s.saveSimpleKey()
	s.allowSimpleKey()

	tok, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanBlockScalar(literal bool) (token.Token, error) {
	headerMark := s.mark
	chomping := ChompClip
	increment := 0
	indent := 0
	leadingBlank := false

	style := token.Literal
	if !literal {
		style = token.Folded
	}

	var buf, leadingBreak, trailingBreaks, chompingBreak strings.Builder

	s.skipNonBlank() // '|' or '>'
	s.unrollNonBlockIndents()

	s.in.Lookahead(1)
	if s.in.Peek() == '+' || s.in.Peek() == '-' {
		if s.in.Peek() == '+' {
			chomping = ChompKeep
		} else {
			chomping = ChompStrip
		}
		s.skipNonBlank()
		s.in.Lookahead(1)
		if isDigit(s.in.Peek()) {
			if s.in.Peek() == '0' {
				return token.Token{}, newError(headerMark, "while scanning a block scalar, found an indentation indicator equal to 0")
			}
			increment = int(s.in.Peek() - '0')
			s.skipNonBlank()
		}
	} else if isDigit(s.in.Peek()) {
		if s.in.Peek() == '0' {
			return token.Token{}, newError(headerMark, "while scanning a block scalar, found an indentation indicator equal to 0")
		}
		increment = int(s.in.Peek() - '0')
		s.skipNonBlank()
		s.in.Lookahead(1)
		if s.in.Peek() == '+' || s.in.Peek() == '-' {
			if s.in.Peek() == '+' {
				chomping = ChompKeep
			} else {
				chomping = ChompStrip
			}
			s.skipNonBlank()
		}
	}

	if err := s.skipWsToEOLDiscardingComment(); err != nil {
		return token.Token{}, err
	}

	s.in.Lookahead(1)
	if !isBreakz(s.in.Peek()) {
		return token.Token{}, newError(headerMark, "while scanning a block scalar, did not find expected comment or line break")
	}
	if isBreak(s.in.Peek()) {
		s.in.Lookahead(2)
		s.readBreak(&chompingBreak)
	}

	if s.in.LookCh() == '\t' {
		return token.Token{}, newError(headerMark, "a block scalar content cannot start with a tab")
	}

	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	if indent == 0 {
		s.skipBlockScalarFirstLineIndent(&indent, &trailingBreaks)
	} else {
		s.skipBlockScalarIndent(indent, &trailingBreaks)
	}

	// End of stream with no content, e.g. "- |+" at EOF.
	if isZ(s.in.Peek()) {
		var contents string
		switch {
		case chomping == ChompStrip:
			contents = ""
		case s.mark.Line == headerMark.Line:
			contents = ""
		case chomping == ChompClip:
			contents = chompingBreak.String()
		case chomping == ChompKeep && trailingBreaks.Len() == 0:
			contents = chompingBreak.String()
		default:
			contents = trailingBreaks.String()
		}
		return token.NewScalar(token.NewSpan(headerMark, s.mark), style, contents), nil
	}

	if s.mark.Column < indent && s.mark.Column > s.indent {
		return token.Token{}, newError(s.mark, "wrongly indented line in block scalar")
	}

	var lineBuf strings.Builder
	contentMark := s.mark
	for s.mark.Column == indent && !isZ(s.in.Peek()) {
		if indent == 0 {
			s.in.Lookahead(4)
			if s.in.NextIsDocumentEnd() {
				break
			}
		}

		trailingBlank := isBlank(s.in.Peek())
		if !literal && leadingBreak.Len() > 0 && !leadingBlank && !trailingBlank {
			buf.WriteString(trailingBreaks.String())
			if trailingBreaks.Len() == 0 {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(leadingBreak.String())
			buf.WriteString(trailingBreaks.String())
		}
		leadingBreak.Reset()
		trailingBreaks.Reset()

		leadingBlank = isBlank(s.in.Peek())

		s.scanBlockScalarContentLine(&buf, &lineBuf)

		s.in.Lookahead(2)
		if isZ(s.in.Peek()) {
			break
		}

		s.readBreak(&leadingBreak)
		s.skipBlockScalarIndent(indent, &trailingBreaks)
	}

	if chomping != ChompStrip {
		buf.WriteString(leadingBreak.String())
		if isZ(s.in.Peek()) && s.mark.Column >= max(indent, 1) {
			buf.WriteByte('\n')
		}
	}
	if chomping == ChompKeep {
		buf.WriteString(trailingBreaks.String())
	}

	return token.NewScalar(token.NewSpan(contentMark, s.mark), style, buf.String()), nil
}

// scanBlockScalarContentLine appends the remainder of the current line
// (stopping at a line break or EOF) to buf. It does not consume the break.
func (s *Scanner) scanBlockScalarContentLine(buf, lineBuf *strings.Builder) {
	for !s.in.BufIsEmpty() && !isBreakz(s.in.Peek()) {
		buf.WriteRune(s.in.Peek())
		s.skipBlank()
	}
	if s.in.BufIsEmpty() {
		for {
			c := s.in.RawReadCh()
			if isBreakz(c) {
				if c != 0 {
					s.in.PushBack(c)
				}
				break
			}
			lineBuf.WriteRune(c)
		}
		n := 0
		for range lineBuf.String() {
			n++
		}
		s.mark.Column += n
		s.mark.Index += n
		buf.WriteString(lineBuf.String())
		lineBuf.Reset()
	}
}

// skipBlockScalarIndent consumes up to indent leading spaces (tabs are never
// indentation) on each line, folding any wholly blank lines into breaks.
func (s *Scanner) skipBlockScalarIndent(indent int, breaks *strings.Builder) {
	for {
		if indent < s.in.Bufmaxlen()-2 {
			s.in.Lookahead(s.in.Bufmaxlen())
			for s.mark.Column < indent && s.in.Peek() == ' ' {
				s.skipBlank()
			}
		} else {
			for {
				s.in.Lookahead(s.in.Bufmaxlen())
				for !s.in.BufIsEmpty() && s.mark.Column < indent && s.in.Peek() == ' ' {
					s.skipBlank()
				}
				if s.mark.Column == indent || (!s.in.BufIsEmpty() && s.in.Peek() != ' ') {
					break
				}
			}
			s.in.Lookahead(2)
		}

		if isBreak(s.in.Peek()) {
			s.readBreak(breaks)
		} else {
			break
		}
	}
}

// skipBlockScalarFirstLineIndent determines the content indent from the
// first non-blank line when no indentation indicator was given.
func (s *Scanner) skipBlockScalarFirstLineIndent(indent *int, breaks *strings.Builder) {
	maxIndent := 0
	for {
		s.in.Lookahead(1)
		for s.in.LookCh() == ' ' {
			s.skipBlank()
		}
		if s.mark.Column > maxIndent {
			maxIndent = s.mark.Column
		}
		if isBreak(s.in.Peek()) {
			s.in.Lookahead(2)
			s.readBreak(breaks)
		} else {
			break
		}
	}

	*indent = max(maxIndent, s.indent+1)
	if s.indent > 0 {
		*indent = max(*indent, 1)
	}
}
