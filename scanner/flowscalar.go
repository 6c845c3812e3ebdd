// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"strings"

	"github.com/saphyr-go/yamlcore/input"
	"github.com/saphyr-go/yamlcore/token"
)

// fetchFlowScalar scans a single- or double-quoted scalar.
func (s *Scanner) fetchFlowScalar(single bool) error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanFlowScalar(single)
	if err != nil {
		return err
	}

	// JSON compatibility: if a flow-mapping key is JSON-like (quoted), the
	// following ':' may be adjacent with no intervening whitespace. Only
	// same-line whitespace counts here: crossing a line break must not
	// grant adjacency, and must not go through skipToNextToken's newline
	// handling (which would re-allow a simple key mid-token).
	if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
		return s.wrap(err)
	}
	s.adjacentValueAllowedAt = s.mark.Index

	s.push(tok)
	return nil
}

func (s *Scanner) scanFlowScalar(single bool) (token.Token, error) {
	start := s.mark

	var buf strings.Builder
	var leadingBreak, trailingBreaks, whitespaces strings.Builder

	s.skipNonBlank() // opening quote

	for {
		s.in.Lookahead(4)

		if s.mark.Column == 0 && s.in.NextIsDocumentIndicator() {
			return token.Token{}, newError(start, "while scanning a quoted scalar, found unexpected document indicator")
		}
		if isZ(s.in.Peek()) {
			return token.Token{}, newError(start, "while scanning a quoted scalar, found unexpected end of stream")
		}
		if s.mark.Column < s.indent {
			break
		}

		leadingBlanks := false
		if err := s.consumeFlowScalarNonWhitespace(single, &buf, &leadingBlanks, start); err != nil {
			return token.Token{}, err
		}

		c := s.in.LookCh()
		if (single && c == '\'') || (!single && c == '"') {
			break
		}

		s.in.Lookahead(2)
		for isBlank(s.in.Peek()) || isBreak(s.in.Peek()) {
			if isBlank(s.in.Peek()) {
				if leadingBlanks {
					if s.in.Peek() == '\t' && s.mark.Column < s.indent {
						return token.Token{}, newError(s.mark, "tab cannot be used as indentation")
					}
					s.skipBlank()
				} else {
					whitespaces.WriteRune(s.in.Peek())
					s.skipBlank()
				}
			} else {
				s.in.Lookahead(2)
				if leadingBlanks {
					s.readBreak(&trailingBreaks)
				} else {
					whitespaces.Reset()
					s.readBreak(&leadingBreak)
					leadingBlanks = true
				}
			}
			s.in.Lookahead(1)
		}

		if leadingBlanks {
			if leadingBreak.Len() == 0 {
				buf.WriteString(leadingBreak.String())
				buf.WriteString(trailingBreaks.String())
				trailingBreaks.Reset()
				leadingBreak.Reset()
			} else {
				if trailingBreaks.Len() == 0 {
					buf.WriteByte(' ')
				} else {
					buf.WriteString(trailingBreaks.String())
					trailingBreaks.Reset()
				}
				leadingBreak.Reset()
			}
		} else {
			buf.WriteString(whitespaces.String())
			whitespaces.Reset()
		}
	}

	s.skipNonBlank() // closing quote

	if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
		return token.Token{}, s.wrap(err)
	}

	c := s.in.Peek()
	switch {
	case s.flowLevel > 0 && (c == ',' || c == '}' || c == ']'):
	case isBreakz(c):
	case c == ':' && s.flowLevel == 0 && start.Line == s.mark.Line:
	case c == ':' && s.flowLevel > 0:
	default:
		kind := "double-quoted"
		if single {
			kind = "single-quoted"
		}
		return token.Token{}, newErrorf(s.mark, "invalid trailing content after %s scalar", kind)
	}

	style := token.DoubleQuoted
	if single {
		style = token.SingleQuoted
	}
	return token.NewScalar(token.NewSpan(start, s.mark), style, buf.String()), nil
}

// consumeFlowScalarNonWhitespace reads successive non-blank characters of a
// flow scalar, resolving escape sequences as it goes. It stops at a blank,
// EOF, or the scalar's closing quote.
func (s *Scanner) consumeFlowScalarNonWhitespace(single bool, buf *strings.Builder, leadingBlanks *bool, start token.Marker) error {
	s.in.Lookahead(2)
	for !isBlankOrBreakz(s.in.Peek()) {
		switch {
		case s.in.Peek() == '\'' && s.in.PeekNth(1) == '\'' && single:
			buf.WriteByte('\'')
			s.skipNNonBlank(2)
		case s.in.Peek() == '\'' && single:
			return nil
		case s.in.Peek() == '"' && !single:
			return nil
		case s.in.Peek() == '\\' && !single && isBreak(s.in.PeekNth(1)):
			s.in.Lookahead(3)
			s.skipNonBlank()
			s.skipLinebreak()
			*leadingBlanks = true
			return nil
		case s.in.Peek() == '\\' && !single:
			r, err := s.resolveFlowScalarEscape(start)
			if err != nil {
				return err
			}
			buf.WriteRune(r)
		default:
			buf.WriteRune(s.in.Peek())
			s.skipNonBlank()
		}
		s.in.Lookahead(2)
	}
	return nil
}

// resolveFlowScalarEscape decodes the escape sequence starting at the `\`
// under the cursor in a double-quoted scalar.
func (s *Scanner) resolveFlowScalarEscape(start token.Marker) (rune, error) {
	var ret rune
	codeLength := 0

	switch s.in.PeekNth(1) {
	case '0':
		ret = 0
	case 'a':
		ret = '\a'
	case 'b':
		ret = '\b'
	case 't', '\t':
		ret = '\t'
	case 'n':
		ret = '\n'
	case 'v':
		ret = '\v'
	case 'f':
		ret = '\f'
	case 'r':
		ret = '\r'
	case 'e':
		ret = '\x1b'
	case ' ':
		ret = ' '
	case '"':
		ret = '"'
	case '/':
		ret = '/'
	case '\\':
		ret = '\\'
	case 'N':
		ret = '\u0085'
	case '_':
		ret = '\u00a0'
	case 'L':
		ret = '\u2028'
	case 'P':
		ret = '\u2029'
	case 'x':
		codeLength = 2
	case 'u':
		codeLength = 4
	case 'U':
		codeLength = 8
	default:
		return 0, newError(start, "while parsing a quoted scalar, found unknown escape character")
	}
	s.skipNNonBlank(2)

	if codeLength > 0 {
		s.in.Lookahead(codeLength)
		var value uint32
		for i := 0; i < codeLength; i++ {
			c := s.in.PeekNth(i)
			if !isHex(c) {
				return 0, newError(start, "while parsing a quoted scalar, did not find expected hexadecimal number")
			}
			value = value<<4 + asHex(c)
		}
		if !isValidUnicode(value) {
			return 0, newError(start, "while parsing a quoted scalar, found invalid Unicode character escape code")
		}
		ret = rune(value)
		s.skipNNonBlank(codeLength)
	}
	return ret, nil
}

func isValidUnicode(v uint32) bool {
	return v <= 0x10FFFF && !(v >= 0xD800 && v <= 0xDFFF)
}
