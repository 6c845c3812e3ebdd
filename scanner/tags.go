// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/saphyr-go/yamlcore/token"
)

// fetchTag scans a `!`, `!suffix`, `!handle!suffix`, or `!<verbatim>` tag
// property.
func (s *Scanner) fetchTag() error {
	s.saveSimpleKey()
	s.disallowSimpleKey()
	tok, err := s.scanTag()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanTag() (token.Token, error) {
	start := s.mark
	var handle, suffix string
	var err error

	s.in.Lookahead(2)
	if s.in.PeekNth(1) == '<' {
		suffix, err = s.scanVerbatimTag()
		if err != nil {
			return token.Token{}, err
		}
	} else {
		handle, err = s.scanTagHandle(false, start)
		if err != nil {
			return token.Token{}, err
		}
		// A handle of the form "!name!" (length >= 2, opening and closing
		// '!') is a genuine handle. Anything else was a speculative read:
		// the consumed run was actually the start of the shorthand suffix,
		// and the handle collapses to the primary "!" (or, if nothing
		// follows, the non-specific "!" tag with an empty handle).
		if len(handle) >= 2 && strings.HasPrefix(handle, "!") && strings.HasSuffix(handle, "!") {
			suffix, err = s.scanTagShorthandSuffix(start, "")
		} else {
			suffix, err = s.scanTagShorthandSuffix(start, handle)
			handle = "!"
			if suffix == "" {
				handle = ""
				suffix = "!"
			}
		}
		if err != nil {
			return token.Token{}, err
		}
	}

	s.in.Lookahead(1)
	if !isBlankOrBreakz(s.in.Peek()) && !isFlow(s.in.Peek()) {
		return token.Token{}, newError(s.mark, "expected whitespace or line break after tag")
	}

	return token.NewTag(token.NewSpan(start, s.mark), handle, suffix), nil
}

// scanTagHandle scans `!`, `!!`, or `!name!`. directive is true when called
// from a %TAG directive, where an unterminated handle is always an error.
// When directive is false, an unterminated run of word-chars is returned
// as-is (not an error) so the caller can reinterpret it as the start of a
// shorthand suffix (see scanTag).
func (s *Scanner) scanTagHandle(directive bool, start token.Marker) (string, error) {
	if s.in.Peek() != '!' {
		return "", newError(s.mark, "while scanning a tag, did not find expected '!'")
	}
	var buf strings.Builder
	buf.WriteRune('!')
	s.skipNonBlank()
	s.in.Lookahead(1)

	for isWordChar(s.in.Peek()) {
		buf.WriteRune(s.in.Peek())
		s.skipNonBlank()
		s.in.Lookahead(1)
	}

	if s.in.Peek() == '!' {
		buf.WriteRune('!')
		s.skipNonBlank()
	} else if directive && buf.String() != "!" {
		return "", newError(start, "while parsing a tag directive, did not find expected '!'")
	}
	return buf.String(), nil
}

func (s *Scanner) scanTagPrefix(start token.Marker) (string, error) {
	var buf strings.Builder
	s.in.Lookahead(1)
	if s.in.Peek() == '!' {
		buf.WriteRune('!')
		s.skipNonBlank()
		s.in.Lookahead(1)
	} else if !isURIChar(s.in.Peek()) {
		return "", newError(start, "expected '!' or a tag prefix")
	}
	for isURIChar(s.in.Peek()) {
		if s.in.Peek() == '%' {
			r, err := s.scanURIEscape()
			if err != nil {
				return "", err
			}
			buf.WriteRune(r)
		} else {
			buf.WriteRune(s.in.Peek())
			s.skipNonBlank()
		}
		s.in.Lookahead(1)
	}
	return buf.String(), nil
}

func (s *Scanner) scanVerbatimTag() (string, error) {
	start := s.mark
	s.skipNNonBlank(2) // '!<'
	var buf strings.Builder
	s.in.Lookahead(1)
	for s.in.Peek() != '>' {
		if isURIChar(s.in.Peek()) {
			if s.in.Peek() == '%' {
				r, err := s.scanURIEscape()
				if err != nil {
					return "", err
				}
				buf.WriteRune(r)
			} else {
				buf.WriteRune(s.in.Peek())
				s.skipNonBlank()
			}
		} else {
			return "", newError(s.mark, "found non-URI character in verbatim tag")
		}
		s.in.Lookahead(1)
	}
	if buf.Len() == 0 {
		return "", newError(start, "found empty verbatim tag")
	}
	s.skipNonBlank() // '>'
	return "!<" + buf.String() + ">", nil
}

// scanTagShorthandSuffix scans the suffix of a "!suffix" or "!handle!suffix"
// tag. head is the run scanTagHandle already consumed and misidentified as a
// candidate handle (including its leading '!', which is dropped); it is
// empty when scanTagHandle found a complete "!!" or "!name!" handle.
func (s *Scanner) scanTagShorthandSuffix(start token.Marker, head string) (string, error) {
	var buf strings.Builder
	length := len(head)
	if length > 1 {
		buf.WriteString(head[1:])
	}
	s.in.Lookahead(1)
	for isTagChar(s.in.Peek()) {
		if s.in.Peek() == '%' {
			r, err := s.scanURIEscape()
			if err != nil {
				return "", err
			}
			buf.WriteRune(r)
		} else {
			buf.WriteRune(s.in.Peek())
			s.skipNonBlank()
		}
		length++
		s.in.Lookahead(1)
	}
	if length == 0 {
		return "", newError(start, "did not find expected tag URI")
	}
	return buf.String(), nil
}

// scanURIEscape decodes one or more consecutive %XX percent-escapes into a
// single decoded rune. Multi-byte UTF-8 sequences are validated for the
// correct number of continuation bytes.
func (s *Scanner) scanURIEscape() (rune, error) {
	start := s.mark
	octets := make([]byte, 0, 4)
	for s.in.Peek() == '%' {
		s.skipNonBlank()
		s.in.Lookahead(2)
		hi, lo := s.in.Peek(), s.in.PeekNth(1)
		if !isHex(hi) || !isHex(lo) {
			return 0, newError(s.mark, "expected two hexadecimal digits after '%'")
		}
		octets = append(octets, byte(asHex(hi)<<4|asHex(lo)))
		s.skipNNonBlank(2)
		if len(octets) == 1 {
			width := utf8Width(octets[0])
			if width == 0 {
				return 0, newError(start, "found invalid UTF-8 leading byte")
			}
			if width > 1 {
				s.in.Lookahead(1)
				continue
			}
			break
		}
		want := utf8Width(octets[0])
		if len(octets) == want {
			break
		}
		s.in.Lookahead(1)
	}
	r, size := utf8.DecodeRune(octets)
	if r == utf8.RuneError || size != len(octets) {
		return 0, newError(start, "found invalid UTF-8 byte sequence in %-escape")
	}
	return r, nil
}

func utf8Width(lead byte) int {
	switch {
	case lead&0x80 == 0:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}
