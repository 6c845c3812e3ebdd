// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"strings"

	"github.com/saphyr-go/yamlcore/input"
	"github.com/saphyr-go/yamlcore/token"
)

// fetchDirective scans a %YAML or %TAG directive line. The scanner only
// tokenizes the directive; resolving %TAG handles against shorthand tags
// later in the document is the parser's job.
func (s *Scanner) fetchDirective() error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()
	tok, err := s.scanDirective()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanDirective() (token.Token, error) {
	start := s.mark
	s.skipNonBlank()

	name, err := s.scanDirectiveName()
	if err != nil {
		return token.Token{}, err
	}

	var tok token.Token
	switch name {
	case "YAML":
		tok, err = s.scanVersionDirectiveValue(start)
	case "TAG":
		tok, err = s.scanTagDirectiveValue(start)
	default:
		// Unknown directive names are not an error: the rest of the line is
		// discarded and an empty TagDirective token is produced, for forward
		// compatibility with directives this scanner does not yet know
		// about.
		s.skipDirectiveGarbage()
		tok = token.NewTagDirective(token.NewSpan(start, s.mark), "", "")
	}
	if err != nil {
		return token.Token{}, err
	}

	if err := s.skipWsToEOLDiscardingComment(); err != nil {
		return token.Token{}, err
	}
	s.in.Lookahead(2)
	if !isBreakz(s.in.Peek()) {
		return token.Token{}, newError(start, "while scanning a directive, did not find expected comment or line break")
	}
	if isBreak(s.in.Peek()) {
		s.skipLinebreak()
	}
	return tok, nil
}

func (s *Scanner) scanDirectiveName() (string, error) {
	start := s.mark
	var buf strings.Builder
	s.in.Lookahead(1)
	for isAlpha(s.in.Peek()) {
		buf.WriteRune(s.in.Peek())
		s.skipNonBlank()
		s.in.Lookahead(1)
	}
	if buf.Len() == 0 {
		return "", newError(start, "expected directive name")
	}
	if !isBlankOrBreakz(s.in.Peek()) {
		return "", newError(s.mark, "expected alphabetic character in directive name")
	}
	return buf.String(), nil
}

// skipDirectiveGarbage discards the remainder of an unrecognized directive
// line without validating its content.
func (s *Scanner) skipDirectiveGarbage() {
	s.in.Lookahead(1)
	for !isBreakz(s.in.Peek()) {
		s.skipNonBlank()
		s.in.Lookahead(1)
	}
}

func (s *Scanner) scanVersionDirectiveValue(start token.Marker) (token.Token, error) {
	if err := s.skipYAMLWhitespace(); err != nil {
		return token.Token{}, err
	}
	major, err := s.scanVersionDirectiveNumber()
	if err != nil {
		return token.Token{}, err
	}
	s.in.Lookahead(1)
	if s.in.Peek() != '.' {
		return token.Token{}, newError(s.mark, "expected a digit or '.' character")
	}
	s.skipNonBlank()
	minor, err := s.scanVersionDirectiveNumber()
	if err != nil {
		return token.Token{}, err
	}
	tok := token.NewVersionDirective(token.NewSpan(start, s.mark), major, minor)
	return tok, nil
}

func (s *Scanner) scanVersionDirectiveNumber() (int, error) {
	start := s.mark
	value := 0
	length := 0
	s.in.Lookahead(1)
	for isDigit(s.in.Peek()) {
		length++
		if length > 9 {
			return 0, newError(start, "found extremely long version number")
		}
		value = value*10 + int(s.in.Peek()-'0')
		s.skipNonBlank()
		s.in.Lookahead(1)
	}
	if length == 0 {
		return 0, newError(start, "expected a digit")
	}
	return value, nil
}

func (s *Scanner) scanTagDirectiveValue(start token.Marker) (token.Token, error) {
	if err := s.skipYAMLWhitespace(); err != nil {
		return token.Token{}, err
	}
	handle, err := s.scanTagHandle(true, start)
	if err != nil {
		return token.Token{}, err
	}
	if err := s.skipYAMLWhitespace(); err != nil {
		return token.Token{}, err
	}
	prefix, err := s.scanTagPrefix(start)
	if err != nil {
		return token.Token{}, err
	}
	s.in.Lookahead(1)
	if !isBlankOrBreakz(s.in.Peek()) {
		return token.Token{}, newError(s.mark, "expected whitespace or line break")
	}
	return token.NewTagDirective(token.NewSpan(start, s.mark), handle, prefix), nil
}

// skipWsToEOLDiscardingComment checks that a trailing comment is introduced
// by whitespace; the scanner treats a bare '#' after a directive value as a
// comment only if preceded by whitespace, per YAML spec 6.6.2.
func (s *Scanner) skipWsToEOLDiscardingComment() error {
	_, _, err := s.in.SkipWsToEOL(input.SkipTabsYes)
	if err == input.ErrCommentNeedsWhitespace {
		return newError(s.mark, "comment must be separated from other tokens by whitespace")
	}
	return s.wrap(err)
}
