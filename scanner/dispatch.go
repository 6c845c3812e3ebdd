// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"github.com/saphyr-go/yamlcore/input"
	"github.com/saphyr-go/yamlcore/token"
)

// fetchNextToken skips inter-token whitespace, stales obsolete simple keys,
// unrolls the indent stack to the current column, then looks at the next
// character(s) to decide what to scan.
func (s *Scanner) fetchNextToken() error {
	s.in.Lookahead(1)
	if !s.streamStartProduced {
		s.fetchStreamStart()
		return nil
	}

	if err := s.skipToNextToken(); err != nil {
		return err
	}
	if err := s.staleSimpleKeys(); err != nil {
		return err
	}
	s.unrollIndent(s.mark.Column)

	s.in.Lookahead(4)

	if s.in.Peek() == 0 {
		return s.fetchStreamEnd()
	}

	if s.mark.Column == 0 {
		if s.in.Peek() == '%' {
			return s.fetchDirective()
		}
		if s.in.NextIsDocumentStart() {
			return s.fetchDocumentIndicator(token.DocumentStart)
		}
		if s.in.NextIsDocumentEnd() {
			return s.fetchDocumentIndicator(token.DocumentEnd)
		}
	}

	if s.isWithinBlock() && s.leadingWhitespace && s.mark.Column < s.indent {
		return newError(s.mark, "invalid indentation")
	}

	c := s.in.Peek()
	nc := s.in.PeekNth(1)

	switch {
	case c == '[':
		return s.fetchFlowCollectionStart(token.FlowSequenceStart)
	case c == '{':
		return s.fetchFlowCollectionStart(token.FlowMappingStart)
	case c == ']':
		return s.fetchFlowCollectionEnd(token.FlowSequenceEnd)
	case c == '}':
		return s.fetchFlowCollectionEnd(token.FlowMappingEnd)
	case c == ',':
		return s.fetchFlowEntry()
	case c == '-' && isBlankOrBreakz(nc):
		return s.fetchBlockEntry()
	case c == '?' && (s.flowLevel > 0 || isBlankOrBreakz(nc)):
		return s.fetchKey()
	case c == ':' && (isBlankOrBreakz(nc) ||
		(s.flowLevel > 0 && (s.mark.Index == s.adjacentValueAllowedAt || isFlow(nc)))):
		if s.flowLevel > 0 {
			return s.fetchFlowValue()
		}
		return s.fetchValue()
	case c == '*':
		return s.fetchAnchor(true)
	case c == '&':
		return s.fetchAnchor(false)
	case c == '!':
		return s.fetchTag()
	case c == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(true)
	case c == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(false)
	case c == '\'':
		return s.fetchFlowScalar(true)
	case c == '"':
		return s.fetchFlowScalar(false)
	case c == '%' || c == '@' || c == '`':
		return newErrorf(s.mark, "character '%c' is reserved and cannot start a plain scalar", c)
	default:
		return s.fetchPlainScalar()
	}
}

// skipToNextToken consumes inter-token whitespace and comments. In block
// context a tab used as indentation (current column < indent, no preceding
// non-whitespace on this line) is an error.
func (s *Scanner) skipToNextToken() error {
	for {
		s.in.Lookahead(1)
		if s.isWithinBlock() && s.leadingWhitespace && s.mark.Column < s.indent && s.in.Peek() == '\t' {
			if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
				return s.wrap(err)
			}
			if !isBreakz(s.in.Peek()) {
				return newError(s.mark, "tabs disallowed within this context (block indentation)")
			}
			continue
		}
		switch {
		case s.in.Peek() == ' ' || s.in.Peek() == '\t':
			s.skipBlank()
		case s.in.Peek() == '\n' || s.in.Peek() == '\r':
			s.in.Lookahead(2)
			s.skipLinebreak()
			if s.flowLevel == 0 {
				s.allowSimpleKey()
			}
		case s.in.Peek() == '#':
			for !isBreakz(s.in.Peek()) {
				s.skipNonBlank()
				s.in.Lookahead(1)
			}
		default:
			return nil
		}
	}
}

func (s *Scanner) skipYAMLWhitespace() error {
	_, result, err := s.in.SkipWsToEOL(input.SkipTabsYes)
	if err != nil {
		return s.wrap(err)
	}
	if !result.HasValidYAMLWS() {
		return newError(s.mark, "expected whitespace")
	}
	return nil
}

// wrap turns a low-level input error (which carries no position) into a
// scanner Error at the current cursor.
func (s *Scanner) wrap(err error) error {
	if err == nil {
		return nil
	}
	return newError(s.mark, err.Error())
}

func (s *Scanner) fetchStreamStart() {
	s.indent = -1
	s.push(token.New(token.EmptySpan(s.mark), token.StreamStart))
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	s.streamStartProduced = true
}

func (s *Scanner) fetchStreamEnd() error {
	if s.mark.Column != 0 {
		s.mark.Column = 0
		s.mark.Line++
	}
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()
	s.push(token.New(token.EmptySpan(s.mark), token.StreamEnd))
	return nil
}

func (s *Scanner) fetchDocumentIndicator(kind token.Kind) error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()
	start := s.mark
	s.skipNNonBlank(3)
	s.push(token.New(token.NewSpan(start, s.mark), kind))
	return nil
}

func (s *Scanner) fetchFlowCollectionStart(kind token.Kind) error {
	s.saveSimpleKey()
	s.rollOneColIndent()
	if err := s.increaseFlowLevel(); err != nil {
		return err
	}
	s.allowSimpleKey()
	start := s.mark
	s.skipNonBlank()
	if kind == token.FlowMappingStart {
		s.flowMappingStarted = true
	} else {
		s.implicitFlowMappingStates = append(s.implicitFlowMappingStates, implicitMappingPossible)
	}
	if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
		return s.wrap(err)
	}
	s.push(token.New(token.NewSpan(start, s.mark), kind))
	return nil
}

func (s *Scanner) fetchFlowCollectionEnd(kind token.Kind) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.decreaseFlowLevel()
	s.disallowSimpleKey()
	start := s.mark
	if kind == token.FlowSequenceEnd {
		s.endImplicitMapping(s.mark)
		if n := len(s.implicitFlowMappingStates); n > 0 {
			s.implicitFlowMappingStates = s.implicitFlowMappingStates[:n-1]
		}
	}
	s.skipNonBlank()
	if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
		return s.wrap(err)
	}
	if s.flowLevel > 0 {
		s.adjacentValueAllowedAt = s.mark.Index
	}
	s.push(token.New(token.NewSpan(start, s.mark), kind))
	return nil
}

func (s *Scanner) fetchFlowEntry() error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.allowSimpleKey()
	s.endImplicitMapping(s.mark)
	start := s.mark
	s.skipNonBlank()
	if _, _, err := s.in.SkipWsToEOL(input.SkipTabsYes); err != nil {
		return s.wrap(err)
	}
	s.push(token.New(token.NewSpan(start, s.mark), token.FlowEntry))
	return nil
}

func (s *Scanner) fetchBlockEntry() error {
	start := s.mark
	if s.flowLevel > 0 {
		return newError(s.mark, "'-' is only valid inside a block")
	}
	if !s.simpleKeyAllowed {
		return newError(s.mark, "block sequence entries are not allowed in this context")
	}
	s.rollIndent(s.mark.Column, nil, token.BlockSequenceStart, s.mark)
	s.skipNonBlank()
	_, result, err := s.in.SkipWsToEOL(input.SkipTabsYes)
	if err != nil {
		return s.wrap(err)
	}
	if result.FoundTabs() {
		s.in.Lookahead(2)
		if s.in.Peek() == '-' && isBlankOrBreakz(s.in.PeekNth(1)) {
			return newError(s.mark, "'-' must be followed by a valid YAML whitespace")
		}
	}
	s.in.Lookahead(1)
	if isBreakz(s.in.Peek()) || isFlow(s.in.Peek()) {
		s.rollOneColIndent()
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.allowSimpleKey()
	s.push(token.New(token.EmptySpan(start), token.BlockEntry))
	return nil
}

func (s *Scanner) fetchKey() error {
	start := s.mark
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			return newError(s.mark, "mapping keys are not allowed in this context")
		}
		s.rollIndent(start.Column, nil, token.BlockMappingStart, start)
	} else {
		s.flowMappingStarted = true
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	if s.flowLevel == 0 {
		s.allowSimpleKey()
	} else {
		s.disallowSimpleKey()
	}
	s.skipNonBlank()
	if err := s.skipYAMLWhitespace(); err != nil {
		return err
	}
	if s.in.Peek() == '\t' {
		return newError(s.mark, "tabs disallowed in this context")
	}
	s.push(token.New(token.NewSpan(start, s.mark), token.Key))
	return nil
}

func (s *Scanner) fetchFlowValue() error {
	nc := s.in.PeekNth(1)
	if s.mark.Index != s.adjacentValueAllowedAt && (nc == '[' || nc == '{') {
		return newError(s.mark, "':' may not precede any of `[{` in flow mapping")
	}
	return s.fetchValue()
}

func (s *Scanner) fetchValue() error {
	sk := s.simpleKeys[len(s.simpleKeys)-1]
	start := s.mark
	isImplicitFlowMapping := len(s.implicitFlowMappingStates) > 0 && !s.flowMappingStarted
	if isImplicitFlowMapping {
		s.implicitFlowMappingStates[len(s.implicitFlowMappingStates)-1] = implicitMappingInside
	}

	s.skipNonBlank()
	if s.in.LookCh() == '\t' {
		_, result, err := s.in.SkipWsToEOL(input.SkipTabsYes)
		if err != nil {
			return s.wrap(err)
		}
		if !result.HasValidYAMLWS() && (s.in.Peek() == '-' || isAlpha(s.in.Peek())) {
			return newError(s.mark, "':' must be followed by a valid YAML whitespace")
		}
	}

	if sk.possible {
		tok := token.New(token.EmptySpan(sk.mark), token.Key)
		s.insertToken(sk.tokenNumber-s.tokensParsed, tok)
		if isImplicitFlowMapping {
			if sk.mark.Line < start.Line {
				return newError(start, "illegal placement of ':' indicator")
			}
			s.insertToken(sk.tokenNumber-s.tokensParsed, token.New(token.EmptySpan(sk.mark), token.FlowMappingStart))
		}
		n := sk.tokenNumber
		s.rollIndent(sk.mark.Column, &n, token.BlockMappingStart, sk.mark)
		s.rollOneColIndent()
		s.simpleKeys[len(s.simpleKeys)-1].possible = false
		s.disallowSimpleKey()
	} else {
		if isImplicitFlowMapping {
			s.push(token.New(token.EmptySpan(start), token.FlowMappingStart))
		}
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				return newError(start, "mapping values are not allowed in this context")
			}
			s.rollIndent(start.Column, nil, token.BlockMappingStart, start)
		}
		s.rollOneColIndent()
		if s.flowLevel == 0 {
			s.allowSimpleKey()
		} else {
			s.disallowSimpleKey()
		}
	}
	s.push(token.New(token.EmptySpan(start), token.Value))
	return nil
}
