// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package scanner implements the YAML lexical scanner: it turns an
// input.Input character stream into a sequence of token.Token values.
//
// The scanner is pull-based: each call to Next either emits one token,
// reports end of stream, or reports a terminal error. No recovery is
// attempted after an error: every call after the first error returns that
// same error again (not io.EOF), and every call after StreamEnd has been
// returned returns io.EOF.
package scanner

import (
	"io"
	"strings"

	"github.com/saphyr-go/yamlcore/input"
	"github.com/saphyr-go/yamlcore/token"
)

// Scanner produces a sequence of tokens from an input.Input.
type Scanner struct {
	in   input.Input
	mark token.Marker

	tokens         []token.Token
	tokensParsed   int
	tokenAvailable bool

	err *Error

	streamStartProduced bool
	streamEndProduced   bool

	adjacentValueAllowedAt int

	simpleKeyAllowed bool
	simpleKeys       []simpleKey

	indent  int
	indents []indentEntry

	flowLevel uint8

	leadingWhitespace bool

	flowMappingStarted         bool
	implicitFlowMappingStates  []implicitMappingState

	bufLeadingBreak   strings.Builder
	bufTrailingBreaks strings.Builder
	bufWhitespaces    strings.Builder
}

// New creates a Scanner reading from an arbitrary input.Input.
func New(in input.Input) *Scanner {
	s := &Scanner{
		in:                in,
		mark:              token.NewMarker(0, 1, 0),
		indent:            -1,
		simpleKeyAllowed:  true,
		leadingWhitespace: true,
	}
	return s
}

// NewFromString creates a Scanner over a fully buffered string. The string
// is copied into a rune slice up front, and scalar values are assembled into
// freshly allocated strings; they never share the string's backing storage.
func NewFromString(s string) *Scanner {
	return New(input.NewStringInput(s))
}

// NewFromReader creates a Scanner over a streaming io.Reader. Scalar text is
// always assembled into a freshly allocated string.
func NewFromReader(r io.Reader) *Scanner {
	return New(input.NewIterInput(input.NewReaderSource(r)))
}

// Err returns the terminal error, if the scanner has stopped because of one.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Next produces the next token. It returns io.EOF once StreamEnd has already
// been produced, or the terminal scan Error if one has occurred (on every
// call after the first).
func (s *Scanner) Next() (token.Token, error) {
	if s.err != nil {
		return token.Token{}, s.err
	}
	tok, err := s.nextToken()
	if err != nil {
		s.err = err.(*Error)
		return token.Token{}, s.err
	}
	if tok == nil {
		return token.Token{}, io.EOF
	}
	return *tok, nil
}

func (s *Scanner) mustFail(err *Error) (*token.Token, error) {
	return nil, err
}

// nextToken pops the token at the front of the pending queue, fetching more
// if necessary. It returns (nil, nil) once stream-end has already been
// popped by a previous call.
func (s *Scanner) nextToken() (*token.Token, error) {
	if s.streamEndProduced {
		return nil, nil
	}
	if !s.tokenAvailable {
		if err := s.fetchMoreTokens(); err != nil {
			return s.mustFail(err.(*Error))
		}
	}
	if len(s.tokens) == 0 {
		return nil, newError(s.mark, "did not find expected next token")
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	s.tokensParsed++
	s.tokenAvailable = false
	if tok.Kind == token.StreamEnd {
		s.streamEndProduced = true
	}
	return &tok, nil
}

func (s *Scanner) fetchMoreTokens() error {
	for {
		if len(s.tokens) == 0 {
			if err := s.fetchNextToken(); err != nil {
				return err
			}
			continue
		}
		if s.tokens[len(s.tokens)-1].Kind == token.StreamEnd {
			// Nothing can follow StreamEnd, so no pending simple key can
			// still be resolved by fetching further.
			break
		}
		if err := s.staleSimpleKeys(); err != nil {
			return err
		}
		needMoreTokens := false
		for i := range s.simpleKeys {
			sk := &s.simpleKeys[i]
			if sk.possible && sk.tokenNumber == s.tokensParsed {
				needMoreTokens = true
				break
			}
		}
		if !needMoreTokens {
			break
		}
		if err := s.fetchNextToken(); err != nil {
			return err
		}
	}
	s.tokenAvailable = true
	return nil
}

// insertToken inserts tok at position pos in the pending queue (0 meaning
// the current head; a negative pos, or one at or past the tail, appends).
// pos is relative to the current head of the queue (tokensParsed already
// subtracted by the caller).
//
// The pending queue is a plain slice rather than a fixed-capacity backing
// array, so insertion is a straightforward slice insert with no
// head-compaction bookkeeping required.
func (s *Scanner) insertToken(pos int, tok token.Token) {
	if pos < 0 || pos >= len(s.tokens) {
		s.tokens = append(s.tokens, tok)
		return
	}
	s.tokens = append(s.tokens, token.Token{})
	copy(s.tokens[pos+1:], s.tokens[pos:])
	s.tokens[pos] = tok
}

func (s *Scanner) push(tok token.Token) {
	s.tokens = append(s.tokens, tok)
}

// --- cursor helpers -------------------------------------------------------

func (s *Scanner) curMark() token.Marker { return s.mark }

func (s *Scanner) skipBlank() {
	s.in.Skip()
	s.mark.Index++
	s.mark.Column++
}

func (s *Scanner) skipNonBlank() {
	s.in.Skip()
	s.mark.Index++
	s.mark.Column++
	s.leadingWhitespace = false
}

func (s *Scanner) skipNNonBlank(count int) {
	s.in.SkipN(count)
	s.mark.Index += count
	s.mark.Column += count
	s.leadingWhitespace = false
}

// skipLinebreak consumes one line break (CRLF, CR, or LF) and advances the
// cursor to the start of the next line.
func (s *Scanner) skipLinebreak() {
	if s.in.Next2Are('\r', '\n') {
		s.in.SkipN(2)
	} else {
		s.in.Skip()
	}
	s.mark.Index++
	s.mark.Line++
	s.mark.Column = 0
	s.leadingWhitespace = true
}

// skipBreak is an alias used where the call site only ever consumes a
// single-character logical break (plain/flow scalar folding).
func (s *Scanner) skipBreak() {
	s.skipLinebreak()
}

// readBreak consumes one line break and appends a normalized '\n' to buf.
func (s *Scanner) readBreak(buf *strings.Builder) {
	buf.WriteByte('\n')
	s.skipLinebreak()
}

func (s *Scanner) allowSimpleKey()    { s.simpleKeyAllowed = true }
func (s *Scanner) disallowSimpleKey() { s.simpleKeyAllowed = false }

// --- simple key bookkeeping ------------------------------------------------

func (s *Scanner) saveSimpleKey() {
	if !s.simpleKeyAllowed {
		return
	}
	required := s.flowLevel == 0 &&
		s.indent == s.mark.Column &&
		len(s.indents) > 0 && s.indents[len(s.indents)-1].needsBlockEnd
	sk := newSimpleKey(s.mark)
	sk.possible = true
	sk.required = required
	sk.tokenNumber = s.tokensParsed + len(s.tokens)
	if len(s.simpleKeys) > 0 {
		s.simpleKeys[len(s.simpleKeys)-1] = sk
	} else {
		s.simpleKeys = append(s.simpleKeys, sk)
	}
}

func (s *Scanner) removeSimpleKey() error {
	if len(s.simpleKeys) == 0 {
		return nil
	}
	last := &s.simpleKeys[len(s.simpleKeys)-1]
	if last.possible && last.required {
		return newError(s.mark, "simple key expected")
	}
	last.possible = false
	return nil
}

func (s *Scanner) staleSimpleKeys() error {
	for i := range s.simpleKeys {
		sk := &s.simpleKeys[i]
		if sk.possible && s.flowLevel == 0 &&
			(sk.mark.Line < s.mark.Line || sk.mark.Index+1024 < s.mark.Index) {
			if sk.required {
				return newError(s.mark, "simple key expect ':'")
			}
			sk.possible = false
		}
	}
	return nil
}

func (s *Scanner) increaseFlowLevel() error {
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	if s.flowLevel == 255 {
		return newError(s.mark, "recursion limit exceeded")
	}
	s.flowLevel++
	return nil
}

func (s *Scanner) decreaseFlowLevel() {
	if s.flowLevel > 0 {
		s.flowLevel--
		if len(s.simpleKeys) > 0 {
			s.simpleKeys = s.simpleKeys[:len(s.simpleKeys)-1]
		}
	}
}

// --- indentation management -------------------------------------------------

func (s *Scanner) rollIndent(col int, number *int, kind token.Kind, mark token.Marker) {
	if s.flowLevel > 0 {
		return
	}
	if s.indent <= col {
		if n := len(s.indents); n > 0 && !s.indents[n-1].needsBlockEnd {
			s.indent = s.indents[n-1].indent
			s.indents = s.indents[:n-1]
		}
	}
	if s.indent < col {
		s.indents = append(s.indents, indentEntry{indent: s.indent, needsBlockEnd: true})
		s.indent = col
		tok := token.New(token.EmptySpan(mark), kind)
		if number != nil {
			s.insertToken(*number-s.tokensParsed, tok)
		} else {
			s.push(tok)
		}
	}
}

func (s *Scanner) unrollIndent(col int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > col {
		n := len(s.indents)
		e := s.indents[n-1]
		s.indents = s.indents[:n-1]
		s.indent = e.indent
		if e.needsBlockEnd {
			s.push(token.New(token.EmptySpan(s.mark), token.BlockEnd))
		}
	}
}

func (s *Scanner) rollOneColIndent() {
	if s.flowLevel == 0 {
		if n := len(s.indents); n > 0 && s.indents[n-1].needsBlockEnd {
			s.indents = append(s.indents, indentEntry{indent: s.indent, needsBlockEnd: false})
			s.indent++
		}
	}
}

func (s *Scanner) unrollNonBlockIndents() {
	for {
		n := len(s.indents)
		if n == 0 || s.indents[n-1].needsBlockEnd {
			return
		}
		s.indent = s.indents[n-1].indent
		s.indents = s.indents[:n-1]
	}
}

func (s *Scanner) isWithinBlock() bool { return len(s.indents) > 0 }

func (s *Scanner) endImplicitMapping(mark token.Marker) {
	n := len(s.implicitFlowMappingStates)
	if n == 0 {
		return
	}
	if s.implicitFlowMappingStates[n-1] == implicitMappingInside {
		s.flowMappingStarted = false
		s.implicitFlowMappingStates[n-1] = implicitMappingPossible
		s.push(token.New(token.EmptySpan(mark), token.FlowMappingEnd))
	}
}
