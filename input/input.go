// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package input provides character-level, lookahead-oriented access to a
// YAML source. Two implementations are provided: StringInput, over a fully
// materialized string, and IterInput, over a bounded ring buffer fed by a
// rune source.
package input

// SkipTabsPolicy controls whether skipWsToEOL consumes tab characters as
// part of inter-token whitespace.
type SkipTabsPolicy int8

const (
	// SkipTabsNo means tabs are not consumed; encountering one ends the
	// whitespace run.
	SkipTabsNo SkipTabsPolicy = iota
	// SkipTabsYes means tabs are consumed just like spaces.
	SkipTabsYes
)

// SkipResult reports what SkipWsToEOL observed while consuming whitespace.
type SkipResult struct {
	// EncounteredTab is true if at least one tab character was consumed.
	EncounteredTab bool
	// HasYAMLWhitespace is true if at least one space or tab was consumed.
	HasYAMLWhitespace bool
}

// FoundTabs reports whether a tab was encountered during the skip.
func (r SkipResult) FoundTabs() bool { return r.EncounteredTab }

// HasValidYAMLWS reports whether any whitespace at all was consumed.
func (r SkipResult) HasValidYAMLWS() bool { return r.HasYAMLWhitespace }

// Input is the character-level access abstraction the scanner reads from.
type Input interface {
	// Lookahead ensures the next count characters are available to Peek.
	// Past end-of-input, '\0' is returned for characters that don't exist.
	Lookahead(count int)
	// Buflen returns how many characters were most recently guaranteed by
	// Lookahead.
	Buflen() int
	// Bufmaxlen returns the implementation's internal buffer capacity; the
	// scanner uses this to decide between a fast and a slow path in a few
	// places (see scanner.skipBlockScalarIndent).
	Bufmaxlen() int
	// BufIsEmpty reports whether Buflen() == 0.
	BufIsEmpty() bool
	// RawReadCh consumes and returns one character, bypassing any internal
	// buffer accounting. Used in tight inner loops over scalar bodies.
	RawReadCh() rune
	// PushBack returns one character to the front of the stream. Must be
	// called at most once consecutively, and only with the character most
	// recently read.
	PushBack(c rune)
	// Skip advances one character without returning it.
	Skip()
	// SkipN advances count characters without returning them.
	SkipN(count int)
	// Peek inspects the character at offset 0 without consuming it.
	Peek() rune
	// PeekNth inspects the character at offset n without consuming it.
	PeekNth(n int) rune
	// LookCh ensures one character of lookahead and returns it.
	LookCh() rune
	// NextCharIs reports whether Peek() == c.
	NextCharIs(c rune) bool
	// NthCharIs reports whether PeekNth(n) == c.
	NthCharIs(n int, c rune) bool
	// Next2Are reports whether the next two characters are c1, c2.
	Next2Are(c1, c2 rune) bool
	// Next3Are reports whether the next three characters are c1, c2, c3.
	Next3Are(c1, c2, c3 rune) bool
	// NextIsDocumentIndicator reports whether the next four characters form
	// a document-start or document-end indicator (`---` or `...` followed
	// by blank/break/EOF).
	NextIsDocumentIndicator() bool
	// NextIsDocumentStart reports whether the next characters are `---`
	// followed by blank/break/EOF.
	NextIsDocumentStart() bool
	// NextIsDocumentEnd reports whether the next characters are `...`
	// followed by blank/break/EOF.
	NextIsDocumentEnd() bool
	// SkipWsToEOL consumes spaces (always) and tabs (if policy allows),
	// then optionally a comment through end-of-line. It returns the number
	// of characters consumed and what it observed (SkipResult), or an error
	// if a `#` is encountered with no preceding whitespace on this run.
	SkipWsToEOL(policy SkipTabsPolicy) (int, SkipResult, error)
	// NextCanBePlainScalar reports whether the next character may start or
	// continue a plain scalar, given whether we are inside a flow
	// collection.
	NextCanBePlainScalar(inFlow bool) bool
}

// sharedDefaults is an empty type with no methods. The default-method
// implementations shared by both Input implementations are the package-level
// functions below; StringInput uses its own document-indicator checks.
type sharedDefaults struct{}

func nextIsDocumentIndicatorDefault(in Input) bool {
	nc := in.PeekNth(3)
	return isBlankOrBreakzRune(nc) && (in.Next3Are('.', '.', '.') || in.Next3Are('-', '-', '-'))
}

func nextIsDocumentStartDefault(in Input) bool {
	return in.Next3Are('-', '-', '-') && isBlankOrBreakzRune(in.PeekNth(3))
}

func nextIsDocumentEndDefault(in Input) bool {
	return in.Next3Are('.', '.', '.') && isBlankOrBreakzRune(in.PeekNth(3))
}

func nextCanBePlainScalarDefault(in Input, inFlow bool) bool {
	c := in.Peek()
	if c == ':' {
		nc := in.PeekNth(1)
		if isBlankOrBreakzRune(nc) || (inFlow && isFlowChar(nc)) {
			return false
		}
		return true
	}
	if inFlow && isFlowChar(c) {
		return false
	}
	return true
}

// isBlankOrBreakzRune and isFlowChar duplicate the scanner package's
// character classification to avoid an import cycle (scanner imports
// input).
func isBlankOrBreakzRune(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == 0
}

func isFlowChar(c rune) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}
