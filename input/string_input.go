// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package input

// stringBufMaxLen is the virtual buffer capacity reported by Bufmaxlen. It
// does not correspond to any allocation: the whole remainder of the string
// is already in memory and any character within it can be fetched in O(1).
// The scanner uses Bufmaxlen to size its own inner loops and to decide
// between a fast and slow path in indentation skipping, so this constant
// matters for that decision even though StringInput itself doesn't need it.
const stringBufMaxLen = 128

// StringInput is a fully buffered Input over a Go string. Lookahead is
// unbounded and free: the whole remainder of the string is already resident,
// so Lookahead only has to track how far the scanner has asked to see.
type StringInput struct {
	runes     []rune
	pos       int
	lookahead int
}

// NewStringInput creates a StringInput over s.
func NewStringInput(s string) *StringInput {
	return &StringInput{runes: []rune(s)}
}

var _ Input = (*StringInput)(nil)

func (in *StringInput) remaining() int {
	return len(in.runes) - in.pos
}

func (in *StringInput) Lookahead(count int) {
	if count > in.lookahead {
		in.lookahead = count
	}
}

func (in *StringInput) Buflen() int { return in.lookahead }

func (in *StringInput) Bufmaxlen() int { return stringBufMaxLen }

func (in *StringInput) BufIsEmpty() bool { return in.Buflen() == 0 }

func (in *StringInput) RawReadCh() rune {
	if in.pos >= len(in.runes) {
		return 0
	}
	c := in.runes[in.pos]
	in.pos++
	return c
}

func (in *StringInput) PushBack(c rune) {
	// The whole source is resident; returning a character just means
	// stepping the cursor back. The caller guarantees c is the character
	// immediately preceding the current position.
	if in.pos > 0 {
		in.pos--
	}
}

func (in *StringInput) Skip() {
	if in.pos < len(in.runes) {
		in.pos++
	}
}

func (in *StringInput) SkipN(count int) {
	in.pos += count
	if in.pos > len(in.runes) {
		in.pos = len(in.runes)
	}
}

func (in *StringInput) Peek() rune {
	return in.PeekNth(0)
}

func (in *StringInput) PeekNth(n int) rune {
	idx := in.pos + n
	if idx < 0 || idx >= len(in.runes) {
		return 0
	}
	return in.runes[idx]
}

func (in *StringInput) LookCh() rune {
	in.Lookahead(1)
	return in.Peek()
}

func (in *StringInput) NextCharIs(c rune) bool { return in.Peek() == c }

func (in *StringInput) NthCharIs(n int, c rune) bool { return in.PeekNth(n) == c }

func (in *StringInput) Next2Are(c1, c2 rune) bool {
	return in.PeekNth(0) == c1 && in.PeekNth(1) == c2
}

func (in *StringInput) Next3Are(c1, c2, c3 rune) bool {
	return in.PeekNth(0) == c1 && in.PeekNth(1) == c2 && in.PeekNth(2) == c3
}

func (in *StringInput) NextIsDocumentIndicator() bool {
	if in.remaining() < 3 {
		return false
	}
	blankAfter := in.remaining() == 3 || isBlankOrBreakzRune(in.PeekNth(3))
	return blankAfter && (in.Next3Are('.', '.', '.') || in.Next3Are('-', '-', '-'))
}

func (in *StringInput) NextIsDocumentStart() bool {
	if in.remaining() < 3 {
		return false
	}
	blankAfter := in.remaining() == 3 || isBlankOrBreakzRune(in.PeekNth(3))
	return blankAfter && in.Next3Are('-', '-', '-')
}

func (in *StringInput) NextIsDocumentEnd() bool {
	if in.remaining() < 3 {
		return false
	}
	blankAfter := in.remaining() == 3 || isBlankOrBreakzRune(in.PeekNth(3))
	return blankAfter && in.Next3Are('.', '.', '.')
}

func (in *StringInput) SkipWsToEOL(policy SkipTabsPolicy) (int, SkipResult, error) {
	return skipWsToEOL(in, policy)
}

func (in *StringInput) NextCanBePlainScalar(inFlow bool) bool {
	return nextCanBePlainScalarDefault(in, inFlow)
}
