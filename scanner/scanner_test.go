// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"io"
	"strings"
	"testing"

	"github.com/saphyr-go/yamlcore/input"
	"github.com/saphyr-go/yamlcore/internal/testutil/assert"
	"github.com/saphyr-go/yamlcore/token"
)

// scanAll drives s to completion, returning every token it produced. It
// fails the test if scanning ends in an error.
func scanAll(t *testing.T, s *Scanner) []token.Token {
	t.Helper()
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		toks = append(toks, tok)
	}
	return toks
}

// kinds extracts the Kind of each token, for compact comparison against an
// expected dispatch sequence.
func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

// dualScan runs src through both Input implementations and asserts they
// produce the identical Kind sequence, so every call site below also
// exercises agreement between the string-backed and reader-backed scanners.
func dualScan(t *testing.T, src string) []token.Token {
	t.Helper()
	strToks := scanAll(t, NewFromString(src))
	iterToks := scanAll(t, NewFromReader(strings.NewReader(src)))
	assert.Equalf(t, len(strToks), len(iterToks), "token count differs between string and reader scan of %q", src)
	for i := range strToks {
		assert.Equalf(t, strToks[i].Kind, iterToks[i].Kind, "token[%d] kind differs between string and reader scan of %q", i, src)
		assert.Equalf(t, strToks[i].Value, iterToks[i].Value, "token[%d] value differs between string and reader scan of %q", i, src)
	}
	return strToks
}

func TestScanFlowSequence(t *testing.T) {
	toks := dualScan(t, "[1, 2, 3]")
	want := []token.Kind{
		token.StreamStart,
		token.FlowSequenceStart,
		token.Scalar, token.FlowEntry,
		token.Scalar, token.FlowEntry,
		token.Scalar,
		token.FlowSequenceEnd,
		token.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(toks))
	assert.Equal(t, "1", toks[2].Value)
	assert.Equal(t, "2", toks[4].Value)
	assert.Equal(t, "3", toks[6].Value)
}

func TestScanBlockMapping(t *testing.T) {
	toks := dualScan(t, "a: b\nc: d")
	want := []token.Kind{
		token.StreamStart,
		token.BlockMappingStart,
		token.Key, token.Scalar, token.Value, token.Scalar,
		token.Key, token.Scalar, token.Value, token.Scalar,
		token.BlockEnd,
		token.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(toks))
}

func TestScanImplicitFlowMapping(t *testing.T) {
	// "[a: [42]]": an implicit single-pair mapping inside a flow sequence.
	toks := dualScan(t, "[a: [42]]")
	want := []token.Kind{
		token.StreamStart,
		token.FlowSequenceStart,
		token.FlowMappingStart,
		token.Key, token.Scalar,
		token.Value,
		token.FlowSequenceStart, token.Scalar, token.FlowSequenceEnd,
		token.FlowMappingEnd,
		token.FlowSequenceEnd,
		token.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(toks))
}

func TestScanLiteralBlockScalar(t *testing.T) {
	toks := dualScan(t, "---\n- |\n  a")
	var scalars []token.Token
	for _, tok := range toks {
		if tok.Kind == token.Scalar {
			scalars = append(scalars, tok)
		}
	}
	assert.Equal(t, 1, len(scalars))
	assert.Equal(t, token.Literal, scalars[0].Style)
	assert.Equal(t, "a\n", scalars[0].Value)
}

func TestScanFoldedBlockScalar(t *testing.T) {
	toks := dualScan(t, "foo: >\n  bar\n  more")
	var scalars []token.Token
	for _, tok := range toks {
		if tok.Kind == token.Scalar {
			scalars = append(scalars, tok)
		}
	}
	assert.Equal(t, 2, len(scalars))
	assert.Equal(t, "foo", scalars[0].Value)
	assert.Equal(t, token.Folded, scalars[1].Style)
	assert.Equal(t, "bar more\n", scalars[1].Value)
}

func TestScanUnterminatedFlowMappingTerminates(t *testing.T) {
	// "{---" is a scanner-level non-error: the scanner has no notion of
	// bracket balance, so it happily emits FlowMappingStart, a plain
	// scalar, and StreamEnd; bracket balance is the parser's job (see
	// TestParseUnterminatedFlowMappingErrors in parser_test.go).
	toks := dualScan(t, "{---")
	want := []token.Kind{
		token.StreamStart,
		token.FlowMappingStart,
		token.Scalar,
		token.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(toks))
}

func TestScanRecursionLimit(t *testing.T) {
	src := strings.Repeat("[", 10000) + strings.Repeat("]", 10000)
	s := NewFromString(src)
	var sawError bool
	for i := 0; i < 20000; i++ {
		_, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			sawError = true
			break
		}
	}
	assert.True(t, sawError)
}

func TestScanUnterminatedAfterDocumentIndicatorTerminates(t *testing.T) {
	// Regression case for a historical infinite loop: a plain scalar
	// starting right after "---" on the same line.
	s := NewFromString("---This used to cause an infinite loop")
	for i := 0; i < 100; i++ {
		_, err := s.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}
	}
	t.Fatal("scanner did not terminate within 100 tokens")
}

func TestScanSingleQuotedScalarEscape(t *testing.T) {
	toks := dualScan(t, "'it''s here'")
	scalar := toks[1]
	assert.Equal(t, token.Scalar, scalar.Kind)
	assert.Equal(t, token.SingleQuoted, scalar.Style)
	assert.Equal(t, "it's here", scalar.Value)
}

func TestScanDoubleQuotedScalarEscapes(t *testing.T) {
	toks := dualScan(t, `"a\tb\u0041\n"`)
	scalar := toks[1]
	assert.Equal(t, token.Scalar, scalar.Kind)
	assert.Equal(t, token.DoubleQuoted, scalar.Style)
	assert.Equal(t, "a\tbA\n", scalar.Value)
}

func TestScanFlowScalarJSONAdjacentColon(t *testing.T) {
	// A JSON-like (quoted) flow-mapping key may be immediately followed by
	// ':' with no separating whitespace.
	toks := dualScan(t, `{"a":1}`)
	want := []token.Kind{
		token.StreamStart,
		token.FlowMappingStart,
		token.Key, token.Scalar,
		token.Value, token.Scalar,
		token.FlowMappingEnd,
		token.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(toks))
}

func TestScanFlowScalarNewlineBreaksJSONAdjacency(t *testing.T) {
	// A line break between a quoted flow-mapping key and the following ':'
	// must not be treated as the adjacent-colon JSON compatibility case:
	// that allowance only covers whitespace on the same line as the
	// closing quote.
	toks := dualScan(t, "{\"a\"\n:1}")
	var gotKey, gotValue bool
	for _, tok := range toks {
		switch tok.Kind {
		case token.Key:
			gotKey = true
		case token.Value:
			gotValue = true
		}
	}
	assert.False(t, gotKey)
	assert.False(t, gotValue)
}

func TestScanAnchorAndAlias(t *testing.T) {
	toks := dualScan(t, "- &a x\n- *a")
	var anchor, alias *token.Token
	for i := range toks {
		switch toks[i].Kind {
		case token.Anchor:
			anchor = &toks[i]
		case token.Alias:
			alias = &toks[i]
		}
	}
	assert.NotNil(t, anchor)
	assert.NotNil(t, alias)
	assert.Equal(t, "a", anchor.Value)
	assert.Equal(t, "a", alias.Value)
}

func TestScanTagVariants(t *testing.T) {
	cases := []struct {
		src        string
		wantHandle string
		wantSuffix string
	}{
		{"!!str x", "!!", "str"},
		{"!local x", "!", "local"},
		{"!<tag:example.com,2000:app/foo> x", "", "!<tag:example.com,2000:app/foo>"},
	}
	for _, c := range cases {
		toks := dualScan(t, c.src)
		var tagTok *token.Token
		for i := range toks {
			if toks[i].Kind == token.Tag {
				tagTok = &toks[i]
				break
			}
		}
		assert.NotNilf(t, tagTok, "no Tag token scanning %q", c.src)
		assert.Equalf(t, c.wantHandle, tagTok.Handle, "Handle for %q", c.src)
		assert.Equalf(t, c.wantSuffix, tagTok.Suffix, "Suffix for %q", c.src)
	}
}

func TestScanVersionDirective(t *testing.T) {
	toks := dualScan(t, "%YAML 1.2\n---\nx")
	assert.Equal(t, token.VersionDirective, toks[1].Kind)
	assert.Equal(t, 1, toks[1].Major)
	assert.Equal(t, 2, toks[1].Minor)
}

func TestScanTagDirective(t *testing.T) {
	toks := dualScan(t, "%TAG !e! tag:example.com,2000:app/\n---\nx")
	assert.Equal(t, token.TagDirective, toks[1].Kind)
	assert.Equal(t, "!e!", toks[1].Handle)
	assert.Equal(t, "tag:example.com,2000:app/", toks[1].Prefix)
}

func TestScanUnknownDirectiveIsSkippedNotError(t *testing.T) {
	// An unrecognized directive name is not an error: the rest of the line
	// is skipped and scanning continues.
	toks := dualScan(t, "%FOO bar baz\n---\nx")
	assert.Equal(t, token.TagDirective, toks[1].Kind)
	assert.Equal(t, "", toks[1].Handle)
	assert.Equal(t, "", toks[1].Prefix)
}

func TestIndentStackMonotonic(t *testing.T) {
	s := NewFromString("a:\n  b:\n    c: 1\nd: 2")
	var indents []int
	for {
		_, err := s.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		indents = append(indents, s.indent)
		for i := 1; i < len(s.indents); i++ {
			assert.Truef(t, s.indents[i-1].indent < s.indents[i].indent, "indent stack not monotonic: %v", s.indents)
		}
	}
}

func TestUnterminatedFlowCollectionAtEOFTerminates(t *testing.T) {
	// A flow collection left open at EOF is not itself a scanner error
	// (bracket balance is the parser's concern, see
	// TestScanUnterminatedFlowMappingTerminates above): the scanner must
	// simply reach StreamEnd without hanging.
	toks := dualScan(t, "{")
	want := []token.Kind{token.StreamStart, token.FlowMappingStart, token.StreamEnd}
	assert.DeepEqual(t, want, kinds(toks))
}

func TestTabInBlockIndentationIsError(t *testing.T) {
	s := NewFromString("a:\n  b:\n\tc: d")
	var sawErr bool
	for i := 0; i < 20; i++ {
		_, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			sawErr = true
			break
		}
	}
	assert.True(t, sawErr)
}

func TestSpanMonotonicity(t *testing.T) {
	toks := dualScan(t, "a: [1, 2, {b: c}]\nd: |\n  text\n")
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		assert.Truef(t, cur.Span.Start.Index >= prev.Span.Start.Index,
			"token[%d].Span.Start (%d) < token[%d].Span.Start (%d)", i, cur.Span.Start.Index, i-1, prev.Span.Start.Index)
		assert.Truef(t, cur.Span.End.Index >= prev.Span.End.Index,
			"token[%d].Span.End (%d) < token[%d].Span.End (%d)", i, cur.Span.End.Index, i-1, prev.Span.End.Index)
	}
}

func TestNewFromStringAndNewFromReaderAgree(t *testing.T) {
	// Exercises the two exported constructors directly, rather than through
	// dualScan, as a smoke test for input.NewStringInput/NewIterInput
	// wiring via New.
	s1 := NewFromString("key: value")
	s2 := New(input.NewStringInput("key: value"))
	toks1 := scanAll(t, s1)
	toks2 := scanAll(t, s2)
	assert.DeepEqual(t, kinds(toks1), kinds(toks2))
}
