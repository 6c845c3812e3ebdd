// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"io"
	"strings"
	"testing"

	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/internal/testutil/assert"
)

// parseAll drives p to completion, returning every event it produced. It
// fails the test if parsing ends in an error.
func parseAll(t *testing.T, p *Parser) []event.Event {
	t.Helper()
	var evs []event.Event
	for {
		ev, err := p.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		evs = append(evs, ev)
	}
	return evs
}

func kinds(evs []event.Event) []event.Kind {
	ks := make([]event.Kind, len(evs))
	for i, ev := range evs {
		ks[i] = ev.Kind
	}
	return ks
}

// dualParse runs src through both Parser constructors and asserts they
// produce the identical Kind/Value sequence.
func dualParse(t *testing.T, src string) []event.Event {
	t.Helper()
	strEvs := parseAll(t, NewFromString(src))
	rdrEvs := parseAll(t, NewFromReader(strings.NewReader(src)))
	assert.Equalf(t, len(strEvs), len(rdrEvs), "event count differs between string and reader parse of %q", src)
	for i := range strEvs {
		assert.Equalf(t, strEvs[i].Kind, rdrEvs[i].Kind, "event[%d] kind differs parsing %q", i, src)
		assert.Equalf(t, strEvs[i].Value, rdrEvs[i].Value, "event[%d] value differs parsing %q", i, src)
	}
	return strEvs
}

func TestParseFlowSequence(t *testing.T) {
	evs := dualParse(t, "[1, 2, 3]")
	want := []event.Kind{
		event.StreamStart,
		event.DocumentStart,
		event.SequenceStart,
		event.Scalar, event.Scalar, event.Scalar,
		event.SequenceEnd,
		event.DocumentEnd,
		event.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(evs))
	assert.Equal(t, "1", evs[3].Value)
	assert.Equal(t, "2", evs[4].Value)
	assert.Equal(t, "3", evs[5].Value)
	assert.True(t, evs[2].Flow)
}

func TestParseBlockMapping(t *testing.T) {
	evs := dualParse(t, "a: b\nc: d")
	want := []event.Kind{
		event.StreamStart,
		event.DocumentStart,
		event.MappingStart,
		event.Scalar, event.Scalar,
		event.Scalar, event.Scalar,
		event.MappingEnd,
		event.DocumentEnd,
		event.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(evs))
	assert.False(t, evs[2].Flow)
	assert.Equal(t, "a", evs[3].Value)
	assert.Equal(t, "b", evs[4].Value)
	assert.Equal(t, "c", evs[5].Value)
	assert.Equal(t, "d", evs[6].Value)
}

func TestParseImplicitFlowMapping(t *testing.T) {
	evs := dualParse(t, "[a: [42]]")
	want := []event.Kind{
		event.StreamStart,
		event.DocumentStart,
		event.SequenceStart,
		event.MappingStart,
		event.Scalar,
		event.SequenceStart, event.Scalar, event.SequenceEnd,
		event.MappingEnd,
		event.SequenceEnd,
		event.DocumentEnd,
		event.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(evs))
}

func TestParseExplicitDocumentMarkers(t *testing.T) {
	evs := dualParse(t, "---\nx\n...\n")
	assert.Equal(t, event.DocumentStart, evs[1].Kind)
	assert.True(t, evs[1].Explicit)
	var docEnd *event.Event
	for i := range evs {
		if evs[i].Kind == event.DocumentEnd {
			docEnd = &evs[i]
		}
	}
	assert.NotNil(t, docEnd)
	assert.True(t, docEnd.Explicit)
}

func TestParseImplicitDocumentHasNoExplicitMarkers(t *testing.T) {
	evs := dualParse(t, "x")
	assert.Equal(t, event.DocumentStart, evs[1].Kind)
	assert.False(t, evs[1].Explicit)
}

func TestParseVersionDirective(t *testing.T) {
	evs := dualParse(t, "%YAML 1.2\n---\nx")
	ds := evs[1]
	assert.Equal(t, event.DocumentStart, ds.Kind)
	assert.NotNil(t, ds.Version)
	assert.Equal(t, 1, ds.Version.Major)
	assert.Equal(t, 2, ds.Version.Minor)
}

func TestParseIncompatibleVersionDirectiveErrors(t *testing.T) {
	p := NewFromString("%YAML 2.0\n---\nx")
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
}

func TestParseDuplicateVersionDirectiveErrors(t *testing.T) {
	p := NewFromString("%YAML 1.1\n%YAML 1.2\n---\nx")
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
}

func TestParseDuplicateTagDirectiveErrors(t *testing.T) {
	p := NewFromString("%TAG !e! tag:example.com,2000:app/\n%TAG !e! tag:other.com,2000:app/\n---\nx")
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
}

func TestParseUnknownTagHandleErrors(t *testing.T) {
	p := NewFromString("!e!x y")
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
}

func TestParseTagDirectiveResolution(t *testing.T) {
	evs := dualParse(t, "%TAG !e! tag:example.com,2000:app/\n---\n!e!foo bar")
	var scalar *event.Event
	for i := range evs {
		if evs[i].Kind == event.Scalar {
			scalar = &evs[i]
		}
	}
	assert.NotNil(t, scalar)
	assert.Equal(t, "tag:example.com,2000:app/foo", scalar.Tag.String())
}

func TestParseVerbatimTagIsUsedAsIs(t *testing.T) {
	evs := dualParse(t, "!<tag:example.com,2000:app/foo> bar")
	var scalar *event.Event
	for i := range evs {
		if evs[i].Kind == event.Scalar {
			scalar = &evs[i]
		}
	}
	assert.NotNil(t, scalar)
	assert.Equal(t, "!<tag:example.com,2000:app/foo>", scalar.Tag.String())
}

func TestParseAnchorAndAliasShareID(t *testing.T) {
	evs := dualParse(t, "- &a x\n- *a")
	var anchorID int
	var sawAlias bool
	for _, ev := range evs {
		if ev.Kind == event.Scalar && ev.Anchor != 0 {
			anchorID = ev.Anchor
		}
		if ev.Kind == event.Alias {
			assert.Equalf(t, anchorID, ev.Anchor, "alias id does not match bound anchor id")
			sawAlias = true
		}
	}
	assert.True(t, sawAlias)
	assert.True(t, anchorID != 0)
}

func TestParseUndefinedAliasErrors(t *testing.T) {
	p := NewFromString("*missing")
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
}

func TestParseAnchorRebindingShadowsEarlierID(t *testing.T) {
	evs := dualParse(t, "- &a x\n- &a y\n- *a")
	var ids []int
	for _, ev := range evs {
		if ev.Anchor != 0 {
			ids = append(ids, ev.Anchor)
		}
	}
	assert.Equal(t, 3, len(ids))
	assert.True(t, ids[0] != ids[1])
	assert.Equal(t, ids[1], ids[2])
}

func TestParseEmptyBlockMappingValue(t *testing.T) {
	evs := dualParse(t, "a:")
	want := []event.Kind{
		event.StreamStart, event.DocumentStart,
		event.MappingStart,
		event.Scalar, event.Scalar,
		event.MappingEnd,
		event.DocumentEnd, event.StreamEnd,
	}
	assert.DeepEqual(t, want, kinds(evs))
	assert.Equal(t, "a", evs[3].Value)
	assert.Equal(t, "", evs[4].Value)
}

func TestParseEmptyFlowMappingValue(t *testing.T) {
	evs := dualParse(t, "{a: }")
	var vals []string
	count := 0
	for _, ev := range evs {
		if ev.Kind == event.Scalar {
			vals = append(vals, ev.Value)
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, "a", vals[0])
	assert.Equal(t, "", vals[1])
}

func TestParseBlockSequenceOfMappings(t *testing.T) {
	evs := dualParse(t, "- a: 1\n- b: 2")
	var seqStart, mapStarts int
	for _, ev := range evs {
		switch ev.Kind {
		case event.SequenceStart:
			seqStart++
		case event.MappingStart:
			mapStarts++
		}
	}
	assert.Equal(t, 1, seqStart)
	assert.Equal(t, 2, mapStarts)
}

func TestParseLiteralBlockScalarStyle(t *testing.T) {
	evs := dualParse(t, "---\n- |\n  a")
	var scalar *event.Event
	for i := range evs {
		if evs[i].Kind == event.Scalar {
			scalar = &evs[i]
		}
	}
	assert.NotNil(t, scalar)
	assert.Equal(t, "a\n", scalar.Value)
}

func TestParseUnterminatedFlowMappingErrors(t *testing.T) {
	// An unterminated flow mapping containing "---" (scanned as a plain
	// scalar, since it is not at column 0) must error rather than loop:
	// bracket balance is the parser's concern.
	p := NewFromString("{---")
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
	assert.ErrorMatches(t, "while parsing a flow mapping.*did not find expected ',' or '}'.*", err)
}

func TestParseRecursionLimit(t *testing.T) {
	src := strings.Repeat("[", 10000) + strings.Repeat("]", 10000)
	p := NewFromString(src)
	_, err := parseUntilError(t, p)
	assert.NotNil(t, err)
}

func TestParseSpansAreMonotonic(t *testing.T) {
	evs := dualParse(t, "a: [1, 2, {b: c}]\nd: |\n  text\n")
	for i := 1; i < len(evs); i++ {
		prev, cur := evs[i-1], evs[i]
		assert.Truef(t, cur.Span.Start.Index >= prev.Span.Start.Index,
			"event[%d].Span.Start < event[%d].Span.Start", i, i-1)
	}
}

func TestParserErrIsSticky(t *testing.T) {
	p := NewFromString("*missing")
	_, first := parseUntilError(t, p)
	assert.NotNil(t, first)
	_, second := p.Next()
	assert.Equal(t, first, second)
	assert.Equal(t, first, p.Err())
}

// parseUntilError drains p until it returns a non-EOF error, returning the
// events seen so far and that error. Fails the test if p runs to EOF
// without ever erroring.
func parseUntilError(t *testing.T, p *Parser) ([]event.Event, error) {
	t.Helper()
	var evs []event.Event
	for i := 0; i < 100000; i++ {
		ev, err := p.Next()
		if err == io.EOF {
			t.Fatal("parser reached EOF without erroring")
		}
		if err != nil {
			return evs, err
		}
		evs = append(evs, ev)
	}
	t.Fatal("parser did not terminate")
	return nil, nil
}
