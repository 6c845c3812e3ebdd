// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package parser implements the YAML event parser: a pushdown automaton
// that consumes token.Token values and emits event.Event values (document
// and collection boundaries, scalars, aliases).
//
// The parser is pull-based in the same style as scanner.Scanner: each call
// to Next either emits one event, reports end of stream, or reports a
// terminal error. No recovery is attempted after an error.
//
// The state machine mirrors YAML's grammar productions directly: each
// state corresponds to a production, anchors resolve against an integer-id
// registry rather than carrying raw name bytes through every event, and
// event.Event carries no comments, so there is no comment-queue bookkeeping.
package parser

import (
	"io"

	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/scanner"
	"github.com/saphyr-go/yamlcore/token"
)

// TokenSource is the pull interface the parser consumes. *scanner.Scanner
// satisfies it.
type TokenSource interface {
	Next() (token.Token, error)
}

// defaultTagDirectives are installed before any %TAG directive is seen.
var defaultTagDirectives = []event.TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
}

// Parser produces a sequence of events from a TokenSource.
type Parser struct {
	src TokenSource

	peeked   token.Token
	havePeek bool

	state  state
	states []state
	marks  []token.Marker

	err error

	tagDirectives []event.TagDirective

	anchors      map[string]int
	nextAnchorID int
}

// New creates a Parser consuming tokens from src.
func New(src TokenSource) *Parser {
	return &Parser{
		src:     src,
		state:   stateStreamStart,
		anchors: make(map[string]int),
	}
}

// NewFromString creates a Parser over a fully buffered string, via
// scanner.NewFromString.
func NewFromString(s string) *Parser {
	return New(scanner.NewFromString(s))
}

// NewFromReader creates a Parser over a streaming io.Reader, via
// scanner.NewFromReader.
func NewFromReader(r io.Reader) *Parser {
	return New(scanner.NewFromReader(r))
}

// Err returns the terminal error, if the parser has stopped because of one.
func (p *Parser) Err() error {
	return p.err
}

// Next produces the next event. It returns io.EOF once stream-end has
// already been produced, or the terminal error if one has occurred (on
// every call after the first).
func (p *Parser) Next() (event.Event, error) {
	if p.err != nil {
		return event.Event{}, p.err
	}
	if p.state == stateEnd {
		return event.Event{}, io.EOF
	}
	ev, err := p.dispatch()
	if err != nil {
		p.err = err
		return event.Event{}, err
	}
	return ev, nil
}

// dispatch runs one step of the state machine.
func (p *Parser) dispatch() (event.Event, error) {
	switch p.state {
	case stateStreamStart:
		return p.parseStreamStart()
	case stateImplicitDocumentStart:
		return p.parseDocumentStart(true)
	case stateDocumentStart:
		return p.parseDocumentStart(false)
	case stateDocumentContent:
		return p.parseDocumentContent()
	case stateDocumentEnd:
		return p.parseDocumentEnd()
	case stateBlockNode:
		return p.parseNode(true, false)
	case stateBlockNodeOrIndentlessSequence:
		return p.parseNode(true, true)
	case stateFlowNode:
		return p.parseNode(false, false)
	case stateBlockSequenceFirstEntry:
		return p.parseBlockSequenceEntry(true)
	case stateBlockSequenceEntry:
		return p.parseBlockSequenceEntry(false)
	case stateIndentlessSequenceEntry:
		return p.parseIndentlessSequenceEntry()
	case stateBlockMappingFirstKey:
		return p.parseBlockMappingKey(true)
	case stateBlockMappingKey:
		return p.parseBlockMappingKey(false)
	case stateBlockMappingValue:
		return p.parseBlockMappingValue()
	case stateFlowSequenceFirstEntry:
		return p.parseFlowSequenceEntry(true)
	case stateFlowSequenceEntry:
		return p.parseFlowSequenceEntry(false)
	case stateFlowSequenceEntryMappingKey:
		return p.parseFlowSequenceEntryMappingKey()
	case stateFlowSequenceEntryMappingValue:
		return p.parseFlowSequenceEntryMappingValue()
	case stateFlowSequenceEntryMappingEnd:
		return p.parseFlowSequenceEntryMappingEnd()
	case stateFlowMappingFirstKey:
		return p.parseFlowMappingKey(true)
	case stateFlowMappingKey:
		return p.parseFlowMappingKey(false)
	case stateFlowMappingValue:
		return p.parseFlowMappingValue(false)
	case stateFlowMappingEmptyValue:
		return p.parseFlowMappingValue(true)
	default:
		panic("parser: invalid state")
	}
}

// --- token lookahead -------------------------------------------------------

func (p *Parser) peek() (token.Token, error) {
	if !p.havePeek {
		tok, err := p.src.Next()
		if err != nil {
			return token.Token{}, err
		}
		p.peeked = tok
		p.havePeek = true
	}
	return p.peeked, nil
}

func (p *Parser) skip() {
	p.havePeek = false
}

// --- state/mark stacks ------------------------------------------------------

func (p *Parser) pushState(s state, mark token.Marker) error {
	if len(p.states) >= maxStateDepth {
		return newError(mark, "recursion limit exceeded")
	}
	p.states = append(p.states, s)
	return nil
}

func (p *Parser) popState() state {
	n := len(p.states)
	s := p.states[n-1]
	p.states = p.states[:n-1]
	return s
}

func (p *Parser) pushMark(mark token.Marker) {
	p.marks = append(p.marks, mark)
}

func (p *Parser) popMark() token.Marker {
	n := len(p.marks)
	m := p.marks[n-1]
	p.marks = p.marks[:n-1]
	return m
}

// --- anchors -----------------------------------------------------------------

// bindAnchor allocates a fresh id for name, shadowing any earlier binding.
func (p *Parser) bindAnchor(name string) int {
	p.nextAnchorID++
	id := p.nextAnchorID
	p.anchors[name] = id
	return id
}

func (p *Parser) resolveAlias(name string, mark token.Marker) (int, error) {
	id, ok := p.anchors[name]
	if !ok {
		return 0, newError(mark, "found undefined alias")
	}
	return id, nil
}

// --- directives and tag resolution ------------------------------------------

// processDirectives consumes a run of version/tag directive tokens,
// updating the active tag-handle table and installing the default handles.
// It returns the version (nil if absent) and the explicitly-declared tag
// directives, for attachment to a DocumentStart event.
func (p *Parser) processDirectives() (*event.Version, []event.TagDirective, error) {
	var version *event.Version
	var explicit []event.TagDirective

	tok, err := p.peek()
	if err != nil {
		return nil, nil, err
	}

	for tok.Kind == token.VersionDirective || tok.Kind == token.TagDirective {
		switch tok.Kind {
		case token.VersionDirective:
			if version != nil {
				return nil, nil, newError(tok.Span.Start, "found duplicate %YAML directive")
			}
			if tok.Major != 1 {
				return nil, nil, newError(tok.Span.Start, "found incompatible YAML document")
			}
			version = &event.Version{Major: tok.Major, Minor: tok.Minor}
		case token.TagDirective:
			td := event.TagDirective{Handle: tok.Handle, Prefix: tok.Prefix}
			if td.Handle != "" || td.Prefix != "" {
				if err := p.appendTagDirective(td, false, tok.Span.Start); err != nil {
					return nil, nil, err
				}
				explicit = append(explicit, td)
			}
		}
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return nil, nil, err
		}
	}

	for _, d := range defaultTagDirectives {
		if err := p.appendTagDirective(d, true, tok.Span.Start); err != nil {
			return nil, nil, err
		}
	}

	return version, explicit, nil
}

func (p *Parser) appendTagDirective(d event.TagDirective, allowDuplicates bool, mark token.Marker) error {
	for _, existing := range p.tagDirectives {
		if existing.Handle == d.Handle {
			if allowDuplicates {
				return nil
			}
			return newError(mark, "found duplicate %TAG directive")
		}
	}
	p.tagDirectives = append(p.tagDirectives, d)
	return nil
}

// resolveTag resolves a scanned tag token's (handle, suffix) pair against
// the active directive table. handle == "" with suffix already wrapped in
// "!<...>" denotes a verbatim tag, used as-is with no prefix.
func (p *Parser) resolveTag(handle, suffix string, mark token.Marker) (event.Tag, error) {
	if handle == "" {
		return event.Tag{Suffix: suffix}, nil
	}
	for _, d := range p.tagDirectives {
		if d.Handle == handle {
			return event.Tag{Prefix: d.Prefix, Suffix: suffix}, nil
		}
	}
	return event.Tag{}, newErrorContext("while parsing a node", mark, "found undefined tag handle", mark)
}
