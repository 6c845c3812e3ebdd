// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/token"
)

func (p *Parser) parseStreamStart() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	if tok.Kind != token.StreamStart {
		return event.Event{}, newError(tok.Span.Start, "did not find expected <stream-start>")
	}
	p.state = stateImplicitDocumentStart
	p.skip()
	return event.Event{Span: tok.Span, Kind: event.StreamStart}, nil
}

// parseDocumentStart parses the productions:
//
//	implicit_document ::= block_node DOCUMENT-END*
//	explicit_document ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocumentStart(implicit bool) (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}

	if !implicit {
		for tok.Kind == token.DocumentEnd {
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return event.Event{}, err
			}
		}
	}

	if implicit && tok.Kind != token.VersionDirective && tok.Kind != token.TagDirective &&
		tok.Kind != token.DocumentStart && tok.Kind != token.StreamEnd {
		if _, _, err := p.processDirectives(); err != nil {
			return event.Event{}, err
		}
		if err := p.pushState(stateDocumentEnd, tok.Span.Start); err != nil {
			return event.Event{}, err
		}
		p.state = stateBlockNode
		return event.Event{Span: tok.Span, Kind: event.DocumentStart, Explicit: false}, nil
	}

	if tok.Kind != token.StreamEnd {
		startMark := tok.Span.Start
		version, tagDirectives, err := p.processDirectives()
		if err != nil {
			return event.Event{}, err
		}
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.DocumentStart {
			return event.Event{}, newError(tok.Span.Start, "did not find expected <document start>")
		}
		if err := p.pushState(stateDocumentEnd, tok.Span.Start); err != nil {
			return event.Event{}, err
		}
		p.state = stateDocumentContent
		endMark := tok.Span.End
		p.skip()
		return event.Event{
			Span: token.NewSpan(startMark, endMark), Kind: event.DocumentStart,
			Explicit: true, Version: version, TagDirectives: tagDirectives,
		}, nil
	}

	p.state = stateEnd
	ev := event.Event{Span: tok.Span, Kind: event.StreamEnd}
	p.skip()
	return ev, nil
}

// parseDocumentContent parses the productions:
//
//	explicit_document ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocumentContent() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	if tok.Kind == token.VersionDirective || tok.Kind == token.TagDirective ||
		tok.Kind == token.DocumentStart || tok.Kind == token.DocumentEnd ||
		tok.Kind == token.StreamEnd {
		p.state = p.popState()
		return p.processEmptyScalar(tok.Span.Start)
	}
	return p.parseNode(true, false)
}

// parseDocumentEnd parses the productions:
//
//	implicit_document ::= block_node DOCUMENT-END*
//	explicit_document ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocumentEnd() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}

	startMark := tok.Span.Start
	endMark := startMark
	explicit := false
	if tok.Kind == token.DocumentEnd {
		endMark = tok.Span.End
		explicit = true
		p.skip()
	}

	p.tagDirectives = p.tagDirectives[:0]
	p.state = stateDocumentStart
	return event.Event{Span: token.NewSpan(startMark, endMark), Kind: event.DocumentEnd, Explicit: explicit}, nil
}
