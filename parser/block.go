// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/token"
)

// parseBlockSequenceEntry parses the productions:
//
//	block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
func (p *Parser) parseBlockSequenceEntry(first bool) (event.Event, error) {
	if first {
		tok, err := p.peek()
		if err != nil {
			return event.Event{}, err
		}
		p.pushMark(tok.Span.Start)
		p.skip()
	}

	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}

	if tok.Kind == token.BlockEntry {
		mark := tok.Span.End
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.BlockEntry && tok.Kind != token.BlockEnd {
			if err := p.pushState(stateBlockSequenceEntry, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(true, false)
		}
		p.state = stateBlockSequenceEntry
		return p.processEmptyScalar(mark)
	}

	if tok.Kind == token.BlockEnd {
		p.state = p.popState()
		p.popMark()
		ev := event.Event{Span: tok.Span, Kind: event.SequenceEnd}
		p.skip()
		return ev, nil
	}

	contextMark := p.popMark()
	return event.Event{}, newErrorContext("while parsing a block collection", contextMark, "did not find expected '-' indicator", tok.Span.Start)
}

// parseIndentlessSequenceEntry parses the production:
//
//	indentless_sequence ::= (BLOCK-ENTRY block_node?)+
func (p *Parser) parseIndentlessSequenceEntry() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}

	if tok.Kind == token.BlockEntry {
		mark := tok.Span.End
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.BlockEntry && tok.Kind != token.Key &&
			tok.Kind != token.Value && tok.Kind != token.BlockEnd {
			if err := p.pushState(stateIndentlessSequenceEntry, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(true, false)
		}
		p.state = stateIndentlessSequenceEntry
		return p.processEmptyScalar(mark)
	}

	p.state = p.popState()
	return event.Event{Span: token.EmptySpan(tok.Span.Start), Kind: event.SequenceEnd}, nil
}

// parseBlockMappingKey parses the productions:
//
//	block_mapping ::= BLOCK-MAPPING-START
//	                  ((KEY block_node_or_indentless_sequence?)?
//	                   (VALUE block_node_or_indentless_sequence?)?)*
//	                  BLOCK-END
func (p *Parser) parseBlockMappingKey(first bool) (event.Event, error) {
	if first {
		tok, err := p.peek()
		if err != nil {
			return event.Event{}, err
		}
		p.pushMark(tok.Span.Start)
		p.skip()
	}

	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}

	switch tok.Kind {
	case token.Key:
		mark := tok.Span.End
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.Key && tok.Kind != token.Value && tok.Kind != token.BlockEnd {
			if err := p.pushState(stateBlockMappingValue, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(true, true)
		}
		p.state = stateBlockMappingValue
		return p.processEmptyScalar(mark)
	case token.BlockEnd:
		p.state = p.popState()
		p.popMark()
		ev := event.Event{Span: tok.Span, Kind: event.MappingEnd}
		p.skip()
		return ev, nil
	}

	contextMark := p.popMark()
	return event.Event{}, newErrorContext("while parsing a block mapping", contextMark, "did not find expected key", tok.Span.Start)
}

// parseBlockMappingValue parses the production:
//
//	block_mapping ::= BLOCK-MAPPING-START
//	                  ((KEY block_node_or_indentless_sequence?)?
//	                   (VALUE block_node_or_indentless_sequence?)?)*
//	                  BLOCK-END
func (p *Parser) parseBlockMappingValue() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	if tok.Kind == token.Value {
		mark := tok.Span.End
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.Key && tok.Kind != token.Value && tok.Kind != token.BlockEnd {
			if err := p.pushState(stateBlockMappingKey, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(true, true)
		}
		p.state = stateBlockMappingKey
		return p.processEmptyScalar(mark)
	}
	p.state = stateBlockMappingKey
	return p.processEmptyScalar(tok.Span.Start)
}
