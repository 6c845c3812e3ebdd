// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/token"
)

// parseNode parses the productions:
//
//	block_node_or_indentless_sequence ::= ALIAS
//	                                    | properties (block_content | indentless_block_sequence)?
//	                                    | block_content | indentless_block_sequence
//	block_node           ::= ALIAS | properties block_content? | block_content
//	flow_node            ::= ALIAS | properties flow_content?  | flow_content
//	properties           ::= TAG ANCHOR? | ANCHOR TAG?
//	block_content        ::= block_collection | flow_collection | SCALAR
//	flow_content         ::=                    flow_collection | SCALAR
func (p *Parser) parseNode(block, indentlessSequence bool) (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}

	if tok.Kind == token.Alias {
		p.state = p.popState()
		id, err := p.resolveAlias(tok.Value, tok.Span.Start)
		if err != nil {
			return event.Event{}, err
		}
		p.skip()
		return event.Event{Span: tok.Span, Kind: event.Alias, Anchor: id}, nil
	}

	startMark := tok.Span.Start
	endMark := startMark

	var haveTag bool
	var tagHandle, tagSuffix string
	var tagMark token.Marker
	var anchorName string
	var haveAnchor bool

	switch tok.Kind {
	case token.Anchor:
		anchorName = tok.Value
		haveAnchor = true
		endMark = tok.Span.End
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind == token.Tag {
			haveTag = true
			tagHandle, tagSuffix = tok.Handle, tok.Suffix
			tagMark = tok.Span.Start
			endMark = tok.Span.End
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return event.Event{}, err
			}
		}
	case token.Tag:
		haveTag = true
		tagHandle, tagSuffix = tok.Handle, tok.Suffix
		startMark = tok.Span.Start
		tagMark = tok.Span.Start
		endMark = tok.Span.End
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind == token.Anchor {
			anchorName = tok.Value
			haveAnchor = true
			endMark = tok.Span.End
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return event.Event{}, err
			}
		}
	}

	var tag event.Tag
	if haveTag {
		tag, err = p.resolveTag(tagHandle, tagSuffix, tagMark)
		if err != nil {
			return event.Event{}, err
		}
	}

	var anchorID int
	if haveAnchor {
		anchorID = p.bindAnchor(anchorName)
	}

	if indentlessSequence && tok.Kind == token.BlockEntry {
		p.state = stateIndentlessSequenceEntry
		return event.Event{
			Span: token.NewSpan(startMark, tok.Span.End), Kind: event.SequenceStart,
			Anchor: anchorID, Tag: tag, Flow: false,
		}, nil
	}

	if tok.Kind == token.Scalar {
		ev := event.Event{
			Span: token.NewSpan(startMark, tok.Span.End), Kind: event.Scalar,
			Anchor: anchorID, Tag: tag, Style: tok.Style, Value: tok.Value,
		}
		p.state = p.popState()
		p.skip()
		return ev, nil
	}

	if tok.Kind == token.FlowSequenceStart {
		p.state = stateFlowSequenceFirstEntry
		return event.Event{
			Span: token.NewSpan(startMark, tok.Span.End), Kind: event.SequenceStart,
			Anchor: anchorID, Tag: tag, Flow: true,
		}, nil
	}

	if tok.Kind == token.FlowMappingStart {
		p.state = stateFlowMappingFirstKey
		return event.Event{
			Span: token.NewSpan(startMark, tok.Span.End), Kind: event.MappingStart,
			Anchor: anchorID, Tag: tag, Flow: true,
		}, nil
	}

	if block && tok.Kind == token.BlockSequenceStart {
		p.state = stateBlockSequenceFirstEntry
		return event.Event{
			Span: token.NewSpan(startMark, tok.Span.End), Kind: event.SequenceStart,
			Anchor: anchorID, Tag: tag, Flow: false,
		}, nil
	}

	if block && tok.Kind == token.BlockMappingStart {
		p.state = stateBlockMappingFirstKey
		return event.Event{
			Span: token.NewSpan(startMark, tok.Span.End), Kind: event.MappingStart,
			Anchor: anchorID, Tag: tag, Flow: false,
		}, nil
	}

	if haveAnchor || haveTag {
		ev := event.Event{
			Span: token.NewSpan(startMark, endMark), Kind: event.Scalar,
			Anchor: anchorID, Tag: tag, Style: token.Plain,
		}
		p.state = p.popState()
		return ev, nil
	}

	context := "while parsing a flow node"
	if block {
		context = "while parsing a block node"
	}
	return event.Event{}, newErrorContext(context, startMark, "did not find expected node content", tok.Span.Start)
}

// processEmptyScalar synthesizes the implicit plain scalar YAML inserts for
// an omitted mapping key or value.
func (p *Parser) processEmptyScalar(mark token.Marker) (event.Event, error) {
	return event.Event{Span: token.EmptySpan(mark), Kind: event.Scalar, Style: token.Plain}, nil
}
