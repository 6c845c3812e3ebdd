// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/token"
)

// parseFlowSequenceEntry parses the productions:
//
//	flow_sequence       ::= FLOW-SEQUENCE-START
//	                        (flow_sequence_entry FLOW-ENTRY)*
//	                        flow_sequence_entry?
//	                        FLOW-SEQUENCE-END
//	flow_sequence_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowSequenceEntry(first bool) (event.Event, error) {
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

	if tok.Kind != token.FlowSequenceEnd {
		if !first {
			if tok.Kind == token.FlowEntry {
				p.skip()
				tok, err = p.peek()
				if err != nil {
					return event.Event{}, err
				}
			} else {
				contextMark := p.popMark()
				return event.Event{}, newErrorContext("while parsing a flow sequence", contextMark, "did not find expected ',' or ']'", tok.Span.Start)
			}
		}

		if tok.Kind == token.Key {
			p.state = stateFlowSequenceEntryMappingKey
			ev := event.Event{Span: tok.Span, Kind: event.MappingStart, Flow: true}
			p.skip()
			return ev, nil
		} else if tok.Kind != token.FlowSequenceEnd {
			if err := p.pushState(stateFlowSequenceEntry, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(false, false)
		}
	}

	p.state = p.popState()
	p.popMark()
	ev := event.Event{Span: tok.Span, Kind: event.SequenceEnd}
	p.skip()
	return ev, nil
}

// parseFlowSequenceEntryMappingKey parses the production:
//
//	flow_sequence_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowSequenceEntryMappingKey() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	if tok.Kind != token.Value && tok.Kind != token.FlowEntry && tok.Kind != token.FlowSequenceEnd {
		if err := p.pushState(stateFlowSequenceEntryMappingValue, tok.Span.Start); err != nil {
			return event.Event{}, err
		}
		return p.parseNode(false, false)
	}
	mark := tok.Span.End
	p.skip()
	p.state = stateFlowSequenceEntryMappingValue
	return p.processEmptyScalar(mark)
}

// parseFlowSequenceEntryMappingValue parses the production:
//
//	flow_sequence_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowSequenceEntryMappingValue() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	if tok.Kind == token.Value {
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.FlowEntry && tok.Kind != token.FlowSequenceEnd {
			if err := p.pushState(stateFlowSequenceEntryMappingEnd, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(false, false)
		}
	}
	p.state = stateFlowSequenceEntryMappingEnd
	return p.processEmptyScalar(tok.Span.Start)
}

// parseFlowSequenceEntryMappingEnd parses the production:
//
//	flow_sequence_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowSequenceEntryMappingEnd() (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	p.state = stateFlowSequenceEntry
	return event.Event{Span: token.EmptySpan(tok.Span.Start), Kind: event.MappingEnd}, nil
}

// parseFlowMappingKey parses the productions:
//
//	flow_mapping       ::= FLOW-MAPPING-START
//	                       (flow_mapping_entry FLOW-ENTRY)*
//	                       flow_mapping_entry?
//	                       FLOW-MAPPING-END
//	flow_mapping_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
func (p *Parser) parseFlowMappingKey(first bool) (event.Event, error) {
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

	if tok.Kind != token.FlowMappingEnd {
		if !first {
			if tok.Kind == token.FlowEntry {
				p.skip()
				tok, err = p.peek()
				if err != nil {
					return event.Event{}, err
				}
			} else {
				contextMark := p.popMark()
				return event.Event{}, newErrorContext("while parsing a flow mapping", contextMark, "did not find expected ',' or '}'", tok.Span.Start)
			}
		}

		if tok.Kind == token.Key {
			p.skip()
			tok, err = p.peek()
			if err != nil {
				return event.Event{}, err
			}
			if tok.Kind != token.Value && tok.Kind != token.FlowEntry && tok.Kind != token.FlowMappingEnd {
				if err := p.pushState(stateFlowMappingValue, tok.Span.Start); err != nil {
					return event.Event{}, err
				}
				return p.parseNode(false, false)
			}
			p.state = stateFlowMappingValue
			return p.processEmptyScalar(tok.Span.Start)
		} else if tok.Kind != token.FlowMappingEnd {
			if err := p.pushState(stateFlowMappingEmptyValue, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(false, false)
		}
	}

	p.state = p.popState()
	p.popMark()
	ev := event.Event{Span: tok.Span, Kind: event.MappingEnd}
	p.skip()
	return ev, nil
}

// parseFlowMappingValue parses the production:
//
//	flow_mapping_entry ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
// empty is true when called from the emptyValue state (a flow mapping entry
// with no KEY at all), which always synthesizes an empty scalar.
func (p *Parser) parseFlowMappingValue(empty bool) (event.Event, error) {
	tok, err := p.peek()
	if err != nil {
		return event.Event{}, err
	}
	if empty {
		p.state = stateFlowMappingKey
		return p.processEmptyScalar(tok.Span.Start)
	}
	if tok.Kind == token.Value {
		p.skip()
		tok, err = p.peek()
		if err != nil {
			return event.Event{}, err
		}
		if tok.Kind != token.FlowEntry && tok.Kind != token.FlowMappingEnd {
			if err := p.pushState(stateFlowMappingKey, tok.Span.Start); err != nil {
				return event.Event{}, err
			}
			return p.parseNode(false, false)
		}
	}
	p.state = stateFlowMappingKey
	return p.processEmptyScalar(tok.Span.Start)
}
