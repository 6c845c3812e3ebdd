// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yamlcore wires the Input, Scanner and Parser layers into the two
// pull interfaces the rest of the module consumes: scanning tokens and
// parsing events. Each pull interface has a constructor per input kind
// (string vs. io.Reader) rather than a single mutable type configured after
// construction.
package yamlcore

import (
	"io"

	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/parser"
	"github.com/saphyr-go/yamlcore/scanner"
	"github.com/saphyr-go/yamlcore/token"
)

// TokenStream is the scanner's pull interface: one token per call, io.EOF at
// stream end, and a sticky terminal error after the first failure.
type TokenStream interface {
	Next() (token.Token, error)
	Err() error
}

// EventStream is the parser's pull interface: one event per call, io.EOF at
// stream end, and a sticky terminal error after the first failure.
type EventStream interface {
	Next() (event.Event, error)
	Err() error
}

// NewTokenStream returns a TokenStream scanning a fully buffered string.
// Scalar values are freshly allocated; they do not borrow from s.
func NewTokenStream(s string) TokenStream {
	return scanner.NewFromString(s)
}

// NewTokenStreamFromReader returns a TokenStream scanning r incrementally.
// Scalar values are always freshly allocated.
func NewTokenStreamFromReader(r io.Reader) TokenStream {
	return scanner.NewFromReader(r)
}

// NewEventStream returns an EventStream parsing a fully buffered string.
func NewEventStream(s string) EventStream {
	return parser.NewFromString(s)
}

// NewEventStreamFromReader returns an EventStream parsing r incrementally.
func NewEventStreamFromReader(r io.Reader) EventStream {
	return parser.NewFromReader(r)
}

// SpannedEventReceiver is the callback capability Load drives: one call per
// event, in stream order.
type SpannedEventReceiver interface {
	OnEvent(ev event.Event, span token.Span) error
}

// SpannedEventReceiverFunc adapts a plain function to SpannedEventReceiver.
type SpannedEventReceiverFunc func(ev event.Event, span token.Span) error

// OnEvent implements SpannedEventReceiver.
func (f SpannedEventReceiverFunc) OnEvent(ev event.Event, span token.Span) error {
	return f(ev, span)
}

// Load drives an EventStream to completion, forwarding every event (and its
// span) to recv in order. It returns the first error encountered, whether
// from the stream itself or from recv, and stops driving the stream as soon
// as either occurs.
func Load(stream EventStream, recv SpannedEventReceiver) error {
	for {
		ev, err := stream.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := recv.OnEvent(ev, ev.Span); err != nil {
			return err
		}
	}
}
