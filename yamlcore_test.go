// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"strings"
	"testing"

	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/internal/testutil/assert"
	"github.com/saphyr-go/yamlcore/token"
)

func TestNewTokenStreamScansToCompletion(t *testing.T) {
	ts := NewTokenStream("[1, 2]")
	var kinds []token.Kind
	for {
		tok, err := ts.Next()
		if err != nil {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, token.StreamEnd, kinds[len(kinds)-1])
	assert.IsNil(t, ts.Err())
}

func TestNewTokenStreamFromReaderAgreesWithString(t *testing.T) {
	a := NewTokenStream("a: b")
	b := NewTokenStreamFromReader(strings.NewReader("a: b"))
	for {
		ta, erra := a.Next()
		tb, errb := b.Next()
		if erra != nil || errb != nil {
			assert.Equal(t, erra, errb)
			break
		}
		assert.Equal(t, ta.Kind, tb.Kind)
	}
}

func TestNewEventStreamParsesToCompletion(t *testing.T) {
	es := NewEventStream("a: b")
	var kinds []event.Kind
	for {
		ev, err := es.Next()
		if err != nil {
			break
		}
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, event.StreamEnd, kinds[len(kinds)-1])
	assert.IsNil(t, es.Err())
}

func TestLoadForwardsEventsInOrder(t *testing.T) {
	var got []event.Kind
	err := Load(NewEventStream("a: [1, 2]"), SpannedEventReceiverFunc(func(ev event.Event, span token.Span) error {
		got = append(got, ev.Kind)
		assert.Equal(t, ev.Span, span)
		return nil
	}))
	assert.NoError(t, err)
	assert.Equal(t, event.StreamStart, got[0])
	assert.Equal(t, event.StreamEnd, got[len(got)-1])
}

func TestLoadStopsOnReceiverError(t *testing.T) {
	boom := errBoom{}
	calls := 0
	err := Load(NewEventStream("a: b\nc: d"), SpannedEventReceiverFunc(func(ev event.Event, span token.Span) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	}))
	assert.Equal(t, boom, err)
	assert.Equal(t, 2, calls)
}

func TestLoadPropagatesStreamError(t *testing.T) {
	err := Load(NewEventStream("*missing"), SpannedEventReceiverFunc(func(ev event.Event, span token.Span) error {
		return nil
	}))
	assert.NotNil(t, err)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
