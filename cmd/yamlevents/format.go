// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/saphyr-go/yamlcore/event"
	"github.com/saphyr-go/yamlcore/token"
)

// formatToken renders a token.Token the way yaml-go-yaml's gotest2yaml.sh
// harness renders libyaml tokens: the kind followed by any payload fields
// relevant to it, space-separated.
func formatToken(tok token.Token) string {
	var b strings.Builder
	b.WriteString(tok.Kind.String())
	switch tok.Kind {
	case token.VersionDirective:
		fmt.Fprintf(&b, " %d.%d", tok.Major, tok.Minor)
	case token.TagDirective:
		fmt.Fprintf(&b, " %s %s", tok.Handle, tok.Prefix)
	case token.Alias, token.Anchor:
		fmt.Fprintf(&b, " %s", tok.Value)
	case token.Tag:
		fmt.Fprintf(&b, " %s %s", tok.Handle, tok.Suffix)
	case token.Scalar:
		fmt.Fprintf(&b, " %s %q", tok.Style, tok.Value)
	}
	return b.String()
}

// formatEvent renders an event.Event analogously to formatToken.
func formatEvent(ev event.Event) string {
	var b strings.Builder
	b.WriteString(ev.Kind.String())
	switch ev.Kind {
	case event.DocumentStart:
		fmt.Fprintf(&b, " explicit=%v", ev.Explicit)
		if ev.Version != nil {
			fmt.Fprintf(&b, " version=%d.%d", ev.Version.Major, ev.Version.Minor)
		}
	case event.DocumentEnd:
		fmt.Fprintf(&b, " explicit=%v", ev.Explicit)
	case event.Alias:
		fmt.Fprintf(&b, " *%d", ev.Anchor)
	case event.Scalar:
		fmt.Fprintf(&b, " %s %q", ev.Style, ev.Value)
		appendNodeProps(&b, ev)
	case event.SequenceStart, event.MappingStart:
		fmt.Fprintf(&b, " flow=%v", ev.Flow)
		appendNodeProps(&b, ev)
	}
	return b.String()
}

func appendNodeProps(b *strings.Builder, ev event.Event) {
	if ev.Anchor != 0 {
		fmt.Fprintf(b, " &%d", ev.Anchor)
	}
	if !ev.Tag.IsZero() {
		fmt.Fprintf(b, " <%s>", ev.Tag.String())
	}
}
