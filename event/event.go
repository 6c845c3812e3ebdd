// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package event defines the structural event stream the parser emits:
// document/collection/scalar boundaries, each carrying the Span of input it
// covers.
//
// Anchor is an integer id assigned by the parser's anchor registry (a
// monotonically increasing positive integer, one per anchor binding) rather
// than the raw anchor-name bytes; the event stream carries no comments.
package event

import (
	"fmt"

	"github.com/saphyr-go/yamlcore/token"
)

// Kind identifies the shape of an Event.
type Kind int8

const (
	StreamStart Kind = iota
	StreamEnd
	DocumentStart
	DocumentEnd
	Alias
	Scalar
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case StreamStart:
		return "STREAM-START"
	case StreamEnd:
		return "STREAM-END"
	case DocumentStart:
		return "DOCUMENT-START"
	case DocumentEnd:
		return "DOCUMENT-END"
	case Alias:
		return "ALIAS"
	case Scalar:
		return "SCALAR"
	case SequenceStart:
		return "SEQUENCE-START"
	case SequenceEnd:
		return "SEQUENCE-END"
	case MappingStart:
		return "MAPPING-START"
	case MappingEnd:
		return "MAPPING-END"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Tag is a resolved tag property: a directive-table prefix plus the node's
// suffix. A zero Tag (Prefix == "" && Suffix == "") means no tag property
// was present on the node.
type Tag struct {
	Prefix string
	Suffix string
}

// IsZero reports whether the tag is absent.
func (t Tag) IsZero() bool { return t.Prefix == "" && t.Suffix == "" }

// String renders the tag as its prefix followed by its suffix, e.g.
// "tag:yaml.org,2002:str".
func (t Tag) String() string {
	return t.Prefix + t.Suffix
}

// Version is a parsed `%YAML M.N` directive.
type Version struct {
	Major int
	Minor int
}

// Event is one element of the parser's output stream.
//
// Only the fields relevant to Kind are populated:
//
//	DocumentStart:                 Explicit, Version (may be nil), TagDirectives
//	DocumentEnd:                   Explicit
//	Alias:                         Anchor
//	Scalar:                        Anchor, Tag, Style, Value
//	SequenceStart, MappingStart:   Anchor, Tag, Flow
type Event struct {
	Span token.Span
	Kind Kind

	// Explicit records whether a DocumentStart was introduced by `---` or a
	// DocumentEnd by `...`, as opposed to being synthesized.
	Explicit bool

	// Anchor is the id assigned to this node's anchor property, or 0 if the
	// node (or the aliased anchor) has none. For Alias, it is the id of the
	// most recent binding of the aliased name.
	Anchor int

	// Tag is the node's resolved tag property. Zero value means untagged.
	Tag Tag

	// Style records how a Scalar was written in the source.
	Style token.ScalarStyle

	// Flow records whether a SequenceStart or MappingStart used flow syntax
	// ([...]/{...}) rather than block indentation.
	Flow bool

	// Value is the scalar's literal text (Scalar only).
	Value string

	// Version is the stream's active %YAML directive, if any (DocumentStart
	// only).
	Version *Version

	// TagDirectives lists the %TAG directives active for this document, in
	// declaration order (DocumentStart only).
	TagDirectives []TagDirective
}

// TagDirective is a parsed `%TAG handle prefix` directive.
type TagDirective struct {
	Handle string
	Prefix string
}
