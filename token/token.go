// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package token

import "fmt"

// ScalarStyle records how a scalar was written in the source document.
type ScalarStyle int8

const (
	// Plain is an unquoted scalar.
	Plain ScalarStyle = iota
	// SingleQuoted is a single-quoted scalar.
	SingleQuoted
	// DoubleQuoted is a double-quoted scalar.
	DoubleQuoted
	// Literal is a `|` block scalar; breaks are preserved verbatim.
	Literal
	// Folded is a `>` block scalar; single breaks between non-blank lines
	// fold into spaces.
	Folded
)

// String implements fmt.Stringer.
func (s ScalarStyle) String() string {
	switch s {
	case Plain:
		return "plain"
	case SingleQuoted:
		return "single-quoted"
	case DoubleQuoted:
		return "double-quoted"
	case Literal:
		return "literal"
	case Folded:
		return "folded"
	default:
		return fmt.Sprintf("ScalarStyle(%d)", int8(s))
	}
}

// Kind identifies the shape of a Token's payload. It is a closed tagged
// union: the Kind determines which of Token's payload fields are meaningful
// (see Token).
type Kind int8

const (
	NoToken Kind = iota
	StreamStart
	StreamEnd
	VersionDirective
	TagDirective
	DocumentStart
	DocumentEnd
	BlockSequenceStart
	BlockMappingStart
	BlockEnd
	FlowSequenceStart
	FlowSequenceEnd
	FlowMappingStart
	FlowMappingEnd
	BlockEntry
	FlowEntry
	Key
	Value
	Alias
	Anchor
	Tag
	Scalar
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case NoToken:
		return "NO-TOKEN"
	case StreamStart:
		return "STREAM-START"
	case StreamEnd:
		return "STREAM-END"
	case VersionDirective:
		return "VERSION-DIRECTIVE"
	case TagDirective:
		return "TAG-DIRECTIVE"
	case DocumentStart:
		return "DOCUMENT-START"
	case DocumentEnd:
		return "DOCUMENT-END"
	case BlockSequenceStart:
		return "BLOCK-SEQUENCE-START"
	case BlockMappingStart:
		return "BLOCK-MAPPING-START"
	case BlockEnd:
		return "BLOCK-END"
	case FlowSequenceStart:
		return "FLOW-SEQUENCE-START"
	case FlowSequenceEnd:
		return "FLOW-SEQUENCE-END"
	case FlowMappingStart:
		return "FLOW-MAPPING-START"
	case FlowMappingEnd:
		return "FLOW-MAPPING-END"
	case BlockEntry:
		return "BLOCK-ENTRY"
	case FlowEntry:
		return "FLOW-ENTRY"
	case Key:
		return "KEY"
	case Value:
		return "VALUE"
	case Alias:
		return "ALIAS"
	case Anchor:
		return "ANCHOR"
	case Tag:
		return "TAG"
	case Scalar:
		return "SCALAR"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Token is a single lexical unit produced by the scanner.
//
// Only the fields relevant to Kind are populated; the rest are left at
// their zero value. The fields that apply to each Kind are:
//
//	VersionDirective:        Major, Minor
//	TagDirective:            Handle, Prefix
//	Alias, Anchor:           Value (the name)
//	Tag:                     Handle, Suffix
//	Scalar:                  Style, Value (the literal text)
type Token struct {
	Span  Span
	Kind  Kind
	Major  int
	Minor  int
	Handle string
	Prefix string
	Suffix string
	Style  ScalarStyle
	Value  string
}

// New creates a Token with no payload fields set beyond Span and Kind.
func New(span Span, kind Kind) Token {
	return Token{Span: span, Kind: kind}
}

// NewScalar creates a Scalar token.
func NewScalar(span Span, style ScalarStyle, value string) Token {
	return Token{Span: span, Kind: Scalar, Style: style, Value: value}
}

// NewAnchor creates an Anchor token.
func NewAnchor(span Span, name string) Token {
	return Token{Span: span, Kind: Anchor, Value: name}
}

// NewAlias creates an Alias token.
func NewAlias(span Span, name string) Token {
	return Token{Span: span, Kind: Alias, Value: name}
}

// NewTag creates a Tag token.
func NewTag(span Span, handle, suffix string) Token {
	return Token{Span: span, Kind: Tag, Handle: handle, Suffix: suffix}
}

// NewTagDirective creates a TagDirective token.
func NewTagDirective(span Span, handle, prefix string) Token {
	return Token{Span: span, Kind: TagDirective, Handle: handle, Prefix: prefix}
}

// NewVersionDirective creates a VersionDirective token.
func NewVersionDirective(span Span, major, minor int) Token {
	return Token{Span: span, Kind: VersionDirective, Major: major, Minor: minor}
}
