// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import "github.com/saphyr-go/yamlcore/token"

// simpleKey is a deferred token-promotion record: a token already appended
// to the pending queue that may later be retroactively prefixed with a Key
// token once a following ':' is observed.
type simpleKey struct {
	possible    bool
	required    bool
	tokenNumber int
	mark        token.Marker
}

func newSimpleKey(mark token.Marker) simpleKey {
	return simpleKey{mark: mark}
}

// indentEntry is one level of the block indentation stack.
//
// needsBlockEnd == false marks a "phantom" indent introduced transiently
// after a block-entry or mapping-value indicator to allow a nested block to
// open on the same line as its parent; such indents are popped silently,
// without emitting a BlockEnd token.
type indentEntry struct {
	indent        int
	needsBlockEnd bool
}

// implicitMappingState tracks, per open flow sequence, whether an implicit
// single-pair mapping (`[a: b]` meaning `[{a: b}]`) might start or has
// started.
type implicitMappingState int8

const (
	implicitMappingPossible implicitMappingState = iota
	implicitMappingInside
)

// Chomping is the policy applied to the trailing line break(s) of a block
// scalar. See YAML spec 8.1.1.2.
type Chomping int8

const (
	// ChompStrip excludes the final line break and any trailing empty lines.
	ChompStrip Chomping = iota
	// ChompClip preserves the final line break but excludes trailing empty lines.
	ChompClip
	// ChompKeep includes the final line break and all trailing empty lines.
	ChompKeep
)
