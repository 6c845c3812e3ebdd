// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"testing"

	"github.com/saphyr-go/yamlcore/internal/testutil/assert"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{StreamStart, "STREAM-START"},
		{MappingStart, "MAPPING-START"},
		{Scalar, "SCALAR"},
		{Kind(99), "Kind(99)"},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, c.k.String(), "Kind(%d).String()", int8(c.k))
	}
}

func TestTagIsZero(t *testing.T) {
	assert.True(t, Tag{}.IsZero())
	assert.False(t, Tag{Suffix: "str"}.IsZero())
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "tag:yaml.org,2002:str", Tag{Prefix: "tag:yaml.org,2002:", Suffix: "str"}.String())
	assert.Equal(t, "!<tag:example.com,2000:app/foo>", Tag{Suffix: "!<tag:example.com,2000:app/foo>"}.String())
}
