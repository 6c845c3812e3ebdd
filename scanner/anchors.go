// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"strings"

	"github.com/saphyr-go/yamlcore/token"
)

// fetchAnchor scans an `&name` anchor or `*name` alias.
func (s *Scanner) fetchAnchor(alias bool) error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanAnchor(alias)
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *Scanner) scanAnchor(alias bool) (token.Token, error) {
	start := s.mark
	var buf strings.Builder

	s.skipNonBlank()
	s.in.Lookahead(1)
	for isAnchorChar(s.in.Peek()) {
		buf.WriteRune(s.in.Peek())
		s.skipNonBlank()
		s.in.Lookahead(1)
	}

	if buf.Len() == 0 {
		return token.Token{}, newError(start, "while scanning an anchor or alias, did not find expected alphabetic or numeric character")
	}

	span := token.NewSpan(start, s.mark)
	if alias {
		return token.NewAlias(span, buf.String()), nil
	}
	return token.NewAnchor(span, buf.String()), nil
}
