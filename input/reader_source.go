// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"bufio"
	"io"
)

// ReaderSource adapts an io.Reader into a RuneSource.
type ReaderSource struct {
	r *bufio.Reader
}

// NewReaderSource creates a ReaderSource reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderSource{r: br}
}

// Next implements RuneSource.
func (s *ReaderSource) Next() (rune, bool) {
	c, _, err := s.r.ReadRune()
	if err != nil {
		return 0, false
	}
	return c, true
}
