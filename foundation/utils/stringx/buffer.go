// File: buffer.go
// Title: Growable String Buffer
// Description: Mutable byte buffer with push, set and first-occurrence
//              replacement of differing lengths.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package stringx

import (
	"bytes"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
)

// minGrow is the smallest capacity step when the buffer grows
const minGrow = 32

// Buffer is a growable mutable string. The zero value is an empty buffer
// ready to use.
type Buffer struct {
	data []byte
}

// NewBuffer returns a buffer holding initial
func NewBuffer(initial string) *Buffer {
	b := &Buffer{}
	b.Set(initial)
	return b
}

// Set replaces the content of the buffer
func (b *Buffer) Set(s string) {
	b.data = b.data[:0]
	b.PushString(s)
}

// PushByte appends a single byte
func (b *Buffer) PushByte(c byte) {
	b.grow(1)
	b.data = append(b.data, c)
}

// PushString appends s
func (b *Buffer) PushString(s string) {
	b.grow(len(s))
	b.data = append(b.data, s...)
}

// ReplaceFirst replaces the first occurrence of needle with replacement.
// The tail of the buffer is shifted in place when the lengths differ.
func (b *Buffer) ReplaceFirst(needle, replacement string) error {
	_, err := b.ReplaceFirstFrom(0, needle, replacement)
	return err
}

// ReplaceFirstFrom replaces the first occurrence of needle at or after
// byte offset from and returns the offset at which it was found
func (b *Buffer) ReplaceFirstFrom(from int, needle, replacement string) (int, error) {
	if needle == "" {
		return -1, mdwerror.New("empty needle").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("stringx.ReplaceFirst")
	}

	idx := b.IndexFrom(from, needle)
	if idx < 0 {
		return -1, mdwerror.Newf("%q not found in buffer", needle).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("stringx.ReplaceFirst")
	}

	delta := len(replacement) - len(needle)
	tail := idx + len(needle)
	oldLen := len(b.data)

	switch {
	case delta > 0:
		b.grow(delta)
		b.data = b.data[:oldLen+delta]
		copy(b.data[tail+delta:], b.data[tail:oldLen])
	case delta < 0:
		copy(b.data[tail+delta:], b.data[tail:])
		b.data = b.data[:oldLen+delta]
	}
	copy(b.data[idx:], replacement)
	return idx, nil
}

// IndexFrom returns the offset of the first occurrence of s at or after
// from, or -1
func (b *Buffer) IndexFrom(from int, s string) int {
	if from < 0 {
		from = 0
	}
	if from > len(b.data) {
		return -1
	}
	idx := bytes.Index(b.data[from:], []byte(s))
	if idx < 0 {
		return -1
	}
	return from + idx
}

// Index returns the byte offset of the first occurrence of s, or -1
func (b *Buffer) Index(s string) int {
	return b.IndexFrom(0, s)
}

// String returns the buffer content
func (b *Buffer) String() string {
	return string(b.data)
}

// Len returns the length in bytes
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset empties the buffer and keeps its storage
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

func (b *Buffer) grow(n int) {
	if len(b.data)+n <= cap(b.data) {
		return
	}
	newCap := 2*cap(b.data) + n
	if newCap < minGrow {
		newCap = minGrow
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}
