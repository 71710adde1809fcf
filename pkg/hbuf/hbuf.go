// Package hbuf provides the growable byte buffer every renderer writes into.
//
// A Buffer created with New grows geometrically in multiples of its unit.
// A Buffer created with View is a read-only window over existing bytes:
// it may alias storage owned by someone else and rejects all mutation.
package hbuf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DefaultUnit is the growth unit used when New is given a non-positive unit.
const DefaultUnit = 64

// readChunk is the minimum spare capacity ensured before each read in ReadFrom.
const readChunk = 4096

var (
	// ErrReadOnly is returned by mutating operations on a read-only view.
	ErrReadOnly = errors.New("hbuf: buffer is read-only")

	// ErrNoSpace is returned when growing would exceed the buffer's limit.
	ErrNoSpace = errors.New("hbuf: buffer limit exceeded")
)

// Buffer is an append-only byte container.
// The zero value is not usable; construct with New or View.
type Buffer struct {
	data  []byte
	unit  int
	limit int
}

// Option configures a Buffer created by New.
type Option func(*Buffer)

// WithLimit caps the number of bytes the buffer may ever hold.
// Zero means unlimited.
func WithLimit(limit int) Option {
	return func(b *Buffer) {
		b.limit = limit
	}
}

// New creates an empty growable buffer that reallocates in steps of unit.
func New(unit int, opts ...Option) *Buffer {
	if unit <= 0 {
		unit = DefaultUnit
	}
	b := &Buffer{unit: unit}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// View wraps data in a read-only buffer. The bytes are not copied.
func View(data []byte) *Buffer {
	return &Buffer{data: data[:len(data):len(data)]}
}

// ViewString wraps s in a read-only buffer.
func ViewString(s string) *Buffer {
	return View([]byte(s))
}

// ReadOnly reports whether b rejects mutation.
func (b *Buffer) ReadOnly() bool {
	return b.unit == 0
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the backing capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Limit returns the configured byte limit, or zero if unlimited.
func (b *Buffer) Limit() int {
	return b.limit
}

// Bytes returns the buffer contents. The slice aliases the buffer and is
// only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// String returns a copy of the contents as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

// Grow ensures room for at least n more bytes.
func (b *Buffer) Grow(n int) error {
	if b.ReadOnly() {
		return ErrReadOnly
	}
	need := len(b.data) + n
	if b.limit > 0 && need > b.limit {
		return fmt.Errorf("%w: need %d bytes, limit %d", ErrNoSpace, need, b.limit)
	}
	if need <= cap(b.data) {
		return nil
	}

	size := cap(b.data)
	if size < b.unit {
		size = b.unit
	}
	for size < need {
		size += size/2 + b.unit
	}
	if b.limit > 0 && size > b.limit {
		size = b.limit
	}

	grown := make([]byte, len(b.data), size)
	copy(grown, b.data)
	b.data = grown
	return nil
}

// Put appends p.
func (b *Buffer) Put(p []byte) error {
	if err := b.Grow(len(p)); err != nil {
		return err
	}
	b.data = append(b.data, p...)
	return nil
}

// PutString appends s.
func (b *Buffer) PutString(s string) error {
	if err := b.Grow(len(s)); err != nil {
		return err
	}
	b.data = append(b.data, s...)
	return nil
}

// PutByte appends a single byte.
func (b *Buffer) PutByte(c byte) error {
	if err := b.Grow(1); err != nil {
		return err
	}
	b.data = append(b.data, c)
	return nil
}

// PutBuffer appends the contents of other, which may be read-only.
func (b *Buffer) PutBuffer(other *Buffer) error {
	if other == nil {
		return nil
	}
	return b.Put(other.data)
}

// PutInt appends the decimal form of n.
func (b *Buffer) PutInt(n int) error {
	var scratch [20]byte
	return b.Put(strconv.AppendInt(scratch[:0], int64(n), 10))
}

// Printf appends formatted output. format must be a constant: untrusted
// input belongs in args, never in format.
func (b *Buffer) Printf(format string, args ...any) error {
	if b.ReadOnly() {
		return ErrReadOnly
	}
	return b.Put(fmt.Appendf(nil, format, args...))
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Put(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadFrom appends everything read from r until EOF. It implements
// io.ReaderFrom. On error the bytes read so far are kept.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		chunk := readChunk
		if b.limit > 0 {
			chunk = min(chunk, b.limit-len(b.data))
		}
		if chunk <= 0 {
			// Full: any further byte from r is an overflow.
			var probe [1]byte
			n, err := r.Read(probe[:])
			switch {
			case n > 0:
				return total, fmt.Errorf("%w: limit %d", ErrNoSpace, b.limit)
			case errors.Is(err, io.EOF):
				return total, nil
			case err != nil:
				return total, fmt.Errorf("hbuf: read: %w", err)
			}
			continue
		}
		if err := b.Grow(chunk); err != nil {
			return total, err
		}
		start := len(b.data)
		n, err := r.Read(b.data[start:cap(b.data)])
		if n > 0 {
			b.data = b.data[:start+n]
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("hbuf: read: %w", err)
		}
	}
}

// Truncate empties the buffer while keeping its capacity.
func (b *Buffer) Truncate() error {
	if b.ReadOnly() {
		return ErrReadOnly
	}
	b.data = b.data[:0]
	return nil
}

// Clone returns a growable copy of b using unit as its growth step.
func (b *Buffer) Clone(unit int) (*Buffer, error) {
	c := New(unit, WithLimit(b.limit))
	if err := c.Put(b.data); err != nil {
		return nil, err
	}
	return c, nil
}

// Equal reports whether b and other hold the same bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(b.data, other.data)
}

// EqualString reports whether b holds exactly s.
func (b *Buffer) EqualString(s string) bool {
	return string(b.data) == s
}

// HasPrefix reports whether b begins with prefix.
func (b *Buffer) HasPrefix(prefix string) bool {
	return len(b.data) >= len(prefix) && string(b.data[:len(prefix)]) == prefix
}
