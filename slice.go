// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

// Slice is a length-checked view of a byte buffer. It aliases the memory
// it was constructed over; a Slice produced by decoding remains valid only
// as long as the input buffer.
type Slice struct {
	bytes  []byte
	length Length
}

// NewSlice wraps b, failing with ErrOverflow when it is too long for the
// format.
func NewSlice(b []byte) (Slice, error) {
	length, err := LengthOf(len(b))
	if err != nil {
		return Slice{}, err
	}
	return Slice{bytes: b, length: length}, nil
}

// Bytes returns the underlying bytes.
func (s Slice) Bytes() []byte {
	return s.bytes
}

// Length returns the byte count.
func (s Slice) Length() Length {
	return s.length
}

// IsEmpty reports whether the slice holds no bytes.
func (s Slice) IsEmpty() bool {
	return s.length == 0
}

// A Slice encodes as its raw contents, with no header; pair it with a tag
// via WithValue to add one.
func (s Slice) EncodedLength() (Length, error) {
	return s.length, nil
}

func (s Slice) EncodeBER(e *Encoder) error {
	return e.Bytes(s.bytes)
}
