// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

// Decoder reads TLV structures from a byte buffer.
//
// A Decoder is poisoned by its first error: once any operation has
// returned an error, every later fallible operation fails with ErrFailed.
// Use a fresh Decoder per buffer.
//
// Decoding is zero copy: byte slices returned by the decoder alias the
// input buffer.
type Decoder struct {
	bytes    []byte
	position Length
	failed   bool
}

// NewDecoder returns a decoder reading from buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{bytes: buf}
}

// fail poisons the decoder and returns err annotated with the current
// position.
func (d *Decoder) fail(err error) error {
	d.failed = true
	return at(err, d.position)
}

// Failed reports whether the decoder is poisoned.
func (d *Decoder) Failed() bool {
	return d.failed
}

// Position returns the current read offset.
func (d *Decoder) Position() Length {
	return d.position
}

// Decode decodes a single value into v, annotating any error with the
// position at which it arose.
func (d *Decoder) Decode(v Decodable) error {
	if d.failed {
		return d.fail(ErrFailed)
	}

	if err := v.DecodeBER(d); err != nil {
		d.failed = true
		return nested(err, d.position)
	}
	return nil
}

// Bytes consumes exactly n bytes, failing with ErrTruncated when fewer
// remain. The returned slice aliases the input buffer.
func (d *Decoder) Bytes(n int) ([]byte, error) {
	if d.failed {
		return nil, d.fail(ErrFailed)
	}

	length, err := LengthOf(n)
	if err != nil {
		return nil, d.fail(err)
	}

	rest := d.bytes[d.position.Int():]
	if length.Int() > len(rest) {
		d.failed = true
		return nil, ErrTruncated
	}

	position, err := d.position.Add(length)
	if err != nil {
		return nil, d.fail(err)
	}

	d.position = position
	return rest[:length.Int()], nil
}

// Byte consumes a single byte.
func (d *Decoder) Byte() (byte, error) {
	b, err := d.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Peek returns the next byte without consuming it. ok is false at end of
// input and on a poisoned decoder.
func (d *Decoder) Peek() (b byte, ok bool) {
	if d.failed || d.position.Int() >= len(d.bytes) {
		return 0, false
	}
	return d.bytes[d.position.Int()], true
}

// IsFinished reports whether every input byte has been consumed.
func (d *Decoder) IsFinished() bool {
	return !d.failed && d.position.Int() == len(d.bytes)
}

// Finish checks that decoding consumed the whole buffer, failing with a
// TrailingDataError otherwise.
func (d *Decoder) Finish() error {
	if d.failed {
		return at(ErrFailed, d.position)
	}

	remaining := len(d.bytes) - d.position.Int()
	if remaining != 0 {
		rl, err := LengthOf(remaining)
		if err != nil {
			return d.fail(err)
		}
		return d.fail(TrailingDataError{Decoded: d.position, Remaining: rl})
	}
	return nil
}
