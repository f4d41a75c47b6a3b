// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

// Encoder writes TLV structures into a caller-supplied byte buffer. It
// never allocates or grows the buffer; size it up front from
// EncodedLength, or use EncodeToBytes.
//
// Like the Decoder, an Encoder is poisoned by its first error.
type Encoder struct {
	bytes    []byte
	position Length
	failed   bool
}

// NewEncoder returns an encoder writing into buf.
func NewEncoder(buf []byte) *Encoder {
	return &Encoder{bytes: buf}
}

// fail poisons the encoder and returns err annotated with the current
// position.
func (e *Encoder) fail(err error) error {
	e.failed = true
	return at(err, e.position)
}

// Failed reports whether the encoder is poisoned.
func (e *Encoder) Failed() bool {
	return e.failed
}

// Position returns the current write offset.
func (e *Encoder) Position() Length {
	return e.position
}

// Encode encodes a single value, annotating any error with the position at
// which it arose.
func (e *Encoder) Encode(v Encodable) error {
	if e.failed {
		return e.fail(ErrFailed)
	}

	if err := v.EncodeBER(e); err != nil {
		e.failed = true
		return nested(err, e.position)
	}
	return nil
}

// reserve claims the next n bytes of the buffer for the caller to fill,
// failing with ErrOverlength when fewer remain.
func (e *Encoder) reserve(n int) ([]byte, error) {
	if e.failed {
		return nil, e.fail(ErrFailed)
	}

	length, err := LengthOf(n)
	if err != nil {
		return nil, e.fail(err)
	}

	if length.Int() > len(e.bytes)-e.position.Int() {
		return nil, e.fail(ErrOverlength)
	}

	position, err := e.position.Add(length)
	if err != nil {
		return nil, e.fail(err)
	}

	window := e.bytes[e.position.Int():position.Int()]
	e.position = position
	return window, nil
}

// Byte writes a single byte.
func (e *Encoder) Byte(b byte) error {
	window, err := e.reserve(1)
	if err != nil {
		return err
	}
	window[0] = b
	return nil
}

// Bytes writes p verbatim.
func (e *Encoder) Bytes(p []byte) error {
	window, err := e.reserve(len(p))
	if err != nil {
		return err
	}
	copy(window, p)
	return nil
}

// encodeInto reserves a window of expected bytes, encodes fields into it
// through a nested encoder, and returns the size they actually wrote.
func (e *Encoder) encodeInto(expected Length, fields []Encodable) (Length, error) {
	window, err := e.reserve(expected.Int())
	if err != nil {
		return 0, err
	}

	sub := NewEncoder(window)
	for _, f := range fields {
		if err := f.EncodeBER(sub); err != nil {
			e.failed = true
			return 0, err
		}
	}

	out, err := sub.Finish()
	if err != nil {
		e.failed = true
		return 0, err
	}
	return Length(len(out)), nil
}

// EncodeTaggedCollection writes fields concatenated under a single header
// carrying tag. The header's length is computed up front from the fields'
// EncodedLength; if they then encode to a different size, the error is a
// LengthError for tag.
func (e *Encoder) EncodeTaggedCollection(tag Tag, fields []Encodable) error {
	expected, err := sumEncodedLengths(fields)
	if err != nil {
		return e.fail(err)
	}

	h := header[Tag]{tag: tag, length: expected}
	if err := h.EncodeBER(e); err != nil {
		e.failed = true
		return err
	}

	actual, err := e.encodeInto(expected, fields)
	if err != nil {
		return err
	}
	if actual != expected {
		return e.fail(LengthError{Tag: tag})
	}
	return nil
}

// EncodeUntaggedCollection writes fields concatenated with no enclosing
// header.
func (e *Encoder) EncodeUntaggedCollection(fields []Encodable) error {
	expected, err := sumEncodedLengths(fields)
	if err != nil {
		return e.fail(err)
	}

	actual, err := e.encodeInto(expected, fields)
	if err != nil {
		return err
	}
	if actual != expected {
		return e.fail(UnderlengthError{Expected: expected, Actual: actual})
	}
	return nil
}

// Finish returns the encoded bytes.
func (e *Encoder) Finish() ([]byte, error) {
	if e.failed {
		return nil, at(ErrFailed, e.position)
	}
	return e.bytes[:e.position.Int()], nil
}
