// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

// TaggedValue pairs a tag with a value for encoding. The wire form is the
// tag, the value's encoded length, then the value.
type TaggedValue[T TagLike] struct {
	tag   T
	value Encodable
}

// NewTaggedValue pairs tag with value.
func NewTaggedValue[T TagLike](tag T, value Encodable) TaggedValue[T] {
	return TaggedValue[T]{tag: tag, value: value}
}

// Tag returns the tag.
func (tv TaggedValue[T]) Tag() T {
	return tv.tag
}

func (tv TaggedValue[T]) header() (header[T], error) {
	length, err := tv.value.EncodedLength()
	if err != nil {
		return header[T]{}, err
	}
	return header[T]{tag: tv.tag, length: length}, nil
}

func (tv TaggedValue[T]) EncodedLength() (Length, error) {
	h, err := tv.header()
	if err != nil {
		return 0, err
	}
	hl, err := h.EncodedLength()
	if err != nil {
		return 0, err
	}
	return hl.Add(h.length)
}

func (tv TaggedValue[T]) EncodeBER(e *Encoder) error {
	h, err := tv.header()
	if err != nil {
		return err
	}
	if err := h.EncodeBER(e); err != nil {
		return err
	}
	return e.Encode(tv.value)
}

// TaggedSlice pairs a tag with the raw, unparsed bytes of its value. It is
// the zero copy decode-side counterpart of TaggedValue; the bytes alias
// the decoder's input buffer.
type TaggedSlice[T TagLike] struct {
	tag   T
	value Slice
}

// NewTaggedSlice pairs tag with the value bytes b, failing with
// ErrInvalidLength when b is too long for the format.
func NewTaggedSlice[T TagLike](tag T, b []byte) (TaggedSlice[T], error) {
	s, err := NewSlice(b)
	if err != nil {
		return TaggedSlice[T]{}, ErrInvalidLength
	}
	return TaggedSlice[T]{tag: tag, value: s}, nil
}

// Tag returns the tag.
func (ts TaggedSlice[T]) Tag() T {
	return ts.tag
}

// Bytes returns the value bytes.
func (ts TaggedSlice[T]) Bytes() []byte {
	return ts.value.Bytes()
}

// Length returns the value byte count.
func (ts TaggedSlice[T]) Length() Length {
	return ts.value.Length()
}

// IsEmpty reports whether the value holds no bytes.
func (ts TaggedSlice[T]) IsEmpty() bool {
	return ts.value.IsEmpty()
}

func (ts TaggedSlice[T]) EncodedLength() (Length, error) {
	h := header[T]{tag: ts.tag, length: ts.value.Length()}
	hl, err := h.EncodedLength()
	if err != nil {
		return 0, err
	}
	return hl.Add(h.length)
}

func (ts TaggedSlice[T]) EncodeBER(e *Encoder) error {
	h := header[T]{tag: ts.tag, length: ts.value.Length()}
	if err := h.EncodeBER(e); err != nil {
		return err
	}
	return e.Bytes(ts.value.Bytes())
}

func (ts *TaggedSlice[T]) DecodeBER(d *Decoder) error {
	h, err := decodeHeader[T](d)
	if err != nil {
		return err
	}

	body, err := d.Bytes(h.length.Int())
	if err != nil {
		// The header promised more bytes than the buffer holds
		return LengthError{Tag: h.tag.Embedding()}
	}

	*ts, err = NewTaggedSlice(h.tag, body)
	return err
}

// DecodeNested runs f over a fresh decoder for the value bytes, requiring
// it to consume all of them.
func (ts TaggedSlice[T]) DecodeNested(f func(*Decoder) error) error {
	sub := NewDecoder(ts.Bytes())
	if err := f(sub); err != nil {
		return err
	}
	return sub.Finish()
}

// DecodeTaggedSlice decodes one BER-tagged value, leaving its bytes
// unparsed.
func (d *Decoder) DecodeTaggedSlice() (TaggedSlice[Tag], error) {
	var ts TaggedSlice[Tag]
	err := d.Decode(&ts)
	return ts, err
}

// DecodeSimpleTaggedSlice is DecodeTaggedSlice for SIMPLE-TLV tags.
func (d *Decoder) DecodeSimpleTaggedSlice() (TaggedSlice[SimpleTag], error) {
	var ts TaggedSlice[SimpleTag]
	err := d.Decode(&ts)
	return ts, err
}

// DecodeTagged decodes a value required to carry tag, parsing its contents
// into v and requiring them to be fully consumed.
func (d *Decoder) DecodeTagged(tag Tag, v Decodable) error {
	ts, err := d.DecodeTaggedSlice()
	if err != nil {
		return err
	}

	if err := ts.Tag().AssertEq(tag); err != nil {
		return d.fail(err)
	}

	if err := ts.DecodeNested(func(sub *Decoder) error {
		return sub.Decode(v)
	}); err != nil {
		d.failed = true
		return err
	}
	return nil
}

// DecodeSimpleTagged is DecodeTagged for SIMPLE-TLV tags.
func (d *Decoder) DecodeSimpleTagged(tag SimpleTag, v Decodable) error {
	ts, err := d.DecodeSimpleTaggedSlice()
	if err != nil {
		return err
	}

	if err := ts.Tag().AssertEq(tag); err != nil {
		return d.fail(err)
	}

	if err := ts.DecodeNested(func(sub *Decoder) error {
		return sub.Decode(v)
	}); err != nil {
		d.failed = true
		return err
	}
	return nil
}
