// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import "fmt"

// SimpleTag identifies a SIMPLE-TLV value: a single octet, 0x01 through
// 0xFE. The octets 0x00 and 0xFF are reserved.
type SimpleTag uint8

// NewSimpleTag validates number as a SIMPLE-TLV tag, failing with an
// InvalidTagError for the reserved octets.
func NewSimpleTag(number uint8) (SimpleTag, error) {
	if number == 0x00 || number == 0xFF {
		return 0, InvalidTagError{Byte: number}
	}
	return SimpleTag(number), nil
}

// Embedding maps the tag into BER space as a universal primitive tag with
// the same number.
func (t SimpleTag) Embedding() Tag {
	return Universal(uint16(t))
}

// AssertEq fails with an UnexpectedTagError unless t equals expected.
func (t SimpleTag) AssertEq(expected SimpleTag) error {
	if t != expected {
		e := expected.Embedding()
		return UnexpectedTagError{Expected: &e, Actual: t.Embedding()}
	}
	return nil
}

// WithValue pairs this tag with a value for encoding.
func (t SimpleTag) WithValue(value Encodable) TaggedValue[SimpleTag] {
	return NewTaggedValue(t, value)
}

func (t SimpleTag) String() string {
	return fmt.Sprintf("simple(0x%02x)", uint8(t))
}

func (t SimpleTag) EncodedLength() (Length, error) {
	return 1, nil
}

func (t SimpleTag) EncodeBER(e *Encoder) error {
	return e.Byte(byte(t))
}

func (t *SimpleTag) DecodeBER(d *Decoder) error {
	b, err := d.Byte()
	if err != nil {
		return err
	}

	tag, err := NewSimpleTag(b)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}
