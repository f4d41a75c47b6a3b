// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import "fmt"

// Class is the two-bit tag class from the leading identifier octet.
type Class uint8

const (
	ClassUniversal   Class = 0b00
	ClassApplication Class = 0b01
	ClassContext     Class = 0b10
	ClassPrivate     Class = 0b11
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "universal"
	case ClassApplication:
		return "application"
	case ClassContext:
		return "context"
	case ClassPrivate:
		return "private"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// maxTagNumber is the largest tag number expressible in the two-octet high
// tag number form. Longer continuations are rejected with ErrOverlength in
// both directions.
const maxTagNumber = 0x3FFF

// Tag identifies a BER-TLV value.
//
// Numbers up to 30 occupy the low five bits of the identifier octet.
// Larger numbers set those bits to 0b11111 and follow in base-128
// continuation octets, high bit flagging continuation, most significant
// first.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint16
}

// Universal returns the primitive universal tag with the given number.
func Universal(number uint16) Tag {
	return Tag{Class: ClassUniversal, Number: number}
}

// Application returns the primitive application tag with the given number.
func Application(number uint16) Tag {
	return Tag{Class: ClassApplication, Number: number}
}

// Context returns the primitive context-specific tag with the given number.
func Context(number uint16) Tag {
	return Tag{Class: ClassContext, Number: number}
}

// Private returns the primitive private tag with the given number.
func Private(number uint16) Tag {
	return Tag{Class: ClassPrivate, Number: number}
}

// AsConstructed returns the constructed form of t.
func (t Tag) AsConstructed() Tag {
	t.Constructed = true
	return t
}

// Embedding returns the BER form of this tag; for Tag itself it is the
// identity.
func (t Tag) Embedding() Tag {
	return t
}

// AssertEq fails with an UnexpectedTagError unless t equals expected.
func (t Tag) AssertEq(expected Tag) error {
	if t != expected {
		return UnexpectedTagError{Expected: &expected, Actual: t}
	}
	return nil
}

// WithValue pairs this tag with a value for encoding.
func (t Tag) WithValue(value Encodable) TaggedValue[Tag] {
	return NewTaggedValue(t, value)
}

func (t Tag) String() string {
	form := "primitive"
	if t.Constructed {
		form = "constructed"
	}
	return fmt.Sprintf("%s/%s(0x%x)", t.Class, form, t.Number)
}

// firstOctet returns the leading identifier octet of t's wire form.
func (t Tag) firstOctet() byte {
	b := byte(t.Class) << 6
	if t.Constructed {
		b |= 0x20
	}
	if t.Number <= 30 {
		b |= byte(t.Number)
	} else {
		b |= 0x1F
	}
	return b
}

func (t Tag) EncodedLength() (Length, error) {
	switch {
	case t.Number <= 30:
		return 1, nil
	case t.Number <= 0x7F:
		return 2, nil
	case t.Number <= maxTagNumber:
		return 3, nil
	default:
		return 0, ErrOverlength
	}
}

func (t Tag) EncodeBER(e *Encoder) error {
	if t.Number > maxTagNumber {
		return ErrOverlength
	}

	if err := e.Byte(t.firstOctet()); err != nil {
		return err
	}

	switch {
	case t.Number <= 30:
		return nil
	case t.Number <= 0x7F:
		return e.Byte(byte(t.Number))
	default:
		if err := e.Byte(0x80 | byte(t.Number>>7)); err != nil {
			return err
		}
		return e.Byte(byte(t.Number & 0x7F))
	}
}

func (t *Tag) DecodeBER(d *Decoder) error {
	b, err := d.Byte()
	if err != nil {
		return err
	}

	t.Class = Class(b >> 6)
	t.Constructed = b&0x20 != 0
	t.Number = uint16(b & 0x1F)

	if t.Number != 0x1F {
		return nil
	}

	b, err = d.Byte()
	if err != nil {
		return err
	}
	if b&0x80 == 0 {
		t.Number = uint16(b)
		return nil
	}

	first := b
	b, err = d.Byte()
	if err != nil {
		return err
	}
	if b&0x80 != 0 {
		// A third continuation octet would carry the number past
		// maxTagNumber
		return ErrOverlength
	}
	t.Number = uint16(first&0x7F)<<7 | uint16(b)
	return nil
}
