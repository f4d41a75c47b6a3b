// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

// Encodable is a value which knows its exact encoded size ahead of writing
// it. EncodedLength must agree with what EncodeBER writes; the collection
// encoders and EncodeToBytes cross-check the two.
type Encodable interface {
	EncodedLength() (Length, error)
	EncodeBER(e *Encoder) error
}

// Decodable is a value which can populate itself from a decoder.
// Implementations use a pointer receiver.
type Decodable interface {
	DecodeBER(d *Decoder) error
}

// Tagged is a type with a fixed outer tag.
type Tagged interface {
	BERTag() Tag
}

// Container is a type encoded as the concatenation of a sequence of
// fields.
type Container interface {
	// Fields passes the container's fields, in encoding order, to f.
	// The slice must not be retained after f returns.
	Fields(f func(fields []Encodable) error) error
}

// TagLike constrains the two tag flavours, Tag and SimpleTag.
type TagLike interface {
	comparable
	Encodable
	Embedding() Tag
}

// FromBytes decodes v from buf, requiring the whole buffer to be consumed.
func FromBytes(buf []byte, v Decodable) error {
	d := NewDecoder(buf)
	if err := d.Decode(v); err != nil {
		return err
	}
	return d.Finish()
}

// EncodeToSlice encodes v into buf, returning the prefix written.
func EncodeToSlice(v Encodable, buf []byte) ([]byte, error) {
	e := NewEncoder(buf)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Finish()
}

// EncodeToBytes encodes v into a freshly allocated buffer of exactly
// EncodedLength bytes. A value which writes less than it promised fails
// with an UnderlengthError.
func EncodeToBytes(v Encodable) ([]byte, error) {
	length, err := v.EncodedLength()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length.Int())
	out, err := EncodeToSlice(v, buf)
	if err != nil {
		return nil, err
	}
	if len(out) != length.Int() {
		actual, _ := LengthOf(len(out))
		return nil, UnderlengthError{Expected: length, Actual: actual}
	}
	return out, nil
}

// OptionalDecodable is the constraint for DecodeOptional: a decodable
// value with a known outer tag.
type OptionalDecodable interface {
	Decodable
	Tagged
}

// DecodeOptional decodes v only when the next byte matches the leading
// identifier octet of v's tag. It reports whether a value was decoded;
// end of input and a non-matching tag are not errors, and nothing is
// consumed in either case.
func DecodeOptional(d *Decoder, v OptionalDecodable) (bool, error) {
	b, ok := d.Peek()
	if !ok {
		if d.failed {
			return false, d.fail(ErrFailed)
		}
		return false, nil
	}

	if b != v.BERTag().firstOctet() {
		return false, nil
	}
	return true, d.Decode(v)
}

// TaggedContainer is the constraint for ContainerEncodable.
type TaggedContainer interface {
	Tagged
	Container
}

// ContainerEncodable adapts a tagged container into an Encodable: the
// container's fields are concatenated under its own tag.
func ContainerEncodable(c TaggedContainer) Encodable {
	return containerEncodable{c}
}

type containerEncodable struct {
	c TaggedContainer
}

func (ce containerEncodable) EncodedLength() (Length, error) {
	var total Length
	err := ce.c.Fields(func(fields []Encodable) error {
		inner, err := sumEncodedLengths(fields)
		if err != nil {
			return err
		}

		h := header[Tag]{tag: ce.c.BERTag(), length: inner}
		hl, err := h.EncodedLength()
		if err != nil {
			return err
		}

		total, err = hl.Add(inner)
		return err
	})
	return total, err
}

func (ce containerEncodable) EncodeBER(e *Encoder) error {
	return ce.c.Fields(func(fields []Encodable) error {
		return e.EncodeTaggedCollection(ce.c.BERTag(), fields)
	})
}
