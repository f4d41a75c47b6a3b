// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import "errors"

// header is the tag-length pair preceding a value. It exists only
// transiently during coding and is never exposed.
type header[T TagLike] struct {
	tag    T
	length Length
}

func (h header[T]) EncodedLength() (Length, error) {
	tl, err := h.tag.EncodedLength()
	if err != nil {
		return 0, err
	}
	ll, err := h.length.EncodedLength()
	if err != nil {
		return 0, err
	}
	return tl.Add(ll)
}

func (h header[T]) EncodeBER(e *Encoder) error {
	if err := h.tag.EncodeBER(e); err != nil {
		return err
	}
	return h.length.EncodeBER(e)
}

// decodeTagInto decodes a tag of the flavour selected by T. Tag and
// SimpleTag are the only TagLike implementations, so the switch is total.
func decodeTagInto[T TagLike](d *Decoder, tag *T) error {
	switch tag := any(tag).(type) {
	case *Tag:
		return tag.DecodeBER(d)
	case *SimpleTag:
		return tag.DecodeBER(d)
	default:
		panic("bertlv: unreachable tag flavour")
	}
}

func decodeHeader[T TagLike](d *Decoder) (header[T], error) {
	var h header[T]
	if err := decodeTagInto(d, &h.tag); err != nil {
		return h, err
	}

	if err := h.length.DecodeBER(d); err != nil {
		// An overlong length is attributed to the tag it follows
		if errors.Is(err, ErrOverlength) {
			return h, LengthError{Tag: h.tag.Embedding()}
		}
		return h, err
	}
	return h, nil
}
