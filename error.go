// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import (
	"fmt"
	"strings"
)

type berror string

func (e berror) Error() string {
	return string(e)
}

const (
	// Operation attempted on a coder which previously failed
	ErrFailed = berror("bertlv: coder previously failed")

	// Length encoding not expressible in this format profile (e.g. the
	// indefinite form 0x80)
	ErrInvalidLength = berror("bertlv: invalid length encoding")

	// Arithmetic overflow of a Length or position
	ErrOverflow = berror("bertlv: length overflow")

	// Value, tag number or length too long for the format or the
	// output buffer
	ErrOverlength = berror("bertlv: value too long")

	// Input ended before the value was complete
	ErrTruncated = berror("bertlv: input truncated")

	// Tag octet which no tag flavour accepts; matched by InvalidTagError
	ErrInvalidTag = berror("bertlv: invalid tag")

	// Value length disagrees with its header; matched by LengthError
	ErrFieldLength = berror("bertlv: incorrect length for field")

	// Bytes left over after a complete decode; matched by
	// TrailingDataError
	ErrTrailingData = berror("bertlv: trailing data")

	// Encodable wrote fewer bytes than its EncodedLength promised;
	// matched by UnderlengthError
	ErrUnderlength = berror("bertlv: fewer bytes written than promised")

	// Tag other than the one required here; matched by
	// UnexpectedTagError
	ErrUnexpectedTag = berror("bertlv: unexpected tag")
)

// InvalidTagError reports a tag octet which is reserved or otherwise not a
// valid tag of the flavour being decoded.
type InvalidTagError struct {
	Byte byte
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf("%s 0x%02x", ErrInvalidTag, e.Byte)
}

func (e InvalidTagError) Is(target error) bool {
	return target == ErrInvalidTag
}

// LengthError reports a value whose length disagrees with its header: on
// decode, a header promising more bytes than the buffer holds (or an
// overlong length form); on encode, a collection whose fields did not fill
// the window their lengths reserved.
type LengthError struct {
	Tag Tag
}

func (e LengthError) Error() string {
	return fmt.Sprintf("%s %s", ErrFieldLength, e.Tag)
}

func (e LengthError) Is(target error) bool {
	return target == ErrFieldLength
}

// TrailingDataError reports bytes left unconsumed after a value which
// should have spanned the whole buffer.
type TrailingDataError struct {
	// Bytes consumed by the decode
	Decoded Length
	// Bytes left over
	Remaining Length
}

func (e TrailingDataError) Error() string {
	return fmt.Sprintf("%s: %d bytes decoded, %d left over", ErrTrailingData, e.Decoded, e.Remaining)
}

func (e TrailingDataError) Is(target error) bool {
	return target == ErrTrailingData
}

// UnderlengthError reports an Encodable which wrote fewer bytes than its
// EncodedLength declared.
type UnderlengthError struct {
	Expected Length
	Actual   Length
}

func (e UnderlengthError) Error() string {
	return fmt.Sprintf("%s (promised %d, wrote %d)", ErrUnderlength, e.Expected, e.Actual)
}

func (e UnderlengthError) Is(target error) bool {
	return target == ErrUnderlength
}

// UnexpectedTagError reports a decoded tag other than the one the caller
// required. Expected is nil when any of several tags would have done.
type UnexpectedTagError struct {
	Expected *Tag
	Actual   Tag
}

func (e UnexpectedTagError) Error() string {
	if e.Expected != nil {
		return fmt.Sprintf("%s: expected %s, got %s", ErrUnexpectedTag, *e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: got %s", ErrUnexpectedTag, e.Actual)
}

func (e UnexpectedTagError) Is(target error) bool {
	return target == ErrUnexpectedTag
}

// Error annotates an underlying error with the byte position, relative to
// the start of the top level buffer, at which it arose.
type Error struct {
	Err      error
	Position Length
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	uerr := strings.TrimPrefix(e.Err.Error(), "bertlv: ")
	return fmt.Sprintf("bertlv: %s (at byte %d)", uerr, e.Position)
}

// at annotates err with position, replacing any annotation already present.
func at(err error, position Length) error {
	if inner, ok := err.(*Error); ok {
		err = inner.Err
	}
	return &Error{Err: err, Position: position}
}

// nested shifts the position of an error surfacing from a value decoded or
// encoded at offset within the enclosing buffer. If the combined position
// does not fit in a Length, the annotation is dropped rather than reported
// wrongly.
func nested(err error, offset Length) error {
	var inner Length
	base := err
	if pe, ok := err.(*Error); ok {
		inner = pe.Position
		base = pe.Err
	}

	position, aerr := offset.Add(inner)
	if aerr != nil {
		return base
	}
	return &Error{Err: base, Position: position}
}
