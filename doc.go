// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package bertlv implements encoding and decoding of the BER-TLV and
// SIMPLE-TLV binary formats used by smart cards (ISO/IEC 7816-4).
//
// The Encoder/Decoder types in this package offer low level marshalling
// over caller-supplied buffers; neither ever allocates or copies value
// bytes. In most cases you will wish to use the higher level Marshal,
// MarshalTo and Unmarshal functions based upon reflection.
//
// Every value on the wire is a tag, a length, and that many value bytes.
// Two tag flavours exist:
//
//	Tag       | BER-TLV: a class (universal, application, context,
//	          | private), a constructed bit, and a number up to 0x3FFF
//	SimpleTag | SIMPLE-TLV: a single byte, 0x01 through 0xFE
//
// Encoding is two-pass: an Encodable first reports its exact size via
// EncodedLength, the caller sizes a buffer (or uses EncodeToBytes), and
// EncodeBER then fills it. The encoder cross-checks the two and reports
// values which write less than they promised.
//
// Both coders are poisoned by their first error: every later operation
// fails with ErrFailed. Use a fresh coder per buffer. Errors carry the
// byte position at which they arose, relative to the top level buffer;
// retrieve it with errors.As and the Error type.
//
// Decoded values are zero copy: TaggedSlice, Slice and byte slices
// produced by Unmarshal alias the input buffer and remain valid only as
// long as it does.
//
// The reflection layer maps struct fields to TLV values using the
// `tlv:"..."` struct tag:
//
//	`tlv:"number=0x11"`             universal primitive tag 0x11
//	`tlv:"application,number=0xF"`  class selector: application,
//	                                context or private
//	`tlv:"constructed,number=0x10"` constructed tag
//	`tlv:"simple=0x55"`             SIMPLE-TLV tag instead of BER
//	`tlv:"-"`                       skip this field
//
// Fields may be []byte or [N]byte (raw value bytes), a type implementing
// Encodable and Decodable (with value-receiver Encodable methods), or a
// nested tagged struct. Pointer fields are optional: absent values are
// skipped on encode and left nil on decode.
//
// A struct which implements Tagged encodes as a single constructed value
// carrying that tag around the concatenation of its fields; one which
// does not encodes as the bare concatenation.
package bertlv
