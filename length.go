// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

// MaxLength is the largest value length the format profile can express.
const MaxLength = 0xFFFF

// Length is the length, in bytes, of an encoded value.
//
// Three wire forms exist: a single byte below 0x80; the prefix 0x81
// followed by one length byte; and the prefix 0x82 followed by two length
// bytes, big endian. The indefinite form (a bare 0x80) and prefixes above
// 0x82 are rejected. Non-minimal long forms are accepted on decode.
type Length uint16

// LengthOf converts a byte count to a Length, failing with ErrOverflow
// when it does not fit.
func LengthOf(n int) (Length, error) {
	if n < 0 || n > MaxLength {
		return 0, ErrOverflow
	}
	return Length(n), nil
}

// Add returns l + r, failing with ErrOverflow on 16-bit wraparound.
func (l Length) Add(r Length) (Length, error) {
	sum := uint32(l) + uint32(r)
	if sum > MaxLength {
		return 0, ErrOverflow
	}
	return Length(sum), nil
}

// Int returns the length as a byte count.
func (l Length) Int() int {
	return int(l)
}

// EncodedLength returns the size of the wire form of l itself.
func (l Length) EncodedLength() (Length, error) {
	switch {
	case l < 0x80:
		return 1, nil
	case l <= 0xFF:
		return 2, nil
	default:
		return 3, nil
	}
}

func (l Length) EncodeBER(e *Encoder) error {
	switch {
	case l < 0x80:
		return e.Byte(byte(l))
	case l <= 0xFF:
		if err := e.Byte(0x81); err != nil {
			return err
		}
		return e.Byte(byte(l))
	default:
		if err := e.Byte(0x82); err != nil {
			return err
		}
		if err := e.Byte(byte(l >> 8)); err != nil {
			return err
		}
		return e.Byte(byte(l))
	}
}

func (l *Length) DecodeBER(d *Decoder) error {
	b, err := d.Byte()
	if err != nil {
		return err
	}

	switch {
	case b < 0x80:
		*l = Length(b)
	case b == 0x80:
		// Indefinite lengths are not self delimiting
		return ErrInvalidLength
	case b == 0x81:
		v, err := d.Byte()
		if err != nil {
			return err
		}
		*l = Length(v)
	case b == 0x82:
		hi, err := d.Byte()
		if err != nil {
			return err
		}
		lo, err := d.Byte()
		if err != nil {
			return err
		}
		*l = Length(hi)<<8 | Length(lo)
	default:
		// 0x83 and up would express lengths past MaxLength
		return ErrOverlength
	}
	return nil
}

// sumEncodedLengths totals the encoded lengths of a set of values.
func sumEncodedLengths(values []Encodable) (Length, error) {
	var sum Length
	for _, v := range values {
		l, err := v.EncodedLength()
		if err != nil {
			return 0, err
		}
		if sum, err = sum.Add(l); err != nil {
			return 0, err
		}
	}
	return sum, nil
}
