// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordMessage is a hand-written tagged container with three fields.
type recordMessage struct {
	a, b, c []byte
}

func (m recordMessage) BERTag() Tag {
	return Universal(10)
}

func (m recordMessage) Fields(f func(fields []Encodable) error) error {
	a, err := NewSlice(m.a)
	if err != nil {
		return err
	}
	b, err := NewSlice(m.b)
	if err != nil {
		return err
	}
	c, err := NewSlice(m.c)
	if err != nil {
		return err
	}

	return f([]Encodable{
		Universal(1).WithValue(a),
		Universal(2).WithValue(b),
		Universal(3).WithValue(c),
	})
}

func TestContainerEncodable(t *testing.T) {
	t.Parallel()

	m := recordMessage{
		a: []byte{1, 2},
		b: []byte{3, 4, 5},
		c: []byte{6, 7, 8, 9},
	}
	want := []byte{0x0A, 15, 0x01, 2, 1, 2, 0x02, 3, 3, 4, 5, 0x03, 4, 6, 7, 8, 9}

	enc := ContainerEncodable(m)

	el, err := enc.EncodedLength()
	require.NoError(t, err)
	assert.Equal(t, len(want), el.Int())

	assert.Equal(t, want, encodedBytes(t, enc))
}

func TestContainerRoundTrip(t *testing.T) {
	t.Parallel()

	m := recordMessage{
		a: []byte{1, 2},
		b: []byte{3, 4, 5},
		c: []byte{6, 7, 8, 9},
	}

	buf := encodedBytes(t, ContainerEncodable(m))

	d := NewDecoder(buf)
	ts, err := d.DecodeTaggedSlice()
	require.NoError(t, err)
	require.NoError(t, ts.Tag().AssertEq(Universal(10)))

	var got recordMessage
	require.NoError(t, ts.DecodeNested(func(sub *Decoder) error {
		for _, field := range []struct {
			tag Tag
			dst *[]byte
		}{
			{Universal(1), &got.a},
			{Universal(2), &got.b},
			{Universal(3), &got.c},
		} {
			fs, err := sub.DecodeTaggedSlice()
			if err != nil {
				return err
			}
			if err := fs.Tag().AssertEq(field.tag); err != nil {
				return err
			}
			*field.dst = fs.Bytes()
		}
		return nil
	}))
	require.NoError(t, d.Finish())

	assert.Equal(t, m, got)
}

// optionalRecord decodes a context-0 tagged slice.
type optionalRecord struct {
	body []byte
}

func (r optionalRecord) BERTag() Tag {
	return Context(0)
}

func (r *optionalRecord) DecodeBER(d *Decoder) error {
	var ts TaggedSlice[Tag]
	if err := ts.DecodeBER(d); err != nil {
		return err
	}
	if err := ts.Tag().AssertEq(r.BERTag()); err != nil {
		return err
	}
	r.body = ts.Bytes()
	return nil
}

func TestDecodeOptional(t *testing.T) {
	t.Parallel()

	t.Run("Present", func(t *testing.T) {
		t.Parallel()

		d := NewDecoder([]byte{0x80, 2, 9, 8})
		var r optionalRecord
		ok, err := DecodeOptional(d, &r)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{9, 8}, r.body)
		assert.True(t, d.IsFinished())
	})

	t.Run("TagMismatch", func(t *testing.T) {
		t.Parallel()

		d := NewDecoder([]byte{0x05, 0x00})
		var r optionalRecord
		ok, err := DecodeOptional(d, &r)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Length(0), d.Position())
	})

	t.Run("EndOfInput", func(t *testing.T) {
		t.Parallel()

		d := NewDecoder(nil)
		var r optionalRecord
		ok, err := DecodeOptional(d, &r)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
