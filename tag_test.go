// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCoding(t *testing.T) {
	testcases := []struct {
		Name  string
		Tag   Tag
		Bytes []byte
	}{
		{"UniversalLow", Universal(5), []byte{0x05}},
		{"LastShortForm", Universal(30), []byte{0x1E}},
		{"FirstHighForm", Universal(31), []byte{0x1F, 0x1F}},
		{"OneContinuationMax", Universal(0x7F), []byte{0x1F, 0x7F}},
		{"TwoContinuations", Universal(0xAA), []byte{0x1F, 0x81, 0x2A}},
		{"NumberMax", Universal(0x3FFF), []byte{0x1F, 0xFF, 0x7F}},
		{"Application", Application(0xAA), []byte{0x5F, 0x81, 0x2A}},
		{"ApplicationConstructed", Application(0x1E).AsConstructed(), []byte{0x7E}},
		{"ContextConstructed", Context(2).AsConstructed(), []byte{0xA2}},
		{"Private", Private(0x44), []byte{0xDF, 0x44}},
		{"PrivateConstructed", Private(0x44).AsConstructed(), []byte{0xFF, 0x44}},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			el, err := tc.Tag.EncodedLength()
			require.NoError(t, err)
			assert.Equal(t, len(tc.Bytes), el.Int())

			assert.Equal(t, tc.Bytes, encodedBytes(t, tc.Tag))

			var decoded Tag
			require.NoError(t, FromBytes(tc.Bytes, &decoded))
			assert.Equal(t, tc.Tag, decoded)
		})
	}
}

func TestTagDecodeErrors(t *testing.T) {
	testcases := []struct {
		Name    string
		Bytes   []byte
		ErrorIs error
	}{
		{"Empty", nil, ErrTruncated},
		{"MissingContinuation", []byte{0x1F}, ErrTruncated},
		{"MissingSecondContinuation", []byte{0x1F, 0x81}, ErrTruncated},
		{"ThreeContinuations", []byte{0x1F, 0x81, 0x80}, ErrOverlength},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			var decoded Tag
			requireIs(t, FromBytes(tc.Bytes, &decoded), tc.ErrorIs)
		})
	}
}

func TestTagNonMinimalDecode(t *testing.T) {
	t.Parallel()

	// High form carrying a number which would fit the short form
	var decoded Tag
	require.NoError(t, FromBytes([]byte{0x1F, 0x05}, &decoded))
	assert.Equal(t, Universal(5), decoded)
}

func TestTagNumberTooBig(t *testing.T) {
	t.Parallel()

	_, err := Universal(0x4000).EncodedLength()
	requireIs(t, err, ErrOverlength)

	_, err = EncodeToBytes(Universal(0x4000))
	requireIs(t, err, ErrOverlength)
}

func TestTagAssertEq(t *testing.T) {
	t.Parallel()

	require.NoError(t, Universal(5).AssertEq(Universal(5)))

	err := Universal(5).AssertEq(Universal(6))
	requireIs(t, err, ErrUnexpectedTag)

	var ute UnexpectedTagError
	require.True(t, errors.As(err, &ute))
	require.NotNil(t, ute.Expected)
	assert.Equal(t, Universal(6), *ute.Expected)
	assert.Equal(t, Universal(5), ute.Actual)

	requireIs(t, Universal(5).AssertEq(Universal(5).AsConstructed()), ErrUnexpectedTag)
}
