// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireIs asserts that err matches target under errors.Is.
func requireIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, target), "Error expected to be %s, but was %s", target, err)
}

// positionOf extracts the position annotation from err.
func positionOf(t *testing.T, err error) Length {
	t.Helper()
	var pe *Error
	require.Truef(t, errors.As(err, &pe), "Error %s carries no position", err)
	return pe.Position
}

// encodedBytes encodes v, requiring success.
func encodedBytes(t *testing.T, v Encodable) []byte {
	t.Helper()
	out, err := EncodeToBytes(v)
	require.NoError(t, err, "Encode should succeed")
	return out
}

// sliceOf wraps b as a Slice, requiring success.
func sliceOf(t *testing.T, b []byte) Slice {
	t.Helper()
	s, err := NewSlice(b)
	require.NoError(t, err)
	return s
}

// pattern returns n bytes of a recognisable fill.
func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
