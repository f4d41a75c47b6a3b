// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testcases := []struct {
		Name string
		Tag  string
		Want Spec
	}{
		{"Empty", "", Spec{}},
		{"Skip", "-", Spec{Skip: true}},
		{"Number", "number=0x11", Spec{Number: 0x11, HasNumber: true}},
		{"DecimalNumber", "number=17", Spec{Number: 17, HasNumber: true}},
		{
			"ApplicationConstructed",
			"application,constructed,number=0x1E",
			Spec{Class: Application, Constructed: true, Number: 0x1E, HasNumber: true},
		},
		{
			"PrivatePrimitive",
			"private,primitive,number=0x44",
			Spec{Class: Private, Number: 0x44, HasNumber: true},
		},
		{"Context", "context,number=2", Spec{Class: Context, Number: 2, HasNumber: true}},
		{"Simple", "simple=0x55", Spec{Simple: 0x55}},
		{"Whitespace", " application , number=1 ", Spec{Class: Application, Number: 1, HasNumber: true}},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tc.Tag)
			require.NoError(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testcases := []struct {
		Name string
		Tag  string
	}{
		{"Unknown", "bogus"},
		{"BadNumber", "number=zebra"},
		{"NumberTooBig", "number=0x10000"},
		{"ReservedSimpleZero", "simple=0"},
		{"ReservedSimpleFF", "simple=0xFF"},
		{"SimpleWithNumber", "simple=0x55,number=1"},
		{"SimpleWithClass", "simple=0x55,application"},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tc.Tag)
			require.Error(t, err)
		})
	}
}

func TestTagged(t *testing.T) {
	t.Parallel()

	assert.False(t, Spec{}.Tagged())
	assert.True(t, Spec{HasNumber: true}.Tagged())
	assert.True(t, Spec{Simple: 1}.Tagged())
}
