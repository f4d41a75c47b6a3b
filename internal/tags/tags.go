// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package tags parses the `tlv:"..."` struct tags which drive the
// reflection marshalling layer.
package tags

import (
	"fmt"
	"strconv"
	"strings"
)

// Class mirrors the two-bit BER tag class. The values match the wire
// encoding and the bertlv.Class constants.
type Class uint8

const (
	Universal Class = iota
	Application
	Context
	Private
)

// Spec is a parsed field tag.
//
// The recognised entries, comma separated:
//
//	-            skip this field entirely
//	number=N     BER tag number (N accepts 0x prefixes)
//	universal    \
//	application   \ tag class (universal is the default)
//	context       /
//	private      /
//	constructed  constructed tag
//	primitive    explicitly primitive (the default)
//	simple=N     SIMPLE-TLV tag instead of a BER tag; excludes the
//	             BER entries above
type Spec struct {
	Skip        bool
	Simple      uint8
	Number      uint16
	HasNumber   bool
	Class       Class
	Constructed bool
}

// Tagged reports whether the spec selects a tag of either flavour.
func (s Spec) Tagged() bool {
	return s.Simple != 0 || s.HasNumber
}

// Parse parses the body of a tlv struct tag.
func Parse(tag string) (Spec, error) {
	var s Spec

	tag = strings.TrimSpace(tag)
	if tag == "-" {
		s.Skip = true
		return s, nil
	}
	if tag == "" {
		return s, nil
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "universal":
			s.Class = Universal
		case part == "application":
			s.Class = Application
		case part == "context":
			s.Class = Context
		case part == "private":
			s.Class = Private
		case part == "constructed":
			s.Constructed = true
		case part == "primitive":
			s.Constructed = false
		case strings.HasPrefix(part, "number="):
			n, err := strconv.ParseUint(part[len("number="):], 0, 16)
			if err != nil {
				return s, fmt.Errorf("parsing number=: %v", err)
			}
			s.Number = uint16(n)
			s.HasNumber = true
		case strings.HasPrefix(part, "simple="):
			n, err := strconv.ParseUint(part[len("simple="):], 0, 8)
			if err != nil {
				return s, fmt.Errorf("parsing simple=: %v", err)
			}
			if n == 0x00 || n == 0xFF {
				return s, fmt.Errorf("simple tag 0x%02x is reserved", n)
			}
			s.Simple = uint8(n)
		case part == "":
			// Tolerate stray commas
		default:
			return s, fmt.Errorf("unknown tlv tag entry %q", part)
		}
	}

	if s.Simple != 0 && (s.HasNumber || s.Class != Universal || s.Constructed) {
		return s, fmt.Errorf("simple= cannot be combined with BER tag entries")
	}

	return s, nil
}
