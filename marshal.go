// Copyright 2026 Erin Shepherd
// SPDX-License-Identifier: ISC

package bertlv

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"go.e43.eu/bertlv/internal/tags"
)

var (
	encodableType = reflect.TypeOf((*Encodable)(nil)).Elem()
	decodableType = reflect.TypeOf((*Decodable)(nil)).Elem()
)

// schemaCache maps reflect.Type to schemaEntry. Schemas are immutable once
// built, so a successful entry is shared forever; invalid types cache
// their error the same way.
var schemaCache sync.Map

type schemaEntry struct {
	s   *schema
	err error
}

type schema struct {
	fields []schemaField
}

type schemaField struct {
	index    int
	name     string
	typ      reflect.Type
	optional bool

	isSimple bool
	simple   SimpleTag
	tag      Tag
}

func schemaFor(t reflect.Type) (*schema, error) {
	if e, ok := schemaCache.Load(t); ok {
		ent := e.(schemaEntry)
		return ent.s, ent.err
	}

	s, err := buildSchema(t)
	ent, _ := schemaCache.LoadOrStore(t, schemaEntry{s, err})
	cached := ent.(schemaEntry)
	return cached.s, cached.err
}

func buildSchema(t reflect.Type) (*schema, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("bertlv: %s is not a struct", t)
	}

	s := &schema{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		spec, err := tags.Parse(f.Tag.Get("tlv"))
		if err != nil {
			return nil, errors.Wrapf(err, "bertlv: field %s.%s", t, f.Name)
		}
		if spec.Skip {
			continue
		}
		if f.PkgPath != "" {
			return nil, errors.Errorf("bertlv: field %s.%s is unexported; tag it `tlv:\"-\"`", t, f.Name)
		}
		if !spec.Tagged() {
			return nil, errors.Errorf("bertlv: field %s.%s has no tlv tag", t, f.Name)
		}

		sf := schemaField{index: i, name: f.Name}

		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			sf.optional = true
			ft = ft.Elem()
		}
		sf.typ = ft

		if spec.Simple != 0 {
			tag, err := NewSimpleTag(spec.Simple)
			if err != nil {
				return nil, errors.Wrapf(err, "bertlv: field %s.%s", t, f.Name)
			}
			sf.isSimple = true
			sf.simple = tag
		} else {
			sf.tag = Tag{
				Class:       Class(spec.Class),
				Constructed: spec.Constructed,
				Number:      spec.Number,
			}
		}

		if err := checkFieldType(ft); err != nil {
			return nil, errors.Wrapf(err, "bertlv: field %s.%s", t, f.Name)
		}

		s.fields = append(s.fields, sf)
	}
	return s, nil
}

func checkFieldType(t reflect.Type) error {
	if t.Implements(encodableType) || reflect.PtrTo(t).Implements(decodableType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
	case reflect.Struct:
		// Validated lazily by its own schema
		return nil
	}
	return errors.Errorf("unsupported type %s", t)
}

// Marshal encodes v, a struct (or pointer to one) with tlv field tags or
// any Encodable, into a freshly allocated buffer of exactly the right
// size.
func Marshal(v interface{}) ([]byte, error) {
	enc, err := marshalEncodable(v)
	if err != nil {
		return nil, err
	}
	return EncodeToBytes(enc)
}

// MarshalTo encodes v into buf, returning the prefix written.
func MarshalTo(v interface{}, buf []byte) ([]byte, error) {
	enc, err := marshalEncodable(v)
	if err != nil {
		return nil, err
	}
	return EncodeToSlice(enc, buf)
}

func marshalEncodable(v interface{}) (Encodable, error) {
	if enc, ok := v.(Encodable); ok {
		return enc, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, errors.New("bertlv: cannot marshal nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.Errorf("bertlv: cannot marshal %s", rv.Type())
	}
	if _, err := schemaFor(rv.Type()); err != nil {
		return nil, err
	}
	return reflectEncodable{rv}, nil
}

// Unmarshal decodes buf into v, a non-nil pointer to a struct with tlv
// field tags or to a Decodable, requiring the whole buffer to be
// consumed. Decoded byte slices alias buf.
func Unmarshal(buf []byte, v interface{}) error {
	if dec, ok := v.(Decodable); ok {
		return FromBytes(buf, dec)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Errorf("bertlv: Unmarshal target must be a non-nil pointer, got %T", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.Errorf("bertlv: cannot unmarshal into %s", rv.Type())
	}

	return unmarshalStruct(buf, rv)
}

func unmarshalStruct(buf []byte, rv reflect.Value) error {
	s, err := schemaFor(rv.Type())
	if err != nil {
		return err
	}

	tag, tagged := tagOf(rv)
	if !tagged {
		d := NewDecoder(buf)
		if err := s.decodeFields(d, rv); err != nil {
			return err
		}
		return d.Finish()
	}

	d := NewDecoder(buf)
	ts, err := d.DecodeTaggedSlice()
	if err != nil {
		return err
	}
	if err := ts.Tag().AssertEq(tag); err != nil {
		return err
	}
	if err := ts.DecodeNested(func(sub *Decoder) error {
		return s.decodeFields(sub, rv)
	}); err != nil {
		return err
	}
	return d.Finish()
}

// tagOf returns the container tag of a struct implementing Tagged.
// BERTag must use a value receiver to be seen here.
func tagOf(v reflect.Value) (Tag, bool) {
	if t, ok := v.Interface().(Tagged); ok {
		return t.BERTag(), true
	}
	return Tag{}, false
}

// reflectEncodable encodes a struct per its schema: its fields
// concatenated, under the container tag when the type implements Tagged.
type reflectEncodable struct {
	v reflect.Value
}

func (re reflectEncodable) encodables() ([]Encodable, error) {
	s, err := schemaFor(re.v.Type())
	if err != nil {
		return nil, err
	}
	return s.fieldEncodables(re.v)
}

func (re reflectEncodable) EncodedLength() (Length, error) {
	fields, err := re.encodables()
	if err != nil {
		return 0, err
	}

	inner, err := sumEncodedLengths(fields)
	if err != nil {
		return 0, err
	}

	tag, tagged := tagOf(re.v)
	if !tagged {
		return inner, nil
	}

	h := header[Tag]{tag: tag, length: inner}
	hl, err := h.EncodedLength()
	if err != nil {
		return 0, err
	}
	return hl.Add(inner)
}

func (re reflectEncodable) EncodeBER(e *Encoder) error {
	fields, err := re.encodables()
	if err != nil {
		return err
	}

	if tag, tagged := tagOf(re.v); tagged {
		return e.EncodeTaggedCollection(tag, fields)
	}
	return e.EncodeUntaggedCollection(fields)
}

func (s *schema) fieldEncodables(v reflect.Value) ([]Encodable, error) {
	out := make([]Encodable, 0, len(s.fields))
	for i := range s.fields {
		sf := &s.fields[i]

		fv := v.Field(sf.index)
		if sf.optional {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}

		enc, err := sf.encodable(fv)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}

// encodable wraps one field value as the payload behind its tag.
func (sf *schemaField) encodable(v reflect.Value) (Encodable, error) {
	payload, err := payloadEncodable(v)
	if err != nil {
		return nil, errors.Wrapf(err, "bertlv: field %s", sf.name)
	}
	if sf.isSimple {
		return NewTaggedValue(sf.simple, payload), nil
	}
	return NewTaggedValue(sf.tag, payload), nil
}

func payloadEncodable(v reflect.Value) (Encodable, error) {
	if enc, ok := v.Interface().(Encodable); ok {
		return enc, nil
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return NewSlice(v.Bytes())
		}
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			if v.CanAddr() {
				return NewSlice(v.Slice(0, v.Len()).Bytes())
			}
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return NewSlice(b)
		}
	case reflect.Struct:
		return reflectEncodable{v}, nil
	}
	return nil, errors.Errorf("cannot encode %s", v.Type())
}

func (s *schema) decodeFields(d *Decoder, rv reflect.Value) error {
	for i := range s.fields {
		sf := &s.fields[i]
		fv := rv.Field(sf.index)

		if sf.optional {
			b, ok := d.Peek()
			if !ok || b != sf.firstOctet() {
				fv.Set(reflect.Zero(fv.Type()))
				continue
			}

			p := reflect.New(sf.typ)
			if err := sf.decode(d, p.Elem()); err != nil {
				return err
			}
			fv.Set(p)
			continue
		}

		if err := sf.decode(d, fv); err != nil {
			return err
		}
	}
	return nil
}

func (sf *schemaField) firstOctet() byte {
	if sf.isSimple {
		return byte(sf.simple)
	}
	return sf.tag.firstOctet()
}

func (sf *schemaField) decode(d *Decoder, fv reflect.Value) error {
	if sf.isSimple {
		ts, err := d.DecodeSimpleTaggedSlice()
		if err != nil {
			return err
		}
		if err := ts.Tag().AssertEq(sf.simple); err != nil {
			return err
		}
		return sf.fill(ts.Bytes(), fv, ts.Tag().Embedding())
	}

	ts, err := d.DecodeTaggedSlice()
	if err != nil {
		return err
	}
	if err := ts.Tag().AssertEq(sf.tag); err != nil {
		return err
	}
	return sf.fill(ts.Bytes(), fv, sf.tag)
}

// fill populates fv from the value bytes body.
func (sf *schemaField) fill(body []byte, fv reflect.Value, tag Tag) error {
	if fv.CanAddr() {
		if dec, ok := fv.Addr().Interface().(Decodable); ok {
			return FromBytes(body, dec)
		}
	}

	switch fv.Kind() {
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			fv.SetBytes(body)
			return nil
		}
	case reflect.Array:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			if len(body) != fv.Len() {
				return LengthError{Tag: tag}
			}
			reflect.Copy(fv, reflect.ValueOf(body))
			return nil
		}
	case reflect.Struct:
		return unmarshalStruct(body, fv)
	}
	return errors.Errorf("bertlv: cannot decode into %s field %s", fv.Type(), sf.name)
}
