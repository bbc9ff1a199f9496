// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/json"
	"fmt"

	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MarshalIdentifiers serializes an identifier list as a JSON array of strings.
// A nil list is written as an empty array.
func MarshalIdentifiers(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalIdentifiers deserializes a JSON array of identifier strings.
func UnmarshalIdentifiers(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// stringSetMUS serializes the members of a string set.
var stringSetMUS = ord.NewSliceSer[string](ord.String)

// MarshalValue serializes a Value as its kind byte followed by the MUS
// encoding of the payload.
func MarshalValue(v Value) ([]byte, error) {
	switch v.kind {
	case KindBool:
		return marshalTagged(v.kind, ord.Bool, v.b), nil
	case KindFloat:
		return marshalTagged(v.kind, raw.Float64, v.f), nil
	case KindInt:
		return marshalTagged(v.kind, varint.Int32, int32(v.i)), nil
	case KindLong:
		return marshalTagged(v.kind, varint.Int64, v.i), nil
	case KindString:
		return marshalTagged(v.kind, ord.String, v.s), nil
	case KindStringSet:
		return marshalTagged(v.kind, stringSetMUS, v.set), nil
	default:
		return nil, fmt.Errorf("%w: %w: %v", ErrSerializationFailed, ErrUnknownKind, v.kind)
	}
}

// UnmarshalValue deserializes a Value written by MarshalValue.
func UnmarshalValue(data []byte) (Value, error) {
	if len(data) == 0 {
		return Value{}, fmt.Errorf("%w: empty value", ErrSerializationFailed)
	}
	kind, payload := Kind(data[0]), data[1:]

	var (
		v   Value
		err error
	)
	switch kind {
	case KindBool:
		var b bool
		b, err = unmarshalPayload(ord.Bool, payload)
		v = BoolValue(b)
	case KindFloat:
		var f float64
		f, err = unmarshalPayload(raw.Float64, payload)
		v = FloatValue(f)
	case KindInt:
		var i int32
		i, err = unmarshalPayload(varint.Int32, payload)
		v = IntValue(i)
	case KindLong:
		var l int64
		l, err = unmarshalPayload(varint.Int64, payload)
		v = LongValue(l)
	case KindString:
		var str string
		str, err = unmarshalPayload(ord.String, payload)
		v = StringValue(str)
	case KindStringSet:
		var set []string
		set, err = unmarshalPayload(stringSetMUS, payload)
		v = StringSetValue(set)
	default:
		return Value{}, fmt.Errorf("%w: %w: %d", ErrSerializationFailed, ErrUnknownKind, data[0])
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s payload: %w", ErrSerializationFailed, kind, err)
	}
	return v, nil
}

func marshalTagged[T any](kind Kind, ser mus.Serializer[T], v T) []byte {
	buf := make([]byte, 1+ser.Size(v))
	buf[0] = byte(kind)
	ser.Marshal(v, buf[1:])
	return buf
}

func unmarshalPayload[T any](ser mus.Serializer[T], data []byte) (T, error) {
	v, n, err := ser.Unmarshal(data)
	if err != nil {
		return v, err
	}
	if n != len(data) {
		return v, fmt.Errorf("%d trailing bytes", len(data)-n)
	}
	return v, nil
}
