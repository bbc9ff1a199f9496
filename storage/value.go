package storage

import (
	"fmt"
	"slices"
)

// Kind identifies which member of the Value union is populated.
type Kind int

const (
	// KindBool holds a boolean.
	KindBool Kind = iota + 1
	// KindFloat holds a floating point number.
	KindFloat
	// KindInt holds a 32-bit integer.
	KindInt
	// KindLong holds a 64-bit integer.
	KindLong
	// KindString holds a string.
	KindString
	// KindStringSet holds a set of strings.
	KindStringSet
)

var kindNames = map[Kind]string{
	KindBool:      "bool",
	KindFloat:     "float",
	KindInt:       "int",
	KindLong:      "long",
	KindString:    "string",
	KindStringSet: "string_set",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind returns the Kind for a wire name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Value is a tagged union of the primitive types a namespace can hold.
// The zero Value has no kind and is not valid.
type Value struct {
	kind Kind
	b    bool
	f    float64
	i    int64
	s    string
	set  []string
}

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// FloatValue wraps a floating point number.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// IntValue wraps a 32-bit integer.
func IntValue(v int32) Value { return Value{kind: KindInt, i: int64(v)} }

// LongValue wraps a 64-bit integer.
func LongValue(v int64) Value { return Value{kind: KindLong, i: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// StringSetValue wraps a set of strings. Duplicates are dropped.
func StringSetValue(v []string) Value {
	return Value{kind: KindStringSet, set: normalizeSet(v)}
}

// Kind returns which member is populated.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean member.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Float returns the float member.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Int returns the 32-bit integer member.
func (v Value) Int() (int32, bool) { return int32(v.i), v.kind == KindInt }

// Long returns the 64-bit integer member. Int values widen to Long.
func (v Value) Long() (int64, bool) { return v.i, v.kind == KindLong || v.kind == KindInt }

// Str returns the string member.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// StringSet returns a copy of the string-set member.
func (v Value) StringSet() ([]string, bool) {
	if v.kind != KindStringSet {
		return nil, false
	}
	return slices.Clone(v.set), true
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindFloat:
		return v.f == o.f
	case KindInt, KindLong:
		return v.i == o.i
	case KindString:
		return v.s == o.s
	case KindStringSet:
		return slices.Equal(v.set, o.set)
	}
	return true
}

// String renders the value for logs and CLI output.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindInt, KindLong:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return v.s
	case KindStringSet:
		return fmt.Sprintf("%v", v.set)
	}
	return "<invalid>"
}

// Entry is a single key/value pair read from a namespace.
type Entry struct {
	Key   string
	Value Value
}

// normalizeSet sorts and deduplicates so that set equality is order independent.
func normalizeSet(v []string) []string {
	out := slices.Clone(v)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
