package models

import (
	"bytes"
	"encoding/json"

	"github.com/GitRowin/orderedmapjson"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Kind identifies which JSON type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a parsed JSON value. It is implemented only by Null, Bool,
// Number, String, Array and *Object.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its decimal text, exactly as written.
type Number string

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Value

// Object is a JSON object that keeps its members in document order.
// Setting an existing key overwrites its value in place. Use NewObject; the
// zero value has no storage.
type Object struct {
	*orderedmapjson.OrderedMap[Value]
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{OrderedMap: orderedmapjson.NewOrderedMap[Value]()}
}

// IsNil reports whether o has no storage: a nil pointer or a zero Object.
func (o *Object) IsNil() bool {
	return o == nil || o.OrderedMap == nil
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	if o.IsNil() {
		return nil
	}
	keys := make([]string, 0, o.Len())
	for key := range o.AllFromFront() {
		keys = append(keys, key)
	}
	return keys
}

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Number) isValue()  {}
func (String) isValue()  {}
func (Array) isValue()   {}
func (*Object) isValue() {}

// Text returns the canonical text form of a value, the only spelling used
// when a value ends up in a CSV field:
//
//	null    ""
//	bool    "true" / "false"
//	number  the decimal text as written
//	string  the string itself
//	array   compact JSON
//	object  compact JSON
func Text(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return ""
	case Bool:
		return cast.ToString(bool(val))
	case Number:
		return string(val)
	case String:
		return string(val)
	case *Object:
		if val.IsNil() {
			return ""
		}
		return Encode(val)
	case Array:
		return Encode(val)
	default:
		return ""
	}
}

// Encode renders a value as compact JSON. Object members keep their order.
func Encode(v Value) string {
	if obj, ok := v.(*Object); v == nil || ok && obj.IsNil() {
		return "null"
	}
	data, err := marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// marshal is json.Marshal without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON writes the literal unchanged. Text that is not a JSON number
// (NaN from a decoded float, say) is written as a string.
func (n Number) MarshalJSON() ([]byte, error) {
	if gjson.Valid(string(n)) && gjson.Parse(string(n)).Type == gjson.Number {
		return []byte(n), nil
	}
	return marshal(string(n))
}

func (a Array) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return marshal([]Value(a))
}
