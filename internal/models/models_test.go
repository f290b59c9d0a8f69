package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", Null{}.Kind().String())
	assert.Equal(t, "bool", Bool(true).Kind().String())
	assert.Equal(t, "number", Number("1").Kind().String())
	assert.Equal(t, "string", String("s").Kind().String())
	assert.Equal(t, "array", Array{}.Kind().String())
	assert.Equal(t, "object", NewObject().Kind().String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestText(t *testing.T) {
	nested := NewObject()
	nested.Set("z", Number("1"))
	nested.Set("a", Array{String("x"), Null{}})

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"nil interface", nil, ""},
		{"null", Null{}, ""},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Number("42"), "42"},
		{"number kept as written", Number("1.50"), "1.50"},
		{"exponent kept as written", Number("1e5"), "1e5"},
		{"string", String("hello, world"), "hello, world"},
		{"empty array", Array{}, "[]"},
		{"string array", Array{String("x"), String("y")}, `["x","y"]`},
		{"mixed array", Array{Number("1"), Bool(false), Null{}, String("a")}, `[1,false,null,"a"]`},
		{"object keeps member order", nested, `{"z":1,"a":["x",null]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.value))
		})
	}
}

func TestEncode_EscapesStrings(t *testing.T) {
	arr := Array{
		String(`say "hi"`),
		String(`back\slash`),
		String("line\nbreak\ttab\rreturn"),
		String("bell\x07"),
		String("<tag> & ünïcode"),
	}

	expected := `["say \"hi\"","back\\slash","line\nbreak\ttab\rreturn","bell\u0007","<tag> & ünïcode"]`
	assert.Equal(t, expected, Encode(arr))
}

func TestEncode_Scalars(t *testing.T) {
	assert.Equal(t, "null", Encode(Null{}))
	assert.Equal(t, "null", Encode(nil))
	assert.Equal(t, "true", Encode(Bool(true)))
	assert.Equal(t, "3.14", Encode(Number("3.14")))
	assert.Equal(t, `"x"`, Encode(String("x")))
	assert.Equal(t, "{}", Encode(NewObject()))
}

func TestObject_LastWriteWinsInPlace(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number("1"))
	obj.Set("b", Number("2"))
	obj.Set("a", Number("3"))

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	assert.Equal(t, `{"a":3,"b":2}`, Encode(obj))
}

func TestEncode_NestedObjectsAndOddValues(t *testing.T) {
	inner := NewObject()
	inner.Set(`a"b`, Number("1"))
	inner.Set("list", Array(nil))

	outer := NewObject()
	outer.Set("inner", inner)
	outer.Set("nan", Number("NaN"))

	assert.Equal(t, `{"inner":{"a\"b":1,"list":[]},"nan":"NaN"}`, Encode(outer))
	assert.Equal(t, "[]", Encode(Array(nil)))
	assert.Equal(t, []string{"inner", "nan"}, outer.Keys())
}
