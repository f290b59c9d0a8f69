package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/mcncl/jsoncsv/internal/errors" // Custom errors package
	"github.com/mcncl/jsoncsv/internal/models"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Parse reads a single JSON document from reader and converts it into a models.Value
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read JSON input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a JSON document held in memory
func ParseBytes(data []byte) (models.Value, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	// gjson.Valid rejects syntax errors as well as trailing data after the first value.
	if !gjson.ValidBytes(data) {
		return nil, errors.NewParsingError("input is not a single valid JSON value", errors.ErrInvalidJSON)
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// fromResult walks a gjson result. ForEach visits object members in document
// order, which is what keeps column order stable.
func fromResult(r gjson.Result) models.Value {
	switch r.Type {
	case gjson.Null:
		return models.Null{}
	case gjson.False:
		return models.Bool(false)
	case gjson.True:
		return models.Bool(true)
	case gjson.Number:
		return models.Number(strings.TrimSpace(r.Raw))
	case gjson.String:
		return models.String(r.Str)
	}

	if r.IsArray() {
		arr := make(models.Array, 0)
		r.ForEach(func(_, elem gjson.Result) bool {
			arr = append(arr, fromResult(elem))
			return true
		})
		return arr
	}

	obj := models.NewObject()
	r.ForEach(func(key, elem gjson.Result) bool {
		obj.Set(key.Str, fromResult(elem))
		return true
	})
	return obj
}

// FromAny converts an already decoded Go value into a models.Value. It never
// fails: every input maps to some value.
//
// Go maps carry no order, so map keys are sorted to keep the result
// deterministic. Callers that care about the original member order should
// hand over the JSON text instead.
func FromAny(in any) models.Value {
	switch v := in.(type) {
	case nil:
		return models.Null{}
	case models.Value:
		return v
	case bool:
		return models.Bool(v)
	case string:
		return models.String(v)
	case json.Number:
		return models.Number(v.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return models.Number(cast.ToString(v))
	case []any:
		if v == nil {
			return models.Null{}
		}
		arr := make(models.Array, len(v))
		for i, elem := range v {
			arr[i] = FromAny(elem)
		}
		return arr
	case map[string]any:
		if v == nil {
			return models.Null{}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := models.NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(v[k]))
		}
		return obj
	case json.RawMessage:
		return fromRaw(v)
	}

	if isNilPointer(in) {
		return models.Null{}
	}

	// Anything else (structs, typed slices and maps) goes through a JSON
	// round-trip, which keeps struct field order.
	data, err := json.Marshal(in)
	if err == nil {
		return fromRaw(data)
	}
	if s, err := cast.ToStringE(in); err == nil {
		return models.String(s)
	}
	return models.String(fmt.Sprint(in))
}

func fromRaw(data []byte) models.Value {
	if !gjson.ValidBytes(data) {
		return models.String(string(data))
	}
	return fromResult(gjson.ParseBytes(data))
}

func isNilPointer(in any) bool {
	rv := reflect.ValueOf(in)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
