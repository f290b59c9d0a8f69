// Package converter turns JSON API responses into flat CSV text.
//
// The record list is found inside the common response layouts ("results",
// "last", a bare array, or a single value), every record is flattened into
// underscore-joined columns, and the rows are written under one header whose
// columns appear in the order they are first seen.
//
// Conversion is a pure function of its input: it performs no I/O, never
// fails, and is safe to call from multiple goroutines. Invalid JSON text and
// inputs without any columns produce the empty string.
//
//	out := converter.ConvertString(`{"results":[{"a":1},{"a":2,"b":3}]}`)
//	// a,b
//	// 1,
//	// 2,3
package converter

import (
	"encoding/json"

	"github.com/mcncl/jsoncsv/internal/extractor"
	"github.com/mcncl/jsoncsv/internal/flattener"
	"github.com/mcncl/jsoncsv/internal/formatter"
	"github.com/mcncl/jsoncsv/internal/generator"
	"github.com/mcncl/jsoncsv/internal/models"
	"github.com/mcncl/jsoncsv/internal/parser"
)

// Converter converts JSON values into CSV text.
type Converter struct {
	extractor *extractor.Extractor
	generator *generator.Generator
	err       error
}

// Option configures a Converter.
type Option func(*Converter)

// WithHeaderCase styles header labels ("keep", "snake", "screaming_snake",
// "kebab", "camel" or "lower_camel"). An unknown name makes New return a
// converter whose Err reports it and which keeps labels unchanged.
func WithHeaderCase(name string) Option {
	return func(c *Converter) {
		headerCase, err := formatter.ParseCase(name)
		if err != nil {
			c.err = err
			return
		}
		c.generator = generator.NewGeneratorWithFormatter(formatter.NewFormatterWithCase(headerCase))
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		extractor: extractor.NewExtractor(),
		generator: generator.NewGenerator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Err reports an invalid option passed to New.
func (c *Converter) Err() error {
	return c.err
}

// Result describes one conversion.
type Result struct {
	// Shape names the response layout the records were found in.
	Shape string
	// Records is the number of records, which is also the number of data rows.
	Records int
	// Columns is the number of header columns.
	Columns int
	// CSV is the document, or the empty string when there are no columns.
	CSV string
}

// Convert converts input and returns the CSV document. See Run.
func (c *Converter) Convert(input any) string {
	return c.Run(input).CSV
}

// Run converts input and reports what was found. Strings, byte slices and
// json.RawMessage are treated as JSON text. Any other value is taken as
// already parsed JSON: the output of encoding/json, plain Go maps, slices,
// scalars and structs, or a value produced by this module's own parser.
func (c *Converter) Run(input any) Result {
	var value models.Value
	switch in := input.(type) {
	case string:
		return c.runText(in)
	case []byte:
		return c.runText(string(in))
	case json.RawMessage:
		return c.runText(string(in))
	case models.Value:
		value = in
	default:
		value = parser.FromAny(in)
	}
	return c.run(value)
}

// ConvertString converts JSON text. Text that does not parse as exactly one
// JSON value yields the empty string.
func (c *Converter) ConvertString(text string) string {
	return c.runText(text).CSV
}

func (c *Converter) runText(text string) Result {
	value, err := parser.ParseString(text)
	if err != nil {
		return Result{Shape: string(extractor.ShapeNull)}
	}
	return c.run(value)
}

func (c *Converter) run(value models.Value) Result {
	extraction := c.extractor.Extract(value)
	rows := flattener.FlattenAll(extraction.Records)
	result := Result{
		Shape:   string(extraction.Shape),
		Records: len(extraction.Records),
		Columns: len(generator.Header(rows)),
	}
	out, err := c.generator.GenerateCSV(rows)
	if err != nil {
		return result
	}
	result.CSV = out
	return result
}

var defaultConverter = New()

// Convert converts input with the default converter. See Converter.Convert.
func Convert(input any) string {
	return defaultConverter.Convert(input)
}

// ConvertString converts JSON text with the default converter.
func ConvertString(text string) string {
	return defaultConverter.ConvertString(text)
}
