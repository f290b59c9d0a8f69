// Package extractor locates the list of records inside the response shapes a
// data API returns.
package extractor

import (
	"github.com/mcncl/jsoncsv/internal/models"
)

const (
	// ResultsKey holds the record list (or a single record) in most responses.
	ResultsKey = "results"
	// LastKey holds a single record in last-trade and last-quote responses.
	LastKey = "last"
	// ValueKey is the column used for records that are not objects.
	ValueKey = "value"
)

// Shape names the top-level layout a value was recognised as.
type Shape string

const (
	ShapeResultsList   Shape = "results_list"
	ShapeResultsObject Shape = "results_object"
	ShapeResultsScalar Shape = "results_scalar"
	ShapeLastObject    Shape = "last_object"
	ShapeLastFallback  Shape = "last_fallback"
	ShapeList          Shape = "list"
	ShapeNull          Shape = "null"
	ShapeSingle        Shape = "single"
)

// Extraction is the outcome of Extract.
type Extraction struct {
	Shape   Shape
	Records []*models.Object
}

// Extractor turns a parsed response into records
type Extractor struct{}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the records held by data, in order. Every shape maps to some
// record list; elements that are not objects become {"value": <text>}.
func (e *Extractor) Extract(data models.Value) Extraction {
	shape, items := locate(data)

	records := make([]*models.Object, 0, len(items))
	for _, item := range items {
		records = append(records, normalize(item))
	}
	return Extraction{Shape: shape, Records: records}
}

// locate picks the record list. "results" is checked before "last".
func locate(data models.Value) (Shape, []models.Value) {
	switch v := data.(type) {
	case nil, models.Null:
		return ShapeNull, nil
	case models.Array:
		return ShapeList, v
	case *models.Object:
		if v.IsNil() {
			return ShapeNull, nil
		}
		if results, ok := v.Get(ResultsKey); ok {
			switch r := results.(type) {
			case models.Array:
				return ShapeResultsList, r
			case *models.Object:
				return ShapeResultsObject, []models.Value{r}
			default:
				return ShapeResultsScalar, []models.Value{r}
			}
		}
		if last, ok := v.Get(LastKey); ok {
			if lastObj, isObj := last.(*models.Object); isObj && !lastObj.IsNil() {
				return ShapeLastObject, []models.Value{lastObj}
			}
			// A non-object "last" keeps the whole response as the record.
			return ShapeLastFallback, []models.Value{v}
		}
		return ShapeSingle, []models.Value{v}
	default:
		return ShapeSingle, []models.Value{v}
	}
}

func normalize(item models.Value) *models.Object {
	if obj, ok := item.(*models.Object); ok {
		return obj
	}
	wrapped := models.NewObject()
	wrapped.Set(ValueKey, models.String(models.Text(item)))
	return wrapped
}
