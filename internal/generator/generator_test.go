package generator

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/mcncl/jsoncsv/internal/flattener"
	"github.com/mcncl/jsoncsv/internal/formatter"
	"github.com/mcncl/jsoncsv/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a flattened row from alternating column/value pairs
func row(pairs ...any) *flattener.Row {
	r := flattener.NewRow()
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case models.Value:
			r.Set(key, flattener.ScalarCell(v))
		case string:
			r.Set(key, flattener.TextCell(v))
		}
	}
	return r
}

func TestHeader_FirstSeenOrder(t *testing.T) {
	rows := []*flattener.Row{
		row("a", models.Number("1")),
		row("c", models.Number("1"), "a", models.Number("2"), "b", models.Number("3")),
		row("d", models.Number("4"), "b", models.Number("5")),
	}

	assert.Equal(t, []string{"a", "c", "b", "d"}, Header(rows))
}

func TestHeader_Empty(t *testing.T) {
	assert.Empty(t, Header(nil))
	assert.Empty(t, Header([]*flattener.Row{row(), row()}))
}

func TestGenerateCSV_MissingColumnsAreEmpty(t *testing.T) {
	rows := []*flattener.Row{
		row("a", models.Number("1")),
		row("a", models.Number("2"), "b", models.Number("3")),
	}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\n2,3\n", result)
}

func TestGenerateCSV_NoColumns(t *testing.T) {
	gen := NewGenerator()

	result, err := gen.GenerateCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "", result)

	result, err = gen.GenerateCSV([]*flattener.Row{row(), row()})
	require.NoError(t, err)
	assert.Equal(t, "", result)
}

func TestGenerateCSV_EmptyRowsStillWritten(t *testing.T) {
	rows := []*flattener.Row{
		row(),
		row("a", models.Number("1"), "b", models.String("x")),
		row(),
	}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n,\n1,x\n,\n", result)
}

func TestGenerateCSV_SingleEmptyFieldIsQuoted(t *testing.T) {
	rows := []*flattener.Row{
		row("value", models.Null{}),
		row("value", models.String("x")),
		row(),
	}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "value\n\"\"\nx\n\"\"\n", result)

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"value"}, {""}, {"x"}, {""}}, records)
}

func TestGenerateCSV_Quoting(t *testing.T) {
	values := []string{
		"a,b",
		`say "hi"`,
		"multi\nline",
		"plain",
		" leading space",
	}

	rows := make([]*flattener.Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, row("text", models.String(v), "n", models.Number("1")))
	}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)

	assert.Contains(t, result, "\"a,b\",1\n")
	assert.Contains(t, result, "\"say \"\"hi\"\"\",1\n")
	assert.Contains(t, result, "plain,1\n")

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(values)+1)
	assert.Equal(t, []string{"text", "n"}, records[0])
	for i, v := range values {
		assert.Equal(t, v, records[i+1][0])
	}
}

func TestGenerateCSV_QuotesHeaderNames(t *testing.T) {
	rows := []*flattener.Row{row("a,b", models.Number("1"))}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "\"a,b\"\n1\n", result)
}

func TestGenerateCSV_TextAndScalarCells(t *testing.T) {
	rows := []*flattener.Row{
		row("tags", `["x","y"]`, "ok", models.Bool(true), "none", models.Null{}),
	}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "tags,ok,none\n\"[\"\"x\"\",\"\"y\"\"]\",true,\n", result)
}

func TestGenerateCSV_HeaderFormatter(t *testing.T) {
	rows := []*flattener.Row{
		row("day_open", models.Number("1"), "lastPrice", models.Number("2")),
	}

	gen := NewGeneratorWithFormatter(formatter.NewFormatterWithCase(formatter.CaseCamel))
	result, err := gen.GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "DayOpen,LastPrice\n1,2\n", result)
}

func TestNewGeneratorWithFormatter_Nil(t *testing.T) {
	gen := NewGeneratorWithFormatter(nil)

	result, err := gen.GenerateCSV([]*flattener.Row{row("a_b", models.Number("1"))})
	require.NoError(t, err)
	assert.Equal(t, "a_b\n1\n", result)
}

func TestGenerateCSV_NilRowsTreatedAsEmpty(t *testing.T) {
	rows := []*flattener.Row{nil, row("a", models.Number("1"))}

	result, err := NewGenerator().GenerateCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, "a\n\"\"\n1\n", result)
}
