package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/models"
)

var testModels = []models.Descriptor{
	{
		Name:                       "models/gemini-flash",
		DisplayName:                "Gemini Flash",
		SupportedGenerationMethods: []string{"generateContent", "countTokens"},
		InputTokenLimit:            1_048_576,
		OutputTokenLimit:           8_192,
		Description:                "Fast and versatile",
	},
	{
		Name:                       "models/gemini-pro",
		SupportedGenerationMethods: []string{"generateContent"},
	},
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestModelsToTableData(t *testing.T) {
	data := ModelsToTableData(testModels, false)
	assert.Equal(t, []string{"Name", "Display Name", "Methods"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"models/gemini-flash", "Gemini Flash", "generateContent, countTokens"}, data.Rows[0])
	assert.Equal(t, "gemini-pro", data.Rows[1][1])

	wide := ModelsToTableData(testModels, true)
	assert.Len(t, wide.Headers, 6)
	assert.Equal(t, "1.0M", wide.Rows[0][3])
	assert.Equal(t, "8K", wide.Rows[0][4])
	assert.Equal(t, "-", wide.Rows[1][3])
}

func TestFormatModelsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatModels(&buf, FormatTable, testModels))

	out := buf.String()
	assert.Contains(t, out, "models/gemini-flash")
	assert.Contains(t, out, "Gemini Flash")
}

func TestFormatModelsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatModels(&buf, FormatJSON, testModels))

	var decoded []models.Descriptor
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testModels, decoded)

	buf.Reset()
	require.NoError(t, FormatModels(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatModelsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatModels(&buf, FormatYAML, testModels))

	out := buf.String()
	assert.Contains(t, out, "name: models/gemini-flash")
	assert.Contains(t, out, "display_name: Gemini Flash")
	assert.Contains(t, out, "- generateContent")
}

func TestFormatResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatResult(&buf, FormatTable, &genlang.Result{Text: "hello"}))
	assert.Equal(t, "hello\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatResult(&buf, FormatTable, &genlang.Result{BlockReason: "SAFETY"}))
	assert.Contains(t, buf.String(), "[empty response] response contained no text")
	assert.Contains(t, buf.String(), "SAFETY")

	buf.Reset()
	require.NoError(t, FormatResult(&buf, FormatJSON, &genlang.Result{Text: "hi", FinishReason: "STOP"}))
	assert.JSONEq(t, `{"text":"hi","finishReason":"STOP"}`, buf.String())
}

func TestTableFormatterStruct(t *testing.T) {
	type info struct {
		Version string `json:"version"`
		BuiltBy string `json:"built_by"`
		Tags    []string
	}

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, info{Version: "1.2.3", BuiltBy: "ci", Tags: []string{"a", "b"}}))

	out := buf.String()
	assert.Contains(t, out, "Built By")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "a, b")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}
