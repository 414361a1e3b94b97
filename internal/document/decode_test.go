package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_JSON(t *testing.T) {
	doc, err := Decode(`{"severity": "high", "count": 2}`, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, doc.Format)
	content, ok := doc.Content.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "high", content["severity"])
	assert.Equal(t, float64(2), content["count"])
	assert.Nil(t, doc.Metadata)
}

func TestDecode_InvalidJSONFails(t *testing.T) {
	inputs := []string{`{"unbalanced": `, `not json`, `{"a": 1,}`, ``}
	for _, raw := range inputs {
		doc, err := Decode(raw, FormatJSON)
		assert.Nil(t, doc, "raw=%q", raw)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr, "raw=%q", raw)
		assert.Equal(t, FormatJSON, decodeErr.Format)
	}
}

func TestDecode_YAML(t *testing.T) {
	doc, err := Decode("severity: high\nsystems:\n  - api\n  - db\n", FormatYAML)
	require.NoError(t, err)

	content, ok := doc.Content.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "high", content["severity"])
	assert.Equal(t, []any{"api", "db"}, content["systems"])
}

func TestDecode_InvalidYAMLFails(t *testing.T) {
	doc, err := Decode("key: [unclosed", FormatYAML)
	assert.Nil(t, doc)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, FormatYAML, decodeErr.Format)
}

func TestDecode_MarkdownWithPreamble(t *testing.T) {
	raw := "---\ntitle: Outage report\nseverity: critical\n---\n\n# Summary\n\nDatabase down.\n"

	doc, err := Decode(raw, FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "Outage report", doc.Metadata["title"])
	assert.Equal(t, "critical", doc.Metadata["severity"])
	assert.Equal(t, "# Summary\n\nDatabase down.", doc.Content)
	assert.Equal(t, raw, doc.RawContent)
}

func TestDecode_MarkdownPreambleRoundTrip(t *testing.T) {
	body := "# Summary\n\nDatabase down."
	withPreamble := "---\ntitle: Outage\n---\n" + body

	docWith, err := Decode(withPreamble, FormatMarkdown)
	require.NoError(t, err)
	docWithout, err := Decode(body, FormatMarkdown)
	require.NoError(t, err)

	// Same body either way; metadata only when the preamble is present.
	assert.Equal(t, docWithout.Content, docWith.Content)
	assert.NotNil(t, docWith.Metadata)
	assert.Nil(t, docWithout.Metadata)
}

func TestDecode_MarkdownWithoutPreamble(t *testing.T) {
	doc, err := Decode("\n# Just a heading\n\nAnd text.\n", FormatMarkdown)
	require.NoError(t, err)

	assert.Nil(t, doc.Metadata)
	assert.Equal(t, "# Just a heading\n\nAnd text.", doc.Content)
}

func TestDecode_MarkdownUnterminatedPreambleIsBody(t *testing.T) {
	raw := "---\ntitle: no closing delimiter\nbody continues"

	doc, err := Decode(raw, FormatMarkdown)
	require.NoError(t, err)
	assert.Nil(t, doc.Metadata)
	assert.Equal(t, "---\ntitle: no closing delimiter\nbody continues", doc.Content)
}

func TestDecode_MarkdownBrokenPreambleIsBody(t *testing.T) {
	raw := "---\n[not: valid: yaml\n---\nbody"

	doc, err := Decode(raw, FormatMarkdown)
	require.NoError(t, err)
	assert.Nil(t, doc.Metadata)
}

func TestDecode_Text(t *testing.T) {
	doc, err := Decode("  some plain notes  \n", FormatText)
	require.NoError(t, err)

	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, "some plain notes", doc.Content)
	assert.Equal(t, "  some plain notes  \n", doc.RawContent)
}
