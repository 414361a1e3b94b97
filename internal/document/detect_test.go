package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_ExplicitFormatWins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		filePath string
		explicit Format
		want     Format
	}{
		{
			name:     "explicit yaml beats json extension",
			raw:      `{"a": 1}`,
			filePath: "data.json",
			explicit: FormatYAML,
			want:     FormatYAML,
		},
		{
			name:     "explicit text beats markdown content",
			raw:      "---\ntitle: x\n---\nbody",
			explicit: FormatText,
			want:     FormatText,
		},
		{
			name:     "auto falls through to extension",
			raw:      "plain",
			filePath: "notes.md",
			explicit: FormatAuto,
			want:     FormatMarkdown,
		},
		{
			name:     "empty explicit falls through",
			raw:      "plain",
			filePath: "notes.yaml",
			explicit: "",
			want:     FormatYAML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.raw, tt.filePath, tt.explicit))
		})
	}
}

func TestDetect_FromExtension(t *testing.T) {
	tests := []struct {
		filePath string
		want     Format
	}{
		{"report.json", FormatJSON},
		{"runbook.md", FormatMarkdown},
		{"runbook.markdown", FormatMarkdown},
		{"config.yaml", FormatYAML},
		{"config.yml", FormatYAML},
		{"notes.txt", FormatText},
		{"notes.text", FormatText},
		{"docs/nested/INCIDENT.MD", FormatMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			// Content that would sniff as text: the extension must decide.
			assert.Equal(t, tt.want, Detect("plain content", tt.filePath, ""))
		})
	}
}

func TestDetect_UnknownExtensionFallsThroughToSniffing(t *testing.T) {
	assert.Equal(t, FormatJSON, Detect(`{"a": 1}`, "data.bin", ""))
	assert.Equal(t, FormatText, Detect("plain content", "data.bin", ""))
}

func TestDetect_ContentSniffing(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Format
	}{
		{"json object", `{"severity": "high"}`, FormatJSON},
		{"json array", `[1, 2, 3]`, FormatJSON},
		{"json with surrounding whitespace", "\n\n  {\"a\": 1}  \n", FormatJSON},
		{"markdown preamble", "---\ntitle: outage\n---\n# Report", FormatMarkdown},
		{"yaml mapping", "severity: high\nstatus: open", FormatYAML},
		{"plain text", "nothing structured here", FormatText},
		{"empty input", "", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.raw, "", ""))
		})
	}
}

func TestDetect_InvalidJSONFallsBack(t *testing.T) {
	// Looks like JSON but is not: the JSON step must not claim it, and the
	// YAML step skips anything containing a brace, so it lands on text.
	assert.Equal(t, FormatText, Detect(`{"unbalanced": `, "", ""))
	assert.Equal(t, FormatText, Detect(`[1, 2,`, "", ""))

	// Brace-free text with a colon that parses as YAML becomes yaml.
	assert.Equal(t, FormatYAML, Detect("key: value", "", ""))
}

func TestDetect_NeverFails(t *testing.T) {
	inputs := []string{"", "   ", "\x00\x01", "::::", "---"}
	for _, raw := range inputs {
		format := Detect(raw, "", "")
		assert.NotEmpty(t, format, "raw=%q", raw)
	}
}
