// Package document classifies and decodes the text formats that appear in
// incident runbooks and reports: JSON, markdown (with an optional YAML
// frontmatter preamble), YAML, and plain text.
package document

import (
	"encoding/json"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a supported document format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatText     Format = "text"

	// FormatAuto asks Detect to work the format out itself.
	FormatAuto Format = "auto"
)

// extensionFormats maps lowercase file extensions to formats.
var extensionFormats = map[string]Format{
	".json":     FormatJSON,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".txt":      FormatText,
	".text":     FormatText,
}

// detector is one step of the detection chain. It reports a format and
// whether it claimed the input; unclaimed input falls through to the next
// step. New formats slot in as new detectors without touching the chain.
type detector func(raw, filePath string, explicit Format) (Format, bool)

var detectors = []detector{
	detectExplicit,
	detectExtension,
	detectJSONContent,
	detectMarkdownPreamble,
	detectYAMLContent,
}

// Detect classifies raw text. Resolution order: an explicit non-auto format
// always wins, then the file extension, then content sniffing, and finally
// the text default. Detection never fails; at worst it degrades to text.
// Decoding remains the authoritative check for optimistic claims.
func Detect(raw, filePath string, explicit Format) Format {
	for _, d := range detectors {
		if format, ok := d(raw, filePath, explicit); ok {
			return format
		}
	}
	return FormatText
}

func detectExplicit(_, _ string, explicit Format) (Format, bool) {
	if explicit != "" && explicit != FormatAuto {
		return explicit, true
	}
	return "", false
}

func detectExtension(_, filePath string, _ Format) (Format, bool) {
	if filePath == "" {
		return "", false
	}
	format, ok := extensionFormats[strings.ToLower(path.Ext(filePath))]
	return format, ok
}

func detectJSONContent(raw, _ string, _ Format) (Format, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return "", false
	}
	if !json.Valid([]byte(trimmed)) {
		return "", false
	}
	return FormatJSON, true
}

// detectMarkdownPreamble treats a leading "---" as a markdown document with
// a metadata preamble.
func detectMarkdownPreamble(raw, _ string, _ Format) (Format, bool) {
	if strings.HasPrefix(strings.TrimSpace(raw), preambleDelimiter) {
		return FormatMarkdown, true
	}
	return "", false
}

func detectYAMLContent(raw, _ string, _ Format) (Format, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, ":") || strings.Contains(trimmed, "{") {
		return "", false
	}
	var probe any
	if yaml.Unmarshal([]byte(trimmed), &probe) != nil {
		return "", false
	}
	return FormatYAML, true
}
