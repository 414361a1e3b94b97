package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const preambleDelimiter = "---"

// ParsedDocument is the normalized decode result. Content holds a generic
// object or array for json/yaml and a trimmed string for markdown/text.
// Metadata is populated only for markdown documents with a preamble.
type ParsedDocument struct {
	Format     Format         `json:"format"`
	Content    any            `json:"content"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	RawContent string         `json:"raw_content"`
}

// DecodeError indicates text does not conform to its claimed format.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode content as %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses raw text as the given format. Detection may claim a format
// optimistically; Decode is the authoritative check and fails with a
// DecodeError when json or yaml text does not actually parse. Markdown and
// text never fail.
func Decode(raw string, format Format) (*ParsedDocument, error) {
	switch format {
	case FormatJSON:
		var content any
		if err := json.Unmarshal([]byte(raw), &content); err != nil {
			return nil, &DecodeError{Format: FormatJSON, Err: err}
		}
		return &ParsedDocument{Format: FormatJSON, Content: content, RawContent: raw}, nil

	case FormatYAML:
		var content any
		if err := yaml.Unmarshal([]byte(raw), &content); err != nil {
			return nil, &DecodeError{Format: FormatYAML, Err: err}
		}
		return &ParsedDocument{Format: FormatYAML, Content: content, RawContent: raw}, nil

	case FormatMarkdown:
		metadata, body := splitPreamble(raw)
		return &ParsedDocument{
			Format:     FormatMarkdown,
			Content:    strings.TrimSpace(body),
			Metadata:   metadata,
			RawContent: raw,
		}, nil

	default:
		return &ParsedDocument{
			Format:     FormatText,
			Content:    strings.TrimSpace(raw),
			RawContent: raw,
		}, nil
	}
}

// splitPreamble separates a leading "---"-delimited YAML preamble from the
// body. Input without a well-formed, parseable preamble comes back whole as
// body with nil metadata; a broken preamble is body text, not an error.
func splitPreamble(raw string) (map[string]any, string) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, preambleDelimiter) {
		return nil, raw
	}

	rest := text[len(preambleDelimiter):]
	end := strings.Index(rest, "\n"+preambleDelimiter)
	if end < 0 {
		return nil, raw
	}

	front := rest[:end]
	body := rest[end+1+len(preambleDelimiter):]
	// The closing delimiter must sit on a line of its own.
	if body != "" && !strings.HasPrefix(body, "\n") && !strings.HasPrefix(body, "\r\n") {
		return nil, raw
	}

	var metadata map[string]any
	if err := yaml.Unmarshal([]byte(front), &metadata); err != nil || len(metadata) == 0 {
		return nil, raw
	}
	return metadata, body
}
