package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Content is an article body. It is either a raw Markdown string or a
// block document produced by the rich-text editor. Exactly one of Raw and
// Doc is meaningful: Doc wins when non-nil.
type Content struct {
	Raw string
	Doc *EditorData
}

// EditorData is a block-structured editor document.
type EditorData struct {
	Time    int64   `json:"time,omitempty" yaml:"time,omitempty"`
	Blocks  []Block `json:"blocks" yaml:"blocks"`
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
}

// Block is a single editor block, e.g. a paragraph, header, list or code block.
type Block struct {
	ID   string         `json:"id,omitempty" yaml:"id,omitempty"`
	Type string         `json:"type" yaml:"type"`
	Data map[string]any `json:"data" yaml:"data"`
}

// RawContent wraps a Markdown string.
func RawContent(s string) Content { return Content{Raw: s} }

// DocContent wraps an editor document.
func DocContent(d EditorData) Content { return Content{Doc: &d} }

// MarshalJSON emits a string for raw content and an object for documents.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Doc != nil {
		return json.Marshal(c.Doc)
	}
	return json.Marshal(c.Raw)
}

// UnmarshalJSON accepts a string or an editor document object. A string that
// itself holds a serialized editor document is decoded as a document.
func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Content{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ParseContentString(s)
		return nil
	}
	var d EditorData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("models: decode content: %w", err)
	}
	*c = Content{Doc: &d}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (c Content) MarshalYAML() (any, error) {
	if c.Doc != nil {
		return c.Doc, nil
	}
	return c.Raw, nil
}

// UnmarshalYAML accepts a scalar string or a mapping holding an editor document.
func (c *Content) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = ParseContentString(s)
		return nil
	}
	var d EditorData
	if err := node.Decode(&d); err != nil {
		return fmt.Errorf("models: decode content: %w", err)
	}
	*c = Content{Doc: &d}
	return nil
}

// ParseContentString interprets s as a serialized editor document when it
// looks like one, and as raw Markdown otherwise.
func ParseContentString(s string) Content {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") {
		var d EditorData
		if err := json.Unmarshal([]byte(trimmed), &d); err == nil && d.Blocks != nil {
			return Content{Doc: &d}
		}
	}
	return Content{Raw: s}
}
