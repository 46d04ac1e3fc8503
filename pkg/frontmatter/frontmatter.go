// Package frontmatter provides utilities for parsing and formatting
// YAML frontmatter in markdown files.
package frontmatter

import (
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse extracts YAML frontmatter and body content from a reader.
// If no frontmatter is present, matter is left untouched and the full
// content is returned as body. Frontmatter is optional for command and
// agent files, so a bare markdown file is not an error.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Check for start delimiter
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content, nil
	}

	// Skip past the opening delimiter line
	startOffset := 3
	if len(content) > 3 && content[3] == '\r' {
		startOffset = 4
	}
	if len(content) > startOffset && content[startOffset] == '\n' {
		startOffset++
	}

	// Search for closing "---" on a new line
	parts := bytes.SplitN(content[startOffset:], []byte("\n---"), 2)
	if len(parts) < 2 {
		parts = bytes.SplitN(content[startOffset:], []byte("\r\n---"), 2)
	}
	if len(parts) < 2 {
		// No closing delimiter; treat the whole file as body
		return content, nil
	}

	fm := parts[0]
	bodyContent := parts[1]

	// Trim the newline left over from the split
	if len(bodyContent) > 0 && bodyContent[0] == '\r' {
		bodyContent = bodyContent[1:]
	}
	if len(bodyContent) > 0 && bodyContent[0] == '\n' {
		bodyContent = bodyContent[1:]
	}

	if err := yaml.Unmarshal(fm, matter); err != nil {
		return nil, err
	}

	return bodyContent, nil
}

// Format formats content with YAML frontmatter.
// The matter struct is serialized to YAML and wrapped in "---" delimiters,
// followed by the body content.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
