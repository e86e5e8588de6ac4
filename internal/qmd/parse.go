package qmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
)

// ParseResults recovers a JSON array of search results from raw qmd output.
// The array may be surrounded by progress lines or other non-JSON text, and
// string values inside it may contain literal control characters that qmd
// failed to escape. No array at all means qmd found nothing; that is zero
// results, not an error.
func ParseResults(raw []byte) ([]domain.SearchResult, error) {
	start := bytes.IndexByte(raw, '[')
	end := bytes.LastIndexByte(raw, ']')
	if start < 0 || end < 0 || end < start {
		return nil, nil
	}

	payload := sanitize(raw[start : end+1])

	// A syntactically valid non-array value is tolerated as empty rather
	// than failing; only a broken payload is a parse error.
	dec := json.NewDecoder(bytes.NewReader(payload))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse qmd output: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, nil
	}

	var results []domain.SearchResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("failed to parse qmd output: %w", err)
	}
	return results, nil
}

// sanitize escapes raw control characters found inside JSON string values.
// Existing backslash escapes pass through untouched: the byte after a
// backslash is copied verbatim so valid escapes are never doubled. Text
// outside strings is left alone.
func sanitize(in []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(in))

	inString := false
	for i := 0; i < len(in); i++ {
		c := in[i]

		if !inString {
			if c == '"' {
				inString = true
			}
			out.WriteByte(c)
			continue
		}

		switch {
		case c == '\\':
			out.WriteByte(c)
			if i+1 < len(in) {
				i++
				out.WriteByte(in[i])
			}
		case c == '"':
			inString = false
			out.WriteByte(c)
		case c == '\n':
			out.WriteString(`\n`)
		case c == '\r':
			out.WriteString(`\r`)
		case c == '\t':
			out.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&out, `\u%04x`, c)
		default:
			out.WriteByte(c)
		}
	}

	return out.Bytes()
}
