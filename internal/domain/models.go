package domain

import (
	"encoding/json"
	"path"
	"strings"
)

// Mode selects the qmd search strategy
type Mode string

const (
	ModeSearch  Mode = "search"  // keyword / BM25
	ModeVSearch Mode = "vsearch" // semantic / vector
	ModeQuery   Mode = "query"   // hybrid with re-ranking
)

// Modes lists every search mode in registration order
var Modes = []Mode{ModeSearch, ModeVSearch, ModeQuery}

// SearchResult represents one document returned by qmd.
// Unknown fields in the tool's output are tolerated and ignored.
type SearchResult struct {
	DocID   string  `json:"docId"`
	Score   float64 `json:"score"`
	File    string  `json:"file"`
	Title   string  `json:"title,omitempty"`
	Snippet string  `json:"snippet,omitempty"`
	Context string  `json:"context,omitempty"`
}

// UnmarshalJSON tolerates docId arriving as a string or a number, and the
// file reference under any of the names qmd has used across releases.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	type alias struct {
		DocID    json.RawMessage `json:"docId"`
		Score    float64         `json:"score"`
		File     string          `json:"file"`
		FilePath string          `json:"filepath"`
		Path     string          `json:"path"`
		Title    string          `json:"title"`
		Snippet  string          `json:"snippet"`
		Context  string          `json:"context"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if len(a.DocID) > 0 {
		var s string
		if err := json.Unmarshal(a.DocID, &s); err == nil {
			r.DocID = s
		} else {
			r.DocID = strings.Trim(string(a.DocID), `"`)
		}
	}
	r.Score = a.Score
	r.File = a.File
	if r.File == "" {
		r.File = a.FilePath
	}
	if r.File == "" {
		r.File = a.Path
	}
	r.Title = a.Title
	r.Snippet = a.Snippet
	r.Context = a.Context
	return nil
}

// DisplayTitle returns the title, or a name derived from the file reference
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	base := path.Base(strings.TrimSuffix(r.File, ".md"))
	if base == "." || base == "/" || base == "" {
		return r.File
	}
	return base
}

// ScorePercent returns the relevance score scaled for display, clamped to [0,100]
func (r SearchResult) ScorePercent() int {
	pct := int(r.Score*100 + 0.5)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Excerpt returns the snippet, falling back to the context field
func (r SearchResult) Excerpt() string {
	if r.Snippet != "" {
		return r.Snippet
	}
	return r.Context
}

// Note represents a markdown document in the local vault
type Note struct {
	Path string // path relative to the vault root, with extension
	Base string // file name without directory or extension
}
