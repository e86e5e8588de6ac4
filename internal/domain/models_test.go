package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		res  SearchResult
		want string
	}{
		{"explicit title wins", SearchResult{Title: "Q3 Plan", File: "obsidian/x.md"}, "Q3 Plan"},
		{"derived from file", SearchResult{File: "obsidian/Projects/Q3 Plan.md"}, "Q3 Plan"},
		{"derived without extension", SearchResult{File: "Projects/Roadmap"}, "Roadmap"},
		{"empty reference", SearchResult{File: ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.res.DisplayTitle())
		})
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0.87, 87},
		{0, 0},
		{1, 100},
		{0.005, 1},
		{1.7, 100}, // scores are not guaranteed bounded
		{-0.2, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SearchResult{Score: tt.score}.ScorePercent(), "score %v", tt.score)
	}
}

func TestExcerpt_FallsBackToContext(t *testing.T) {
	require.Equal(t, "snip", SearchResult{Snippet: "snip", Context: "ctx"}.Excerpt())
	require.Equal(t, "ctx", SearchResult{Context: "ctx"}.Excerpt())
	require.Empty(t, SearchResult{}.Excerpt())
}
