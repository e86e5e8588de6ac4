package qmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
)

func TestParseResults_ArrayWithSurroundingText(t *testing.T) {
	raw := []byte("Loading collection obsidian...\n" +
		"Scoring 412 documents\n" +
		`[{"docId":"1","score":0.87,"file":"obsidian/Projects/Q3 Plan.md","title":"Q3 Plan"}]` +
		"\ndone in 0.2s\n")

	results, err := ParseResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "1", results[0].DocID)
	require.Equal(t, "obsidian/Projects/Q3 Plan.md", results[0].File)
	require.Equal(t, "Q3 Plan", results[0].Title)
	require.Equal(t, 87, results[0].ScorePercent())
}

func TestParseResults_NoArrayMeansNoResults(t *testing.T) {
	for _, raw := range []string{
		"",
		"no matches found",
		"searching...\ndone\n",
	} {
		results, err := ParseResults([]byte(raw))
		require.NoError(t, err, "input %q", raw)
		require.Empty(t, results, "input %q", raw)
	}
}

func TestParseResults_ControlCharsEqualEscapedInput(t *testing.T) {
	// A literal newline, tab, and vertical tab inside string values must
	// parse identically to a correctly escaped payload.
	broken := []byte("[{\"docId\":\"a\",\"score\":0.5,\"file\":\"obsidian/a.md\",\"snippet\":\"line one\nline\ttwo\x0bend\"}]")
	escaped := []byte(`[{"docId":"a","score":0.5,"file":"obsidian/a.md","snippet":"line one\nline\ttwo\u000bend"}]`)

	got, err := ParseResults(broken)
	require.NoError(t, err)

	var want []domain.SearchResult
	require.NoError(t, json.Unmarshal(escaped, &want))
	require.Equal(t, want, got)
}

func TestParseResults_ExistingEscapesPassThrough(t *testing.T) {
	raw := []byte(`[{"docId":"a","score":0.1,"file":"obsidian/a.md","snippet":"said \"hi\\n\" once"}]`)

	results, err := ParseResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "said \"hi\\n\" once", results[0].Snippet)
}

func TestParseResults_NonObjectElementsFail(t *testing.T) {
	// A well-formed array whose elements are not result objects is invalid
	// inner content, not a partial success
	_, err := ParseResults([]byte(`["just","strings"]`))
	require.Error(t, err)
}

func TestParseResults_MalformedInnerContentFails(t *testing.T) {
	raw := []byte(`progress [{"docId":"1","score":]`)

	_, err := ParseResults(raw)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse qmd output")
}

func TestParseResults_UnknownFieldsIgnored(t *testing.T) {
	raw := []byte(`[{"docId":"x","score":0.4,"file":"obsidian/x.md","rank":3,"chunk":{"id":9}}]`)

	results, err := ParseResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "x", results[0].DocID)
}

func TestParseResults_NumericDocID(t *testing.T) {
	raw := []byte(`[{"docId":42,"score":0.4,"file":"obsidian/x.md"}]`)

	results, err := ParseResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "42", results[0].DocID)
}

func TestParseResults_AlternateFileKeys(t *testing.T) {
	raw := []byte(`[{"docId":"1","score":0.2,"path":"obsidian/y.md"}]`)

	results, err := ParseResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "obsidian/y.md", results[0].File)
}

func TestSanitize_OutsideStringsUntouched(t *testing.T) {
	in := []byte("[\n  {\"a\": \"b\"},\n  {\"c\": \"d\"}\n]")
	require.Equal(t, in, sanitize(in))
}

func TestParseResults_OrderPreserved(t *testing.T) {
	raw := []byte(`[` +
		`{"docId":"low","score":0.1,"file":"obsidian/low.md"},` +
		`{"docId":"high","score":0.9,"file":"obsidian/high.md"}` +
		`]`)

	results, err := ParseResults(raw)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Input order is authoritative even when scores disagree with it
	require.Equal(t, "low", results[0].DocID)
	require.Equal(t, "high", results[1].DocID)
}
