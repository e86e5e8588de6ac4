package ui

import (
	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
)

// searchDoneMsg carries the parsed results of a qmd invocation
type searchDoneMsg struct {
	generation uint64
	results    []domain.SearchResult
}

// searchErrMsg carries a failed qmd invocation
type searchErrMsg struct {
	generation uint64
	message    string
}

// openDoneMsg contains the outcome of opening a note in the pager
type openDoneMsg struct {
	path       string
	bestEffort bool
	err        error
}
