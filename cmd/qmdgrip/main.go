package main

import (
	"github.com/quakeboy/qmd-search-obsidian/internal/cli"
)

func main() {
	cli.Execute()
}
