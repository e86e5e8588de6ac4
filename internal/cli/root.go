// Package cli registers the qmdgrip commands: one entry point per qmd search
// mode, plus configuration management.
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quakeboy/qmd-search-obsidian/internal/config"
	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
	"github.com/quakeboy/qmd-search-obsidian/internal/eventbus"
	"github.com/quakeboy/qmd-search-obsidian/internal/qmd"
	"github.com/quakeboy/qmd-search-obsidian/internal/ui"
	"github.com/quakeboy/qmd-search-obsidian/internal/vault"
)

var modeShort = map[domain.Mode]string{
	domain.ModeSearch:  "Keyword (BM25) search",
	domain.ModeVSearch: "Semantic (vector) search",
	domain.ModeQuery:   "Hybrid search with re-ranking",
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the qmdgrip command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qmdgrip",
		Short: "Search an Obsidian vault with qmd",
		Long: "qmdgrip is an interactive search modal for markdown vaults.\n" +
			"It shells out to the qmd CLI, repairs its JSON output, and opens\n" +
			"matching notes from the local vault.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("vault", "", "vault root directory (default: current directory)")
	root.PersistentFlags().String("collection", "", "qmd collection name")
	root.PersistentFlags().String("executable", "", "qmd binary name or path")
	root.PersistentFlags().Int("limit", 0, "maximum number of results")
	root.PersistentFlags().String("extra-path", "", "extra directory prepended to PATH when spawning qmd")
	root.PersistentFlags().Bool("debug", false, "log qmd invocations and raw output")

	for _, mode := range domain.Modes {
		root.AddCommand(newModeCmd(mode))
	}
	root.AddCommand(newConfigCmd())

	return root
}

// newModeCmd registers one search mode as its own entry point; all three
// run the same pipeline and differ only in the mode token passed to qmd
func newModeCmd(mode domain.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [query]", mode),
		Short: modeShort[mode],
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModal(cmd, mode, strings.Join(args, " "))
		},
	}
}

// runModal wires config, vault, runner, and the bubbletea modal together
func runModal(cmd *cobra.Command, mode domain.Mode, initialQuery string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	setupLogging(cfg.Debug)

	vaultRoot := cfg.Vault
	if vaultRoot == "" {
		vaultRoot, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine vault directory: %w", err)
		}
	}

	bus := eventbus.New()
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})
	if cfg.Debug {
		bus.Subscribe(eventbus.EventSearchStarted, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SearchStartedEvent); ok {
				log.Printf("Search started: mode=%s gen=%d query=%q", event.Mode, event.Generation, event.Query)
			}
		})
		bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SearchCompletedEvent); ok {
				log.Printf("Search completed: gen=%d results=%d", event.Generation, len(event.Results))
			}
		})
	}

	v := vault.New(vaultRoot, bus)
	model := ui.NewModel(mode, cfg, qmd.NewRunner(), v, bus, initialQuery)

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadConfig loads the persisted settings and applies any flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	svc := config.NewConfigService()
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("vault") {
		cfg.Vault, _ = flags.GetString("vault")
	}
	if flags.Changed("collection") {
		cfg.Collection, _ = flags.GetString("collection")
	}
	if flags.Changed("executable") {
		cfg.Executable, _ = flags.GetString("executable")
	}
	if flags.Changed("limit") {
		cfg.Limit, _ = flags.GetInt("limit")
	}
	if flags.Changed("extra-path") {
		cfg.ExtraPath, _ = flags.GetString("extra-path")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	cfg.Normalize()
	return cfg, nil
}

// setupLogging sends the log package to a file so log lines never corrupt
// the TUI
func setupLogging(debug bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	logPath := filepath.Join(dir, "qmdgrip", "qmdgrip.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		return
	}
	log.SetOutput(logFile)
	if debug {
		log.Printf("Debug logging enabled")
	}
}
