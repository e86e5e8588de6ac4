package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quakeboy/qmd-search-obsidian/internal/config"
)

// newConfigCmd manages the persisted settings
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change qmdgrip settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Print all settings, or one setting by key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService()
			cfg, err := svc.Load()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				for _, key := range settingKeys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, getSetting(cfg, key))
				}
				return nil
			}
			val, ok := lookupSetting(cfg, args[0])
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting (invalid values coerce to defaults)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService()
			cfg, err := svc.Load()
			if err != nil {
				return err
			}
			if err := setSetting(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := svc.Save(cfg); err != nil {
				return err
			}
			val, _ := lookupSetting(cfg, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], val)
			return nil
		},
	})

	return configCmd
}

var settingKeys = []string{"executable", "collection", "vault", "limit", "extra_path", "debug"}

func getSetting(cfg *config.Config, key string) string {
	val, _ := lookupSetting(cfg, key)
	return val
}

func lookupSetting(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "executable":
		return cfg.Executable, true
	case "collection":
		return cfg.Collection, true
	case "vault":
		return cfg.Vault, true
	case "limit":
		return strconv.Itoa(cfg.Limit), true
	case "extra_path":
		return cfg.ExtraPath, true
	case "debug":
		return strconv.FormatBool(cfg.Debug), true
	}
	return "", false
}

// setSetting applies one scalar setting. Non-numeric or sub-minimum limits
// and blank executable/collection fall back to defaults via Normalize on save.
func setSetting(cfg *config.Config, key, value string) error {
	switch key {
	case "executable":
		cfg.Executable = value
	case "collection":
		cfg.Collection = value
	case "vault":
		cfg.Vault = value
	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			n = config.DefaultLimit
		}
		cfg.Limit = n
	case "extra_path":
		cfg.ExtraPath = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debug wants true or false, got %q", value)
		}
		cfg.Debug = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
