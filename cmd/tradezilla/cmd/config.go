package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradezilla/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage tradezilla configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradezilla config init -o tradezilla.yaml
  tradezilla config validate -f tradezilla.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "tradezilla.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  tradezilla --config %s stats\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	switch cfg.Store.Driver {
	case "redis":
		fmt.Fprintf(out, "  Store: redis %s db %d\n", cfg.Store.RedisAddr, cfg.Store.RedisDB)
	case "memory":
		fmt.Fprintln(out, "  Store: memory (not persisted)")
	default:
		fmt.Fprintf(out, "  Store: %s %s\n", cfg.Store.Driver, cfg.Store.Path)
	}
	fmt.Fprintf(out, "  Coach: %s (%s / %s)\n", cfg.AI.Provider, cfg.AI.ReviewModel, cfg.AI.ChatModel)
	fmt.Fprintf(out, "  Server: %s\n", cfg.Server.Addr)
	if cfg.Cron.Enabled {
		fmt.Fprintf(out, "  Cron: notify %q, review %q\n", cfg.Cron.NotifySpec, cfg.Cron.ReviewSpec)
	}
	return nil
}
