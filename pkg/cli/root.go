package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "0.1.0"

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ssh-audit-report",
		Short:         "Consolidate ssh-audit JSON results into a spreadsheet",
		Long:          "ssh-audit-report reads per-host ssh-audit JSON exports and produces a severity-colored workbook with a detailed sheet and a per-host summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := v.GetString("config")
			if cfg == "" {
				return nil
			}
			v.SetConfigFile(cfg)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", cfg, err)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", ".", "Output directory")
	rootCmd.PersistentFlags().String("config", "", "Optional YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = v.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Environment variable support (SSHAUDIT_OUTPUT, SSHAUDIT_REPORT_DIR, etc.)
	v.SetEnvPrefix("SSHAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Subcommands
	rootCmd.AddCommand(newReportCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(viper.New()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
