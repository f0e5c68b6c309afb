package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schemaform/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "schemaform",
	Short: "Server-driven HTML forms from declarative schemas",
	Long:  "Compiles declarative schemas into HTML forms, reconciles submissions back into nested value trees, and serves list mutation, comparison and copy endpoints.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
