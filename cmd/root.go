package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willimj3/bella-document-review/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "bella",
	Short: "LLM-powered legal document review",
	Long:  "Extracts structured, column-based answers from legal documents via Claude, maintains a reviewable in-memory result grid, answers analyst questions over the aggregated results, and exports to CSV/JSON/XLSX.",
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
