package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OFFIS-RIT/peoplegraph/internal/bootstrap"
	"github.com/OFFIS-RIT/peoplegraph/internal/chat"
	"github.com/OFFIS-RIT/peoplegraph/internal/config"
	"github.com/OFFIS-RIT/peoplegraph/internal/util"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger/console"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "peoplegraph-chat [dataset.csv]",
	Short: "Ask questions about people in natural language",
	Long: `Interactive question loop over a people dataset.

The dataset is a CSV file with the columns id, name, company, university,
languages, industry and country. It is read from the first argument, the
--data flag or DATA_PATH, in that order. s3://bucket/key locations are read
from S3 storage.

Examples:
  peoplegraph-chat
  peoplegraph-chat ./people.csv --show-conditions
  AI_ADAPTER=ollama peoplegraph-chat s3://datasets/people.csv`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	rootCmd.Flags().String("data", "", "dataset location (overrides DATA_PATH)")
	rootCmd.Flags().Bool("debug", false, "enable debug logging (overrides DEBUG)")
	rootCmd.Flags().String("log-format", "", "log format: text, json or logfmt (overrides LOG_FORMAT)")
	rootCmd.Flags().Bool("show-conditions", false, "print the conditions derived from every question")
}

func runChat(cmd *cobra.Command, args []string) error {
	util.LoadEnv()
	cfg := config.Load()

	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.DataPath = data
	}
	if len(args) == 1 {
		cfg.DataPath = args[0]
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
	}))

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := bootstrap.NewAIClient(cfg.AI)
	if err != nil {
		return err
	}
	go func() {
		if err := client.LoadModel(ctx); err != nil {
			logger.Debug("Model preload failed", "err", err)
		}
	}()

	engine, err := bootstrap.NewEngine(ctx, cfg, client, nil)
	if err != nil {
		return err
	}

	showConditions, _ := cmd.Flags().GetBool("show-conditions")
	c := chat.NewChat(chat.NewChatParams{
		Asker:          engine,
		In:             cmd.InOrStdin(),
		Out:            cmd.OutOrStdout(),
		ShowConditions: showConditions || cfg.Debug,
	})
	if err := c.Run(ctx); err != nil {
		return err
	}

	metrics := client.GetMetrics()
	logger.Debug("Language model usage", "requests", metrics.Requests, "tokens", metrics.TotalTokens, "duration_ms", metrics.DurationMs)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Error: "+errors.UserMessage(err))
		os.Exit(1)
	}
}
