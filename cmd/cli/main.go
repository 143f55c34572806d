package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/facility-atlas/pkg/app"
	"github.com/de-tools/facility-atlas/pkg/config"
	"github.com/de-tools/facility-atlas/pkg/runtime/terminal"
	"github.com/de-tools/facility-atlas/pkg/runtime/terminal/commands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Setup:  setup,
		Output: os.Stdout,
	})

	if err := cli.ExecuteContext(logger.WithContext(context.Background()), os.Args[1:]...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, configPath string) (*commands.Env, func() error, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return &commands.Env{
		Reports:        application.Reports,
		Records:        application.Records,
		RunInTx:        application.RunInTx,
		CurrencySymbol: cfg.Report.CurrencySymbol,
	}, application.Close, nil
}
