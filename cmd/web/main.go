package main

import (
	"fmt"
	"os"

	handlers "github.com/de-tools/fin-atlas/pkg/handlers/analysis"
	"github.com/de-tools/fin-atlas/pkg/runtime/app"
	"github.com/de-tools/fin-atlas/pkg/server"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the fin-atlas web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file; FINATLAS_* environment variables override it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a, err := app.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close(ctx)

	webAPI := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Handlers: handlers.Dependencies{
				Analyzer:   a.Analyzer,
				Comparator: a.Comparator,
				Benchmarks: a.Benchmarks,
				Extractors: a.Extractors,
				Store:      a.Extracts,
				Policy:     a.Policy,
			},
			Logger: logger,
		},
	})

	return webAPI.Start()
}
