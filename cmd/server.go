package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openrag/llm-playground/internal/playground"
	"github.com/openrag/llm-playground/internal/server"
	"github.com/openrag/llm-playground/internal/web"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web playground",
	Long:  `Starts the playground web form with JSON and websocket endpoints for single prompts and side-by-side model comparison.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		srv := server.New(server.Config{
			Port:           port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			RequestTimeout: cfg.RequestTimeout(),
		})

		w := web.New(newController(cfg), web.Defaults{
			Model:       playground.Model(cfg.DefaultModel),
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Stream:      cfg.Stream,
		}, cfg.RequestTimeout())
		w.RegisterRoutes(srv.Router(), srv.Stream())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		logger.Info("playground server starting",
			"version", Version,
			"port", port,
			"default_model", cfg.DefaultModel,
			"rate_limit_rpm", cfg.RateLimitRPM,
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
