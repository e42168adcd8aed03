package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/mediabot/dispatch"
	"github.com/s0up4200/mediabot/server"
	"github.com/s0up4200/mediabot/slack"
)

const shutdownTimeout = 30 * time.Second

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Listen for Slack slash commands",
	Long: `Start the HTTP server that receives Slack slash commands on /v1/media and /v1/m.

Each command is acknowledged immediately and its result is posted to the
originating channel through the configured incoming webhook.`,
	PreRunE: initializeApp,
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if listenAddr != "" {
		addr = listenAddr
	}

	notifier := slack.NewNotifier(cfg.Slack.Hooks.Incoming, cfg.Slack.BotName, logger)
	tokens := dispatch.Tokens{
		Media: cfg.Slack.Tokens.Media,
		M:     cfg.Slack.Tokens.M,
	}
	dispatcher := dispatch.New(catalog, formatter, notifier, tokens, logger)

	if cfg.Slack.SigningSecret == "" {
		logger.Warn().Msg("slack.signing_secret not set, request signatures will not be verified")
	}
	srv := server.New(dispatcher, cfg.Slack.SigningSecret, logger)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("Listening for slash commands")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		srv.Wait()
		logger.Info().Msg("All commands handled, bye")
		return nil
	})

	return g.Wait()
}
