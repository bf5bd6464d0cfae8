package main

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
	"go.uber.org/zap"

	"github.com/yourusername/shazam-dl-go/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the download history over a read-only HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnvironment(false)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.history == nil {
			return fmt.Errorf("download history is disabled or unavailable")
		}

		host := env.config.Server.Host
		port := env.config.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		addr := fmt.Sprintf("%s:%d", host, port)

		server := &http.Server{
			Addr:    addr,
			Handler: api.SetupRouter(env.history, env.log, version),
		}

		serverErr := make(chan error, 1)
		go func() {
			env.log.Info("Starting status API", zap.String("address", addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		case <-quit:
		}

		env.log.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		env.log.Info("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8090, "Port to listen on (overrides config)")
}
