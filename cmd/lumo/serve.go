package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pcsoft.com/lumo/internal/api"
	"pcsoft.com/lumo/internal/config"
)

func NewServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Lumo HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			router := api.NewRouter(api.NewAPIHandler(a.auth, a.chat))
			serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

			srv := &http.Server{
				Addr:        serverAddr,
				Handler:     router,
				ReadTimeout: 15 * time.Second,
				// Streams with long answers can take a while at full pace.
				WriteTimeout: 5 * time.Minute,
				IdleTimeout:  120 * time.Second,
			}

			go func() {
				log.Infof("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.WithError(err).Fatalf("could not listen on %s", serverAddr)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			log.Info("Shutting down server...")

			// In-flight answers keep whatever text they produced so far.
			a.chat.CancelStreams()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info("Server exiting gracefully")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.HTTPPort, "port", cfg.HTTPPort, "HTTP port to listen on")
	return cmd
}
