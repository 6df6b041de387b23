package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NikolaiKhriapov/full-stack-app/internal/auth"
	"github.com/NikolaiKhriapov/full-stack-app/internal/db/bunx"
	"github.com/NikolaiKhriapov/full-stack-app/internal/filestore"
	"github.com/NikolaiKhriapov/full-stack-app/internal/middleware"
	"github.com/NikolaiKhriapov/full-stack-app/internal/repository"
	"github.com/NikolaiKhriapov/full-stack-app/internal/server"
	"github.com/NikolaiKhriapov/full-stack-app/internal/services/customer"
	"github.com/NikolaiKhriapov/full-stack-app/internal/services/login"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the customer API server",
	Long:  `Starts the HTTP server with the customer REST endpoints and token authentication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireSigningKey(); err != nil {
			return err
		}

		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		files, err := filestore.NewStore(cfg.ProfileImageDir)
		if err != nil {
			return fmt.Errorf("failed to initialize profile image store: %w", err)
		}

		// Initialize repositories and services
		customerRepo := repository.NewBunCustomerRepository(db)
		codec := auth.NewCodec(cfg.JWT.SigningKey, cfg.JWT.TTL)
		customerService := customer.NewService(customerRepo, files)
		loginService := login.NewService(auth.NewVerifier(customerRepo), codec)

		// Authentication and authorization middleware
		authnMiddleware, err := middleware.NewAuthnMiddleware(middleware.AuthnDependencies{
			Codec:     codec,
			Customers: customerRepo,
		})
		if err != nil {
			return fmt.Errorf("configure authentication middleware: %w", err)
		}

		authzMiddleware, err := middleware.NewAuthzMiddleware(middleware.AuthzDependencies{
			Rules: auth.DefaultRules(),
		})
		if err != nil {
			return fmt.Errorf("configure authorization middleware: %w", err)
		}

		// Assemble the shared router with the production-specific middleware.
		r := server.NewRouter(server.RouterOptions{
			CustomerService: customerService,
			LoginService:    loginService,
			CustomerCodec:   codec,
			Middleware: []func(http.Handler) http.Handler{
				authnMiddleware,
				authzMiddleware,
			},
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down gracefully", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Printf("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
