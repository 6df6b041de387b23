package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/NikolaiKhriapov/full-stack-app/cmd/customers"
	"github.com/NikolaiKhriapov/full-stack-app/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "customerapi",
	Short: "Customer management API server",
	Long: `Customer API Server provides customer registration, authentication and
profile management over HTTP REST endpoints with stateless token auth.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local development convenience; a missing .env file is not an error.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	// Add subcommands
	rootCmd.AddCommand(customers.CustomersCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
