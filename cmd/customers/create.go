package customers

import (
	"bufio"
	"context"
	"fmt"
	"net/mail"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/NikolaiKhriapov/full-stack-app/internal/config"
	"github.com/NikolaiKhriapov/full-stack-app/internal/db/bunx"
	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
	"github.com/NikolaiKhriapov/full-stack-app/internal/filestore"
	"github.com/NikolaiKhriapov/full-stack-app/internal/repository"
	"github.com/NikolaiKhriapov/full-stack-app/internal/services/customer"
)

var (
	nameFlag     string
	emailFlag    string
	passwordFlag string
	ageFlag      int
	genderFlag   string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new customer account",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate required flags
		if nameFlag == "" {
			return fmt.Errorf("--name flag is required")
		}

		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}

		password := passwordFlag
		if stdinFlag {
			// Read password from stdin
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}

		// Validate email format
		if _, err := mail.ParseAddress(emailFlag); err != nil {
			return fmt.Errorf("invalid email format: %w", err)
		}

		_ = godotenv.Load()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		files, err := filestore.NewStore(cfg.ProfileImageDir)
		if err != nil {
			return fmt.Errorf("failed to initialize profile image store: %w", err)
		}

		customerRepo := repository.NewBunCustomerRepository(db)
		service := customer.NewService(customerRepo, files)

		view, err := service.Create(context.Background(), customer.RegistrationRequest{
			Name:     nameFlag,
			Email:    emailFlag,
			Password: password,
			Age:      ageFlag,
			Gender:   models.Gender(genderFlag),
		})
		if err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}

		fmt.Printf("Created customer %d (%s)\n", view.ID, view.Email)
		return nil
	},
}
