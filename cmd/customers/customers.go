package customers

import "github.com/spf13/cobra"

// CustomersCmd is the parent command for customer management operations
var CustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customers",
	Long:  `Commands for managing customer accounts directly from the server.`,
}

func init() {
	createCmd.Flags().StringVar(&nameFlag, "name", "", "Display name of the customer")
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address of the customer")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password for the customer (use --stdin to avoid shell history)")
	createCmd.Flags().IntVar(&ageFlag, "age", 0, "Age of the customer")
	createCmd.Flags().StringVar(&genderFlag, "gender", "", "Gender of the customer (MALE or FEMALE)")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")

	CustomersCmd.AddCommand(createCmd)
}
