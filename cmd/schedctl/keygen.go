package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arnavshah/staff-scheduler-api/pkg/auth"
)

func keygenCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "keygen <userID>",
		Short: "Generate an HMAC API key for a user ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Missing .env is fine when the secret is already exported
			_ = godotenv.Load(envFile)

			secret := os.Getenv("API_MASTER_SECRET")
			if secret == "" {
				return errors.New("API_MASTER_SECRET not set")
			}

			a := &auth.Authenticator{MasterSecret: []byte(secret)}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated Key for %s:\n%s\n", args[0], a.GenerateHMACKey(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a .env file")
	return cmd
}
