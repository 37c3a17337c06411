package main

import (
	"fmt"

	"github.com/Mininormi/mininormi1210/services"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenAdminID string
	tokenEmail   string
	tokenRole    string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin bearer token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenAdminID == "" {
			tokenAdminID = uuid.NewString()
		}
		token, err := services.GetJWTService().GenerateAdminJWT(tokenAdminID, tokenEmail, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenAdminID, "admin-id", "", "admin id (random when empty)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "admin email (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", services.RoleAdmin, "admin | super_admin")
	_ = tokenCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(tokenCmd)
}
