package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LoginRequest is the /auth/login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginCmd creates the login command.
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify admin credentials against the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd)
		},
	}

	return cmd
}

func runLogin(cmd *cobra.Command) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	if api.username == "" {
		return fmt.Errorf("no credentials configured (run 'autoblog init' or set %s/%s)", envUsername, envPassword)
	}

	if _, err := api.Post("/auth/login", LoginRequest{Username: api.username, Password: api.password}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Logged in as %s\n", api.username)
	return nil
}
