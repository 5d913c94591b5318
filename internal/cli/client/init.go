package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitCmd creates the init command.
func InitCmd() *cobra.Command {
	var (
		apiURL   string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Save daemon connection settings",
		Long:  "Stores the API URL and admin credentials in the user config directory and verifies them against the daemon.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(apiURL, username, password)
		},
	}

	cmd.Flags().StringVar(&apiURL, "url", defaultAPIURL, "Daemon base URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Admin username")
	cmd.Flags().StringVarP(&password, "password", "w", "", "Admin password")

	return cmd
}

func runInit(apiURL, username, password string) error {
	if username != "" {
		api, err := NewAPIClientWithConfig(apiURL, username, password)
		if err != nil {
			return err
		}

		if _, err := api.Post("/auth/login", LoginRequest{Username: username, Password: password}); err != nil {
			return fmt.Errorf("credential check failed: %w", err)
		}
		fmt.Println("Credentials verified.")
	}

	config := &GlobalConfig{
		APIURL:   apiURL,
		Username: username,
		Password: password,
	}
	if err := SaveGlobalConfig(config); err != nil {
		return err
	}

	configPath, _ := GetConfigPath()
	fmt.Printf("Config saved to %s\n", configPath)
	return nil
}
