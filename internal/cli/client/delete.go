package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteCmd creates the delete command.
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <article_id>",
		Short: "Delete an article",
		Long:  "Deletes an article by its ID. Requires admin credentials.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0])
		},
	}

	return cmd
}

func runDelete(cmd *cobra.Command, articleID string) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	if _, err := api.Delete(fmt.Sprintf("/articles/%s", articleID)); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	fmt.Printf("Deleted article %s\n", articleID)
	return nil
}
