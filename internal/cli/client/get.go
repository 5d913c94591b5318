package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Article represents an article from the API.
type Article struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// GetCmd creates the get command.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <article_id>",
		Short:   "Get an article by ID",
		Long:    "Retrieves an article by its ID and displays the full content.",
		Aliases: []string{"view"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runGet(args[0], outputJSON)
		},
	}

	return cmd
}

func runGet(articleID string, outputJSON bool) error {
	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	resp, err := api.Get(fmt.Sprintf("/articles/%s", articleID))
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}

	var article Article
	if err := json.Unmarshal(resp.Data, &article); err != nil {
		return fmt.Errorf("failed to parse article: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(article, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Title: %s\n", article.Title)
		fmt.Printf("Created: %s\n", article.CreatedAt)
		fmt.Printf("ID: %d\n", article.ID)
		fmt.Println()
		fmt.Println("--- Content ---")
		fmt.Println(article.Content)
	}

	return nil
}
