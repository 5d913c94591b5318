package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// RelatedAPIResponse represents the related-articles API response.
type RelatedAPIResponse struct {
	Items []Article `json:"items"`
}

// RelatedCmd creates the related command.
func RelatedCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "related <article_id>",
		Short: "Find articles related to one by embedding distance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRelated(args[0], limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of results")

	return cmd
}

func runRelated(articleID string, limit int, outputJSON bool) error {
	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	resp, err := api.Get(fmt.Sprintf("/articles/%s/related?limit=%d", articleID, limit))
	if err != nil {
		return fmt.Errorf("failed to get related articles: %w", err)
	}

	var related RelatedAPIResponse
	if err := json.Unmarshal(resp.Data, &related); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(related, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(related.Items) == 0 {
		fmt.Println("No related articles found (the article may not be embedded yet).")
		return nil
	}

	for i, item := range related.Items {
		fmt.Printf("%d. %s (id %d)\n", i+1, item.Title, item.ID)
	}

	return nil
}
