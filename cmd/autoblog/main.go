package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adityalohuni/AutoBlog/internal/cli"
	"github.com/adityalohuni/AutoBlog/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "autoblog",
		Short: "AutoBlog CLI - AI-generated blog articles",
		Long: `AutoBlog CLI generates blog articles with background research,
manages them on the daemon, and synthesizes them to speech.

Environment variables:
  AUTOBLOG_API_URL           API base URL (default: http://localhost:8080)
  AUTOBLOG_ADMIN_USERNAME    Admin username for mutating commands
  AUTOBLOG_ADMIN_PASSWORD    Admin password for mutating commands
  OPENAI_API_KEY             OpenAI key for generate and speak`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	rootCmd.PersistentFlags().String("username", "", "Admin username (overrides env and config)")
	rootCmd.PersistentFlags().String("password", "", "Admin password (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.LoginCmd())
	rootCmd.AddCommand(client.GenerateCmd())
	rootCmd.AddCommand(client.SpeakCmd())
	rootCmd.AddCommand(client.ListCmd())
	rootCmd.AddCommand(client.GetCmd())
	rootCmd.AddCommand(client.RelatedCmd())
	rootCmd.AddCommand(client.DeleteCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
