package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adityalohuni/AutoBlog/internal/cli"
	"github.com/adityalohuni/AutoBlog/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autoblogd",
		Short: "AutoBlog daemon",
		Long:  "AutoBlog daemon serving the article API and running the embedding worker",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
