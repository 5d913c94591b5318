package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adityalohuni/AutoBlog/internal/article"
	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/engine"
	"github.com/adityalohuni/AutoBlog/internal/openai"
	"github.com/adityalohuni/AutoBlog/internal/prompts"
	"github.com/adityalohuni/AutoBlog/internal/rag"
)

// GenerateCmd creates the generate command.
func GenerateCmd() *cobra.Command {
	var (
		title      string
		background string
		model      string
		promptPath string
		perSource  int
		chunkSize  int
		noSave     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an article and save it to the daemon",
		Long: `Generates a blog article locally: retrieves background research,
re-ranks it against the topic, assembles a prompt, and calls the text model.
The result is POSTed to the daemon unless --no-save is given.

When no title is given, a random topic is picked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runGenerate(cmd, generateOptions{
				title:      title,
				background: background,
				model:      model,
				promptPath: promptPath,
				perSource:  perSource,
				chunkSize:  chunkSize,
				noSave:     noSave,
				outputJSON: outputJSON,
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Article title (random topic when empty)")
	cmd.Flags().StringVar(&background, "context", "", "Extra context for the generation prompt")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Text model to use")
	cmd.Flags().StringVar(&promptPath, "prompts", "prompts/templates.toml", "Path to the prompt template file")
	cmd.Flags().IntVar(&perSource, "per-source", 3, "Passages to request per research source")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 400, "Re-ranking chunk size in words")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Print the article without saving it")

	return cmd
}

type generateOptions struct {
	title      string
	background string
	model      string
	promptPath string
	perSource  int
	chunkSize  int
	noSave     bool
	outputJSON bool
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	_ = godotenv.Load()
	ctx := context.Background()

	backend, err := openai.NewClientFromEnv()
	if err != nil {
		return err
	}
	mux := engine.NewMux(backend)
	defer mux.Close()

	retriever := rag.NewRetrieverWithLimit(opts.perSource,
		rag.NewEuropePMCSource(),
		rag.NewWikipediaSource(),
	)
	reranker := rag.NewReranker(mux, opts.chunkSize)
	templates := prompts.NewStore(opts.promptPath)
	topics := rag.NewWikipediaTopicSource()

	gen := article.NewGenerator(mux, retriever, reranker, templates, topics)

	result, err := gen.Generate(ctx, domain.GenerationRequest{
		Title:   opts.title,
		Context: opts.background,
		Model:   opts.model,
	}, printProgress)
	if err != nil {
		return err
	}

	if opts.noSave {
		printGenerated(result, opts.outputJSON)
		return nil
	}

	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/articles", map[string]string{
		"title":   result.Title,
		"content": result.Content,
	})
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	var saved Article
	if err := json.Unmarshal(resp.Data, &saved); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if opts.outputJSON {
		output, _ := json.MarshalIndent(saved, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Saved article %d: %s\n", saved.ID, saved.Title)
	}

	return nil
}

func printProgress(stage article.Stage, payload []string) {
	switch stage {
	case article.StageInit:
		if len(payload) > 0 && payload[0] != "" {
			fmt.Printf("Topic: %s\n", payload[0])
		}
	case article.StageProcessingContext:
		fmt.Printf("Ranked %d research passages\n", len(payload))
	case article.StageGenerating:
		fmt.Println("Generating article...")
	}
}

func printGenerated(result *domain.GeneratedArticle, outputJSON bool) {
	if outputJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return
	}

	fmt.Printf("Title: %s\n\n", result.Title)
	fmt.Println(result.Content)
}
