package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adityalohuni/AutoBlog/internal/audio"
	"github.com/adityalohuni/AutoBlog/internal/engine"
	"github.com/adityalohuni/AutoBlog/internal/openai"
)

// SpeakCmd creates the speak command.
func SpeakCmd() *cobra.Command {
	var (
		voice     string
		outDir    string
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "speak <article_id>",
		Short: "Synthesize an article to speech",
		Long: `Fetches an article from the daemon, cleans its text for speech,
and synthesizes it chunk by chunk into WAV files in the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpeak(args[0], voice, outDir, chunkSize)
		},
	}

	cmd.Flags().StringVar(&voice, "voice", "", "Synthesis voice (model default when empty)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "audio", "Output directory for WAV segments")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 220, "Synthesis chunk size in characters")

	return cmd
}

func runSpeak(articleID, voice, outDir string, chunkSize int) error {
	_ = godotenv.Load()
	ctx := context.Background()

	api, err := NewAPIClient()
	if err != nil {
		return err
	}

	resp, err := api.Get(fmt.Sprintf("/articles/%s", articleID))
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}

	var art Article
	if err := json.Unmarshal(resp.Data, &art); err != nil {
		return fmt.Errorf("failed to parse article: %w", err)
	}

	backend, err := openai.NewClientFromEnv()
	if err != nil {
		return err
	}
	mux := engine.NewMux(backend)
	defer mux.Close()

	sink, err := audio.NewFileSink(outDir)
	if err != nil {
		return err
	}

	pipeline := audio.NewPipeline(mux, chunkSize)
	coord := audio.NewCoordinator(pipeline, sink)
	if voice != "" {
		coord.SetVoice(voice)
	}

	fmt.Printf("Synthesizing %q into %s/\n", art.Title, outDir)
	coord.Play(ctx, art.Title+"\n\n"+art.Content)

	<-coord.Done()

	if err := coord.Err(); err != nil {
		return err
	}

	fmt.Printf("Wrote %d segments\n", coord.QueueLen())
	return nil
}
