// Package article implements the article generation orchestrator: it
// assembles a prompt from a template and retrieved background context,
// invokes text generation, and resolves the final title.
package article

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/engine"
)

// Stage identifies a generation progress stage. Stage names are part of the
// external contract.
type Stage string

const (
	StageInit              Stage = "INIT"
	StageProcessingContext Stage = "PROCESSING_CONTEXT"
	StageGenerating        Stage = "GENERATING"
)

// ProgressFunc observes generation progress. It never affects control flow.
// The payload carries the working topic for INIT and the top-ranked passages
// for PROCESSING_CONTEXT.
type ProgressFunc func(stage Stage, payload []string)

const (
	// topPassageCount bounds how much ranked context is injected into the
	// prompt, rich enough without overflowing it.
	topPassageCount = 5
	// maxGenerationTokens is the fixed token budget for one article.
	maxGenerationTokens = 2000
	// maxTitleLineLength is the cutoff for treating a generated first line
	// as the article title.
	maxTitleLineLength = 100
	// fallbackTitle is used when no usable title can be derived.
	fallbackTitle = "Untitled Article"

	researchHeading = "Relevant Research:"
)

// ContextRetriever supplies raw background passages for a query.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) []string
}

// PassageReranker orders passages by relevance to a query.
type PassageReranker interface {
	Rerank(ctx context.Context, query string, passages []string) []string
}

// TemplateProvider supplies prompt templates by category.
type TemplateProvider interface {
	Template(category string) (*domain.PromptTemplate, error)
}

// TopicSource supplies a topic when the caller gives no title.
type TopicSource interface {
	RandomTopic(ctx context.Context) string
}

// Generator orchestrates article generation. It is stateless per call.
type Generator struct {
	textGen   engine.TextGenerator
	retriever ContextRetriever
	reranker  PassageReranker
	templates TemplateProvider
	topics    TopicSource
}

// NewGenerator creates a Generator. retriever, reranker, templates, and
// topics may each be nil, in which case the corresponding step degrades (no
// background research, default prompt, empty-title fallback skipped).
func NewGenerator(
	textGen engine.TextGenerator,
	retriever ContextRetriever,
	reranker PassageReranker,
	templates TemplateProvider,
	topics TopicSource,
) *Generator {
	return &Generator{
		textGen:   textGen,
		retriever: retriever,
		reranker:  reranker,
		templates: templates,
		topics:    topics,
	}
}

// Generate produces an article for the request. Retrieval and template
// failures degrade gracefully; only text generation itself is fatal, surfaced
// as a GENERATION_ERROR domain error.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest, onProgress ProgressFunc) (*domain.GeneratedArticle, error) {
	report := func(stage Stage, payload []string) {
		if onProgress != nil {
			onProgress(stage, payload)
		}
	}

	workingTitle := strings.TrimSpace(req.Title)
	if workingTitle == "" && g.topics != nil {
		workingTitle = g.topics.RandomTopic(ctx)
	}
	report(StageInit, []string{workingTitle})

	query := buildQuery(workingTitle, req.Context)

	background, topPassages := g.retrieveBackground(ctx, query)
	report(StageProcessingContext, topPassages)

	prompt, systemPrompt := g.buildPrompt(query, background)
	report(StageGenerating, nil)

	content, err := g.textGen.GenerateText(ctx, engine.TextRequest{
		Prompt:       prompt,
		Model:        req.Model,
		MaxTokens:    maxGenerationTokens,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeGeneration,
			fmt.Sprintf("failed to generate article with model %q", req.Model), err)
	}

	title, body := resolveTitle(req.Title, content)
	return &domain.GeneratedArticle{Title: title, Content: body}, nil
}

// retrieveBackground runs retrieval and re-ranking, returning the joined
// background block and the top passages. Any failure here leaves the
// background empty; generation proceeds without research.
func (g *Generator) retrieveBackground(ctx context.Context, query string) (string, []string) {
	if g.retriever == nil {
		return "", nil
	}

	passages := g.retriever.Retrieve(ctx, query)
	if len(passages) == 0 {
		return "", nil
	}

	ranked := passages
	if g.reranker != nil {
		ranked = g.reranker.Rerank(ctx, query, passages)
	}
	if len(ranked) > topPassageCount {
		ranked = ranked[:topPassageCount]
	}

	return strings.Join(ranked, "\n\n"), ranked
}

// buildPrompt assembles the generation prompt from the blog template,
// substituting the query and appending the background block. A missing
// template falls back to a fixed default prompt.
func (g *Generator) buildPrompt(query, background string) (prompt, systemPrompt string) {
	var tpl *domain.PromptTemplate
	if g.templates != nil {
		var err error
		tpl, err = g.templates.Template(domain.CategoryBlogGeneration)
		if err != nil {
			log.Printf("prompt template lookup failed, using default prompt: %v", err)
			tpl = nil
		}
	}

	if tpl != nil && tpl.UserTemplate != "" {
		prompt = strings.ReplaceAll(tpl.UserTemplate, "{topic}", query)
		if background != "" {
			prompt += "\n\n" + researchHeading + "\n" + background
		}
		return prompt, tpl.System
	}

	prompt = fmt.Sprintf("Write a blog post about %s.", query)
	if background != "" {
		prompt += "\n\nUse the following research to write the article:\n" + background
	}
	prompt += "\n\nInclude a catchy title and clear headings."
	return prompt, ""
}

func buildQuery(title, context string) string {
	title = strings.TrimSpace(title)
	context = strings.TrimSpace(context)
	switch {
	case title != "" && context != "":
		return title + "\n" + context
	case title != "":
		return title
	default:
		return context
	}
}

// resolveTitle decides the final title/content split. A caller-supplied title
// wins verbatim. Otherwise a short generated first line (heading marker
// stripped) becomes the title; failing that, a placeholder title is used and
// the whole text is content.
func resolveTitle(requested, generated string) (title, content string) {
	if strings.TrimSpace(requested) != "" {
		return requested, generated
	}

	lines := strings.SplitN(generated, "\n", 2)
	first := strings.TrimSpace(lines[0])
	if first != "" && len(first) < maxTitleLineLength {
		title = strings.TrimSpace(strings.TrimLeft(first, "# "))
		if title != "" {
			rest := ""
			if len(lines) > 1 {
				rest = strings.TrimSpace(lines[1])
			}
			return title, rest
		}
	}

	return fallbackTitle, generated
}
