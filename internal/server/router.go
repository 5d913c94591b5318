package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adityalohuni/AutoBlog/internal/api"
	"github.com/adityalohuni/AutoBlog/internal/api/handlers"
	"github.com/adityalohuni/AutoBlog/internal/api/middleware"
)

type RouterConfig struct {
	CredentialValidator middleware.CredentialValidator
	ArticleHandler      *handlers.ArticleHandler
	PromptHandler       *handlers.PromptHandler
	AuthHandler         *handlers.AuthHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", cfg.ArticleHandler.List)
		r.Get("/{id}", cfg.ArticleHandler.Get)
		r.Get("/{id}/related", cfg.ArticleHandler.Related)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth(cfg.CredentialValidator))

			r.Post("/", cfg.ArticleHandler.Create)
			r.Put("/{id}", cfg.ArticleHandler.Update)
			r.Delete("/{id}", cfg.ArticleHandler.Delete)
		})
	})

	r.Get("/prompts", cfg.PromptHandler.List)
	r.Get("/prompts/{category}", cfg.PromptHandler.Get)

	r.Post("/auth/login", cfg.AuthHandler.Login)

	return r
}
