// Package prompts loads prompt templates from a TOML file keyed by category.
package prompts

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/adityalohuni/AutoBlog/internal/domain"
)

// Store reads templates from disk once and caches them.
type Store struct {
	path string

	mu        sync.Mutex
	templates map[string]domain.PromptTemplate
}

// NewStore creates a Store reading from the given TOML file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (map[string]domain.PromptTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.templates != nil {
		return s.templates, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt templates: %w", err)
	}

	var templates map[string]domain.PromptTemplate
	if err := toml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	s.templates = templates
	return templates, nil
}

// Templates returns all templates keyed by category.
func (s *Store) Templates() (map[string]domain.PromptTemplate, error) {
	return s.load()
}

// Template returns the template for a category, or
// domain.ErrPromptTemplateNotFound when the category is unknown.
func (s *Store) Template(category string) (*domain.PromptTemplate, error) {
	templates, err := s.load()
	if err != nil {
		return nil, err
	}

	tpl, ok := templates[category]
	if !ok {
		return nil, domain.ErrPromptTemplateNotFound
	}
	return &tpl, nil
}
