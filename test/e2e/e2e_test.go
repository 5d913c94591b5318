//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_Auth tests the login endpoint and route protection
func TestE2E_Auth(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("login with valid credentials", func(t *testing.T) {
		resp, err := env.Post("/auth/login", map[string]string{
			"username": adminUsername,
			"password": adminPassword,
		}, false)
		require.NoError(t, err)

		var login struct {
			Username string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &login))
		assert.Equal(t, adminUsername, login.Username)
	})

	t.Run("login with wrong password returns 401", func(t *testing.T) {
		_, err := env.Post("/auth/login", map[string]string{
			"username": adminUsername,
			"password": "wrong",
		}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("mutating route without credentials returns 401", func(t *testing.T) {
		_, err := env.Post("/articles", map[string]string{
			"title":   "Unauthorized",
			"content": "Should not be created",
		}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("read routes need no credentials", func(t *testing.T) {
		resp, err := env.Get("/articles", false)
		require.NoError(t, err)

		var list struct {
			Items []interface{} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		assert.Empty(t, list.Items)
	})
}

// TestE2E_ArticleLifecycle tests article CRUD operations
func TestE2E_ArticleLifecycle(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	var articleID int64

	t.Run("create article", func(t *testing.T) {
		resp, err := env.Post("/articles", map[string]string{
			"title":   "E2E Test Article",
			"content": "# Heading\n\nBody text for the E2E test article.",
		}, true)
		require.NoError(t, err)

		var article struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			Content   string `json:"content"`
			CreatedAt string `json:"created_at"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &article))
		assert.NotZero(t, article.ID)
		assert.Equal(t, "E2E Test Article", article.Title)
		assert.NotEmpty(t, article.CreatedAt)

		articleID = article.ID
	})

	t.Run("get article by ID", func(t *testing.T) {
		resp, err := env.Get(fmt.Sprintf("/articles/%d", articleID), false)
		require.NoError(t, err)

		var article struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &article))
		assert.Equal(t, articleID, article.ID)
		assert.Equal(t, "E2E Test Article", article.Title)
	})

	t.Run("update article", func(t *testing.T) {
		resp, err := env.Put(fmt.Sprintf("/articles/%d", articleID), map[string]string{
			"title":   "E2E Test Article v2",
			"content": "Updated body.",
		}, true)
		require.NoError(t, err)

		var article struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &article))
		assert.Equal(t, articleID, article.ID)
		assert.Equal(t, "E2E Test Article v2", article.Title)
	})

	t.Run("update enqueues an embedding job", func(t *testing.T) {
		var count int
		row := env.Pool.QueryRow(env.Ctx,
			"SELECT COUNT(*) FROM embedding_jobs WHERE article_id = $1", articleID)
		require.NoError(t, row.Scan(&count))
		assert.GreaterOrEqual(t, count, 1)
	})

	t.Run("list articles returns created item", func(t *testing.T) {
		resp, err := env.Get("/articles", false)
		require.NoError(t, err)

		var list struct {
			Items []struct {
				ID    int64  `json:"id"`
				Title string `json:"title"`
			} `json:"items"`
			HasMore bool `json:"has_more"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list.Items, 1)
		assert.Equal(t, articleID, list.Items[0].ID)
		assert.False(t, list.HasMore)
	})

	t.Run("delete article", func(t *testing.T) {
		_, err := env.Delete(fmt.Sprintf("/articles/%d", articleID), true)
		require.NoError(t, err)

		_, err = env.Get(fmt.Sprintf("/articles/%d", articleID), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

// TestE2E_Pagination tests cursor-based listing
func TestE2E_Pagination(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	for i := 0; i < 5; i++ {
		_, err := env.Post("/articles", map[string]string{
			"title":   fmt.Sprintf("Paged Article %d", i),
			"content": "Content",
		}, true)
		require.NoError(t, err)
	}

	type page struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		Cursor  string `json:"cursor"`
		HasMore bool   `json:"has_more"`
	}

	resp, err := env.Get("/articles?limit=2", false)
	require.NoError(t, err)

	var page1 page
	require.NoError(t, json.Unmarshal(resp.Data, &page1))
	assert.Len(t, page1.Items, 2)
	assert.True(t, page1.HasMore)
	require.NotEmpty(t, page1.Cursor)

	resp, err = env.Get("/articles?limit=2&cursor="+page1.Cursor, false)
	require.NoError(t, err)

	var page2 page
	require.NoError(t, json.Unmarshal(resp.Data, &page2))
	assert.Len(t, page2.Items, 2)
	assert.True(t, page2.HasMore)

	seen := map[int64]bool{}
	for _, item := range page1.Items {
		seen[item.ID] = true
	}
	for _, item := range page2.Items {
		assert.False(t, seen[item.ID], "pages should not overlap")
	}

	resp, err = env.Get("/articles?limit=2&cursor="+page2.Cursor, false)
	require.NoError(t, err)

	var page3 page
	require.NoError(t, json.Unmarshal(resp.Data, &page3))
	assert.Len(t, page3.Items, 1)
	assert.False(t, page3.HasMore)
}

// TestE2E_Prompts tests the prompt template endpoints
func TestE2E_Prompts(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("list prompt templates", func(t *testing.T) {
		resp, err := env.Get("/prompts", false)
		require.NoError(t, err)

		var templates map[string]struct {
			UserTemplate string `json:"user_template"`
			System       string `json:"system"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &templates))
		assert.Contains(t, templates, "blog_generation")
	})

	t.Run("get template by category", func(t *testing.T) {
		resp, err := env.Get("/prompts/blog_generation", false)
		require.NoError(t, err)

		var tpl struct {
			UserTemplate string `json:"user_template"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &tpl))
		assert.Contains(t, tpl.UserTemplate, "{topic}")
	})

	t.Run("unknown category returns 404", func(t *testing.T) {
		_, err := env.Get("/prompts/nonexistent", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

// TestE2E_CLIWorkflow tests the CLI commands end-to-end
func TestE2E_CLIWorkflow(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()
	env.BuildBinaries()

	workDir, err := os.MkdirTemp("", "autoblog-cli-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(workDir)

	// Seed an article through the API
	resp, err := env.Post("/articles", map[string]string{
		"title":   "CLI Test Article",
		"content": "Content created for CLI testing.",
	}, true)
	require.NoError(t, err)

	var article struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &article))
	idArg := strconv.FormatInt(article.ID, 10)

	t.Run("autoblog login verifies credentials", func(t *testing.T) {
		output, err := env.RunAutoblog(workDir, "login")
		require.NoError(t, err, "login failed: %s", output)
	})

	t.Run("autoblog list shows the article", func(t *testing.T) {
		output, err := env.RunAutoblog(workDir, "list")
		require.NoError(t, err, "list failed: %s", output)
		assert.Contains(t, output, "CLI Test Article")
	})

	t.Run("autoblog get retrieves the article", func(t *testing.T) {
		output, err := env.RunAutoblog(workDir, "get", idArg, "--output")
		require.NoError(t, err, "get failed: %s", output)
		assert.Contains(t, output, "CLI Test Article")
		assert.Contains(t, output, idArg)
	})

	t.Run("autoblog delete removes the article", func(t *testing.T) {
		output, err := env.RunAutoblog(workDir, "delete", idArg)
		require.NoError(t, err, "delete failed: %s", output)

		_, err = env.Get("/articles/"+idArg, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}
