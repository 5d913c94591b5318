package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/articles/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":1,"title":"T"}}`))
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig(server.URL, "", "")
	require.NoError(t, err)

	resp, err := api.Get("/articles/1")
	require.NoError(t, err)
	assert.Contains(t, string(resp.Data), `"title":"T"`)
}

func TestAPIClient_BasicAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "s3cret", pass)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig(server.URL, "admin", "s3cret")
	require.NoError(t, err)

	_, err = api.Post("/articles", map[string]string{"title": "t", "content": "c"})
	require.NoError(t, err)
}

func TestAPIClient_NoAuthHeaderWithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig(server.URL, "", "")
	require.NoError(t, err)

	_, err = api.Get("/articles")
	require.NoError(t, err)
}

func TestAPIClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"article not found"}`))
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig(server.URL, "", "")
	require.NoError(t, err)

	_, err = api.Get("/articles/99")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "article not found", apiErr.Message)
}

func TestAPIClient_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	api, err := NewAPIClientWithConfig(server.URL, "admin", "s3cret")
	require.NoError(t, err)

	resp, err := api.Delete("/articles/1")
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}
