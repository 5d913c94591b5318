//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityalohuni/AutoBlog/internal/api/handlers"
	"github.com/adityalohuni/AutoBlog/internal/api/middleware"
	"github.com/adityalohuni/AutoBlog/internal/prompts"
	"github.com/adityalohuni/AutoBlog/internal/repository"
	"github.com/adityalohuni/AutoBlog/internal/server"
	"github.com/adityalohuni/AutoBlog/internal/service"
	"github.com/adityalohuni/AutoBlog/internal/testutil"
)

const (
	adminUsername = "admin"
	adminPassword = "e2e-s3cret"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	BinaryDir    string
	HTTPClient   *http.Client
}

// SetupE2EEnv creates a full E2E test environment with a database container
// and an in-process server
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)

	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// BuildBinaries builds the autoblog and autoblogd binaries
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "autoblog-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "autoblogd"), "./cmd/autoblogd")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build autoblogd: %v\n%s", err, out)
	}

	cmd = exec.Command("go", "build", "-o", filepath.Join(tmpDir, "autoblog"), "./cmd/autoblog")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build autoblog: %v\n%s", err, out)
	}
}

// RunAutoblog runs the autoblog CLI command against the test server
func (e *E2ETestEnv) RunAutoblog(workDir string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "autoblog"), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("AUTOBLOG_API_URL=%s", e.ServerURL),
		fmt.Sprintf("AUTOBLOG_ADMIN_USERNAME=%s", adminUsername),
		fmt.Sprintf("AUTOBLOG_ADMIN_PASSWORD=%s", adminPassword),
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request. Set auth to send admin credentials.
func (e *E2ETestEnv) Get(path string, auth bool) (*APIResponse, error) {
	return e.doRequest("GET", path, nil, auth)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}, auth bool) (*APIResponse, error) {
	return e.doRequest("POST", path, body, auth)
}

// Put performs a PUT request
func (e *E2ETestEnv) Put(path string, body interface{}, auth bool) (*APIResponse, error) {
	return e.doRequest("PUT", path, body, auth)
}

// Delete performs a DELETE request
func (e *E2ETestEnv) Delete(path string, auth bool) (*APIResponse, error) {
	return e.doRequest("DELETE", path, nil, auth)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, auth bool) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if auth {
		req.SetBasicAuth(adminUsername, adminPassword)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return &APIResponse{}, nil
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

// startServer starts the HTTP server with all handlers
func startServer(t *testing.T, pool *pgxpool.Pool, port int) (string, func()) {
	articleRepo := repository.NewArticleRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	articleSvc := service.NewArticleService(articleRepo, txRunner)
	promptStore := prompts.NewStore("../../prompts/templates.toml")
	creds := middleware.AdminCredentials{
		Username: adminUsername,
		Password: adminPassword,
	}

	cfg := server.RouterConfig{
		CredentialValidator: creds,
		ArticleHandler:      handlers.NewArticleHandler(articleSvc),
		PromptHandler:       handlers.NewPromptHandler(promptStore),
		AuthHandler:         handlers.NewAuthHandler(creds),
	}

	router := server.NewRouter(cfg)
	addr := fmt.Sprintf(":%d", port)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
