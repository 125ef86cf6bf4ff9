package directory_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for directory service end-to-end
 * tests: container setup, clients and assertions.
 */

const (
	testImageName = "directory-test:latest"

	apiToken      = "test-api-token-12345"
	adminEmail    = "admin@localhost"
	adminPassword = "secret"
	userEmail     = "alice@example.com"
	userPassword  = "wonderland"
)

const seedAccounts = `[
	{"email": "admin@localhost", "password": "secret", "name": "Admin"},
	{"email": "alice@example.com", "password": "wonderland", "given_name": "Alice", "family_name": "Liddell", "locale": "en-AU"}
]`

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Directory Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Directory Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/directory/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupDirectoryContainer starts the service on the relational backend with
// the seed accounts loaded and returns the base URL.
func setupDirectoryContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	seedFile := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(seedFile, []byte(seedAccounts), 0o644))

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Files: []testcontainers.ContainerFile{{
			HostFilePath:      seedFile,
			ContainerFilePath: "/seed/users.json",
			FileMode:          0o644,
		}},
		Env: map[string]string{
			"DIRECTORY_BACKEND":   "relational",
			"SEED_FILE":           "/seed/users.json",
			"DIRECTORY_API_TOKEN": apiToken,
			"ENV":                 "test",
			"LOG_LEVEL":           "info",
			"LOG_FORMAT":          "json",
			// Tests make many rapid logins which would otherwise hit the strict limits
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// directoryClient returns an SDK client for the wire API.
func directoryClient(baseURL string, opts ...directorysdk.Option) *directorysdk.Client {
	return directorysdk.NewClient(baseURL+"/api/v1/directory", opts...)
}

// consoleClient returns an HTTP client that keeps the admin session cookie
// and does not follow redirects.
func consoleClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// consoleLogin signs in to the admin console and asserts the redirect.
func consoleLogin(t *testing.T, hc *http.Client, baseURL, email, password string) *http.Response {
	t.Helper()
	resp, err := hc.PostForm(baseURL+"/directory/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// consoleJSON performs an authenticated console request asking for JSON.
func consoleJSON(t *testing.T, hc *http.Client, method, target string, form url.Values) *http.Response {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(t.Context(), method, target, body)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := hc.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *directorysdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
