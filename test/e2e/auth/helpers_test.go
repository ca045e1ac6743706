package auth_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dabotcentral/central/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for central service end-to-end tests.
 * Login codes are read back from the container log, where the log mail
 * provider writes every message it would have sent.
 */

const (
	testImageName = "dabotcentral-test:latest"

	adminEmail = "admin@example.com"
	userEmail  = "user@example.com"
)

var codePattern = regexp.MustCompile(`login code is (\d{6})`)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building DabotCentral Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up DabotCentral Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// centralContainer is a running service plus the handle needed to read its log.
type centralContainer struct {
	BaseURL   string
	container testcontainers.Container
}

// setupCentralContainer starts the service in a container. extraEnv overrides
// the defaults.
func setupCentralContainer(t *testing.T, extraEnv map[string]string) *centralContainer {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"DATABASE_PATH": "/data/central.db",
		"MAIL_PROVIDER": "log",
		"ADMIN_EMAILS":  adminEmail,
		"ENV":           "test",
		"LOG_LEVEL":     "info",
		"LOG_FORMAT":    "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &centralContainer{
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
		container: container,
	}
}

// latestCode returns the newest login code logged for email.
func (c *centralContainer) latestCode(t *testing.T, email string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		rc, err := c.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return false
		}

		needle := fmt.Sprintf(`"to":"%s"`, strings.TrimSpace(email))
		for _, line := range strings.Split(string(raw), "\n") {
			if !strings.Contains(line, needle) {
				continue
			}
			if m := codePattern.FindStringSubmatch(line); m != nil {
				code = m[1]
			}
		}
		return code != ""
	}, 10*time.Second, 200*time.Millisecond, "no login code logged for %s", email)

	return code
}

// login runs the full email code flow and returns an authenticated session.
func (c *centralContainer) login(t *testing.T, client *authsdk.SDKClient, email string) *authsdk.Session {
	t.Helper()

	require.NoError(t, client.SendOTP(t.Context(), email))
	code := c.latestCode(t, email)

	session, resp, err := client.LoginWithOTP(t.Context(), email, code)
	require.NoError(t, err, "login should succeed")
	require.True(t, resp.Success)
	require.Len(t, resp.Token, 64)

	return session
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
