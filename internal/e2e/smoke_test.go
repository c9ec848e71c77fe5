package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runCT(t, binaryPath, home, "account", "add", "Primary")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Added account Primary")

	stdout, stderr, err = runCT(t, binaryPath, home, "account", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	accountID := strings.Fields(stdout)[0]
	require.NotEmpty(t, accountID)

	_, stderr, err = runCT(t, binaryPath, home,
		"timer", "start", "--account", accountID, "--target", "main:1", "--hours", "2")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runCT(t, binaryPath, home, "status", "--account", accountID)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Primary ("+accountID+")")
	assert.Contains(t, stdout, "1 / 8 active")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ct-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ct")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ct binary: %s", string(output))
	return binaryPath
}

func runCT(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
