// File: internal/verifier/verifier_test.go
package verifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// The verifier spawns goroutines per run; none may outlive the call.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeScript drops an executable shell script acting as a fake artifact.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestVerifyRuntime_Success(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	artifact := writeScript(t, "echo started\necho ready\nexit 0\n")
	result := v.VerifyRuntime(context.Background(), artifact, Options{Timeout: 10 * time.Second})

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 0, result.Metrics.ExitCode)
	assert.False(t, result.Metrics.TimedOut)
	assert.Equal(t, []string{"started", "ready"}, result.StdoutLines)
	assert.Nil(t, result.ErrorAnalysis)
}

func TestVerifyRuntime_FailureWithJavaxSignature(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	artifact := writeScript(t,
		`echo "Exception in thread \"main\" java.lang.ClassNotFoundException: javax.servlet.http.HttpServlet" 1>&2
exit 1
`)
	result := v.VerifyRuntime(context.Background(), artifact, Options{Timeout: 10 * time.Second})

	assert.Equal(t, StatusFailure, result.Status)
	assert.Equal(t, 1, result.Metrics.ExitCode)
	require.NotNil(t, result.ErrorAnalysis)
	assert.Equal(t, CategoryMissingJavaxClass, result.ErrorAnalysis.Category)
	assert.InDelta(t, 0.95, result.ErrorAnalysis.Confidence, 1e-9)
	assert.NotEmpty(t, result.Recommendations)
}

func TestVerifyRuntime_FailureWithoutSignature(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	artifact := writeScript(t, "echo \"something else went wrong\" 1>&2\nexit 3\n")
	result := v.VerifyRuntime(context.Background(), artifact, Options{Timeout: 10 * time.Second})

	assert.Equal(t, StatusFailure, result.Status)
	assert.Equal(t, 3, result.Metrics.ExitCode)
	require.NotNil(t, result.ErrorAnalysis)
	assert.Equal(t, CategoryUnknown, result.ErrorAnalysis.Category)
	assert.InDelta(t, 0.2, result.ErrorAnalysis.Confidence, 1e-9)
}

func TestVerifyRuntime_Timeout(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	timeout := 300 * time.Millisecond
	artifact := writeScript(t, "echo booting\nsleep 30\n")

	start := time.Now()
	result := v.VerifyRuntime(context.Background(), artifact, Options{Timeout: timeout})
	elapsed := time.Since(start)

	assert.Equal(t, StatusTimeout, result.Status)
	assert.True(t, result.Metrics.TimedOut)
	// The verdict must arrive promptly after the deadline, which also
	// confirms the child was terminated rather than awaited.
	assert.Less(t, elapsed, timeout+killGrace)
	assert.NotEmpty(t, result.Recommendations)
	// Output captured before the kill is only attached once the drain
	// goroutines have finished, so it must be complete.
	assert.Equal(t, []string{"booting"}, result.StdoutLines)
}

func TestVerifyRuntime_MissingArtifact(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	result := v.VerifyRuntime(context.Background(), filepath.Join(t.TempDir(), "missing.jar"), Options{})

	assert.Equal(t, StatusError, result.Status)
	require.NotNil(t, result.ErrorAnalysis)
	assert.Contains(t, result.ErrorAnalysis.Message, "artifact not found")
}

func TestVerifyRuntime_LaunchFailureIsErrorResult(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	// Exists but is not executable.
	path := filepath.Join(t.TempDir(), "artifact.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a program"), 0644))

	result := v.VerifyRuntime(context.Background(), path, Options{Timeout: 2 * time.Second})
	assert.Equal(t, StatusError, result.Status)
}

func TestVerifyRuntime_DefaultTimeoutApplied(t *testing.T) {
	t.Parallel()
	v := NewVerifier(zap.NewNop())

	artifact := writeScript(t, "exit 0\n")
	result := v.VerifyRuntime(context.Background(), artifact, Options{})
	assert.Equal(t, StatusSuccess, result.Status)
}

func TestBuildCommand_JarUsesJVM(t *testing.T) {
	t.Parallel()

	cmd := buildCommand("/tmp/app.jar", Options{JavaBin: "java17", Args: []string{"--server.port=0"}})
	assert.Equal(t, "java17", filepath.Base(cmd.Path))
	assert.Equal(t, []string{"java17", "-jar", "/tmp/app.jar", "--server.port=0"}, cmd.Args)

	direct := buildCommand("/tmp/app.sh", Options{})
	assert.Equal(t, []string{"/tmp/app.sh"}, direct.Args)
}
