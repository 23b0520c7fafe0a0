// File: internal/verifier/verifier.go

// Package verifier launches a packaged artifact as a supervised subprocess,
// captures its output and classifies any runtime failure. The verification
// state machine is NOT_STARTED -> RUNNING -> {SUCCESS, FAILURE, TIMEOUT,
// ERROR}; all four right-hand states are terminal.
package verifier

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is the closed verification state enum.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusRunning    Status = "RUNNING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailure    Status = "FAILURE"
	StatusTimeout    Status = "TIMEOUT"
	StatusError      Status = "ERROR"
)

// DefaultTimeout bounds a verification run when the caller supplies none.
const DefaultTimeout = 30 * time.Second

// killGrace bounds the wait for drain tasks after a forced termination.
const killGrace = 5 * time.Second

// Options control a single verification run.
type Options struct {
	// Timeout is the deadline for process exit. Zero selects DefaultTimeout.
	Timeout time.Duration
	// Args are passed to the artifact after the launcher arguments.
	Args []string
	// JavaBin overrides the JVM binary used for .jar artifacts.
	JavaBin string
	// WorkDir sets the child's working directory.
	WorkDir string
}

// Metrics captures the observable facts of the run.
type Metrics struct {
	Duration time.Duration `json:"duration"`
	ExitCode int           `json:"exit_code"`
	TimedOut bool          `json:"timed_out"`
}

// ErrorAnalysis classifies a failed run against the known signature list.
type ErrorAnalysis struct {
	Category        ErrorCategory `json:"category"`
	Message         string        `json:"message"`
	MatchedPatterns []string      `json:"matched_patterns,omitempty"`
	SuggestedFixes  []string      `json:"suggested_fixes,omitempty"`
	Confidence      float64       `json:"confidence"`
}

// VerificationResult is the immutable outcome of one run.
type VerificationResult struct {
	Status          Status         `json:"status"`
	StdoutLines     []string       `json:"stdout_lines"`
	StderrLines     []string       `json:"stderr_lines"`
	Metrics         Metrics        `json:"metrics"`
	ErrorAnalysis   *ErrorAnalysis `json:"error_analysis,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// Verifier runs packaged artifacts under supervision.
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a runtime verifier.
func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{logger: logger.Named("verifier")}
}

// VerifyRuntime launches artifactPath as a child process under a deadline.
// Launch failures are expected operational outcomes for a tool whose job is
// observing external processes, so they surface as ERROR results, not errors.
func (v *Verifier) VerifyRuntime(ctx context.Context, artifactPath string, opts Options) VerificationResult {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if _, err := os.Stat(artifactPath); err != nil {
		return errorResult(fmt.Sprintf("artifact not found: %s", artifactPath))
	}

	cmd := buildCommand(artifactPath, opts)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errorResult(fmt.Sprintf("failed to open stdout pipe: %v", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errorResult(fmt.Sprintf("failed to open stderr pipe: %v", err))
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return errorResult(fmt.Sprintf("failed to launch process: %v", err))
	}
	v.logger.Info("Verification process started",
		zap.String("artifact", artifactPath),
		zap.Int("pid", cmd.Process.Pid),
		zap.Duration("timeout", opts.Timeout))

	// Both pipes must be drained concurrently with the wait; an unread pipe
	// can block the child indefinitely once its buffer fills.
	var stdoutLines, stderrLines []string
	var g errgroup.Group
	g.Go(func() error {
		stdoutLines = drainLines(stdout)
		return nil
	})
	g.Go(func() error {
		stderrLines = drainLines(stderr)
		return nil
	})

	// cmd.Wait closes the pipes, so it may only run after the drains finish.
	done := make(chan error, 1)
	go func() {
		_ = g.Wait()
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(opts.Timeout)
	defer timer.Stop()

	var waitErr error
	timedOut := false
	select {
	case waitErr = <-done:
	case <-timer.C:
		timedOut = true
		v.logger.Warn("Verification timed out, terminating process", zap.Int("pid", cmd.Process.Pid))
		_ = cmd.Process.Kill()
		select {
		case waitErr = <-done:
		case <-time.After(killGrace):
			// The drain goroutines may still be appending to the line
			// slices, so the result must not carry them.
			v.logger.Error("Process did not exit after kill within grace period")
			return VerificationResult{
				Status:  StatusTimeout,
				Metrics: Metrics{Duration: time.Since(start), ExitCode: -1, TimedOut: true},
				Recommendations: []string{
					"the process ignored termination; inspect it for stuck non-interruptible I/O",
				},
			}
		}
	case <-ctx.Done():
		// Caller cancellation is handled like a timeout, minus the verdict.
		_ = cmd.Process.Kill()
		<-done
		return errorResult(fmt.Sprintf("verification canceled: %v", ctx.Err()))
	}

	duration := time.Since(start)
	result := VerificationResult{
		StdoutLines: stdoutLines,
		StderrLines: stderrLines,
		Metrics: Metrics{
			Duration: duration,
			ExitCode: exitCode(cmd, waitErr),
			TimedOut: timedOut,
		},
	}

	switch {
	case timedOut:
		result.Status = StatusTimeout
		result.Recommendations = []string{
			fmt.Sprintf("process exceeded the %s deadline; raise the timeout if startup is legitimately slow", opts.Timeout),
		}
	case waitErr == nil:
		result.Status = StatusSuccess
	default:
		result.Status = StatusFailure
		analysisResult := classifyOutput(append(append([]string{}, stderrLines...), stdoutLines...))
		result.ErrorAnalysis = &analysisResult
		result.Recommendations = analysisResult.SuggestedFixes
	}

	v.logger.Info("Verification finished",
		zap.String("status", string(result.Status)),
		zap.Int("exit_code", result.Metrics.ExitCode),
		zap.Duration("duration", duration))
	return result
}

// buildCommand selects the launcher: .jar artifacts run under the JVM,
// anything else is executed directly.
func buildCommand(artifactPath string, opts Options) *exec.Cmd {
	var cmd *exec.Cmd
	if strings.HasSuffix(artifactPath, ".jar") {
		javaBin := opts.JavaBin
		if javaBin == "" {
			javaBin = "java"
		}
		args := append([]string{"-jar", artifactPath}, opts.Args...)
		cmd = exec.Command(javaBin, args...)
	} else {
		cmd = exec.Command(artifactPath, opts.Args...)
	}
	cmd.Dir = opts.WorkDir
	cmd.Env = os.Environ()
	return cmd
}

// drainLines reads a pipe to EOF, one buffered line at a time.
func drainLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// exitCode extracts the child's exit code from the Wait error.
func exitCode(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		if ee, ok := waitErr.(*exec.ExitError); ok {
			return ee.ExitCode()
		}
		return -1
	}
	return 0
}

// errorResult builds a terminal ERROR result for launch-side failures.
func errorResult(message string) VerificationResult {
	return VerificationResult{
		Status: StatusError,
		ErrorAnalysis: &ErrorAnalysis{
			Category:   CategoryUnknown,
			Message:    message,
			Confidence: 1.0,
		},
	}
}
