package service

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// gitService is the implementation of the GitService interface.
type gitService struct {
	// abbrev is the hash abbreviation length passed to git describe
	abbrev int
	// timeout for command execution
	timeout time.Duration
}

// NewGitService creates a new GitService.
func NewGitService(abbrev int, timeout time.Duration) GitService {
	if abbrev < MinAbbrevLength {
		abbrev = MinAbbrevLength
	}
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	return &gitService{
		abbrev:  abbrev,
		timeout: timeout,
	}
}

// sanitizeDescription validates the output of git describe before it is
// passed to the stamping workflow.
func (s *gitService) sanitizeDescription(desc string) error {
	if desc == "" {
		return fmt.Errorf("description cannot be empty")
	}
	// Allow only the characters git describe emits for tags and hashes:
	// alphanumeric, dots, hyphens, underscores, slashes and plus signs
	validDesc := regexp.MustCompile(`^[a-zA-Z0-9._/\-+]+$`)
	if !validDesc.MatchString(desc) {
		return fmt.Errorf("invalid description format: %s", desc)
	}
	// Limit description length
	if len(desc) > 255 {
		return fmt.Errorf("description too long: maximum 255 characters")
	}
	return nil
}

// executeCommand runs a command with timeout and proper resource cleanup.
func (s *gitService) executeCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	// Create context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	// Capture both stdout and stderr for better error handling
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command timed out after %v", s.timeout)
		}
		// Include stderr in error message for debugging
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return nil, fmt.Errorf("command failed: %w (stderr: %s)", err, errMsg)
		}
		return nil, fmt.Errorf("command failed: %w", err)
	}

	return stdout.Bytes(), nil
}

// Describe runs git describe against the working repository and returns
// its trimmed output.
func (s *gitService) Describe(ctx context.Context) (string, error) {
	args := []string{"describe", "--tags", fmt.Sprintf("--abbrev=%d", s.abbrev)}

	output, err := s.executeCommand(ctx, "git", args...)
	if err != nil {
		return "", fmt.Errorf("failed to execute git describe: %w", err)
	}

	// Validate output before parsing
	desc := strings.TrimSpace(string(output))
	if desc == "" {
		return "", fmt.Errorf("git describe returned empty output")
	}

	if err := s.sanitizeDescription(desc); err != nil {
		return "", fmt.Errorf("git describe returned invalid output: %w", err)
	}

	return desc, nil
}
