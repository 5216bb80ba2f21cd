package orchestrator

import (
	"os"
	"strings"
	"time"
)

// Timeout constants for different operations
var (
	// DefaultWorkflowTimeout is the standard timeout for the stamp workflow
	DefaultWorkflowTimeout = getTimeoutOrDefault("VERSTAMP_WORKFLOW_TIMEOUT", 2*time.Minute, 5*time.Second)
	// DefaultLockTimeout bounds how long we wait on the target file lock
	DefaultLockTimeout = getTimeoutOrDefault("VERSTAMP_LOCK_TIMEOUT", 5*time.Second, 1*time.Second)
	// DefaultLockRetryDelay is the pause between lock acquisition attempts
	DefaultLockRetryDelay = getTimeoutOrDefault("VERSTAMP_LOCK_RETRY_DELAY", 100*time.Millisecond, 10*time.Millisecond)
)

// isTestEnvironment detects if we're running in a test environment
func isTestEnvironment() bool {
	// Check for testing flags
	for _, arg := range os.Args {
		if strings.Contains(arg, ".test") || strings.Contains(arg, "go test") {
			return true
		}
	}
	// Check for test environment variables
	return os.Getenv("GO_TEST") == "true" || os.Getenv("TEST_MODE") == "true"
}

// getTimeoutOrDefault returns production timeout or test timeout based on environment
func getTimeoutOrDefault(envVar string, prodDefault, testDefault time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	if isTestEnvironment() {
		return testDefault
	}
	return prodDefault
}

// File permission constants
const (
	// FilePermissionsReadWrite is the standard permission for created files
	FilePermissionsReadWrite = 0644
)
