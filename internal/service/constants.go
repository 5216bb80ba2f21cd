package service

import "time"

// Timeout constants for service operations
const (
	// DefaultGitTimeout is the timeout for git CLI operations
	DefaultGitTimeout = 10 * time.Second
)

// MinAbbrevLength is the shortest hash abbreviation passed to git describe
const MinAbbrevLength = 6
