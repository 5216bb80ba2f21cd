package service

import "context"

// GitService defines the interface for interacting with the git CLI.

type GitService interface {
	Describe(ctx context.Context) (string, error)
}
