package repository

import "context"

// TagDescriber defines the interface for describing the working
// repository relative to its tags.

type TagDescriber interface {
	Describe(ctx context.Context) (string, error)
}
