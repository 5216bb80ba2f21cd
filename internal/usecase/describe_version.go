package usecase

import (
	"context"
	"fmt"

	"github.com/verstamp/verstamp/internal/domain"
	"github.com/verstamp/verstamp/internal/repository"
)

// DescribeVersionUseCase contains the logic for obtaining the current
// version description from the repository.

type DescribeVersionUseCase struct {
	Describer repository.TagDescriber
}

// Execute runs the use case.
func (uc *DescribeVersionUseCase) Execute(ctx context.Context) (*domain.Description, error) {
	raw, err := uc.Describer.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe repository: %w", err)
	}
	desc, err := domain.NewDescription(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid describe output: %w", err)
	}
	return desc, nil
}
