package usecase

import (
	"context"
	"fmt"

	"github.com/verstamp/verstamp/internal/domain"
)

// StampDocumentUseCase contains the logic for rewriting version
// assignments inside a parsed document.

type StampDocumentUseCase struct{}

// Execute replaces every line starting with the marker and returns how
// many lines were rewritten. Zero is a valid result.
func (uc *StampDocumentUseCase) Execute(_ context.Context, doc *domain.Document, marker, version string) (int, error) {
	if marker == "" {
		return 0, fmt.Errorf("marker cannot be empty")
	}
	return doc.StampVersion(marker, version), nil
}
