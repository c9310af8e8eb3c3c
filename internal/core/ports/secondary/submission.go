package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

// SubmissionRepository indexes stored submissions by ID
type SubmissionRepository interface {
	// SaveSubmission saves an index row
	SaveSubmission(ctx context.Context, idx *domain.SubmissionIndex) error

	// GetSubmission retrieves an index row by ID, nil if not found
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.SubmissionIndex, error)
}
