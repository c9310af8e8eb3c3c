package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

// ISubmissionService stores final candidate answers and reads them back for reviewers
type ISubmissionService interface {
	// Submit stores req and announces it to recruiters
	Submit(ctx context.Context, req *domain.SubmissionRequest) (*domain.SubmissionReceipt, error)

	// Get returns the submission with id, nil if there is none
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
}
