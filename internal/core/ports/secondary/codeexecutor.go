package secondary

import (
	"context"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

// ExecutionBackend invokes a remote per-language execution function
type ExecutionBackend interface {
	// Invoke calls functionName synchronously with payload and returns its raw reply
	Invoke(ctx context.Context, functionName string, payload []byte) (*domain.BackendReply, error)
}
