package execution

import (
	"context"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

// IExecutionService validates candidate code and runs it on a remote backend
type IExecutionService interface {
	// Execute never fails: every failure is reported inside the result
	Execute(ctx context.Context, language string, code string) *domain.ExecutionResult

	// SupportedLanguages lists the languages the registry knows
	SupportedLanguages() []string
}
