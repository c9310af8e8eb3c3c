package auth

import (
	"context"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, credentials *domain.Credentials) (string, error)
}
