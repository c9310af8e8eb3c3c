package auth

import (
	"context"
	"strings"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

type googleAuthService struct {
	jwtProvider primary.JWTService
	Config      *config.GGAuthConfig
}

func NewGoogleAuthService(jwtProvider primary.JWTService, Config *config.GGAuthConfig) IAuthService {
	return &googleAuthService{
		jwtProvider: jwtProvider,
		Config:      Config,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

func (g googleAuthService) Login(ctx context.Context, credentials *domain.Credentials) (string, error) {
	if credentials == nil || credentials.Reviewer == nil {
		return "", errs.InvalidCredentials
	}
	if credentials.Provider != domain.ProviderGoogle {
		return "", errs.InvalidCredentials
	}

	reviewer := credentials.Reviewer
	if reviewer.GoogleID == "" {
		return "", errs.InvalidCredentials
	}
	if reviewer.Email == "" {
		return "", errs.EmailRequired
	}
	if !reviewer.EmailVerified {
		return "", errs.EmailNotVerified
	}

	email := strings.ToLower(reviewer.Email)
	if domainName := strings.ToLower(g.Config.ReviewerDomain); domainName != "" && !strings.HasSuffix(email, "@"+domainName) {
		return "", errs.ShouldUseWorkEmail
	}

	return generateToken(ctx, g.jwtProvider, domain.AuthPayload{
		Subject:    reviewer.GoogleID,
		Permission: []string{domain.PermissionReview},
		Email:      email,
	})
}
