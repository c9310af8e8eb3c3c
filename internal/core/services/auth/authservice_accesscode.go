package auth

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

var _ IAuthService = &accessCodeAuthService{}

// accessCodeAuthService admits candidates holding one of the shared access codes
type accessCodeAuthService struct {
	jwtProvider primary.JWTService
	hashes      []string
	logger      primary.Logger
}

// NewAccessCodeAuthService hashes the plain codes of cfg once and keeps them next to the pre-hashed ones
func NewAccessCodeAuthService(jwtProvider primary.JWTService, cfg *config.AccessConfig, logger primary.Logger) (IAuthService, error) {
	ctx := context.Background()
	hashes := make([]string, 0, len(cfg.Codes)+len(cfg.CodeHashes))
	for _, code := range cfg.Codes {
		code = NormalizeAccessCode(code)
		if code == "" {
			continue
		}
		hash, err := jwtProvider.EncryptPassword(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to hash access code: %w", err)
		}
		hashes = append(hashes, hash)
	}
	hashes = append(hashes, cfg.CodeHashes...)
	if len(hashes) == 0 {
		return nil, errs.NoAccessCodes
	}

	return &accessCodeAuthService{
		jwtProvider: jwtProvider,
		hashes:      hashes,
		logger:      logger,
	}, nil
}

// NormalizeAccessCode trims and upper-cases a code as typed by a candidate
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (a accessCodeAuthService) ProviderName() domain.Provider {
	return domain.ProviderAccessCode
}

func (a accessCodeAuthService) Login(ctx context.Context, credentials *domain.Credentials) (string, error) {
	if credentials == nil {
		return "", errs.AccessCodeRequired
	}
	code := NormalizeAccessCode(credentials.AccessCode)
	if code == "" {
		return "", errs.AccessCodeRequired
	}

	if !a.matches(ctx, code) {
		a.logger.Warn("Rejected access code", "length", len(code))
		return "", errs.InvalidAccessCode
	}

	return generateToken(ctx, a.jwtProvider, domain.AuthPayload{
		Subject:    domain.SubjectCandidate,
		Permission: []string{domain.PermissionExecute, domain.PermissionSubmit},
		AccessCode: code,
	})
}

func (a accessCodeAuthService) matches(ctx context.Context, code string) bool {
	for _, hash := range a.hashes {
		ok, err := a.jwtProvider.VerifyPassword(ctx, hash, code)
		if err == nil && ok {
			return true
		}
	}
	return false
}
