package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gitlab.com/hirecode-2025.net/internal/adapter/crypto"
	"gitlab.com/hirecode-2025.net/internal/adapter/logging"
	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

func newJWT(t *testing.T) *crypto.JWTServiceImpl {
	t.Helper()
	svc, err := crypto.NewJWTService(&config.JwtConfig{Secret: "auth-service-test-secret-32-bytes", TokenTTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	svc.BcryptCost = bcrypt.MinCost
	return svc
}

func TestAccessCodeLogin(t *testing.T) {
	jwtSvc := newJWT(t)
	preHashed, err := jwtSvc.EncryptPassword(context.Background(), "ASSESS123")
	if err != nil {
		t.Fatal(err)
	}

	svc, err := NewAccessCodeAuthService(jwtSvc, &config.AccessConfig{
		Codes:      []string{"hire2024", " MAXHIRE "},
		CodeHashes: []string{preHashed},
	}, logging.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	if svc.ProviderName() != domain.ProviderAccessCode {
		t.Fatalf("ProviderName() = %q", svc.ProviderName())
	}

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{name: "exact", code: "HIRE2024"},
		{name: "lower case and padded", code: "  maxhire\t"},
		{name: "pre-hashed", code: "assess123"},
		{name: "empty", code: "   ", wantErr: errs.AccessCodeRequired},
		{name: "unknown", code: "CODETEST", wantErr: errs.InvalidAccessCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(context.Background(), &domain.Credentials{
				Provider:   domain.ProviderAccessCode,
				AccessCode: tt.code,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			payload, err := jwtSvc.ParseTokenHMAC(context.Background(), token)
			if err != nil {
				t.Fatal(err)
			}
			if payload.Subject != domain.SubjectCandidate {
				t.Errorf("sub = %q", payload.Subject)
			}
			if payload.AccessCode != NormalizeAccessCode(tt.code) {
				t.Errorf("access_code = %q", payload.AccessCode)
			}
			if !payload.HasPermission(domain.PermissionExecute) || !payload.HasPermission(domain.PermissionSubmit) {
				t.Errorf("permissions = %v", payload.Permission)
			}
			if payload.HasPermission(domain.PermissionReview) {
				t.Error("candidate must not review")
			}
		})
	}
}

func TestAccessCodeServiceNeedsCodes(t *testing.T) {
	_, err := NewAccessCodeAuthService(newJWT(t), &config.AccessConfig{Codes: []string{" "}}, logging.NewNopLogger())
	if !errors.Is(err, errs.NoAccessCodes) {
		t.Fatalf("err = %v, want %v", err, errs.NoAccessCodes)
	}
}

func TestGoogleLogin(t *testing.T) {
	jwtSvc := newJWT(t)
	svc := NewGoogleAuthService(jwtSvc, &config.GGAuthConfig{ReviewerDomain: "MaximizeHire.com"})

	tests := []struct {
		name     string
		creds    *domain.Credentials
		wantErr  error
		wantMail string
	}{
		{
			name:     "company reviewer",
			creds:    &domain.Credentials{Provider: domain.ProviderGoogle, Reviewer: &domain.Reviewer{GoogleID: "g-1", Email: "Ann@maximizehire.com", EmailVerified: true}},
			wantMail: "ann@maximizehire.com",
		},
		{
			name:    "foreign domain",
			creds:   &domain.Credentials{Provider: domain.ProviderGoogle, Reviewer: &domain.Reviewer{GoogleID: "g-2", Email: "bob@maximizehire.com.evil.io", EmailVerified: true}},
			wantErr: errs.ShouldUseWorkEmail,
		},
		{
			name:    "unverified company email",
			creds:   &domain.Credentials{Provider: domain.ProviderGoogle, Reviewer: &domain.Reviewer{GoogleID: "g-5", Email: "eve@maximizehire.com"}},
			wantErr: errs.EmailNotVerified,
		},
		{
			name:    "no email",
			creds:   &domain.Credentials{Provider: domain.ProviderGoogle, Reviewer: &domain.Reviewer{GoogleID: "g-3"}},
			wantErr: errs.EmailRequired,
		},
		{
			name:    "wrong provider",
			creds:   &domain.Credentials{Provider: domain.ProviderAccessCode, Reviewer: &domain.Reviewer{GoogleID: "g-4", Email: "a@maximizehire.com"}},
			wantErr: errs.InvalidCredentials,
		},
		{
			name:    "no reviewer",
			creds:   &domain.Credentials{Provider: domain.ProviderGoogle},
			wantErr: errs.InvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(context.Background(), tt.creds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			payload, err := jwtSvc.ParseTokenHMAC(context.Background(), token)
			if err != nil {
				t.Fatal(err)
			}
			if payload.Email != tt.wantMail || !payload.HasPermission(domain.PermissionReview) {
				t.Errorf("payload = %+v", payload)
			}
			if payload.HasPermission(domain.PermissionExecute) {
				t.Error("reviewer must not execute")
			}
		})
	}
}

func TestGoogleLoginWithoutDomainRestriction(t *testing.T) {
	svc := NewGoogleAuthService(newJWT(t), &config.GGAuthConfig{})
	_, err := svc.Login(context.Background(), &domain.Credentials{
		Provider: domain.ProviderGoogle,
		Reviewer: &domain.Reviewer{GoogleID: "g-1", Email: "someone@gmail.com", EmailVerified: true},
	})
	if err != nil {
		t.Fatal(err)
	}
}
