package crypto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

// MinSecretLength is the shortest HMAC secret accepted, in bytes
const MinSecretLength = 32

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWeakSecret   = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
)

type JWTServiceImpl struct {
	HMACSecretKey string
	TokenTTL      time.Duration
	BcryptCost    int
}

func NewJWTService(jwtConfig *config.JwtConfig) (*JWTServiceImpl, error) {
	if len(jwtConfig.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	ttl := jwtConfig.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		TokenTTL:      ttl,
		BcryptCost:    bcrypt.DefaultCost,
	}, nil
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}
	if _, ok := signingMethod.(*jwt.SigningMethodHMAC); !ok {
		return "", fmt.Errorf("signing method %s is not HMAC", method)
	}

	// Ensure the claims map contains an expiration time
	if _, exists := claims["exp"]; !exists {
		claims["exp"] = time.Now().Add(J.TokenTTL).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

// ParseTokenHMAC verifies an HS256 token and returns its payload
func (J JWTServiceImpl) ParseTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error) {
	parsedToken, err := J.parse(token, jwt.SigningMethodHS256.Name)
	if err != nil {
		return domain.AuthPayload{}, err
	}
	if !parsedToken.Valid {
		return domain.AuthPayload{}, ErrInvalidToken
	}

	data, err := json.Marshal(parsedToken.Claims)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to encode claims: %w", err)
	}
	return decodeAuthPayload(data)
}

func (J JWTServiceImpl) parse(token string, method string) (*jwt.Token, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", method)
	}

	return jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}), jwt.WithExpirationRequired())
}

func (J JWTServiceImpl) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pwd))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (J JWTServiceImpl) EncryptPassword(ctx context.Context, password string) (string, error) {
	cost := J.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func decodeAuthPayload(data []byte) (domain.AuthPayload, error) {
	var authPayload domain.AuthPayload

	err := json.Unmarshal(data, &authPayload)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to decode auth payload: %w", err)
	}

	return authPayload, nil
}
