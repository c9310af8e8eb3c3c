package auth

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/global/logger"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

func generateToken(ctx context.Context, jwtProvider primary.JWTService, authPayload domain.AuthPayload) (string, error) {
	var buf bytes.Buffer

	err := json.NewEncoder(&buf).Encode(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var payload map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &payload)
	if err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, payload)
	if err != nil {
		logger.Error("Failed to sign token", "error", err)
		return "", errs.GeneratingToken
	}
	return token, nil
}
