package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/services/auth"
	"gitlab.com/hirecode-2025.net/internal/core/services/ratelimit"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/handlers"
	"gitlab.com/hirecode-2025.net/internal/handlers/response"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

const (
	stateCookie = "oauth_state"
	userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type ServiceDependencies struct {
	GGAuthService         auth.IAuthService
	AccessCodeAuthService auth.IAuthService
	// SessionLimiter budgets access code attempts; the middleware default applies when nil
	SessionLimiter ratelimit.ILimiter
}

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID            string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type SessionRequest struct {
	AccessCode string `json:"accessCode"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	oauthConfig     *oauth2.Config
	userInfoURL     string
	logger          primary.Logger
}

type HandlerOption func(*Handler)

// WithEndpoint points the OAuth flow at another provider, used by tests
func WithEndpoint(endpoint oauth2.Endpoint, userInfo string) HandlerOption {
	return func(h *Handler) {
		h.oauthConfig.Endpoint = endpoint
		h.userInfoURL = userInfo
	}
}

func NewHandler(cfg *config.GGAuthConfig, logger primary.Logger, options ...HandlerOption) *Handler {
	h := &Handler{
		providerHandler: make(map[domain.Provider]auth.IAuthService),
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoURL,
		logger:      logger,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider, svcDep *ServiceDependencies) {
	h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
	h.providerHandler[domain.ProviderAccessCode] = svcDep.AccessCodeAuthService
	session := mw.RateLimitWith(svcDep.SessionLimiter)(http.HandlerFunc(h.CreateSession))
	router.Handle("/api/session", session).Methods(http.MethodPost)
	router.HandleFunc("/auth/google", h.GoogleLoginHandler).Methods(http.MethodGet)
	router.HandleFunc("/auth/callback", h.GoogleCallbackHandler).Methods(http.MethodGet)
}

// CreateSession trades an access code for a candidate token
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	tokenStr, err := h.providerHandler[domain.ProviderAccessCode].Login(r.Context(), &domain.Credentials{
		Provider:   domain.ProviderAccessCode,
		AccessCode: req.AccessCode,
	})
	switch {
	case errors.Is(err, errs.AccessCodeRequired):
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, errs.InvalidAccessCode):
		h.logger.Warn("Invalid access code", "client", handlers.ClientIP(r))
		response.Fail(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		h.logger.Error("Failed to create session", "error", err)
		response.Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{
		Success: true,
		Token:   tokenStr,
	})
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		response.Fail(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	// Get authorization code from URL
	code := r.URL.Query().Get("code")
	if code == "" {
		response.Fail(w, http.StatusBadRequest, "No code in URL")
		return
	}

	// Exchange code for access token
	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("Failed to exchange oauth code", "error", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to get token")
		return
	}

	googleUser, err := h.fetchUser(r, token)
	if err != nil {
		h.logger.Error("Failed to get user info", "error", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to get user info")
		return
	}

	tokenStr, err := h.providerHandler[domain.ProviderGoogle].Login(ctx, &domain.Credentials{
		Provider: domain.ProviderGoogle,
		Reviewer: &domain.Reviewer{
			GoogleID:      googleUser.ID,
			Email:         googleUser.Email,
			EmailVerified: googleUser.EmailVerified,
			Name:          googleUser.Name,
		},
	})
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, errs.ShouldUseWorkEmail) || errors.Is(err, errs.EmailNotVerified) {
			status = http.StatusForbidden
		}
		response.Fail(w, status, err.Error())
		return
	}

	h.logger.Info("Reviewer logged in", "email", googleUser.Email)
	response.WriteSuccess(w, domain.LoginResponse{
		Success: true,
		Token:   tokenStr,
	})
}

func (h *Handler) fetchUser(r *http.Request, token *oauth2.Token) (*GoogleUser, error) {
	client := h.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}

	// Decode Google user info
	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &googleUser, nil
}
