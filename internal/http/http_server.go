package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	auth2 "gitlab.com/hirecode-2025.net/internal/core/services/auth"
	"gitlab.com/hirecode-2025.net/internal/core/services/execution"
	"gitlab.com/hirecode-2025.net/internal/core/services/ratelimit"
	"gitlab.com/hirecode-2025.net/internal/core/services/submission"
	"gitlab.com/hirecode-2025.net/internal/handlers"
	"gitlab.com/hirecode-2025.net/internal/handlers/auth"
	"gitlab.com/hirecode-2025.net/internal/handlers/execute"
	"gitlab.com/hirecode-2025.net/internal/handlers/health"
	"gitlab.com/hirecode-2025.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	executionService  execution.IExecutionService
	submissionService submission.ISubmissionService
	limiter           ratelimit.ILimiter
	sessionLimiter    ratelimit.ILimiter
	jwtProvider       primary.JWTService

	ggAuth         auth2.IAuthService
	accessCodeAuth auth2.IAuthService
}

func NewServiceProvider(
	executionService execution.IExecutionService,
	submissionService submission.ISubmissionService,
	limiter ratelimit.ILimiter,
	sessionLimiter ratelimit.ILimiter,
	jwtProvider primary.JWTService,
	ggAuth auth2.IAuthService,
	accessCodeAuth auth2.IAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		executionService:  executionService,
		submissionService: submissionService,
		limiter:           limiter,
		sessionLimiter:    sessionLimiter,
		jwtProvider:       jwtProvider,
		ggAuth:            ggAuth,
		accessCodeAuth:    accessCodeAuth,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	ggAuthConfig    *config.GGAuthConfig
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, ggAuthConfig *config.GGAuthConfig, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		ggAuthConfig:    ggAuthConfig,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.executionService == nil || s.ServiceProvider.submissionService == nil {
		return errors.New("execution and submission services are required")
	}

	r := mux.NewRouter()
	r.Use(handlers.Recover(s.logger), handlers.LimitBody(handlers.MaxBodyBytes))

	mw := handlers.New(s.ServiceProvider.jwtProvider, s.ServiceProvider.limiter, s.logger)
	health.NewHandler(s.ServiceName, s.ServiceProvider.executionService).RegisterRoutes(r)
	execute.
		NewHandler(s.ServiceProvider.executionService, s.logger).
		RegisterRoutes(r, mw)
	submissions.
		NewHandler(s.ServiceProvider.submissionService, s.logger).
		RegisterRoutes(r, mw)
	auth.NewHandler(s.ggAuthConfig, s.logger).RegisterRoutes(r, mw, &auth.ServiceDependencies{
		GGAuthService:         s.ServiceProvider.ggAuth,
		AccessCodeAuthService: s.ServiceProvider.accessCodeAuth,
		SessionLimiter:        s.ServiceProvider.sessionLimiter,
	})
	s.router = r
	return nil
}

// Handler exposes the router built by Init
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background; a listen failure is sent on the returned channel
func (s *Server) Start(ctx context.Context) <-chan error {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}
