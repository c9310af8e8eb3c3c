package execute

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/services/execution"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/handlers"
	"gitlab.com/hirecode-2025.net/internal/handlers/response"
)

type ExecuteRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Handler runs candidate code on the execution backends
type Handler struct {
	executionService execution.IExecutionService
	logger           primary.Logger
}

func NewHandler(executionService execution.IExecutionService, logger primary.Logger) *Handler {
	return &Handler{
		executionService: executionService,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	run := mw.RequirePermission(domain.PermissionExecute)(mw.RateLimit(http.HandlerFunc(h.Execute)))
	router.Handle("/api/execute", run).Methods(http.MethodPost)
}

// Execute always answers 200 with the execution result once the request itself is valid
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Language == "" {
		response.Fail(w, http.StatusBadRequest, "Language is required")
		return
	}
	if req.Code == "" {
		response.Fail(w, http.StatusBadRequest, "Code is required")
		return
	}

	result := h.executionService.Execute(r.Context(), req.Language, req.Code)
	if !result.Success {
		h.logger.Info("Execution failed", "language", req.Language, "client", handlers.ClientIP(r), "error", result.Error)
	}
	response.WriteSuccess(w, result)
}
