package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/hirecode-2025.net/internal/core/services/execution"
	"gitlab.com/hirecode-2025.net/internal/handlers/response"
)

type Status struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Languages []string `json:"languages"`
}

type Handler struct {
	serviceName      string
	executionService execution.IExecutionService
}

func NewHandler(serviceName string, executionService execution.IExecutionService) *Handler {
	return &Handler{
		serviceName:      serviceName,
		executionService: executionService,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WriteSuccess(w, Status{
		Status:    "ok",
		Service:   h.serviceName,
		Languages: h.executionService.SupportedLanguages(),
	})
}
