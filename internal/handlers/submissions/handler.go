package submissions

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/services/submission"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/handlers"
	"gitlab.com/hirecode-2025.net/internal/handlers/response"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

type SubmitRequest struct {
	Code       string `json:"code"`
	Language   string `json:"language"`
	Output     string `json:"output"`
	AccessCode string `json:"accessCode"`
}

type SubmitResponse struct {
	Success bool `json:"success"`
	*domain.SubmissionReceipt
}

type SubmissionResponse struct {
	Success    bool               `json:"success"`
	Submission *domain.Submission `json:"submission"`
}

// Handler stores final answers and serves them to reviewers
type Handler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(submissionService submission.ISubmissionService, logger primary.Logger) *Handler {
	return &Handler{
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Handle("/api/submit",
		mw.RequirePermission(domain.PermissionSubmit)(http.HandlerFunc(h.Submit))).Methods(http.MethodPost)
	router.Handle("/api/submission/{id}",
		mw.RequirePermission(domain.PermissionReview)(http.HandlerFunc(h.GetSubmission))).Methods(http.MethodGet)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" || req.Language == "" {
		response.Fail(w, http.StatusBadRequest, errs.CodeAndLanguageRequired.Error())
		return
	}

	// the code the candidate logged in with wins over the one in the body
	accessCode := req.AccessCode
	if payload, ok := handlers.AuthPayloadFrom(r.Context()); ok && payload.AccessCode != "" {
		accessCode = payload.AccessCode
	}

	receipt, err := h.submissionService.Submit(r.Context(), &domain.SubmissionRequest{
		Code:       req.Code,
		Language:   req.Language,
		Output:     req.Output,
		AccessCode: accessCode,
		IP:         handlers.ClientIP(r),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, errs.CodeAndLanguageRequired) {
			response.Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to save submission", "language", req.Language, "error", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	response.WriteSuccess(w, SubmitResponse{
		Success:           true,
		SubmissionReceipt: receipt,
	})
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Fail(w, http.StatusBadRequest, errs.InvalidSubmissionID.Error())
		return
	}

	sub, err := h.submissionService.Get(r.Context(), id)
	switch {
	case errors.Is(err, errs.MalformedSubmission):
		response.Fail(w, http.StatusInternalServerError, errs.MalformedSubmission.Error())
		return
	case err != nil:
		h.logger.Error("Failed to fetch submission", "submissionId", id, "error", err)
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch submission")
		return
	case sub == nil:
		response.Fail(w, http.StatusNotFound, errs.SubmissionNotFound.Error())
		return
	}

	response.WriteSuccess(w, SubmissionResponse{
		Success:    true,
		Submission: sub,
	})
}
