package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/hirecode-2025.net/internal/adapter/crypto"
	"gitlab.com/hirecode-2025.net/internal/adapter/logging"
	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/handlers"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

type fakeSubmissions struct {
	last      *domain.SubmissionRequest
	submitErr error
	stored    map[uuid.UUID]*domain.Submission
	getErr    error
}

func (f *fakeSubmissions) Submit(_ context.Context, req *domain.SubmissionRequest) (*domain.SubmissionReceipt, error) {
	f.last = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &domain.SubmissionReceipt{
		SubmissionID: uuid.MustParse("00000000-0000-4000-8000-000000000001"),
		Key:          "code-assessments/2024-01-01/00000000-0000-4000-8000-000000000001.json",
		Timestamp:    "2024-01-01T00:00:00.000Z",
	}, nil
}

func (f *fakeSubmissions) Get(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stored[id], nil
}

type env struct {
	router    *mux.Router
	candidate string
	reviewer  string
}

func setup(t *testing.T, svc *fakeSubmissions) env {
	t.Helper()
	jwtSvc, err := crypto.NewJWTService(&config.JwtConfig{Secret: "submissions-test-secret-32-bytes", TokenTTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	token := func(claims map[string]interface{}) string {
		s, err := jwtSvc.GenerateTokenHMAC(context.Background(), "HS256", claims)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	router := mux.NewRouter()
	mw := handlers.New(jwtSvc, nil, logging.NewNopLogger())
	NewHandler(svc, logging.NewNopLogger()).RegisterRoutes(router, mw)
	return env{
		router: router,
		candidate: token(map[string]interface{}{
			"sub":         domain.SubjectCandidate,
			"permission":  []string{domain.PermissionExecute, domain.PermissionSubmit},
			"access_code": "HIRE2024",
		}),
		reviewer: token(map[string]interface{}{
			"sub":        "g-1",
			"permission": []string{domain.PermissionReview},
		}),
	}
}

func (e env) do(method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+token)
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func TestSubmit(t *testing.T) {
	svc := &fakeSubmissions{}
	e := setup(t, svc)

	rec := e.do(http.MethodPost, "/api/submit", e.candidate,
		`{"code":"x","language":"go","output":"ok","accessCode":"FORGED"}`,
		"X-Forwarded-For", "203.0.113.1", "User-Agent", "test-agent")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var got map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["success"] != true || got["submissionId"] != "00000000-0000-4000-8000-000000000001" {
		t.Fatalf("response = %v", got)
	}
	if got["key"] == "" || got["timestamp"] != "2024-01-01T00:00:00.000Z" {
		t.Fatalf("response = %v", got)
	}

	req := svc.last
	if req.AccessCode != "HIRE2024" {
		t.Errorf("access code = %q, want the token's", req.AccessCode)
	}
	if req.IP != "203.0.113.1" || req.UserAgent != "test-agent" || req.Output != "ok" {
		t.Errorf("request = %+v", req)
	}
}

func TestSubmitFailures(t *testing.T) {
	e := setup(t, &fakeSubmissions{})
	rec := e.do(http.MethodPost, "/api/submit", e.candidate, `{"code":"x"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Code and language are required") {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	rec = e.do(http.MethodPost, "/api/submit", e.reviewer, `{"code":"x","language":"go"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("reviewer submit status = %d", rec.Code)
	}

	e = setup(t, &fakeSubmissions{submitErr: errors.New("s3 down")})
	rec = e.do(http.MethodPost, "/api/submit", e.candidate, `{"code":"x","language":"go"}`)
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "Failed to save submission") {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestGetSubmission(t *testing.T) {
	id := uuid.New()
	svc := &fakeSubmissions{stored: map[uuid.UUID]*domain.Submission{
		id: {ID: id.String(), Key: "k", Code: "x", Language: "go"},
	}}
	e := setup(t, svc)

	rec := e.do(http.MethodGet, "/api/submission/"+id.String(), e.reviewer, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got SubmissionResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || got.Submission.ID != id.String() || got.Submission.Key != "k" {
		t.Fatalf("response = %+v", got)
	}

	if rec := e.do(http.MethodGet, "/api/submission/"+id.String(), e.candidate, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("candidate read status = %d", rec.Code)
	}
}

func TestGetSubmissionFailures(t *testing.T) {
	tests := []struct {
		name   string
		svc    *fakeSubmissions
		id     string
		status int
		msg    string
	}{
		{name: "bad id", svc: &fakeSubmissions{}, id: "not-a-uuid", status: http.StatusBadRequest, msg: "Invalid submission ID"},
		{name: "missing", svc: &fakeSubmissions{}, id: uuid.NewString(), status: http.StatusNotFound, msg: "Submission not found"},
		{name: "malformed", svc: &fakeSubmissions{getErr: fmt.Errorf("%w: eof", errs.MalformedSubmission)}, id: uuid.NewString(), status: http.StatusInternalServerError, msg: "Failed to read submission"},
		{name: "store down", svc: &fakeSubmissions{getErr: errors.New("timeout")}, id: uuid.NewString(), status: http.StatusInternalServerError, msg: "Failed to fetch submission"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t, tt.svc)
			rec := e.do(http.MethodGet, "/api/submission/"+tt.id, e.reviewer, "")
			if rec.Code != tt.status || !strings.Contains(rec.Body.String(), tt.msg) {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
		})
	}
}
