package execution

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

const (
	// MaxCodeLength is the largest accepted source, in characters
	MaxCodeLength = 50000

	rawReplyLogLimit = 500
)

const (
	msgEmptyCode     = "Code cannot be empty"
	msgCodeTooLarge  = "Code too large. Maximum size is 50KB."
	msgDangerousCode = "Code contains potentially dangerous operations."
	msgNoResponse    = "No response from execution service"
)

var _ IExecutionService = (*ExecutionService)(nil)

// ExecutionService implements the IExecutionService interface on top of an ExecutionBackend
type ExecutionService struct {
	backend  secondary.ExecutionBackend
	registry *Registry
	rules    *RuleSet
	logger   primary.Logger
	now      func() time.Time
}

// ExecutionServiceOption configures an ExecutionService
type ExecutionServiceOption func(*ExecutionService)

// WithClock replaces the clock used to measure execution time
func WithClock(now func() time.Time) ExecutionServiceOption {
	return func(s *ExecutionService) {
		s.now = now
	}
}

// NewExecutionService creates a new execution service
func NewExecutionService(
	backend secondary.ExecutionBackend,
	registry *Registry,
	rules *RuleSet,
	logger primary.Logger,
	options ...ExecutionServiceOption,
) *ExecutionService {
	s := &ExecutionService{
		backend:  backend,
		registry: registry,
		rules:    rules,
		logger:   logger,
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// SupportedLanguages lists the languages the registry knows
func (s *ExecutionService) SupportedLanguages() []string {
	return s.registry.Languages()
}

// Execute validates code, runs it on the backend for language and normalizes the reply
func (s *ExecutionService) Execute(ctx context.Context, language string, code string) (result *domain.ExecutionResult) {
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Execution panicked", "language", language, "panic", r)
			result = s.failure(fmt.Sprintf("Execution failed: %v", r), start)
		}
	}()

	if msg, ok := s.validate(language, code); !ok {
		return &domain.ExecutionResult{Success: false, Error: msg}
	}

	functionName, _ := s.registry.FunctionName(language)
	encoded := base64.StdEncoding.EncodeToString([]byte(code))
	payload, err := json.Marshal(domain.BackendPayload{
		Code:                encoded,
		IsFinalSubmission:   "false",
		RequestAIValidation: "false",
	})
	if err != nil {
		return s.failure(fmt.Sprintf("Execution failed: %s", err.Error()), start)
	}

	s.logger.Info("Invoking execution backend",
		"function", functionName,
		"codeLength", len(code),
		"base64Length", len(encoded))

	// the backend call is not cancelled with the caller's request
	reply, err := s.backend.Invoke(context.WithoutCancel(ctx), functionName, payload)
	if err != nil {
		s.logger.Error("Execution backend invocation failed", "function", functionName, "error", err)
		return s.failure(fmt.Sprintf("Execution failed: %s", err.Error()), start)
	}
	if reply == nil {
		return s.failure(msgNoResponse, start)
	}

	s.logger.Info("Execution backend replied", "function", functionName, "statusCode", reply.StatusCode)

	if reply.FunctionError != "" {
		s.logger.Error("Execution backend function error",
			"function", functionName,
			"functionError", reply.FunctionError,
			"payload", truncate(reply.Payload, rawReplyLogLimit))
		return s.failure(fmt.Sprintf("Execution error: %s", reply.FunctionError), start)
	}

	if len(reply.Payload) == 0 {
		return s.failure(msgNoResponse, start)
	}

	s.logger.Debug("Raw backend reply", "function", functionName, "reply", truncate(reply.Payload, rawReplyLogLimit))

	decoded, err := decodeReply(reply.Payload)
	if err != nil {
		s.logger.Error("Failed to parse backend reply", "function", functionName, "error", err)
		return s.failure(err.Error(), start)
	}

	return decoded.Result.toResult(s.elapsedMs(start))
}

// validate runs the input checks in order and stops at the first failure
func (s *ExecutionService) validate(language, code string) (string, bool) {
	if _, ok := s.registry.FunctionName(language); !ok {
		return fmt.Sprintf("Unsupported language: %s. Supported: %s",
			language, strings.Join(s.registry.Languages(), ", ")), false
	}

	if strings.TrimSpace(code) == "" {
		return msgEmptyCode, false
	}

	if utf8.RuneCountInString(code) > MaxCodeLength {
		return msgCodeTooLarge, false
	}

	if rule, matched := s.rules.Match(code); matched {
		s.logger.Warn("Rejected code by security rule", "language", language, "rule", rule.Name)
		return msgDangerousCode, false
	}

	return "", true
}

func (s *ExecutionService) failure(msg string, start time.Time) *domain.ExecutionResult {
	elapsed := s.elapsedMs(start)
	return &domain.ExecutionResult{
		Success:       false,
		Error:         msg,
		ExecutionTime: &elapsed,
	}
}

func (s *ExecutionService) elapsedMs(start time.Time) int64 {
	ms := s.now().Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit])
}
