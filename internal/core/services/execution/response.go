package execution

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

var (
	errInvalidResponse     = errors.New("Invalid response from execution service")
	errInvalidResponseBody = errors.New("Invalid response body from execution service")
)

// backendResult is the flat reply shape, also carried inside an envelope body
type backendResult struct {
	Success       bool    `json:"success"`
	Output        string  `json:"output"`
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	Error         string  `json:"error"`
	ExecutionTime float64 `json:"executionTime"`
}

// decodedReply is a backend reply after both parse stages
type decodedReply struct {
	Enveloped  bool
	StatusCode json.RawMessage
	Result     backendResult
}

// decodeReply recognises the envelope shape by the presence of statusCode.
// An envelope body is normally stringified JSON; an inline object is accepted too.
func decodeReply(payload []byte) (*decodedReply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return nil, errInvalidResponse
	}

	statusCode, enveloped := fields["statusCode"]
	if !enveloped {
		var res backendResult
		if err := json.Unmarshal(payload, &res); err != nil {
			return nil, errInvalidResponse
		}
		return &decodedReply{Result: res}, nil
	}

	body := bytes.TrimSpace(fields["body"])
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, errInvalidResponseBody
	}
	if body[0] == '"' {
		var text string
		if err := json.Unmarshal(body, &text); err != nil {
			return nil, errInvalidResponseBody
		}
		body = []byte(text)
	}

	var res backendResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errInvalidResponseBody
	}
	return &decodedReply{Enveloped: true, StatusCode: statusCode, Result: res}, nil
}

// toResult maps a backend result to the canonical shape, using elapsedMs when
// the backend did not report a duration
func (b backendResult) toResult(elapsedMs int64) *domain.ExecutionResult {
	output := b.Output
	if output == "" {
		output = b.Stdout
	}
	executionTime := elapsedMs
	if b.ExecutionTime > 0 {
		executionTime = int64(math.Round(b.ExecutionTime))
	}
	return &domain.ExecutionResult{
		Success:       b.Success,
		Output:        output,
		Stdout:        b.Stdout,
		Stderr:        b.Stderr,
		Error:         b.Error,
		ExecutionTime: &executionTime,
	}
}
