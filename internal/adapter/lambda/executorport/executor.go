package executorport

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

var _ secondary.ExecutionBackend = (*LambdaBackend)(nil)

// lambdaAPI is the part of the lambda client the backend needs
type lambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaBackend implements the ExecutionBackend interface with AWS Lambda
type LambdaBackend struct {
	client lambdaAPI
	logger primary.Logger
}

// NewLambdaBackend creates a new Lambda execution backend
func NewLambdaBackend(client lambdaAPI, logger primary.Logger) *LambdaBackend {
	return &LambdaBackend{
		client: client,
		logger: logger,
	}
}

// Invoke calls functionName with a request/response invocation
func (b *LambdaBackend) Invoke(ctx context.Context, functionName string, payload []byte) (*domain.BackendReply, error) {
	out, err := b.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		Payload:        payload,
		InvocationType: types.InvocationTypeRequestResponse,
	})
	if err != nil {
		// the function name stays in the log; callers surface err to candidates
		b.logger.Error("Failed to invoke lambda", "function", functionName, "error", err)
		return nil, err
	}
	if out == nil {
		return nil, nil
	}

	b.logger.Debug("Lambda invoked",
		"function", functionName,
		"statusCode", out.StatusCode,
		"executedVersion", aws.ToString(out.ExecutedVersion))

	return &domain.BackendReply{
		StatusCode:    out.StatusCode,
		FunctionError: aws.ToString(out.FunctionError),
		Payload:       out.Payload,
	}, nil
}
