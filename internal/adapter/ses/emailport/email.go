package emailport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

var _ secondary.Notifier = (*EmailNotifier)(nil)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailNotifier mails recruiters through SES
type EmailNotifier struct {
	client sesAPI
	from   string
	to     []string
	logger primary.Logger
}

func NewEmailNotifier(client sesAPI, from string, to []string, logger primary.Logger) *EmailNotifier {
	return &EmailNotifier{
		client: client,
		from:   from,
		to:     to,
		logger: logger,
	}
}

func (n *EmailNotifier) Name() string {
	return "email"
}

func (n *EmailNotifier) Notify(ctx context.Context, msg *domain.Notification) error {
	out, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: n.to,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Message), Charset: aws.String(charset)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email for submission %s: %w", msg.SubmissionID, err)
	}

	n.logger.Debug("Email sent", "submissionId", msg.SubmissionID, "messageId", aws.ToString(out.MessageId))
	return nil
}
