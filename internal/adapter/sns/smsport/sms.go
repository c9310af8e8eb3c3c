package smsport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

var _ secondary.Notifier = (*SMSNotifier)(nil)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSNotifier texts a recruiter phone number through SNS
type SMSNotifier struct {
	client snsAPI
	phone  string
	logger primary.Logger
}

func NewSMSNotifier(client snsAPI, phone string, logger primary.Logger) *SMSNotifier {
	return &SMSNotifier{
		client: client,
		phone:  phone,
		logger: logger,
	}
}

func (n *SMSNotifier) Name() string {
	return "sms"
}

func (n *SMSNotifier) Notify(ctx context.Context, msg *domain.Notification) error {
	out, err := n.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.phone),
		Message:     aws.String(msg.Subject + "\n" + msg.Message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish sms for submission %s: %w", msg.SubmissionID, err)
	}

	n.logger.Debug("SMS published", "submissionId", msg.SubmissionID, "messageId", aws.ToString(out.MessageId))
	return nil
}
