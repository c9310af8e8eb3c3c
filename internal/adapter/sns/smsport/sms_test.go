package smsport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"gitlab.com/hirecode-2025.net/internal/adapter/logging"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestNotifyPublishesTransactionalSMS(t *testing.T) {
	client := &fakeSNS{}
	n := NewSMSNotifier(client, "+15550100", logging.NewNopLogger())

	if err := n.Notify(context.Background(), &domain.Notification{Subject: "New go submission", Message: "link"}); err != nil {
		t.Fatal(err)
	}
	if aws.ToString(client.input.PhoneNumber) != "+15550100" {
		t.Errorf("phone = %q", aws.ToString(client.input.PhoneNumber))
	}
	if msg := aws.ToString(client.input.Message); !strings.HasPrefix(msg, "New go submission") || !strings.HasSuffix(msg, "link") {
		t.Errorf("message = %q", msg)
	}
	if attr := client.input.MessageAttributes["AWS.SNS.SMS.SMSType"]; aws.ToString(attr.StringValue) != "Transactional" {
		t.Errorf("sms type = %q", aws.ToString(attr.StringValue))
	}
}

func TestNotifyWrapsPublishError(t *testing.T) {
	boom := errors.New("opted out")
	n := NewSMSNotifier(&fakeSNS{err: boom}, "+1", logging.NewNopLogger())
	if err := n.Notify(context.Background(), &domain.Notification{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
