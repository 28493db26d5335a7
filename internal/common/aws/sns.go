// internal/common/aws/sns.go
package aws

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of *sns.Client used here.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Texter sends SMS messages through SNS.
type Texter struct {
	api      SNSAPI
	senderID string
}

func NewTexter(cfg aws.Config, senderID string) *Texter {
	return &Texter{api: sns.NewFromConfig(cfg), senderID: senderID}
}

func NewTexterWithAPI(api SNSAPI, senderID string) *Texter {
	return &Texter{api: api, senderID: senderID}
}

// SendSMS returns the SNS message id.
func (t *Texter) SendSMS(ctx context.Context, phone, message string) (string, error) {
	if phone == "" {
		return "", errors.New("sms recipient is empty")
	}
	input := &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	}
	if t.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(t.senderID),
			},
		}
	}
	out, err := t.api.Publish(ctx, input)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
