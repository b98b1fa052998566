package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"solvedet-intake/internal/common/config"
	"solvedet-intake/internal/common/logger"
)

// SESAPI is the subset of the SES client the transport uses, extracted for
// mocking.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	GetAccountSendingEnabled(ctx context.Context, params *ses.GetAccountSendingEnabledInput, optFns ...func(*ses.Options)) (*ses.GetAccountSendingEnabledOutput, error)
}

// SESTransport delivers messages through Amazon SES. Alternative to the
// SMTP relay for deployments already on AWS.
type SESTransport struct {
	client SESAPI
	logger logger.Logger
}

func NewSESTransport(ctx context.Context, cfg config.SESConfig, log logger.Logger) (*SESTransport, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SESTransport{
		client: ses.NewFromConfig(awsCfg),
		logger: log.WithFields(map[string]interface{}{"transport": "ses"}),
	}, nil
}

// NewSESTransportWithClient injects a prebuilt client, used in tests.
func NewSESTransportWithClient(client SESAPI, log logger.Logger) *SESTransport {
	return &SESTransport{
		client: client,
		logger: log.WithFields(map[string]interface{}{"transport": "ses"}),
	}
}

// Verify confirms the account is allowed to send.
func (t *SESTransport) Verify(ctx context.Context) error {
	out, err := t.client.GetAccountSendingEnabled(ctx, &ses.GetAccountSendingEnabledInput{})
	if err != nil {
		return fmt.Errorf("SES account check failed: %w", err)
	}
	if !out.Enabled {
		return fmt.Errorf("SES sending is disabled for this account")
	}
	return nil
}

func (t *SESTransport) Send(ctx context.Context, msg *Message) error {
	_, err := t.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTMLBody)},
			},
		},
		Source: aws.String(msg.FromHeader()),
	})
	if err != nil {
		return fmt.Errorf("SES send failed: %w", err)
	}
	return nil
}
