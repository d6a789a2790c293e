package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/campusportal/backend/internal/models"
)

// SESContactNotifier emails the portal administrators when a new contact
// message lands in the inbox.
type SESContactNotifier struct {
	sesClient    *ses.Client
	fromAddress  string
	adminAddress string
	logger       *slog.Logger
}

func NewSESContactNotifier(region, fromAddress, adminAddress string, logger *slog.Logger) (*SESContactNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESContactNotifier{
		sesClient:    ses.NewFromConfig(cfg),
		fromAddress:  fromAddress,
		adminAddress: adminAddress,
		logger:       logger,
	}, nil
}

// NotifyNewMessage sends the admin a copy of the submitted message. The
// sender's address goes in Reply-To so admins can answer directly.
func (n *SESContactNotifier) NotifyNewMessage(ctx context.Context, contact *models.Contact) error {
	textBody := fmt.Sprintf(`A new message arrived through the portal contact form.

From:    %s <%s>
Subject: %s

%s

Message ID: %d
`, contact.Name, contact.Email, contact.Subject, contact.Message, contact.ID)

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{n.adminAddress},
		},
		ReplyToAddresses: []string{contact.Email},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("New contact message: " + contact.Subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	if _, err := n.sesClient.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	n.logger.Info("contact notification sent", slog.Int64("contact_id", contact.ID))
	return nil
}
