// Package sesmail implements mailx.Sender on Amazon SES.
package sesmail

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/dabotcentral/central/pkg/mailx"
)

const charset = "UTF-8"

// API is the subset of the SES client the provider uses.
type API interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Provider struct {
	client API
	from   string
}

// New returns a provider sending as from unless a message overrides it.
func New(client API, from string) *Provider {
	return &Provider{client: client, from: from}
}

// NewFromEnv builds an SES client from the default AWS credential chain.
func NewFromEnv(ctx context.Context, region, from string) (*Provider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("sesmail: load aws config: %w", err)
	}
	return New(ses.NewFromConfig(cfg), from), nil
}

func (p *Provider) Send(ctx context.Context, msg mailx.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = p.from
	}

	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String(charset)}
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String(charset)}
	}

	_, err := p.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("sesmail: send to %s: %w", strings.Join(msg.To, ", "), err)
	}
	return nil
}
