package sesmail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/dabotcentral/central/pkg/mailx"
	"github.com/dabotcentral/central/pkg/mailx/sesmail"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestProviderBuildsInput(t *testing.T) {
	t.Parallel()

	api := &fakeSES{}
	p := sesmail.New(api, "DabotCentral <login@dabotcentral.test>")

	err := p.Send(context.Background(), mailx.Message{
		To:       []string{"a@b.com"},
		Subject:  "Your DabotCentral Login Code",
		HTMLBody: "<p>123456</p>",
	})
	require.NoError(t, err)

	require.Equal(t, "DabotCentral <login@dabotcentral.test>", aws.ToString(api.in.Source))
	require.Equal(t, []string{"a@b.com"}, api.in.Destination.ToAddresses)
	require.Equal(t, "Your DabotCentral Login Code", aws.ToString(api.in.Message.Subject.Data))
	require.Equal(t, "<p>123456</p>", aws.ToString(api.in.Message.Body.Html.Data))
	require.Nil(t, api.in.Message.Body.Text)
}

func TestProviderMessageFromOverrides(t *testing.T) {
	t.Parallel()

	api := &fakeSES{}
	p := sesmail.New(api, "default@dabotcentral.test")

	require.NoError(t, p.Send(context.Background(), mailx.Message{
		From:     "other@dabotcentral.test",
		To:       []string{"a@b.com"},
		TextBody: "plain",
	}))
	require.Equal(t, "other@dabotcentral.test", aws.ToString(api.in.Source))
	require.Equal(t, "plain", aws.ToString(api.in.Message.Body.Text.Data))
}

func TestProviderWrapsFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("throttled by ses")
	p := sesmail.New(&fakeSES{err: boom}, "x@dabotcentral.test")

	err := p.Send(context.Background(), mailx.Message{To: []string{"a@b.com"}})
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, p.Send(context.Background(), mailx.Message{}), mailx.ErrNoRecipients)
}
