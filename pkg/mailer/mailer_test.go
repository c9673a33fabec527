package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"classifieds-market/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVerificationMessage(t *testing.T) {
	msg := VerificationMessage("a@b.c", "123456")
	assert.Equal(t, "a@b.c", msg.To)
	assert.Contains(t, msg.Body, "123456")
}

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(utils.EmailConfig{
		Host: "smtp.example.com", Port: 587, User: "u", Password: "p", From: "noreply@example.com",
	}, zap.NewNop())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), VerificationMessage("a@b.c", "000111")))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"a@b.c"}, gotTo)
	assert.Contains(t, string(gotBody), "000111")
	assert.Contains(t, string(gotBody), "To: a@b.c\r\n")
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := NewSMTPMailer(utils.EmailConfig{Host: "localhost", Port: 25}, zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(context.Background(), Message{To: "a@b.c"})
	assert.ErrorContains(t, err, "connection refused")
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := &SESMailer{client: client, from: "noreply@example.com", log: zap.NewNop()}

	require.NoError(t, m.Send(context.Background(), VerificationMessage("a@b.c", "424242")))
	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@example.com", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"a@b.c"}, client.input.Destination.ToAddresses)
	assert.Contains(t, aws.ToString(client.input.Content.Simple.Body.Text.Data), "424242")

	client.err = errors.New("throttled")
	assert.Error(t, m.Send(context.Background(), Message{To: "a@b.c"}))
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), utils.EmailConfig{Backend: "pigeon"}, "ap-northeast-2", zap.NewNop())
	assert.Error(t, err)

	m, err := New(context.Background(), utils.EmailConfig{}, "ap-northeast-2", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)
}
