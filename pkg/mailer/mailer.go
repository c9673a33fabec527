package mailer

import (
	"context"
	"fmt"

	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers verification codes and other account mail.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the backend from MAIL_BACKEND.
func New(ctx context.Context, config utils.EmailConfig, region string, log *zap.Logger) (Mailer, error) {
	switch config.Backend {
	case "", "log":
		return NewLogMailer(log), nil
	case "smtp":
		return NewSMTPMailer(config, log), nil
	case "ses":
		return NewSESMailer(ctx, config, region, log)
	default:
		return nil, fmt.Errorf("unknown mail backend %q", config.Backend)
	}
}

// VerificationMessage builds the mail carrying a sign-up or recovery code.
func VerificationMessage(to, code string) Message {
	return Message{
		To:      to,
		Subject: "[중고마켓] 이메일 인증 코드",
		Body: fmt.Sprintf("인증 코드: %s\r\n\r\n"+
			"5분 안에 입력해 주세요. 본인이 요청하지 않았다면 이 메일을 무시하세요.\r\n", code),
	}
}
