// Package mailer sends transactional email.
package mailer

import (
	"alcyxob/fitness-planner/internal/logger"
	"context"
	"fmt"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// VerificationMessage builds the email carrying a verification code.
func VerificationMessage(to, nickname, code string) Message {
	return Message{
		To:      to,
		Subject: "Confirm your email",
		Text: fmt.Sprintf("Hi %s,\n\nyour verification code is %s.\n"+
			"Enter it in the app to confirm your email address.\n", nickname, code),
	}
}

// logMailer writes messages to the log instead of sending them. Used in
// development when no mail provider is configured.
type logMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) Mailer {
	return &logMailer{log: log.With("service", "LogMailer")}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	// The body is logged as is so developers can read the code.
	m.log.SugaredLogger.Infow("email not sent (log mailer)", "subject", msg.Subject, "body", msg.Text)
	return nil
}
