// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"campuseats/config"
	"campuseats/internal/domain/service"

	"github.com/pkg/errors"
)

// smtpMailer is a concrete implementation of the Mailer interface backed by
// an SMTP relay.
type smtpMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail relay must be configured")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Mail.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Mail.Username),
		gomail.WithPassword(cfg.Mail.Password),
	}

	client, err := gomail.NewClient(cfg.Mail.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	return &smtpMailer{
		client: client,
		from:   cfg.Mail.From,
	}, nil
}

// SendWelcome mails a self-registered client their campus ID.
func (m *smtpMailer) SendWelcome(ctx context.Context, to, name, campusID string) error {
	subject := "歡迎加入校園送餐平台"
	body := fmt.Sprintf(
		"%s 您好，\n\n您的帳號已建立完成。\n校園帳號:%s\n\n您可以使用校園帳號或電子郵件登入。\n",
		name, campusID,
	)

	return m.send(ctx, to, subject, body)
}

// SendCredentials mails an admin-created account its campus ID and initial password.
func (m *smtpMailer) SendCredentials(ctx context.Context, to, name, campusID, password string) error {
	subject := "您的校園送餐平台帳號"
	body := fmt.Sprintf(
		"%s 您好,\n\n管理員已為您建立帳號。\n校園帳號:%s\n初始密碼:%s\n\n請於首次登入後變更密碼。\n",
		name, campusID, password,
	)

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
