package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"github.com/yuin/goldmark"

	"podnews/internal/logger"
)

type implSender struct {
	cfg    Config
	logger logger.Logger
}

// New creates a Sender instance.
func New(cfg Config, log logger.Logger) Sender {
	return &implSender{
		cfg:    cfg,
		logger: log,
	}
}

// Send delivers the newsletter as a multipart message: the Markdown source as
// the plain-text part and its HTML rendering as the alternative.
func (s *implSender) Send(ctx context.Context, subject, markdownBody string) error {
	htmlBody, err := renderHTML(markdownBody)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(s.cfg.To...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, markdownBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Info(ctx, "newsletter emailed to %d recipients", len(s.cfg.To))
	return nil
}

// renderHTML converts the Markdown newsletter into the HTML alternative part.
func renderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}
