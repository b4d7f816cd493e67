package mail

import "context"

// Config holds SMTP delivery settings. The password is injected from the
// caller's config; this package never reads the environment.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// Sender delivers a rendered newsletter to subscribers.
type Sender interface {
	Send(ctx context.Context, subject, markdownBody string) error
}
