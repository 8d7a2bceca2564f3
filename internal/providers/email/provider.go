package email

import "context"

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
	SendWithAttachment(ctx context.Context, to []string, subject string, htmlBody string, attachment Attachment) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (p *NoOpProvider) SendWithAttachment(ctx context.Context, to []string, subject string, htmlBody string, attachment Attachment) error {
	return nil
}
