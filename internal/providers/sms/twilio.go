package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	AccountSID string
	AuthToken  string
	From       string
}

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

type TwilioProvider struct {
	cfg    Config
	client *http.Client
}

func NewTwilio(cfg Config) *TwilioProvider {
	return &TwilioProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *TwilioProvider) Send(ctx context.Context, to string, body string) error {
	form := url.Values{}
	form.Set("To", normalizeNumber(to))
	form.Set("From", p.cfg.From)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioBaseURL, p.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.cfg.AccountSID, p.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// normalizeNumber coerces loosely formatted numbers toward E.164.
func normalizeNumber(to string) string {
	to = strings.TrimSpace(to)
	to = strings.ReplaceAll(to, " ", "")
	to = strings.ReplaceAll(to, "-", "")
	if to == "" || strings.HasPrefix(to, "+") {
		return to
	}
	return "+" + to
}
