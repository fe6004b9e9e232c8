// Package twilio talks to the Twilio Messages API for outbound
// WhatsApp sends and renders the TwiML envelope for inbound webhook
// replies.
package twilio

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://api.twilio.com/2010-04-01"
	sendTimeout     = 10 * time.Second
)

// Config holds Twilio credentials. All three fields are required for
// outbound sends; Enabled reports whether they are present.
type Config struct {
	AccountSID string
	AuthToken  string
	From       string // sender address, e.g. "whatsapp:+14155238886"
}

// Enabled reports whether outbound delivery is configured.
func (c Config) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// Sender delivers text messages through the Twilio REST API.
type Sender struct {
	cfg      Config
	endpoint string
	client   *http.Client
}

// NewSender creates a Sender with a bounded-timeout HTTP client.
func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:      cfg,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: sendTimeout},
	}
}

// Send posts one message to the recipient address. Any non-2xx
// response is a delivery error; the caller decides whether to retry.
func (s *Sender) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.cfg.From)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.endpoint, s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: send to %s: %w", to, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: send to %s: status %d: %s", to, resp.StatusCode, detail)
	}
	return nil
}

// ─── TwiML ───────────────────────────────────────────────────────────────────

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Reply writes body as a TwiML message envelope. Twilio treats any
// well-formed 200 reply as the message to send back, so this is
// always a success status regardless of what happened internally.
func Reply(w http.ResponseWriter, body string) {
	out, err := xml.Marshal(twimlResponse{Message: body})
	if err != nil {
		// xml.Marshal on a string field cannot realistically fail;
		// fall back to an empty envelope.
		out = []byte("<Response></Response>")
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
