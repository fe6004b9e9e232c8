package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/HendryAvila/anota/internal/config"
	"github.com/HendryAvila/anota/internal/server"
)

// newTestServer wires a server over a temp store with Twilio and
// Gemini both disabled.
func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	cfg := config.Config{
		Addr:    ":0",
		DataDir: t.TempDir(),
	}
	srv, cleanup, err := server.New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	t.Cleanup(cleanup)
	return srv
}

func postWebhook(t *testing.T, srv *server.Server, from, body string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("From", from)
	form.Set("Body", body)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhook_AlwaysRepliesTwiML(t *testing.T) {
	srv := newTestServer(t)

	rec := postWebhook(t, srv, "whatsapp:+34600111222", "nota Comprar pan #súper")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<Message>") {
		t.Errorf("body = %q, want a TwiML message", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "guardada") {
		t.Errorf("body = %q, want the saved-note reply", rec.Body.String())
	}
}

func TestWebhook_CommandsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	const from = "whatsapp:+34600111222"

	postWebhook(t, srv, from, "nota primera")
	postWebhook(t, srv, from, "nota segunda")

	rec := postWebhook(t, srv, from, "notas")
	if !strings.Contains(rec.Body.String(), "1. primera") ||
		!strings.Contains(rec.Body.String(), "2. segunda") {
		t.Errorf("listing = %q", rec.Body.String())
	}

	// A different sender sees nothing.
	rec = postWebhook(t, srv, "whatsapp:+10000000000", "notas")
	if strings.Contains(rec.Body.String(), "primera") {
		t.Errorf("owner partition leaked: %q", rec.Body.String())
	}
}

func TestWebhook_EmptyBodyStillReplies(t *testing.T) {
	srv := newTestServer(t)

	rec := postWebhook(t, srv, "whatsapp:+34600111222", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<Message>") {
		t.Errorf("silence is not acceptable: %q", rec.Body.String())
	}
}

func TestWebhook_GetProbe(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Webhook OK") {
		t.Errorf("GET probe = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestDispatch_ReportsCount(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/dispatch", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	// Twilio is not configured in tests, so the sweep is a no-op.
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "processed: 0") {
		t.Errorf("dispatch = %d %q", rec.Code, rec.Body.String())
	}
}
