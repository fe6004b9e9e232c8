package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/anota/internal/dispatch"
	"github.com/HendryAvila/anota/internal/store"
)

const owner = "whatsapp:+34600111222"

type sentMessage struct {
	to   string
	body string
}

// fakeSender records deliveries and can fail selectively.
type fakeSender struct {
	sent    []sentMessage
	failFor map[string]bool // body -> fail
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.failFor[body] {
		return errors.New("channel rejected")
	}
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRun_DeliversDueAndMarks(t *testing.T) {
	st := newTestStore(t)
	due := time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC)
	if _, err := st.CreateReminder(owner, "pay rent", due); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	sender := &fakeSender{}
	d := dispatch.New(st, sender, zap.NewNop())

	// One minute past due: delivered.
	n, err := d.Run(context.Background(), due.Add(time.Minute))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("processed = %d, want 1", n)
	}
	if len(sender.sent) != 1 || sender.sent[0].to != owner || sender.sent[0].body != "pay rent" {
		t.Errorf("sent = %v", sender.sent)
	}

	// A second sweep does not re-select it.
	n, err = d.Run(context.Background(), due.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if n != 0 || len(sender.sent) != 1 {
		t.Errorf("delivered reminder re-sent: processed=%d sent=%v", n, sender.sent)
	}
}

func TestRun_NotYetDue(t *testing.T) {
	st := newTestStore(t)
	due := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	if _, err := st.CreateReminder(owner, "later", due); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	sender := &fakeSender{}
	d := dispatch.New(st, sender, zap.NewNop())

	n, err := d.Run(context.Background(), due.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 0 || len(sender.sent) != 0 {
		t.Errorf("future reminder dispatched: %v", sender.sent)
	}
}

func TestRun_FailureIsolatedAndRetried(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC)
	if _, err := st.CreateReminder(owner, "broken", now.Add(-time.Minute)); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if _, err := st.CreateReminder(owner, "fine", now.Add(-time.Minute)); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	sender := &fakeSender{failFor: map[string]bool{"broken": true}}
	d := dispatch.New(st, sender, zap.NewNop())

	// First sweep: "fine" goes out, "broken" fails but doesn't abort.
	n, err := d.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("processed = %d, want 1", n)
	}

	// Channel recovers: next sweep retries only "broken".
	sender.failFor = nil
	n, err = d.Run(context.Background(), now.Add(time.Minute))
	if err != nil {
		t.Fatalf("retry Run: %v", err)
	}
	if n != 1 {
		t.Errorf("retry processed = %d, want 1", n)
	}
	if len(sender.sent) != 2 {
		t.Errorf("sent = %v, want both reminders exactly once", sender.sent)
	}
}

func TestRun_NilSenderDisabled(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.CreateReminder(owner, "due", time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	d := dispatch.New(st, nil, zap.NewNop())
	n, err := d.Run(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 0 {
		t.Errorf("processed = %d with no sender configured", n)
	}

	// The reminder stays pending for when a sender exists.
	pending, _ := st.ListPendingReminders(owner)
	if len(pending) != 1 {
		t.Errorf("pending = %v", pending)
	}
}
