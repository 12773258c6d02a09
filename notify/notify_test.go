package notify

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

// useTempTemplate points one notification kind at a throwaway template file
// and restores the original path when the test ends.
func useTempTemplate(t *testing.T, kind Kind, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mail.html")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	original := templateFiles[kind]
	templateFiles[kind] = path
	t.Cleanup(func() { templateFiles[kind] = original })
}

func TestMailerDeliversQueuedMessage(t *testing.T) {
	useTempTemplate(t, KindOrderConfirmation, "<p>Order {{.orderCode}}</p>")

	sent := make(chan *gomail.Message, 1)
	mailer := NewMailer()
	mailer.send = func(m *gomail.Message) error {
		sent <- m
		return nil
	}
	mailer.Start()

	mailer.Send(KindOrderConfirmation, "aung@example.com", map[string]any{"orderCode": "ORD-abc12345"})
	mailer.Stop()

	select {
	case m := <-sent:
		if got := m.GetHeader("To"); len(got) != 1 || got[0] != "aung@example.com" {
			t.Errorf("To = %v", got)
		}
		if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != subjects[KindOrderConfirmation] {
			t.Errorf("Subject = %v", got)
		}
	default:
		t.Fatal("message never reached the sender")
	}
}

func TestMailerRetriesOnceThenSucceeds(t *testing.T) {
	useTempTemplate(t, KindOrderConfirmation, "<p>hi</p>")

	attempts := 0
	mailer := NewMailer()
	mailer.send = func(m *gomail.Message) error {
		attempts++
		if attempts == 1 {
			return errors.New("connection reset")
		}
		return nil
	}
	mailer.Start()
	mailer.Send(KindOrderConfirmation, "aung@example.com", map[string]any{})
	mailer.Stop()

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestMailerGivesUpAfterRetry(t *testing.T) {
	useTempTemplate(t, KindOrderConfirmation, "<p>hi</p>")

	attempts := 0
	mailer := NewMailer()
	mailer.send = func(m *gomail.Message) error {
		attempts++
		return errors.New("smtp down")
	}
	mailer.Start()
	// A dead SMTP server must never reach the caller as an error.
	mailer.Send(KindOrderConfirmation, "aung@example.com", map[string]any{})
	mailer.Stop()

	if attempts != 2 {
		t.Errorf("attempts = %d, want exactly one retry", attempts)
	}
}

func TestMailerSkipsEmptyRecipient(t *testing.T) {
	mailer := NewMailer()
	mailer.send = func(m *gomail.Message) error {
		t.Error("send called for empty recipient")
		return nil
	}
	mailer.Start()
	mailer.Send(KindOrderConfirmation, "", map[string]any{})
	mailer.Stop()
}

func TestMailerDropsWhenQueueFull(t *testing.T) {
	mailer := &Mailer{
		queue: make(chan message, 1),
		done:  make(chan struct{}),
	}
	mailer.Send(KindOrderConfirmation, "a@example.com", nil)
	// The worker is not running, so this one has nowhere to go. It must drop,
	// not block the caller.
	mailer.Send(KindOrderConfirmation, "b@example.com", nil)

	if len(mailer.queue) != 1 {
		t.Errorf("queue length = %d, want 1", len(mailer.queue))
	}
}

func TestComposeEmbedsQROnlyForCredentialMail(t *testing.T) {
	useTempTemplate(t, KindCredentialDelivery, `<img src="cid:order_qr_code" /> {{.username}}`)
	useTempTemplate(t, KindOrderConfirmation, "<p>{{.orderCode}}</p>")

	mailer := NewMailer()

	credMail, err := mailer.compose(message{
		kind: KindCredentialDelivery,
		to:   "aung@example.com",
		data: map[string]any{"orderCode": "ORD-abc12345", "username": "kage_user_01"},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	var credRaw bytes.Buffer
	if _, err := credMail.WriteTo(&credRaw); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(credRaw.String(), "order_qr.png") {
		t.Error("credential mail has no QR attachment")
	}

	confirmMail, err := mailer.compose(message{
		kind: KindOrderConfirmation,
		to:   "aung@example.com",
		data: map[string]any{"orderCode": "ORD-abc12345"},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	var confirmRaw bytes.Buffer
	if _, err := confirmMail.WriteTo(&confirmRaw); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(confirmRaw.String(), "order_qr.png") {
		t.Error("confirmation mail must not carry the QR attachment")
	}
}
