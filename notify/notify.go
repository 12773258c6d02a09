package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"

	"kage_vpn_store/utils"
)

type Kind string

const (
	KindOrderConfirmation  Kind = "order_confirmation"
	KindCredentialDelivery Kind = "credential_delivery"
	KindExpiryReminder     Kind = "expiry_reminder"
)

// Dispatcher is best-effort outbound notification. Send never blocks the
// caller and never returns an error; every outcome is advisory.
type Dispatcher interface {
	Send(kind Kind, to string, data map[string]any)
}

var subjects = map[Kind]string{
	KindOrderConfirmation:  "Order Confirmation - Kage VPN Store",
	KindCredentialDelivery: "Your VPN Account Details - Kage VPN Store",
	KindExpiryReminder:     "Your VPN Account Expires Soon - Kage VPN Store",
}

var templateFiles = map[Kind]string{
	KindOrderConfirmation:  "templates/order_confirmation.html",
	KindCredentialDelivery: "templates/vpn_credentials.html",
	KindExpiryReminder:     "templates/expiry_reminder.html",
}

type message struct {
	kind Kind
	to   string
	data map[string]any
}

// Mailer delivers queued notifications over SMTP with gomail. One worker
// drains the queue; a send gets a short timeout and a single retry, then the
// message is dropped with a log line.
type Mailer struct {
	queue chan message
	done  chan struct{}

	// overridable in tests
	send func(m *gomail.Message) error
}

func NewMailer() *Mailer {
	mailer := &Mailer{
		queue: make(chan message, 64),
		done:  make(chan struct{}),
	}
	mailer.send = mailer.smtpSend
	return mailer
}

func (m *Mailer) Send(kind Kind, to string, data map[string]any) {
	if to == "" {
		log.Printf("notify: no recipient for %s, skipping", kind)
		return
	}
	select {
	case m.queue <- message{kind: kind, to: to, data: data}:
	default:
		log.Printf("notify: queue full, dropping %s for %s", kind, to)
	}
}

func (m *Mailer) Start() {
	go func() {
		defer close(m.done)
		for msg := range m.queue {
			m.deliver(msg)
		}
	}()
}

// Stop drains the queue and waits for the worker to exit.
func (m *Mailer) Stop() {
	close(m.queue)
	<-m.done
}

func (m *Mailer) deliver(msg message) {
	mail, err := m.compose(msg)
	if err != nil {
		log.Printf("notify: cannot compose %s for %s: %v", msg.kind, msg.to, err)
		return
	}

	if err := m.sendWithTimeout(mail); err != nil {
		log.Printf("notify: send %s to %s failed, retrying once: %v", msg.kind, msg.to, err)
		if err := m.sendWithTimeout(mail); err != nil {
			log.Printf("notify: giving up on %s to %s: %v", msg.kind, msg.to, err)
			return
		}
	}
	log.Printf("notify: sent %s to %s", msg.kind, msg.to)
}

func (m *Mailer) compose(msg message) (*gomail.Message, error) {
	tmpl, err := template.ParseFiles(templateFiles[msg.kind])
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, msg.data); err != nil {
		return nil, err
	}

	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = "noreply@kagevpn.com"
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", from)
	mail.SetHeader("To", msg.to)
	mail.SetHeader("Subject", subjects[msg.kind])
	mail.SetBody("text/html", body.String())

	// Credential mails carry the order QR so the customer can pull the order up
	// at the counter or in a support chat.
	if code, ok := msg.data["orderCode"].(string); ok && code != "" && msg.kind == KindCredentialDelivery {
		if qrBytes, err := utils.GenerateQRCode(code, 400); err == nil {
			mail.Embed("order_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrBytes)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<order_qr_code>"},
				"Content-Disposition": {"inline"},
			}))
		} else {
			log.Printf("notify: QR for order %s failed: %v", code, err)
		}
	}

	return mail, nil
}

func (m *Mailer) sendWithTimeout(mail *gomail.Message) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.send(mail)
	}()
	select {
	case err := <-errCh:
		return err
	case <-time.After(10 * time.Second):
		return fmt.Errorf("smtp send timed out")
	}
}

func (m *Mailer) smtpSend(mail *gomail.Message) error {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(mail)
}
