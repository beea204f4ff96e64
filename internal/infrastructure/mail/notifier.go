// Package mail sends new-appointment alerts to the clinic administrator over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-gomail/gomail"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

const bookedAtLayout = "Mon, 02 Jan 2006 15:04 MST"

// Config holds the SMTP account used both to authenticate and as the sender.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// To is the administrative inbox. Defaults to Username.
	To string
}

// Enabled reports whether credentials are present. Without them no alert is sent.
func (c Config) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

// sender is the subset of *gomail.Dialer the notifier relies on.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
	Dial() (gomail.SendCloser, error)
}

// Notifier implements ports.Notifier using gomail.
type Notifier struct {
	dialer sender
	from   string
	to     string
}

// NewNotifier builds a Notifier dialing cfg.Host:cfg.Port with STARTTLS.
func NewNotifier(cfg Config) *Notifier {
	to := cfg.To
	if to == "" {
		to = cfg.Username
	}
	return &Notifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.Username,
		to:     to,
	}
}

// Notify composes and sends the alert. gomail has no context support, so ctx
// is only checked before dialing.
func (n *Notifier) Notify(ctx context.Context, a domain.Appointment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}
	if err := n.dialer.DialAndSend(n.compose(a)); err != nil {
		return fmt.Errorf("%w: send email: %w", domain.ErrNotification, err)
	}
	return nil
}

// Verify opens and closes one SMTP connection to check the account settings.
func (n *Notifier) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := n.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return conn.Close()
}

// compose builds the message. The patient's name is shown as the sender name
// and their address, when given, becomes the Reply-To.
func (n *Notifier) compose(a domain.Appointment) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, a.FullName)
	m.SetHeader("To", n.to)
	if a.EmailAddress != "" {
		m.SetHeader("Reply-To", a.EmailAddress)
	}
	m.SetHeader("Subject", "New Appointment Booked - "+a.FullName)
	m.SetBody("text/plain", body(a))
	return m
}

func body(a domain.Appointment) string {
	bookedAt := a.CreatedAt
	if bookedAt.IsZero() {
		bookedAt = time.Now()
	}

	var b strings.Builder
	b.WriteString("New Appointment Details:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", a.FullName)
	fmt.Fprintf(&b, "Mobile: %s\n", a.MobileNumber)
	fmt.Fprintf(&b, "Email: %s\n", orDefault(a.EmailAddress, "N/A"))
	fmt.Fprintf(&b, "Department: %s\n", a.Department)
	fmt.Fprintf(&b, "Doctor: %s\n", orDefault(a.DoctorName, "Not specified"))
	fmt.Fprintf(&b, "Reason: %s\n\n", orDefault(a.ReasonForVisit, "Not specified"))
	fmt.Fprintf(&b, "Booked At: %s\n\n", bookedAt.Format(bookedAtLayout))
	b.WriteString("---\n")
	if a.EmailAddress != "" {
		b.WriteString("Reply to this email to contact the patient directly.\n")
	} else {
		b.WriteString("The patient did not leave an email address; call the mobile number above.\n")
	}
	return b.String()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
