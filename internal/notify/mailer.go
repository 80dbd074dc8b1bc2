package notify

import (
	"bytes"
	"context"
	"errors"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/yiltek/catalog-backend/internal/config"
)

var ErrMailDisabled = errors.New("mail relay is not configured")

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ContactEmail is the content of a contact form notification.
type ContactEmail struct {
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Subject     string
	Message     string
	Product     string
	IsQuote     bool

	SiteName string
	SentAt   time.Time
}

type Mailer struct {
	sender Sender
	cfg    config.MailConfig
	now    func() time.Time
}

func NewMailer(cfg config.MailConfig) *Mailer {
	var sender Sender
	if cfg.Enabled() {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return newMailer(sender, cfg)
}

func newMailer(sender Sender, cfg config.MailConfig) *Mailer {
	return &Mailer{sender: sender, cfg: cfg, now: time.Now}
}

// NotifyContact emails the site owner about a new submission. The reply-to
// address is the submitter's.
func (m *Mailer) NotifyContact(ctx context.Context, data ContactEmail) error {
	if m.sender == nil {
		return ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.composeContact(data)
	if err != nil {
		return err
	}
	return m.sender.DialAndSend(msg)
}

func (m *Mailer) composeContact(data ContactEmail) (*gomail.Message, error) {
	data.SiteName = m.cfg.SiteName
	data.SentAt = m.now()

	var html, text bytes.Buffer
	if err := contactHTML.Execute(&html, data); err != nil {
		return nil, err
	}
	if err := contactText.Execute(&text, data); err != nil {
		return nil, err
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", from, m.cfg.SiteName+" İletişim Formu")
	msg.SetHeader("To", m.cfg.Recipient)
	msg.SetHeader("Reply-To", data.Email)
	msg.SetHeader("Subject", "Yeni İletişim Formu: "+data.Subject)
	msg.SetHeader("X-Priority", "1")
	msg.SetHeader("X-MSMail-Priority", "High")
	msg.SetHeader("Importance", "High")
	msg.SetHeader("X-Contact-Form", m.cfg.SiteName+" Website")
	msg.SetBody("text/plain", text.String())
	msg.AddAlternative("text/html", html.String())
	return msg, nil
}
