package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/lorencia/portal/internal/config"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/siteconfig"
)

// mailSender delivers portal mail over SMTP. Settings saved through the
// admin email form take precedence; the bootstrap config is the fallback
// so mail works before the site config file has ever been saved.
type mailSender struct {
	cfg    config.Email
	site   *siteconfig.Store
	logger *logger.Logger
}

func NewMailSender(cfg config.Email, site *siteconfig.Store, logger *logger.Logger) EmailSender {
	return &mailSender{cfg: cfg, site: site, logger: logger}
}

type smtpSettings struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func (s *mailSender) settings() smtpSettings {
	cfg := s.site.Snapshot().Email
	if cfg.Server != "" {
		return smtpSettings{
			host:     cfg.Server,
			port:     cfg.Port,
			username: cfg.User,
			password: cfg.Password,
			from:     cfg.From,
		}
	}
	return smtpSettings{
		host:     s.cfg.Host,
		port:     s.cfg.Port,
		username: s.cfg.Username,
		password: s.cfg.Password,
		from:     s.cfg.From,
	}
}

func (s *mailSender) SendWelcome(ctx context.Context, to, username string) {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your account has been created. You can now log in, download the client\n"+
			"and start playing.\n\n"+
			"Best regards,\nThe Lorencia Team",
		username,
	)
	s.send(ctx, to, "Welcome to Lorencia", body)
}

func (s *mailSender) SendPaymentConfirmation(ctx context.Context, to, username string, credits int64, amount float64) {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your payment of %.2f was received and %d credits were added to your\n"+
			"account. Thank you for supporting the server.\n\n"+
			"Best regards,\nThe Lorencia Team",
		username, amount, credits,
	)
	s.send(ctx, to, "Payment confirmation", body)
}

func (s *mailSender) send(ctx context.Context, to, subject, body string) {
	log := logger.FromContext(ctx)

	settings := s.settings()
	if settings.host == "" {
		log.Debug().Str("to", to).Str("subject", subject).Msg("mail disabled, skipping send")
		return
	}

	e := email.NewEmail()
	e.From = settings.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", settings.host, settings.port)
	auth := smtp.PlainAuth("", settings.username, settings.password, settings.host)
	if err := e.Send(addr, auth); err != nil {
		log.Err(err).Str("to", to).Str("subject", subject).Msg("mail send failed")
		return
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("mail sent")
}
