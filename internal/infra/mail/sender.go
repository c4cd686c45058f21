package mail

import (
	"log/slog"

	"gopkg.in/gomail.v2"
)

// 通知メールの送信口。送信失敗は呼び出し側でログして握りつぶす前提（best-effort）。
type Sender interface {
	Send(to string, subject string, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender はSMTP経由で送るSenderを返す。
func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(to string, subject string, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}

type logSender struct {
	log *slog.Logger
}

// NewLogSender はSMTP未設定時のSender。送らずにログに残すだけ。
func NewLogSender(log *slog.Logger) Sender {
	return &logSender{log: log}
}

func (s *logSender) Send(to string, subject string, body string) error {
	s.log.Info("mail disabled, skipping send", "to", to, "subject", subject)
	return nil
}
