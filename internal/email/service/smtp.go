package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"

	"github.com/willowcart/relay/internal/config"
	edomain "github.com/willowcart/relay/internal/email/domain"
)

// Ensure SMTP implements domain.Sender
var _ edomain.Sender = (*SMTP)(nil)

// SMTP delivers through a plain SMTP relay, for self-hosted setups and
// local mail catchers. SMTP assigns no message id, so one is generated.
type SMTP struct {
	cfg config.Config
}

func NewSMTP(cfg config.Config) *SMTP { return &SMTP{cfg: cfg} }

func (s *SMTP) Send(ctx context.Context, msg edomain.Message) (string, error) {
	if s.cfg.SMTPHost == "" || msg.From == "" {
		return "", edomain.ErrNotConfigured
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	id := uuid.NewString()
	raw := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMessage-ID: <%s@relay>\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		msg.From, msg.To, msg.Subject, id, msg.HTML))
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := smtp.SendMail(addr, auth, msg.From, []string{msg.To}, raw); err != nil {
		return "", err
	}
	return id, nil
}
