package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/cgdmohamed/NexusCore-sub001/internal/config"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/rs/zerolog"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	cfg    config.SMTP
	logger *zerolog.Logger
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	l := log.GetLogger()
	return &SMTPSender{cfg: cfg, logger: &l}
}

// Send delivers a single plain-text email. When SMTP is disabled by config
// the message is dropped with a debug log; callers treat that as success.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	enabled, _ := strconv.ParseBool(s.cfg.Enabled)
	if !enabled {
		s.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("smtp disabled, dropping email")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	payload := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.From, msg.To, msg.Subject, msg.Body))

	err := smtp.SendMail(addr, nil, s.cfg.From, []string{msg.To}, payload)
	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
