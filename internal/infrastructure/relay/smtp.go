package relay

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// sendMailFunc matches smtp.SendMail
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPRelay mails contact submissions straight to the staff inbox
type SMTPRelay struct {
	addr     string
	from     string
	to       string
	sendMail sendMailFunc
}

func NewSMTPRelay(host, port, from, to string) *SMTPRelay {
	return &SMTPRelay{
		addr:     host + ":" + port,
		from:     from,
		to:       to,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPRelay) Send(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := sub.Fields["subject"]
	if subject == "" {
		subject = "New " + string(sub.Kind) + " submission"
	}

	var body strings.Builder
	for _, k := range []string{"name", "email", "subject", "message"} {
		if v := sub.Fields[k]; v != "" {
			fmt.Fprintf(&body, "%s: %s\r\n", k, v)
		}
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nReply-To: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, s.to, headerValue(sub.Fields["email"]), headerValue(subject), body.String()))

	if err := s.sendMail(s.addr, nil, s.from, []string{s.to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// headerValue strips line breaks so user input cannot add headers
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
