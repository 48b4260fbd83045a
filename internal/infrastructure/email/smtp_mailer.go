// Package email envía los correos transaccionales del sistema vía SMTP.
package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/issaqr/inventory-qr-api/pkg/config"
)

// SMTPMailer implementa invitation.Mailer sobre gomail. Abre una conexión por
// envío; el volumen de invitaciones no justifica un pool de conexiones SMTP.
type SMTPMailer struct {
	cfg         config.SMTPConfig
	frontendURL string
}

// NewSMTPMailer construye el mailer. frontendURL es la base del enlace de
// registro que se incluye en el correo.
func NewSMTPMailer(cfg config.SMTPConfig, frontendURL string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, frontendURL: frontendURL}
}

// SendInvitation envía el correo de invitación con el enlace de canje.
func (m *SMTPMailer) SendInvitation(to, token, schoolName, roleName string) error {
	link := fmt.Sprintf("%s/register?invitation=%s", m.frontendURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Invitación a %s", schoolName))
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Hola,</p>
		<p>Has sido invitado a unirte a <strong>%s</strong> con el rol de <strong>%s</strong>.</p>
		<p><a href="%s">Completa tu registro aquí</a>.</p>
		<p>El enlace es personal y de un solo uso; expira automáticamente.</p>`,
		schoolName, roleName, link,
	))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar invitación: %w", err)
	}
	return nil
}
