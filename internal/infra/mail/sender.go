package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"gopkg.in/gomail.v2"
)

// Template inline: o alerta é curto e não justifica arquivo separado
const leadAlertTemplate = `
<h2>🔥 Lead quente no site!</h2>
<p><strong>{{.Name}}</strong> ({{.Email}}) acabou de interagir com o site e está com score <strong>{{.Score}}/100</strong>.</p>
{{if .Objective}}<p>Objetivo informado: <em>{{.Objective}}</em></p>{{end}}
<p>Entre em contato o quanto antes — lead quente esfria rápido.</p>
`

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendLeadAlert avisa a caixa de vendas que um lead qualificado apareceu
func (s *EmailSender) SendLeadAlert(to, leadName, leadEmail, objective string, score int) error {
	data := LeadAlertData{
		Name:      leadName,
		Email:     leadEmail,
		Objective: objective,
		Score:     score,
	}

	t, err := template.New("lead_alert").Parse(leadAlertTemplate)
	if err != nil {
		return fmt.Errorf("erro ao montar template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@liguemedicina.com")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🔥 Lead quente: %s (score %d)", leadName, score))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		middleware.RecordIntegrationError("smtp")
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	middleware.RecordNotificationSent("email")
	return nil
}
