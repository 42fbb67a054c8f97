package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Leads abaixo deste score não geram alerta — só poluiriam a caixa do
// time de vendas. O lead continua salvo e visível no painel admin.
const minScoreToNotify = 60

// SalesMailer define o contrato do envio de alerta por email
type SalesMailer interface {
	SendLeadAlert(to, leadName, leadEmail, objective string, score int) error
}

// SalesMessenger define o contrato do aviso por WhatsApp (Meta API)
type SalesMessenger interface {
	SendLeadAlert(phone, leadName string, score int) error
}

type Worker struct {
	Channel    *amqp.Channel
	Mailer     SalesMailer
	Messenger  SalesMessenger
	SalesInbox string
	SalesPhone string
}

func NewWorker(ch *amqp.Channel, mailer SalesMailer, messenger SalesMessenger, salesInbox, salesPhone string) *Worker {
	return &Worker{
		Channel:    ch,
		Mailer:     mailer,
		Messenger:  messenger,
		SalesInbox: salesInbox,
		SalesPhone: salesPhone,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Mensagem Recebida do RabbitMQ")

			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao notificar vendas: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload LeadCapturedPayload) error {
	if payload.Score < minScoreToNotify {
		log.Printf("ℹ️ [WORKER] Lead %s com score %d (< %d), sem alerta.", payload.Email, payload.Score, minScoreToNotify)
		return nil
	}

	log.Printf("⚙️ [WORKER] Lead quente: %s (score %d, fonte %s)", payload.Email, payload.Score, payload.Source)

	if w.Mailer != nil && w.SalesInbox != "" {
		if err := w.Mailer.SendLeadAlert(w.SalesInbox, payload.Name, payload.Email, payload.Objective, payload.Score); err != nil {
			return err
		}
	}

	// WhatsApp é melhor-esforço: email já saiu, não vale Nack por ele
	if w.Messenger != nil && w.SalesPhone != "" {
		if err := w.Messenger.SendLeadAlert(w.SalesPhone, payload.Name, payload.Score); err != nil {
			log.Printf("⚠️ [WORKER] Falha no aviso por WhatsApp: %s", err)
		}
	}

	log.Printf("✅ [WORKER] Time de vendas notificado sobre %s", payload.Email)
	return nil
}
