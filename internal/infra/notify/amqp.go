// Package notify delivers reservation notifications to the messaging
// backbone. Delivery is best-effort: errors are returned so callers can log
// and move on without failing the booking flow.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"space-booking/internal/pkg/config"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

type AMQPNotifier struct {
	cfg config.NotifyConfig
}

func NewAMQPNotifier(cfg config.NotifyConfig) *AMQPNotifier {
	return &AMQPNotifier{cfg: cfg}
}

// Send publishes the notification as a persistent JSON message. The
// connection is established per publish; notification volume is a handful of
// messages per day, so pooling buys nothing.
func (n *AMQPNotifier) Send(ctx context.Context, notification commands.Notification) error {
	conn, err := amqp.Dial(n.cfg.AMQPURL)
	if err != nil {
		return errs.Wrap(err, "amqp dial failed")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "amqp channel open failed")
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(n.cfg.QueueName, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "amqp queue declare failed")
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         notification.Kind,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", n.cfg.QueueName, false, false, pub); err != nil {
		return errs.Wrap(err, "amqp publish failed")
	}
	return nil
}

// LogNotifier stands in when no broker is configured (local development,
// tests). It only records what would have been sent.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, notification commands.Notification) error {
	slog.Info("notification (no broker configured)",
		"kind", notification.Kind,
		"reservation_id", notification.ReservationID,
		"user_id", notification.UserID)
	return nil
}

// NewNotifier picks the AMQP implementation when a broker URL is configured.
func NewNotifier(cfg config.NotifyConfig) commands.Notifier {
	if cfg.AMQPURL == "" {
		return NewLogNotifier()
	}
	return NewAMQPNotifier(cfg)
}
