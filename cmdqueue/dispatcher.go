package cmdqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Dispatch publishes a job to the given exchange and routing key as a
// persistent JSON message.
func (c *Client) Dispatch(ctx context.Context, exchange, routingKey string, job *Job) error {
	if job == nil || len(job.Argv) == 0 {
		return ErrEmptyJob
	}

	channel, err := c.channel()
	if err != nil {
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("cmdqueue: failed to marshal job: %w", err)
	}

	return channel.PublishWithContext(ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate - deprecated
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
}
