package cmdqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	retry "github.com/avast/retry-go/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/sowinskl/go-proc/procexec"
)

// StartWorker consumes jobs from the configured queue and executes each one
// through the given executor. It blocks until the context is canceled,
// re-establishing the consumer whenever the underlying connection drops.
func (c *Client) StartWorker(ctx context.Context, config WorkerConfig, executor procexec.Executor) error {
	if config.RetryMax == 0 {
		config.RetryMax = 3
	}
	if config.RetryStart == 0 {
		config.RetryStart = 1 * time.Second
	}
	if config.Workers == 0 {
		config.Workers = 1
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		channel, err := c.channel()
		if err != nil {
			time.Sleep(time.Second)
			continue
		}

		if err := channel.Qos(config.PrefetchCount, 0, false); err != nil {
			logrus.Errorf("CmdQueue: Failed to set QoS: %v", err)
			time.Sleep(time.Second)
			continue
		}

		msgs, err := channel.Consume(
			config.Queue,
			config.Name,
			false, // AutoAck = false (Manual Ack is safer)
			false, // Exclusive
			false, // NoLocal
			false, // NoWait
			nil,   // Args
		)

		if err != nil {
			logrus.Errorf("CmdQueue: Consume failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		c.executeLoop(ctx, msgs, config, executor)
	}
}

func (c *Client) executeLoop(ctx context.Context, msgs <-chan amqp.Delivery, config WorkerConfig, executor procexec.Executor) {
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-msgs:
					if !ok {
						return
					}
					executeDelivery(ctx, msg, config, executor)
				}
			}
		}()
	}
	wg.Wait()
}

// executeDelivery decodes one job and runs it, re-running failures with
// backoff. Undecodable messages are rejected immediately: re-running cannot
// fix them.
func executeDelivery(ctx context.Context, msg amqp.Delivery, config WorkerConfig, executor procexec.Executor) {
	var job Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		logrus.Errorf("CmdQueue: Undecodable job, rejecting: %v", err)
		if nackErr := msg.Reject(false); nackErr != nil {
			logrus.Errorf("CmdQueue: Failed to reject message: %v", nackErr)
		}
		return
	}

	err := retry.New(
		retry.Attempts(uint(config.RetryMax+1)),
		retry.Delay(config.RetryStart),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logrus.Errorf("CmdQueue: Job %q attempt %d failed: %v", job.Name, n, err)
		})).Do(func() error {
		return runJob(ctx, &job, executor)
	})

	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			logrus.Errorf("CmdQueue: Failed to ack message: %v", ackErr)
		}
		return
	}

	logrus.Errorf("CmdQueue: Job %q failed after retries: %v. Sending to DLQ (Reject).", job.Name, err)

	// Reject(false) sends the message to the Dead Letter Exchange (if
	// configured on the queue) or discards it if no DLQ is configured.
	if nackErr := msg.Reject(false); nackErr != nil {
		logrus.Errorf("CmdQueue: Failed to nack message: %v", nackErr)
	}
}

func runJob(ctx context.Context, job *Job, executor procexec.Executor) error {
	result, err := executor.Run(ctx, job.Spec())
	if err != nil {
		if result != nil {
			return fmt.Errorf("cmdqueue: job %q exited with code %d: %w", job.Name, result.ExitCode, err)
		}
		return fmt.Errorf("cmdqueue: job %q: %w", job.Name, err)
	}
	logrus.Debugf("CmdQueue: Job %q finished in %v", job.Name, result.Duration)
	return nil
}
