package telegram

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Poller drives the long-poll loop and hands each update to a handler.
// Failed poll cycles back off exponentially; any successful cycle resets the
// backoff. Handler errors do not stop the loop.
type Poller struct {
	client  *Client
	timeout int
	log     zerolog.Logger
	handler func(Update)
}

func NewPoller(client *Client, timeoutSec int, log zerolog.Logger, handler func(Update)) *Poller {
	if timeoutSec <= 0 {
		timeoutSec = 30
	}
	return &Poller{client: client, timeout: timeoutSec, log: log, handler: handler}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.client.DeleteWebhook(ctx, true); err != nil {
		p.log.Warn().Err(err).Msg("delete webhook failed, continuing with long poll")
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = time.Second
	exp.MaxInterval = 30 * time.Second
	exp.MaxElapsedTime = 0 // retry forever; only ctx cancellation stops the loop

	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		updates, err := p.client.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			wait := exp.NextBackOff()
			p.log.Error().Err(err).Dur("backoff", wait).Msg("getUpdates failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		exp.Reset()
		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			p.handler(u)
		}
	}
}
