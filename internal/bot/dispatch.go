package bot

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/telegram"
	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/workqueue"
)

// Dispatcher fans inbound updates out to the dialogue machine through a
// keyed queue. Events for one user run strictly in order on that user's
// worker; different users always proceed in parallel.
type Dispatcher struct {
	machine *Machine
	exec    *workqueue.KeyedExecutor
	log     zerolog.Logger
}

func NewDispatcher(machine *Machine, cfg workqueue.Config, log zerolog.Logger) *Dispatcher {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(err error) {
			log.Error().Err(err).Msg("dialogue job failed")
		}
	}
	return &Dispatcher{
		machine: machine,
		exec:    workqueue.NewKeyedExecutor(cfg),
		log:     log,
	}
}

// Dispatch enqueues one update. Updates the bot does not handle are dropped;
// a full user queue drops the event with a log line rather than blocking the
// poll loop.
func (d *Dispatcher) Dispatch(ctx context.Context, u telegram.Update) {
	ev, ok := EventFromUpdate(u)
	if !ok {
		return
	}
	key := strconv.FormatInt(ev.UserID, 10)
	job := workqueue.JobFunc(func(jctx context.Context) error {
		return d.machine.Handle(jctx, ev)
	})
	if err := d.exec.Submit(ctx, key, job); err != nil {
		d.log.Warn().Err(err).Int64("user", ev.UserID).Msg("dropping update")
	}
}

// Stop drains pending events and shuts the executor down.
func (d *Dispatcher) Stop() { d.exec.Stop() }
