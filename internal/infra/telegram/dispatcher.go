// Package telegram moves incoming updates off the receive loop.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Dispatcher runs every update on its own goroutine so a slow search or
// download never holds up unrelated chats.
type Dispatcher struct {
	handler UpdateHandler
	wg      conc.WaitGroup
}

func NewDispatcher(handler UpdateHandler) *Dispatcher {
	return &Dispatcher{handler: handler}
}

// Dispatch hands the update to the handler in the background. Handlers are
// detached from ctx cancellation: once started they run to completion.
func (d *Dispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) {
	ctx = context.WithoutCancel(ctx)

	d.wg.Go(func() {
		var catcher panics.Catcher
		catcher.Try(func() {
			d.handler.Handle(ctx, update)
		})

		if r := catcher.Recovered(); r != nil {
			logrus.WithField("update_id", update.UpdateID).
				WithField("panic", r.Value).
				WithField("stack", string(r.Stack)).
				Error("Update handler panicked")
		}
	})
}

// Poll dispatches updates until ctx is done or the channel closes.
func (d *Dispatcher) Poll(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			d.Dispatch(ctx, update)
		}
	}
}

// Wait blocks until every dispatched update has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
