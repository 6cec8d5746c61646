package telegram_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/angristan/music-download-bot/internal/infra/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type handlerFunc func(ctx context.Context, update tgbotapi.Update)

func (f handlerFunc) Handle(ctx context.Context, update tgbotapi.Update) {
	f(ctx, update)
}

func TestDispatcher_HandlesEveryUpdate(t *testing.T) {
	var handled atomic.Int32
	d := telegram.NewDispatcher(handlerFunc(func(context.Context, tgbotapi.Update) {
		handled.Add(1)
	}))

	for i := 0; i < 20; i++ {
		d.Dispatch(context.Background(), tgbotapi.Update{UpdateID: i})
	}
	d.Wait()

	assert.Equal(t, int32(20), handled.Load())
}

func TestDispatcher_SlowUpdateDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	fastDone := make(chan struct{})

	d := telegram.NewDispatcher(handlerFunc(func(_ context.Context, update tgbotapi.Update) {
		if update.UpdateID == 1 {
			<-release
			return
		}
		close(fastDone)
	}))

	d.Dispatch(context.Background(), tgbotapi.Update{UpdateID: 1})
	d.Dispatch(context.Background(), tgbotapi.Update{UpdateID: 2})

	select {
	case <-fastDone:
	case <-time.After(5 * time.Second):
		t.Fatal("fast update was blocked by the slow one")
	}

	close(release)
	d.Wait()
}

func TestDispatcher_HandlerOutlivesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var sawCancel atomic.Bool

	d := telegram.NewDispatcher(handlerFunc(func(ctx context.Context, _ tgbotapi.Update) {
		close(started)
		time.Sleep(20 * time.Millisecond)
		sawCancel.Store(ctx.Err() != nil)
	}))

	d.Dispatch(ctx, tgbotapi.Update{})
	<-started
	cancel()
	d.Wait()

	assert.False(t, sawCancel.Load())
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	var handled atomic.Int32
	d := telegram.NewDispatcher(handlerFunc(func(_ context.Context, update tgbotapi.Update) {
		if update.UpdateID == 0 {
			panic("boom")
		}
		handled.Add(1)
	}))

	d.Dispatch(context.Background(), tgbotapi.Update{UpdateID: 0})
	d.Dispatch(context.Background(), tgbotapi.Update{UpdateID: 1})

	assert.NotPanics(t, d.Wait)
	assert.Equal(t, int32(1), handled.Load())
}

func TestDispatcher_PollStopsWhenChannelCloses(t *testing.T) {
	var mu sync.Mutex
	var ids []int
	d := telegram.NewDispatcher(handlerFunc(func(_ context.Context, update tgbotapi.Update) {
		mu.Lock()
		ids = append(ids, update.UpdateID)
		mu.Unlock()
	}))

	updates := make(chan tgbotapi.Update, 3)
	updates <- tgbotapi.Update{UpdateID: 1}
	updates <- tgbotapi.Update{UpdateID: 2}
	updates <- tgbotapi.Update{UpdateID: 3}
	close(updates)

	d.Poll(context.Background(), updates)
	d.Wait()

	assert.ElementsMatch(t, []int{1, 2, 3}, ids)
}
