package mocks

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FakeBot records every outgoing call. Sent messages get increasing ids;
// SendErr and RequestErr, when set, decide per call whether it fails.
type FakeBot struct {
	mu         sync.Mutex
	nextID     int
	Sent       []tgbotapi.Chattable
	Requested  []tgbotapi.Chattable
	SendErr    func(c tgbotapi.Chattable) error
	RequestErr func(c tgbotapi.Chattable) error
}

func (b *FakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Sent = append(b.Sent, c)
	if b.SendErr != nil {
		if err := b.SendErr(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}

	b.nextID++
	return tgbotapi.Message{MessageID: 1000 + b.nextID}, nil
}

func (b *FakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Requested = append(b.Requested, c)
	if b.RequestErr != nil {
		if err := b.RequestErr(c); err != nil {
			return nil, err
		}
	}

	return &tgbotapi.APIResponse{Ok: true}, nil
}
