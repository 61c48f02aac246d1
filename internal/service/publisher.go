package service

import "go-inventory-sheets/internal/ws"

// Publisher pushes realtime events to connected clients.
type Publisher interface {
	Publish(ev ws.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(ws.Event) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
