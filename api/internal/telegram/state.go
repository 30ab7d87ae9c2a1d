package telegram

import "sync"

// busyChats tracks chats with an evaluation in flight.
type busyChats struct {
	m sync.Map // chatID -> struct{}
}

func (b *busyChats) acquire(chatID int64) bool {
	_, loaded := b.m.LoadOrStore(chatID, struct{}{})
	return !loaded
}

func (b *busyChats) release(chatID int64) { b.m.Delete(chatID) }
