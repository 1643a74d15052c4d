package usecase

import (
	"context"

	"github.com/fastygo/taskbuddy/domain"
)

// Notifier receives the user-visible outcome of an operation.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, domain.Notification) {}
