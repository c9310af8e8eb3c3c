package secondary

import (
	"context"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

type Notifier interface {
	Name() string
	Notify(ctx context.Context, n *domain.Notification) error
}
