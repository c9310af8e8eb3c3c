package secondary

import (
	"context"

	"gitlab.com/hirecode-2025.net/internal/domain"
)

type ObjectStore interface {
	// Upload stores obj and returns where it was put
	Upload(ctx context.Context, obj *domain.StoredObject) (*domain.ObjectLocation, error)

	// Fetch returns the text stored under key, or nil if there is none
	Fetch(ctx context.Context, key string) (*string, error)

	// ListKeys lists every key under prefix
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
