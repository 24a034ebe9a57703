package repository

import (
	"context"

	"wtwr-api/internal/domain"
)

// ItemRepository defines persistence operations for Item entities.
// AddLike and RemoveLike are atomic set mutations: adding a present
// identity or removing an absent one is a no-op.
type ItemRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, itemID, userID string) error
	RemoveLike(ctx context.Context, itemID, userID string) error
}
