package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wtwr-api/internal/apperr"
	"wtwr-api/internal/auth"
	"wtwr-api/internal/domain"
	"wtwr-api/internal/repository"
)

// ItemService coordinates item operations. Every mutation on an existing
// item follows the same sequence: load, guard ownership where required,
// mutate atomically at the store.
type ItemService interface {
	Create(ctx context.Context, owner string, in CreateItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, actor, id string, upd ItemUpdate) (*domain.Item, error)
	Delete(ctx context.Context, actor, id string) (*domain.Item, error)
	Like(ctx context.Context, actor, id string) (*domain.Item, error)
	Unlike(ctx context.Context, actor, id string) (*domain.Item, error)
}

// CreateItemInput carries the fields accepted when creating an item.
// The owner never comes from here; it is fixed to the caller's identity.
type CreateItemInput struct {
	Name     string
	Weather  domain.Weather
	ImageURL string
}

// ItemUpdate carries the item fields an owner may change. Nil means leave
// the field as is.
type ItemUpdate struct {
	Name     *string
	Weather  *domain.Weather
	ImageURL *string
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) Create(ctx context.Context, owner string, in CreateItemInput) (*domain.Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Weather == "" {
		missing = append(missing, "weather")
	}
	if in.ImageURL == "" {
		missing = append(missing, "imageUrl")
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(missing...)
	}

	if !validNameLength(in.Name) || !domain.ValidWeather(in.Weather) || !isURL(in.ImageURL) {
		return nil, apperr.BadRequest("Invalid data")
	}

	item := &domain.Item{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Weather:  in.Weather,
		ImageURL: in.ImageURL,
		Owner:    owner,
		Likes:    make([]string, 0),
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.items.List(ctx)
}

func (s *itemService) Update(ctx context.Context, actor, id string, upd ItemUpdate) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwner(actor, item.Owner); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if !validNameLength(name) {
			return nil, apperr.BadRequest("Invalid data")
		}
		item.Name = name
	}
	if upd.Weather != nil {
		if !domain.ValidWeather(*upd.Weather) {
			return nil, apperr.BadRequest("Invalid data")
		}
		item.Weather = *upd.Weather
	}
	if upd.ImageURL != nil {
		imageURL := strings.TrimSpace(*upd.ImageURL)
		if !isURL(imageURL) {
			return nil, apperr.BadRequest("Invalid data")
		}
		item.ImageURL = imageURL
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, actor, id string) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwner(actor, item.Owner); err != nil {
		return nil, err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}

// Like records actor's like on the item. Any authenticated caller may like
// any item; liking twice is a no-op.
func (s *itemService) Like(ctx context.Context, actor, id string) (*domain.Item, error) {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.items.AddLike(ctx, id, actor); err != nil {
		return nil, err
	}
	return s.items.GetByID(ctx, id)
}

// Unlike removes actor's like from the item. Removing an absent like is a no-op.
func (s *itemService) Unlike(ctx context.Context, actor, id string) (*domain.Item, error) {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.items.RemoveLike(ctx, id, actor); err != nil {
		return nil, err
	}
	return s.items.GetByID(ctx, id)
}
