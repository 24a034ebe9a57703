package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wtwr-api/internal/apperr"
	"wtwr-api/internal/domain"
	"wtwr-api/internal/repository"
)

const (
	createItemsTable = `
CREATE TABLE IF NOT EXISTS items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	weather TEXT NOT NULL,
	image_url TEXT NOT NULL,
	owner TEXT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`
	createItemLikesTable = `
CREATE TABLE IF NOT EXISTS item_likes (
	item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL REFERENCES users(id),
	PRIMARY KEY (item_id, user_id)
);
`
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createItemLikesTable); err != nil {
		return fmt.Errorf("create item_likes table: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO items (id, name, weather, image_url, owner, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		string(item.Weather),
		item.ImageURL,
		item.Owner,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, weather, image_url, owner, created_at, updated_at
FROM items
WHERE id = ?`,
		id,
	)
	item, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadLikes(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, weather, image_url, owner, created_at, updated_at
FROM items
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	for i := range items {
		if err := r.loadLikes(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	item.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE items
SET name=?, weather=?, image_url=?, updated_at=?
WHERE id=?`,
		item.Name,
		string(item.Weather),
		item.ImageURL,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item rows affected: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Item not found")
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item rows affected: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Item not found")
	}
	return nil
}

// AddLike records userID as liking itemID. Liking an already-liked item is a no-op.
func (r *ItemRepository) AddLike(ctx context.Context, itemID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO item_likes (item_id, user_id)
VALUES (?, ?)`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

// RemoveLike removes userID's like from itemID. Removing an absent like is a no-op.
func (r *ItemRepository) RemoveLike(ctx context.Context, itemID, userID string) error {
	if _, err := r.db.ExecContext(ctx, `
DELETE FROM item_likes WHERE item_id=? AND user_id=?`,
		itemID, userID,
	); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

func (r *ItemRepository) loadLikes(ctx context.Context, item *domain.Item) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id FROM item_likes WHERE item_id=?`,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	item.Likes = make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("scan like: %w", err)
		}
		item.Likes = append(item.Likes, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate likes: %w", err)
	}
	return nil
}

func scanItem(row interface {
	Scan(dest ...any) error
}) (*domain.Item, error) {
	var (
		item    domain.Item
		weather string
	)
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&weather,
		&item.ImageURL,
		&item.Owner,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Item not found")
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	item.Weather = domain.Weather(weather)
	return &item, nil
}
