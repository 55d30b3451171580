package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/oleksiit/giftrank/pkg/catalog"
)

// ListOpts controls gift listing.
type ListOpts struct {
	Category string
	Limit    int
}

// Store is the catalogue persistence interface. It caches imported
// corpus files; the scoring engine never touches it and only ever sees
// in-memory snapshots produced by ListItems.
type Store interface {
	UpsertItem(ctx context.Context, item *catalog.Item) error
	UpsertItems(ctx context.Context, items []catalog.Item) error
	GetItem(ctx context.Context, id int64) (*catalog.Item, error)
	ListItems(ctx context.Context, opts ListOpts) ([]catalog.Item, error)
	CountItemsByCategory(ctx context.Context) (map[string]int, error)
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertItem(ctx context.Context, item *catalog.Item) error {
	tagsJSON, _ := json.Marshal(item.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gifts (id, title, category, tags, price_min, price_max, stars, days_since_added, reviews, popularity, stock, personalization, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			tags = excluded.tags,
			price_min = excluded.price_min,
			price_max = excluded.price_max,
			stars = excluded.stars,
			days_since_added = excluded.days_since_added,
			reviews = excluded.reviews,
			popularity = excluded.popularity,
			stock = excluded.stock,
			personalization = excluded.personalization,
			imported_at = excluded.imported_at
	`, item.ID, item.Title, item.Category, string(tagsJSON),
		item.PriceMin, item.PriceMax, item.Stars, item.DaysSinceAdded,
		item.Reviews, item.Popularity, item.Stock, item.Personalization,
		item.ImportedAt)
	if err != nil {
		return fmt.Errorf("upsert gift %d: %w", item.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertItems(ctx context.Context, items []catalog.Item) error {
	for i := range items {
		if err := s.UpsertItem(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*catalog.Item, error) {
	var item catalog.Item
	err := s.db.GetContext(ctx, &item, "SELECT * FROM gifts WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get gift %d: %w", id, err)
	}
	json.Unmarshal([]byte(item.TagsJSON), &item.Tags)
	return &item, nil
}

func (s *SQLiteStore) ListItems(ctx context.Context, opts ListOpts) ([]catalog.Item, error) {
	query := "SELECT * FROM gifts WHERE 1=1"
	var args []any

	if opts.Category != "" {
		query += " AND category = ?"
		args = append(args, opts.Category)
	}

	query += " ORDER BY id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var items []catalog.Item
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}

	for i := range items {
		json.Unmarshal([]byte(items[i].TagsJSON), &items[i].Tags)
	}
	return items, nil
}

func (s *SQLiteStore) CountItemsByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT category, COUNT(*) as cnt FROM gifts GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count gifts by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cat string
		var cnt int
		if err := rows.Scan(&cat, &cnt); err != nil {
			return nil, err
		}
		counts[cat] = cnt
	}
	return counts, nil
}
