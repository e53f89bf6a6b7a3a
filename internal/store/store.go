// Package store owns every persisted record. It exposes typed CRUD
// accessors over a shared generic core; the database remains the sole
// arbiter of concurrent writes (last writer wins, no version checks).
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pixelperfect/internal/database"
)

// ErrNotFound reports an unknown identifier.
var ErrNotFound = errors.New("record not found")

// Store aggregates the per-entity accessors. It is constructed once during
// process initialization and injected into every handler.
type Store struct {
	Users        UserStore
	Projects     ProjectStore
	Services     ServiceStore
	Products     ProductStore
	JobOpenings  JobOpeningStore
	Applications JobApplicationStore
	BlogArticles BlogArticleStore
}

// New wires the per-entity stores onto one gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{
		Users:        UserStore{db: db},
		Projects:     ProjectStore{crud[database.Project]{db: db}},
		Services:     ServiceStore{crud[database.Service]{db: db}},
		Products:     ProductStore{crud[database.Product]{db: db}},
		JobOpenings:  JobOpeningStore{crud[database.JobOpening]{db: db}},
		Applications: JobApplicationStore{crud[database.JobApplication]{db: db}},
		BlogArticles: BlogArticleStore{crud[database.BlogArticle]{db: db}},
	}
}

// crud implements the generic per-entity operations. Listing is always
// ordered by id so responses are stable across calls.
type crud[T any] struct {
	db *gorm.DB
}

func (c crud[T]) All(ctx context.Context) ([]T, error) {
	var records []T
	if err := c.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (c crud[T]) Where(ctx context.Context, query string, args ...any) ([]T, error) {
	var records []T
	if err := c.db.WithContext(ctx).Where(query, args...).Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (c crud[T]) ByID(ctx context.Context, id uint) (*T, error) {
	var record T
	err := c.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return &record, nil
}

func (c crud[T]) Create(ctx context.Context, record *T) error {
	if err := c.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update merges changes onto the record with the given id. Column names use
// the database naming; fields absent from changes stay untouched. The id and
// created_at columns are never part of a change set.
func (c crud[T]) Update(ctx context.Context, id uint, changes map[string]any) (*T, error) {
	record, err := c.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return record, nil
	}
	if err := c.db.WithContext(ctx).Model(record).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	return c.ByID(ctx, id)
}

// Delete hard-removes the record and reports whether a row was removed.
// Deleting an already-gone id is not an error; it returns false.
func (c crud[T]) Delete(ctx context.Context, id uint) (bool, error) {
	var record T
	result := c.db.WithContext(ctx).Delete(&record, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete record: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
