package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pixelperfect/internal/database"
)

// UserStore handles accounts. Users are never updated or listed through the
// API surface, so only the lookups and creation exist.
type UserStore struct {
	db *gorm.DB
}

func (s UserStore) ByID(ctx context.Context, id uint) (*database.User, error) {
	var user database.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s UserStore) ByUsername(ctx context.Context, username string) (*database.User, error) {
	var user database.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s UserStore) Create(ctx context.Context, user *database.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// ProjectStore adds the showcase filters on top of the generic operations.
type ProjectStore struct {
	crud[database.Project]
}

func (s ProjectStore) Featured(ctx context.Context) ([]database.Project, error) {
	return s.Where(ctx, "featured = ?", true)
}

func (s ProjectStore) ByCategory(ctx context.Context, category string) ([]database.Project, error) {
	return s.Where(ctx, "category = ?", category)
}

// ServiceStore has no visibility filter; every service is public.
type ServiceStore struct {
	crud[database.Service]
}

// ProductStore adds the popularity and category filters.
type ProductStore struct {
	crud[database.Product]
}

func (s ProductStore) Popular(ctx context.Context) ([]database.Product, error) {
	return s.Where(ctx, "is_popular = ?", true)
}

func (s ProductStore) ByCategory(ctx context.Context, category string) ([]database.Product, error) {
	return s.Where(ctx, "category = ?", category)
}

// JobOpeningStore adds the public visibility filter.
type JobOpeningStore struct {
	crud[database.JobOpening]
}

func (s JobOpeningStore) Active(ctx context.Context) ([]database.JobOpening, error) {
	return s.Where(ctx, "active = ?", true)
}

// JobApplicationStore supports intake, admin review, and deletion.
// Applications are never updated after submission.
type JobApplicationStore struct {
	crud[database.JobApplication]
}

func (s JobApplicationStore) ByJobID(ctx context.Context, jobID uint) ([]database.JobApplication, error) {
	return s.Where(ctx, "job_id = ?", jobID)
}

// BlogArticleStore adds the public visibility filter.
type BlogArticleStore struct {
	crud[database.BlogArticle]
}

func (s BlogArticleStore) Published(ctx context.Context) ([]database.BlogArticle, error) {
	return s.Where(ctx, "published = ?", true)
}
