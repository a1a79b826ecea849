package repository

import (
	"campus_voice_backend/internal/model"
	"campus_voice_backend/pkg/cache"
	"campus_voice_backend/pkg/logger"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activeCategoriesKey = "categories:active"

type CategoryRepository struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration
}

// NewCategoryRepository builds a repository; store may be nil to disable caching.
func NewCategoryRepository(db *gorm.DB, store cache.Store, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{DB: db, Cache: store, TTL: ttl}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

// ListActive returns active categories ordered by name, read through the cache.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	if r.Cache != nil {
		raw, ok, err := r.Cache.Get(ctx, activeCategoriesKey)
		if err != nil {
			logger.Log.Warn("Category cache read failed", zap.Error(err))
		} else if ok {
			var categories []model.Category
			if err := json.Unmarshal(raw, &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []model.Category
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if raw, err := json.Marshal(categories); err == nil {
			if err := r.Cache.Set(ctx, activeCategoriesKey, raw, r.TTL); err != nil {
				logger.Log.Warn("Category cache write failed", zap.Error(err))
			}
		}
	}
	return categories, nil
}

func (r *CategoryRepository) FindActiveByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Invalidate(ctx context.Context) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, activeCategoriesKey); err != nil {
		logger.Log.Warn("Category cache invalidation failed", zap.Error(err))
	}
}
