package sku

import (
	"context"
	"errors"
	"time"

	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore implements Store on top of the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) BranchCode(ctx context.Context, branchID uint) (string, error) {
	var branch models.Branch
	err := s.db.WithContext(ctx).Select("code").First(&branch, "id = ?", branchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotExist
	}
	if err != nil {
		return "", err
	}
	return branch.Code, nil
}

func (s *GormStore) CategoryCode(ctx context.Context, categoryID uint) (string, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Select("code").First(&category, "id = ?", categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotExist
	}
	if err != nil {
		return "", err
	}
	return category.Code, nil
}

func (s *GormStore) CountItemsCreatedBetween(ctx context.Context, branchID, categoryID uint, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.WarehouseItem{}).
		Where("branch_id = ? AND category_id = ? AND created_at >= ? AND created_at < ?",
			branchID, categoryID, start, end).
		Count(&count).Error
	return count, err
}

func (s *GormStore) StockIDExists(ctx context.Context, stockID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.WarehouseItem{}).
		Where("stock_id = ?", stockID).
		Count(&count).Error
	return count > 0, err
}
