package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"user-directory/app/server/models"
)

var _ AccountStore = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *GormStore) FindAll(ctx context.Context, limit int) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *GormStore) Create(ctx context.Context, account *models.Account) error {
	return s.db.WithContext(ctx).Create(account).Error
}

func (s *GormStore) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Account, error) {
	if len(fields) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return s.FindByID(ctx, id)
}

func (s *GormStore) DeleteExceptUsername(ctx context.Context, id uint, protected string) (int64, error) {
	// 保护条件直接写进删除语句，针对持久化记录求值，避免用别的 id 绕过
	result := s.db.WithContext(ctx).Where("id = ? AND username <> ?", id, protected).Delete(&models.Account{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
