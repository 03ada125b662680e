package campaign

import (
	"context"
	"errors"

	"github.com/brandhub/core/internal/database"
	"github.com/brandhub/core/internal/models"
	"gorm.io/gorm"
)

// Repository stores finished campaigns. Campaigns are written once and never
// updated.
type Repository interface {
	Create(ctx context.Context, c *models.Campaign) error
	FindByID(ctx context.Context, id string) (*models.Campaign, error)
	ListByProfile(ctx context.Context, profileID string) ([]models.Campaign, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, c *models.Campaign) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*models.Campaign, error) {
	var c models.Campaign
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) ListByProfile(ctx context.Context, profileID string) ([]models.Campaign, error) {
	items := []models.Campaign{}
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *gormRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Campaign{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
