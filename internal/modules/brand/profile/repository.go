package profile

import (
	"context"
	"errors"

	"github.com/brandhub/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists business profiles. FindByID returns (nil, nil) for a
// missing id; FindAll orders oldest first.
type Repository interface {
	Upsert(ctx context.Context, p *models.BusinessProfile) error
	FindByID(ctx context.Context, id string) (*models.BusinessProfile, error)
	FindAll(ctx context.Context) ([]models.BusinessProfile, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Upsert(ctx context.Context, p *models.BusinessProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(p).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*models.BusinessProfile, error) {
	var p models.BusinessProfile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]models.BusinessProfile, error) {
	var items []models.BusinessProfile
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *gormRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.BusinessProfile{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
