package mysql

import (
	"context"
	"time"

	"barhub/internal/model"

	"gorm.io/gorm"
)

type AdminActionRepository struct {
	DB *gorm.DB
}

func (r *AdminActionRepository) List(ctx context.Context, before *time.Time, limit int) ([]model.AdminAction, error) {
	q := r.DB.WithContext(ctx).Preload("Admin")
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	var actions []model.AdminAction
	err := q.Order("created_at DESC").Limit(limit + 1).Find(&actions).Error
	return actions, err
}
