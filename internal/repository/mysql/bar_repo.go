package mysql

import (
	"context"
	"errors"
	"time"

	"barhub/internal/model"
	"barhub/internal/pkg"

	"gorm.io/gorm"
)

type BarRepository struct {
	DB *gorm.DB
}

// Create 建吧申请：吧（pending_review, memberCount=1）与吧主成员行同事务落库
func (r *BarRepository) Create(ctx context.Context, bar *model.Bar) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bar).Error; err != nil {
			return err
		}
		member := &model.BarMember{
			BarID:  bar.ID,
			UserID: bar.CreatedByID,
			Role:   model.BarRoleOwner,
		}
		return tx.Create(member).Error
	})
}

func (r *BarRepository) FindByID(ctx context.Context, id string) (*model.Bar, error) {
	var bar model.Bar
	err := r.DB.WithContext(ctx).First(&bar, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bar, nil
}

func (r *BarRepository) FindByIDWithCreator(ctx context.Context, id string) (*model.Bar, error) {
	var bar model.Bar
	err := r.DB.WithContext(ctx).Preload("CreatedBy").First(&bar, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bar, nil
}

func (r *BarRepository) FindByName(ctx context.Context, name string) (*model.Bar, error) {
	var bar model.Bar
	err := r.DB.WithContext(ctx).First(&bar, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bar, nil
}

// Unsuspend 惰性解除停吧。只改仍处于 suspended 的行，天然幂等，无需加锁
func (r *BarRepository) Unsuspend(ctx context.Context, barID string) error {
	return r.DB.WithContext(ctx).Model(&model.Bar{}).
		Where("id = ? AND status = ?", barID, model.BarStatusSuspended).
		Updates(map[string]any{
			"status":        model.BarStatusActive,
			"status_reason": nil,
			"suspend_until": nil,
		}).Error
}

// SweepExpired 列表查询前批量解除到期停吧
func (r *BarRepository) SweepExpired(ctx context.Context) error {
	return r.sweep(r.expiredScope(ctx))
}

func (r *BarRepository) SweepExpiredByCreator(ctx context.Context, userID string) error {
	return r.sweep(r.expiredScope(ctx).Where("created_by = ?", userID))
}

func (r *BarRepository) SweepExpiredIn(ctx context.Context, barIDs []string) error {
	if len(barIDs) == 0 {
		return nil
	}
	return r.sweep(r.expiredScope(ctx).Where("id IN ?", barIDs))
}

func (r *BarRepository) expiredScope(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.Bar{}).
		Where("status = ? AND suspend_until <= ?", model.BarStatusSuspended, time.Now())
}

func (r *BarRepository) sweep(q *gorm.DB) error {
	return q.Updates(map[string]any{
		"status":        model.BarStatusActive,
		"status_reason": nil,
		"suspend_until": nil,
	}).Error
}

// ListActive 首页吧列表：memberCount DESC, createdAt DESC，复合游标
func (r *BarRepository) ListActive(ctx context.Context, cursor *pkg.BarCursor, limit int) ([]model.Bar, error) {
	q := r.DB.WithContext(ctx).Where("status = ?", model.BarStatusActive)
	if cursor != nil {
		q = q.Where("(member_count < ? OR (member_count = ? AND created_at < ?))",
			cursor.MemberCount, cursor.MemberCount, cursor.CreatedAt)
	}
	var bars []model.Bar
	err := q.Order("member_count DESC, created_at DESC").Limit(limit + 1).Find(&bars).Error
	return bars, err
}

// ListAll 管理端吧列表，可按状态过滤
func (r *BarRepository) ListAll(ctx context.Context, status string, before *time.Time, limit int) ([]model.Bar, error) {
	q := r.DB.WithContext(ctx).Preload("CreatedBy")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	var bars []model.Bar
	err := q.Order("created_at DESC").Limit(limit + 1).Find(&bars).Error
	return bars, err
}

func (r *BarRepository) ListByCreator(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Bar, error) {
	q := r.DB.WithContext(ctx).Where("created_by = ?", userID)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	var bars []model.Bar
	err := q.Order("created_at DESC").Limit(limit + 1).Find(&bars).Error
	return bars, err
}

func (r *BarRepository) UpdateFields(ctx context.Context, barID string, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Bar{}).Where("id = ?", barID).Updates(updates).Error
}

// UpdateWithAudit 状态迁移与审计流水的原子写入：一次 Bar 更新 + 一条 AdminAction
func (r *BarRepository) UpdateWithAudit(ctx context.Context, barID string, updates map[string]any, action *model.AdminAction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Bar{}).Where("id = ?", barID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(action).Error
	})
}

// NamesByIDs 审计列表批量回填目标吧名
func (r *BarRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var bars []model.Bar
	if err := r.DB.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&bars).Error; err != nil {
		return nil, err
	}
	for _, b := range bars {
		names[b.ID] = b.Name
	}
	return names, nil
}
