package mysql

import (
	"context"
	"errors"
	"time"

	"barhub/internal/model"

	"gorm.io/gorm"
)

type BarMemberRepository struct {
	DB *gorm.DB
}

func (r *BarMemberRepository) Find(ctx context.Context, barID, userID string) (*model.BarMember, error) {
	var m model.BarMember
	err := r.DB.WithContext(ctx).First(&m, "bar_id = ? AND user_id = ?", barID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Join 成员行插入与 memberCount+1 同事务
func (r *BarMemberRepository) Join(ctx context.Context, member *model.BarMember) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Model(&model.Bar{}).Where("id = ?", member.BarID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error
	})
}

// Leave 成员行删除与 memberCount-1 同事务
func (r *BarMemberRepository) Leave(ctx context.Context, member *model.BarMember) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.BarMember{}, "id = ?", member.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Bar{}).Where("id = ?", member.BarID).
			UpdateColumn("member_count", gorm.Expr("GREATEST(0, member_count - 1)")).Error
	})
}

func (r *BarMemberRepository) UpdateRole(ctx context.Context, memberID, role string) error {
	return r.DB.WithContext(ctx).Model(&model.BarMember{}).Where("id = ?", memberID).
		Update("role", role).Error
}

// Transfer 吧主转让：原吧主降为 moderator、目标升为 owner，同一事务内完成，
// 保证任一时刻恰好一个 owner
func (r *BarMemberRepository) Transfer(ctx context.Context, ownerMemberID, targetMemberID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.BarMember{}).Where("id = ?", ownerMemberID).
			Update("role", model.BarRoleModerator).Error; err != nil {
			return err
		}
		return tx.Model(&model.BarMember{}).Where("id = ?", targetMemberID).
			Update("role", model.BarRoleOwner).Error
	})
}

func (r *BarMemberRepository) List(ctx context.Context, barID, role string, before *time.Time, limit int) ([]model.BarMember, error) {
	q := r.DB.WithContext(ctx).Preload("User").Where("bar_id = ?", barID)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if before != nil {
		q = q.Where("joined_at < ?", *before)
	}
	var members []model.BarMember
	err := q.Order("joined_at DESC").Limit(limit + 1).Find(&members).Error
	return members, err
}

// MemberBarIDs 批量判断该用户是否为给定吧的成员
func (r *BarMemberRepository) MemberBarIDs(ctx context.Context, userID string, barIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(barIDs))
	if len(barIDs) == 0 {
		return set, nil
	}
	var rows []model.BarMember
	err := r.DB.WithContext(ctx).Select("bar_id").
		Where("user_id = ? AND bar_id IN ?", userID, barIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, m := range rows {
		set[m.BarID] = true
	}
	return set, nil
}

func (r *BarMemberRepository) BarIDsOf(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&model.BarMember{}).
		Where("user_id = ?", userID).Pluck("bar_id", &ids).Error
	return ids, err
}

// ListByUser 我加入的吧，按加入时间倒序
func (r *BarMemberRepository) ListByUser(ctx context.Context, userID string, before *time.Time, limit int) ([]model.BarMember, error) {
	q := r.DB.WithContext(ctx).Preload("Bar").Where("user_id = ?", userID)
	if before != nil {
		q = q.Where("joined_at < ?", *before)
	}
	var members []model.BarMember
	err := q.Order("joined_at DESC").Limit(limit + 1).Find(&members).Error
	return members, err
}
