package mysql

import (
	"context"
	"errors"

	"barhub/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

func (r *LikeRepository) Find(ctx context.Context, userID, targetType, targetID string) (*model.UserLike, error) {
	var like model.UserLike
	err := r.DB.WithContext(ctx).
		First(&like, "user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// LikedSet 批量回填 isLiked 标记
func (r *LikeRepository) LikedSet(ctx context.Context, userID, targetType string, targetIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return set, nil
	}
	var likes []model.UserLike
	err := r.DB.WithContext(ctx).Select("target_id").
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		set[l.TargetID] = true
	}
	return set, nil
}

// Like 点赞行插入与目标计数+1 同事务，返回最新计数
func (r *LikeRepository) Like(ctx context.Context, like *model.UserLike) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		if err := incrementLikeCount(tx, like.TargetType, like.TargetID, "+ 1"); err != nil {
			return err
		}
		var err error
		count, err = loadLikeCount(tx, like.TargetType, like.TargetID)
		return err
	})
	return count, err
}

// Unlike 点赞行删除与目标计数-1 同事务，返回最新计数
func (r *LikeRepository) Unlike(ctx context.Context, like *model.UserLike) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.UserLike{}, "id = ?", like.ID).Error; err != nil {
			return err
		}
		if err := incrementLikeCount(tx, like.TargetType, like.TargetID, "- 1"); err != nil {
			return err
		}
		var err error
		count, err = loadLikeCount(tx, like.TargetType, like.TargetID)
		return err
	})
	return count, err
}

func incrementLikeCount(tx *gorm.DB, targetType, targetID, delta string) error {
	expr := gorm.Expr("GREATEST(0, like_count " + delta + ")")
	if targetType == model.LikeTargetPost {
		return tx.Model(&model.Post{}).Where("id = ?", targetID).
			UpdateColumn("like_count", expr).Error
	}
	return tx.Model(&model.Reply{}).Where("id = ?", targetID).
		UpdateColumn("like_count", expr).Error
}

func loadLikeCount(tx *gorm.DB, targetType, targetID string) (int64, error) {
	if targetType == model.LikeTargetPost {
		var post model.Post
		if err := tx.Select("id", "like_count").First(&post, "id = ?", targetID).Error; err != nil {
			return 0, err
		}
		return post.LikeCount, nil
	}
	var reply model.Reply
	if err := tx.Select("id", "like_count").First(&reply, "id = ?", targetID).Error; err != nil {
		return 0, err
	}
	return reply.LikeCount, nil
}
