package mysql

import (
	"context"
	"errors"
	"time"

	"barhub/internal/model"

	"gorm.io/gorm"
)

type ReplyRepository struct {
	DB *gorm.DB
}

// Create 发回复。一级回复在同一事务内取 MAX(floor_number)+1 占楼，
// 再更新帖子 replyCount/lastReplyAt；楼中楼只增父回复 childCount。
// 楼层读与插入同事务，保证楼号连续且严格递增。
func (r *ReplyRepository) Create(ctx context.Context, reply *model.Reply) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reply.ParentReplyID == nil {
			var maxFloor int64
			if err := tx.Model(&model.Reply{}).
				Where("post_id = ? AND parent_reply_id IS NULL", reply.PostID).
				Select("COALESCE(MAX(floor_number), 0)").
				Scan(&maxFloor).Error; err != nil {
				return err
			}
			floor := maxFloor + 1
			reply.FloorNumber = &floor
		}

		if err := tx.Create(reply).Error; err != nil {
			return err
		}

		if reply.ParentReplyID == nil {
			if err := tx.Model(&model.Post{}).Where("id = ?", reply.PostID).
				UpdateColumn("reply_count", gorm.Expr("reply_count + 1")).Error; err != nil {
				return err
			}
			return tx.Model(&model.Post{}).Where("id = ?", reply.PostID).
				Update("last_reply_at", reply.CreatedAt).Error
		}
		return tx.Model(&model.Reply{}).Where("id = ?", *reply.ParentReplyID).
			UpdateColumn("child_count", gorm.Expr("child_count + 1")).Error
	})
}

func (r *ReplyRepository) FindByID(ctx context.Context, id string) (*model.Reply, error) {
	var reply model.Reply
	err := r.DB.WithContext(ctx).First(&reply, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *ReplyRepository) FindByIDWithPost(ctx context.Context, id string) (*model.Reply, error) {
	var reply model.Reply
	err := r.DB.WithContext(ctx).Preload("Post").First(&reply, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListTopLevel 一级回复按楼层升序；afterFloor=0 表示第一页
func (r *ReplyRepository) ListTopLevel(ctx context.Context, postID string, afterFloor int64, limit int) ([]model.Reply, error) {
	q := r.DB.WithContext(ctx).Preload("Author").
		Where("post_id = ? AND parent_reply_id IS NULL", postID).
		Where("status = ? AND deleted_at IS NULL", model.PostStatusPublished)
	if afterFloor > 0 {
		q = q.Where("floor_number > ?", afterFloor)
	}
	var replies []model.Reply
	err := q.Order("floor_number ASC").Limit(limit + 1).Find(&replies).Error
	return replies, err
}

// ListChildrenOf 楼中楼预览：一次取出给定父回复的全部已发布子回复（时间升序），
// 分组截断在 service 层做
func (r *ReplyRepository) ListChildrenOf(ctx context.Context, parentIDs []string) ([]model.Reply, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var replies []model.Reply
	err := r.DB.WithContext(ctx).Preload("Author").
		Where("parent_reply_id IN ?", parentIDs).
		Where("status = ? AND deleted_at IS NULL", model.PostStatusPublished).
		Order("created_at ASC").Find(&replies).Error
	return replies, err
}

// ListChildren 楼中楼翻页，时间正序游标
func (r *ReplyRepository) ListChildren(ctx context.Context, parentID string, after *time.Time, limit int) ([]model.Reply, error) {
	q := r.DB.WithContext(ctx).Preload("Author").
		Where("parent_reply_id = ?", parentID).
		Where("status = ? AND deleted_at IS NULL", model.PostStatusPublished)
	if after != nil {
		q = q.Where("created_at > ?", *after)
	}
	var replies []model.Reply
	err := q.Order("created_at ASC").Limit(limit + 1).Find(&replies).Error
	return replies, err
}

func (r *ReplyRepository) ListByAuthor(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Reply, error) {
	q := r.DB.WithContext(ctx).Preload("Post").Preload("Post.Bar").
		Where("author_id = ?", userID)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	var replies []model.Reply
	err := q.Order("created_at DESC").Limit(limit + 1).Find(&replies).Error
	return replies, err
}

// SoftDelete 删回复：级联软删子回复，并回退对应计数
// （一级回复退帖子 replyCount，楼中楼退父回复 childCount）
func (r *ReplyRepository) SoftDelete(ctx context.Context, reply *model.Reply, now time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Reply{}).Where("id = ?", reply.ID).
			Updates(map[string]any{"deleted_at": now, "status": model.PostStatusDeleted}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Reply{}).
			Where("parent_reply_id = ? AND deleted_at IS NULL", reply.ID).
			Updates(map[string]any{"deleted_at": now, "status": model.PostStatusDeleted}).Error; err != nil {
			return err
		}

		if reply.ParentReplyID == nil {
			return tx.Model(&model.Post{}).Where("id = ?", reply.PostID).
				UpdateColumn("reply_count", gorm.Expr("GREATEST(0, reply_count - 1)")).Error
		}
		return tx.Model(&model.Reply{}).Where("id = ?", *reply.ParentReplyID).
			UpdateColumn("child_count", gorm.Expr("GREATEST(0, child_count - 1)")).Error
	})
}

func (r *ReplyRepository) UpdateStatus(ctx context.Context, replyID, status string) error {
	return r.DB.WithContext(ctx).Model(&model.Reply{}).Where("id = ?", replyID).
		Update("status", status).Error
}
