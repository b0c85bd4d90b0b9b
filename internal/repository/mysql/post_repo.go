package mysql

import (
	"context"
	"errors"
	"time"

	"barhub/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) FindByIDWithRefs(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Preload("Author").Preload("Bar").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List 已发布帖子，时间倒序游标；barID 为空表示全站
func (r *PostRepository) List(ctx context.Context, barID string, before *time.Time, limit int) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).Preload("Author").Preload("Bar").
		Where("status = ? AND deleted_at IS NULL", model.PostStatusPublished)
	if barID != "" {
		q = q.Where("bar_id = ?", barID)
	}
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	var posts []model.Post
	err := q.Order("created_at DESC").Limit(limit + 1).Find(&posts).Error
	return posts, err
}

// ListByAuthor 我的帖子（含已删/隐藏，作者可见自己的全部）
func (r *PostRepository) ListByAuthor(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).Preload("Bar").Where("author_id = ?", userID)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	var posts []model.Post
	err := q.Order("created_at DESC").Limit(limit + 1).Find(&posts).Error
	return posts, err
}

// SoftDelete 删帖：帖子与其全部未删回复同事务软删
func (r *PostRepository) SoftDelete(ctx context.Context, postID string, now time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Reply{}).
			Where("post_id = ? AND deleted_at IS NULL", postID).
			Updates(map[string]any{"deleted_at": now, "status": model.PostStatusDeleted}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("id = ?", postID).
			Updates(map[string]any{"deleted_at": now, "status": model.PostStatusDeleted}).Error
	})
}

func (r *PostRepository) UpdateStatus(ctx context.Context, postID, status string) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		Update("status", status).Error
}

// IncrementShare 转发计数，返回最新值
func (r *PostRepository) IncrementShare(ctx context.Context, postID string) (int64, error) {
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumn("share_count", gorm.Expr("share_count + 1")).Error; err != nil {
		return 0, err
	}
	var post model.Post
	if err := r.DB.WithContext(ctx).Select("id", "share_count").First(&post, "id = ?", postID).Error; err != nil {
		return 0, err
	}
	return post.ShareCount, nil
}
