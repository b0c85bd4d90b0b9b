package mysql

import (
	"context"
	"errors"

	"barhub/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func (r *FavoriteRepository) Find(ctx context.Context, userID, postID string) (*model.UserFavorite, error) {
	var fav model.UserFavorite
	err := r.DB.WithContext(ctx).First(&fav, "user_id = ? AND post_id = ?", userID, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// Favorite 收藏行插入与 favoriteCount+1 同事务，返回最新计数
func (r *FavoriteRepository) Favorite(ctx context.Context, fav *model.UserFavorite) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fav).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).Where("id = ?", fav.PostID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + 1")).Error; err != nil {
			return err
		}
		var post model.Post
		if err := tx.Select("id", "favorite_count").First(&post, "id = ?", fav.PostID).Error; err != nil {
			return err
		}
		count = post.FavoriteCount
		return nil
	})
	return count, err
}

func (r *FavoriteRepository) Unfavorite(ctx context.Context, fav *model.UserFavorite) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.UserFavorite{}, "id = ?", fav.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).Where("id = ?", fav.PostID).
			UpdateColumn("favorite_count", gorm.Expr("GREATEST(0, favorite_count - 1)")).Error; err != nil {
			return err
		}
		var post model.Post
		if err := tx.Select("id", "favorite_count").First(&post, "id = ?", fav.PostID).Error; err != nil {
			return err
		}
		count = post.FavoriteCount
		return nil
	})
	return count, err
}
