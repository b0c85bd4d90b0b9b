package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LikeTargetPost  = "post"
	LikeTargetReply = "reply"
)

// UserLike 点赞关系，(user_id, target_type, target_id) 唯一，存在即已赞
type UserLike struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:uk_user_target" json:"userId"`
	TargetType string    `gorm:"size:20;not null;uniqueIndex:uk_user_target" json:"targetType"`
	TargetID   string    `gorm:"size:36;not null;uniqueIndex:uk_user_target;index" json:"targetId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (l *UserLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (UserLike) TableName() string { return "user_likes" }

// UserFavorite 收藏关系，(user_id, post_id) 唯一
type UserFavorite struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:uk_user_post" json:"userId"`
	PostID    string    `gorm:"size:36;not null;uniqueIndex:uk_user_post;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *UserFavorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (UserFavorite) TableName() string { return "user_favorites" }
