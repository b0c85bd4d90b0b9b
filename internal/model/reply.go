package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reply struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	PostID   string `gorm:"size:36;not null;index:idx_post_floor" json:"postId"`
	AuthorID string `gorm:"size:36;not null;index" json:"authorId"`
	// 一级回复为 nil；楼中楼回复指向父回复
	ParentReplyID *string `gorm:"size:36;index" json:"parentReplyId"`
	// 楼层号：一级回复按帖子内 MAX+1 递增；楼中楼为 nil
	FloorNumber *int64     `gorm:"index:idx_post_floor" json:"floorNumber"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ContentType string     `gorm:"size:20;not null;default:plaintext" json:"contentType"`
	Status      string     `gorm:"size:20;not null;default:published;index" json:"status"`
	LikeCount   int64      `gorm:"not null;default:0" json:"likeCount"`
	ChildCount  int64      `gorm:"not null;default:0" json:"childCount"`
	DeletedAt   *time.Time `json:"deletedAt"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Post   *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (r *Reply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Reply) IsDeleted() bool {
	return r.DeletedAt != nil || r.Status == PostStatusDeleted
}

// IsTopLevel 是否一级回复（占楼层）
func (r *Reply) IsTopLevel() bool {
	return r.ParentReplyID == nil
}
