package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContentTypePlaintext = "plaintext"
	ContentTypeMarkdown  = "markdown"
)

const (
	PostStatusPublished   = "published"
	PostStatusHidden      = "hidden"
	PostStatusDeleted     = "deleted"
	PostStatusUnderReview = "under_review"
)

type Post struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	BarID       string     `gorm:"size:36;not null;index:idx_bar_created" json:"barId"`
	AuthorID    string     `gorm:"size:36;not null;index" json:"authorId"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	ContentType string     `gorm:"size:20;not null;default:plaintext" json:"contentType"`
	Status      string     `gorm:"size:20;not null;default:published;index" json:"status"`
	// replyCount 只统计一级回复；子回复走父回复的 childCount
	ReplyCount    int64      `gorm:"not null;default:0" json:"replyCount"`
	LikeCount     int64      `gorm:"not null;default:0" json:"likeCount"`
	FavoriteCount int64      `gorm:"not null;default:0" json:"favoriteCount"`
	ShareCount    int64      `gorm:"not null;default:0" json:"shareCount"`
	LastReplyAt   *time.Time `json:"lastReplyAt"`
	DeletedAt     *time.Time `json:"deletedAt"`
	CreatedAt     time.Time  `gorm:"index:idx_bar_created" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Bar    *Bar  `gorm:"foreignKey:BarID" json:"bar,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil || p.Status == PostStatusDeleted
}
