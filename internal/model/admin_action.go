package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AdminActionApprove   = "approve"
	AdminActionReject    = "reject"
	AdminActionSuspend   = "suspend"
	AdminActionUnsuspend = "unsuspend"
	AdminActionBan       = "ban"
	AdminActionClose     = "close"
)

// AdminAction 审计流水，只追加；与对应的状态变更同事务写入
type AdminAction struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	AdminID    string    `gorm:"size:36;not null;index" json:"adminId"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	TargetType string    `gorm:"size:20;not null" json:"targetType"`
	TargetID   string    `gorm:"size:36;not null;index" json:"targetId"`
	Reason     string    `gorm:"type:text" json:"reason"`
	Metadata   string    `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	Admin *User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (a *AdminAction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
