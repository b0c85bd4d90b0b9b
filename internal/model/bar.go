package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 吧状态机：pending_review -> {active, rejected}；active <-> suspended；
// active/suspended -> {permanently_banned, closed}。后三者为终态，吧不做物理删除。
const (
	BarStatusPendingReview = "pending_review"
	BarStatusActive        = "active"
	BarStatusSuspended     = "suspended"
	BarStatusRejected      = "rejected"
	BarStatusClosed        = "closed"
	BarStatusBanned        = "permanently_banned"
)

const (
	BarRoleMember    = "member"
	BarRoleModerator = "moderator"
	BarRoleOwner     = "owner"
)

type Bar struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	AvatarURL    string     `gorm:"size:500" json:"avatarUrl"`
	Rules        string     `gorm:"type:text" json:"rules"`
	Category     string     `gorm:"size:100" json:"category"`
	Status       string     `gorm:"size:20;not null;default:pending_review;index" json:"status"`
	StatusReason *string    `gorm:"type:text" json:"statusReason"`
	SuspendUntil *time.Time `json:"suspendUntil"`
	// 冗余计数，入退吧事务内增减维护，不做聚合重算
	MemberCount  int64      `gorm:"not null;default:0" json:"memberCount"`
	CreatedByID  string     `gorm:"column:created_by;size:36;not null;index" json:"createdById"`
	ReviewedByID *string    `gorm:"column:reviewed_by;size:36" json:"reviewedById"`
	ReviewedAt   *time.Time `json:"reviewedAt"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (b *Bar) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Manageable 吧当前是否可被编辑/发帖等操作（active 或 suspended）
func (b *Bar) Manageable() bool {
	return b.Status == BarStatusActive || b.Status == BarStatusSuspended
}

// SuspensionExpired 停吧是否已到期（惰性解除的判定条件）
func (b *Bar) SuspensionExpired(now time.Time) bool {
	return b.Status == BarStatusSuspended && b.SuspendUntil != nil && !b.SuspendUntil.After(now)
}

type BarMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	BarID     string    `gorm:"size:36;not null;index;uniqueIndex:uk_bar_user" json:"barId"`
	UserID    string    `gorm:"size:36;not null;index;uniqueIndex:uk_bar_user" json:"userId"`
	Role      string    `gorm:"size:20;not null;default:member" json:"role"`
	JoinedAt  time.Time `gorm:"autoCreateTime;index" json:"joinedAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Bar  *Bar  `gorm:"foreignKey:BarID" json:"bar,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *BarMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsStaff 吧务（owner/moderator）
func (m *BarMember) IsStaff() bool {
	return m.Role == BarRoleOwner || m.Role == BarRoleModerator
}
