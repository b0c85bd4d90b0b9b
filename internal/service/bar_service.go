package service

import (
	"context"
	"log"
	"time"

	"barhub/internal/model"
	"barhub/internal/pkg"
	"barhub/internal/pkg/errs"
	"barhub/internal/repository/mysql"
)

type BarService struct {
	bars    BarStore
	members MemberStore
}

func NewBarService() *BarService {
	return &BarService{
		bars:    &mysql.BarRepository{DB: mysql.DB},
		members: &mysql.BarMemberRepository{DB: mysql.DB},
	}
}

type CreateBarInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
	Rules       string `json:"rules"`
	AvatarURL   string `json:"avatarUrl"`
}

type UpdateBarInput struct {
	Description *string `json:"description"`
	Rules       *string `json:"rules"`
	AvatarURL   *string `json:"avatarUrl"`
	Category    *string `json:"category"`
}

type BarSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AvatarURL   string    `json:"avatarUrl"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	MemberCount int64     `json:"memberCount"`
	IsMember    *bool     `json:"isMember"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserBrief struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

type BarDetail struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	AvatarURL    string     `json:"avatarUrl"`
	Rules        string     `json:"rules"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	StatusReason *string    `json:"statusReason"`
	SuspendUntil *time.Time `json:"suspendUntil"`
	MemberCount  int64      `json:"memberCount"`
	IsMember     *bool      `json:"isMember"`
	MemberRole   *string    `json:"memberRole"`
	CreatedBy    *UserBrief `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type BarMemberView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// resolveBar 读路径上的惰性解停：到期的 suspended 吧先翻回 active 再返回。
// 落库是幂等的 best-effort 写，两个并发请求重复执行也无害
func (s *BarService) resolveBar(ctx context.Context, barID string) (*model.Bar, error) {
	bar, err := s.bars.FindByID(ctx, barID)
	if err != nil || bar == nil {
		return bar, err
	}
	if bar.SuspensionExpired(time.Now()) {
		if err := s.bars.Unsuspend(ctx, barID); err != nil {
			log.Printf("bar auto-unsuspend failed: barId=%s err=%v", barID, err)
		}
		bar.Status = model.BarStatusActive
		bar.StatusReason = nil
		bar.SuspendUntil = nil
	}
	return bar, nil
}

func (s *BarService) checkManageable(ctx context.Context, barID string) (*model.Bar, error) {
	bar, err := s.bars.FindByID(ctx, barID)
	if err != nil {
		return nil, err
	}
	if bar == nil {
		return nil, errs.ErrBarNotFound
	}
	if !bar.Manageable() {
		return nil, errs.ErrBarNotManageable
	}
	return bar, nil
}

// Create 建吧申请：重名冲突检查后，吧与吧主成员行原子落库，初始状态 pending_review
func (s *BarService) Create(ctx context.Context, in CreateBarInput, userID string) (*model.Bar, error) {
	existing, err := s.bars.FindByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrBarNameDuplicate
	}

	bar := &model.Bar{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Rules:       in.Rules,
		AvatarURL:   in.AvatarURL,
		Status:      model.BarStatusPendingReview,
		CreatedByID: userID,
		MemberCount: 1,
	}
	if err := s.bars.Create(ctx, bar); err != nil {
		return nil, err
	}

	log.Printf("bar creation submitted: barId=%s creatorId=%s", bar.ID, userID)
	return bar, nil
}

// FindAll 吧广场：仅 active，成员数降序；进场前先批量解停到期的吧
func (s *BarService) FindAll(ctx context.Context, cursor string, limit int, viewerID string) ([]BarSummary, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)

	if err := s.bars.SweepExpired(ctx); err != nil {
		return nil, "", false, err
	}

	var cur *pkg.BarCursor
	if bc, ok := pkg.DecodeBarCursor(cursor); ok {
		cur = &bc
	}

	bars, err := s.bars.ListActive(ctx, cur, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(bars) > take
	if hasMore {
		bars = bars[:take]
	}

	var memberSet map[string]bool
	if viewerID != "" && len(bars) > 0 {
		ids := make([]string, len(bars))
		for i, b := range bars {
			ids[i] = b.ID
		}
		memberSet, err = s.members.MemberBarIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, "", false, err
		}
	}

	items := make([]BarSummary, len(bars))
	for i, b := range bars {
		items[i] = BarSummary{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			AvatarURL:   b.AvatarURL,
			Category:    b.Category,
			Status:      b.Status,
			MemberCount: b.MemberCount,
			CreatedAt:   b.CreatedAt,
			UpdatedAt:   b.UpdatedAt,
		}
		if memberSet != nil {
			isMember := memberSet[b.ID]
			items[i].IsMember = &isMember
		}
	}

	var next string
	if hasMore && len(bars) > 0 {
		last := bars[len(bars)-1]
		next = pkg.EncodeBarCursor(last.MemberCount, last.CreatedAt)
	}
	return items, next, hasMore, nil
}

// FindOne 吧详情。pending_review/rejected 仅创建者可见，其余人一律 404
func (s *BarService) FindOne(ctx context.Context, barID, viewerID string) (*BarDetail, error) {
	bar, err := s.resolveBar(ctx, barID)
	if err != nil {
		return nil, err
	}
	if bar == nil {
		return nil, errs.ErrBarNotFound
	}
	if (bar.Status == model.BarStatusPendingReview || bar.Status == model.BarStatusRejected) &&
		bar.CreatedByID != viewerID {
		return nil, errs.ErrBarNotFound
	}

	withCreator, err := s.bars.FindByIDWithCreator(ctx, barID)
	if err != nil {
		return nil, err
	}
	if withCreator == nil {
		return nil, errs.ErrBarNotFound
	}

	detail := &BarDetail{
		ID:           withCreator.ID,
		Name:         withCreator.Name,
		Description:  withCreator.Description,
		AvatarURL:    withCreator.AvatarURL,
		Rules:        withCreator.Rules,
		Category:     withCreator.Category,
		Status:       bar.Status,
		StatusReason: bar.StatusReason,
		SuspendUntil: bar.SuspendUntil,
		MemberCount:  withCreator.MemberCount,
		CreatedAt:    withCreator.CreatedAt,
		UpdatedAt:    withCreator.UpdatedAt,
	}
	if withCreator.CreatedBy != nil {
		detail.CreatedBy = &UserBrief{ID: withCreator.CreatedBy.ID, Nickname: withCreator.CreatedBy.Nickname}
	}

	if viewerID != "" {
		membership, err := s.members.Find(ctx, barID, viewerID)
		if err != nil {
			return nil, err
		}
		isMember := membership != nil
		detail.IsMember = &isMember
		if membership != nil {
			detail.MemberRole = &membership.Role
		}
	}
	return detail, nil
}

// Join 入吧：吧须为 active/suspended，且尚未加入
func (s *BarService) Join(ctx context.Context, barID, userID string) (*model.BarMember, error) {
	bar, err := s.resolveBar(ctx, barID)
	if err != nil {
		return nil, err
	}
	if bar == nil || bar.Status == model.BarStatusPendingReview || bar.Status == model.BarStatusRejected {
		return nil, errs.ErrBarNotFound
	}
	if !bar.Manageable() {
		return nil, errs.ErrBarNotJoinable
	}

	existing, err := s.members.Find(ctx, barID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrAlreadyMember
	}

	member := &model.BarMember{BarID: barID, UserID: userID, Role: model.BarRoleMember}
	if err := s.members.Join(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Leave 退吧：吧主必须先转让
func (s *BarService) Leave(ctx context.Context, barID, userID string) error {
	bar, err := s.resolveBar(ctx, barID)
	if err != nil {
		return err
	}
	if bar == nil || bar.Status == model.BarStatusPendingReview || bar.Status == model.BarStatusRejected {
		return errs.ErrBarNotFound
	}
	if !bar.Manageable() {
		return errs.Conflict("bar status does not allow leaving")
	}

	membership, err := s.members.Find(ctx, barID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return errs.ErrNotMember
	}
	if membership.Role == model.BarRoleOwner {
		return errs.ErrOwnerCannotLeave
	}

	return s.members.Leave(ctx, membership)
}

// Update 吧资料编辑：吧务可改 description/rules/avatar，category 仅吧主
func (s *BarService) Update(ctx context.Context, barID string, in UpdateBarInput, userID string) (*model.Bar, error) {
	if _, err := s.checkManageable(ctx, barID); err != nil {
		return nil, err
	}

	membership, err := s.members.Find(ctx, barID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || !membership.IsStaff() {
		return nil, errs.Forbidden("no permission to edit this bar")
	}
	if membership.Role == model.BarRoleModerator && in.Category != nil {
		return nil, errs.Forbidden("moderators cannot change bar category")
	}

	updates := map[string]any{}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Rules != nil {
		updates["rules"] = *in.Rules
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if len(updates) > 0 {
		if err := s.bars.UpdateFields(ctx, barID, updates); err != nil {
			return nil, err
		}
	}
	return s.bars.FindByID(ctx, barID)
}

// GetMembers 成员列表，吧务可见；joinedAt 倒序时间游标，可按角色过滤
func (s *BarService) GetMembers(ctx context.Context, barID, callerID, cursor string, limit int, role string) ([]BarMemberView, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)

	if _, err := s.checkManageable(ctx, barID); err != nil {
		return nil, "", false, err
	}

	membership, err := s.members.Find(ctx, barID, callerID)
	if err != nil {
		return nil, "", false, err
	}
	if membership == nil || !membership.IsStaff() {
		return nil, "", false, errs.Forbidden("no permission to view member list")
	}

	if role != "" && role != model.BarRoleMember && role != model.BarRoleModerator && role != model.BarRoleOwner {
		return nil, "", false, errs.BadRequest("invalid role filter")
	}

	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	members, err := s.members.List(ctx, barID, role, before, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(members) > take
	if hasMore {
		members = members[:take]
	}

	items := make([]BarMemberView, len(members))
	for i, m := range members {
		items[i] = BarMemberView{ID: m.ID, UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt}
		if m.User != nil {
			items[i].Nickname = m.User.Nickname
			items[i].AvatarURL = m.User.AvatarURL
		}
	}

	var next string
	if hasMore && len(members) > 0 {
		next = pkg.EncodeTimeCursor(members[len(members)-1].JoinedAt)
	}
	return items, next, hasMore, nil
}

// ChangeRole 吧主调整成员角色；吧主自身角色走 TransferOwnership
func (s *BarService) ChangeRole(ctx context.Context, barID, targetUserID, role, callerID string) (*model.BarMember, error) {
	if role != model.BarRoleMember && role != model.BarRoleModerator {
		return nil, errs.BadRequest("role must be member or moderator")
	}

	if _, err := s.checkManageable(ctx, barID); err != nil {
		return nil, err
	}

	caller, err := s.members.Find(ctx, barID, callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil || caller.Role != model.BarRoleOwner {
		return nil, errs.ErrNotOwner
	}

	target, err := s.members.Find(ctx, barID, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errs.ErrTargetNotMember
	}
	if target.Role == model.BarRoleOwner {
		return nil, errs.ErrTargetIsOwner
	}

	if err := s.members.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, err
	}
	target.Role = role
	log.Printf("member role changed: barId=%s targetUserId=%s newRole=%s byUserId=%s", barID, targetUserID, role, callerID)
	return target, nil
}

// TransferOwnership 吧主转让：降旧升新同事务，保持全程恰好一个 owner
func (s *BarService) TransferOwnership(ctx context.Context, barID, targetUserID, callerID string) (*BarMemberView, error) {
	if _, err := s.checkManageable(ctx, barID); err != nil {
		return nil, err
	}

	caller, err := s.members.Find(ctx, barID, callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil || caller.Role != model.BarRoleOwner {
		return nil, errs.ErrNotOwner
	}

	target, err := s.members.Find(ctx, barID, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errs.ErrTargetNotMember
	}
	if target.Role == model.BarRoleOwner {
		return nil, errs.ErrAlreadyOwner
	}

	if err := s.members.Transfer(ctx, caller.ID, target.ID); err != nil {
		return nil, err
	}
	log.Printf("bar ownership transferred: barId=%s from=%s to=%s", barID, callerID, targetUserID)
	return &BarMemberView{ID: target.ID, UserID: targetUserID, Role: model.BarRoleOwner, JoinedAt: target.JoinedAt}, nil
}
