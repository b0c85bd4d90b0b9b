package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"barhub/internal/model"
	"barhub/internal/pkg"
	"barhub/internal/pkg/errs"
	"barhub/internal/repository/mysql"
)

type AdminService struct {
	bars     BarStore
	actions  ActionStore
	producer EventProducer
}

func NewAdminService(producer EventProducer) *AdminService {
	return &AdminService{
		bars:     &mysql.BarRepository{DB: mysql.DB},
		actions:  &mysql.AdminActionRepository{DB: mysql.DB},
		producer: producer,
	}
}

// transitionSources 各审核动作允许的来源状态；不在表内的迁移一律拒绝
var transitionSources = map[string][]string{
	model.AdminActionApprove:   {model.BarStatusPendingReview},
	model.AdminActionReject:    {model.BarStatusPendingReview},
	model.AdminActionSuspend:   {model.BarStatusActive, model.BarStatusSuspended},
	model.AdminActionUnsuspend: {model.BarStatusSuspended},
	model.AdminActionBan:       {model.BarStatusActive, model.BarStatusSuspended},
	model.AdminActionClose:     {model.BarStatusActive, model.BarStatusSuspended},
}

// CanTransition 吧状态机守卫
func CanTransition(action, from string) bool {
	for _, s := range transitionSources[action] {
		if s == from {
			return true
		}
	}
	return false
}

type AdminBarView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	StatusReason *string    `json:"statusReason"`
	SuspendUntil *time.Time `json:"suspendUntil"`
	MemberCount  int64      `json:"memberCount"`
	CreatedBy    *UserBrief `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type AdminActionView struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	TargetType    string    `json:"targetType"`
	TargetID      string    `json:"targetId"`
	TargetName    string    `json:"targetName"`
	AdminID       string    `json:"adminId"`
	AdminNickname string    `json:"adminNickname"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt"`
}

// getBarWithLazyEval 审核动作前同样先做惰性解停，保证守卫看到的是有效状态
func (s *AdminService) getBarWithLazyEval(ctx context.Context, barID string) (*model.Bar, error) {
	bar, err := s.bars.FindByID(ctx, barID)
	if err != nil {
		return nil, err
	}
	if bar == nil {
		return nil, errs.ErrBarNotFound
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

// transition 执行一次状态迁移：守卫校验后，一次 Bar 更新 + 一条审计流水原子提交，
// 提交成功后 best-effort 外发事件
func (s *AdminService) transition(ctx context.Context, barID, adminID, action string, updates map[string]any, reason, metadata string) error {
	bar, err := s.getBarWithLazyEval(ctx, barID)
	if err != nil {
		return err
	}
	if !CanTransition(action, bar.Status) {
		return errs.Conflictf("cannot %s bar in '%s' status", action, bar.Status)
	}

	if metadata == "" {
		metadata = "{}"
	}
	audit := &model.AdminAction{
		AdminID:    adminID,
		Action:     action,
		TargetType: "bar",
		TargetID:   barID,
		Reason:     reason,
		Metadata:   metadata,
	}
	if err := s.bars.UpdateWithAudit(ctx, barID, updates, audit); err != nil {
		return err
	}

	s.publish(ctx, audit)
	log.Printf("bar %s: barId=%s adminId=%s", action, barID, adminID)
	return nil
}

func (s *AdminService) publish(ctx context.Context, action *model.AdminAction) {
	if s.producer == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"action":     action.Action,
		"targetType": action.TargetType,
		"targetId":   action.TargetID,
		"adminId":    action.AdminID,
		"reason":     action.Reason,
		"eventTime":  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err := s.producer.Send(ctx, action.TargetID, payload); err != nil {
		log.Printf("admin action publish failed: action=%s targetId=%s err=%v", action.Action, action.TargetID, err)
	}
}

func (s *AdminService) ApproveBar(ctx context.Context, barID, adminID string) error {
	now := time.Now()
	return s.transition(ctx, barID, adminID, model.AdminActionApprove, map[string]any{
		"status":        model.BarStatusActive,
		"status_reason": nil,
		"reviewed_by":   adminID,
		"reviewed_at":   now,
	}, "", "")
}

func (s *AdminService) RejectBar(ctx context.Context, barID, adminID, reason string) error {
	now := time.Now()
	return s.transition(ctx, barID, adminID, model.AdminActionReject, map[string]any{
		"status":        model.BarStatusRejected,
		"status_reason": reason,
		"reviewed_by":   adminID,
		"reviewed_at":   now,
	}, reason, "")
}

// SuspendBar durationHours 小时后到期，由读路径惰性解停
func (s *AdminService) SuspendBar(ctx context.Context, barID, adminID, reason string, durationHours int) error {
	suspendUntil := time.Now().Add(time.Duration(durationHours) * time.Hour)
	metadata, _ := json.Marshal(map[string]any{
		"duration":     durationHours,
		"suspendUntil": suspendUntil.UTC().Format(time.RFC3339),
	})
	return s.transition(ctx, barID, adminID, model.AdminActionSuspend, map[string]any{
		"status":        model.BarStatusSuspended,
		"status_reason": reason,
		"suspend_until": suspendUntil,
	}, reason, string(metadata))
}

func (s *AdminService) UnsuspendBar(ctx context.Context, barID, adminID string) error {
	return s.transition(ctx, barID, adminID, model.AdminActionUnsuspend, map[string]any{
		"status":        model.BarStatusActive,
		"status_reason": nil,
		"suspend_until": nil,
	}, "", "")
}

// BanBar 永久封禁，终态不可逆
func (s *AdminService) BanBar(ctx context.Context, barID, adminID, reason string) error {
	return s.transition(ctx, barID, adminID, model.AdminActionBan, map[string]any{
		"status":        model.BarStatusBanned,
		"status_reason": reason,
		"suspend_until": nil,
	}, reason, "")
}

// CloseBar 关闭，终态不可逆
func (s *AdminService) CloseBar(ctx context.Context, barID, adminID, reason string) error {
	return s.transition(ctx, barID, adminID, model.AdminActionClose, map[string]any{
		"status":        model.BarStatusClosed,
		"status_reason": reason,
		"suspend_until": nil,
	}, reason, "")
}

// FindAllBars 管理端吧列表，可按状态过滤，创建时间倒序
func (s *AdminService) FindAllBars(ctx context.Context, status, cursor string, limit int) ([]AdminBarView, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)

	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	bars, err := s.bars.ListAll(ctx, status, before, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(bars) > take
	if hasMore {
		bars = bars[:take]
	}

	items := make([]AdminBarView, len(bars))
	for i, b := range bars {
		items[i] = AdminBarView{
			ID:           b.ID,
			Name:         b.Name,
			Status:       b.Status,
			StatusReason: b.StatusReason,
			SuspendUntil: b.SuspendUntil,
			MemberCount:  b.MemberCount,
			CreatedAt:    b.CreatedAt,
			UpdatedAt:    b.UpdatedAt,
		}
		if b.CreatedBy != nil {
			items[i].CreatedBy = &UserBrief{ID: b.CreatedBy.ID, Nickname: b.CreatedBy.Nickname}
		}
	}

	var next string
	if hasMore && len(bars) > 0 {
		next = pkg.EncodeTimeCursor(bars[len(bars)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}

// FindAllActions 审计流水，批量回填目标吧名
func (s *AdminService) FindAllActions(ctx context.Context, cursor string, limit int) ([]AdminActionView, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)

	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	actions, err := s.actions.List(ctx, before, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(actions) > take
	if hasMore {
		actions = actions[:take]
	}

	seen := map[string]bool{}
	var barIDs []string
	for _, a := range actions {
		if a.TargetType == "bar" && !seen[a.TargetID] {
			seen[a.TargetID] = true
			barIDs = append(barIDs, a.TargetID)
		}
	}
	names, err := s.bars.NamesByIDs(ctx, barIDs)
	if err != nil {
		return nil, "", false, err
	}

	items := make([]AdminActionView, len(actions))
	for i, a := range actions {
		items[i] = AdminActionView{
			ID:         a.ID,
			Action:     a.Action,
			TargetType: a.TargetType,
			TargetID:   a.TargetID,
			TargetName: names[a.TargetID],
			AdminID:    a.AdminID,
			Reason:     a.Reason,
			CreatedAt:  a.CreatedAt,
		}
		if a.Admin != nil {
			items[i].AdminNickname = a.Admin.Nickname
		}
	}

	var next string
	if hasMore && len(actions) > 0 {
		next = pkg.EncodeTimeCursor(actions[len(actions)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}
