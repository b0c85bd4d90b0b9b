package service

import (
	"context"
	"time"

	"barhub/internal/model"
	"barhub/internal/pkg"
)

// service 依赖的仓储接口；mysql/redis 包的具体仓储实现它们，
// 测试里用同包 fake 替换

type BarStore interface {
	Create(ctx context.Context, bar *model.Bar) error
	FindByID(ctx context.Context, id string) (*model.Bar, error)
	FindByIDWithCreator(ctx context.Context, id string) (*model.Bar, error)
	FindByName(ctx context.Context, name string) (*model.Bar, error)
	Unsuspend(ctx context.Context, barID string) error
	SweepExpired(ctx context.Context) error
	SweepExpiredByCreator(ctx context.Context, userID string) error
	SweepExpiredIn(ctx context.Context, barIDs []string) error
	ListActive(ctx context.Context, cursor *pkg.BarCursor, limit int) ([]model.Bar, error)
	ListAll(ctx context.Context, status string, before *time.Time, limit int) ([]model.Bar, error)
	ListByCreator(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Bar, error)
	UpdateFields(ctx context.Context, barID string, updates map[string]any) error
	UpdateWithAudit(ctx context.Context, barID string, updates map[string]any, action *model.AdminAction) error
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

type MemberStore interface {
	Find(ctx context.Context, barID, userID string) (*model.BarMember, error)
	Join(ctx context.Context, member *model.BarMember) error
	Leave(ctx context.Context, member *model.BarMember) error
	UpdateRole(ctx context.Context, memberID, role string) error
	Transfer(ctx context.Context, ownerMemberID, targetMemberID string) error
	List(ctx context.Context, barID, role string, before *time.Time, limit int) ([]model.BarMember, error)
	MemberBarIDs(ctx context.Context, userID string, barIDs []string) (map[string]bool, error)
	BarIDsOf(ctx context.Context, userID string) ([]string, error)
	ListByUser(ctx context.Context, userID string, before *time.Time, limit int) ([]model.BarMember, error)
}

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindByIDWithRefs(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, barID string, before *time.Time, limit int) ([]model.Post, error)
	ListByAuthor(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Post, error)
	SoftDelete(ctx context.Context, postID string, now time.Time) error
	UpdateStatus(ctx context.Context, postID, status string) error
	IncrementShare(ctx context.Context, postID string) (int64, error)
}

type ReplyStore interface {
	Create(ctx context.Context, reply *model.Reply) error
	FindByID(ctx context.Context, id string) (*model.Reply, error)
	FindByIDWithPost(ctx context.Context, id string) (*model.Reply, error)
	ListTopLevel(ctx context.Context, postID string, afterFloor int64, limit int) ([]model.Reply, error)
	ListChildrenOf(ctx context.Context, parentIDs []string) ([]model.Reply, error)
	ListChildren(ctx context.Context, parentID string, after *time.Time, limit int) ([]model.Reply, error)
	ListByAuthor(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Reply, error)
	SoftDelete(ctx context.Context, reply *model.Reply, now time.Time) error
	UpdateStatus(ctx context.Context, replyID, status string) error
}

type LikeStore interface {
	Find(ctx context.Context, userID, targetType, targetID string) (*model.UserLike, error)
	LikedSet(ctx context.Context, userID, targetType string, targetIDs []string) (map[string]bool, error)
	Like(ctx context.Context, like *model.UserLike) (int64, error)
	Unlike(ctx context.Context, like *model.UserLike) (int64, error)
}

type FavoriteStore interface {
	Find(ctx context.Context, userID, postID string) (*model.UserFavorite, error)
	Favorite(ctx context.Context, fav *model.UserFavorite) (int64, error)
	Unfavorite(ctx context.Context, fav *model.UserFavorite) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]any) error
	BumpTokenVersion(ctx context.Context, userID string) error
	TokenVersion(ctx context.Context, userID string) (int64, error)
}

type ActionStore interface {
	List(ctx context.Context, before *time.Time, limit int) ([]model.AdminAction, error)
}

// TokenVersionCache redis 侧的 token 版本缓存
type TokenVersionCache interface {
	Get(ctx context.Context, userID string) (int64, bool, error)
	Set(ctx context.Context, userID string, version int64) error
	Delete(ctx context.Context, userID string) error
}

// EventProducer 审计事件外发（kafka）；发送失败只记日志，不影响主流程
type EventProducer interface {
	Send(ctx context.Context, key string, value []byte) error
}
