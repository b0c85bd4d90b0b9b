package service

import (
	"context"
	"time"

	"barhub/internal/model"
	"barhub/internal/pkg"
)

// 函数字段式 fake：未设置的方法返回零值

type fakeBarStore struct {
	CreateFn                func(ctx context.Context, bar *model.Bar) error
	FindByIDFn              func(ctx context.Context, id string) (*model.Bar, error)
	FindByIDWithCreatorFn   func(ctx context.Context, id string) (*model.Bar, error)
	FindByNameFn            func(ctx context.Context, name string) (*model.Bar, error)
	UnsuspendFn             func(ctx context.Context, barID string) error
	SweepExpiredFn          func(ctx context.Context) error
	SweepExpiredByCreatorFn func(ctx context.Context, userID string) error
	SweepExpiredInFn        func(ctx context.Context, barIDs []string) error
	ListActiveFn            func(ctx context.Context, cursor *pkg.BarCursor, limit int) ([]model.Bar, error)
	ListAllFn               func(ctx context.Context, status string, before *time.Time, limit int) ([]model.Bar, error)
	ListByCreatorFn         func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Bar, error)
	UpdateFieldsFn          func(ctx context.Context, barID string, updates map[string]any) error
	UpdateWithAuditFn       func(ctx context.Context, barID string, updates map[string]any, action *model.AdminAction) error
	NamesByIDsFn            func(ctx context.Context, ids []string) (map[string]string, error)
}

func (f *fakeBarStore) Create(ctx context.Context, bar *model.Bar) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, bar)
	}
	return nil
}

func (f *fakeBarStore) FindByID(ctx context.Context, id string) (*model.Bar, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeBarStore) FindByIDWithCreator(ctx context.Context, id string) (*model.Bar, error) {
	if f.FindByIDWithCreatorFn != nil {
		return f.FindByIDWithCreatorFn(ctx, id)
	}
	return f.FindByID(ctx, id)
}

func (f *fakeBarStore) FindByName(ctx context.Context, name string) (*model.Bar, error) {
	if f.FindByNameFn != nil {
		return f.FindByNameFn(ctx, name)
	}
	return nil, nil
}

func (f *fakeBarStore) Unsuspend(ctx context.Context, barID string) error {
	if f.UnsuspendFn != nil {
		return f.UnsuspendFn(ctx, barID)
	}
	return nil
}

func (f *fakeBarStore) SweepExpired(ctx context.Context) error {
	if f.SweepExpiredFn != nil {
		return f.SweepExpiredFn(ctx)
	}
	return nil
}

func (f *fakeBarStore) SweepExpiredByCreator(ctx context.Context, userID string) error {
	if f.SweepExpiredByCreatorFn != nil {
		return f.SweepExpiredByCreatorFn(ctx, userID)
	}
	return nil
}

func (f *fakeBarStore) SweepExpiredIn(ctx context.Context, barIDs []string) error {
	if f.SweepExpiredInFn != nil {
		return f.SweepExpiredInFn(ctx, barIDs)
	}
	return nil
}

func (f *fakeBarStore) ListActive(ctx context.Context, cursor *pkg.BarCursor, limit int) ([]model.Bar, error) {
	if f.ListActiveFn != nil {
		return f.ListActiveFn(ctx, cursor, limit)
	}
	return nil, nil
}

func (f *fakeBarStore) ListAll(ctx context.Context, status string, before *time.Time, limit int) ([]model.Bar, error) {
	if f.ListAllFn != nil {
		return f.ListAllFn(ctx, status, before, limit)
	}
	return nil, nil
}

func (f *fakeBarStore) ListByCreator(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Bar, error) {
	if f.ListByCreatorFn != nil {
		return f.ListByCreatorFn(ctx, userID, before, limit)
	}
	return nil, nil
}

func (f *fakeBarStore) UpdateFields(ctx context.Context, barID string, updates map[string]any) error {
	if f.UpdateFieldsFn != nil {
		return f.UpdateFieldsFn(ctx, barID, updates)
	}
	return nil
}

func (f *fakeBarStore) UpdateWithAudit(ctx context.Context, barID string, updates map[string]any, action *model.AdminAction) error {
	if f.UpdateWithAuditFn != nil {
		return f.UpdateWithAuditFn(ctx, barID, updates, action)
	}
	return nil
}

func (f *fakeBarStore) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if f.NamesByIDsFn != nil {
		return f.NamesByIDsFn(ctx, ids)
	}
	return map[string]string{}, nil
}

type fakeMemberStore struct {
	FindFn         func(ctx context.Context, barID, userID string) (*model.BarMember, error)
	JoinFn         func(ctx context.Context, member *model.BarMember) error
	LeaveFn        func(ctx context.Context, member *model.BarMember) error
	UpdateRoleFn   func(ctx context.Context, memberID, role string) error
	TransferFn     func(ctx context.Context, ownerMemberID, targetMemberID string) error
	ListFn         func(ctx context.Context, barID, role string, before *time.Time, limit int) ([]model.BarMember, error)
	MemberBarIDsFn func(ctx context.Context, userID string, barIDs []string) (map[string]bool, error)
	BarIDsOfFn     func(ctx context.Context, userID string) ([]string, error)
	ListByUserFn   func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.BarMember, error)
}

func (f *fakeMemberStore) Find(ctx context.Context, barID, userID string) (*model.BarMember, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, barID, userID)
	}
	return nil, nil
}

func (f *fakeMemberStore) Join(ctx context.Context, member *model.BarMember) error {
	if f.JoinFn != nil {
		return f.JoinFn(ctx, member)
	}
	return nil
}

func (f *fakeMemberStore) Leave(ctx context.Context, member *model.BarMember) error {
	if f.LeaveFn != nil {
		return f.LeaveFn(ctx, member)
	}
	return nil
}

func (f *fakeMemberStore) UpdateRole(ctx context.Context, memberID, role string) error {
	if f.UpdateRoleFn != nil {
		return f.UpdateRoleFn(ctx, memberID, role)
	}
	return nil
}

func (f *fakeMemberStore) Transfer(ctx context.Context, ownerMemberID, targetMemberID string) error {
	if f.TransferFn != nil {
		return f.TransferFn(ctx, ownerMemberID, targetMemberID)
	}
	return nil
}

func (f *fakeMemberStore) List(ctx context.Context, barID, role string, before *time.Time, limit int) ([]model.BarMember, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, barID, role, before, limit)
	}
	return nil, nil
}

func (f *fakeMemberStore) MemberBarIDs(ctx context.Context, userID string, barIDs []string) (map[string]bool, error) {
	if f.MemberBarIDsFn != nil {
		return f.MemberBarIDsFn(ctx, userID, barIDs)
	}
	return map[string]bool{}, nil
}

func (f *fakeMemberStore) BarIDsOf(ctx context.Context, userID string) ([]string, error) {
	if f.BarIDsOfFn != nil {
		return f.BarIDsOfFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeMemberStore) ListByUser(ctx context.Context, userID string, before *time.Time, limit int) ([]model.BarMember, error) {
	if f.ListByUserFn != nil {
		return f.ListByUserFn(ctx, userID, before, limit)
	}
	return nil, nil
}

type fakePostStore struct {
	CreateFn           func(ctx context.Context, post *model.Post) error
	FindByIDFn         func(ctx context.Context, id string) (*model.Post, error)
	FindByIDWithRefsFn func(ctx context.Context, id string) (*model.Post, error)
	ListFn             func(ctx context.Context, barID string, before *time.Time, limit int) ([]model.Post, error)
	ListByAuthorFn     func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Post, error)
	SoftDeleteFn       func(ctx context.Context, postID string, now time.Time) error
	UpdateStatusFn     func(ctx context.Context, postID, status string) error
	IncrementShareFn   func(ctx context.Context, postID string) (int64, error)
}

func (f *fakePostStore) Create(ctx context.Context, post *model.Post) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, post)
	}
	return nil
}

func (f *fakePostStore) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePostStore) FindByIDWithRefs(ctx context.Context, id string) (*model.Post, error) {
	if f.FindByIDWithRefsFn != nil {
		return f.FindByIDWithRefsFn(ctx, id)
	}
	return f.FindByID(ctx, id)
}

func (f *fakePostStore) List(ctx context.Context, barID string, before *time.Time, limit int) ([]model.Post, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, barID, before, limit)
	}
	return nil, nil
}

func (f *fakePostStore) ListByAuthor(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Post, error) {
	if f.ListByAuthorFn != nil {
		return f.ListByAuthorFn(ctx, userID, before, limit)
	}
	return nil, nil
}

func (f *fakePostStore) SoftDelete(ctx context.Context, postID string, now time.Time) error {
	if f.SoftDeleteFn != nil {
		return f.SoftDeleteFn(ctx, postID, now)
	}
	return nil
}

func (f *fakePostStore) UpdateStatus(ctx context.Context, postID, status string) error {
	if f.UpdateStatusFn != nil {
		return f.UpdateStatusFn(ctx, postID, status)
	}
	return nil
}

func (f *fakePostStore) IncrementShare(ctx context.Context, postID string) (int64, error) {
	if f.IncrementShareFn != nil {
		return f.IncrementShareFn(ctx, postID)
	}
	return 0, nil
}

type fakeReplyStore struct {
	CreateFn           func(ctx context.Context, reply *model.Reply) error
	FindByIDFn         func(ctx context.Context, id string) (*model.Reply, error)
	FindByIDWithPostFn func(ctx context.Context, id string) (*model.Reply, error)
	ListTopLevelFn     func(ctx context.Context, postID string, afterFloor int64, limit int) ([]model.Reply, error)
	ListChildrenOfFn   func(ctx context.Context, parentIDs []string) ([]model.Reply, error)
	ListChildrenFn     func(ctx context.Context, parentID string, after *time.Time, limit int) ([]model.Reply, error)
	ListByAuthorFn     func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Reply, error)
	SoftDeleteFn       func(ctx context.Context, reply *model.Reply, now time.Time) error
	UpdateStatusFn     func(ctx context.Context, replyID, status string) error
}

func (f *fakeReplyStore) Create(ctx context.Context, reply *model.Reply) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, reply)
	}
	return nil
}

func (f *fakeReplyStore) FindByID(ctx context.Context, id string) (*model.Reply, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeReplyStore) FindByIDWithPost(ctx context.Context, id string) (*model.Reply, error) {
	if f.FindByIDWithPostFn != nil {
		return f.FindByIDWithPostFn(ctx, id)
	}
	return f.FindByID(ctx, id)
}

func (f *fakeReplyStore) ListTopLevel(ctx context.Context, postID string, afterFloor int64, limit int) ([]model.Reply, error) {
	if f.ListTopLevelFn != nil {
		return f.ListTopLevelFn(ctx, postID, afterFloor, limit)
	}
	return nil, nil
}

func (f *fakeReplyStore) ListChildrenOf(ctx context.Context, parentIDs []string) ([]model.Reply, error) {
	if f.ListChildrenOfFn != nil {
		return f.ListChildrenOfFn(ctx, parentIDs)
	}
	return nil, nil
}

func (f *fakeReplyStore) ListChildren(ctx context.Context, parentID string, after *time.Time, limit int) ([]model.Reply, error) {
	if f.ListChildrenFn != nil {
		return f.ListChildrenFn(ctx, parentID, after, limit)
	}
	return nil, nil
}

func (f *fakeReplyStore) ListByAuthor(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Reply, error) {
	if f.ListByAuthorFn != nil {
		return f.ListByAuthorFn(ctx, userID, before, limit)
	}
	return nil, nil
}

func (f *fakeReplyStore) SoftDelete(ctx context.Context, reply *model.Reply, now time.Time) error {
	if f.SoftDeleteFn != nil {
		return f.SoftDeleteFn(ctx, reply, now)
	}
	return nil
}

func (f *fakeReplyStore) UpdateStatus(ctx context.Context, replyID, status string) error {
	if f.UpdateStatusFn != nil {
		return f.UpdateStatusFn(ctx, replyID, status)
	}
	return nil
}

type fakeLikeStore struct {
	FindFn     func(ctx context.Context, userID, targetType, targetID string) (*model.UserLike, error)
	LikedSetFn func(ctx context.Context, userID, targetType string, targetIDs []string) (map[string]bool, error)
	LikeFn     func(ctx context.Context, like *model.UserLike) (int64, error)
	UnlikeFn   func(ctx context.Context, like *model.UserLike) (int64, error)
}

func (f *fakeLikeStore) Find(ctx context.Context, userID, targetType, targetID string) (*model.UserLike, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, userID, targetType, targetID)
	}
	return nil, nil
}

func (f *fakeLikeStore) LikedSet(ctx context.Context, userID, targetType string, targetIDs []string) (map[string]bool, error) {
	if f.LikedSetFn != nil {
		return f.LikedSetFn(ctx, userID, targetType, targetIDs)
	}
	return map[string]bool{}, nil
}

func (f *fakeLikeStore) Like(ctx context.Context, like *model.UserLike) (int64, error) {
	if f.LikeFn != nil {
		return f.LikeFn(ctx, like)
	}
	return 1, nil
}

func (f *fakeLikeStore) Unlike(ctx context.Context, like *model.UserLike) (int64, error) {
	if f.UnlikeFn != nil {
		return f.UnlikeFn(ctx, like)
	}
	return 0, nil
}

type fakeFavoriteStore struct {
	FindFn       func(ctx context.Context, userID, postID string) (*model.UserFavorite, error)
	FavoriteFn   func(ctx context.Context, fav *model.UserFavorite) (int64, error)
	UnfavoriteFn func(ctx context.Context, fav *model.UserFavorite) (int64, error)
}

func (f *fakeFavoriteStore) Find(ctx context.Context, userID, postID string) (*model.UserFavorite, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, userID, postID)
	}
	return nil, nil
}

func (f *fakeFavoriteStore) Favorite(ctx context.Context, fav *model.UserFavorite) (int64, error) {
	if f.FavoriteFn != nil {
		return f.FavoriteFn(ctx, fav)
	}
	return 1, nil
}

func (f *fakeFavoriteStore) Unfavorite(ctx context.Context, fav *model.UserFavorite) (int64, error) {
	if f.UnfavoriteFn != nil {
		return f.UnfavoriteFn(ctx, fav)
	}
	return 0, nil
}

type fakeUserStore struct {
	CreateFn           func(ctx context.Context, user *model.User) error
	FindByIDFn         func(ctx context.Context, id string) (*model.User, error)
	FindByEmailFn      func(ctx context.Context, email string) (*model.User, error)
	UpdateProfileFn    func(ctx context.Context, userID string, updates map[string]any) error
	BumpTokenVersionFn func(ctx context.Context, userID string) error
	TokenVersionFn     func(ctx context.Context, userID string) (int64, error)
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, user)
	}
	return nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.FindByEmailFn != nil {
		return f.FindByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, userID string, updates map[string]any) error {
	if f.UpdateProfileFn != nil {
		return f.UpdateProfileFn(ctx, userID, updates)
	}
	return nil
}

func (f *fakeUserStore) BumpTokenVersion(ctx context.Context, userID string) error {
	if f.BumpTokenVersionFn != nil {
		return f.BumpTokenVersionFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserStore) TokenVersion(ctx context.Context, userID string) (int64, error) {
	if f.TokenVersionFn != nil {
		return f.TokenVersionFn(ctx, userID)
	}
	return 0, nil
}

type fakeActionStore struct {
	ListFn func(ctx context.Context, before *time.Time, limit int) ([]model.AdminAction, error)
}

func (f *fakeActionStore) List(ctx context.Context, before *time.Time, limit int) ([]model.AdminAction, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, before, limit)
	}
	return nil, nil
}

type fakeTokenCache struct {
	GetFn    func(ctx context.Context, userID string) (int64, bool, error)
	SetFn    func(ctx context.Context, userID string, version int64) error
	DeleteFn func(ctx context.Context, userID string) error
}

func (f *fakeTokenCache) Get(ctx context.Context, userID string) (int64, bool, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, userID)
	}
	return 0, false, nil
}

func (f *fakeTokenCache) Set(ctx context.Context, userID string, version int64) error {
	if f.SetFn != nil {
		return f.SetFn(ctx, userID, version)
	}
	return nil
}

func (f *fakeTokenCache) Delete(ctx context.Context, userID string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, userID)
	}
	return nil
}

type fakeProducer struct {
	messages [][]byte
	err      error
}

func (f *fakeProducer) Send(ctx context.Context, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, value)
	return nil
}
