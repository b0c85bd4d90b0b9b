package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"barhub/internal/model"
	"barhub/internal/pkg"
	"barhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testIssuer() *pkg.TokenIssuer {
	return pkg.NewTokenIssuer("test-secret", time.Hour)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and issues token", func(t *testing.T) {
		var created *model.User
		users := &fakeUserStore{
			CreateFn: func(ctx context.Context, user *model.User) error {
				user.ID = "u1"
				created = user
				return nil
			},
		}
		svc := &UserService{users: users, tokens: &fakeTokenCache{}, issuer: testIssuer()}

		result, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "password123", Nickname: "alice"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "u1", result.User.ID)
		assert.Equal(t, model.RoleUser, created.Role)

		// 密码必须是 bcrypt 散列，不能存明文
		assert.NotEqual(t, "password123", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
	})

	t.Run("email taken", func(t *testing.T) {
		users := &fakeUserStore{
			FindByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
				return &model.User{ID: "u1", Email: email}, nil
			},
		}
		svc := &UserService{users: users, tokens: &fakeTokenCache{}, issuer: testIssuer()}

		_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "password123", Nickname: "alice"})
		assert.ErrorIs(t, err, errs.ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	stored := &model.User{ID: "u1", Email: "a@b.com", PasswordHash: string(hash), Role: model.RoleUser}

	users := &fakeUserStore{
		FindByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := &UserService{users: users, tokens: &fakeTokenCache{}, issuer: testIssuer()}

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		claims, err := testIssuer().Parse(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "wrong"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email gets same error", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Email: "nobody@b.com", Password: "whatever"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)

	bumped := false
	cacheCleared := false
	users := &fakeUserStore{
		FindByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, PasswordHash: string(hash)}, nil
		},
		BumpTokenVersionFn: func(ctx context.Context, userID string) error {
			bumped = true
			return nil
		},
	}
	tokens := &fakeTokenCache{
		DeleteFn: func(ctx context.Context, userID string) error {
			cacheCleared = true
			return nil
		},
	}
	svc := &UserService{users: users, tokens: tokens, issuer: testIssuer()}

	t.Run("bumps token version and clears cache", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "u1", ChangePasswordInput{OldPassword: "old-password", NewPassword: "new-password-1"})
		require.NoError(t, err)
		assert.True(t, bumped)
		assert.True(t, cacheCleared)
	})

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "u1", ChangePasswordInput{OldPassword: "nope", NewPassword: "new-password-1"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestUserService_VerifyTokenVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		tokens := &fakeTokenCache{
			GetFn: func(ctx context.Context, userID string) (int64, bool, error) {
				return 3, true, nil
			},
		}
		svc := &UserService{users: &fakeUserStore{}, tokens: tokens, issuer: testIssuer()}

		ok, err := svc.VerifyTokenVersion(ctx, "u1", 3)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.VerifyTokenVersion(ctx, "u1", 2)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cache miss backfills from db", func(t *testing.T) {
		var cached int64 = -1
		users := &fakeUserStore{
			TokenVersionFn: func(ctx context.Context, userID string) (int64, error) {
				return 5, nil
			},
		}
		tokens := &fakeTokenCache{
			SetFn: func(ctx context.Context, userID string, version int64) error {
				cached = version
				return nil
			},
		}
		svc := &UserService{users: users, tokens: tokens, issuer: testIssuer()}

		ok, err := svc.VerifyTokenVersion(ctx, "u1", 5)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.EqualValues(t, 5, cached)
	})
}

func TestUserService_MyPosts_RedactsDeleted(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	posts := &fakePostStore{
		ListByAuthorFn: func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Post, error) {
			return []model.Post{
				{ID: "p1", Title: "visible", Status: model.PostStatusPublished, CreatedAt: now},
				{ID: "p2", Title: "secret", Status: model.PostStatusDeleted, DeletedAt: &now, CreatedAt: now.Add(-time.Minute)},
			}, nil
		},
	}
	svc := &UserService{users: &fakeUserStore{}, posts: posts, tokens: &fakeTokenCache{}, issuer: testIssuer()}

	items, _, hasMore, err := svc.MyPosts(ctx, "u1", "", 20)
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, items, 2)
	assert.Equal(t, "visible", items[0].Title)
	assert.Equal(t, "帖子已删除", items[1].Title)
}

func TestUserService_MyReplies_TruncatesLongContent(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("长", 150)
	replies := &fakeReplyStore{
		ListByAuthorFn: func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.Reply, error) {
			return []model.Reply{
				{ID: "r1", PostID: "p1", Content: long, Status: model.PostStatusPublished, CreatedAt: time.Now(),
					Post: &model.Post{ID: "p1", Title: "hello", Bar: &model.Bar{Name: "golang"}}},
				{ID: "r2", PostID: "p1", Content: "short", Status: model.PostStatusPublished, CreatedAt: time.Now()},
			}, nil
		},
	}
	svc := &UserService{users: &fakeUserStore{}, replies: replies, tokens: &fakeTokenCache{}, issuer: testIssuer()}

	items, _, _, err := svc.MyReplies(ctx, "u1", "", 20)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, strings.Repeat("长", 100)+"...", items[0].Content)
	assert.Equal(t, "hello", items[0].PostTitle)
	assert.Equal(t, "golang", items[0].BarName)
	assert.Equal(t, "short", items[1].Content)
}

func TestUserService_MyBars_SweepsBeforeListing(t *testing.T) {
	ctx := context.Background()
	var sweptIDs []string
	members := &fakeMemberStore{
		BarIDsOfFn: func(ctx context.Context, userID string) ([]string, error) {
			return []string{"b1", "b2"}, nil
		},
		ListByUserFn: func(ctx context.Context, userID string, before *time.Time, limit int) ([]model.BarMember, error) {
			return []model.BarMember{
				{BarID: "b1", Role: model.BarRoleOwner, JoinedAt: time.Now(),
					Bar: &model.Bar{ID: "b1", Name: "golang", Status: model.BarStatusActive, MemberCount: 10}},
			}, nil
		},
	}
	bars := &fakeBarStore{
		SweepExpiredInFn: func(ctx context.Context, barIDs []string) error {
			sweptIDs = barIDs
			return nil
		},
	}
	svc := &UserService{users: &fakeUserStore{}, bars: bars, members: members, tokens: &fakeTokenCache{}, issuer: testIssuer()}

	items, _, _, err := svc.MyBars(ctx, "u1", "", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, sweptIDs)
	require.Len(t, items, 1)
	assert.Equal(t, "golang", items[0].Name)
	assert.Equal(t, model.BarRoleOwner, items[0].Role)
}
