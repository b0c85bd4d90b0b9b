package service

import (
	"context"
	"testing"

	"barhub/internal/model"
	"barhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_Like(t *testing.T) {
	ctx := context.Background()
	post := &model.Post{ID: "p1", BarID: "b1", AuthorID: "op", Status: model.PostStatusPublished}

	newSvc := func(likes *fakeLikeStore) *LikeService {
		return &LikeService{
			likes:   likes,
			posts:   postStoreWith(post),
			replies: &fakeReplyStore{},
			members: &fakeMemberStore{},
		}
	}

	t.Run("first like succeeds", func(t *testing.T) {
		var recorded *model.UserLike
		likes := &fakeLikeStore{
			LikeFn: func(ctx context.Context, like *model.UserLike) (int64, error) {
				recorded = like
				return 3, nil
			},
		}
		svc := newSvc(likes)

		result, err := svc.Like(ctx, "user-1", model.LikeTargetPost, "p1")
		require.NoError(t, err)
		assert.True(t, result.Liked)
		assert.EqualValues(t, 3, result.LikeCount)
		require.NotNil(t, recorded)
		assert.Equal(t, "user-1", recorded.UserID)
		assert.Equal(t, model.LikeTargetPost, recorded.TargetType)
	})

	t.Run("double like conflicts", func(t *testing.T) {
		likes := &fakeLikeStore{
			FindFn: func(ctx context.Context, userID, targetType, targetID string) (*model.UserLike, error) {
				return &model.UserLike{ID: "l1"}, nil
			},
		}
		svc := newSvc(likes)

		_, err := svc.Like(ctx, "user-1", model.LikeTargetPost, "p1")
		assert.ErrorIs(t, err, errs.ErrAlreadyLiked)
	})

	t.Run("unlike without like conflicts", func(t *testing.T) {
		svc := newSvc(&fakeLikeStore{})
		_, err := svc.Unlike(ctx, "user-1", model.LikeTargetPost, "p1")
		assert.ErrorIs(t, err, errs.ErrNotLiked)
	})

	t.Run("unlike returns fresh count", func(t *testing.T) {
		likes := &fakeLikeStore{
			FindFn: func(ctx context.Context, userID, targetType, targetID string) (*model.UserLike, error) {
				return &model.UserLike{ID: "l1", UserID: userID, TargetType: targetType, TargetID: targetID}, nil
			},
			UnlikeFn: func(ctx context.Context, like *model.UserLike) (int64, error) {
				return 2, nil
			},
		}
		svc := newSvc(likes)

		result, err := svc.Unlike(ctx, "user-1", model.LikeTargetPost, "p1")
		require.NoError(t, err)
		assert.False(t, result.Liked)
		assert.EqualValues(t, 2, result.LikeCount)
	})

	t.Run("deleted target not likeable", func(t *testing.T) {
		svc := newSvc(&fakeLikeStore{})
		svc.posts = &fakePostStore{
			FindByIDFn: func(ctx context.Context, id string) (*model.Post, error) {
				return &model.Post{ID: id, Status: model.PostStatusDeleted}, nil
			},
		}
		_, err := svc.Like(ctx, "user-1", model.LikeTargetPost, "p1")
		assert.ErrorIs(t, err, errs.ErrPostNotFound)
	})

	t.Run("reply target", func(t *testing.T) {
		svc := newSvc(&fakeLikeStore{})
		svc.replies = &fakeReplyStore{
			FindByIDFn: func(ctx context.Context, id string) (*model.Reply, error) {
				return &model.Reply{ID: id, PostID: "p1", Status: model.PostStatusPublished}, nil
			},
		}
		result, err := svc.Like(ctx, "user-1", model.LikeTargetReply, "r1")
		require.NoError(t, err)
		assert.True(t, result.Liked)
	})

	t.Run("invalid target type", func(t *testing.T) {
		svc := newSvc(&fakeLikeStore{})
		_, err := svc.Like(ctx, "user-1", "comment", "x")
		var ae *errs.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, errs.CodeBadRequest, ae.Code)
	})
}

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	post := &model.Post{ID: "p1", BarID: "b1", AuthorID: "op", Status: model.PostStatusPublished}

	newSvc := func(favorites *fakeFavoriteStore) *FavoriteService {
		return &FavoriteService{
			favorites: favorites,
			posts:     postStoreWith(post),
			members:   &fakeMemberStore{},
		}
	}

	t.Run("favorite succeeds", func(t *testing.T) {
		favorites := &fakeFavoriteStore{
			FavoriteFn: func(ctx context.Context, fav *model.UserFavorite) (int64, error) {
				return 7, nil
			},
		}
		svc := newSvc(favorites)

		result, err := svc.Favorite(ctx, "user-1", "p1")
		require.NoError(t, err)
		assert.True(t, result.Favorited)
		assert.EqualValues(t, 7, result.FavoriteCount)
	})

	t.Run("double favorite conflicts", func(t *testing.T) {
		favorites := &fakeFavoriteStore{
			FindFn: func(ctx context.Context, userID, postID string) (*model.UserFavorite, error) {
				return &model.UserFavorite{ID: "f1"}, nil
			},
		}
		svc := newSvc(favorites)
		_, err := svc.Favorite(ctx, "user-1", "p1")
		assert.ErrorIs(t, err, errs.ErrAlreadyFavorited)
	})

	t.Run("unfavorite without favorite conflicts", func(t *testing.T) {
		svc := newSvc(&fakeFavoriteStore{})
		_, err := svc.Unfavorite(ctx, "user-1", "p1")
		assert.ErrorIs(t, err, errs.ErrNotFavorited)
	})
}
