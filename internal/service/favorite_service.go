package service

import (
	"context"

	"barhub/internal/model"
	"barhub/internal/pkg/errs"
	"barhub/internal/repository/mysql"
)

type FavoriteService struct {
	favorites FavoriteStore
	posts     PostStore
	members   MemberStore
}

func NewFavoriteService() *FavoriteService {
	return &FavoriteService{
		favorites: &mysql.FavoriteRepository{DB: mysql.DB},
		posts:     &mysql.PostRepository{DB: mysql.DB},
		members:   &mysql.BarMemberRepository{DB: mysql.DB},
	}
}

type FavoriteResult struct {
	Favorited     bool  `json:"favorited"`
	FavoriteCount int64 `json:"favoriteCount"`
}

func (s *FavoriteService) checkPost(ctx context.Context, userID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.IsDeleted() {
		return errs.ErrPostNotFound
	}
	if post.Status == model.PostStatusHidden && post.AuthorID != userID {
		membership, err := s.members.Find(ctx, post.BarID, userID)
		if err != nil {
			return err
		}
		if membership == nil || !membership.IsStaff() {
			return errs.ErrPostNotFound
		}
	}
	return nil
}

// Favorite 收藏：唯一关系行 + 帖子收藏数同事务写入；重复收藏报冲突
func (s *FavoriteService) Favorite(ctx context.Context, userID, postID string) (*FavoriteResult, error) {
	if err := s.checkPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	existing, err := s.favorites.Find(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrAlreadyFavorited
	}

	count, err := s.favorites.Favorite(ctx, &model.UserFavorite{
		UserID: userID,
		PostID: postID,
	})
	if err != nil {
		return nil, err
	}
	return &FavoriteResult{Favorited: true, FavoriteCount: count}, nil
}

func (s *FavoriteService) Unfavorite(ctx context.Context, userID, postID string) (*FavoriteResult, error) {
	if err := s.checkPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	existing, err := s.favorites.Find(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.ErrNotFavorited
	}

	count, err := s.favorites.Unfavorite(ctx, existing)
	if err != nil {
		return nil, err
	}
	return &FavoriteResult{Favorited: false, FavoriteCount: count}, nil
}
