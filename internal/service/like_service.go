package service

import (
	"context"

	"barhub/internal/model"
	"barhub/internal/pkg/errs"
	"barhub/internal/repository/mysql"
)

type LikeService struct {
	likes   LikeStore
	posts   PostStore
	replies ReplyStore
	members MemberStore
}

func NewLikeService() *LikeService {
	return &LikeService{
		likes:   &mysql.LikeRepository{DB: mysql.DB},
		posts:   &mysql.PostRepository{DB: mysql.DB},
		replies: &mysql.ReplyRepository{DB: mysql.DB},
		members: &mysql.BarMemberRepository{DB: mysql.DB},
	}
}

type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// checkTarget 点赞目标须存在且对操作者可见
func (s *LikeService) checkTarget(ctx context.Context, userID, targetType, targetID string) error {
	switch targetType {
	case model.LikeTargetPost:
		post, err := s.posts.FindByID(ctx, targetID)
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
	case model.LikeTargetReply:
		reply, err := s.replies.FindByID(ctx, targetID)
		if err != nil {
			return err
		}
		if reply == nil || reply.IsDeleted() || reply.Status == model.PostStatusHidden {
			return errs.ErrReplyNotFound
		}
		return nil
	default:
		return errs.BadRequest("invalid like target type")
	}
}

// Like 点赞：唯一关系行 + 计数同事务写入；重复点赞报冲突
func (s *LikeService) Like(ctx context.Context, userID, targetType, targetID string) (*LikeResult, error) {
	if err := s.checkTarget(ctx, userID, targetType, targetID); err != nil {
		return nil, err
	}

	existing, err := s.likes.Find(ctx, userID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrAlreadyLiked
	}

	count, err := s.likes.Like(ctx, &model.UserLike{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
	})
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: true, LikeCount: count}, nil
}

// Unlike 取消点赞；未点过报冲突
func (s *LikeService) Unlike(ctx context.Context, userID, targetType, targetID string) (*LikeResult, error) {
	if err := s.checkTarget(ctx, userID, targetType, targetID); err != nil {
		return nil, err
	}

	existing, err := s.likes.Find(ctx, userID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.ErrNotLiked
	}

	count, err := s.likes.Unlike(ctx, existing)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: false, LikeCount: count}, nil
}
