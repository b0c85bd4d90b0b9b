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

// 删除帖返回给作者时的占位标题，正文置空（存储层保留原文）
const deletedPostTitle = "帖子已删除"

type PostService struct {
	posts     PostStore
	bars      BarStore
	members   MemberStore
	likes     LikeStore
	favorites FavoriteStore
}

func NewPostService() *PostService {
	return &PostService{
		posts:     &mysql.PostRepository{DB: mysql.DB},
		bars:      &mysql.BarRepository{DB: mysql.DB},
		members:   &mysql.BarMemberRepository{DB: mysql.DB},
		likes:     &mysql.LikeRepository{DB: mysql.DB},
		favorites: &mysql.FavoriteRepository{DB: mysql.DB},
	}
}

type CreatePostInput struct {
	BarID       string `json:"barId" binding:"required"`
	Title       string `json:"title" binding:"required,max=300"`
	Content     string `json:"content" binding:"required"`
	ContentType string `json:"contentType" binding:"omitempty,oneof=plaintext markdown"`
}

type BarBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PostSummary struct {
	ID            string     `json:"id"`
	BarID         string     `json:"barId"`
	Bar           *BarBrief  `json:"bar"`
	AuthorID      string     `json:"authorId"`
	Author        *UserBrief `json:"author"`
	Title         string     `json:"title"`
	ContentType   string     `json:"contentType"`
	ReplyCount    int64      `json:"replyCount"`
	LikeCount     int64      `json:"likeCount"`
	FavoriteCount int64      `json:"favoriteCount"`
	LastReplyAt   *time.Time `json:"lastReplyAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type PostDetail struct {
	ID            string     `json:"id"`
	BarID         string     `json:"barId"`
	Bar           *BarBrief  `json:"bar"`
	AuthorID      string     `json:"authorId"`
	Author        *UserBrief `json:"author"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	ContentHTML   string     `json:"contentHtml,omitempty"`
	ContentType   string     `json:"contentType"`
	ReplyCount    int64      `json:"replyCount"`
	LikeCount     int64      `json:"likeCount"`
	FavoriteCount int64      `json:"favoriteCount"`
	ShareCount    int64      `json:"shareCount"`
	LastReplyAt   *time.Time `json:"lastReplyAt"`
	Status        string     `json:"status"`
	IsLiked       *bool      `json:"isLiked"`
	IsFavorited   *bool      `json:"isFavorited"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ShareResult struct {
	ShareURL   string `json:"shareUrl"`
	ShareCount int64  `json:"shareCount"`
}

// isBarStaff 吧务判定（owner/moderator）
func (s *PostService) isBarStaff(ctx context.Context, barID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	membership, err := s.members.Find(ctx, barID, userID)
	if err != nil {
		return false, err
	}
	return membership != nil && membership.IsStaff(), nil
}

func (s *PostService) checkBarManageable(ctx context.Context, barID string) error {
	bar, err := s.bars.FindByID(ctx, barID)
	if err != nil {
		return err
	}
	if bar == nil {
		return errs.ErrBarNotFound
	}
	if !bar.Manageable() {
		return errs.ErrBarNotManageable
	}
	return nil
}

// FindAll 帖子列表：仅已发布，时间倒序游标；barID 为空表示全站
func (s *PostService) FindAll(ctx context.Context, barID, cursor string, limit int) ([]PostSummary, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)

	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	posts, err := s.posts.List(ctx, barID, before, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(posts) > take
	if hasMore {
		posts = posts[:take]
	}

	items := make([]PostSummary, len(posts))
	for i, p := range posts {
		items[i] = PostSummary{
			ID:            p.ID,
			BarID:         p.BarID,
			AuthorID:      p.AuthorID,
			Title:         p.Title,
			ContentType:   p.ContentType,
			ReplyCount:    p.ReplyCount,
			LikeCount:     p.LikeCount,
			FavoriteCount: p.FavoriteCount,
			LastReplyAt:   p.LastReplyAt,
			CreatedAt:     p.CreatedAt,
		}
		if p.Bar != nil {
			items[i].Bar = &BarBrief{ID: p.Bar.ID, Name: p.Bar.Name}
		}
		if p.Author != nil {
			items[i].Author = &UserBrief{ID: p.Author.ID, Nickname: p.Author.Nickname}
		}
	}

	var next string
	if hasMore && len(posts) > 0 {
		next = pkg.EncodeTimeCursor(posts[len(posts)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}

// FindOne 帖子详情。可见性在读时裁决：
// deleted 仅作者可见（且标题/正文做脱敏占位）；hidden 仅作者与吧务可见
func (s *PostService) FindOne(ctx context.Context, postID, viewerID string) (*PostDetail, error) {
	post, err := s.posts.FindByIDWithRefs(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errs.ErrPostNotFound
	}

	if post.IsDeleted() && post.AuthorID != viewerID {
		return nil, errs.ErrPostNotFound
	}

	if post.Status == model.PostStatusHidden && post.AuthorID != viewerID {
		staff, err := s.isBarStaff(ctx, post.BarID, viewerID)
		if err != nil {
			return nil, err
		}
		if !staff {
			return nil, errs.ErrPostNotFound
		}
	}

	detail := &PostDetail{
		ID:            post.ID,
		BarID:         post.BarID,
		AuthorID:      post.AuthorID,
		Title:         post.Title,
		Content:       post.Content,
		ContentType:   post.ContentType,
		ReplyCount:    post.ReplyCount,
		LikeCount:     post.LikeCount,
		FavoriteCount: post.FavoriteCount,
		ShareCount:    post.ShareCount,
		LastReplyAt:   post.LastReplyAt,
		Status:        post.Status,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
	if post.Bar != nil {
		detail.Bar = &BarBrief{ID: post.Bar.ID, Name: post.Bar.Name}
	}
	if post.Author != nil {
		detail.Author = &UserBrief{ID: post.Author.ID, Nickname: post.Author.Nickname}
	}

	if post.Status == model.PostStatusDeleted {
		detail.Title = deletedPostTitle
		detail.Content = ""
	} else if post.ContentType == model.ContentTypeMarkdown {
		detail.ContentHTML = pkg.RenderMarkdown(post.Content)
	}

	if viewerID != "" {
		like, err := s.likes.Find(ctx, viewerID, model.LikeTargetPost, postID)
		if err != nil {
			return nil, err
		}
		isLiked := like != nil
		detail.IsLiked = &isLiked

		fav, err := s.favorites.Find(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
		isFavorited := fav != nil
		detail.IsFavorited = &isFavorited
	}
	return detail, nil
}

// Create 发帖：吧必须处于 active
func (s *PostService) Create(ctx context.Context, in CreatePostInput, authorID string) (*model.Post, error) {
	bar, err := s.bars.FindByID(ctx, in.BarID)
	if err != nil {
		return nil, err
	}
	if bar == nil {
		return nil, errs.ErrBarNotFound
	}
	if bar.Status != model.BarStatusActive {
		return nil, errs.Forbidden("bar does not allow posting in its current status")
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = model.ContentTypePlaintext
	}
	post := &model.Post{
		BarID:       in.BarID,
		AuthorID:    authorID,
		Title:       in.Title,
		Content:     in.Content,
		ContentType: contentType,
		Status:      model.PostStatusPublished,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.FindByIDWithRefs(ctx, post.ID)
}

// Delete 删帖：作者或吧务；帖子与其全部回复同事务级联软删
func (s *PostService) Delete(ctx context.Context, postID, userID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.IsDeleted() {
		return errs.ErrPostNotFound
	}

	if err := s.checkBarManageable(ctx, post.BarID); err != nil {
		return err
	}

	if post.AuthorID != userID {
		staff, err := s.isBarStaff(ctx, post.BarID, userID)
		if err != nil {
			return err
		}
		if !staff {
			return errs.Forbidden("no permission to delete this post")
		}
	}

	if err := s.posts.SoftDelete(ctx, postID, time.Now()); err != nil {
		return err
	}
	log.Printf("post deleted: postId=%s userId=%s", postID, userID)
	return nil
}

// Hide 吧务隐藏帖子；已隐藏则为幂等 no-op
func (s *PostService) Hide(ctx context.Context, postID, userID string) (*model.Post, error) {
	return s.setStatus(ctx, postID, userID, model.PostStatusHidden)
}

func (s *PostService) Unhide(ctx context.Context, postID, userID string) (*model.Post, error) {
	return s.setStatus(ctx, postID, userID, model.PostStatusPublished)
}

func (s *PostService) setStatus(ctx context.Context, postID, userID, target string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.DeletedAt != nil {
		return nil, errs.ErrPostNotFound
	}

	if err := s.checkBarManageable(ctx, post.BarID); err != nil {
		return nil, err
	}

	staff, err := s.isBarStaff(ctx, post.BarID, userID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, errs.Forbidden("no permission to hide/unhide this post")
	}

	// unhide 只对 hidden 生效；hide 对已 hidden 不重复写
	if target == model.PostStatusHidden && post.Status == model.PostStatusHidden {
		return post, nil
	}
	if target == model.PostStatusPublished && post.Status != model.PostStatusHidden {
		return post, nil
	}

	if err := s.posts.UpdateStatus(ctx, postID, target); err != nil {
		return nil, err
	}
	post.Status = target
	return post, nil
}

// Share 转发计数；目标须可见
func (s *PostService) Share(ctx context.Context, postID string) (*ShareResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted() || post.Status == model.PostStatusHidden {
		return nil, errs.ErrPostNotFound
	}

	count, err := s.posts.IncrementShare(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ShareResult{ShareURL: "/posts/" + postID, ShareCount: count}, nil
}
