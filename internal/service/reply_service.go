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

// 子回复预览条数
const childPreviewSize = 3

type ReplyService struct {
	replies ReplyStore
	posts   PostStore
	bars    BarStore
	members MemberStore
	likes   LikeStore
}

func NewReplyService() *ReplyService {
	return &ReplyService{
		replies: &mysql.ReplyRepository{DB: mysql.DB},
		posts:   &mysql.PostRepository{DB: mysql.DB},
		bars:    &mysql.BarRepository{DB: mysql.DB},
		members: &mysql.BarMemberRepository{DB: mysql.DB},
		likes:   &mysql.LikeRepository{DB: mysql.DB},
	}
}

type CreateReplyInput struct {
	Content       string  `json:"content" binding:"required,max=10000"`
	ContentType   string  `json:"contentType" binding:"omitempty,oneof=plaintext markdown"`
	ParentReplyID *string `json:"parentReplyId"`
}

type ReplyView struct {
	ID            string      `json:"id"`
	PostID        string      `json:"postId"`
	AuthorID      string      `json:"authorId"`
	Author        *UserBrief  `json:"author"`
	Content       string      `json:"content"`
	ContentHTML   string      `json:"contentHtml,omitempty"`
	ContentType   string      `json:"contentType"`
	ParentReplyID *string     `json:"parentReplyId"`
	FloorNumber   *int64      `json:"floorNumber"`
	ChildCount    int64       `json:"childCount"`
	LikeCount     int64       `json:"likeCount"`
	Status        string      `json:"status"`
	IsLiked       *bool       `json:"isLiked"`
	Children      []ReplyView `json:"children,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (s *ReplyService) isBarStaff(ctx context.Context, barID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	membership, err := s.members.Find(ctx, barID, userID)
	if err != nil {
		return false, err
	}
	return membership != nil && membership.IsStaff(), nil
}

// visiblePost 回复操作的前置：帖子存在且对操作者可见
func (s *ReplyService) visiblePost(ctx context.Context, postID, viewerID string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted() {
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
	return post, nil
}

func (s *ReplyService) toView(r *model.Reply) ReplyView {
	v := ReplyView{
		ID:            r.ID,
		PostID:        r.PostID,
		AuthorID:      r.AuthorID,
		Content:       r.Content,
		ContentType:   r.ContentType,
		ParentReplyID: r.ParentReplyID,
		FloorNumber:   r.FloorNumber,
		ChildCount:    r.ChildCount,
		LikeCount:     r.LikeCount,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
	if r.ContentType == model.ContentTypeMarkdown {
		v.ContentHTML = pkg.RenderMarkdown(r.Content)
	}
	if r.Author != nil {
		v.Author = &UserBrief{ID: r.Author.ID, Nickname: r.Author.Nickname}
	}
	return v
}

// FindByPost 楼层列表：主楼按楼号升序，游标即上一页最后楼号；
// 每层楼附带前 3 条已发布子回复做预览
func (s *ReplyService) FindByPost(ctx context.Context, postID, viewerID, cursor string, limit int) ([]ReplyView, string, bool, error) {
	if _, err := s.visiblePost(ctx, postID, viewerID); err != nil {
		return nil, "", false, err
	}

	take := pkg.ClampLimit(limit, 20, 100)
	afterFloor, _ := pkg.DecodeFloorCursor(cursor)

	replies, err := s.replies.ListTopLevel(ctx, postID, afterFloor, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(replies) > take
	if hasMore {
		replies = replies[:take]
	}

	parentIDs := make([]string, len(replies))
	for i, r := range replies {
		parentIDs[i] = r.ID
	}
	var children []model.Reply
	if len(parentIDs) > 0 {
		children, err = s.replies.ListChildrenOf(ctx, parentIDs)
		if err != nil {
			return nil, "", false, err
		}
	}
	childrenOf := make(map[string][]ReplyView)
	for i := range children {
		c := &children[i]
		pid := *c.ParentReplyID
		if len(childrenOf[pid]) < childPreviewSize {
			childrenOf[pid] = append(childrenOf[pid], s.toView(c))
		}
	}

	liked := map[string]bool{}
	if viewerID != "" {
		ids := make([]string, 0, len(replies)+len(children))
		ids = append(ids, parentIDs...)
		for _, c := range children {
			ids = append(ids, c.ID)
		}
		liked, err = s.likes.LikedSet(ctx, viewerID, model.LikeTargetReply, ids)
		if err != nil {
			return nil, "", false, err
		}
	}

	items := make([]ReplyView, len(replies))
	for i := range replies {
		r := &replies[i]
		items[i] = s.toView(r)
		items[i].Children = childrenOf[r.ID]
		if viewerID != "" {
			isLiked := liked[r.ID]
			items[i].IsLiked = &isLiked
			for j := range items[i].Children {
				childLiked := liked[items[i].Children[j].ID]
				items[i].Children[j].IsLiked = &childLiked
			}
		}
	}

	var next string
	if hasMore && len(replies) > 0 {
		if f := replies[len(replies)-1].FloorNumber; f != nil {
			next = pkg.EncodeFloorCursor(*f)
		}
	}
	return items, next, hasMore, nil
}

// FindChildren 某楼的全部子回复，时间升序
func (s *ReplyService) FindChildren(ctx context.Context, parentReplyID, viewerID, cursor string, limit int) ([]ReplyView, string, bool, error) {
	parent, err := s.replies.FindByID(ctx, parentReplyID)
	if err != nil {
		return nil, "", false, err
	}
	if parent == nil || parent.IsDeleted() {
		return nil, "", false, errs.ErrReplyNotFound
	}
	if _, err := s.visiblePost(ctx, parent.PostID, viewerID); err != nil {
		return nil, "", false, err
	}

	take := pkg.ClampLimit(limit, 10, 50)
	var after *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		after = &t
	}

	children, err := s.replies.ListChildren(ctx, parentReplyID, after, take)
	if err != nil {
		return nil, "", false, err
	}

	hasMore := len(children) > take
	if hasMore {
		children = children[:take]
	}

	liked := map[string]bool{}
	if viewerID != "" {
		ids := make([]string, len(children))
		for i, c := range children {
			ids[i] = c.ID
		}
		liked, err = s.likes.LikedSet(ctx, viewerID, model.LikeTargetReply, ids)
		if err != nil {
			return nil, "", false, err
		}
	}

	items := make([]ReplyView, len(children))
	for i := range children {
		items[i] = s.toView(&children[i])
		if viewerID != "" {
			isLiked := liked[children[i].ID]
			items[i].IsLiked = &isLiked
		}
	}

	var next string
	if hasMore && len(children) > 0 {
		next = pkg.EncodeTimeCursor(children[len(children)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}

// Create 回帖。主楼在落库事务内取号（MAX+1）；子回复只挂两层，
// 不允许回复别的帖子下的楼层，也不允许对子回复再盖楼
func (s *ReplyService) Create(ctx context.Context, postID string, in CreateReplyInput, authorID string) (*model.Reply, error) {
	post, err := s.visiblePost(ctx, postID, authorID)
	if err != nil {
		return nil, err
	}

	bar, err := s.bars.FindByID(ctx, post.BarID)
	if err != nil {
		return nil, err
	}
	if bar == nil || bar.Status != model.BarStatusActive {
		return nil, errs.Forbidden("bar does not allow replying in its current status")
	}

	if in.ParentReplyID != nil {
		parent, err := s.replies.FindByID(ctx, *in.ParentReplyID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.IsDeleted() || parent.Status == model.PostStatusHidden {
			return nil, errs.ErrReplyNotFound
		}
		if parent.PostID != postID {
			return nil, errs.BadRequest("parent reply does not belong to this post")
		}
		if !parent.IsTopLevel() {
			return nil, errs.BadRequest("nested replies are limited to two levels")
		}
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = model.ContentTypePlaintext
	}
	reply := &model.Reply{
		PostID:        postID,
		AuthorID:      authorID,
		Content:       in.Content,
		ContentType:   contentType,
		ParentReplyID: in.ParentReplyID,
		Status:        model.PostStatusPublished,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// Delete 删回复：作者或吧务；主楼级联软删其子回复并回扣帖子回复数
func (s *ReplyService) Delete(ctx context.Context, replyID, userID string) error {
	reply, post, err := s.loadForModeration(ctx, replyID)
	if err != nil {
		return err
	}

	if reply.AuthorID != userID {
		staff, err := s.isBarStaff(ctx, post.BarID, userID)
		if err != nil {
			return err
		}
		if !staff {
			return errs.Forbidden("no permission to delete this reply")
		}
	}

	if err := s.replies.SoftDelete(ctx, reply, time.Now()); err != nil {
		return err
	}
	log.Printf("reply deleted: replyId=%s userId=%s", replyID, userID)
	return nil
}

// Hide 吧务隐藏回复；幂等
func (s *ReplyService) Hide(ctx context.Context, replyID, userID string) (*model.Reply, error) {
	return s.setStatus(ctx, replyID, userID, model.PostStatusHidden)
}

func (s *ReplyService) Unhide(ctx context.Context, replyID, userID string) (*model.Reply, error) {
	return s.setStatus(ctx, replyID, userID, model.PostStatusPublished)
}

func (s *ReplyService) setStatus(ctx context.Context, replyID, userID, target string) (*model.Reply, error) {
	reply, post, err := s.loadForModeration(ctx, replyID)
	if err != nil {
		return nil, err
	}

	staff, err := s.isBarStaff(ctx, post.BarID, userID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, errs.Forbidden("no permission to hide/unhide this reply")
	}

	if target == model.PostStatusHidden && reply.Status == model.PostStatusHidden {
		return reply, nil
	}
	if target == model.PostStatusPublished && reply.Status != model.PostStatusHidden {
		return reply, nil
	}

	if err := s.replies.UpdateStatus(ctx, replyID, target); err != nil {
		return nil, err
	}
	reply.Status = target
	return reply, nil
}

func (s *ReplyService) loadForModeration(ctx context.Context, replyID string) (*model.Reply, *model.Post, error) {
	reply, err := s.replies.FindByIDWithPost(ctx, replyID)
	if err != nil {
		return nil, nil, err
	}
	if reply == nil || reply.IsDeleted() {
		return nil, nil, errs.ErrReplyNotFound
	}

	post := reply.Post
	if post == nil {
		return nil, nil, errs.ErrPostNotFound
	}

	bar, err := s.bars.FindByID(ctx, post.BarID)
	if err != nil {
		return nil, nil, err
	}
	if bar == nil {
		return nil, nil, errs.ErrBarNotFound
	}
	if !bar.Manageable() {
		return nil, nil, errs.ErrBarNotManageable
	}
	return reply, post, nil
}
