package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"barhub/internal/model"
	"barhub/internal/pkg"
	"barhub/internal/pkg/errs"
	"barhub/internal/repository/mysql"
	"barhub/internal/repository/redis"
)

type UserService struct {
	users   UserStore
	posts   PostStore
	replies ReplyStore
	bars    BarStore
	members MemberStore
	tokens  TokenVersionCache
	issuer  *pkg.TokenIssuer
}

func NewUserService(issuer *pkg.TokenIssuer) *UserService {
	return &UserService{
		users:   &mysql.UserRepository{DB: mysql.DB},
		posts:   &mysql.PostRepository{DB: mysql.DB},
		replies: &mysql.ReplyRepository{DB: mysql.DB},
		bars:    &mysql.BarRepository{DB: mysql.DB},
		members: &mysql.BarMemberRepository{DB: mysql.DB},
		tokens:  &redis.TokenVersionRepository{},
		issuer:  issuer,
	}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Nickname string `json:"nickname" binding:"required,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	Nickname  *string `json:"nickname" binding:"omitempty,max=50"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,max=500"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl"`
	Bio       string    `json:"bio"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type MyReplyView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	PostTitle string    `json:"postTitle"`
	BarName   string    `json:"barName"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type JoinedBarView struct {
	BarID       string    `json:"barId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	MemberCount int64     `json:"memberCount"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// truncateRunes 列表摘要按字符截断，避免切开多字节字符
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func toUserView(u *model.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Register 注册并直接签发 token
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "hash password", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Nickname:     in.Nickname,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Sign(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "sign token", err)
	}
	log.Printf("user registered: userId=%s", user.ID)
	return &AuthResult{Token: token, User: toUserView(user)}, nil
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := s.issuer.Sign(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "sign token", err)
	}
	return &AuthResult{Token: token, User: toUserView(user)}, nil
}

func (s *UserService) FindByID(ctx context.Context, userID string) (*UserView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}
	v := toUserView(user)
	return &v, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*UserView, error) {
	updates := map[string]any{}
	if in.Nickname != nil {
		updates["nickname"] = *in.Nickname
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if len(updates) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.FindByID(ctx, userID)
}

// ChangePassword 改密后 token 版本 +1，旧 token 全部失效
func (s *UserService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errs.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
		return errs.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errs.Wrap(errs.CodeInternal, "hash password", err)
	}
	if err := s.users.UpdateProfile(ctx, userID, map[string]any{"password_hash": string(hash)}); err != nil {
		return err
	}
	if err := s.users.BumpTokenVersion(ctx, userID); err != nil {
		return err
	}
	if err := s.tokens.Delete(ctx, userID); err != nil {
		log.Printf("token version cache invalidate failed: userId=%s err=%v", userID, err)
	}
	return nil
}

// VerifyTokenVersion token 版本校验：先查缓存，未命中回源并回填
func (s *UserService) VerifyTokenVersion(ctx context.Context, userID string, version int64) (bool, error) {
	current, ok, err := s.tokens.Get(ctx, userID)
	if err != nil {
		log.Printf("token version cache read failed: userId=%s err=%v", userID, err)
		ok = false
	}
	if !ok {
		current, err = s.users.TokenVersion(ctx, userID)
		if err != nil {
			return false, err
		}
		if err := s.tokens.Set(ctx, userID, current); err != nil {
			log.Printf("token version cache write failed: userId=%s err=%v", userID, err)
		}
	}
	return current == version, nil
}

// MyPosts 我的帖子，含隐藏与已删除（删除项做脱敏占位）
func (s *UserService) MyPosts(ctx context.Context, userID, cursor string, limit int) ([]PostSummary, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)
	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	posts, err := s.posts.ListByAuthor(ctx, userID, before, take)
	if err != nil {
		return nil, "", false, err
	}
	hasMore := len(posts) > take
	if hasMore {
		posts = posts[:take]
	}

	items := make([]PostSummary, len(posts))
	for i, p := range posts {
		title := p.Title
		if p.IsDeleted() {
			title = deletedPostTitle
		}
		items[i] = PostSummary{
			ID:            p.ID,
			BarID:         p.BarID,
			AuthorID:      p.AuthorID,
			Title:         title,
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
	}

	var next string
	if hasMore && len(posts) > 0 {
		next = pkg.EncodeTimeCursor(posts[len(posts)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}

// MyReplies 我的回复，回填所属帖与吧
func (s *UserService) MyReplies(ctx context.Context, userID, cursor string, limit int) ([]MyReplyView, string, bool, error) {
	take := pkg.ClampLimit(limit, 20, 100)
	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	replies, err := s.replies.ListByAuthor(ctx, userID, before, take)
	if err != nil {
		return nil, "", false, err
	}
	hasMore := len(replies) > take
	if hasMore {
		replies = replies[:take]
	}

	items := make([]MyReplyView, len(replies))
	for i, r := range replies {
		items[i] = MyReplyView{
			ID:        r.ID,
			PostID:    r.PostID,
			Content:   truncateRunes(r.Content, 100),
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
		if r.Post != nil {
			items[i].PostTitle = r.Post.Title
			if r.Post.Bar != nil {
				items[i].BarName = r.Post.Bar.Name
			}
		}
	}

	var next string
	if hasMore && len(replies) > 0 {
		next = pkg.EncodeTimeCursor(replies[len(replies)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}

// MyBars 我加入的吧，按加入时间倒序；查询前先对涉及的吧做到期解停
func (s *UserService) MyBars(ctx context.Context, userID, cursor string, limit int) ([]JoinedBarView, string, bool, error) {
	barIDs, err := s.members.BarIDsOf(ctx, userID)
	if err != nil {
		return nil, "", false, err
	}
	if err := s.bars.SweepExpiredIn(ctx, barIDs); err != nil {
		log.Printf("expired suspension sweep failed: userId=%s err=%v", userID, err)
	}

	take := pkg.ClampLimit(limit, 20, 100)
	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	memberships, err := s.members.ListByUser(ctx, userID, before, take)
	if err != nil {
		return nil, "", false, err
	}
	hasMore := len(memberships) > take
	if hasMore {
		memberships = memberships[:take]
	}

	items := make([]JoinedBarView, len(memberships))
	for i, m := range memberships {
		items[i] = JoinedBarView{
			BarID:    m.BarID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
		if m.Bar != nil {
			items[i].Name = m.Bar.Name
			items[i].Description = m.Bar.Description
			items[i].Status = m.Bar.Status
			items[i].MemberCount = m.Bar.MemberCount
		}
	}

	var next string
	if hasMore && len(memberships) > 0 {
		next = pkg.EncodeTimeCursor(memberships[len(memberships)-1].JoinedAt)
	}
	return items, next, hasMore, nil
}

// MyCreatedBars 我创建的吧（含待审与被驳回的）
func (s *UserService) MyCreatedBars(ctx context.Context, userID, cursor string, limit int) ([]AdminBarView, string, bool, error) {
	if err := s.bars.SweepExpiredByCreator(ctx, userID); err != nil {
		log.Printf("expired suspension sweep failed: userId=%s err=%v", userID, err)
	}

	take := pkg.ClampLimit(limit, 20, 100)
	var before *time.Time
	if t, ok := pkg.DecodeTimeCursor(cursor); ok {
		before = &t
	}

	bars, err := s.bars.ListByCreator(ctx, userID, before, take)
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
	}

	var next string
	if hasMore && len(bars) > 0 {
		next = pkg.EncodeTimeCursor(bars[len(bars)-1].CreatedAt)
	}
	return items, next, hasMore, nil
}
