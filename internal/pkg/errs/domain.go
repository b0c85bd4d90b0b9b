package errs

// 领域错误集中定义，service 间共享
var (
	ErrUserNotFound       = NotFound("user not found")
	ErrEmailTaken         = Conflict("email already in use")
	ErrInvalidCredentials = Unauthorized("invalid credentials")

	ErrBarNotFound      = NotFound("bar not found")
	ErrBarNameDuplicate = Conflict("bar name already exists")
	ErrBarNotJoinable   = Conflict("bar status does not allow joining")
	ErrBarNotManageable = Forbidden("bar is not manageable in its current status")
	ErrAlreadyMember    = Conflict("already a member of this bar")
	ErrNotMember        = NotFound("not a member of this bar")
	ErrOwnerCannotLeave = Forbidden("bar owner cannot leave, transfer ownership first")
	ErrNotOwner         = Forbidden("only bar owner can perform this action")
	ErrTargetNotMember  = NotFound("target user is not a member of this bar")
	ErrTargetIsOwner    = Conflict("cannot change owner role, use transfer instead")
	ErrAlreadyOwner     = Conflict("target is already the owner")

	ErrPostNotFound  = NotFound("post not found")
	ErrReplyNotFound = NotFound("reply not found")
	ErrNoPermission  = Forbidden("no permission for this operation")

	ErrAlreadyLiked     = Conflict("already liked")
	ErrNotLiked         = NotFound("not liked")
	ErrAlreadyFavorited = Conflict("already favorited this post")
	ErrNotFavorited     = NotFound("not favorited")
)
