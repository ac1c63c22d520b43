package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")

	ErrMovieNotFound = errors.New("movie not found")
	ErrViewNotFound  = errors.New("viewing record not found")

	ErrSelfFriendRequest  = errors.New("不能添加自己为好友")
	ErrAlreadyFriends     = errors.New("已经是好友了")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrRequestHandled     = errors.New("friend request already handled")
	ErrFriendshipNotFound = errors.New("friendship not found")

	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInviteCodeUsed    = errors.New("invite code already used")
)
