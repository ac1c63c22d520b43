package controller

import (
	"errors"
	"movie_tracker_backend/internal/service"
	"movie_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FriendshipController 好友关系控制器
type FriendshipController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendshipController(friendshipService *service.FriendshipService) *FriendshipController {
	return &FriendshipController{
		FriendshipService: friendshipService,
	}
}

// GetFriends godoc
// @Summary 获取好友列表
// @Description 返回当前用户的全部好友，支持按名称/邮箱模糊过滤
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   query query string false "搜索关键词"
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/friends [get]
func (c *FriendshipController) GetFriends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	friends, err := c.FriendshipService.GetFriends(claims.UserID, ctx.Query("query"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, friends)
}

// FriendRequestRequest 好友申请请求
// swagger:model FriendRequestRequest
type FriendRequestRequest struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Message    string `json:"message" binding:"max=255"`
}

// SendRequest godoc
// @Summary 发起好友申请
// @Description 同方向重复申请幂等返回既有申请；双方互相申请时直接建立好友关系
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body FriendRequestRequest true "申请信息"
// @Success 200 {object} util.Response{data=model.Friendship} "成功"
// @Failure 400 {object} util.Response "不能添加自己为好友"
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 409 {object} util.Response "已经是好友"
// @Router /api/friends/requests [post]
func (c *FriendshipController) SendRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req FriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	edge, err := c.FriendshipService.SendRequest(claims.UserID, req.ReceiverID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSelfFriendRequest):
			util.BadRequest(ctx, "cannot send a friend request to yourself")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyFriends):
			util.Conflict(ctx, "already friends")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, edge)
}

// GetRequests godoc
// @Summary 获取待处理申请
// @Description 返回收到与发出的待处理好友申请
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/friends/requests [get]
func (c *FriendshipController) GetRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	received, err := c.FriendshipService.GetPendingReceived(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	sent, err := c.FriendshipService.GetPendingSent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"received": received,
		"sent":     sent,
	})
}

// AcceptRequest godoc
// @Summary 接受好友申请
// @Description 仅接收方可操作；接受后双向好友边在同一事务内建立
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "申请ID"
// @Success 200 {object} util.Response{data=model.Friendship} "成功"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friends/requests/{id}/accept [post]
func (c *FriendshipController) AcceptRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	edgeID := util.MustParseUint(ctx.Param("id"))

	edge, err := c.FriendshipService.AcceptRequest(edgeID, claims.UserID)
	if err != nil {
		c.handleRequestError(ctx, err)
		return
	}

	util.Success(ctx, edge)
}

// DeclineRequest godoc
// @Summary 拒绝好友申请
// @Description 仅接收方可操作，申请被删除
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "申请ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "申请不存在"
// @Failure 409 {object} util.Response "申请已被处理"
// @Router /api/friends/requests/{id}/decline [post]
func (c *FriendshipController) DeclineRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	edgeID := util.MustParseUint(ctx.Param("id"))

	if err := c.FriendshipService.DeclineRequest(edgeID, claims.UserID); err != nil {
		c.handleRequestError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// CancelRequest godoc
// @Summary 撤回好友申请
// @Description 仅发起方可操作，申请被删除
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "申请ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friends/requests/{id} [delete]
func (c *FriendshipController) CancelRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	edgeID := util.MustParseUint(ctx.Param("id"))

	if err := c.FriendshipService.CancelRequest(edgeID, claims.UserID); err != nil {
		c.handleRequestError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// RemoveFriend godoc
// @Summary 解除好友关系
// @Description 两个方向的好友边一并删除
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "好友用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "好友关系不存在"
// @Router /api/friends/{id} [delete]
func (c *FriendshipController) RemoveFriend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	otherID := util.MustParseUint(ctx.Param("id"))

	if err := c.FriendshipService.RemoveFriend(claims.UserID, otherID); err != nil {
		if errors.Is(err, util.ErrFriendshipNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// GetStatus godoc
// @Summary 查询与指定用户的关系状态
// @Description 返回 FRIENDS / REQUEST_SENT / REQUEST_RECEIVED / NOT_FRIENDS 之一
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标用户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/friends/status/{id} [get]
func (c *FriendshipController) GetStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	targetID := util.MustParseUint(ctx.Param("id"))

	status, err := c.FriendshipService.Status(claims.UserID, targetID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"status": status})
}

// SearchUsers godoc
// @Summary 搜索用户
// @Description 按名称或邮箱模糊搜索，用于发起好友申请前的查找
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   query query string true "搜索关键词"
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/users/search [get]
func (c *FriendshipController) SearchUsers(ctx *gin.Context) {
	query := ctx.Query("query")
	if query == "" {
		util.BadRequest(ctx, "query is required")
		return
	}

	users, err := c.FriendshipService.FuzzySearchUsers(query)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, users)
}

func (c *FriendshipController) handleRequestError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrRequestNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrRequestHandled):
		util.Conflict(ctx, "request already handled")
	default:
		util.LogInternalError(ctx, err)
	}
}
