package controller

import (
	"errors"
	"movie_tracker_backend/internal/service"
	"movie_tracker_backend/internal/util"
	"movie_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// InviteController 邀请码控制器
type InviteController struct {
	InviteService *service.InviteService
}

func NewInviteController(inviteService *service.InviteService) *InviteController {
	return &InviteController{
		InviteService: inviteService,
	}
}

// ListInvites godoc
// @Summary 获取我签发的邀请码
// @Description 返回当前用户签发的全部邀请码及使用状态
// @Tags 邀请
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.InviteCode} "成功"
// @Router /api/invites [get]
func (c *InviteController) ListInvites(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	invites, err := c.InviteService.ListByIssuer(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, invites)
}

// GenerateInvite godoc
// @Summary 生成邀请码
// @Description 为当前用户生成一个新的邀请码
// @Tags 邀请
// @Produce  json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response{data=model.InviteCode} "成功"
// @Router /api/invites [post]
func (c *InviteController) GenerateInvite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	invite, err := c.InviteService.GenerateCode(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, invite)
}

// RedeemRequest 邀请码兑换请求
// swagger:model RedeemRequest
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemInvite godoc
// @Summary 兑换邀请码
// @Description 兑换后与签发者自动建立好友关系；每个码只能兑换一次
// @Tags 邀请
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RedeemRequest true "邀请码"
// @Success 200 {object} util.Response{data=model.InviteCode} "成功"
// @Failure 400 {object} util.Response "邀请码无效"
// @Failure 409 {object} util.Response "邀请码已被使用"
// @Router /api/invites/redeem [post]
func (c *InviteController) RedeemInvite(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	invite, err := c.InviteService.Redeem(req.Code, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidInviteCode):
			monitoring.InviteRedeemCounter.WithLabelValues("invalid").Inc()
			util.BadRequest(ctx, "invalid invite code")
		case errors.Is(err, util.ErrInviteCodeUsed):
			monitoring.InviteRedeemCounter.WithLabelValues("used").Inc()
			util.Conflict(ctx, "invite code already used")
		default:
			monitoring.InviteRedeemCounter.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.InviteRedeemCounter.WithLabelValues("success").Inc()
	util.Success(ctx, invite)
}
