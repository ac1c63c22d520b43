package controller

import (
	"errors"
	"movie_tracker_backend/internal/service"
	"movie_tracker_backend/internal/util"
	"movie_tracker_backend/pkg/monitoring"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DiscoveryController 处理选片与评分相关的HTTP请求
type DiscoveryController struct {
	DiscoveryService *service.DiscoveryService
}

func NewDiscoveryController(discoveryService *service.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{
		DiscoveryService: discoveryService,
	}
}

// NextMovie godoc
// @Summary 获取下一部待评影片
// @Description 按票房分档加权抽取一部未评影片，支持类型和影人名称过滤
// @Tags 选片
// @Produce  json
// @Security ApiKeyAuth
// @Param   genre query int false "类型ID"
// @Param   person query string false "影人名称子串（演员/导演/制片/摄影）"
// @Success 200 {object} util.Response{data=object} "成功；候选耗尽时 noMoviesLeft=true"
// @Failure 401 {object} util.Response "未授权"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/discover/next [get]
func (c *DiscoveryController) NextMovie(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	filters := service.DiscoveryFilters{
		GenreID:     util.MustParseUint(ctx.Query("genre")),
		PersonQuery: ctx.Query("person"),
	}

	movie, err := c.DiscoveryService.SelectNext(claims.UserID, filters)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if movie == nil {
		util.Success(ctx, gin.H{"noMoviesLeft": true})
		return
	}

	util.Success(ctx, gin.H{"movie": movie})
}

// SwipeRequest 滑动评分请求
// swagger:model SwipeRequest
type SwipeRequest struct {
	MovieID uint  `json:"movieId" binding:"required"`
	HasSeen *bool `json:"hasSeen" binding:"required"`
}

// Swipe godoc
// @Summary 记录已看/未看决定
// @Description 每对 (用户, 影片) 只落一条记录，重复提交幂等返回既有记录；
// @Description 首次创建同步评估里程碑，响应附带本次触发的奖励事件
// @Tags 选片
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SwipeRequest true "滑动信息"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "影片不存在"
// @Router /api/discover/swipe [post]
func (c *DiscoveryController) Swipe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SwipeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, created, events, err := c.DiscoveryService.RecordView(claims.UserID, req.MovieID, *req.HasSeen)
	if err != nil {
		if errors.Is(err, util.ErrMovieNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.SwipeCounter.WithLabelValues(
		strconv.FormatBool(view.HasSeen),
		strconv.FormatBool(created),
	).Inc()
	for range events {
		monitoring.MilestoneCounter.Inc()
	}

	util.Success(ctx, gin.H{
		"view":       view,
		"created":    created,
		"milestones": events,
	})
}

// UpdateRatingRequest 评分修正请求
// swagger:model UpdateRatingRequest
type UpdateRatingRequest struct {
	HasSeen *bool `json:"hasSeen" binding:"required"`
}

// UpdateRating godoc
// @Summary 修正评分记录
// @Description 仅记录归属者可修改 has_seen；修正不触发里程碑
// @Tags 选片
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "记录ID"
// @Param   body body UpdateRatingRequest true "修正信息"
// @Success 200 {object} util.Response{data=model.UserMovieView} "成功"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/views/{id} [put]
func (c *DiscoveryController) UpdateRating(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	viewID := util.MustParseUint(ctx.Param("id"))

	var req UpdateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.DiscoveryService.UpdateRating(claims.UserID, viewID, *req.HasSeen)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrViewNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}
