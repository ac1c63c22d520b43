package controller

import (
	"errors"
	"movie_tracker_backend/internal/repository"
	"movie_tracker_backend/internal/service"
	"movie_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MovieController 影片目录控制器
type MovieController struct {
	MovieService *service.MovieService
}

func NewMovieController(movieService *service.MovieService) *MovieController {
	return &MovieController{
		MovieService: movieService,
	}
}

// GetMovie godoc
// @Summary 获取影片详情
// @Description 返回影片及其类型、演职员信息
// @Tags 影片
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "影片ID"
// @Success 200 {object} util.Response{data=model.Movie} "成功"
// @Failure 404 {object} util.Response "影片不存在"
// @Router /api/movies/{id} [get]
func (c *MovieController) GetMovie(ctx *gin.Context) {
	movieID := util.MustParseUint(ctx.Param("id"))

	movie, err := c.MovieService.GetMovie(movieID)
	if err != nil {
		if errors.Is(err, util.ErrMovieNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, movie)
}

// ListGenres godoc
// @Summary 获取类型列表
// @Description 返回全部影片类型，供过滤器使用
// @Tags 影片
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Genre} "成功"
// @Router /api/genres [get]
func (c *MovieController) ListGenres(ctx *gin.Context) {
	genres, err := c.MovieService.ListGenres()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, genres)
}

// CreateGenreRequest 类型创建请求
// swagger:model CreateGenreRequest
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CreateGenre godoc
// @Summary 新增影片类型
// @Description 仅管理员可操作
// @Tags 影片
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateGenreRequest true "类型信息"
// @Success 201 {object} util.Response{data=model.Genre} "创建成功"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 409 {object} util.Response "类型已存在"
// @Router /api/genres [post]
func (c *MovieController) CreateGenre(ctx *gin.Context) {
	var req CreateGenreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	genre, err := c.MovieService.CreateGenre(req.Name)
	if err != nil {
		if repository.IsDuplicateKeyErr(err) {
			util.Conflict(ctx, "genre already exists")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, genre)
}
