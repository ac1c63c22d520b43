package app

import (
	"movie_tracker_backend/docs"
	"movie_tracker_backend/internal/config"
	"movie_tracker_backend/internal/middleware"
	"movie_tracker_backend/internal/model"
	"movie_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 目录浏览：可选认证，允许游客访问
	catalog := router.Group("/api")
	catalog.Use(middleware.TryAuthMiddleware(cfg))
	{
		catalog.GET("/movies/:id", c.movie.GetMovie)
		catalog.GET("/genres", c.movie.ListGenres)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)
		authGroup.GET("/dashboard", c.dashboard.GetDashboard)

		// 选片与评分
		authGroup.GET("/discover/next", c.discovery.NextMovie)
		authGroup.POST("/discover/swipe", c.discovery.Swipe)
		authGroup.PUT("/views/:id", c.discovery.UpdateRating)

		// 目录维护（管理员）
		authGroup.POST("/genres", middleware.RoleMiddleware(model.Admin), c.movie.CreateGenre)

		// 好友
		authGroup.GET("/friends", c.friendship.GetFriends)
		authGroup.GET("/friends/requests", c.friendship.GetRequests)
		authGroup.POST("/friends/requests", c.friendship.SendRequest)
		authGroup.POST("/friends/requests/:id/accept", c.friendship.AcceptRequest)
		authGroup.POST("/friends/requests/:id/decline", c.friendship.DeclineRequest)
		authGroup.DELETE("/friends/requests/:id", c.friendship.CancelRequest)
		authGroup.GET("/friends/status/:id", c.friendship.GetStatus)
		authGroup.DELETE("/friends/:id", c.friendship.RemoveFriend)
		authGroup.GET("/users/search", c.friendship.SearchUsers)

		// 邀请码
		authGroup.GET("/invites", c.invite.ListInvites)
		authGroup.POST("/invites", c.invite.GenerateInvite)
		authGroup.POST("/invites/redeem", c.invite.RedeemInvite)
	}
}
