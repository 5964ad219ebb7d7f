package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviebox/internal/handler"
	"github.com/user/moviebox/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查（不计入请求计数）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== API（全部计数）====================
	api := r.Group("/")
	api.Use(middleware.CountRequests(h.Repos.RequestCount))
	{
		api.POST("/register/", h.Register)
		api.POST("/login/", h.Login)
		api.GET("/movies/", h.MovieList)
	}

	// ==================== 需要登录 ====================
	authed := api.Group("/")
	authed.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		authed.GET("/collection/", h.CollectionList)
		authed.POST("/collection/", h.CollectionCreate)
		authed.GET("/collection/:uuid/", h.CollectionRetrieve)
		authed.PUT("/collection/:uuid/", h.CollectionUpdate)
		authed.DELETE("/collection/:uuid/", h.CollectionDelete)

		authed.GET("/request-count/", h.RequestCount)
		authed.POST("/request-count/reset/", h.ResetRequestCount)
	}
}
