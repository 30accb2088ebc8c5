package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbanto/internal/handler"
	"github.com/skillbanto/internal/logger"
	"go.uber.org/zap"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(logger.Middleware(log), logger.Recovery(log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 页面内容 API
	pages := r.Group("/api/pages")
	{
		pages.GET("", api.ListPages)
		pages.POST("", api.CreatePage)
		pages.GET("/by-slug/:slug", api.GetPageBySlug)
		pages.GET("/:id", api.GetPage)
		pages.PUT("/:id", api.UpdatePage)
		pages.DELETE("/:id", api.DeletePage)
	}

	// 面向访客的已发布页面
	r.GET("/p/:slug", api.ShowPage)

	return r
}
