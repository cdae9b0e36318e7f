package controller

import (
	"github.com/gin-gonic/gin"

	"cms-extensions/internal/service"
	"cms-extensions/utilities"
)

// RegisterRoutes registers all route groups and their endpoints. Article
// routes require a bearer token when requireToken is set.
func RegisterRoutes(r *gin.Engine,
	articleService service.ArticleService,
	authService service.AuthService,
	requireToken bool,
) {
	authCtrl := NewAuthController(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", authCtrl.Login)
		authRoutes.POST("/refresh", authCtrl.Refresh)
	}

	articleCtrl := NewArticleController(articleService)
	articleRoutes := r.Group("/articles")
	if requireToken {
		articleRoutes.Use(utilities.AuthMiddleware())
	}
	{
		articleRoutes.GET("", articleCtrl.Search)
		articleRoutes.GET("/export", articleCtrl.Export)
		articleRoutes.GET("/:id", articleCtrl.Get)
		articleRoutes.GET("/:id/text", articleCtrl.PlainText)
		articleRoutes.POST("", articleCtrl.Save)
		articleRoutes.PUT("/:id", articleCtrl.Save)
		articleRoutes.DELETE("/:id", articleCtrl.Delete)
	}
}
