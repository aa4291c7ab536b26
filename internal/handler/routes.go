package handler

import "github.com/gin-gonic/gin"

// Register mounts the API routes on r.
func Register(r gin.IRouter, articles *ArticleHandler, compare *CompareHandler) {
	api := r.Group("/api")
	api.POST("/analyze", articles.Analyze)
	api.GET("/articles/latest", articles.GetLatest)
	api.GET("/articles/recent", articles.GetRecent)
	api.GET("/articles/history", articles.GetHistory)
	api.GET("/articles/count", articles.GetCount)
	api.GET("/articles/:id", articles.GetArticle)
	api.POST("/compare", compare.Compare)

	r.GET("/health", articles.GetHealth)
}
