// Package routes wires URL paths to handlers.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/container"
	"github.com/hamatunited-sudo/Hamatunited/internal/presentation/http/handlers"
	"github.com/hamatunited-sudo/Hamatunited/internal/presentation/http/middleware"
)

// SetupRoutes configures the gin router with all API endpoints
func SetupRoutes(deps *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	contentHandlers := handlers.NewContentHandlers(deps.Content, deps.Logger, deps.PerfTracker)
	sseHandlers := handlers.NewSSEHandlers(deps.Broadcaster, deps.Logger)
	assetHandlers := handlers.NewAssetHandlers(deps.Assets, deps.Logger, deps.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(deps.Auth, deps.Logger, deps.PerfTracker)
	editorHandlers := handlers.NewEditorHandlers(deps.Editor, deps.Hub, deps.Logger, deps.PerfTracker)
	systemHandlers := handlers.NewSystemHandlers(deps.PerfTracker)

	adminRequired := middleware.AdminRequired(deps.Auth)

	api := router.Group("/api")
	{
		api.GET("/health", systemHandlers.GetHealth)

		api.GET("/content", contentHandlers.GetContent)
		api.POST("/content", adminRequired, contentHandlers.PostContent)
		api.GET("/content/sse", sseHandlers.Stream)

		api.POST("/images", adminRequired, assetHandlers.UploadImage)
		api.GET("/image-proxy", assetHandlers.ImageProxy)

		api.GET("/trusted-by", assetHandlers.ListTrustedBy)
		api.POST("/trusted-by", adminRequired, assetHandlers.UploadTrustedBy)
		api.DELETE("/trusted-by", adminRequired, assetHandlers.DeleteTrustedBy)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetStatus)
			auth.POST("/logout", authHandlers.PostLogout)
		}

		admin := api.Group("/admin", adminRequired)
		{
			admin.GET("/perf", systemHandlers.GetPerfStats)
			admin.GET("/ws", editorHandlers.GetWS)

			editor := admin.Group("/editor")
			{
				editor.GET("", editorHandlers.GetState)
				editor.PUT("/field", editorHandlers.PutField)
				editor.POST("/sections/:section/items", editorHandlers.PostItem)
				editor.DELETE("/sections/:section/items/:index", editorHandlers.DeleteItem)
				editor.POST("/sections/:section/items/:index/move", editorHandlers.MoveItem)
				editor.PUT("/raw", editorHandlers.PutRaw)
				editor.GET("/export", editorHandlers.GetExport)
				editor.POST("/import", editorHandlers.PostImport)
				editor.POST("/reset", editorHandlers.PostReset)
				editor.POST("/save", editorHandlers.PostSave)
				editor.POST("/profile-image", editorHandlers.PostProfileImage)
			}
		}
	}

	return router
}
