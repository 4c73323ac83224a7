package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adminkit/flexlist-backend/internal/handlers"
	"github.com/adminkit/flexlist-backend/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins    string
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	LayoutHandler  *handlers.LayoutHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := []string{"http://localhost:3000"}
	if cfg.CORSOrigins != "" {
		origins = strings.Split(cfg.CORSOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)
	api.POST("/refresh", cfg.AuthHandler.Refresh)

	// Authenticated
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.GET("/user", cfg.UserHandler.GetMe)

	// Layout preferences, staff only
	layout := protected.Group("/layout")
	layout.Use(cfg.AuthMiddleware.RequireStaff())
	layout.GET("/index", cfg.LayoutHandler.GetAppIndex)
	layout.GET("/app_list", cfg.LayoutHandler.GetAppList)
	layout.PUT("/app_list", cfg.LayoutHandler.UpdateAppList)
	layout.GET("/apps/:app_label/model_list", cfg.LayoutHandler.GetModelList)
	layout.PUT("/apps/:app_label/model_list", cfg.LayoutHandler.UpdateModelList)
	layout.GET("/apps/:app_label/models/:model_name/list_display", cfg.LayoutHandler.GetListDisplay)
	layout.PUT("/apps/:app_label/models/:model_name/list_display", cfg.LayoutHandler.UpdateListDisplay)

	return router
}
