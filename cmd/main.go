package main

import (
	"fmt"
	"os"
	"time"

	"github.com/adminkit/flexlist-backend/internal/adminsite"
	"github.com/adminkit/flexlist-backend/internal/db"
	"github.com/adminkit/flexlist-backend/internal/handlers"
	"github.com/adminkit/flexlist-backend/internal/logger"
	"github.com/adminkit/flexlist-backend/internal/middleware"
	"github.com/adminkit/flexlist-backend/internal/repos"
	"github.com/adminkit/flexlist-backend/internal/server"
	"github.com/adminkit/flexlist-backend/internal/services"
	"github.com/adminkit/flexlist-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "", log)

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := dbService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	layoutConfigRepo := repos.NewLayoutConfigRepo(gdb, log)

	// Admin registry
	log.Info("Setting up admin registry from main...")
	site := adminsite.NewSite(log)
	if err := registerDemoAdmin(site); err != nil {
		log.Error("Admin registry setup failed", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services from main...")
	configStore := services.NewConfigStore(log, layoutConfigRepo)
	listDisplayService := services.NewListDisplayService(log, site, configStore)
	appListService := services.NewAppListService(log, site, configStore)
	modelListService := services.NewModelListService(log, site, configStore)
	authService := services.NewAuthService(
		gdb,
		log,
		userRepo,
		userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(gdb, log, userRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	layoutHandler := handlers.NewLayoutHandler(listDisplayService, appListService, modelListService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:    corsOrigins,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		LayoutHandler:  layoutHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}

// registerDemoAdmin populates the registry the way a host console would at
// boot. Registration order defines the authoritative order the reconciler
// falls back to.
func registerDemoAdmin(site *adminsite.Site) error {
	if err := site.RegisterApp(adminsite.AppInfo{Label: "blog", Name: "Blog"}); err != nil {
		return err
	}
	if err := site.RegisterModel("blog", adminsite.ModelSpec{
		Name:        "post",
		ObjectName:  "Post",
		DisplayName: "Posts",
		Verbose:     "blog post",
		Fields: []adminsite.Field{
			{Name: "title", Label: "title"},
			{Name: "author", Label: "author"},
			{Name: "published_at", Label: "published at"},
		},
	}, adminsite.ModelAdmin{
		ListDisplay: []adminsite.ColumnRef{
			adminsite.Named("__str__"),
			adminsite.Named("title"),
			adminsite.Named("author"),
			adminsite.Named("published_at"),
			adminsite.Computed{Name: "word_count", Label: "word count"},
		},
	}); err != nil {
		return err
	}
	if err := site.RegisterModel("blog", adminsite.ModelSpec{
		Name:        "comment",
		ObjectName:  "Comment",
		DisplayName: "Comments",
		Verbose:     "comment",
		Fields: []adminsite.Field{
			{Name: "post", Label: "post"},
			{Name: "author", Label: "author"},
			{Name: "created_at", Label: "created at"},
		},
	}, adminsite.ModelAdmin{
		ListDisplay: []adminsite.ColumnRef{
			adminsite.Named("__str__"),
			adminsite.Named("post"),
			adminsite.Named("author"),
			adminsite.Named("created_at"),
		},
	}); err != nil {
		return err
	}

	if err := site.RegisterApp(adminsite.AppInfo{Label: "accounts", Name: "Accounts"}); err != nil {
		return err
	}
	if err := site.RegisterModel("accounts", adminsite.ModelSpec{
		Name:        "user",
		ObjectName:  "User",
		DisplayName: "Users",
		Verbose:     "user",
		Fields: []adminsite.Field{
			{Name: "email", Label: "email address"},
			{Name: "first_name", Label: "first name"},
			{Name: "last_name", Label: "last name"},
			{Name: "is_staff", Label: "staff status"},
		},
	}, adminsite.ModelAdmin{
		ListDisplay: []adminsite.ColumnRef{
			adminsite.Named("email"),
			adminsite.Named("first_name"),
			adminsite.Named("last_name"),
			adminsite.Named("is_staff"),
		},
	}); err != nil {
		return err
	}
	return nil
}
