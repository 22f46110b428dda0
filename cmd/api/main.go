package main

import (
	"log"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Algets07/employee-management/internal/config"
	"github.com/Algets07/employee-management/internal/database"
	"github.com/Algets07/employee-management/internal/handlers"
	"github.com/Algets07/employee-management/internal/logger"
	"github.com/Algets07/employee-management/internal/router"
	"github.com/Algets07/employee-management/internal/services"
	"github.com/Algets07/employee-management/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	zlog := logger.Init(cfg.Log.File)
	defer zlog.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}

	if err := database.SeedDefaultAdmin(db, cfg.Admin); err != nil {
		zlog.Fatal("seeding default admin", zap.Error(err))
	}

	// Redis only backs server-side logout; without it the session ends
	// when the cookie is cleared.
	var blacklist *session.Blacklist
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		blacklist = session.NewBlacklist(client, "session:revoked:")
	}

	authService := services.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.TTL)
	employeeService := services.NewEmployeeService(db)
	workService := services.NewWorkService(db)
	noticeService := services.NewNoticeService(db)
	attendanceService := services.NewAttendanceService(db)

	authHandler := handlers.NewAuthHandler(authService, blacklist, zlog)
	appHandler := handlers.NewAppHandler(employeeService, workService, noticeService, attendanceService, zlog)

	engine := router.New(authHandler, appHandler, authService, blacklist, cfg.Server.CORSOrigins)

	zlog.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
