package app

import (
	"database/sql"
	"os"

	"go-hrm/internal/employee"
	"go-hrm/internal/leaverequest"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"
	"go-hrm/internal/review"
	"go-hrm/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, rdb, logger)
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leaverequest.NewRepository(gormDB)
	reviewRepo := review.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, logger)
	leaveService := leaverequest.NewServiceWithDeps(db, leaveRepo, outboxRepo, rdb, logger)
	reviewService := review.NewService(db, reviewRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leaverequest.NewHandler(leaveService, logger)
	reviewHandler := review.NewHandler(reviewService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		review.RegisterRoutes(api, reviewHandler, rbacService)
	}

	return nil
}
