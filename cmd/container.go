package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/compasshq/compass/guidance/profile"
	"github.com/compasshq/compass/guidance/profile/profileinfra"
	"github.com/compasshq/compass/guidance/recommendation"
	"github.com/compasshq/compass/guidance/recommendation/recommendationapi"
	"github.com/compasshq/compass/guidance/recommendation/recommendationinfra"
	"github.com/compasshq/compass/guidance/recommendation/recommendationsrv"
	"github.com/compasshq/compass/guidance/resume/resumeapi"
	"github.com/compasshq/compass/guidance/resume/resumesrv"
	"github.com/compasshq/compass/internal/ai/completion"
	"github.com/compasshq/compass/internal/ai/docext"
	"github.com/compasshq/compass/pkg/auth"
	"github.com/compasshq/compass/pkg/fsx"
	"github.com/compasshq/compass/pkg/fsx/fsxs3"
	"github.com/compasshq/compass/pkg/logx"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Adapters
	Completer recommendation.Completer
	Extractor recommendation.Extractor
	RunLock   recommendation.RunLock

	// Repositories
	ProfileRepo        profile.Repository
	RecommendationRepo recommendation.Repository

	// Services
	RecommendationService *recommendationsrv.Service
	ResumeService         *resumesrv.Service

	// API Handlers
	RecommendationHandlers *recommendationapi.Handlers
	ResumeHandlers         *resumeapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection (best-effort; only the run lock uses it)
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Remote model endpoints
	completionModel := os.Getenv("COMPLETION_MODEL")
	if completionModel == "" {
		completionModel = "gpt-4o"
	}
	c.Completer = completion.NewClient(os.Getenv("OPENAI_API_KEY"), completionModel)

	ocrEndpoint := os.Getenv("OCR_API_URL")
	if ocrEndpoint == "" {
		ocrEndpoint = "https://api.mistral.ai/v1/ocr"
	}
	ocrModel := os.Getenv("OCR_MODEL")
	if ocrModel == "" {
		ocrModel = "mistral-ocr-latest"
	}
	c.Extractor = docext.NewClient(ocrEndpoint, os.Getenv("OCR_API_KEY"), ocrModel)

	// 5. Auth
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "super-secret-key-please-change-me-in-production"
	}
	c.AuthMiddleware = auth.NewTokenMiddleware(secret)
}

func (c *Container) initServices() {
	// --- Repositories ---
	c.ProfileRepo = profileinfra.NewPostgresProfileRepository(c.DB)
	c.RecommendationRepo = recommendationinfra.NewPostgresRecommendationRepository(c.DB)
	c.RunLock = recommendationinfra.NewRedisRunLock(c.Redis)

	// --- Domain Services ---
	c.RecommendationService = recommendationsrv.NewService(
		c.RecommendationRepo,
		c.ProfileRepo,
		c.Completer,
		c.Extractor,
		c.RunLock,
	)
	c.ResumeService = resumesrv.NewService(c.FileSystem, c.ProfileRepo)

	// --- Handlers ---
	c.RecommendationHandlers = recommendationapi.NewHandlers(c.RecommendationService)
	c.ResumeHandlers = resumeapi.NewHandlers(c.ResumeService)
}
