package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/hirecode-2025.net/internal/adapter/crypto"
	"gitlab.com/hirecode-2025.net/internal/adapter/lambda/executorport"
	"gitlab.com/hirecode-2025.net/internal/adapter/logging"
	memorycounter "gitlab.com/hirecode-2025.net/internal/adapter/memory/ratelimitport"
	"gitlab.com/hirecode-2025.net/internal/adapter/postgres/submissionrepository"
	rediscounter "gitlab.com/hirecode-2025.net/internal/adapter/redis/ratelimitport"
	"gitlab.com/hirecode-2025.net/internal/adapter/s3/objectstore"
	"gitlab.com/hirecode-2025.net/internal/adapter/ses/emailport"
	"gitlab.com/hirecode-2025.net/internal/adapter/sns/smsport"
	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	auth2 "gitlab.com/hirecode-2025.net/internal/core/services/auth"
	"gitlab.com/hirecode-2025.net/internal/core/services/execution"
	"gitlab.com/hirecode-2025.net/internal/core/services/ratelimit"
	"gitlab.com/hirecode-2025.net/internal/core/services/submission"
	logger2 "gitlab.com/hirecode-2025.net/internal/global/logger"
	http2 "gitlab.com/hirecode-2025.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.DebugMode)
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting code assessment service", "service", sysCfg.HttpConfig.ServiceName)

	ctxBg := context.Background()

	awsCfg, err := loadAWSConfig(ctxBg, sysCfg.AwsConfig)
	if err != nil {
		logger.Error("Failed to load aws config", "error", err)
		os.Exit(1)
	}

	// SECONDARY PORTS
	backend := executorport.NewLambdaBackend(lambda.NewFromConfig(awsCfg), logger)
	store := objectstore.NewS3Store(s3.NewFromConfig(awsCfg), sysCfg.AwsConfig.BucketName, logger)
	counter, redisClient := setupCounter(ctxBg, sysCfg.RedisConfig, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	submissionOpts := []submission.SubmissionServiceOption{
		submission.WithNotifiers(setupNotifiers(awsCfg, sysCfg.NotifyConfig, logger)...),
	}
	if sysCfg.PostgresConfig.Enabled() {
		db, err := setupDatabase(sysCfg.PostgresConfig.Url)
		if err != nil {
			logger.Error("Failed to set up database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := submissionrepository.NewSubmissionRepository(db, logger, sysCfg.PostgresConfig.Schema)
		if err := repo.Migrate(ctxBg); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		submissionOpts = append(submissionOpts, submission.WithIndex(repo))
	}

	//primary ports
	jwtProvider, err := crypto.NewJWTService(sysCfg.JwtConfig)
	if err != nil {
		logger.Error("Failed to set up jwt provider", "error", err)
		os.Exit(1)
	}

	//services
	executionSvc := execution.NewExecutionService(
		backend,
		execution.NewRegistry(sysCfg.ExecutorConfig.FunctionPrefix),
		execution.DefaultRuleSet(),
		logger,
	)
	submissionSvc := submission.NewSubmissionService(store, sysCfg.NotifyConfig.ReviewBaseURL, logger, submissionOpts...)
	limiter := ratelimit.NewLimiter(counter, sysCfg.RateLimitConfig, logger)
	sessionLimiter := ratelimit.NewLimiter(counter, sysCfg.RateLimitConfig, logger,
		ratelimit.WithScope("session"), ratelimit.WithLimit(sysCfg.RateLimitConfig.SessionLimit))
	accessCodeAuth, err := auth2.NewAccessCodeAuthService(jwtProvider, sysCfg.AccessConfig, logger)
	if err != nil {
		logger.Error("Failed to set up access codes", "error", err)
		os.Exit(1)
	}
	ggAuth := auth2.NewGoogleAuthService(jwtProvider, sysCfg.GGAuthConfig)
	serviceProvider := http2.NewServiceProvider(executionSvc, submissionSvc, limiter, sessionLimiter, jwtProvider, ggAuth, accessCodeAuth)

	//server
	httServer := http2.NewServer(sysCfg.HttpConfig.Port, sysCfg.HttpConfig.ServiceName, *serviceProvider, sysCfg.GGAuthConfig, logger)
	if err := httServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	serveErr := httServer.Start(ctxBg)

	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			logger.Error("Http server stopped", "error", err)
		}
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 30*time.Second)
	defer cancel()
	if err := httServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	submissionSvc.Wait()

	logger.Info("successfully shutdown server")
}

// loadAWSConfig resolves the shared aws config, preferring explicit keys when both are set
func loadAWSConfig(ctx context.Context, cfg *config.AwsConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// setupCounter picks the redis counter when redis is configured, the in-memory one otherwise
func setupCounter(ctx context.Context, cfg *config.RedisConfig, logger *logging.ZapLogger) (secondary.RequestCounter, *redis.Client) {
	if !cfg.Enabled() {
		logger.Info("Rate limiting in memory")
		return memorycounter.NewRequestCounter(), nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not reachable, rate limiting will fail open until it is", "addr", cfg.Url, "error", err)
	}
	return rediscounter.NewRequestCounter(redisClient, logger), redisClient
}

func setupNotifiers(awsCfg aws.Config, cfg *config.NotifyConfig, logger *logging.ZapLogger) []secondary.Notifier {
	var notifiers []secondary.Notifier
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, emailport.NewEmailNotifier(sesv2.NewFromConfig(awsCfg), cfg.FromEmail, []string{cfg.RecruiterEmail}, logger))
	}
	if cfg.SMSEnabled() {
		notifiers = append(notifiers, smsport.NewSMSNotifier(sns.NewFromConfig(awsCfg), cfg.RecruiterPhone, logger))
	}
	logger.Info("Recruiter notifications", "count", len(notifiers))
	return notifiers
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// InitReader loads <env>.env when an environment name is given, .env otherwise
func InitReader() {
	if len(os.Args) >= 2 {
		environment := os.Args[1]
		if err := godotenv.Load(environment + ".env"); err != nil {
			log.Fatalf("Error loading %s.env file", environment)
		}
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger2.Warn("Failed to load .env file", "error", err)
	}
}
