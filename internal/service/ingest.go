package service

import (
	"context"
	"database/sql"
	"fmt"

	"airzy-ingest/internal/cache"
	"airzy-ingest/internal/config"
	"airzy-ingest/internal/consumer"
	"airzy-ingest/internal/database"
	"airzy-ingest/internal/mqtt"
	"airzy-ingest/internal/notifier"
	"airzy-ingest/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// IngestService 遥测接入服务（整合各层）
type IngestService struct {
	config      *config.Config
	db          *sql.DB
	redisClient *redis.Client
	mqttClient  *mqtt.Client
	logger      *zap.Logger

	// 各层组件
	accountRepo    *repository.AccountRepository
	policyRepo     *repository.AlertPolicyRepository
	readingRepo    *repository.ReadingRepository
	alertEventRepo *repository.AlertEventRepository
	cacheManager   *cache.Manager
	dispatcher     *AlertDispatcher
	pipeline       *Pipeline
	consumer       *consumer.MQTTConsumer
}

// NewIngestService 创建接入服务
func NewIngestService(cfg *config.Config, logger *zap.Logger) (*IngestService, error) {
	// 1. 连接数据库
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 2. 连接 Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	// 3. 创建 Repository 层
	accountRepo := repository.NewAccountRepository(db, logger)
	policyRepo := repository.NewAlertPolicyRepository(db, logger)
	readingRepo := repository.NewReadingRepository(db, logger)
	alertEventRepo := repository.NewAlertEventRepository(db, logger)

	// 4. 创建缓存管理器和通知通道
	cacheManager := cache.NewManager(cfg, redisClient, logger)
	n, err := notifier.NewNotifier(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	// 5. 创建告警派发器和处理管道
	dispatcher := NewAlertDispatcher(
		accountRepo,
		policyRepo,
		alertEventRepo,
		cacheManager,
		n,
		cfg.Notify.Subject,
		logger,
	)
	pipeline := NewPipeline(accountRepo, readingRepo, dispatcher, cacheManager, logger)

	// 6. 连接 MQTT 并创建消费者
	mqttClient, err := mqtt.NewClient(&cfg.MQTT, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	mqttConsumer := consumer.NewMQTTConsumer(cfg, mqttClient, pipeline, logger)

	return &IngestService{
		config:         cfg,
		db:             db,
		redisClient:    redisClient,
		mqttClient:     mqttClient,
		logger:         logger,
		accountRepo:    accountRepo,
		policyRepo:     policyRepo,
		readingRepo:    readingRepo,
		alertEventRepo: alertEventRepo,
		cacheManager:   cacheManager,
		dispatcher:     dispatcher,
		pipeline:       pipeline,
		consumer:       mqttConsumer,
	}, nil
}

// Start 启动服务（订阅遥测主题）
func (s *IngestService) Start(ctx context.Context) error {
	if err := s.consumer.Start(ctx); err != nil {
		return err
	}

	s.logger.Info("Ingest service started",
		zap.String("mqtt_broker", s.config.MQTT.Broker),
		zap.String("topic", s.config.MQTT.Topic),
	)

	return nil
}

// Stop 优雅关闭：先停消费者（等在途消息处理完），再释放存储资源
func (s *IngestService) Stop(ctx context.Context) error {
	if err := s.consumer.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop consumer", zap.Error(err))
	}

	s.mqttClient.Disconnect()

	if err := s.redisClient.Close(); err != nil {
		s.logger.Error("Failed to close redis client", zap.Error(err))
	}
	if err := database.Close(s.db); err != nil {
		s.logger.Error("Failed to close database", zap.Error(err))
	}

	s.logger.Info("Ingest service stopped")
	return nil
}
