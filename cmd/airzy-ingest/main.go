package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"airzy-ingest/internal/config"
	"airzy-ingest/internal/logger"
	"airzy-ingest/internal/service"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化Logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "airzy-ingest")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting airzy-ingest service",
		zap.String("mqtt_broker", cfg.MQTT.Broker),
		zap.String("topic", cfg.MQTT.Topic),
		zap.String("notify_channel", cfg.Notify.Channel),
	)

	// 创建服务
	ingestService, err := service.NewIngestService(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create ingest service", zap.Error(err))
	}

	// 启动服务
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ingestService.Start(ctx); err != nil {
		zapLogger.Fatal("Failed to start ingest service", zap.Error(err))
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	zapLogger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	// 优雅关闭
	cancel()
	if err := ingestService.Stop(ctx); err != nil {
		zapLogger.Error("Error during shutdown", zap.Error(err))
	}

	zapLogger.Info("Service stopped")
}
