package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rtc-agent/internal/application/usecases"
	"rtc-agent/internal/domain/constants"
	"rtc-agent/internal/infrastructure/config"
	"rtc-agent/internal/infrastructure/container"
	"rtc-agent/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const agentVersion = "0.1.0"

func main() {
	// 로거 초기화
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// 설정 로드
	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	configureLogger(logger, cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 트레이스 출력은 stdout, 로그는 stderr
	out := bufio.NewWriter(os.Stdout)

	// 의존성 주입 컨테이너 생성 (디바이스 열기 포함)
	appContainer, err := container.NewContainer(ctx, cfg, logger, out)
	if err != nil {
		logger.WithError(err).WithField("device", constants.DevicePath).Fatal("Failed to create dependency injection container")
	}

	app := NewApplication(appContainer, logger)
	runErr := app.Run(ctx, cancel)

	if err := appContainer.Close(); err != nil {
		logger.WithError(err).Error("Failed to cleanup container")
	}
	if runErr != nil {
		logger.WithError(runErr).Fatal("Update interrupt demo failed")
	}
}

// configureLogger는 LOG_LEVEL, LOG_FORMAT 설정을 적용합니다
func configureLogger(logger *logrus.Logger, cfg config.LogConfig) {
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logLevel, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", cfg.Level)
		logger.SetLevel(logrus.InfoLevel)
		return
	}
	logger.SetLevel(logLevel)
}

// Application은 메인 애플리케이션 구조체입니다
type Application struct {
	container    *container.Container
	logger       *logrus.Logger
	demoUseCase  *usecases.UpdateInterruptDemoUseCase
	healthServer *http.Server
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(container *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container:   container,
		logger:      logger,
		demoUseCase: container.GetUpdateInterruptDemoUseCase(),
	}
}

// Run은 데모 시퀀스를 한 번 실행합니다
func (a *Application) Run(ctx context.Context, cancel context.CancelFunc) error {
	cfg := a.container.GetConfig()

	// 에이전트 정보 메트릭 설정
	hostname, _ := os.Hostname()
	metrics.SetAgentInfo(agentVersion, constants.DevicePath, hostname)

	// 헬스체크 서버 시작
	if cfg.Health.Port != "" {
		a.startHealthServer(cfg.Health.Port)
		defer a.shutdown()
	}

	// 시그널 핸들링: 취소 후 디바이스를 닫아 대기 중인 읽기를 깨움
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
			cancel()
			if err := a.container.GetDevice().Close(); err != nil {
				a.logger.WithError(err).Warn("Failed to close RTC device")
			}
		case <-done:
		}
	}()

	a.logger.WithFields(logrus.Fields{
		"device":       a.container.GetDevice().Path(),
		"event_count":  cfg.Demo.EventCount,
		"initial_year": cfg.Demo.InitialYear,
		"rewrite_year": cfg.Demo.RewriteYear,
		"rewrite_at":   cfg.Demo.RewriteAt,
	}).Info("RTC agent started")

	output, err := a.demoUseCase.Execute(ctx, usecases.UpdateInterruptDemoInput{
		EventCount:    cfg.Demo.EventCount,
		InitialYear:   cfg.Demo.InitialYear,
		RewriteYear:   cfg.Demo.RewriteYear,
		RewriteAt:     cfg.Demo.RewriteAt,
		RestoreOnExit: cfg.Demo.RestoreOnExit,
	})
	if err != nil {
		return err
	}

	if output.BackupPath != "" {
		a.logger.WithField("backup", output.BackupPath).Info("Original RTC time saved")
	}
	return nil
}

// startHealthServer는 헬스체크 서버를 시작합니다
func (a *Application) startHealthServer(port string) {
	healthService := a.container.GetHealthService()

	// HTTP 핸들러 설정
	mux := http.NewServeMux()
	mux.Handle("/", healthService)
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()
}

// shutdown은 헬스체크 서버를 정리합니다
func (a *Application) shutdown() {
	if a.healthServer == nil {
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := a.healthServer.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("Failed to shutdown health check server")
	}
}
