package container

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"rtc-agent/internal/application/usecases"
	"rtc-agent/internal/domain/constants"
	"rtc-agent/internal/domain/interfaces"
	"rtc-agent/internal/infrastructure/adapters"
	"rtc-agent/internal/infrastructure/config"
	"rtc-agent/internal/infrastructure/health"
	"rtc-agent/internal/infrastructure/persistence"
	"rtc-agent/internal/infrastructure/rtc"
	"rtc-agent/internal/infrastructure/services"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger
	out    io.Writer

	// 인프라스트럭처 어댑터들
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	infoReader interfaces.DeviceInfoReader

	// 디바이스
	device *rtc.Device

	// 서비스들
	healthService *health.HealthService
	backupService interfaces.BackupService
	journal       interfaces.EventJournal

	// 유스케이스
	demoUseCase *usecases.UpdateInterruptDemoUseCase

	// 데이터베이스
	db *sql.DB
}

// NewContainer는 새로운 Container를 생성합니다. out 은 데모 트레이스 출력입니다.
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
		out:    out,
	}

	if err := container.initializeInfrastructure(ctx); err != nil {
		container.Close()
		return nil, err
	}

	container.initializeServices()

	if err := container.initializeDevice(); err != nil {
		container.Close()
		return nil, err
	}

	container.initializeUseCases()

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure(ctx context.Context) error {
	// 기본 어댑터들 초기화
	c.fileSystem = adapters.NewRealFileSystem()
	c.clock = adapters.NewRealClock()
	c.infoReader = adapters.NewSysfsDeviceInfoReader(c.fileSystem)

	// 저널: DB 설정이 없으면 로그로 대체
	if !c.config.Database.Enabled() {
		c.journal = persistence.NewLogJournal(constants.DevicePath, c.logger)
		return nil
	}

	db, err := sql.Open("mysql", c.buildDSN())
	if err != nil {
		return err
	}
	c.db = db

	// 연결 풀 설정
	db.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.config.Database.MaxLifetime)

	// 연결 테스트
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	journal, err := persistence.NewMySQLJournal(ctx, db, constants.DevicePath, c.clock, c.logger)
	if err != nil {
		return err
	}
	c.journal = journal

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() {
	// 헬스 서비스
	c.healthService = health.NewHealthService(c.clock, c.logger, constants.DevicePath)

	// 백업 서비스 (BACKUP_DIR 이 비어 있으면 생략)
	if c.config.Demo.BackupDirectory != "" {
		c.backupService = services.NewBackupService(c.fileSystem, c.clock, c.logger, c.config.Demo.BackupDirectory)
	}
}

// initializeDevice는 RTC 디바이스를 엽니다
func (c *Container) initializeDevice() error {
	name := filepath.Base(constants.DevicePath)
	if info, err := c.infoReader.ReadInfo(name); err != nil {
		c.logger.WithError(err).Debug("RTC sysfs attributes unavailable")
	} else {
		c.healthService.SetDeviceInfo(info)
		c.logger.WithFields(logrus.Fields{
			"driver":  info.Driver,
			"hctosys": info.HCToSys,
		}).Info("RTC driver detected")
	}

	device, err := rtc.Open(constants.DevicePath, c.logger)
	if err != nil {
		c.healthService.UpdateDeviceHealth(false, err)
		return err
	}
	c.device = device
	c.healthService.UpdateDeviceHealth(true, nil)

	return nil
}

// initializeUseCases는 유스케이스들을 초기화합니다
func (c *Container) initializeUseCases() {
	c.demoUseCase = usecases.NewUpdateInterruptDemoUseCase(
		c.device,
		c.journal,
		c.backupService,
		c.healthService,
		c.clock,
		c.out,
		c.logger,
	)
}

// buildDSN은 데이터베이스 연결 문자열을 생성합니다
func (c *Container) buildDSN() string {
	cfg := c.config.Database
	return cfg.User + ":" + cfg.Password + "@tcp(" + cfg.Host + ":" + cfg.Port + ")/" + cfg.Database + "?parseTime=true"
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetHealthService는 헬스 서비스를 반환합니다
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetDevice는 열린 RTC 디바이스를 반환합니다
func (c *Container) GetDevice() *rtc.Device {
	return c.device
}

// GetUpdateInterruptDemoUseCase는 데모 유스케이스를 반환합니다
func (c *Container) GetUpdateInterruptDemoUseCase() *usecases.UpdateInterruptDemoUseCase {
	return c.demoUseCase
}

// Close는 컨테이너를 정리하고 첫 번째 에러를 반환합니다
func (c *Container) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.device != nil {
		keep(c.device.Close())
		if c.healthService != nil {
			c.healthService.UpdateDeviceHealth(false, nil)
		}
	}
	if c.journal != nil {
		keep(c.journal.Close())
	}
	// MySQL 저널은 DB 연결을 함께 닫음
	if c.db != nil && c.journal == nil {
		keep(c.db.Close())
	}
	return firstErr
}
