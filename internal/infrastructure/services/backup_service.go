package services

import (
	"context"
	"fmt"
	"path/filepath"
	"rtc-agent/internal/domain/constants"
	"rtc-agent/internal/domain/entities"
	"rtc-agent/internal/domain/errors"
	"rtc-agent/internal/domain/interfaces"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const backupFileExt = ".yaml"

// BackupService는 RTC 를 덮어쓰기 전의 값을 YAML 파일로 보관하는 서비스입니다
type BackupService struct {
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	logger     *logrus.Logger
	backupDir  string
	device     string
}

// backupDocument는 백업 파일의 YAML 구조입니다
type backupDocument struct {
	Device   string       `yaml:"device"`
	TakenAt  string       `yaml:"taken_at"`
	Readable string       `yaml:"readable"`
	RTCTime  rtcTimeBlock `yaml:"rtc_time"`
}

type rtcTimeBlock struct {
	Sec   int32 `yaml:"tm_sec"`
	Min   int32 `yaml:"tm_min"`
	Hour  int32 `yaml:"tm_hour"`
	Mday  int32 `yaml:"tm_mday"`
	Mon   int32 `yaml:"tm_mon"`
	Year  int32 `yaml:"tm_year"`
	Wday  int32 `yaml:"tm_wday"`
	Yday  int32 `yaml:"tm_yday"`
	Isdst int32 `yaml:"tm_isdst"`
}

// NewBackupService는 새로운 BackupService를 생성합니다
func NewBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	logger *logrus.Logger,
	backupDir string,
) interfaces.BackupService {
	return &BackupService{
		fileSystem: fs,
		clock:      clock,
		logger:     logger,
		backupDir:  backupDir,
		device:     constants.DevicePath,
	}
}

// CreateBackup은 RTC 값의 백업을 생성하고 파일 경로를 반환합니다
func (s *BackupService) CreateBackup(ctx context.Context, t entities.RTCTime) (string, error) {
	// 백업 디렉토리 생성
	if err := s.fileSystem.MkdirAll(s.backupDir, constants.BackupDirPermission); err != nil {
		return "", errors.NewSystemError("백업 디렉토리 생성 실패", err)
	}

	now := s.clock.Now()
	doc := backupDocument{
		Device:   s.device,
		TakenAt:  now.Format("2006-01-02T15:04:05Z07:00"),
		Readable: t.String(),
		RTCTime:  rtcTimeBlock(t),
	}

	content, err := yaml.Marshal(&doc)
	if err != nil {
		return "", errors.NewSystemError("백업 직렬화 실패", err)
	}

	// 백업 파일명 생성 (예: rtc0_20250108_150405.yaml)
	backupFileName := constants.BackupFilePrefix + now.Format("20060102_150405") + backupFileExt
	backupPath := filepath.Join(s.backupDir, backupFileName)

	if err := s.fileSystem.WriteFile(backupPath, content, constants.BackupFilePermission); err != nil {
		return "", errors.NewSystemError("백업 파일 저장 실패", err)
	}

	s.logger.WithFields(logrus.Fields{
		"rtc_time":    t.String(),
		"backup_path": backupPath,
	}).Info("RTC backup created")

	return backupPath, nil
}

// LatestBackup은 가장 최근 백업 파일의 RTC 값을 읽습니다
func (s *BackupService) LatestBackup(ctx context.Context) (entities.RTCTime, error) {
	backupFiles, err := s.findBackupFiles()
	if err != nil {
		return entities.RTCTime{}, err
	}

	if len(backupFiles) == 0 {
		return entities.RTCTime{}, errors.NewNotFoundError(fmt.Sprintf("no RTC backup in %s", s.backupDir), nil)
	}

	// 가장 최근 백업 파일 선택 (이미 정렬됨)
	latest := filepath.Join(s.backupDir, backupFiles[len(backupFiles)-1])

	content, err := s.fileSystem.ReadFile(latest)
	if err != nil {
		return entities.RTCTime{}, errors.NewSystemError("백업 파일 읽기 실패", err)
	}

	var doc backupDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return entities.RTCTime{}, errors.NewValidationError(fmt.Sprintf("malformed backup %s", latest), err)
	}

	s.logger.WithField("backup_file", latest).Debug("RTC backup loaded")
	return entities.RTCTime(doc.RTCTime), nil
}

// findBackupFiles는 백업 파일들을 찾아 정렬된 목록을 반환합니다
func (s *BackupService) findBackupFiles() ([]string, error) {
	if !s.fileSystem.Exists(s.backupDir) {
		return []string{}, nil
	}

	files, err := s.fileSystem.ListFiles(s.backupDir)
	if err != nil {
		return nil, errors.NewSystemError("백업 디렉토리 읽기 실패", err)
	}

	var backupFiles []string
	for _, file := range files {
		if strings.HasPrefix(file, constants.BackupFilePrefix) && strings.HasSuffix(file, backupFileExt) {
			backupFiles = append(backupFiles, file)
		}
	}

	// 파일명 기준 정렬 (타임스탬프가 포함되어 있으므로 시간순 정렬됨)
	sort.Strings(backupFiles)

	return backupFiles, nil
}
