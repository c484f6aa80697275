package services

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"rtc-agent/internal/domain/entities"
	domainErrors "rtc-agent/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFileSystem) ListFiles(path string) ([]string, error) {
	args := m.Called(path)
	return args.Get(0).([]string), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var backupTestTime = entities.RTCTime{Sec: 7, Min: 8, Hour: 9, Mday: 10, Mon: 10, Year: 124, Wday: 0, Yday: 314}

func TestBackupService_CreateBackup(t *testing.T) {
	mockFS := new(MockFileSystem)
	clock := fixedClock{now: time.Date(2025, time.January, 8, 15, 4, 5, 0, time.UTC)}

	var written []byte
	mockFS.On("MkdirAll", "/backups", os.FileMode(0755)).Return(nil)
	mockFS.On("WriteFile", "/backups/rtc0_20250108_150405.yaml", mock.Anything, os.FileMode(0644)).
		Run(func(args mock.Arguments) {
			written = args.Get(1).([]byte)
		}).Return(nil)

	service := NewBackupService(mockFS, clock, newTestLogger(), "/backups")
	path, err := service.CreateBackup(context.Background(), backupTestTime)

	require.NoError(t, err)
	assert.Equal(t, "/backups/rtc0_20250108_150405.yaml", path)

	var doc backupDocument
	require.NoError(t, yaml.Unmarshal(written, &doc))
	assert.Equal(t, "/dev/rtc0", doc.Device)
	assert.Equal(t, "2024-11-10 09:08:07", doc.Readable)
	assert.Equal(t, "2025-01-08T15:04:05Z", doc.TakenAt)
	assert.Equal(t, int32(124), doc.RTCTime.Year)
	assert.Contains(t, string(written), "tm_year: 124")

	mockFS.AssertExpectations(t)
}

func TestBackupService_CreateBackupFailures(t *testing.T) {
	t.Run("디렉토리 생성 실패", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		mockFS.On("MkdirAll", "/backups", mock.Anything).Return(errors.New("read-only file system"))

		service := NewBackupService(mockFS, fixedClock{}, newTestLogger(), "/backups")
		_, err := service.CreateBackup(context.Background(), backupTestTime)

		assert.True(t, domainErrors.IsSystemError(err))
		mockFS.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("파일 저장 실패", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		mockFS.On("MkdirAll", "/backups", mock.Anything).Return(nil)
		mockFS.On("WriteFile", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no space left on device"))

		service := NewBackupService(mockFS, fixedClock{}, newTestLogger(), "/backups")
		_, err := service.CreateBackup(context.Background(), backupTestTime)

		assert.True(t, domainErrors.IsSystemError(err))
	})
}

func TestBackupService_LatestBackupRoundTrip(t *testing.T) {
	mockFS := new(MockFileSystem)
	clock := fixedClock{now: time.Date(2025, time.January, 8, 15, 4, 5, 0, time.UTC)}

	var written []byte
	mockFS.On("MkdirAll", "/backups", mock.Anything).Return(nil)
	mockFS.On("WriteFile", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]byte)
	}).Return(nil)

	service := NewBackupService(mockFS, clock, newTestLogger(), "/backups")
	_, err := service.CreateBackup(context.Background(), backupTestTime)
	require.NoError(t, err)

	mockFS.On("Exists", "/backups").Return(true)
	mockFS.On("ListFiles", "/backups").Return([]string{
		"notes.txt",
		"rtc0_20240101_000000.yaml",
		"rtc0_20250108_150405.yaml",
	}, nil)
	mockFS.On("ReadFile", "/backups/rtc0_20250108_150405.yaml").Return(written, nil)

	restored, err := service.LatestBackup(context.Background())

	require.NoError(t, err)
	assert.Equal(t, backupTestTime, restored)
	mockFS.AssertExpectations(t)
}

func TestBackupService_LatestBackupErrors(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(m *MockFileSystem)
		errorCheck func(error) bool
	}{
		{
			name: "백업 디렉토리 없음",
			setup: func(m *MockFileSystem) {
				m.On("Exists", "/backups").Return(false)
			},
			errorCheck: domainErrors.IsNotFoundError,
		},
		{
			name: "백업 파일 없음",
			setup: func(m *MockFileSystem) {
				m.On("Exists", "/backups").Return(true)
				m.On("ListFiles", "/backups").Return([]string{"other.yaml"}, nil)
			},
			errorCheck: domainErrors.IsNotFoundError,
		},
		{
			name: "디렉토리 읽기 실패",
			setup: func(m *MockFileSystem) {
				m.On("Exists", "/backups").Return(true)
				m.On("ListFiles", "/backups").Return([]string(nil), errors.New("EIO"))
			},
			errorCheck: domainErrors.IsSystemError,
		},
		{
			name: "손상된 백업 파일",
			setup: func(m *MockFileSystem) {
				m.On("Exists", "/backups").Return(true)
				m.On("ListFiles", "/backups").Return([]string{"rtc0_20250108_150405.yaml"}, nil)
				m.On("ReadFile", "/backups/rtc0_20250108_150405.yaml").Return([]byte("rtc_time: [not, a, map"), nil)
			},
			errorCheck: domainErrors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := new(MockFileSystem)
			tt.setup(mockFS)

			service := NewBackupService(mockFS, fixedClock{}, newTestLogger(), "/backups")
			_, err := service.LatestBackup(context.Background())

			require.Error(t, err)
			assert.True(t, tt.errorCheck(err))
			mockFS.AssertExpectations(t)
		})
	}
}
