package config

import (
	"os"
	"testing"
	"time"

	"rtc-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"EVENT_COUNT", "INITIAL_YEAR", "REWRITE_YEAR", "REWRITE_AT", "RESTORE_ON_EXIT", "BACKUP_DIR",
	"LOG_LEVEL", "LOG_FORMAT", "HEALTH_PORT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_MAX_LIFETIME",
}

func TestEnvironmentConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		wantError bool
		validate  func(*testing.T, *Config)
	}{
		{
			name:      "기본 설정값 사용",
			envVars:   map[string]string{},
			wantError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5, cfg.Demo.EventCount)
				assert.Equal(t, int32(70), cfg.Demo.InitialYear)
				assert.Equal(t, int32(130), cfg.Demo.RewriteYear)
				assert.Equal(t, 3, cfg.Demo.RewriteAt)
				assert.False(t, cfg.Demo.RestoreOnExit)
				assert.Equal(t, "/var/lib/rtc-agent/backups", cfg.Demo.BackupDirectory)
				assert.Equal(t, "info", cfg.Log.Level)
				assert.Equal(t, "json", cfg.Log.Format)
				assert.False(t, cfg.Database.Enabled())
				assert.Equal(t, "", cfg.Health.Port)
			},
		},
		{
			name: "환경 변수로 설정 오버라이드",
			envVars: map[string]string{
				"EVENT_COUNT":     "10",
				"INITIAL_YEAR":    "100",
				"REWRITE_YEAR":    "125",
				"REWRITE_AT":      "7",
				"RESTORE_ON_EXIT": "true",
				"BACKUP_DIR":      "/custom/backup",
				"LOG_FORMAT":      "TEXT",
				"HEALTH_PORT":     "9090",
				"DB_HOST":         "journal-db",
				"DB_NAME":         "rtc",
				"DB_MAX_LIFETIME": "1m",
			},
			wantError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.Demo.EventCount)
				assert.Equal(t, int32(100), cfg.Demo.InitialYear)
				assert.Equal(t, int32(125), cfg.Demo.RewriteYear)
				assert.Equal(t, 7, cfg.Demo.RewriteAt)
				assert.True(t, cfg.Demo.RestoreOnExit)
				assert.Equal(t, "/custom/backup", cfg.Demo.BackupDirectory)
				assert.Equal(t, "text", cfg.Log.Format)
				assert.Equal(t, "9090", cfg.Health.Port)
				assert.True(t, cfg.Database.Enabled())
				assert.Equal(t, "journal-db", cfg.Database.Host)
				assert.Equal(t, "3306", cfg.Database.Port)
				assert.Equal(t, "rtc", cfg.Database.Database)
				assert.Equal(t, time.Minute, cfg.Database.MaxLifetime)
			},
		},
		{
			name: "잘못된 숫자 형식은 기본값 사용",
			envVars: map[string]string{
				"EVENT_COUNT":     "five",
				"RESTORE_ON_EXIT": "maybe",
			},
			wantError: false,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5, cfg.Demo.EventCount)
				assert.False(t, cfg.Demo.RestoreOnExit)
			},
		},
		{
			name: "이벤트 수 0 은 유효성 검증 실패",
			envVars: map[string]string{
				"EVENT_COUNT": "0",
			},
			wantError: true,
		},
		{
			name: "알 수 없는 로그 형식",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 환경 변수 초기화 후 설정 (테스트 종료 시 자동 복원)
			for _, key := range configEnvKeys {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			loader := NewEnvironmentConfigLoader()
			config, err := loader.Load()

			if tt.wantError {
				assert.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				assert.Nil(t, config)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, config)
				tt.validate(t, config)
			}
		})
	}
}

func TestEnvironmentConfigLoader_validate(t *testing.T) {
	loader := &EnvironmentConfigLoader{}

	validDemo := DemoConfig{EventCount: 5, InitialYear: 70, RewriteYear: 130, RewriteAt: 3}
	validLog := LogConfig{Level: "info", Format: "json"}

	tests := []struct {
		name      string
		config    *Config
		wantError bool
	}{
		{
			name:      "유효한 설정 (저널 비활성)",
			config:    &Config{Demo: validDemo, Log: validLog},
			wantError: false,
		},
		{
			name: "유효한 설정 (저널 활성)",
			config: &Config{
				Demo: validDemo,
				Log:  validLog,
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     "3306",
					User:     "user",
					Database: "db",
				},
			},
			wantError: false,
		},
		{
			name: "저널 활성 시 빈 DB 이름",
			config: &Config{
				Demo: validDemo,
				Log:  validLog,
				Database: DatabaseConfig{
					Host: "localhost",
					Port: "3306",
					User: "user",
				},
			},
			wantError: true,
		},
		{
			name: "잘못된 재기록 시점",
			config: &Config{
				Demo: DemoConfig{EventCount: 5, RewriteAt: 0},
				Log:  validLog,
			},
			wantError: true,
		},
		{
			name: "재기록 시점이 이벤트 수보다 커도 허용",
			config: &Config{
				Demo: DemoConfig{EventCount: 2, RewriteAt: 3},
				Log:  validLog,
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loader.validate(tt.config)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("getEnvOrDefault", func(t *testing.T) {
		result := getEnvOrDefault("RTC_AGENT_NON_EXISTENT_VAR", "default")
		assert.Equal(t, "default", result)

		t.Setenv("RTC_AGENT_TEST_VAR", "test_value")
		result = getEnvOrDefault("RTC_AGENT_TEST_VAR", "default")
		assert.Equal(t, "test_value", result)
	})

	t.Run("getEnvIntOrDefault", func(t *testing.T) {
		assert.Equal(t, 42, getEnvIntOrDefault("RTC_AGENT_NON_EXISTENT_INT", 42))

		t.Setenv("RTC_AGENT_TEST_INT", "123")
		assert.Equal(t, 123, getEnvIntOrDefault("RTC_AGENT_TEST_INT", 42))

		t.Setenv("RTC_AGENT_TEST_BAD_INT", "not_a_number")
		assert.Equal(t, 42, getEnvIntOrDefault("RTC_AGENT_TEST_BAD_INT", 42))
	})

	t.Run("getEnvBoolOrDefault", func(t *testing.T) {
		assert.True(t, getEnvBoolOrDefault("RTC_AGENT_NON_EXISTENT_BOOL", true))

		t.Setenv("RTC_AGENT_TEST_BOOL", "false")
		assert.False(t, getEnvBoolOrDefault("RTC_AGENT_TEST_BOOL", true))
	})

	t.Run("getEnvDurationOrDefault", func(t *testing.T) {
		assert.Equal(t, 30*time.Second, getEnvDurationOrDefault("RTC_AGENT_NON_EXISTENT_DURATION", 30*time.Second))

		t.Setenv("RTC_AGENT_TEST_DURATION", "1m30s")
		assert.Equal(t, 90*time.Second, getEnvDurationOrDefault("RTC_AGENT_TEST_DURATION", 30*time.Second))

		t.Setenv("RTC_AGENT_TEST_BAD_DURATION", "invalid")
		assert.Equal(t, 30*time.Second, getEnvDurationOrDefault("RTC_AGENT_TEST_BAD_DURATION", 30*time.Second))
	})
}
