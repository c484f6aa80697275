package interfaces

import (
	"context"

	"rtc-agent/internal/domain/entities"
)

// RTCDevice는 열린 RTC 디바이스 핸들에 대한 제어 인터페이스입니다
type RTCDevice interface {
	// GetTime은 RTC_RD_TIME 요청으로 현재 RTC 값을 읽습니다
	GetTime() (entities.RTCTime, error)

	// SetTime은 RTC_SET_TIME 요청으로 RTC 값을 씁니다
	SetTime(t entities.RTCTime) error

	// EnableUpdateInterrupt는 1Hz 업데이트 인터럽트를 켭니다
	EnableUpdateInterrupt() error

	// DisableUpdateInterrupt는 1Hz 업데이트 인터럽트를 끕니다
	DisableUpdateInterrupt() error

	// ReadEvent는 buf 가 가득 찰 때까지 블로킹으로 읽습니다
	ReadEvent(buf []byte) error

	// Close는 디스크립터를 닫습니다
	Close() error
}

// EventJournal은 디바이스 조작 이력을 기록하는 저장소입니다
type EventJournal interface {
	// RecordTimeSet은 RTC 에 쓴 값을 기록합니다
	RecordTimeSet(ctx context.Context, t entities.RTCTime) error

	// RecordEvent는 읽은 인터럽트 이벤트를 기록합니다
	RecordEvent(ctx context.Context, index int, ev entities.InterruptEvent) error

	// Close는 저장소 자원을 정리합니다
	Close() error
}

// BackupService는 덮어쓰기 전의 RTC 값을 보관합니다
type BackupService interface {
	// CreateBackup은 RTC 값을 백업 파일로 저장하고 경로를 반환합니다
	CreateBackup(ctx context.Context, t entities.RTCTime) (string, error)

	// LatestBackup은 가장 최근 백업을 읽습니다
	LatestBackup(ctx context.Context) (entities.RTCTime, error)
}

// StatusReporter는 디바이스 상태 변화를 보고받는 인터페이스입니다 (헬스체크용)
type StatusReporter interface {
	UpdateDeviceHealth(open bool, err error)
	SetUpdateInterrupt(enabled bool)
	IncrementEventsRead()
	IncrementTimeWrites()
}
