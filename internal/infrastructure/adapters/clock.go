package adapters

import (
	"rtc-agent/internal/domain/interfaces"
	"time"
)

// RealClock은 시스템 시간을 UTC 로 돌려주는 Clock 구현체입니다.
// RTC 는 UTC 로 유지되므로 백업 파일명과 로그도 UTC 를 씁니다.
type RealClock struct{}

// NewRealClock은 새로운 RealClock을 생성합니다
func NewRealClock() interfaces.Clock {
	return &RealClock{}
}

// Now는 현재 UTC 시간을 반환합니다
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
