package persistence

import (
	"context"
	"rtc-agent/internal/domain/entities"
	"rtc-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// LogJournal은 데이터베이스 없이 로그로만 남기는 EventJournal 구현체입니다
type LogJournal struct {
	device string
	logger *logrus.Logger
}

// NewLogJournal은 새로운 LogJournal을 생성합니다
func NewLogJournal(device string, logger *logrus.Logger) interfaces.EventJournal {
	return &LogJournal{device: device, logger: logger}
}

func (j *LogJournal) RecordTimeSet(ctx context.Context, t entities.RTCTime) error {
	j.logger.WithFields(logrus.Fields{
		"device":   j.device,
		"rtc_time": t.String(),
		"tm_year":  t.Year,
	}).Debug("RTC time written")
	return nil
}

func (j *LogJournal) RecordEvent(ctx context.Context, index int, ev entities.InterruptEvent) error {
	j.logger.WithFields(logrus.Fields{
		"device":    j.device,
		"index":     index,
		"flags":     ev.Flags,
		"irq_count": ev.Count,
	}).Debug("Interrupt event read")
	return nil
}

func (j *LogJournal) Close() error {
	return nil
}
