package persistence

import (
	"context"
	"database/sql"
	"rtc-agent/internal/domain/entities"
	"rtc-agent/internal/domain/errors"
	"rtc-agent/internal/domain/interfaces"
	"rtc-agent/internal/infrastructure/metrics"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

const createJournalTable = `
	CREATE TABLE IF NOT EXISTS rtc_event_journal (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		device VARCHAR(64) NOT NULL,
		kind VARCHAR(16) NOT NULL,
		event_index INT NULL,
		flags TINYINT UNSIGNED NULL,
		irq_count INT UNSIGNED NULL,
		rtc_time VARCHAR(32) NULL,
		tm_year INT NULL,
		recorded_at DATETIME(6) NOT NULL
	)
`

// MySQLJournal은 MySQL 기반의 EventJournal 구현체입니다
type MySQLJournal struct {
	db     *sql.DB
	device string
	clock  interfaces.Clock
	logger *logrus.Logger
}

// NewMySQLJournal은 저널 테이블을 준비하고 새로운 MySQLJournal을 생성합니다
func NewMySQLJournal(ctx context.Context, db *sql.DB, device string, clock interfaces.Clock, logger *logrus.Logger) (interfaces.EventJournal, error) {
	if _, err := db.ExecContext(ctx, createJournalTable); err != nil {
		return nil, errors.NewSystemError("저널 테이블 생성 실패", err)
	}

	return &MySQLJournal{
		db:     db,
		device: device,
		clock:  clock,
		logger: logger,
	}, nil
}

// RecordTimeSet은 RTC 에 쓴 값을 기록합니다
func (j *MySQLJournal) RecordTimeSet(ctx context.Context, t entities.RTCTime) error {
	query := `
		INSERT INTO rtc_event_journal (device, kind, rtc_time, tm_year, recorded_at)
		VALUES (?, 'set_time', ?, ?, ?)
	`
	return j.exec(ctx, "record_time_set", query, j.device, t.String(), t.Year, j.clock.Now())
}

// RecordEvent는 읽은 인터럽트 이벤트를 기록합니다
func (j *MySQLJournal) RecordEvent(ctx context.Context, index int, ev entities.InterruptEvent) error {
	query := `
		INSERT INTO rtc_event_journal (device, kind, event_index, flags, irq_count, recorded_at)
		VALUES (?, 'interrupt', ?, ?, ?, ?)
	`
	return j.exec(ctx, "record_event", query, j.device, index, ev.Flags, ev.Count, j.clock.Now())
}

func (j *MySQLJournal) exec(ctx context.Context, queryType, query string, args ...interface{}) error {
	start := time.Now()
	_, err := j.db.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery(queryType, time.Since(start).Seconds())
	if err != nil {
		j.logger.WithError(err).WithField("query_type", queryType).Error("저널 기록 실패")
		return errors.NewSystemError("저널 기록 실패", err)
	}
	return nil
}

// Close는 데이터베이스 연결을 닫습니다
func (j *MySQLJournal) Close() error {
	return j.db.Close()
}
