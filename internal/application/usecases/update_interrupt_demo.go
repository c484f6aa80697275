package usecases

import (
	"context"
	"fmt"
	"io"
	"rtc-agent/internal/domain/entities"
	"rtc-agent/internal/domain/errors"
	"rtc-agent/internal/domain/interfaces"
	"rtc-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// UpdateInterruptDemoUseCase는 RTC 값을 덮어쓰고 업데이트 인터럽트를 세는 데모 시퀀스입니다
type UpdateInterruptDemoUseCase struct {
	device   interfaces.RTCDevice
	journal  interfaces.EventJournal
	backup   interfaces.BackupService // nil 이면 백업 생략
	reporter interfaces.StatusReporter
	clock    interfaces.Clock
	out      io.Writer
	logger   *logrus.Logger
}

// NewUpdateInterruptDemoUseCase는 새로운 UpdateInterruptDemoUseCase를 생성합니다
func NewUpdateInterruptDemoUseCase(
	device interfaces.RTCDevice,
	journal interfaces.EventJournal,
	backup interfaces.BackupService,
	reporter interfaces.StatusReporter,
	clock interfaces.Clock,
	out io.Writer,
	logger *logrus.Logger,
) *UpdateInterruptDemoUseCase {
	return &UpdateInterruptDemoUseCase{
		device:   device,
		journal:  journal,
		backup:   backup,
		reporter: reporter,
		clock:    clock,
		out:      out,
		logger:   logger,
	}
}

// UpdateInterruptDemoInput은 유스케이스의 입력 파라미터입니다
type UpdateInterruptDemoInput struct {
	EventCount    int
	InitialYear   int32
	RewriteYear   int32
	RewriteAt     int // 1부터 시작하는 반복 번호
	RestoreOnExit bool
}

// UpdateInterruptDemoOutput은 유스케이스의 출력 결과입니다
type UpdateInterruptDemoOutput struct {
	Original   entities.RTCTime
	Final      entities.RTCTime
	Events     []entities.InterruptEvent
	BackupPath string
	Restored   bool
}

// flusher는 bufio.Writer 처럼 버퍼를 비울 수 있는 출력입니다
type flusher interface {
	Flush() error
}

// syncer는 *os.File 처럼 내려쓸 수 있는 출력입니다
type syncer interface {
	Sync() error
}

// Execute는 데모 시퀀스를 실행합니다. 첫 번째 에러에서 중단하고 그 에러를 반환합니다.
func (uc *UpdateInterruptDemoUseCase) Execute(ctx context.Context, input UpdateInterruptDemoInput) (*UpdateInterruptDemoOutput, error) {
	if input.EventCount <= 0 {
		return nil, errors.NewValidationError("event count must be positive", nil)
	}

	startedAt := uc.clock.Now()
	output := &UpdateInterruptDemoOutput{}

	// 1. 현재 RTC 값 읽기
	current, err := uc.device.GetTime()
	if err != nil {
		return nil, uc.fail(err)
	}
	output.Original = current
	uc.logger.WithField("rtc_time", current.String()).Info("Current RTC time read")

	// 2. 덮어쓰기 전에 백업
	if uc.backup != nil {
		path, err := uc.backup.CreateBackup(ctx, current)
		if err != nil {
			uc.logger.WithError(err).Warn("RTC backup failed, continuing without backup")
		} else {
			output.BackupPath = path
		}
	}

	// 3. 연도를 초기값으로 강제 설정
	current.Year = input.InitialYear
	if err := uc.setTime(ctx, current); err != nil {
		return nil, uc.fail(err)
	}

	// 4. 업데이트 인터럽트 활성화
	if err := uc.device.EnableUpdateInterrupt(); err != nil {
		return nil, uc.fail(err)
	}
	uc.reporter.SetUpdateInterrupt(true)
	metrics.SetUpdateInterruptEnabled(true)

	if err := uc.printf("Counting %d update (1/sec) interrupts from reading %v\n", input.EventCount, uc.device); err != nil {
		return nil, uc.abortWithInterrupt(err)
	}

	// 5. 이벤트 읽기 루프
	buf := make([]byte, entities.InterruptEventSize)
	for i := 1; i <= input.EventCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, uc.abortWithInterrupt(err)
		}

		if i == input.RewriteAt {
			current.Year = input.RewriteYear
			if err := uc.setTime(ctx, current); err != nil {
				return nil, uc.abortWithInterrupt(err)
			}
		}

		if err := uc.device.ReadEvent(buf); err != nil {
			return nil, uc.abortWithInterrupt(err)
		}
		ev, err := entities.DecodeInterruptEvent(buf)
		if err != nil {
			return nil, uc.abortWithInterrupt(err)
		}
		output.Events = append(output.Events, ev)
		uc.reporter.IncrementEventsRead()

		if err := uc.journal.RecordEvent(ctx, i, ev); err != nil {
			uc.logger.WithError(err).WithField("index", i).Warn("Failed to journal interrupt event")
		}

		if err := uc.printf("%d %s\n", i, ev); err != nil {
			return nil, uc.abortWithInterrupt(err)
		}
	}

	// 6. 업데이트 인터럽트 비활성화
	if err := uc.device.DisableUpdateInterrupt(); err != nil {
		return nil, uc.fail(err)
	}
	uc.reporter.SetUpdateInterrupt(false)
	metrics.SetUpdateInterruptEnabled(false)

	output.Final = current
	if err := uc.printf("%#v\n", current); err != nil {
		return nil, err
	}

	// 7. 원래 시간 복원 (경과 시간만큼 앞당김)
	if input.RestoreOnExit {
		elapsed := uc.clock.Now().Sub(startedAt)
		restored := entities.RTCTimeFromTime(output.Original.Time().Add(elapsed))
		if err := uc.setTime(ctx, restored); err != nil {
			return nil, uc.fail(err)
		}
		output.Restored = true
		uc.logger.WithField("rtc_time", restored.String()).Info("Original RTC time restored")
	}

	metrics.RecordSequence(uc.clock.Now().Sub(startedAt).Seconds())
	uc.logger.WithFields(logrus.Fields{
		"events":     len(output.Events),
		"final_time": output.Final.String(),
		"restored":   output.Restored,
	}).Info("Update interrupt demo completed")

	return output, nil
}

func (uc *UpdateInterruptDemoUseCase) setTime(ctx context.Context, t entities.RTCTime) error {
	if err := uc.device.SetTime(t); err != nil {
		return err
	}
	uc.reporter.IncrementTimeWrites()
	metrics.SetLastWrittenYear(t.FullYear())

	if err := uc.journal.RecordTimeSet(ctx, t); err != nil {
		uc.logger.WithError(err).Warn("Failed to journal RTC time write")
	}
	return nil
}

// abortWithInterrupt는 인터럽트를 켠 뒤 실패했을 때 끄기를 시도하고 원래 에러를 반환합니다
func (uc *UpdateInterruptDemoUseCase) abortWithInterrupt(err error) error {
	if disableErr := uc.device.DisableUpdateInterrupt(); disableErr != nil {
		uc.logger.WithError(disableErr).Warn("Failed to disable update interrupt after error")
	} else {
		uc.reporter.SetUpdateInterrupt(false)
		metrics.SetUpdateInterruptEnabled(false)
	}
	return uc.fail(err)
}

func (uc *UpdateInterruptDemoUseCase) fail(err error) error {
	uc.reporter.UpdateDeviceHealth(true, err)
	return err
}

func (uc *UpdateInterruptDemoUseCase) printf(format string, args ...interface{}) error {
	if _, err := fmt.Fprintf(uc.out, format, args...); err != nil {
		return errors.NewSystemError("writing trace output failed", err)
	}
	switch w := uc.out.(type) {
	case flusher:
		if err := w.Flush(); err != nil {
			return errors.NewSystemError("flushing trace output failed", err)
		}
	case syncer:
		// 터미널이나 파이프는 fsync 를 지원하지 않으므로 에러를 무시
		_ = w.Sync()
	}
	return nil
}
