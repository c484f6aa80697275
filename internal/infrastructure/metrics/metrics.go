package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 제어 요청(ioctl) 관련 메트릭
	ControlRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtc_control_requests_total",
			Help: "Total number of control requests issued to the RTC device",
		},
		[]string{"request", "status"}, // RTC_RD_TIME, RTC_SET_TIME, ... / success, failed
	)

	// 인터럽트 이벤트 관련 메트릭
	InterruptEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rtc_interrupt_events_total",
			Help: "Total number of interrupt events read from the RTC device",
		},
	)

	EventReadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rtc_event_read_duration_seconds",
			Help:    "Time spent blocked waiting for an interrupt event",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 5},
		},
	)

	UpdateInterruptEnabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rtc_update_interrupt_enabled",
			Help: "Update interrupt state (1 = enabled, 0 = disabled)",
		},
	)

	// 마지막으로 쓴 RTC 연도
	LastWrittenYear = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rtc_last_written_year",
			Help: "Full year of the last value written to the RTC",
		},
	)

	// 에러 메트릭
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtc_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // DEVICE, SHORT_READ, NOT_FOUND, ...
	)

	// 데모 시퀀스 실행 시간
	SequenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rtc_demo_sequence_duration_seconds",
			Help:    "Time spent running the update interrupt demonstration",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)

	// 저널 데이터베이스 쿼리 시간
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rtc_journal_query_duration_seconds",
			Help:    "Time spent writing to the event journal database",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type"}, // record_time_set, record_event
	)

	// 시스템 정보
	AgentInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rtc_agent_info",
			Help: "Agent information",
		},
		[]string{"version", "device", "node_name"},
	)
)

// RecordControlRequest는 제어 요청 결과를 기록합니다
func RecordControlRequest(request, status string) {
	ControlRequests.WithLabelValues(request, status).Inc()
}

// RecordEventRead는 이벤트 한 건의 대기 시간을 기록합니다
func RecordEventRead(duration float64) {
	InterruptEvents.Inc()
	EventReadDuration.Observe(duration)
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordSequence는 데모 시퀀스 실행 시간을 기록합니다
func RecordSequence(duration float64) {
	SequenceDuration.Observe(duration)
}

// SetUpdateInterruptEnabled는 업데이트 인터럽트 상태를 설정합니다
func SetUpdateInterruptEnabled(enabled bool) {
	if enabled {
		UpdateInterruptEnabled.Set(1)
	} else {
		UpdateInterruptEnabled.Set(0)
	}
}

// SetLastWrittenYear는 마지막으로 쓴 연도를 설정합니다
func SetLastWrittenYear(year int) {
	LastWrittenYear.Set(float64(year))
}

// SetAgentInfo는 에이전트 정보를 설정합니다
func SetAgentInfo(version, device, nodeName string) {
	AgentInfo.WithLabelValues(version, device, nodeName).Set(1)
}

// RecordDBQuery는 데이터베이스 쿼리 시간을 기록합니다
func RecordDBQuery(queryType string, duration float64) {
	DBQueryDuration.WithLabelValues(queryType).Observe(duration)
}
