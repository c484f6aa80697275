package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"rtc-agent/internal/domain/interfaces"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthService provides health check functionality
type HealthService struct {
	mu              sync.RWMutex
	clock           interfaces.Clock
	logger          *logrus.Logger
	startTime       time.Time
	devicePath      string
	deviceOpen      bool
	deviceError     error
	updateInterrupt bool
	eventsRead      int64
	timeWrites      int64
	deviceInfo      interfaces.DeviceInfo
}

// HealthStatus represents health check status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response struct
type HealthResponse struct {
	Status     HealthStatus           `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	Components map[string]interface{} `json:"components"`
	Statistics map[string]interface{} `json:"statistics"`
}

// NewHealthService creates a new HealthService
func NewHealthService(clock interfaces.Clock, logger *logrus.Logger, devicePath string) *HealthService {
	return &HealthService{
		clock:      clock,
		logger:     logger,
		startTime:  clock.Now(),
		devicePath: devicePath,
	}
}

// UpdateDeviceHealth records whether the device is open and the last error seen on it
func (h *HealthService) UpdateDeviceHealth(open bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deviceOpen = open
	h.deviceError = err
}

// SetUpdateInterrupt records the update interrupt state
func (h *HealthService) SetUpdateInterrupt(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.updateInterrupt = enabled
}

// SetDeviceInfo records the sysfs driver details
func (h *HealthService) SetDeviceInfo(info interfaces.DeviceInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.deviceInfo = info
}

// IncrementEventsRead increments the interrupt event count
func (h *HealthService) IncrementEventsRead() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.eventsRead++
}

// IncrementTimeWrites increments the RTC_SET_TIME count
func (h *HealthService) IncrementTimeWrites() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.timeWrites++
}

// ServeHTTP handles the HTTP health check endpoint
func (h *HealthService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := h.buildHealthResponse()

	// Set HTTP status code based on health status
	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("failed to encode health check response")
	}
}

// buildHealthResponse constructs the health check response
func (h *HealthService) buildHealthResponse() HealthResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	now := h.clock.Now()

	components := map[string]interface{}{
		"device": map[string]interface{}{
			"path":             h.devicePath,
			"open":             h.deviceOpen,
			"driver":           h.deviceInfo.Driver,
			"hctosys":          h.deviceInfo.HCToSys,
			"update_interrupt": h.updateInterrupt,
			"error":            h.formatError(h.deviceError),
		},
	}

	statistics := map[string]interface{}{
		"events_read": h.eventsRead,
		"time_writes": h.timeWrites,
		"uptime":      h.formatUptime(now.Sub(h.startTime)),
	}

	return HealthResponse{
		Status:     h.determineOverallStatus(),
		Timestamp:  now.Format(time.RFC3339),
		Components: components,
		Statistics: statistics,
	}
}

// determineOverallStatus determines the overall health status
func (h *HealthService) determineOverallStatus() HealthStatus {
	if !h.deviceOpen {
		return StatusUnhealthy
	}
	if h.deviceError != nil {
		return StatusDegraded
	}
	return StatusHealthy
}

// formatError formats an error to string
func (h *HealthService) formatError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// formatUptime formats uptime duration to human-readable format
func (h *HealthService) formatUptime(duration time.Duration) string {
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
