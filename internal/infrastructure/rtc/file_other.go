//go:build !linux

package rtc

import (
	"runtime"

	domainErrors "rtc-agent/internal/domain/errors"
)

// RTC control requests only exist on Linux.
func openControlFile(path string) (ControlFile, error) {
	return nil, domainErrors.NewSystemError("RTC device control is not supported on "+runtime.GOOS, nil)
}
