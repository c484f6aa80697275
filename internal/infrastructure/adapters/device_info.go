package adapters

import (
	"fmt"
	"path/filepath"
	"rtc-agent/internal/domain/constants"
	"rtc-agent/internal/domain/errors"
	"rtc-agent/internal/domain/interfaces"
	"strconv"
	"strings"
)

// SysfsDeviceInfoReader is a DeviceInfoReader backed by /sys/class/rtc
type SysfsDeviceInfoReader struct {
	fileSystem interfaces.FileSystem
	baseDir    string
}

// NewSysfsDeviceInfoReader creates a new SysfsDeviceInfoReader
func NewSysfsDeviceInfoReader(fs interfaces.FileSystem) interfaces.DeviceInfoReader {
	return &SysfsDeviceInfoReader{
		fileSystem: fs,
		baseDir:    constants.SysClassRTC,
	}
}

// ReadInfo reads the driver attributes of the named RTC
func (r *SysfsDeviceInfoReader) ReadInfo(name string) (interfaces.DeviceInfo, error) {
	dir := filepath.Join(r.baseDir, name)
	if !r.fileSystem.Exists(dir) {
		return interfaces.DeviceInfo{}, errors.NewNotFoundError(fmt.Sprintf("RTC %s not present in sysfs", name), nil)
	}

	driver, err := r.readAttr(dir, "name")
	if err != nil {
		return interfaces.DeviceInfo{}, errors.NewSystemError("cannot read RTC driver name", err)
	}

	info := interfaces.DeviceInfo{
		Name:   name,
		Driver: driver,
	}

	// Optional attributes; older kernels or some drivers don't expose them
	if v, err := r.readAttr(dir, "hctosys"); err == nil {
		info.HCToSys = v == "1"
	}
	if v, err := r.readAttr(dir, "max_user_freq"); err == nil {
		if freq, err := strconv.Atoi(v); err == nil {
			info.MaxUserFreq = freq
		}
	}

	return info, nil
}

func (r *SysfsDeviceInfoReader) readAttr(dir, attr string) (string, error) {
	content, err := r.fileSystem.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}
