package interfaces

import (
	"os"
	"time"
)

// FileSystem은 파일 시스템 작업을 추상화하는 인터페이스입니다
type FileSystem interface {
	// ReadFile은 파일을 읽습니다
	ReadFile(path string) ([]byte, error)

	// WriteFile은 파일에 데이터를 씁니다
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Exists는 파일이나 디렉토리가 존재하는지 확인합니다
	Exists(path string) bool

	// MkdirAll은 디렉토리를 재귀적으로 생성합니다
	MkdirAll(path string, perm os.FileMode) error

	// ListFiles는 디렉토리의 파일 목록을 반환합니다
	ListFiles(path string) ([]string, error)
}

// Clock은 시간 관련 작업을 추상화하는 인터페이스입니다
type Clock interface {
	// Now는 현재 시간을 반환합니다
	Now() time.Time
}

// DeviceInfo는 sysfs 에서 읽은 RTC 드라이버 정보입니다
type DeviceInfo struct {
	Name        string // rtc0
	Driver      string // rtc_cmos, rtc-efi, ...
	HCToSys     bool   // 부팅 시 시스템 시간을 이 RTC 에서 가져왔는지
	MaxUserFreq int
}

// DeviceInfoReader는 RTC 디바이스 정보를 읽는 인터페이스입니다
type DeviceInfoReader interface {
	// ReadInfo는 /sys/class/rtc/<name> 의 속성을 읽습니다
	ReadInfo(name string) (DeviceInfo, error)
}
