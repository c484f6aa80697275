package constants

// 시스템 경로 상수들
const (
	// RTC 디바이스 노드 (설정으로 바꿀 수 없음)
	DevicePath = "/dev/rtc0"

	// RTC sysfs 경로
	SysClassRTC = "/sys/class/rtc"

	// 백업 디렉토리
	DefaultBackupDir = "/var/lib/rtc-agent/backups"

	// 백업 파일 접두사
	BackupFilePrefix = "rtc0_"
)

// 데모 시퀀스 기본값
const (
	DefaultEventCount  = 5
	DefaultInitialYear = 70  // 1970
	DefaultRewriteYear = 130 // 2030
	DefaultRewriteAt   = 3

	// 파일 권한
	BackupFilePermission = 0644
	BackupDirPermission  = 0755
)

// 기본값 상수들
const (
	DefaultDBPort   = "3306"
	DefaultDBName   = "rtc_agent"
	DefaultLogLevel = "info"
)
