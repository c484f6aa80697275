package rtc

import "rtc-agent/internal/domain/entities"

// Generic Linux _IOC encoding (include/uapi/asm-generic/ioctl.h), used by
// x86, arm, arm64, riscv, loongarch and s390:
// dir<<30 | size<<16 | type<<8 | nr
const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	rtcIoctlType = 'p'
)

func ioc(dir, typ, nr, size uint) uint {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNrShift
}

// Request is a control request code addressed to the RTC descriptor.
type Request uint

// RTC control requests from <linux/rtc.h>.
var (
	RequestUIEOn   = Request(ioc(iocNone, rtcIoctlType, 0x03, 0))                     // RTC_UIE_ON
	RequestUIEOff  = Request(ioc(iocNone, rtcIoctlType, 0x04, 0))                     // RTC_UIE_OFF
	RequestRdTime  = Request(ioc(iocRead, rtcIoctlType, 0x09, entities.RTCTimeSize))  // RTC_RD_TIME
	RequestSetTime = Request(ioc(iocWrite, rtcIoctlType, 0x0a, entities.RTCTimeSize)) // RTC_SET_TIME
)

func (r Request) String() string {
	switch r {
	case RequestUIEOn:
		return "RTC_UIE_ON"
	case RequestUIEOff:
		return "RTC_UIE_OFF"
	case RequestRdTime:
		return "RTC_RD_TIME"
	case RequestSetTime:
		return "RTC_SET_TIME"
	default:
		return "RTC_UNKNOWN"
	}
}
