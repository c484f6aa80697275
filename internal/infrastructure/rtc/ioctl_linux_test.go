//go:build linux && (386 || amd64 || arm || arm64 || loong64 || riscv64 || s390x)

package rtc

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"rtc-agent/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestRequest_MatchesKernelHeaders(t *testing.T) {
	assert.Equal(t, Request(unix.RTC_UIE_ON), RequestUIEOn)
	assert.Equal(t, Request(unix.RTC_UIE_OFF), RequestUIEOff)
	assert.Equal(t, Request(unix.RTC_RD_TIME), RequestRdTime)
	assert.Equal(t, Request(unix.RTC_SET_TIME), RequestSetTime)

	assert.Equal(t, Request(0x7003), RequestUIEOn)
	assert.Equal(t, Request(0x80247009), RequestRdTime)
	assert.Equal(t, Request(0x4024700a), RequestSetTime)
}

func TestRTCTimeSize_MatchesKernelStruct(t *testing.T) {
	assert.Equal(t, unsafe.Sizeof(unix.RTCTime{}), unsafe.Sizeof(entities.RTCTime{}))
	assert.Equal(t, entities.RTCTimeSize, binary.Size(entities.RTCTime{}))
}
