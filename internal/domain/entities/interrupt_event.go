package entities

import (
	"encoding/binary"
	"fmt"

	domainErrors "rtc-agent/internal/domain/errors"
)

// InterruptEventSize는 디바이스 read 한 번에 전달되는 이벤트 크기입니다
const InterruptEventSize = 4

// 하위 바이트의 인터럽트 플래그 (<linux/rtc.h>)
const (
	FlagUpdate    uint8 = 0x10 // RTC_UF
	FlagAlarm     uint8 = 0x20 // RTC_AF
	FlagPeriodic  uint8 = 0x40 // RTC_PF
	FlagInterrupt uint8 = 0x80 // RTC_IRQF
)

// InterruptEvent는 RTC 디바이스가 인터럽트마다 전달하는 4바이트 페이로드입니다.
// 하위 8비트는 플래그, 상위 24비트는 마지막 read 이후의 인터럽트 횟수입니다.
type InterruptEvent struct {
	Raw   [InterruptEventSize]byte
	Flags uint8
	Count uint32
}

// DecodeInterruptEvent는 정확히 4바이트를 이벤트로 해석합니다
func DecodeInterruptEvent(data []byte) (InterruptEvent, error) {
	if len(data) != InterruptEventSize {
		return InterruptEvent{}, domainErrors.NewValidationError(
			fmt.Sprintf("interrupt event must be %d bytes, got %d", InterruptEventSize, len(data)), nil)
	}

	var ev InterruptEvent
	copy(ev.Raw[:], data)
	word := binary.NativeEndian.Uint32(data)
	ev.Flags = uint8(word & 0xff)
	ev.Count = word >> 8
	return ev, nil
}

// IsUpdate는 업데이트 인터럽트(1Hz) 이벤트인지 확인합니다
func (e InterruptEvent) IsUpdate() bool {
	return e.Flags&FlagUpdate != 0
}

// String은 원시 바이트를 [b0, b1, b2, b3] 형식으로 출력합니다
func (e InterruptEvent) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d]", e.Raw[0], e.Raw[1], e.Raw[2], e.Raw[3])
}
