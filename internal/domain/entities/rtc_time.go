package entities

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	domainErrors "rtc-agent/internal/domain/errors"
)

// RTCTimeSize는 커널 struct rtc_time 의 크기입니다 (int32 9개)
const RTCTimeSize = 9 * 4

// YearOffset은 tm_year 필드의 기준 연도입니다
const YearOffset = 1900

// RTCTime은 <linux/rtc.h> 의 struct rtc_time 과 같은 레이아웃을 가진 레코드입니다.
// 값의 범위는 검증하지 않습니다. 검증은 커널 드라이버의 몫입니다.
type RTCTime struct {
	Sec   int32
	Min   int32
	Hour  int32
	Mday  int32
	Mon   int32 // 0-11
	Year  int32 // 1900년 기준 오프셋
	Wday  int32
	Yday  int32
	Isdst int32
}

// MarshalBinary는 레코드를 네이티브 바이트 순서의 36바이트로 직렬화합니다
func (t RTCTime) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, RTCTimeSize))
	if err := binary.Write(buf, binary.NativeEndian, t); err != nil {
		return nil, domainErrors.NewSystemError("rtc_time encoding failed", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary는 36바이트 버퍼에서 레코드를 복원합니다
func (t *RTCTime) UnmarshalBinary(data []byte) error {
	if len(data) != RTCTimeSize {
		return domainErrors.NewValidationError(
			fmt.Sprintf("rtc_time must be %d bytes, got %d", RTCTimeSize, len(data)), nil)
	}
	return binary.Read(bytes.NewReader(data), binary.NativeEndian, t)
}

// FullYear는 서기 연도를 반환합니다
func (t RTCTime) FullYear() int {
	return int(t.Year) + YearOffset
}

// Time은 RTC 값을 UTC time.Time 으로 변환합니다.
// 범위를 벗어난 필드는 time.Date 의 정규화 규칙을 따릅니다.
func (t RTCTime) Time() time.Time {
	return time.Date(
		t.FullYear(),
		time.Month(t.Mon+1),
		int(t.Mday),
		int(t.Hour),
		int(t.Min),
		int(t.Sec),
		0,
		time.UTC,
	)
}

// RTCTimeFromTime은 time.Time 을 UTC 기준 RTCTime 으로 변환합니다
func RTCTimeFromTime(tm time.Time) RTCTime {
	u := tm.UTC()
	return RTCTime{
		Sec:  int32(u.Second()),
		Min:  int32(u.Minute()),
		Hour: int32(u.Hour()),
		Mday: int32(u.Day()),
		Mon:  int32(u.Month()) - 1,
		Year: int32(u.Year() - YearOffset),
		Wday: int32(u.Weekday()),
		Yday: int32(u.YearDay()) - 1,
	}
}

// String은 원시 필드 그대로 "YYYY-MM-DD hh:mm:ss" 형식을 만듭니다
func (t RTCTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		t.FullYear(), t.Mon+1, t.Mday, t.Hour, t.Min, t.Sec)
}

// GoString은 %#v 출력용으로 모든 필드를 보여줍니다
func (t RTCTime) GoString() string {
	return fmt.Sprintf(
		"RTCTime{Sec:%d, Min:%d, Hour:%d, Mday:%d, Mon:%d, Year:%d, Wday:%d, Yday:%d, Isdst:%d}",
		t.Sec, t.Min, t.Hour, t.Mday, t.Mon, t.Year, t.Wday, t.Yday, t.Isdst)
}
