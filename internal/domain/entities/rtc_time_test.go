package entities

import (
	"encoding/binary"
	"testing"
	"time"

	domainErrors "rtc-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRTCTime_MarshalBinaryLayout(t *testing.T) {
	rt := RTCTime{Sec: 1, Min: 2, Hour: 3, Mday: 4, Mon: 5, Year: 70, Wday: 6, Yday: 7, Isdst: -1}

	data, err := rt.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, RTCTimeSize)

	expected := []int32{1, 2, 3, 4, 5, 70, 6, 7, -1}
	for i, want := range expected {
		got := int32(binary.NativeEndian.Uint32(data[i*4:]))
		assert.Equal(t, want, got, "field %d", i)
	}
}

func TestRTCTime_BinaryRoundTrip(t *testing.T) {
	rt := RTCTime{Sec: 59, Min: 30, Hour: 23, Mday: 31, Mon: 11, Year: 130, Wday: 2, Yday: 364}

	data, err := rt.MarshalBinary()
	require.NoError(t, err)

	var decoded RTCTime
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, rt, decoded)
}

func TestRTCTime_UnmarshalBinaryWrongSize(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"빈 버퍼", nil},
		{"짧은 버퍼", make([]byte, RTCTimeSize-1)},
		{"긴 버퍼", make([]byte, RTCTimeSize+4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rt RTCTime
			err := rt.UnmarshalBinary(tt.data)
			assert.True(t, domainErrors.IsValidationError(err))
		})
	}
}

func TestRTCTime_OutOfRangeValuesPassThrough(t *testing.T) {
	rt := RTCTime{Mon: 42, Year: -5000, Mday: 99}

	data, err := rt.MarshalBinary()
	require.NoError(t, err)

	var decoded RTCTime
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, int32(42), decoded.Mon)
	assert.Equal(t, int32(-5000), decoded.Year)
}

func TestRTCTime_TimeConversion(t *testing.T) {
	rt := RTCTime{Sec: 5, Min: 4, Hour: 3, Mday: 2, Mon: 0, Year: 70}

	assert.Equal(t, 1970, rt.FullYear())
	assert.Equal(t, time.Date(1970, time.January, 2, 3, 4, 5, 0, time.UTC), rt.Time())
	assert.Equal(t, "1970-01-02 03:04:05", rt.String())
}

func TestRTCTimeFromTime(t *testing.T) {
	tm := time.Date(2030, time.March, 15, 12, 30, 45, 999, time.UTC)

	rt := RTCTimeFromTime(tm)

	assert.Equal(t, int32(130), rt.Year)
	assert.Equal(t, int32(2), rt.Mon)
	assert.Equal(t, int32(15), rt.Mday)
	assert.Equal(t, int32(tm.Weekday()), rt.Wday)
	assert.Equal(t, int32(tm.YearDay()-1), rt.Yday)
	assert.Equal(t, tm.Truncate(time.Second), rt.Time())
}
