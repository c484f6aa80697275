package entities

import (
	"encoding/binary"
	"testing"

	domainErrors "rtc-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInterruptEvent(t *testing.T) {
	data := make([]byte, InterruptEventSize)
	binary.NativeEndian.PutUint32(data, 1<<8|uint32(FlagInterrupt|FlagUpdate))

	ev, err := DecodeInterruptEvent(data)
	require.NoError(t, err)

	assert.Equal(t, FlagInterrupt|FlagUpdate, ev.Flags)
	assert.Equal(t, uint32(1), ev.Count)
	assert.True(t, ev.IsUpdate())
	assert.Equal(t, data, ev.Raw[:])
}

func TestDecodeInterruptEvent_WrongSize(t *testing.T) {
	_, err := DecodeInterruptEvent([]byte{0x90, 0x01})
	assert.True(t, domainErrors.IsValidationError(err))
}

func TestInterruptEvent_String(t *testing.T) {
	ev := InterruptEvent{Raw: [4]byte{144, 1, 0, 0}}
	assert.Equal(t, "[144, 1, 0, 0]", ev.String())
	assert.False(t, ev.IsUpdate())
}
