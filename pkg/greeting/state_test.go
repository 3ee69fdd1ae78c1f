package greeting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_RoundTrip(t *testing.T) {
	for _, count := range []uint32{0, 1, 42, 1<<32 - 1} {
		counter := &Counter{Count: count}

		data, err := counter.Marshal()
		require.NoError(t, err)
		require.Len(t, data, counter.Size())

		var decoded Counter
		require.NoError(t, decoded.Unmarshal(data))
		assert.Equal(t, *counter, decoded)
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	for _, text := range []string{"", "hi", "Hello1234567"} {
		message := &Message{Text: text}

		data, err := message.Marshal()
		require.NoError(t, err)

		// Every valid value encodes to the same fixed length.
		require.Len(t, data, message.Size())

		var decoded Message
		require.NoError(t, decoded.Unmarshal(data))
		assert.Equal(t, *message, decoded)
	}
}

func TestMessage_TooLong(t *testing.T) {
	message := &Message{Text: strings.Repeat("x", MessageCapacity+1)}

	_, err := message.Marshal()
	assert.Equal(t, ErrMessageTooLong, err)
}

func TestState_InvalidData(t *testing.T) {
	var counter Counter
	assert.Equal(t, ErrInvalidStateData, counter.Unmarshal(nil))
	assert.Equal(t, ErrInvalidStateData, counter.Unmarshal(make([]byte, CounterSize+1)))

	var message Message
	assert.Equal(t, ErrInvalidStateData, message.Unmarshal(make([]byte, MessageSize-1)))

	// A length prefix beyond the fixed capacity cannot have been produced
	// by Marshal.
	data := make([]byte, MessageSize)
	data[0] = MessageCapacity + 1
	assert.Equal(t, ErrInvalidStateData, message.Unmarshal(data))
}

func TestState_Sizes(t *testing.T) {
	assert.Equal(t, 4, CounterSize)
	assert.Equal(t, 4+MessageCapacity, MessageSize)
}
