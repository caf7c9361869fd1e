package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_PublishInOrder(t *testing.T) {
	ch := NewChannel()
	var got []string

	_, err := ch.Subscribe(func(p []byte) { got = append(got, "a:"+string(p)) })
	require.NoError(t, err)
	_, err = ch.Subscribe(func(p []byte) { got = append(got, "b:"+string(p)) })
	require.NoError(t, err)

	assert.Equal(t, 2, ch.Publish([]byte("1")))
	assert.Equal(t, 2, ch.Publish([]byte("2")))
	assert.Equal(t, []string{"a:1", "b:1", "a:2", "b:2"}, got)
}

func TestChannel_Unsubscribe(t *testing.T) {
	ch := NewChannel()
	calls := 0

	unsubscribe, err := ch.Subscribe(func([]byte) { calls++ })
	require.NoError(t, err)
	unsubscribe()
	unsubscribe()

	assert.Equal(t, 0, ch.Publish([]byte("x")))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, ch.Subscribers())
}

func TestChannel_Close(t *testing.T) {
	ch := NewChannel()
	_, err := ch.Subscribe(func([]byte) {})
	require.NoError(t, err)

	ch.Close()
	assert.Equal(t, 0, ch.Publish([]byte("x")))

	_, err = ch.Subscribe(func([]byte) {})
	assert.ErrorIs(t, err, ErrChannelClosed)

	_, err = NewChannel().Subscribe(nil)
	assert.Error(t, err)
}
