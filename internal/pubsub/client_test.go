package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapPush(t *testing.T) {
	payload, err := Encode(WeekEvent{Week: 4, GameID: "g1"})
	require.NoError(t, err)

	var env Envelope
	env.Subscription = "projects/p/subscriptions/recalculate-week"
	env.Message.Data = base64.StdEncoding.EncodeToString(payload)
	body, err := json.Marshal(env)
	require.NoError(t, err)

	raw, err := UnwrapPush(body)
	require.NoError(t, err)

	var got WeekEvent
	require.NoError(t, NewMock().ProcessMessage(raw, &got))
	assert.Equal(t, WeekEvent{Week: 4, GameID: "g1"}, got)
}

func TestUnwrapPush_Invalid(t *testing.T) {
	_, err := UnwrapPush([]byte("not json"))
	assert.Error(t, err)

	_, err = UnwrapPush([]byte(`{"message":{"data":"%%%"}}`))
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	event := WeekEvent{Week: 2, Games: 8, Picks: 40}
	payload, err := Encode(event)
	require.NoError(t, err)

	var got WeekEvent
	require.NoError(t, Decode(payload, &got))
	assert.Equal(t, event, got)

	_, err = Encode(make(chan int))
	assert.Error(t, err, "unencodable events are rejected before publishing")
}
