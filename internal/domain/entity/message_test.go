package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostMessage_JSONShape(t *testing.T) {
	ready, err := json.Marshal(ReadyMessage())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"streamlit:componentReady"}`, string(ready))

	value, err := json.Marshal(ValueMessage("<div></div>"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"streamlit:setComponentValue","value":"<div></div>"}`, string(value))
}

func TestValueMessage_EmptyPayloadIsKept(t *testing.T) {
	msg := ValueMessage("")
	require.NotNil(t, msg.Value)

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"streamlit:setComponentValue","value":""}`, string(data))
}

func TestNormalizeOrigin(t *testing.T) {
	valid := map[string]string{
		"http://localhost:8501":   "http://localhost:8501",
		"HTTP://LocalHost:8501/":  "http://localhost:8501",
		"https://example.com:443": "https://example.com",
		"http://example.com:80":   "http://example.com",
		" https://dash.local ":    "https://dash.local",
	}
	for in, want := range valid {
		got, err := NormalizeOrigin(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	invalid := []string{"", "*", "null", "file:///tmp", "localhost:8501", "http://", "http://a.b/path", "http://u:p@host", "http://h?q=1"}
	for _, in := range invalid {
		_, err := NormalizeOrigin(in)
		assert.ErrorIs(t, err, ErrInvalidOrigin, in)
	}
}

func TestEnvelopeValidate(t *testing.T) {
	assert.NoError(t, Envelope{Message: ReadyMessage(), TargetOrigin: "http://localhost:8501"}.Validate())
	assert.NoError(t, Envelope{Message: ValueMessage("x"), TargetOrigin: "http://localhost:8501"}.Validate())

	err := Envelope{Message: ReadyMessage(), TargetOrigin: "*"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidOrigin)

	err = Envelope{Message: HostMessage{Type: "streamlit:setFrameHeight"}, TargetOrigin: "http://localhost:8501"}.Validate()
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	v := "x"
	err = Envelope{Message: HostMessage{Type: MessageComponentReady, Value: &v}, TargetOrigin: "http://localhost:8501"}.Validate()
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestSameOrigin(t *testing.T) {
	assert.True(t, SameOrigin("http://localhost:8501", "http://LOCALHOST:8501/"))
	assert.False(t, SameOrigin("http://localhost:8501", "http://localhost:8502"))
	assert.False(t, SameOrigin("*", "*"))
}

func TestWireMessage(t *testing.T) {
	env := Envelope{Message: ValueMessage("<p>"), TargetOrigin: "http://localhost:8501"}

	data, err := json.Marshal(env.Wire())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"streamlit:setComponentValue","value":"<p>","targetOrigin":"http://localhost:8501"}`, string(data))

	var back WireMessage
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, env, back.Envelope())
}
