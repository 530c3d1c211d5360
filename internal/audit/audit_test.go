package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublisher_NilIsNoOp(t *testing.T) {
	var p *Publisher

	err := p.Publish(context.Background(), Event{Type: EventUserRegistered, Username: "alice"})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestEvent_Serialization(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ev := Event{Type: EventUserLoggedIn, Username: "alice", At: at}

	b, err := json.Marshal(ev)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "user_logged_in", decoded["type"])
	assert.Equal(t, "alice", decoded["username"])
	assert.NotContains(t, decoded, "email", "empty email must be omitted")
}
