package mailer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeJob_SurvivesQueueEncoding(t *testing.T) {
	job := WelcomeJob("Photobook", "", "a@x.com", "alice", "user")

	b, err := json.Marshal(job)
	require.NoError(t, err)
	var decoded EmailJob
	require.NoError(t, json.Unmarshal(b, &decoded))

	subject, text, html, err := decoded.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", decoded.To)
	assert.Equal(t, "Welcome to Photobook, alice", subject)
	assert.Contains(t, text, "a@x.com")
	assert.NotEmpty(t, html)
}

func TestEmailJob_ResolvePlain(t *testing.T) {
	subject, text, html, err := EmailJob{To: "a@x.com", Subject: "s", Text: "t"}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "s", subject)
	assert.Equal(t, "t", text)
	assert.Empty(t, html)
}
