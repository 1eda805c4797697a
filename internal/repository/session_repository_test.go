package repository

import (
	"testing"

	"news-agent-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewSessionRepository()
	created := repo.Create()
	require.NotEmpty(t, created.ID)

	got, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestGetUnknownSession(t *testing.T) {
	repo := NewSessionRepository()
	_, err := repo.Get("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetUnknownSession(t *testing.T) {
	repo := NewSessionRepository()
	_, err := repo.Reset("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetClearsPreferencesOnly(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()
	session.AppendMessage(model.RoleAssistant, "question")
	require.True(t, session.RecordAnswer("casual"))

	reset, err := repo.Reset(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.QuestionIndex)
	assert.False(t, reset.IsComplete())
	assert.Len(t, reset.Conversation, 1)
}

func TestStoreIsolatesSessions(t *testing.T) {
	repo := NewSessionRepository()
	a := repo.Create()
	b := repo.Create()
	require.NotEqual(t, a.ID, b.ID)

	require.True(t, a.RecordAnswer("casual"))
	assert.Equal(t, 1, a.QuestionIndex)
	assert.Equal(t, 0, b.QuestionIndex)
}
