package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionInitialState(t *testing.T) {
	s := NewSession()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 0, s.QuestionIndex)
	assert.Empty(t, s.Conversation)
	assert.False(t, s.IsComplete())
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s := NewSession()
		_, dup := seen[s.ID]
		require.False(t, dup, "duplicate session id %s", s.ID)
		seen[s.ID] = struct{}{}
	}
}

// 完成标志与游标必须在每次 RecordAnswer 之后保持一致。
func TestCompletenessMatchesCursorAfterEveryAnswer(t *testing.T) {
	s := NewSession()
	answers := []string{"casual", "bullets", "en", "concise", "technology"}
	for i, a := range answers {
		assert.Equal(t, s.QuestionIndex == PreferenceCount, s.IsComplete())
		require.True(t, s.RecordAnswer(a))
		assert.Equal(t, i+1, s.QuestionIndex)
	}
	assert.True(t, s.IsComplete())
	assert.Equal(t, PreferenceCount, s.QuestionIndex)
}

func TestRecordAnswerTrimsWhitespace(t *testing.T) {
	s := NewSession()
	require.True(t, s.RecordAnswer("  casual  "))
	v, ok := s.Preferences.Slot(0)
	require.True(t, ok)
	assert.Equal(t, "casual", v)
}

func TestRecordAnswerRejectsBlank(t *testing.T) {
	s := NewSession()
	assert.False(t, s.RecordAnswer("   "))
	assert.Equal(t, 0, s.QuestionIndex)
	_, ok := s.Preferences.Slot(0)
	assert.False(t, ok)
}

// 收集完成后到达的回答不得覆盖已有偏好。
func TestRecordAnswerNoOpWhenComplete(t *testing.T) {
	s := NewSession()
	for _, a := range []string{"formal", "paragraphs", "English", "concise", "sports"} {
		require.True(t, s.RecordAnswer(a))
	}
	before := s.Preferences

	assert.False(t, s.RecordAnswer("politics"))
	assert.Equal(t, PreferenceCount, s.QuestionIndex)
	assert.Equal(t, before, s.Preferences)
}

func TestResetPreservesConversation(t *testing.T) {
	s := NewSession()
	s.AppendMessage(RoleAssistant, "first question")
	s.AppendMessage(RoleUser, "casual")
	require.True(t, s.RecordAnswer("casual"))

	logLen := len(s.Conversation)
	s.ResetPreferences()

	assert.Equal(t, 0, s.QuestionIndex)
	assert.False(t, s.IsComplete())
	assert.Equal(t, Preferences{}, s.Preferences)
	// 历史只增不减
	assert.Len(t, s.Conversation, logLen)
}

func TestPreferencesSlotOrder(t *testing.T) {
	s := NewSession()
	answers := []string{"casual", "bullets", "en", "concise", "technology"}
	for _, a := range answers {
		require.True(t, s.RecordAnswer(a))
	}
	p := s.Preferences
	require.NotNil(t, p.ToneOfVoice)
	require.NotNil(t, p.ResponseFormat)
	require.NotNil(t, p.Language)
	require.NotNil(t, p.InteractionStyle)
	require.NotNil(t, p.NewsTopics)
	assert.Equal(t, "casual", *p.ToneOfVoice)
	assert.Equal(t, "bullets", *p.ResponseFormat)
	assert.Equal(t, "en", *p.Language)
	assert.Equal(t, "concise", *p.InteractionStyle)
	assert.Equal(t, "technology", *p.NewsTopics)
}
