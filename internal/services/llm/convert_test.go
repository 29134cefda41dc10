package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wedevbytes/nyaya/internal/interfaces"
	"google.golang.org/genai"
)

func TestConvertMessagesToGemini(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "You are a legal assistant."},
		{Role: "user", Content: "What is section 378?"},
		{Role: "assistant", Content: "It defines theft."},
		{Role: "user", Content: "And the punishment?"},
	}

	contents, systemText, err := convertMessagesToGemini(messages)
	require.NoError(t, err)

	assert.Equal(t, "You are a legal assistant.", systemText)
	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, genai.RoleUser, contents[2].Role)
}

func TestConvertMessagesToGeminiRequiresUserMessage(t *testing.T) {
	_, _, err := convertMessagesToGemini([]interfaces.Message{
		{Role: "system", Content: "prompt only"},
	})
	assert.Error(t, err)

	_, _, err = convertMessagesToGemini(nil)
	assert.Error(t, err)
}

func TestConvertMessagesToClaude(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "You are a legal assistant."},
		{Role: "user", Content: "What is the RTI Act?"},
	}

	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	require.NoError(t, err)

	assert.Equal(t, "You are a legal assistant.", systemText)
	require.Len(t, claudeMessages, 1)
	assert.Equal(t, "user", string(claudeMessages[0].Role))
}

func TestConvertMessagesToClaudeFirstSystemWins(t *testing.T) {
	messages := []interfaces.Message{
		{Role: "system", Content: "first"},
		{Role: "system", Content: "second"},
		{Role: "user", Content: "question"},
	}

	_, systemText, err := convertMessagesToClaude(messages)
	require.NoError(t, err)
	assert.Equal(t, "first", systemText)
}
