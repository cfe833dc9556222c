package anthropic

import (
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSDKMessage(t *testing.T) {
	sdkMsg := &sdk.Message{
		ID:           "msg_test_123",
		Model:        "claude-sonnet-4-5-20250929",
		StopReason:   "end_turn",
		StopSequence: "STOP",
		Content: []sdk.ContentBlockUnion{
			{Type: "text", Text: "Hello world"},
			{Type: "text", Text: "Second block"},
		},
		Usage: sdk.Usage{
			InputTokens:              100,
			OutputTokens:             50,
			CacheCreationInputTokens: 2000,
			CacheReadInputTokens:     3000,
		},
	}

	resp := fromSDKMessage(sdkMsg)
	require.NotNil(t, resp)
	assert.Equal(t, "msg_test_123", resp.ID)
	assert.Equal(t, "claude-sonnet-4-5-20250929", resp.Model)
	assert.Equal(t, "end_turn", resp.StopReason)
	require.Len(t, resp.Content, 2)
	assert.Equal(t, "Hello world", resp.Content[0].Text)
	assert.Equal(t, int64(2000), resp.Usage.CacheCreationInputTokens)
	assert.Equal(t, "Hello worldSecond block", resp.Text())
}

func TestResponseTextSkipsNonTextBlocks(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: "tool_use", Text: ""},
		{Type: "text", Text: "answer"},
	}}
	assert.Equal(t, "answer", resp.Text())
}

func TestToSDKMessages(t *testing.T) {
	msgs := toSDKMessages([]Message{
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "reply"},
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, sdk.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, sdk.MessageParamRoleAssistant, msgs[1].Role)
}

func TestToSDKSystemBlocksWithCache(t *testing.T) {
	blocks := toSDKSystemBlocks(BuildCachedSystemBlocks("system prompt"))
	require.Len(t, blocks, 1)
	assert.Equal(t, "system prompt", blocks[0].Text)
	assert.Equal(t, sdk.CacheControlEphemeralTTL("1h"), blocks[0].CacheControl.TTL)
}

func TestToSDKParams(t *testing.T) {
	temp := 0.2
	params := toSDKParams(MessageRequest{
		Model:       "claude-sonnet-4-5-20250929",
		MaxTokens:   1024,
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: &temp,
	})
	assert.Equal(t, sdk.Model("claude-sonnet-4-5-20250929"), params.Model)
	assert.Equal(t, int64(1024), params.MaxTokens)
	require.True(t, params.Temperature.Valid())
	assert.InDelta(t, 0.2, params.Temperature.Value, 1e-9)
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name     string
		usage    TokenUsage
		model    string
		expected float64
	}{
		{
			name:     "unknown model",
			usage:    TokenUsage{InputTokens: 1_000_000},
			model:    "some-other-model",
			expected: 0,
		},
		{
			name:     "sonnet input and output",
			usage:    TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000},
			model:    "claude-sonnet-4-5-20250929",
			expected: 18.00,
		},
		{
			name:     "cache write premium and read discount",
			usage:    TokenUsage{CacheCreationInputTokens: 1_000_000, CacheReadInputTokens: 1_000_000},
			model:    "claude-haiku-4-5-20251001",
			expected: 0.80*1.25 + 0.80*0.1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.usage.EstimateCost(tt.model), 1e-9)
		})
	}
}
