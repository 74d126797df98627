package gemini_test

import (
	"testing"

	"github.com/fwojciec/agentready/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes the page URL and content", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt("https://example.com/docs", "# Docs\n\nSome content.")

		assert.Contains(t, prompt, "<url>https://example.com/docs</url>")
		assert.Contains(t, prompt, "Some content.")
	})

	t.Run("asks for a summary and key topics", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt("https://example.com", "content")

		assert.Contains(t, prompt, "Summarize")
		assert.Contains(t, prompt, "key topics")
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)

	require.NotNil(t, config.ResponseSchema)
	assert.Contains(t, config.ResponseSchema.Properties, "summary")
	assert.Contains(t, config.ResponseSchema.Properties, "keyTopics")
	assert.ElementsMatch(t, []string{"summary", "keyTopics"}, config.ResponseSchema.Required)

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, float64(*config.Temperature), 0.001)

	require.NotNil(t, config.SystemInstruction)
	require.NotEmpty(t, config.SystemInstruction.Parts)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "page content")
}
