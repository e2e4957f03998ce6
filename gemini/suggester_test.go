package gemini_test

import (
	"testing"

	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSuggestPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildSuggestPrompt("<h1>Foo</h1>", []string{showreel.FieldTitle, showreel.FieldMedia})

	assert.Contains(t, prompt, "<html_excerpt>")
	assert.Contains(t, prompt, "<h1>Foo</h1>")
	assert.Contains(t, prompt, "Missing fields: title, media")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, float64(*config.Temperature), 0.001)
	require.NotNil(t, config.SystemInstruction)
}

func TestParseSuggestions(t *testing.T) {
	t.Parallel()

	t.Run("bare JSON object", func(t *testing.T) {
		t.Parallel()

		got, err := gemini.ParseSuggestions(`{"title":{"selector":"h1.headline","explanation":"main heading"}}`)

		require.NoError(t, err)
		assert.Equal(t, "h1.headline", got[showreel.FieldTitle].Selector)
	})

	t.Run("fenced json block", func(t *testing.T) {
		t.Parallel()

		text := "Here you go:\n```json\n{\"media\":{\"selector\":\"iframe.player\"}}\n```\nHope that helps."

		got, err := gemini.ParseSuggestions(text)

		require.NoError(t, err)
		assert.Equal(t, "iframe.player", got[showreel.FieldMedia].Selector)
	})

	t.Run("unfenced prose around the object", func(t *testing.T) {
		t.Parallel()

		got, err := gemini.ParseSuggestions(`The selector is {"title":{"value":"Play by Play"}} as requested.`)

		require.NoError(t, err)
		assert.Equal(t, "Play by Play", got[showreel.FieldTitle].Value)
	})

	t.Run("response without JSON is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseSuggestions("I cannot help with that.")

		assert.Equal(t, showreel.EINTERNAL, showreel.ErrorCode(err))
	})

	t.Run("malformed JSON is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseSuggestions(`{"title":`)

		assert.Equal(t, showreel.EINTERNAL, showreel.ErrorCode(err))
	})
}
