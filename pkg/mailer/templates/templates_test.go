package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render("welcome", map[string]any{
		"AppName":     "news-api",
		"DisplayName": "Jess",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.NotEmpty(t, text)
	assert.Contains(t, html, "Welcome to news-api, Jess!")
}

func TestRenderWelcomeWithoutDisplayName(t *testing.T) {
	_, _, html, err := Render("welcome", map[string]any{"AppName": "news-api"})
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to news-api!")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
