package aiprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposePromptTextOnly(t *testing.T) {
	got := ComposePrompt("", "a red fox", "watercolor")
	assert.Equal(t, "a red fox, in watercolor style", got)
}

func TestComposePromptWithDescription(t *testing.T) {
	got := ComposePrompt(
		"A person stands in warm sunset light against a brick wall.",
		"turn me into a superhero",
		"comic book",
	)
	assert.Equal(t,
		"A person stands in warm sunset light against a brick wall. turn me into a superhero, in comic book style",
		got)
}

func TestComposePromptDeterministic(t *testing.T) {
	a := ComposePrompt("desc", "prompt", "style")
	b := ComposePrompt("desc", "prompt", "style")
	assert.Equal(t, a, b)
}

func TestComposePromptEmptyPieces(t *testing.T) {
	assert.Equal(t, "a cat", ComposePrompt("", "a cat", ""))
	assert.Equal(t, "watercolor style", ComposePrompt("", "", "watercolor"))
	assert.Equal(t, "a dog in a park", ComposePrompt("a dog in a park.", "", ""))
	assert.Equal(t, "", ComposePrompt("", "", ""))
}

func TestComposePromptTrimsWhitespace(t *testing.T) {
	got := ComposePrompt("  a scene.  ", "  do something  ", "  retro ")
	assert.Equal(t, "a scene. do something, in retro style", got)
}
