package nanobanana

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSquareConstraint(t *testing.T) {
	got := withSquareConstraint("a red fox in watercolor")
	assert.True(t, strings.HasPrefix(got, "a red fox in watercolor"))
	assert.True(t, strings.HasSuffix(got, squareConstraint))

	// 비율 제약은 정확히 한 번만 붙음
	assert.Equal(t, 1, strings.Count(got, "1:1"))
}

func TestWithSquareConstraintEmptyPrompt(t *testing.T) {
	assert.Equal(t, squareConstraint, withSquareConstraint(""))
	assert.Equal(t, squareConstraint, withSquareConstraint("   "))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "long p...", truncateString("long prompt", 6))
}
