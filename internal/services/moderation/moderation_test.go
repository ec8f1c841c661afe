package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilter(t *testing.T) {
	f, err := New(nil)
	require.NoError(t, err)

	cases := []struct {
		text       string
		disallowed bool
	}{
		{"see https://example.com/cat.png", true},
		{"look at www.example.com/cats", true},
		{"WWW.Example.com", true},
		{"awww cute", false},
		{"LOL that was great", true},
		{"hahaha", true},
		{"ha", false},
		{"what the wtf", true},
		{"lollipop for lunch", false},
		{"kekw", false},
		{"rofl", true},
		{"pizza tonight?", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.disallowed, f.IsDisallowed(tc.text), tc.text)
	}
}

func TestCustomPatterns(t *testing.T) {
	f, err := New(&Config{Patterns: []string{`\bpineapple\b`}, AllowURLs: true})
	require.NoError(t, err)

	assert.True(t, f.IsDisallowed("Pineapple on pizza"))
	assert.False(t, f.IsDisallowed("lol https://example.com"))
}

func TestInvalidPattern(t *testing.T) {
	_, err := New(&Config{Patterns: []string{`(`}})
	assert.Error(t, err)
}

func TestStripURLs(t *testing.T) {
	assert.Equal(t, "look  here", StripURLs("look https://example.com/x here"))
	assert.Equal(t, "see  now", StripURLs("see www.example.com/x now"))
}
