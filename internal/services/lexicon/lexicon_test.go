package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	wl, err := Read(strings.NewReader("# words\npizza\n\n  Taco \n"))
	require.NoError(t, err)

	assert.True(t, wl.IsWord("pizza"))
	assert.True(t, wl.IsWord("taco"))
	assert.True(t, wl.IsWord("TACO"))
	assert.False(t, wl.IsWord("asdf"))
	assert.False(t, wl.IsWord("# words"))
}

func TestLoadEmptyPathAcceptsAll(t *testing.T) {
	lex, err := Load("")
	require.NoError(t, err)
	assert.True(t, lex.IsWord("zzzqx"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("pizza\n"), 0o644))

	lex, err := Load(path)
	require.NoError(t, err)
	assert.True(t, lex.IsWord("pizza"))
	assert.False(t, lex.IsWord("burger"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
