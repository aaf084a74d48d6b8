package tagging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons.yaml")
	content := `
icon-peak:
  key: natural
  value: peak
icon-waterfall:
  key: waterway
  value: waterfall
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, TagPair{Key: "natural", Value: "peak"}, v["icon-peak"])
	assert.Equal(t, TagPair{Key: "waterway", Value: "waterfall"}, v["icon-waterfall"])
}

func TestLoadVocabulary_MissingValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("icon-broken:\n  key: natural\n"), 0o644))

	_, err := LoadVocabulary(path)
	assert.Error(t, err)
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
