package tagging

import (
	"testing"

	osm "github.com/omniscale/go-osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		requested string
		want      string
	}{
		{"hebrew value", "הכנרת", "en", "he"},
		{"english value", "Sea of Galilee", "he", "en"},
		{"digits then hebrew", "42 שביל", "en", "he"},
		{"digits then latin", "42 trail", "he", "en"},
		{"no letters at all", "42?!", "he", "en"},
		{"empty keeps requested", "", "ru", "ru"},
		{"whitespace keeps requested", "   ", "fr", "fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLanguage(tt.value, tt.requested))
		})
	}
}

func TestSetLocalizedTag_DefaultLanguageUsesBaseKey(t *testing.T) {
	r := NewReconciler("he", DefaultVocabulary())
	tags := osm.Tags{}

	resolved := r.SetLocalizedTag(tags, "name", "הכנרת", "he")

	require.Equal(t, "he", resolved)
	assert.Equal(t, "הכנרת", tags["name"])
	assert.NotContains(t, tags, "name:he")
}

func TestSetLocalizedTag_InferenceOverridesCaller(t *testing.T) {
	r := NewReconciler("he", DefaultVocabulary())
	tags := osm.Tags{}

	// The caller asked for Hebrew but the value is Latin script.
	resolved := r.SetLocalizedTag(tags, "name", "Masada", "he")

	require.Equal(t, "en", resolved)
	assert.Equal(t, "Masada", tags["name:en"])
	assert.NotContains(t, tags, "name")
}

func TestSetLocalizedTag_ReplacesExistingValue(t *testing.T) {
	r := NewReconciler("he", DefaultVocabulary())
	tags := osm.Tags{"name:en": "Old name"}

	r.SetLocalizedTag(tags, "name", "New name", "en")

	assert.Equal(t, "New name", tags["name:en"])
	assert.Len(t, tags, 1)
}

func TestSetLocalizedTag_EmptyValueWrittenForStrip(t *testing.T) {
	r := NewReconciler("he", DefaultVocabulary())
	tags := osm.Tags{"description": "old text"}

	r.SetLocalizedTag(tags, "description", "", "he")
	StripEmptyTags(tags)

	assert.NotContains(t, tags, "description")
}

func TestApplyIconVocabulary(t *testing.T) {
	r := NewReconciler("he", DefaultVocabulary())

	tags := osm.Tags{"name": "x"}
	r.ApplyIconVocabulary(tags, "icon-tint")
	assert.Equal(t, "spring", tags["natural"])

	r.ApplyIconVocabulary(tags, "icon-does-not-exist")
	assert.Len(t, tags, 2)
}

func TestStripEmptyTags(t *testing.T) {
	tags := osm.Tags{
		"name":        "Banias",
		"description": "",
		"image":       "   ",
		"website":     "https://example.com",
	}

	StripEmptyTags(tags)

	assert.Equal(t, osm.Tags{
		"name":    "Banias",
		"website": "https://example.com",
	}, tags)
}

func TestVocabularyMatch(t *testing.T) {
	v := DefaultVocabulary()

	icon, category, ok := v.Match(osm.Tags{"natural": "peak", "name": "x"})
	require.True(t, ok)
	assert.Equal(t, "icon-peak", icon)
	assert.Equal(t, "peak", category)

	_, _, ok = v.Match(osm.Tags{"highway": "track"})
	assert.False(t, ok)
}
