package tagging

import (
	"strings"

	osm "github.com/omniscale/go-osm"
)

// Reconciler maps application-level POI fields onto the multilingual tag
// model. All methods are pure tag-set manipulation, no I/O.
type Reconciler struct {
	defaultLanguage string
	vocabulary      Vocabulary
}

func NewReconciler(defaultLanguage string, vocabulary Vocabulary) *Reconciler {
	return &Reconciler{
		defaultLanguage: defaultLanguage,
		vocabulary:      vocabulary,
	}
}

func (r *Reconciler) DefaultLanguage() string {
	return r.defaultLanguage
}

// SetLocalizedTag writes value under key, choosing between the base key and
// the language-qualified key. For a non-empty value the language is inferred
// from the script of the value and the caller's language is ignored; this
// mirrors the upstream editor behavior and callers depend on it.
// Returns the resolved language. An empty value is still written (and later
// removed by StripEmptyTags) so that clearing a field replaces the stored
// value instead of leaving it behind.
func (r *Reconciler) SetLocalizedTag(tags osm.Tags, key, value, language string) string {
	resolved := ResolveLanguage(value, language)
	if resolved == r.defaultLanguage {
		tags[key] = value
	} else {
		tags[key+":"+resolved] = value
	}
	return resolved
}

// ApplyIconVocabulary appends the canonical tag for icon. Unknown icons are
// a no-op, not an error.
func (r *Reconciler) ApplyIconVocabulary(tags osm.Tags, icon string) {
	pair, ok := r.vocabulary[icon]
	if !ok {
		return
	}
	tags[pair.Key] = pair.Value
}

func (r *Reconciler) Vocabulary() Vocabulary {
	return r.vocabulary
}

// ResolveLanguage infers the language of value from its script: a Hebrew
// character (U+0591..U+05F4) reached before any Latin letter means "he",
// anything else means "en". An empty or whitespace-only value returns the
// requested language unchanged.
func ResolveLanguage(value, language string) string {
	if strings.TrimSpace(value) == "" {
		return language
	}
	for _, c := range value {
		if c >= 0x0591 && c <= 0x05F4 {
			return "he"
		}
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return "en"
		}
	}
	return "en"
}

// StripEmptyTags removes every tag whose value is empty or whitespace-only.
// It must run after all other tag writes, immediately before the tag set is
// handed to the OSM gateway; the store never holds empty-valued tags.
func StripEmptyTags(tags osm.Tags) {
	for k, v := range tags {
		if strings.TrimSpace(v) == "" {
			delete(tags, k)
		}
	}
}
