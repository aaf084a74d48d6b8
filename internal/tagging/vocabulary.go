package tagging

import (
	"os"
	"sort"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// TagPair is the canonical OSM tag a map icon stands for.
type TagPair struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Vocabulary maps application icon identifiers to their canonical tag.
// The mapping is additive only: applying it appends the tag, it never
// removes unrelated tags.
type Vocabulary map[string]TagPair

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"icon-viewpoint": {Key: "tourism", Value: "viewpoint"},
		"icon-tint":      {Key: "natural", Value: "spring"},
		"icon-ruins":     {Key: "historic", Value: "ruins"},
		"icon-picnic":    {Key: "tourism", Value: "picnic_site"},
		"icon-campsite":  {Key: "tourism", Value: "camp_site"},
		"icon-tree":      {Key: "natural", Value: "tree"},
		"icon-cave":      {Key: "natural", Value: "cave_entrance"},
		"icon-star":      {Key: "tourism", Value: "attraction"},
		"icon-peak":      {Key: "natural", Value: "peak"},
	}
}

// LoadVocabulary reads an icon table from a yaml file, e.g.:
//
//	icon-peak:
//	  key: natural
//	  value: peak
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading vocabulary file %s", path)
	}
	v := Vocabulary{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrapf(err, "parsing vocabulary file %s", path)
	}
	for icon, pair := range v {
		if pair.Key == "" || pair.Value == "" {
			return nil, errors.Errorf("vocabulary entry %s is missing key or value", icon)
		}
	}
	return v, nil
}

// Match returns the icon whose canonical tag is present in tags. Icons are
// checked in sorted order so the result is deterministic when an element
// carries more than one mapped tag.
func (v Vocabulary) Match(tags osm.Tags) (icon string, category string, ok bool) {
	icons := make([]string, 0, len(v))
	for name := range v {
		icons = append(icons, name)
	}
	sort.Strings(icons)

	for _, name := range icons {
		pair := v[name]
		if tags[pair.Key] == pair.Value {
			return name, pair.Value, true
		}
	}
	return "", "", false
}
