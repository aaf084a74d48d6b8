package controllers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"trailmap/internal/tagging"
	"trailmap/pkg/utils"
)

type VocabularyController struct {
	vocabulary tagging.Vocabulary
}

func NewVocabularyController(vocabulary tagging.Vocabulary) *VocabularyController {
	return &VocabularyController{
		vocabulary: vocabulary,
	}
}

type vocabularyEntry struct {
	Icon  string `json:"icon"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ListIcons exposes the icon table so editor clients can render the icon
// picker from the same mapping the engine applies.
func (v *VocabularyController) ListIcons(c *gin.Context) {
	entries := make([]vocabularyEntry, 0, len(v.vocabulary))
	for icon, pair := range v.vocabulary {
		entries = append(entries, vocabularyEntry{Icon: icon, Key: pair.Key, Value: pair.Value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Icon < entries[j].Icon })

	utils.RespondSuccess(c, entries, "Icons fetched successfully")
}
