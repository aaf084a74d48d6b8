package taggingfx

import (
	"log"

	"go.uber.org/fx"

	"trailmap/internal/config"
	"trailmap/internal/tagging"
)

var Module = fx.Provide(
	provideVocabulary, provideReconciler)

func provideVocabulary(cfg *config.Config) tagging.Vocabulary {
	if cfg.IconVocabularyFile == "" {
		return tagging.DefaultVocabulary()
	}
	vocab, err := tagging.LoadVocabulary(cfg.IconVocabularyFile)
	if err != nil {
		log.Fatalf("Error loading icon vocabulary: %v", err)
	}
	return vocab
}

func provideReconciler(cfg *config.Config, vocab tagging.Vocabulary) *tagging.Reconciler {
	return tagging.NewReconciler(cfg.DefaultLanguage, vocab)
}
