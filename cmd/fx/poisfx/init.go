package poisfx

import (
	"go.uber.org/fx"

	"trailmap/internal/config"
	"trailmap/internal/gateways/osmgw"
	"trailmap/internal/preprocess"
	"trailmap/internal/repositories"
	"trailmap/internal/services"
	"trailmap/internal/tagging"
)

var Module = fx.Provide(
	provideExtractor, providePreprocessor, provideAugmenter,
	providePoisService, provideIndexService)

func provideExtractor() preprocess.Extractor {
	return preprocess.NewPBFExtractor()
}

func providePreprocessor(vocab tagging.Vocabulary) preprocess.Preprocessor {
	return preprocess.NewGeoJSONPreprocessor(vocab)
}

func provideAugmenter(cfg *config.Config) services.Augmenter {
	return services.NewTagAugmenter(cfg.DefaultLanguage)
}

func providePoisService(
	searchRepo repositories.SearchRepository,
	osmFactory osmgw.Factory,
	preprocessor preprocess.Preprocessor,
	augmenter services.Augmenter,
	reconciler *tagging.Reconciler,
) services.POIServiceInterface {
	return services.NewPOIService(searchRepo, osmFactory, preprocessor, augmenter, reconciler)
}

func provideIndexService(
	extractor preprocess.Extractor,
	preprocessor preprocess.Preprocessor,
	bulkWriter *repositories.BulkFeatureWriter,
) services.IndexServiceInterface {
	return services.NewIndexService(extractor, preprocessor, bulkWriter)
}
