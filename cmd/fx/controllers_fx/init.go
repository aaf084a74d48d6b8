package controllers_fx

import (
	"go.uber.org/fx"

	"trailmap/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPOIsController),
	fx.Provide(controllers.NewIndexController),
	fx.Provide(controllers.NewVocabularyController))
