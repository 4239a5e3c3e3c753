package planner_fx

import (
	"go.uber.org/fx"

	"github.com/briculinos/voyana/internal/api/controllers"
	"github.com/briculinos/voyana/internal/services"
)

var Module = fx.Provide(
	services.NewOptimizerService,
	services.NewProfileService,
	services.NewSynthesisService,
	services.NewPipelineService,
	ProvidePlanController,
)

func ProvidePlanController(pipeline services.PipelineServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(pipeline)
}
