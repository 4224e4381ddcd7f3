// internal/handlers/routes.go
package handlers

import (
	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// API groups the handlers served under /api.
type API struct {
	Prompts     *PromptHandler
	Results     *ResultHandler
	LLMFailures *LLMFailureHandler
	Health      *HealthHandler
}

// Mount registers the health endpoints and the /api tree on r. Prompt
// mutations go through operator auth.
func (a *API) Mount(r chi.Router, cfg *config.Config) {
	r.Get("/health", a.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", a.Health.Health)

		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", a.Prompts.ListPrompts)
			r.Get("/next-in-rotation", a.Prompts.NextInRotation)
			r.Get("/random", a.Prompts.RandomPrompt)
			r.Get("/{prompt_id}", a.Prompts.GetPrompt)
			r.Post("/{prompt_id}/dispatch", a.Prompts.DispatchPrompt)

			r.Group(func(r chi.Router) {
				r.Use(middleware.OperatorAuthMiddleware(cfg))
				r.Post("/", a.Prompts.PostPrompt)
				r.Post("/import", a.Prompts.ImportPrompts)
				r.Put("/{prompt_id}", a.Prompts.PutPrompt)
				r.Delete("/{prompt_id}", a.Prompts.DeletePrompt)
			})
		})

		r.Route("/results", func(r chi.Router) {
			r.Post("/score", a.Results.SubmitScore)
			r.Get("/", a.Results.ListResults)
			r.Get("/dashboard", a.Results.Dashboard)
			r.Get("/export-data", a.Results.ExportData)
			r.Get("/{result_id}", a.Results.GetResult)
			r.Put("/{result_id}", a.Results.PutResult)
			r.Delete("/{result_id}", a.Results.DeleteResult)
			r.Post("/{result_id}/set-as-llm-failure", a.Results.SetAsLLMFailure)
		})

		r.Route("/llm-failures", func(r chi.Router) {
			r.Post("/", a.LLMFailures.PostFailure)
			r.Get("/", a.LLMFailures.ListFailures)
			r.Get("/{failure_id}", a.LLMFailures.GetFailure)
			r.Put("/{failure_id}", a.LLMFailures.PutFailure)
			r.Delete("/{failure_id}", a.LLMFailures.DeleteFailure)
		})
	})
}
