package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Kiosk (public)
	mux.Get("/category", standardMiddleware.ThenFunc(app.categoryHandler.GetActiveCategories))
	mux.Post("/recommendations", standardMiddleware.ThenFunc(app.recommendationHandler.GetRecommendations))
	mux.Get("/treatment/:id", standardMiddleware.ThenFunc(app.treatmentHandler.GetTreatmentByID))
	mux.Get("/settings", standardMiddleware.ThenFunc(app.settingsHandler.GetSettings))
	mux.Post("/events", standardMiddleware.ThenFunc(app.eventHandler.TrackEvent))
	mux.Get("/ws", http.HandlerFunc(app.KioskSocketHandler))

	// Admin auth
	mux.Post("/admin/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/admin/sign_out", adminMiddleware.ThenFunc(app.userHandler.SignOut))

	// Treatments
	mux.Post("/treatment", adminMiddleware.ThenFunc(app.treatmentHandler.CreateTreatment))
	mux.Get("/treatment", adminMiddleware.ThenFunc(app.treatmentHandler.GetTreatments))
	mux.Put("/treatment/:id", adminMiddleware.ThenFunc(app.treatmentHandler.UpdateTreatment))
	mux.Del("/treatment/:id", adminMiddleware.ThenFunc(app.treatmentHandler.DeleteTreatment))

	// Improvement categories
	mux.Post("/category", adminMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/admin/category", adminMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Get("/category/:id", adminMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/category/:id", adminMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/category/:id", adminMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	// Before/after cases
	mux.Post("/case", adminMiddleware.ThenFunc(app.caseHandler.CreateCase))
	mux.Get("/case", adminMiddleware.ThenFunc(app.caseHandler.GetCases))
	mux.Get("/case/:id", adminMiddleware.ThenFunc(app.caseHandler.GetCaseByID))
	mux.Put("/case/:id", adminMiddleware.ThenFunc(app.caseHandler.UpdateCase))
	mux.Del("/case/:id", adminMiddleware.ThenFunc(app.caseHandler.DeleteCase))

	// Branding settings
	mux.Put("/settings", adminMiddleware.ThenFunc(app.settingsHandler.UpsertSettings))

	return mux
}
